package domain

import (
	"bytes"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ReportMeta records when and where a status report was generated.
type ReportMeta struct {
	GeneratedAt time.Time `toml:"generated_at"`
	Hostname    string    `toml:"hostname"`
	OS          string    `toml:"os"`
}

// TargetStatus is one target's row in a status report: resolution result
// plus which backup tiers exist for it.
type TargetStatus struct {
	Name           string     `toml:"name"`
	Kind           FormatKind `toml:"format_kind"`
	Installed      bool       `toml:"installed"`
	ConfigPath     string     `toml:"config_path,omitempty"`
	IsCustom       bool       `toml:"is_custom,omitempty"`
	OriginalBackup bool       `toml:"original_backup"`
	CurrentBackup  bool       `toml:"current_backup"`
}

// StatusReport is the TOML manifest written by the status command.
type StatusReport struct {
	Meta    ReportMeta     `toml:"meta"`
	Targets []TargetStatus `toml:"targets"`
}

// NewStatusReport creates a report with populated metadata.
func NewStatusReport(hostname, osName string) *StatusReport {
	return &StatusReport{
		Meta: ReportMeta{
			GeneratedAt: time.Now(),
			Hostname:    hostname,
			OS:          osName,
		},
	}
}

// MarshalReport serializes a StatusReport to TOML bytes.
func MarshalReport(r *StatusReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalReport deserializes TOML bytes into a StatusReport.
func UnmarshalReport(data []byte) (*StatusReport, error) {
	var r StatusReport
	if _, err := toml.Decode(string(data), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WriteReport writes a StatusReport as TOML to the given file path.
func WriteReport(r *StatusReport, path string) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
