// Package profile persists the user's proxy profiles, software-to-profile
// mappings, and custom software declarations as one JSON document with
// read-modify-write, last-writer-wins semantics.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/util"
)

// Store reads and writes the user config file at Path.
type Store struct {
	Path string
}

// NewStore creates a Store for the given config file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// DefaultPath returns <home>/.proxy-manager/user_config.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".proxy-manager", "user_config.json")
}

// Load reads the user config. A missing or unparsable file silently falls
// back to the built-in default.
func (s *Store) Load() *domain.UserConfig {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return domain.DefaultUserConfig()
	}

	var cfg domain.UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.DefaultUserConfig()
	}
	return &cfg
}

// Save writes the whole config document, pretty-printed, atomically.
func (s *Store) Save(cfg *domain.UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user config: %w", err)
	}
	if err := util.WriteFileAtomic(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write user config: %w", err)
	}
	return nil
}

// AddProfile appends a new profile. Duplicate names are rejected.
func (s *Store) AddProfile(p domain.ProxyProfile) (*domain.UserConfig, error) {
	cfg := s.Load()

	if _, exists := cfg.Profile(p.Name); exists {
		return nil, fmt.Errorf("profile %q already exists", p.Name)
	}
	cfg.Profiles = append(cfg.Profiles, p)

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeleteProfile removes a profile and cascades the removal to every
// mapping that references it.
func (s *Store) DeleteProfile(name string) (*domain.UserConfig, error) {
	cfg := s.Load()

	kept := cfg.Profiles[:0]
	for _, p := range cfg.Profiles {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(cfg.Profiles) {
		return nil, fmt.Errorf("profile %q does not exist", name)
	}
	cfg.Profiles = kept

	mappings := cfg.Mappings[:0]
	for _, m := range cfg.Mappings {
		if m.ProfileName != name {
			mappings = append(mappings, m)
		}
	}
	cfg.Mappings = mappings

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateProfile replaces the profile named oldName. A rename cascades into
// mappings so they keep pointing at the same endpoint.
func (s *Store) UpdateProfile(oldName string, p domain.ProxyProfile) (*domain.UserConfig, error) {
	cfg := s.Load()

	idx := -1
	for i := range cfg.Profiles {
		if cfg.Profiles[i].Name == oldName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("profile %q does not exist", oldName)
	}

	if oldName != p.Name {
		for i := range cfg.Mappings {
			if cfg.Mappings[i].ProfileName == oldName {
				cfg.Mappings[i].ProfileName = p.Name
			}
		}
	}
	cfg.Profiles[idx] = p

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetMapping binds a software name to a profile, upserting by software
// name. The profile must exist.
func (s *Store) SetMapping(softwareName, profileName string) (*domain.UserConfig, error) {
	cfg := s.Load()

	if _, exists := cfg.Profile(profileName); !exists {
		return nil, fmt.Errorf("profile %q does not exist", profileName)
	}

	updated := false
	for i := range cfg.Mappings {
		if cfg.Mappings[i].SoftwareName == softwareName {
			cfg.Mappings[i].ProfileName = profileName
			updated = true
			break
		}
	}
	if !updated {
		cfg.Mappings = append(cfg.Mappings, domain.SoftwareProxyMapping{
			SoftwareName: softwareName,
			ProfileName:  profileName,
		})
	}

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AddCustomSoftware declares a new user-defined target. Duplicate names
// are rejected.
func (s *Store) AddCustomSoftware(sw domain.CustomSoftware) (*domain.UserConfig, error) {
	cfg := s.Load()

	for _, existing := range cfg.CustomSoftware {
		if existing.Name == sw.Name {
			return nil, fmt.Errorf("software %q already exists", sw.Name)
		}
	}
	cfg.CustomSoftware = append(cfg.CustomSoftware, sw)

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeleteCustomSoftware removes a user-defined target and any mapping that
// references it.
func (s *Store) DeleteCustomSoftware(name string) (*domain.UserConfig, error) {
	cfg := s.Load()

	kept := cfg.CustomSoftware[:0]
	for _, sw := range cfg.CustomSoftware {
		if sw.Name != name {
			kept = append(kept, sw)
		}
	}
	if len(kept) == len(cfg.CustomSoftware) {
		return nil, fmt.Errorf("software %q does not exist", name)
	}
	cfg.CustomSoftware = kept

	mappings := cfg.Mappings[:0]
	for _, m := range cfg.Mappings {
		if m.SoftwareName != name {
			mappings = append(mappings, m)
		}
	}
	cfg.Mappings = mappings

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetClosePreference stores the close-behavior preference.
func (s *Store) SetClosePreference(pref domain.ClosePreference) error {
	cfg := s.Load()
	cfg.ClosePreference = pref
	return s.Save(cfg)
}
