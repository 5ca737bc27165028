// Package detect finds the local listening ports of well-known VPN
// clients by parsing OS utility output. It is best-effort: heuristics
// over tasklist/netstat on Windows and lsof on macOS, with preset
// default ports as the fallback when a client is not running.
package detect

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/youjizi/proxy-manager/internal/util"
)

// Port classification labels.
const (
	PortTypeHTTP    = "http"
	PortTypeSocks   = "socks"
	PortTypeUnknown = "unknown"
)

// VPNConfig describes one known VPN client: the process names it may run
// under and the ports it listens on out of the box.
type VPNConfig struct {
	Name             string   `json:"name"`
	ProcessNames     []string `json:"process_names"`
	DefaultHTTPPort  uint16   `json:"default_http_port"`
	DefaultSocksPort uint16   `json:"default_socks_port"`
}

// DetectedPort is one listening port attributed to a process. PID is zero
// for default-port entries that were never observed live.
type DetectedPort struct {
	Port        uint16 `json:"port"`
	PortType    string `json:"port_type"`
	ProcessName string `json:"process_name"`
	PID         uint32 `json:"pid"`
}

// Result reports one detection run. Success is false only when a
// non-preset name matched no running process; a preset client that is not
// running still succeeds with its default ports.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Ports   []DetectedPort `json:"ports"`
}

// VPNConfigs returns the preset client catalog.
func VPNConfigs() []VPNConfig {
	return []VPNConfig{
		{
			Name:             "Clash",
			ProcessNames:     []string{"clash", "clash-windows", "Clash for Windows", "cfw", "clash-verge", "ClashX"},
			DefaultHTTPPort:  7890,
			DefaultSocksPort: 7891,
		},
		{
			Name:             "V2Ray",
			ProcessNames:     []string{"v2ray", "v2rayN", "v2ray-core"},
			DefaultHTTPPort:  10808,
			DefaultSocksPort: 10809,
		},
		{
			Name:             "Veee",
			ProcessNames:     []string{"veee", "Veee"},
			DefaultHTTPPort:  15236,
			DefaultSocksPort: 15235,
		},
		{
			Name:             "Shadowsocks",
			ProcessNames:     []string{"ss-local", "shadowsocks", "Shadowsocks", "sslocal"},
			DefaultHTTPPort:  1080,
			DefaultSocksPort: 1080,
		},
		{
			Name:             "Surge",
			ProcessNames:     []string{"Surge", "surge-cli"},
			DefaultHTTPPort:  6152,
			DefaultSocksPort: 6153,
		},
	}
}

// Well-known proxy ports used to classify listeners that do not match a
// client's own defaults.
var (
	commonHTTPPorts  = []uint16{7890, 8080, 8118, 3128, 10808, 15236, 6152}
	commonSocksPorts = []uint16{7891, 1080, 10809, 15235, 6153}
)

// Detector runs OS utilities through a CommandRunner so tests can feed it
// canned output.
type Detector struct {
	Runner util.CommandRunner
	GOOS   string
}

// NewDetector wires a Detector for the given platform.
func NewDetector(runner util.CommandRunner, goos string) *Detector {
	return &Detector{Runner: runner, GOOS: goos}
}

// DetectByName detects the listening ports for the named client. Preset
// names match case-insensitively; anything else is tried directly as a
// process name.
func (d *Detector) DetectByName(ctx context.Context, name string) Result {
	for _, cfg := range VPNConfigs() {
		if strings.EqualFold(cfg.Name, name) {
			return d.detectPreset(ctx, cfg)
		}
	}
	return d.detectCustom(ctx, name)
}

func (d *Detector) detectPreset(ctx context.Context, cfg VPNConfig) Result {
	var all []DetectedPort
	for _, proc := range cfg.ProcessNames {
		all = append(all, d.portsByProcess(ctx, proc)...)
	}

	if len(all) == 0 {
		return Result{
			Success: true,
			Message: fmt.Sprintf("%s not running, using default ports", cfg.Name),
			Ports: []DetectedPort{
				{Port: cfg.DefaultHTTPPort, PortType: PortTypeHTTP, ProcessName: cfg.Name},
				{Port: cfg.DefaultSocksPort, PortType: PortTypeSocks, ProcessName: cfg.Name},
			},
		}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("%s is running", cfg.Name),
		Ports:   classifyPorts(all, cfg),
	}
}

func (d *Detector) detectCustom(ctx context.Context, name string) Result {
	ports := d.portsByProcess(ctx, name)
	if len(ports) > 0 {
		return Result{
			Success: true,
			Message: fmt.Sprintf("%s is running", name),
			Ports:   ports,
		}
	}
	return Result{
		Success: false,
		Message: fmt.Sprintf("no process named %s found", name),
	}
}

// portsByProcess returns the listening ports of processes whose name
// contains processName, case-insensitively. Command failures and
// unsupported platforms yield an empty result.
func (d *Detector) portsByProcess(ctx context.Context, processName string) []DetectedPort {
	switch d.GOOS {
	case "windows":
		taskLines, err := d.Runner.RunLines(ctx, "tasklist", "/FO", "CSV", "/NH")
		if err != nil {
			return nil
		}
		pids := parseTasklistPIDs(taskLines, processName)
		if len(pids) == 0 {
			return nil
		}
		netLines, err := d.Runner.RunLines(ctx, "netstat", "-ano")
		if err != nil {
			return nil
		}
		return parseNetstatPorts(netLines, pids, processName)
	case "darwin":
		lines, err := d.Runner.RunLines(ctx, "lsof", "-i", "-P", "-n")
		if err != nil {
			return nil
		}
		return parseLsofPorts(lines, processName)
	default:
		return nil
	}
}

// parseTasklistPIDs extracts PIDs from `tasklist /FO CSV /NH` output for
// lines mentioning processName.
func parseTasklistPIDs(lines []string, processName string) []uint32 {
	needle := strings.ToLower(processName)
	var pids []uint32
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		// CSV columns: "image","PID","session name","session#","mem usage"
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		pid, err := strconv.ParseUint(strings.Trim(parts[1], `"`), 10, 32)
		if err != nil {
			continue
		}
		pids = append(pids, uint32(pid))
	}
	return pids
}

// parseNetstatPorts extracts LISTENING local ports from `netstat -ano`
// output for the given PIDs.
func parseNetstatPorts(lines []string, pids []uint32, processName string) []DetectedPort {
	pidSet := make(map[uint32]bool, len(pids))
	for _, pid := range pids {
		pidSet[pid] = true
	}

	var ports []DetectedPort
	for _, line := range lines {
		if !strings.Contains(line, "LISTENING") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 5 {
			continue
		}
		pid, err := strconv.ParseUint(parts[len(parts)-1], 10, 32)
		if err != nil || !pidSet[uint32(pid)] {
			continue
		}
		port, ok := portFromAddr(parts[1])
		if !ok {
			continue
		}
		ports = append(ports, DetectedPort{
			Port:        port,
			PortType:    PortTypeUnknown,
			ProcessName: processName,
			PID:         uint32(pid),
		})
	}
	return ports
}

// parseLsofPorts extracts LISTEN ports from `lsof -i -P -n` output for
// lines mentioning processName.
func parseLsofPorts(lines []string, processName string) []DetectedPort {
	needle := strings.ToLower(processName)
	var ports []DetectedPort
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		if !strings.Contains(line, "LISTEN") {
			continue
		}
		// COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME
		parts := strings.Fields(line)
		if len(parts) < 9 {
			continue
		}
		pid, _ := strconv.ParseUint(parts[1], 10, 32)
		port, ok := portFromAddr(parts[8])
		if !ok {
			continue
		}
		ports = append(ports, DetectedPort{
			Port:        port,
			PortType:    PortTypeUnknown,
			ProcessName: processName,
			PID:         uint32(pid),
		})
	}
	return ports
}

// portFromAddr pulls the port out of an address like "127.0.0.1:7890",
// "*:7890", or "[::]:7890". Ports outside the usual proxy range are
// dropped.
func portFromAddr(addr string) (uint16, bool) {
	idx := strings.LastIndex(addr, ":")
	if idx < 0 || idx == len(addr)-1 {
		return 0, false
	}
	port, err := strconv.ParseUint(addr[idx+1:], 10, 16)
	if err != nil {
		return 0, false
	}
	if port <= 1000 || port >= 65535 {
		return 0, false
	}
	return uint16(port), true
}

// classifyPorts dedupes by port number and labels each port http or socks
// by the client's own defaults first, then by well-known proxy ports.
func classifyPorts(ports []DetectedPort, cfg VPNConfig) []DetectedPort {
	sort.SliceStable(ports, func(i, j int) bool { return ports[i].Port < ports[j].Port })

	deduped := ports[:0]
	var last uint16
	for i, p := range ports {
		if i > 0 && p.Port == last {
			continue
		}
		deduped = append(deduped, p)
		last = p.Port
	}

	for i := range deduped {
		switch {
		case deduped[i].Port == cfg.DefaultHTTPPort:
			deduped[i].PortType = PortTypeHTTP
		case deduped[i].Port == cfg.DefaultSocksPort:
			deduped[i].PortType = PortTypeSocks
		case containsPort(commonHTTPPorts, deduped[i].Port):
			deduped[i].PortType = PortTypeHTTP
		case containsPort(commonSocksPorts, deduped[i].Port):
			deduped[i].PortType = PortTypeSocks
		}
	}
	return deduped
}

func containsPort(list []uint16, port uint16) bool {
	for _, p := range list {
		if p == port {
			return true
		}
	}
	return false
}
