// Package mcp exposes proxy management over the Model Context Protocol so
// agents can toggle proxies through the same orchestrator the CLI uses.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/youjizi/proxy-manager/internal/detect"
	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/proxy"
)

// ProxyServer wraps the MCP server around the proxy orchestrator.
type ProxyServer struct {
	manager  *proxy.Manager
	detector *detect.Detector
	server   *server.MCPServer
	handlers map[string]server.ToolHandlerFunc
}

// NewProxyServer creates an MCP server with all proxy tools registered.
func NewProxyServer(manager *proxy.Manager, detector *detect.Detector) *ProxyServer {
	s := &ProxyServer{
		manager:  manager,
		detector: detector,
		server:   server.NewMCPServer("proxy-manager", "0.1.0"),
		handlers: make(map[string]server.ToolHandlerFunc),
	}

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server instance.
func (s *ProxyServer) MCPServer() *server.MCPServer {
	return s.server
}

func (s *ProxyServer) registerTools() {
	s.addTool("list_targets",
		gomcp.NewTool("list_targets",
			gomcp.WithDescription("List all managed software targets with install state and config paths"),
		),
		s.handleListTargets,
	)

	s.addTool("enable_proxy",
		gomcp.NewTool("enable_proxy",
			gomcp.WithDescription("Enable proxy settings on the named targets"),
			gomcp.WithArray("targets",
				gomcp.Required(),
				gomcp.Description("Target names to enable"),
				gomcp.WithStringItems(),
			),
			gomcp.WithString("http_proxy",
				gomcp.Required(),
				gomcp.Description("HTTP proxy URL, e.g. http://127.0.0.1:7890"),
			),
			gomcp.WithString("https_proxy",
				gomcp.Description("HTTPS proxy URL; defaults to http_proxy"),
			),
			gomcp.WithString("no_proxy",
				gomcp.Description("Bypass list; defaults to localhost,127.0.0.1,::1"),
			),
		),
		s.handleEnableProxy,
	)

	s.addTool("disable_proxy",
		gomcp.NewTool("disable_proxy",
			gomcp.WithDescription("Disable proxy settings on the named targets, restoring the pre-enable config"),
			gomcp.WithArray("targets",
				gomcp.Required(),
				gomcp.Description("Target names to disable"),
				gomcp.WithStringItems(),
			),
		),
		s.handleDisableProxy,
	)

	s.addTool("reset_proxy",
		gomcp.NewTool("reset_proxy",
			gomcp.WithDescription("Reset the named targets to their original, first-seen config"),
			gomcp.WithArray("targets",
				gomcp.Required(),
				gomcp.Description("Target names to reset"),
				gomcp.WithStringItems(),
			),
		),
		s.handleResetProxy,
	)

	s.addTool("apply_profiles",
		gomcp.NewTool("apply_profiles",
			gomcp.WithDescription("Enable proxies per the stored software-to-profile mappings"),
		),
		s.handleApplyProfiles,
	)

	s.addTool("list_profiles",
		gomcp.NewTool("list_profiles",
			gomcp.WithDescription("List the stored proxy profiles"),
		),
		s.handleListProfiles,
	)

	s.addTool("detect_port",
		gomcp.NewTool("detect_port",
			gomcp.WithDescription("Detect the listening ports of a VPN client by name"),
			gomcp.WithString("name",
				gomcp.Required(),
				gomcp.Description("VPN client name, e.g. Clash, or a raw process name"),
			),
		),
		s.handleDetectPort,
	)
}

func (s *ProxyServer) addTool(name string, tool gomcp.Tool, handler server.ToolHandlerFunc) {
	s.handlers[name] = handler
	s.server.AddTool(tool, handler)
}

// handleListTargets returns a JSON array of target info.
func (s *ProxyServer) handleListTargets(_ context.Context, _ gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	data, err := json.Marshal(s.manager.Targets())
	if err != nil {
		return gomcp.NewToolResultError(fmt.Sprintf("failed to marshal targets: %v", err)), nil
	}
	return gomcp.NewToolResultText(string(data)), nil
}

func requireTargets(req gomcp.CallToolRequest) ([]string, error) {
	targets := req.GetStringSlice("targets", nil)
	if len(targets) == 0 {
		return nil, errors.New("targets must name at least one target")
	}
	return targets, nil
}

// handleEnableProxy enables the given targets and returns the per-target report.
func (s *ProxyServer) handleEnableProxy(_ context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	targets, err := requireTargets(req)
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}
	httpProxy, err := req.RequireString("http_proxy")
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}

	settings := domain.ProxySettings{
		HTTPProxy:  httpProxy,
		HTTPSProxy: req.GetString("https_proxy", httpProxy),
		NoProxy:    req.GetString("no_proxy", domain.DefaultNoProxy),
	}

	report := s.manager.Enable(targets, settings)
	return gomcp.NewToolResultText(strings.Join(report, "\n")), nil
}

func (s *ProxyServer) handleDisableProxy(_ context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	targets, err := requireTargets(req)
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}
	report := s.manager.Disable(targets)
	return gomcp.NewToolResultText(strings.Join(report, "\n")), nil
}

func (s *ProxyServer) handleResetProxy(_ context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	targets, err := requireTargets(req)
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}
	report := s.manager.Reset(targets)
	return gomcp.NewToolResultText(strings.Join(report, "\n")), nil
}

// handleApplyProfiles enables proxies per the stored mappings.
func (s *ProxyServer) handleApplyProfiles(_ context.Context, _ gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	mappings := s.manager.Profiles.Load().Mappings
	if len(mappings) == 0 {
		return gomcp.NewToolResultText("no profile mappings configured"), nil
	}
	report := s.manager.EnableWithProfiles(mappings)
	return gomcp.NewToolResultText(strings.Join(report, "\n")), nil
}

// handleListProfiles returns a JSON array of stored profiles.
func (s *ProxyServer) handleListProfiles(_ context.Context, _ gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	data, err := json.Marshal(s.manager.Profiles.Load().Profiles)
	if err != nil {
		return gomcp.NewToolResultError(fmt.Sprintf("failed to marshal profiles: %v", err)), nil
	}
	return gomcp.NewToolResultText(string(data)), nil
}

// handleDetectPort runs port detection for the named client.
func (s *ProxyServer) handleDetectPort(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}

	result := s.detector.DetectByName(ctx, name)
	data, err := json.Marshal(result)
	if err != nil {
		return gomcp.NewToolResultError(fmt.Sprintf("failed to marshal detection result: %v", err)), nil
	}
	return gomcp.NewToolResultText(string(data)), nil
}
