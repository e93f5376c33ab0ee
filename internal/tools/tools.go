package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mistakeknot/shadcn-mcp/internal/framework"
	"github.com/mistakeknot/shadcn-mcp/internal/resources"
)

// RegisterAll registers all shadcn MCP tools.
func RegisterAll(s *server.MCPServer, config resources.Config, d *resources.Dispatcher) {
	s.AddTools(
		frameworkInfoTool(config),
		listComponentsTool(d),
	)
}

type frameworkInfoResult struct {
	framework.Info
	UILibrary framework.UILibrary `json:"ui_library,omitempty"`
}

func frameworkInfoTool(config resources.Config) server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("framework_info",
			mcp.WithDescription("Report the framework, repository, and file extension this server serves components for."),
		),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			_ = ctx
			f := config.Framework()
			result := frameworkInfoResult{Info: framework.Describe(f)}
			if f == framework.React {
				result.UILibrary = config.UILibrary()
			}
			return jsonResult(result)
		},
	}
}

func listComponentsTool(d *resources.Dispatcher) server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("list_components",
			mcp.WithDescription("List available components for the configured framework, sorted by name."),
			mcp.WithString("filter",
				mcp.Description("Optional case-insensitive substring to match component names against"),
			),
		),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			filter := optionalString(req.GetArguments(), "filter")

			result, err := d.Read(ctx, resources.URIComponents)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if result.Failure != nil {
				return mcp.NewToolResultError(fmt.Sprintf("%s: %s", result.Failure.Error, result.Failure.Message)), nil
			}

			names, _ := result.Value.([]string)
			return jsonResult(filterNames(names, filter))
		},
	}
}

func filterNames(names []string, filter string) []string {
	out := make([]string, 0, len(names))
	needle := strings.ToLower(filter)
	for _, name := range names {
		if needle == "" || strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
		}
	}
	return out
}

func optionalString(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return strings.TrimSpace(value)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal tool response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
