package resources

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Register adds every catalog resource to s, served through d.
func Register(s *server.MCPServer, d *Dispatcher) {
	for _, desc := range Catalog() {
		s.AddResource(
			mcp.NewResource(desc.URI, desc.Name,
				mcp.WithResourceDescription(desc.Description),
				mcp.WithMIMEType(desc.MIMEType),
			),
			readHandler(d),
		)
	}
}

func readHandler(d *Dispatcher) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		env, err := d.Resolve(ctx, req.Params.URI)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: env.MIMEType,
				Text:     env.Content,
			},
		}, nil
	}
}
