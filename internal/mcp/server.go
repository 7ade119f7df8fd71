// ABOUTME: MCP server exposing the singsmart coach to assistants.
// ABOUTME: Wraps the MCP server around a coach.Service.
package mcp

import (
	"context"

	"github.com/harperreed/singsmart/internal/coach"
	"github.com/harperreed/singsmart/internal/logger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with coach access.
type Server struct {
	mcpServer *mcp.Server
	svc       *coach.Service
	log       *logger.Logger
}

// NewServer creates a new MCP server over svc.
func NewServer(svc *coach.Service, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "singsmart",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		log:       log,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Debug("mcp server starting on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
