// ABOUTME: MCP server setup for the getfit dashboard.
// ABOUTME: Wraps the MCP server around a dashboard Service.
package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/getfit/internal/dashboard"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

// ServerVersion is reported to MCP clients during initialization.
const ServerVersion = "1.0.0"

// Server wraps the MCP server with dashboard access.
type Server struct {
	mcpServer *mcp.Server
	svc       *dashboard.Service
}

// NewServer creates a new MCP server over the given dashboard service.
func NewServer(svc *dashboard.Service) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "getfit",
			Version: ServerVersion,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	log.Info("mcp server listening on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// callLogger tags every log line of one tool or resource call with a shared ID.
func callLogger(kind, name string) *log.Entry {
	return log.WithFields(log.Fields{
		"call_id": uuid.NewString(),
		kind:      name,
	})
}
