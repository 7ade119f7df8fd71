// ABOUTME: MCP resource implementations for vocal training.
// ABOUTME: Provides singsmart://phases, singsmart://dashboard, and singsmart://catalog resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	phasesURI    = "singsmart://phases"
	dashboardURI = "singsmart://dashboard"
	catalogURI   = "singsmart://catalog"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         phasesURI,
		Name:        "Training Phases",
		Description: "The three training phases and their unlock criteria",
		MIMEType:    "application/json",
	}, s.handlePhasesResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Singer Dashboard",
		Description: "The first singer's profile, recent exercises, and weekly stats",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Exercise and Song Catalog",
		Description: "Every exercise and song in the library",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)
}

// Resource handlers

func (s *Server) handlePhasesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(phasesURI, s.svc.Phases())
}

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d, err := s.svc.Dashboard("")
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return jsonResource(dashboardURI, d)
}

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	c, err := s.svc.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return jsonResource(catalogURI, c)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
