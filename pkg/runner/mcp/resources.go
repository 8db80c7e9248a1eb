package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/annals/pkg/app"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerEventsResource(srv, svc)
	registerRegionsResource(srv, svc)
	registerLayoutResource(srv, svc)
	registerLayoutTemplate(srv, svc)
}

func registerEventsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"annals://events",
		"Events",
		mcp.WithResourceDescription("Every timeline event in id order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		events, err := svc.ListEvents(ctx, "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"events": events,
			"count":  len(events),
		})
	})
}

func registerRegionsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"annals://regions",
		"Regions",
		mcp.WithResourceDescription("The region taxonomy in column order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		regions, err := svc.ListRegions(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"regions": regions})
	})
}

func registerLayoutResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"annals://layout",
		"Layout",
		mcp.WithResourceDescription("Layout of every region at the current zoom level."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		result, err := svc.Layout(ctx, app.View{})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, result)
	})
}

func registerLayoutTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"annals://layout/{years}",
		"Layout at Zoom",
		mcp.WithTemplateDescription("Layout of every region at a given years-per-row zoom level."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		years, err := templateInt(request.Params.Arguments["years"])
		if err != nil {
			return nil, err
		}
		result, err := svc.Layout(ctx, app.View{YearsPerRow: years})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, result)
	})
}

// templateInt reads a URI template variable, which arrives as a string or a
// one-element slice depending on the template expander.
func templateInt(v any) (int, error) {
	switch val := v.(type) {
	case string:
		return strconv.Atoi(val)
	case []string:
		if len(val) == 1 {
			return strconv.Atoi(val[0])
		}
	}
	return 0, fmt.Errorf("years must be an integer, got %v", v)
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
