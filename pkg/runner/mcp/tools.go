package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/annals/pkg/app"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	for _, t := range tools(svc) {
		srv.AddTool(t.Tool, t.Handler)
	}
}

func tools(svc *Service) []server.ServerTool {
	return []server.ServerTool{
		listEventsTool(svc),
		createEventTool(svc),
		updateEventTool(svc),
		deleteEventTool(svc),
		listRegionsTool(svc),
		addRegionTool(svc),
		addSubregionTool(svc),
		layoutTool(svc),
		boundsTool(svc),
	}
}

func listEventsTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List timeline events, optionally limited to one region."),
		mcp.WithString("region",
			mcp.Description("Region or subregion name to filter by."),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		events, err := svc.ListEvents(ctx, request.GetString("region", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"events": events,
			"count":  len(events),
		})
	}}
}

func createEventTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"create_event",
		mcp.WithDescription("Create an event. Years are signed integers; negative years are B.C."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Event name."),
		),
		mcp.WithNumber("start",
			mcp.Required(),
			mcp.Description("First year of the event."),
		),
		mcp.WithNumber("end",
			mcp.Required(),
			mcp.Description("Last year of the event."),
		),
		mcp.WithString("region",
			mcp.Required(),
			mcp.Description("Region or subregion the event belongs to."),
		),
		mcp.WithString("description",
			mcp.Description("Free text shown with the event."),
		),
		mcp.WithNumber("parent_id",
			mcp.Description("Id of an existing event to nest this one under."),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CreateEventOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		e, err := svc.CreateEvent(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(e)
	}}
}

func updateEventTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"update_event",
		mcp.WithDescription("Change fields of an existing event. Omitted fields keep their value."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Event id."),
		),
		mcp.WithString("name", mcp.Description("New name.")),
		mcp.WithNumber("start", mcp.Description("New first year.")),
		mcp.WithNumber("end", mcp.Description("New last year.")),
		mcp.WithString("region", mcp.Description("New region or subregion.")),
		mcp.WithString("description", mcp.Description("New description.")),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args UpdateEventOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		e, err := svc.UpdateEvent(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(e)
	}}
}

func deleteEventTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"delete_event",
		mcp.WithDescription("Delete an event together with the events nested under it."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Event id."),
		),
		mcp.WithString("cascade",
			mcp.Description("Which nested events go with it. Defaults to the configured cascade."),
			mcp.Enum("children", "descendants"),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      int    `json:"id"`
			Cascade string `json:"cascade"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		removed, err := svc.DeleteEvent(ctx, args.ID, args.Cascade)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"removed": removed,
			"count":   len(removed),
		})
	}}
}

func listRegionsTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"list_regions",
		mcp.WithDescription("List regions and their subregions in display order."),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		regions, err := svc.ListRegions(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"regions": regions})
	}}
}

func addRegionTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"add_region",
		mcp.WithDescription("Append a main region column."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Region name. Must be unique across regions and subregions."),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		r, err := svc.AddRegion(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(r)
	}}
}

func addSubregionTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"add_subregion",
		mcp.WithDescription("Append a subregion column under a main region."),
		mcp.WithString("region_id",
			mcp.Required(),
			mcp.Description("Id of the main region, for example r1."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Subregion name."),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		regionID, err := request.RequireString("region_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sub, err := svc.AddSubregion(ctx, regionID, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sub)
	}}
}

func layoutTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"layout",
		mcp.WithDescription("Compute lane assignments and pixel geometry for the visible regions."),
		mcp.WithNumber("years_per_row",
			mcp.Description("Zoom level. Must be one of the supported levels; 0 keeps the current one."),
		),
		mcp.WithArray("regions",
			mcp.Description("Region names to show. Empty shows every region."),
			mcp.WithStringItems(),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			YearsPerRow int      `json:"years_per_row"`
			Regions     []string `json:"regions"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		result, err := svc.Layout(ctx, app.View{YearsPerRow: args.YearsPerRow, Regions: args.Regions})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	}}
}

func boundsTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"compute_bounds",
		mcp.WithDescription("Report the padded year range that covers every event."),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := svc.Bounds(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(b)
	}}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
