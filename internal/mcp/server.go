package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepPlan training plan server. Analyze biometric profiles, plan weekly splits, generate equipment-aware routines, log body weight, and check whether the current plan needs adapting. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolAnalyzeProfile, Handler: h.analyzeProfile},
		server.ServerTool{Tool: toolPlanSplit, Handler: h.planSplit},
		server.ServerTool{Tool: toolGenerateRoutine, Handler: h.generateRoutine},
		server.ServerTool{Tool: toolCheckAdaptation, Handler: h.checkAdaptation},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolLogWeight, Handler: h.logWeight},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentRoutine, Handler: h.currentRoutine},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentRoutine = mcp.NewResource(
	"repplan://current_routine",
	"Current Routine",
	mcp.WithResourceDescription("The most recently generated weekly routine with prescriptions, volume summary, and the equipment snapshot it was built against"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"repplan://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercises with equipment requirements, mechanics, muscle targets, and goal-alignment scores"),
	mcp.WithMIMEType("application/json"),
)
