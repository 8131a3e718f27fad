// Package mcptools exposes the plan engine as Model Context Protocol tools.
package mcptools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fitsynth-backend/internal/plans"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// New creates an MCP server with the plan tools registered.
func New(svc *plans.Service) *mcp.Server {
	pt := &PlanTools{Svc: svc}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "fitsynth",
		Version: Version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "generate_plan",
		Description: "Generate a workout, weekly schedule and diet from a user profile. Nothing is stored.",
	}, pt.GeneratePlan)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List the exercise catalog, optionally filtered by type (strength, cardio, core, mobility)",
	}, pt.ListExercises)

	return srv
}
