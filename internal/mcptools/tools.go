package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/plans/engine"
)

// PlanTools holds references needed by plan tool handlers.
type PlanTools struct {
	Svc *plans.Service
}

type ListExercisesInput struct {
	Type string `json:"type,omitempty" jsonschema:"Exercise type filter: strength, cardio, core or mobility"`
}

type generatePlanOutput struct {
	Input  engine.Input  `json:"input"`
	Result engine.Result `json:"result"`
}

func (t *PlanTools) GeneratePlan(_ context.Context, _ *mcp.CallToolRequest, input plans.GenerateRequest) (*mcp.CallToolResult, any, error) {
	in, result, err := t.Svc.Preview(input)
	if err != nil {
		var ve *plans.ValidationError
		if errors.As(err, &ve) {
			return toolError("%s", ve.Message), nil, nil
		}
		return toolError("Failed to generate plan: %v", err), nil, nil
	}
	return toolJSON(generatePlanOutput{Input: in, Result: result})
}

func (t *PlanTools) ListExercises(_ context.Context, _ *mcp.CallToolRequest, input ListExercisesInput) (*mcp.CallToolResult, any, error) {
	want := strings.ToLower(strings.TrimSpace(input.Type))
	out := []engine.Exercise{}
	for _, e := range t.Svc.Catalog() {
		if want == "" || e.Type == want {
			out = append(out, e)
		}
	}
	return toolJSON(out)
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
