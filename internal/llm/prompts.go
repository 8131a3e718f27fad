package llm

import (
	_ "embed"
	"encoding/json"
	"strconv"
	"strings"
	"text/template"

	"fitsynth-backend/internal/plans/engine"
)

var (
	//go:embed prompts/plan_explanation.txt
	planExplanationPrompt string
	//go:embed prompts/chat_system.txt
	chatSystemPrompt string

	planExplanationTmpl = template.Must(template.New("plan_explanation").Funcs(template.FuncMap{
		"num":   func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		"names": blockNames,
	}).Parse(planExplanationPrompt))
)

// MaxPlanContextChars bounds the plan JSON attached to chat prompts.
const MaxPlanContextChars = 2000

// PlanExplanationMessages builds the single-turn prompt asking for a
// 2-3 paragraph explanation of result.
func PlanExplanationMessages(in engine.Input, result engine.Result) ([]Message, error) {
	var b strings.Builder
	if err := planExplanationTmpl.Execute(&b, struct {
		In     engine.Input
		Result engine.Result
	}{in, result}); err != nil {
		return nil, err
	}
	return []Message{{Role: RoleUser, Content: strings.TrimSpace(b.String())}}, nil
}

// ChatMessages builds a coach conversation turn. planContext, when non-nil,
// is attached as JSON truncated to MaxPlanContextChars.
func ChatMessages(message string, planContext any) []Message {
	parts := []string{strings.TrimSpace(message)}
	if planContext != nil {
		if raw, err := json.Marshal(planContext); err == nil {
			parts = append(parts, "\n\nContext from the user's latest FitSynth plan (JSON, truncated):\n"+truncateRunes(string(raw), MaxPlanContextChars))
		}
	}
	return []Message{
		{Role: RoleSystem, Content: strings.TrimSpace(chatSystemPrompt)},
		{Role: RoleUser, Content: strings.Join(parts, "\n")},
	}
}

func blockNames(blocks []engine.Block) string {
	names := make([]string, 0, len(blocks))
	for _, b := range blocks {
		names = append(names, b.Name)
	}
	return strings.Join(names, ", ")
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
