package plans

import (
	"time"

	"fitsynth-backend/internal/plans/engine"
)

// Where a stored plan's explanation came from.
const (
	ExplanationSourceLLM   = "llm"
	ExplanationSourceRules = "rules"
)

// Plan is a generated plan persisted for its owner.
type Plan struct {
	ID                string        `json:"id"`
	UserID            string        `json:"userId"`
	Input             engine.Input  `json:"input"`
	Result            engine.Result `json:"result"`
	ExplanationSource string        `json:"explanationSource"`
	ExportKey         string        `json:"exportKey,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
}
