package health

import (
	"context"
	"database/sql"
	"time"
)

// Status is the health payload.
type Status struct {
	Status        string  `json:"status"`
	LLMConfigured bool    `json:"llmConfigured"`
	Model         *string `json:"model"`
	Store         string  `json:"store"`
	Database      string  `json:"database,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	LLMConfigured bool
	Model         string
	StoreDriver   string
	DB            *sql.DB
	PingTimeout   time.Duration
}

// NewService constructs a new health service. db may be nil for the
// in-memory store.
func NewService(llmConfigured bool, model, storeDriver string, db *sql.DB) *Service {
	return &Service{
		LLMConfigured: llmConfigured,
		Model:         model,
		StoreDriver:   storeDriver,
		DB:            db,
		PingTimeout:   2 * time.Second,
	}
}

// Status reports liveness plus the model and store in use. A failed
// database ping degrades the status without failing the probe.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{
		Status:        "healthy",
		LLMConfigured: s.LLMConfigured,
		Store:         s.StoreDriver,
	}
	if s.LLMConfigured && s.Model != "" {
		model := s.Model
		out.Model = &model
	}
	if s.DB != nil {
		pingCtx := ctx
		if s.PingTimeout > 0 {
			var cancel context.CancelFunc
			pingCtx, cancel = context.WithTimeout(ctx, s.PingTimeout)
			defer cancel()
		}
		if err := s.DB.PingContext(pingCtx); err != nil {
			out.Status = "degraded"
			out.Database = "unreachable"
		} else {
			out.Database = "ok"
		}
	}
	return out
}
