package plans

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitsynth-backend/internal/llm"
	"fitsynth-backend/internal/plans/engine"
	"fitsynth-backend/internal/shared/metrics"
	"fitsynth-backend/internal/shared/storage/object"
	"fitsynth-backend/internal/shared/telemetry"
)

// Service contains business logic for plans.
type Service struct {
	Repo   Repo
	Engine *engine.Engine
	LLM    llm.Client
	Store  object.ObjectStore
	Now    func() time.Time
	NewID  func() string
}

// NewService wires a Service with the default engine, clock and id source.
func NewService(repo Repo, client llm.Client, store object.ObjectStore) *Service {
	return &Service{
		Repo:   repo,
		Engine: engine.New(),
		LLM:    client,
		Store:  store,
	}
}

// ExportResult describes a stored workbook.
type ExportResult struct {
	Key       string
	SizeBytes int64
}

// Generate validates the profile, runs the engine and persists the plan.
// An LLM explanation replaces the rules text when one is available.
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (Plan, error) {
	start := time.Now()
	in, err := req.ToInput()
	if err != nil {
		metrics.IncPlanFailed()
		return Plan{}, err
	}

	result := s.engine().Generate(in)
	source := ExplanationSourceRules
	if text, ok := s.explain(ctx, userID, in, result); ok {
		result.Explanation = text
		source = ExplanationSourceLLM
	}

	p := Plan{
		ID:                s.newID(),
		UserID:            userID,
		Input:             in,
		Result:            result,
		ExplanationSource: source,
		CreatedAt:         s.now(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		metrics.IncPlanFailed()
		return Plan{}, fmt.Errorf("save plan: %w", err)
	}

	durationMs := metrics.SinceMillis(start)
	metrics.IncPlanGenerated()
	metrics.ObservePlanDurationMs(durationMs)
	telemetry.Info("plan.generated", map[string]any{
		"plan_id":            p.ID,
		"user_id":            userID,
		"goal":               in.Goal,
		"intensity":          result.Meta.Intensity,
		"adjusted_days":      result.Schedule.AdjustedDays,
		"explanation_source": source,
		"duration_ms":        durationMs,
	})
	return p, nil
}

// Preview runs the engine without persisting or calling the LLM.
func (s *Service) Preview(req GenerateRequest) (engine.Input, engine.Result, error) {
	in, err := req.ToInput()
	if err != nil {
		return engine.Input{}, engine.Result{}, err
	}
	return in, s.engine().Generate(in), nil
}

// Get returns a plan owned by userID.
func (s *Service) Get(ctx context.Context, userID, planID string) (Plan, error) {
	if _, err := uuid.Parse(planID); err != nil {
		return Plan{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, planID)
}

// List returns the user's plans, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Plan, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Latest returns the user's newest plan.
func (s *Service) Latest(ctx context.Context, userID string) (Plan, error) {
	return s.Repo.LatestByUser(ctx, userID)
}

// Export renders the plan workbook, stores it under the owner's namespace
// and records the key on the plan. Exporting again overwrites the object.
func (s *Service) Export(ctx context.Context, userID, planID string) (ExportResult, error) {
	if s.Store == nil {
		return ExportResult{}, ErrExportUnavailable
	}
	p, err := s.Get(ctx, userID, planID)
	if err != nil {
		return ExportResult{}, err
	}

	key, err := object.ExportKey(userID, p.ID)
	if err != nil {
		return ExportResult{}, err
	}
	buf, err := workbookBytes(p)
	if err != nil {
		return ExportResult{}, err
	}
	size, err := s.Store.Put(ctx, key, object.ContentTypeXLSX, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return ExportResult{}, fmt.Errorf("store export: %w", err)
	}
	if err := s.Repo.SetExportKey(ctx, userID, p.ID, key); err != nil {
		return ExportResult{}, err
	}

	metrics.IncExport()
	telemetry.Info("plan.exported", map[string]any{
		"plan_id":    p.ID,
		"user_id":    userID,
		"size_bytes": size,
	})
	return ExportResult{Key: key, SizeBytes: size}, nil
}

// OpenExport streams a previously exported workbook. The caller closes it.
func (s *Service) OpenExport(ctx context.Context, userID, planID string) (io.ReadCloser, Plan, error) {
	p, err := s.Get(ctx, userID, planID)
	if err != nil {
		return nil, Plan{}, err
	}
	if p.ExportKey == "" || s.Store == nil {
		return nil, Plan{}, ErrExportUnavailable
	}
	rc, err := s.Store.Open(ctx, p.ExportKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, Plan{}, ErrExportUnavailable
		}
		return nil, Plan{}, err
	}
	return rc, p, nil
}

// Catalog returns the exercises the engine selects from.
func (s *Service) Catalog() []engine.Exercise {
	if s.Engine != nil && s.Engine.Catalog != nil {
		return append([]engine.Exercise(nil), s.Engine.Catalog...)
	}
	return engine.DefaultCatalog()
}

func (s *Service) explain(ctx context.Context, userID string, in engine.Input, result engine.Result) (string, bool) {
	if !llm.Enabled(s.LLM) {
		return "", false
	}
	text, err := s.completeExplanation(ctx, in, result)
	if err != nil {
		metrics.IncLLMFallback()
		telemetry.Warn("plan.explanation_fallback", map[string]any{
			"user_id": userID,
			"error":   err,
		})
		return "", false
	}
	return text, true
}

func (s *Service) completeExplanation(ctx context.Context, in engine.Input, result engine.Result) (string, error) {
	messages, err := llm.PlanExplanationMessages(in, result)
	if err != nil {
		return "", err
	}
	text, err := s.LLM.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty explanation")
	}
	return text, nil
}

// engine falls back to the zero Engine, which uses the default sources.
func (s *Service) engine() *engine.Engine {
	if s.Engine == nil {
		return &engine.Engine{}
	}
	return s.Engine
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
