// Package chat answers coach questions, grounded on the caller's latest plan
// when a model is configured and with canned offline replies otherwise.
package chat

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"fitsynth-backend/internal/llm"
	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/shared/metrics"
	"fitsynth-backend/internal/shared/telemetry"
)

// MaxMessageChars bounds an inbound chat message.
const MaxMessageChars = 2000

// Reply sources.
const (
	SourceLLM     = "llm"
	SourceOffline = "offline"
)

const offlinePrefix = "I'm currently running in offline mode without access to the AI model. "

var ErrInvalidInput = errors.New("invalid input")

// PlanSource looks up the plan used as conversation context.
type PlanSource interface {
	Latest(ctx context.Context, userID string) (plans.Plan, error)
}

// Request is the inbound chat turn. IncludePlanContext defaults to true.
type Request struct {
	Message            string `json:"message"`
	IncludePlanContext *bool  `json:"includePlanContext,omitempty"`
}

// Response is the coach reply.
type Response struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}

// Service contains chat business logic.
type Service struct {
	LLM   llm.Client
	Plans PlanSource
}

// Reply validates the message and answers it.
func (s *Service) Reply(ctx context.Context, userID string, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, invalid("message is required")
	}
	if utf8.RuneCountInString(message) > MaxMessageChars {
		return Response{}, invalid("Message too long (max 2000 characters)")
	}

	if !llm.Enabled(s.LLM) {
		return Response{Reply: OfflineReply(message), Source: SourceOffline}, nil
	}

	var planContext any
	if req.IncludePlanContext == nil || *req.IncludePlanContext {
		planContext = s.planContext(ctx, userID)
	}

	reply, err := s.LLM.Complete(ctx, llm.ChatMessages(message, planContext))
	reply = strings.TrimSpace(reply)
	if err != nil || reply == "" {
		if err == nil {
			err = errors.New("empty reply")
		}
		metrics.IncLLMFallback()
		telemetry.Warn("chat.llm_fallback", map[string]any{
			"user_id": userID,
			"error":   err,
		})
		return Response{Reply: OfflineReply(message), Source: SourceOffline}, nil
	}

	telemetry.Info("chat.reply", map[string]any{
		"user_id":      userID,
		"with_context": planContext != nil,
		"reply_chars":  utf8.RuneCountInString(reply),
	})
	return Response{Reply: reply, Source: SourceLLM}, nil
}

// planContext is best-effort: a missing or unreadable plan means no context.
func (s *Service) planContext(ctx context.Context, userID string) any {
	if s.Plans == nil {
		return nil
	}
	p, err := s.Plans.Latest(ctx, userID)
	if err != nil {
		if !errors.Is(err, plans.ErrNotFound) {
			telemetry.Warn("chat.plan_context_failed", map[string]any{
				"user_id": userID,
				"error":   err,
			})
		}
		return nil
	}
	return p.Result
}

// OfflineReply is the canned answer used without a model.
func OfflineReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "diet"):
		return offlinePrefix + "For diet, aim for plenty of protein, mostly whole foods, and adjust calories based on your goal (deficit for fat loss, small surplus for muscle gain)."
	case strings.Contains(lower, "workout"), strings.Contains(lower, "training"):
		return offlinePrefix + "For workouts, combine 2–3 days of strength with 2–3 days of cardio, and keep at least one full rest day."
	default:
		return offlinePrefix + "Ask me about your training, diet, or how to use your FitSynth plan."
	}
}

type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }
func (e validationError) Unwrap() error { return ErrInvalidInput }

func invalid(msg string) error { return validationError{msg: msg} }
