package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitsynth-backend/internal/llm"
	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/plans/engine"
)

type recordingLLM struct {
	reply    string
	err      error
	messages []llm.Message
}

func (r *recordingLLM) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	r.messages = messages
	return r.reply, r.err
}

type fakePlans struct {
	plan plans.Plan
	err  error
}

func (f fakePlans) Latest(ctx context.Context, userID string) (plans.Plan, error) {
	return f.plan, f.err
}

func boolPtr(v bool) *bool { return &v }

func TestOfflineReply(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"What DIET should I follow?", "For diet, aim for plenty of protein"},
		{"Is my workout too long?", "For workouts, combine 2–3 days of strength"},
		{"training tips", "For workouts, combine"},
		{"hello", "Ask me about your training, diet, or how to use your FitSynth plan."},
		{"diet and training", "For diet,"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := OfflineReply(tt.message)
			if !strings.HasPrefix(got, offlinePrefix) {
				t.Fatalf("missing offline prefix: %q", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Fatalf("reply %q does not contain %q", got, tt.want)
			}
		})
	}
}

func TestReplyValidation(t *testing.T) {
	svc := &Service{}
	for _, msg := range []string{"", "   ", strings.Repeat("a", MaxMessageChars+1)} {
		if _, err := svc.Reply(context.Background(), "guest:a", Request{Message: msg}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %d chars, got %v", len(msg), err)
		}
	}
	// Multi-byte runes count as one character each.
	if _, err := svc.Reply(context.Background(), "guest:a", Request{Message: strings.Repeat("é", MaxMessageChars)}); err != nil {
		t.Fatalf("2000 runes should be accepted: %v", err)
	}
}

func TestReplyOfflineWithoutModel(t *testing.T) {
	svc := &Service{LLM: llm.PlaceholderClient{}}
	resp, err := svc.Reply(context.Background(), "guest:a", Request{Message: "diet?"})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if resp.Source != SourceOffline || !strings.Contains(resp.Reply, "For diet") {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReplyWithPlanContext(t *testing.T) {
	client := &recordingLLM{reply: " Keep protein high. "}
	plan := plans.Plan{ID: "p1", Result: engine.Result{Explanation: "We computed BMI=24.2"}}
	svc := &Service{LLM: client, Plans: fakePlans{plan: plan}}

	resp, err := svc.Reply(context.Background(), "guest:a", Request{Message: "  How much protein?  "})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if resp.Source != SourceLLM || resp.Reply != "Keep protein high." {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(client.messages) != 2 || client.messages[0].Role != llm.RoleSystem {
		t.Fatalf("unexpected prompt: %+v", client.messages)
	}
	user := client.messages[1].Content
	if !strings.HasPrefix(user, "How much protein?") || !strings.Contains(user, "We computed BMI=24.2") {
		t.Fatalf("plan context missing from %q", user)
	}
}

func TestReplyContextOptOutAndMissingPlan(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		plans PlanSource
	}{
		{name: "opt out", req: Request{Message: "hi", IncludePlanContext: boolPtr(false)}, plans: fakePlans{plan: plans.Plan{ID: "p1"}}},
		{name: "no plan yet", req: Request{Message: "hi"}, plans: fakePlans{err: plans.ErrNotFound}},
		{name: "repo failure", req: Request{Message: "hi"}, plans: fakePlans{err: errors.New("db down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &recordingLLM{reply: "ok"}
			svc := &Service{LLM: client, Plans: tt.plans}
			if _, err := svc.Reply(context.Background(), "guest:a", tt.req); err != nil {
				t.Fatalf("Reply: %v", err)
			}
			if strings.Contains(client.messages[1].Content, "Context from the user's latest FitSynth plan") {
				t.Fatalf("expected no plan context")
			}
		})
	}
}

func TestReplyFallsBackOnModelError(t *testing.T) {
	svc := &Service{LLM: &recordingLLM{err: errors.New("mistral request timeout")}}
	resp, err := svc.Reply(context.Background(), "guest:a", Request{Message: "best workout?"})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if resp.Source != SourceOffline || !strings.Contains(resp.Reply, "For workouts") {
		t.Fatalf("unexpected fallback: %+v", resp)
	}
}
