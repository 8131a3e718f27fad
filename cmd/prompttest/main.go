package main

// Render the LLM prompts for a profile and optionally send them:
//   go run ./cmd/prompttest -profile profile.yaml
//   go run ./cmd/prompttest -profile profile.yaml -chat "How do I warm up?" -call

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fitsynth-backend/internal/llm"
	"fitsynth-backend/internal/llm/mistral"
	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/plans/engine"
	"fitsynth-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	profilePath := flag.String("profile", "", "Path to profile file (yaml or json)")
	chatMessage := flag.String("chat", "", "Render the coach chat prompt for this message instead")
	call := flag.Bool("call", false, "Send the prompt to the configured provider")
	outPath := flag.String("out", "", "Path to write the JSON output (optional)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	flag.Parse()

	if strings.TrimSpace(*profilePath) == "" {
		exitErr("profile path is required")
	}
	raw, err := os.ReadFile(*profilePath)
	if err != nil {
		exitErr(fmt.Sprintf("read profile: %v", err))
	}
	var req plans.GenerateRequest
	if err := yaml.Unmarshal(raw, &req); err != nil {
		exitErr(fmt.Sprintf("parse profile: %v", err))
	}
	in, err := req.ToInput()
	if err != nil {
		exitErr(err.Error())
	}
	result := engine.New().Generate(in)

	var messages []llm.Message
	if strings.TrimSpace(*chatMessage) != "" {
		messages = llm.ChatMessages(*chatMessage, result)
	} else {
		messages, err = llm.PlanExplanationMessages(in, result)
		if err != nil {
			exitErr(fmt.Sprintf("render prompt: %v", err))
		}
	}

	out := map[string]any{
		"messages":         messages,
		"rulesExplanation": result.Explanation,
	}
	if *call {
		client, err := mistral.NewClient(cfg.LLMAPIKey, *model, cfg.LLMBaseURL)
		if err != nil {
			exitErr(err.Error())
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		reply, err := client.Complete(ctx, messages)
		cancel()
		if err != nil {
			exitErr(fmt.Sprintf("llm complete: %v", err))
		}
		out["reply"] = reply
	}

	pretty, err := prettyJSON(out)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
}

func prettyJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
