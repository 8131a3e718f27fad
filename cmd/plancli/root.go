package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/plans/engine"
)

type rootOptions struct {
	output string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "plancli",
		Short:         "Generate workout, schedule and diet plans offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported output %q (json or yaml)", opts.output)
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "Output format: json or yaml")

	root.AddCommand(
		newGenerateCmd(opts),
		newExportCmd(),
		newExercisesCmd(opts),
		newTokenCmd(),
	)
	return root
}

// readProfile accepts YAML or JSON; JSON is a subset of YAML.
func readProfile(path string) (plans.GenerateRequest, error) {
	var req plans.GenerateRequest
	if strings.TrimSpace(path) == "" {
		return req, fmt.Errorf("--profile is required")
	}
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return req, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("parse profile: %w", err)
	}
	return req, nil
}

func newEngine(seed int64) *engine.Engine {
	eng := engine.New()
	if seed != 0 {
		eng.Rand = rand.New(rand.NewSource(seed))
	}
	return eng
}

// buildPlan runs the engine without persistence or LLM.
func buildPlan(req plans.GenerateRequest, seed int64) (plans.Plan, error) {
	in, err := req.ToInput()
	if err != nil {
		return plans.Plan{}, err
	}
	eng := newEngine(seed)
	res := eng.Generate(in)
	return plans.Plan{
		ID:                "offline",
		UserID:            "cli",
		Input:             in,
		Result:            res,
		ExplanationSource: plans.ExplanationSourceRules,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
