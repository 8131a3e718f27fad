package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/plans/engine"
	"fitsynth-backend/internal/shared/auth"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		profile string
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a plan from a profile file",
		Long: `Generate a plan from a YAML or JSON profile and print the input and result.

Pass --profile - to read the profile from stdin. A non-zero --seed makes the
chart series reproducible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readProfile(profile)
			if err != nil {
				return err
			}
			p, err := buildPlan(req, seed)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), root.output, map[string]any{
				"input":  p.Input,
				"result": p.Result,
			})
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile file (YAML or JSON, - for stdin)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the chart random source")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		profile string
		out     string
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a plan and write it as an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readProfile(profile)
			if err != nil {
				return err
			}
			p, err := buildPlan(req, seed)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := plans.WriteWorkbook(f, p); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVar(&out, "out", "plan.xlsx", "Workbook path")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the chart random source")
	return cmd
}

func newExercisesCmd(root *rootOptions) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List the exercise catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			want := strings.ToLower(strings.TrimSpace(typ))
			out := []engine.Exercise{}
			for _, e := range engine.DefaultCatalog() {
				if want == "" || e.Type == want {
					out = append(out, e)
				}
			}
			return render(cmd.OutOrStdout(), root.output, out)
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "Filter by type (strength, cardio, core, mobility)")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		sub  string
		name string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token with JWT_SECRET for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.IssueToken(sub, name, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "Subject (plan owner)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTTL, "Token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
