// Command mir_opt_test runs the optimiser pipeline (spec.md §4.5) over the
// built-in fixture set and reports PASS/FAIL per case, mirroring mrustc's
// own mir_opt_test tool (spec.md §6, §8 scenario 5). There is no
// lexer/parser in this module (spec.md §1 Non-goals), so "test-directory"
// names a directory whose mirtest.yaml sidecar supplies defaults rather
// than a tree of .rs sources.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/malphas-lang/malphas-lang/internal/mirtest"
	"github.com/malphas-lang/malphas-lang/internal/trace"
)

func main() {
	tracer := trace.FromEnv("MIRTEST_DEBUG")
	runID := uuid.New().String()

	cmd := &cobra.Command{
		Use:   "mir_opt_test <test-directory> [test-filter...]",
		Short: "run the MIR optimiser pipeline against the built-in fixture set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			filters := args[1:]

			cfg, err := mirtest.LoadDirConfig(dir)
			if err != nil {
				return err
			}
			tracer.Printf("load", "run %s: directory %s: default target %q, pointer width %d", runID, dir, cfg.DefaultTargetTriple, cfg.DefaultPointerWidth)

			rep := mirtest.Run(mirtest.BuiltinCases(), filters)
			for _, res := range rep.Results {
				status := "PASS"
				if !res.Passed {
					status = "FAIL"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", status, res.Name)
				if !res.Passed {
					for _, d := range res.Diags {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d.Message)
					}
					if res.Diff != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.Diff)
					}
				}
			}
			if !rep.AllPassed() {
				return fmt.Errorf("one or more cases failed")
			}
			return nil
		},
		SilenceUsage: true,
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
