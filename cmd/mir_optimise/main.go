// Command mir_optimise runs the full resolve -> optimise -> emit pipeline
// over a manifest of in-memory fixtures and writes the emitted symbol table
// as JSON (spec.md §6: "deserialises a HIR cache, binds, validates,
// optimises, enumerates monomorphisations, then re-emits a MIR artefact").
// There is no lexer/parser or HIR serialisation format in this module
// (spec.md §1 Non-goals), so <input.hir> names a YAML manifest selecting
// which built-in fixtures to run instead of a binary HIR cache — see
// DESIGN.md.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/malphas-lang/malphas-lang/internal/codegen"
	"github.com/malphas-lang/malphas-lang/internal/mirtest"
	"github.com/malphas-lang/malphas-lang/internal/optimize"
	"github.com/malphas-lang/malphas-lang/internal/target"
	"github.com/malphas-lang/malphas-lang/internal/trace"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// manifest selects which of the built-in fixture functions to run and the
// crate path each should be emitted under.
type manifest struct {
	Crate  string   `yaml:"crate"`
	Target string   `yaml:"target"`
	Items  []string `yaml:"items"`
}

type artefact struct {
	Symbol   string `json:"symbol"`
	Blocks   int    `json:"blocks"`
	Locals   int    `json:"locals"`
	ArgCount int    `json:"arg_count"`
}

func main() {
	tracer := trace.FromEnv("MIROPT_DEBUG")

	cmd := &cobra.Command{
		Use:   "mir_optimise <input.hir> <output>",
		Short: "resolve, validate, optimise, and emit a monomorphised symbol table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(tracer, args[0], args[1])
		},
		SilenceUsage: true,
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(tracer *trace.Tracer, inputPath, outputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Crate == "" {
		m.Crate = "mycrate"
	}

	desc := target.Default
	if m.Target != "" {
		descRaw, err := os.ReadFile(m.Target)
		if err != nil {
			return fmt.Errorf("reading target descriptor: %w", err)
		}
		desc, err = target.Parse(descRaw)
		if err != nil {
			return err
		}
	}
	tracer.Printf("target", "using %s (%d-bit, %s)", desc.Name, desc.PointerBits, desc.Endianness)

	byName := map[string]mirtest.Case{}
	for _, c := range mirtest.BuiltinCases() {
		byName[c.Name] = c
	}

	rec := codegen.NewRecorder()
	for _, name := range m.Items {
		c, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown fixture %q", name)
		}
		tracer.Printf("optimise", "running %s", name)
		res := optimize.NewDriver().Run(c.Fn)
		if !res.Ran {
			for _, d := range res.Diags {
				fmt.Fprintf(os.Stderr, "%s: %s\n", name, d.Message)
			}
			return fmt.Errorf("%s failed borrow-check gate", name)
		}
		path := types.GenericPath{Path: types.NewSimplePath(m.Crate, name)}
		item, err := rec.Emit(path, res.Function, res.Function.Locals[1:], res.Function.Locals[0])
		if err != nil {
			return fmt.Errorf("emitting %s: %w", name, err)
		}
		tracer.Printf("emit", "%s -> %s", name, item.Symbol)
	}

	out := make([]artefact, len(rec.Items))
	for i, item := range rec.Items {
		out[i] = artefact{
			Symbol:   item.Symbol,
			Blocks:   len(item.Fn.Blocks),
			Locals:   len(item.Fn.Locals),
			ArgCount: len(item.Args),
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding artefact: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
