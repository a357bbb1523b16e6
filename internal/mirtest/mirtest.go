// Package mirtest is the backing library for the mir_opt_test CLI (spec.md
// §6, §8 scenario 5): since this module has no lexer/parser (spec.md §1
// Non-goals), a "test case" is a Go-constructed mir.Function registered by
// name rather than a .rs source file, and a directory's settings are read
// from a YAML sidecar instead of a `#[test="..."]` source annotation.
package mirtest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/optimize"
)

// DirConfig is the per-directory mirtest.yaml sidecar, following the teacher
// pack's config precedent of a directory-level YAML file read once
// (funvibe-funxy's internal/ext/config.go). Run takes no DirConfig, so its
// values are not applied to any Case.
type DirConfig struct {
	DefaultTargetTriple string `yaml:"default_target_triple"`
	DefaultPointerWidth int    `yaml:"default_pointer_width"`
}

// LoadDirConfig reads "<dir>/mirtest.yaml" if present; a missing sidecar is
// not an error, it just means no directory-level overrides apply.
func LoadDirConfig(dir string) (DirConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, "mirtest.yaml"))
	if os.IsNotExist(err) {
		return DirConfig{}, nil
	}
	if err != nil {
		return DirConfig{}, fmt.Errorf("mirtest: reading sidecar: %w", err)
	}
	var cfg DirConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DirConfig{}, fmt.Errorf("mirtest: parsing sidecar: %w", err)
	}
	return cfg, nil
}

// Case is one fixture the driver pipeline runs end to end.
type Case struct {
	Name string
	Fn   mir.Function
	// Want, if non-nil, is the expected post-optimisation function; a nil
	// Want means "just assert the pipeline runs clean with no diagnostics".
	Want *mir.Function
}

// Result is one Case's outcome.
type Result struct {
	Name   string
	Passed bool
	Diags  []diag.Diagnostic
	Diff   string
}

// Report aggregates every Case run in a session.
type Report struct {
	Results []Result
}

func (r Report) AllPassed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Run drives the optimiser pipeline over every case whose name matches one
// of filters (all cases, if filters is empty), sorted by name for stable
// output, mirroring the deterministic-ordering expectation of a PASS/FAIL
// test runner (spec.md §6).
func Run(cases []Case, filters []string) Report {
	var names []string
	byName := make(map[string]Case, len(cases))
	for _, c := range cases {
		byName[c.Name] = c
		names = append(names, c.Name)
	}
	sort.Strings(names)

	var rep Report
	for _, name := range names {
		if len(filters) > 0 && !matchesAny(name, filters) {
			continue
		}
		rep.Results = append(rep.Results, runCase(byName[name]))
	}
	return rep
}

func runCase(c Case) Result {
	res := optimize.NewDriver().Run(c.Fn)
	if len(res.Diags) > 0 {
		return Result{Name: c.Name, Passed: false, Diags: res.Diags}
	}
	if c.Want == nil {
		return Result{Name: c.Name, Passed: res.Ran}
	}
	if diff := cmp.Diff(*c.Want, res.Function); diff != "" {
		return Result{Name: c.Name, Passed: false, Diff: diff}
	}
	return Result{Name: c.Name, Passed: true}
}

func matchesAny(name string, filters []string) bool {
	for _, f := range filters {
		if f == name {
			return true
		}
	}
	return false
}
