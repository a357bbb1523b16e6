// Package codegen adapts the teacher's internal/codegen/mir2llvm into the
// "MIR as producer interface" contract: something downstream of the
// optimiser can consume a Function and its mangled symbol without this
// repo taking on a real LLVM emitter, which is out of scope.
package codegen

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/mangle"
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// Emitted records one item handed to a Backend: its mangled symbol and the
// function body/signature it was derived from, so a test can assert on the
// pipeline's output without a real code generator to inspect.
type Emitted struct {
	Symbol string
	Args   []types.TypeRef
	Ret    types.TypeRef
	Fn     mir.Function
}

// Backend is the producer-side interface spec.md §6 describes: a sink that
// a real LLVM/C back-end would implement, and that this repo implements only
// well enough to prove the resolve -> clone -> optimise -> emit pipeline is
// wired end to end.
type Backend interface {
	Emit(path types.GenericPath, fn mir.Function, args []types.TypeRef, ret types.TypeRef) (Emitted, error)
}

// Recorder is a Backend that mangles the symbol and keeps every emitted
// item in order, standing in for mir2llvm.Generator's role in the teacher
// without producing IR text.
type Recorder struct {
	Items []Emitted
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(path types.GenericPath, fn mir.Function, args []types.TypeRef, ret types.TypeRef) (Emitted, error) {
	if len(fn.Locals) == 0 {
		return Emitted{}, fmt.Errorf("codegen: function has no return slot")
	}
	symbol, err := mangle.GenericPath(path)
	if err != nil {
		return Emitted{}, fmt.Errorf("codegen: mangling %v: %w", path, err)
	}
	item := Emitted{Symbol: symbol, Args: args, Ret: ret, Fn: fn}
	r.Items = append(r.Items, item)
	return item, nil
}

// Lookup finds a previously emitted item by its mangled symbol.
func (r *Recorder) Lookup(symbol string) (Emitted, bool) {
	for _, it := range r.Items {
		if it.Symbol == symbol {
			return it, true
		}
	}
	return Emitted{}, false
}
