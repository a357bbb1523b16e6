package optimize

import "github.com/malphas-lang/malphas-lang/internal/mir"

// loop is a natural loop found by back-edge detection: header is the loop
// entry, blocks is every block index reachable backward from the back
// edge's source up to (and including) header.
type loop struct {
	header int
	blocks map[int]bool
}

func predecessors(fn mir.Function) map[int][]int {
	preds := make(map[int][]int, len(fn.Blocks))
	for i, bb := range fn.Blocks {
		for _, s := range successors(bb.Terminator) {
			preds[s] = append(preds[s], i)
		}
	}
	return preds
}

// identifyLoops detects back edges by block-list order, same heuristic as
// the teacher's identifyLoops: if block p (already visited) has a
// successor b not yet visited when p is reached... inverted here to: when
// visiting b, a predecessor already visited means that predecessor closed
// a cycle back to b.
func identifyLoops(fn mir.Function) []loop {
	preds := predecessors(fn)
	visited := make(map[int]bool, len(fn.Blocks))
	var loops []loop

	for i := range fn.Blocks {
		for _, p := range preds[i] {
			if visited[p] && !visited[i] {
				loops = append(loops, loop{header: i, blocks: loopBlocks(i, p, preds)})
			}
		}
		visited[i] = true
	}
	return loops
}

func loopBlocks(header, backEdgeSrc int, preds map[int][]int) map[int]bool {
	in := map[int]bool{header: true, backEdgeSrc: true}
	worklist := []int{backEdgeSrc}
	for len(worklist) > 0 {
		b := worklist[0]
		worklist = worklist[1:]
		if b == header {
			continue
		}
		for _, p := range preds[b] {
			if !in[p] {
				in[p] = true
				worklist = append(worklist, p)
			}
		}
	}
	return in
}

// preheader finds a predecessor of the loop header lying outside the loop,
// which is where invariants get hoisted to. Returns -1 if there is none
// (nothing is hoisted in that case, matching the teacher's conservative
// fallback).
func preheader(l loop, preds map[int][]int) int {
	for _, p := range preds[l.header] {
		if !l.blocks[p] {
			return p
		}
	}
	return -1
}

type invariantLoc struct {
	block, stmt int
}

// isPureAssign reports whether a statement is an Assign whose RValue has
// no side effects and no dependency on mutable external state — the same
// conservative allow-list the teacher's isStatementInvariant applies
// (calls, aggregate builds, and drop-flag bookkeeping are never moved).
func isPureAssign(s mir.Statement) bool {
	if s.Kind != mir.StmtAssign {
		return false
	}
	switch s.AssignSrc.Kind {
	case mir.RvUse, mir.RvConstant, mir.RvCast, mir.RvBinOp, mir.RvUniOp:
		return true
	default:
		return false
	}
}

func paramLocal(p mir.Param) (int, bool) {
	if p.Kind == mir.ParamLValue && p.LValue.Storage.Kind == mir.StorageLocal && len(p.LValue.Wrappers) == 0 {
		return p.LValue.Storage.Index, true
	}
	return 0, false
}

func operandLocals(r mir.RValue) []int {
	var out []int
	add := func(p mir.Param) {
		if idx, ok := paramLocal(p); ok {
			out = append(out, idx)
		}
	}
	switch r.Kind {
	case mir.RvUse:
		add(r.Use)
	case mir.RvCast:
		add(r.CastVal)
	case mir.RvBinOp:
		add(r.BinL)
		add(r.BinR)
	case mir.RvUniOp:
		add(r.UniV)
	}
	return out
}

// findInvariants finds every pure Assign in the loop whose operands are
// all defined outside it.
func findInvariants(fn mir.Function, l loop, defBlock map[int]int) []invariantLoc {
	var out []invariantLoc
	for b := range l.blocks {
		if b < 0 || b >= len(fn.Blocks) {
			continue
		}
		for si, s := range fn.Blocks[b].Statements {
			if !isPureAssign(s) {
				continue
			}
			invariant := true
			for _, localIdx := range operandLocals(s.AssignSrc) {
				if db, ok := defBlock[localIdx]; ok && l.blocks[db] {
					invariant = false
					break
				}
			}
			if invariant {
				out = append(out, invariantLoc{block: b, stmt: si})
			}
		}
	}
	return out
}

func buildDefBlock(fn mir.Function) map[int]int {
	defBlock := make(map[int]int)
	for bi, bb := range fn.Blocks {
		for _, s := range bb.Statements {
			if s.Kind == mir.StmtAssign && s.AssignDst.Storage.Kind == mir.StorageLocal && len(s.AssignDst.Wrappers) == 0 {
				defBlock[s.AssignDst.Storage.Index] = bi
			}
		}
	}
	return defBlock
}

// HoistLoopInvariants moves pure, operand-external statements out of every
// natural loop into its preheader block (spec.md §4.5 LICM), grounded on
// the teacher's LICM pass. Loops without a usable preheader are left
// untouched, same as the teacher's conservative fallback.
func HoistLoopInvariants(fn mir.Function) mir.Function {
	out := fn.Clone()
	loops := identifyLoops(out)
	if len(loops) == 0 {
		return out
	}
	preds := predecessors(out)
	defBlock := buildDefBlock(out)

	toRemove := make(map[int]map[int]bool)
	for _, l := range loops {
		ph := preheader(l, preds)
		if ph < 0 {
			continue
		}
		invariants := findInvariants(out, l, defBlock)
		for _, loc := range invariants {
			phBlock := out.Blocks[ph]
			phBlock.Statements = append(phBlock.Statements, out.Blocks[loc.block].Statements[loc.stmt])
			out.Blocks[ph] = phBlock
			if toRemove[loc.block] == nil {
				toRemove[loc.block] = make(map[int]bool)
			}
			toRemove[loc.block][loc.stmt] = true
		}
	}

	for bi, skip := range toRemove {
		bb := out.Blocks[bi]
		kept := make([]mir.Statement, 0, len(bb.Statements)-len(skip))
		for si, s := range bb.Statements {
			if !skip[si] {
				kept = append(kept, s)
			}
		}
		bb.Statements = kept
		out.Blocks[bi] = bb
	}
	return out
}
