package optimize

import (
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mono"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// reachableBlocks performs the worklist reachability walk the teacher's
// markReachableBlocks does, over block indices instead of *BasicBlock.
func reachableBlocks(fn mir.Function) map[int]bool {
	reachable := make(map[int]bool)
	if len(fn.Blocks) == 0 {
		return reachable
	}
	worklist := []int{0}
	for len(worklist) > 0 {
		b := worklist[0]
		worklist = worklist[1:]
		if reachable[b] {
			continue
		}
		reachable[b] = true
		if b < 0 || b >= len(fn.Blocks) {
			continue
		}
		for _, s := range successors(fn.Blocks[b].Terminator) {
			if !reachable[s] {
				worklist = append(worklist, s)
			}
		}
	}
	return reachable
}

// compactingMap builds an old->new index map that keeps only the indices
// `keep` marks true, in their original order, and maps everything else to
// -1 (mono.Cloner's drop sentinel).
func compactingMap(length int, keep map[int]bool) []int {
	m := make([]int, length)
	next := 0
	for i := 0; i < length; i++ {
		if keep[i] {
			m[i] = next
			next++
		} else {
			m[i] = -1
		}
	}
	return m
}

// EliminateDeadCode drops unreachable blocks and locals/drop-flags that are
// never referenced by a live block (spec.md §4.5), reusing internal/mono's
// Cloner to do the actual index renumbering.
func EliminateDeadCode(fn mir.Function) mir.Function {
	live := reachableBlocks(fn)

	usedLocals := map[int]bool{0: true} // local 0 is the return slot
	usedFlags := map[int]bool{}
	for i, bb := range fn.Blocks {
		if !live[i] {
			continue
		}
		for _, s := range bb.Statements {
			markStatement(s, usedLocals, usedFlags)
		}
		markTerminator(bb.Terminator, usedLocals)
	}

	blockMap := compactingMap(len(fn.Blocks), live)
	localMap := compactingMap(len(fn.Locals), usedLocals)
	flagMap := compactingMap(len(fn.DropFlags), usedFlags)

	newLocals := make([]types.TypeRef, countLive(len(fn.Locals), usedLocals))
	for old, ty := range fn.Locals {
		if ni := localMap[old]; ni >= 0 {
			newLocals[ni] = ty
		}
	}
	newFlags := make([]bool, countLive(len(fn.DropFlags), usedFlags))
	for old, v := range fn.DropFlags {
		if ni := flagMap[old]; ni >= 0 {
			newFlags[ni] = v
		}
	}

	maps := mono.Maps{Blocks: blockMap, Locals: localMap, DropFlags: flagMap}
	return mono.NewCloner(mono.Identity{}, maps).CloneFunction(fn, newLocals, newFlags)
}

func countLive(length int, keep map[int]bool) int {
	n := 0
	for i := 0; i < length; i++ {
		if keep[i] {
			n++
		}
	}
	return n
}
