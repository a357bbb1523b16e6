package mono

import (
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/resolve"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// Maps renumbers a cloned function's block indices, local indices, and
// drop-flag indices (spec.md §4.4): every index-addressed reference in the
// source function is rewritten through these before landing in the clone,
// so multiple instantiations of the same generic function can be spliced
// into one caller body without index collisions.
type Maps struct {
	Blocks    []int // Blocks[old] = new; a negative entry drops that block (spec.md §4.5 DCE)
	Locals    []int // Locals[old] = new; a negative entry drops that local
	DropFlags []int // DropFlags[old] = new; a negative entry drops that flag
}

// IdentityMaps returns a Maps that renumbers nothing, for tests and for
// the case where a function is cloned standalone.
func IdentityMaps(numBlocks, numLocals, numDropFlags int) Maps {
	m := Maps{
		Blocks:    make([]int, numBlocks),
		Locals:    make([]int, numLocals),
		DropFlags: make([]int, numDropFlags),
	}
	for i := range m.Blocks {
		m.Blocks[i] = i
	}
	for i := range m.Locals {
		m.Locals[i] = i
	}
	for i := range m.DropFlags {
		m.DropFlags[i] = i
	}
	return m
}

// Cloner substitutes generic-parameter references, renumbers blocks,
// locals, and drop flags, and — when a Resolver is attached — expands
// every associated-type projection the substitution produces, so the
// cloned function's types are fully ground before it is spliced anywhere
// (spec.md §4.4).
type Cloner struct {
	Mono     Monomorphiser
	Maps     Maps
	Resolver *resolve.Resolver // nil: skip associated-type expansion
}

func NewCloner(m Monomorphiser, maps Maps) *Cloner {
	return &Cloner{Mono: m, Maps: maps}
}

func (c *Cloner) WithResolver(r *resolve.Resolver) *Cloner {
	c.Resolver = r
	return c
}

func (c *Cloner) substType(ty types.TypeRef) types.TypeRef {
	out := SubstType(c.Mono, ty)
	if c.Resolver != nil {
		expanded, _ := c.Resolver.ExpandAssociatedTypes(out)
		out = expanded
	}
	return out
}

func (c *Cloner) remapBlock(old int) int {
	if old >= 0 && old < len(c.Maps.Blocks) {
		return c.Maps.Blocks[old]
	}
	return old
}

func (c *Cloner) remapLocal(old int) int {
	if old >= 0 && old < len(c.Maps.Locals) {
		return c.Maps.Locals[old]
	}
	return old
}

func (c *Cloner) remapDropFlag(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	if v >= 0 && v < len(c.Maps.DropFlags) {
		v = c.Maps.DropFlags[v]
	}
	return &v
}

// CloneFunction produces a new Function whose locals/blocks/drop-flags are
// as given (already sized/ordered by the caller per Maps), with every
// statement and terminator copied over from fn with substitution and
// renumbering applied. newLocals/newDropFlags must already be sized for
// the destination numbering; CloneFunction fills Blocks from fn's blocks.
func (c *Cloner) CloneFunction(fn mir.Function, newLocals []types.TypeRef, newDropFlags []bool) mir.Function {
	n := 0
	for _, nb := range c.Maps.Blocks {
		if nb+1 > n {
			n = nb + 1
		}
	}
	blocks := make([]mir.BasicBlock, n)
	for i, bb := range fn.Blocks {
		ni := c.remapBlock(i)
		if ni < 0 || ni >= len(blocks) {
			continue
		}
		blocks[ni] = c.cloneBlock(bb)
	}
	return mir.Function{Locals: newLocals, DropFlags: newDropFlags, Blocks: blocks}
}

func (c *Cloner) cloneBlock(bb mir.BasicBlock) mir.BasicBlock {
	stmts := make([]mir.Statement, len(bb.Statements))
	for i, s := range bb.Statements {
		stmts[i] = c.cloneStatement(s)
	}
	return mir.BasicBlock{Statements: stmts, Terminator: c.cloneTerminator(bb.Terminator)}
}

func (c *Cloner) cloneLValue(l mir.LValue) mir.LValue {
	out := l.Clone()
	switch out.Storage.Kind {
	case mir.StorageArgument, mir.StorageLocal:
		out.Storage.Index = c.remapLocal(out.Storage.Index)
	}
	for i, w := range out.Wrappers {
		if w.Kind == mir.WrapIndex {
			out.Wrappers[i].Index = c.remapLocal(w.Index)
		}
	}
	return out
}

func (c *Cloner) cloneParam(p mir.Param) mir.Param {
	out := p.Clone()
	switch out.Kind {
	case mir.ParamLValue:
		out.LValue = c.cloneLValue(out.LValue)
	case mir.ParamBorrow:
		out.BorrowType = c.substType(out.BorrowType)
		out.BorrowOf = c.cloneLValue(out.BorrowOf)
	case mir.ParamConstant:
		out.Constant = c.cloneConstant(out.Constant)
	}
	return out
}

func (c *Cloner) cloneConstant(cst mir.Constant) mir.Constant {
	out := cst.Clone()
	switch out.Kind {
	case mir.ConstInt, mir.ConstUint, mir.ConstFloat:
		out.Type = c.substType(out.Type)
	case mir.ConstGeneric:
		if concrete, ok := substConstGeneric(c.Mono, out.Ref); ok {
			return concrete
		}
	}
	return out
}

func (c *Cloner) cloneStatement(s mir.Statement) mir.Statement {
	out := s.Clone()
	switch out.Kind {
	case mir.StmtAssign:
		out.AssignDst = c.cloneLValue(out.AssignDst)
		out.AssignSrc = c.cloneRValue(out.AssignSrc)
	case mir.StmtSetDropFlag:
		out.DropFlagIdx = c.remapDropFlagIndex(out.DropFlagIdx)
		out.DropFlagOther = c.remapDropFlag(out.DropFlagOther)
	case mir.StmtSaveDropFlag, mir.StmtLoadDropFlag:
		out.SavedFlagIdx = c.remapDropFlagIndex(out.SavedFlagIdx)
	case mir.StmtDrop:
		out.DropSlot = c.cloneLValue(out.DropSlot)
		out.DropFlagRef = c.remapDropFlag(out.DropFlagRef)
	case mir.StmtScopeEnd:
		for i, li := range out.ScopeLocals {
			out.ScopeLocals[i] = c.remapLocal(li)
		}
	case mir.StmtAsm, mir.StmtAsm2:
		for i, p := range out.AsmParams {
			if p.Kind == mir.AsmReg {
				for j, l := range p.RegLVals {
					out.AsmParams[i].RegLVals[j] = c.cloneLValue(l)
				}
			}
		}
	}
	return out
}

func (c *Cloner) remapDropFlagIndex(old int) int {
	if old >= 0 && old < len(c.Maps.DropFlags) {
		return c.Maps.DropFlags[old]
	}
	return old
}

func (c *Cloner) cloneRValue(r mir.RValue) mir.RValue {
	out := r.Clone()
	switch out.Kind {
	case mir.RvUse:
		out.Use = c.cloneParam(out.Use)
	case mir.RvConstant:
		out.Const = c.cloneConstant(out.Const)
	case mir.RvSizedArray:
		out.SizedVal = c.cloneParam(out.SizedVal)
	case mir.RvBorrow:
		out.BorrowType = c.substType(out.BorrowType)
		out.BorrowOf = c.cloneLValue(out.BorrowOf)
	case mir.RvCast:
		out.CastVal = c.cloneParam(out.CastVal)
		out.CastType = c.substType(out.CastType)
	case mir.RvBinOp:
		out.BinL, out.BinR = c.cloneParam(out.BinL), c.cloneParam(out.BinR)
	case mir.RvUniOp:
		out.UniV = c.cloneParam(out.UniV)
	case mir.RvDstMeta:
		out.DstMetaOf = c.cloneLValue(out.DstMetaOf)
	case mir.RvDstPtr:
		out.DstPtrOf = c.cloneLValue(out.DstPtrOf)
	case mir.RvMakeDst:
		out.MakeDstPtr, out.MakeDstMeta = c.cloneParam(out.MakeDstPtr), c.cloneParam(out.MakeDstMeta)
	case mir.RvTuple, mir.RvArray:
		for i, v := range out.Vals {
			out.Vals[i] = c.cloneParam(v)
		}
	case mir.RvUnionVariant:
		out.UnionVal = c.cloneParam(out.UnionVal)
	case mir.RvEnumVariant:
		for i, v := range out.EnumVals {
			out.EnumVals[i] = c.cloneParam(v)
		}
	case mir.RvStruct:
		for i, v := range out.StructVals {
			out.StructVals[i] = c.cloneParam(v)
		}
	}
	return out
}

func (c *Cloner) cloneTerminator(t mir.Terminator) mir.Terminator {
	out := t.Clone()
	switch out.Kind {
	case mir.TermGoto:
		out.GotoTarget = c.remapBlock(out.GotoTarget)
	case mir.TermPanic:
		if out.PanicDst != nil {
			l := c.cloneLValue(*out.PanicDst)
			out.PanicDst = &l
		}
	case mir.TermIf:
		out.IfCond = c.cloneParam(out.IfCond)
		out.IfThen, out.IfElse = c.remapBlock(out.IfThen), c.remapBlock(out.IfElse)
	case mir.TermSwitch:
		out.SwitchVal = c.cloneLValue(out.SwitchVal)
		for i, tgt := range out.SwitchTargets {
			out.SwitchTargets[i] = c.remapBlock(tgt)
		}
	case mir.TermSwitchValue:
		out.SwitchValueVal = c.cloneParam(out.SwitchValueVal)
		out.SwitchValueDefault = c.remapBlock(out.SwitchValueDefault)
		for i, tgt := range out.SwitchValueTargets {
			out.SwitchValueTargets[i] = c.remapBlock(tgt)
		}
	case mir.TermCall:
		out.CallDst = c.cloneLValue(out.CallDst)
		out.CallRetBB, out.CallPanicBB = c.remapBlock(out.CallRetBB), c.remapBlock(out.CallPanicBB)
		if out.CallTargetK == mir.CallValue {
			out.CallTargetL = c.cloneLValue(out.CallTargetL)
		}
		for i, a := range out.CallArgs {
			out.CallArgs[i] = c.cloneParam(a)
		}
	}
	return out
}
