package mir

import "github.com/malphas-lang/malphas-lang/internal/types"

// TermKind discriminates the Terminator sum (spec.md §3).
type TermKind uint8

const (
	TermIncomplete TermKind = iota // invalid; flagged by the validator
	TermReturn
	TermDiverge
	TermGoto
	TermPanic
	TermIf
	TermSwitch      // enum discriminant
	TermSwitchValue // typed scalar/string switch
	TermCall
)

// CallTargetKind discriminates Call.Target (spec.md §3).
type CallTargetKind uint8

const (
	CallValue CallTargetKind = iota // indirect call through an lvalue (fn pointer / closure)
	CallPath                       // direct call to a named item
	CallIntrinsic                   // call to a back-end-recognised intrinsic
)

// SwitchValueKind discriminates the typed value list of a SwitchValue
// terminator (spec.md §3): unsigned ints, signed ints, strings, or
// byte-strings. Floating point is explicitly excluded (spec.md §9 Open
// Question, resolved against: "treat as disallowed pending clarification").
type SwitchValueKind uint8

const (
	SwitchValueUnsigned SwitchValueKind = iota
	SwitchValueSigned
	SwitchValueString
	SwitchValueBytes
)

// SwitchValueEntry is one typed value in a SwitchValue terminator's value
// list, ordinally aligned with its target block (spec.md §3).
type SwitchValueEntry struct {
	Kind   SwitchValueKind
	Uint   uint64
	Int    int64
	Str    string
	Bytes  []byte
}

// Terminator is the control-flow-transferring operation that ends a basic
// block (spec.md §3). Every block index below refers to Function.Blocks.
type Terminator struct {
	Kind TermKind

	GotoTarget int // TermGoto

	PanicDst *LValue // TermPanic

	IfCond  Param // TermIf
	IfThen  int
	IfElse  int

	SwitchVal     LValue // TermSwitch
	SwitchTargets []int

	SwitchValueVal     Param // TermSwitchValue
	SwitchValueDefault int
	SwitchValueTargets []int
	SwitchValueValues  []SwitchValueEntry

	CallRetBB   int // TermCall
	CallPanicBB int
	CallDst     LValue
	CallTargetK CallTargetKind
	CallTargetL LValue          // CallValue
	CallTargetP types.Path      // CallPath
	CallIntrinsicName   string  // CallIntrinsic
	CallIntrinsicParams types.PathParams
	CallArgs    []Param
}

func Incomplete() Terminator { return Terminator{Kind: TermIncomplete} }
func RetTerm() Terminator    { return Terminator{Kind: TermReturn} }
func Diverge() Terminator    { return Terminator{Kind: TermDiverge} }
func Goto(bb int) Terminator { return Terminator{Kind: TermGoto, GotoTarget: bb} }
func Panic(dst *LValue) Terminator { return Terminator{Kind: TermPanic, PanicDst: dst} }
func If(cond Param, t, f int) Terminator {
	return Terminator{Kind: TermIf, IfCond: cond, IfThen: t, IfElse: f}
}
func Switch(val LValue, targets []int) Terminator {
	return Terminator{Kind: TermSwitch, SwitchVal: val, SwitchTargets: targets}
}
func SwitchValueTerm(val Param, def int, targets []int, values []SwitchValueEntry) Terminator {
	return Terminator{Kind: TermSwitchValue, SwitchValueVal: val, SwitchValueDefault: def, SwitchValueTargets: targets, SwitchValueValues: values}
}
func CallValueTerm(retBB, panicBB int, dst LValue, target LValue, args []Param) Terminator {
	return Terminator{Kind: TermCall, CallRetBB: retBB, CallPanicBB: panicBB, CallDst: dst, CallTargetK: CallValue, CallTargetL: target, CallArgs: args}
}
func CallPathTerm(retBB, panicBB int, dst LValue, target types.Path, args []Param) Terminator {
	return Terminator{Kind: TermCall, CallRetBB: retBB, CallPanicBB: panicBB, CallDst: dst, CallTargetK: CallPath, CallTargetP: target, CallArgs: args}
}
func CallIntrinsicTerm(retBB, panicBB int, dst LValue, name string, pp types.PathParams, args []Param) Terminator {
	return Terminator{Kind: TermCall, CallRetBB: retBB, CallPanicBB: panicBB, CallDst: dst, CallTargetK: CallIntrinsic, CallIntrinsicName: name, CallIntrinsicParams: pp, CallArgs: args}
}

func intSliceEq(a, b []int) bool { return intSliceEqual(a, b) }

func switchValuesEqual(a, b []SwitchValueEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return false
		}
		switch a[i].Kind {
		case SwitchValueUnsigned:
			if a[i].Uint != b[i].Uint {
				return false
			}
		case SwitchValueSigned:
			if a[i].Int != b[i].Int {
				return false
			}
		case SwitchValueString:
			if a[i].Str != b[i].Str {
				return false
			}
		case SwitchValueBytes:
			if len(a[i].Bytes) != len(b[i].Bytes) {
				return false
			}
			for j := range a[i].Bytes {
				if a[i].Bytes[j] != b[i].Bytes[j] {
					return false
				}
			}
		}
	}
	return true
}

func (t Terminator) Equal(o Terminator) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TermIncomplete, TermReturn, TermDiverge:
		return true
	case TermGoto:
		return t.GotoTarget == o.GotoTarget
	case TermPanic:
		if (t.PanicDst == nil) != (o.PanicDst == nil) {
			return false
		}
		return t.PanicDst == nil || t.PanicDst.Equal(*o.PanicDst)
	case TermIf:
		return t.IfCond.Equal(o.IfCond) && t.IfThen == o.IfThen && t.IfElse == o.IfElse
	case TermSwitch:
		return t.SwitchVal.Equal(o.SwitchVal) && intSliceEq(t.SwitchTargets, o.SwitchTargets)
	case TermSwitchValue:
		return t.SwitchValueVal.Equal(o.SwitchValueVal) && t.SwitchValueDefault == o.SwitchValueDefault &&
			intSliceEq(t.SwitchValueTargets, o.SwitchValueTargets) && switchValuesEqual(t.SwitchValueValues, o.SwitchValueValues)
	case TermCall:
		if t.CallRetBB != o.CallRetBB || t.CallPanicBB != o.CallPanicBB || !t.CallDst.Equal(o.CallDst) || t.CallTargetK != o.CallTargetK {
			return false
		}
		switch t.CallTargetK {
		case CallValue:
			if !t.CallTargetL.Equal(o.CallTargetL) {
				return false
			}
		case CallPath:
			if !t.CallTargetP.Equal(o.CallTargetP) {
				return false
			}
		case CallIntrinsic:
			if t.CallIntrinsicName != o.CallIntrinsicName {
				return false
			}
		}
		return equalParamSlice(t.CallArgs, o.CallArgs)
	}
	return false
}

func (t Terminator) Clone() Terminator {
	c := t
	switch t.Kind {
	case TermPanic:
		if t.PanicDst != nil {
			l := t.PanicDst.Clone()
			c.PanicDst = &l
		}
	case TermIf:
		c.IfCond = t.IfCond.Clone()
	case TermSwitch:
		c.SwitchVal = t.SwitchVal.Clone()
		c.SwitchTargets = append([]int(nil), t.SwitchTargets...)
	case TermSwitchValue:
		c.SwitchValueVal = t.SwitchValueVal.Clone()
		c.SwitchValueTargets = append([]int(nil), t.SwitchValueTargets...)
		c.SwitchValueValues = append([]SwitchValueEntry(nil), t.SwitchValueValues...)
	case TermCall:
		c.CallDst = t.CallDst.Clone()
		c.CallArgs = cloneParamSlice(t.CallArgs)
		if t.CallTargetK == CallValue {
			c.CallTargetL = t.CallTargetL.Clone()
		}
	}
	return c
}
