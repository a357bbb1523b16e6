package types

// ConstGenericKind discriminates a const-generic argument: either a known
// literal value or an unbound reference to a const generic parameter
// (spec.md §3 Path parameters / §4.4 Constant::Generic).
type ConstGenericKind uint8

const (
	ConstUnknown ConstGenericKind = iota
	ConstInteger
	ConstGenericParam
	ConstUnevaluated
)

type ConstGeneric struct {
	Kind  ConstGenericKind
	Value uint64     // ConstInteger: the bit pattern, typed by context
	Ref   GenericRef // ConstGenericParam
	Key   string     // ConstUnevaluated: opaque identity of the unevaluated expression
}

func ConstInt(v uint64) ConstGeneric              { return ConstGeneric{Kind: ConstInteger, Value: v} }
func ConstParam(g GenericRef) ConstGeneric         { return ConstGeneric{Kind: ConstGenericParam, Ref: g} }
func ConstUneval(key string) ConstGeneric          { return ConstGeneric{Kind: ConstUnevaluated, Key: key} }

func (c ConstGeneric) String() string {
	switch c.Kind {
	case ConstInteger:
		return uitoa(c.Value)
	case ConstGenericParam:
		return c.Ref.String()
	case ConstUnevaluated:
		return "{" + c.Key + "}"
	default:
		return "?"
	}
}

// LifetimeRef names a lifetime parameter; lifetimes are tracked for bound
// checking (spec.md §3 Lifetime/TypeLifetime bounds) but never participate
// in mangling (spec.md §4.6: "const and lifetime arguments omitted at this
// level").
type LifetimeRef struct {
	Ref   GenericRef
	Named bool // false for the elided/'static placeholder
}

func (l LifetimeRef) String() string {
	if !l.Named {
		return "'_"
	}
	return "'" + l.Ref.String()
}
