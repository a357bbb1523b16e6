package mir

import "github.com/malphas-lang/malphas-lang/internal/types"

// ConstKind discriminates the MIR Constant sum (spec.md §3).
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstUint
	ConstFloat
	ConstBool
	ConstBytes
	ConstStaticString
	ConstNamed   // Const(path): a named constant to be evaluated
	ConstGeneric // Generic(ref): a const-generic parameter
	ConstFunction
	ConstItemAddr // nullable; the null form is an unsized-coercion metadata placeholder
)

// Constant is one of the MIR constant forms (spec.md §3).
type Constant struct {
	Kind ConstKind

	IntValue   int64          // ConstInt
	UintValue  uint64         // ConstUint
	FloatValue float64        // ConstFloat
	FloatBits  uint8          // ConstFloat: 32 or 64
	BoolValue  bool           // ConstBool
	BytesValue []byte         // ConstBytes
	StrValue   string         // ConstStaticString
	Type       types.TypeRef  // ConstInt, ConstUint, ConstFloat: the literal's concrete type

	Path types.SimplePath // ConstNamed, ConstFunction

	Ref types.GenericRef // ConstGeneric

	ItemAddr     *types.Path // ConstItemAddr; nil means the null placeholder form
}

func Int(v int64, ty types.TypeRef) Constant   { return Constant{Kind: ConstInt, IntValue: v, Type: ty} }
func Uint(v uint64, ty types.TypeRef) Constant  { return Constant{Kind: ConstUint, UintValue: v, Type: ty} }
func Float(v float64, bits uint8, ty types.TypeRef) Constant {
	return Constant{Kind: ConstFloat, FloatValue: v, FloatBits: bits, Type: ty}
}
func Bool(v bool) Constant             { return Constant{Kind: ConstBool, BoolValue: v} }
func Bytes(b []byte) Constant          { return Constant{Kind: ConstBytes, BytesValue: append([]byte(nil), b...)} }
func StaticString(s string) Constant   { return Constant{Kind: ConstStaticString, StrValue: s} }
func Named(p types.SimplePath) Constant { return Constant{Kind: ConstNamed, Path: p} }
func GenericConst(r types.GenericRef) Constant { return Constant{Kind: ConstGeneric, Ref: r} }
func FunctionConst(p types.SimplePath) Constant { return Constant{Kind: ConstFunction, Path: p} }
func ItemAddr(p *types.Path) Constant      { return Constant{Kind: ConstItemAddr, ItemAddr: p} }

func (c Constant) Equal(o Constant) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ConstInt:
		return c.IntValue == o.IntValue && c.Type.Equal(o.Type)
	case ConstUint:
		return c.UintValue == o.UintValue && c.Type.Equal(o.Type)
	case ConstFloat:
		return c.FloatValue == o.FloatValue && c.FloatBits == o.FloatBits && c.Type.Equal(o.Type)
	case ConstBool:
		return c.BoolValue == o.BoolValue
	case ConstBytes:
		if len(c.BytesValue) != len(o.BytesValue) {
			return false
		}
		for i := range c.BytesValue {
			if c.BytesValue[i] != o.BytesValue[i] {
				return false
			}
		}
		return true
	case ConstStaticString:
		return c.StrValue == o.StrValue
	case ConstNamed, ConstFunction:
		return c.Path.Equal(o.Path)
	case ConstGeneric:
		return c.Ref == o.Ref
	case ConstItemAddr:
		if (c.ItemAddr == nil) != (o.ItemAddr == nil) {
			return false
		}
		if c.ItemAddr == nil {
			return true
		}
		return c.ItemAddr.Equal(*o.ItemAddr)
	}
	return false
}

func (c Constant) Clone() Constant {
	cc := c
	if c.BytesValue != nil {
		cc.BytesValue = append([]byte(nil), c.BytesValue...)
	}
	if c.ItemAddr != nil {
		p := *c.ItemAddr
		cc.ItemAddr = &p
	}
	return cc
}
