package mono

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/target"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// byteWidth returns the encoded width of an integer/float primitive, for
// DecodeEvaluated below. usize/isize report 8 here; DecodeEvaluated uses the
// descriptor's pointer width for them instead when one is set.
func byteWidth(k types.PrimitiveKind) (int, error) {
	switch k {
	case types.U8, types.I8, types.Bool:
		return 1, nil
	case types.U16, types.I16:
		return 2, nil
	case types.U32, types.I32, types.F32, types.Char:
		return 4, nil
	case types.U64, types.I64, types.F64, types.Usize, types.Isize:
		return 8, nil
	case types.U128, types.I128:
		return 16, nil
	default:
		return 0, fmt.Errorf("mono: primitive kind %s has no fixed encoded width", k)
	}
}

// DecodeEvaluated turns a raw little/big-endian byte buffer (the const
// evaluator's output for an Unevaluated ArraySize or ConstGeneric literal)
// into a concrete mir.Constant, honouring desc's declared endianness
// (spec.md §9 Open Question: decoding is explicit about target byte order
// rather than assuming the host's).
func DecodeEvaluated(buf []byte, prim types.PrimitiveKind, desc target.Descriptor) (mir.Constant, error) {
	width, err := byteWidth(prim)
	if err != nil {
		return mir.Constant{}, err
	}
	if (prim == types.Usize || prim == types.Isize) && desc.PointerBits > 0 {
		width = desc.PointerBits / 8
	}
	if len(buf) < width {
		return mir.Constant{}, fmt.Errorf("mono: evaluated literal for %s needs %d bytes, got %d", prim, width, len(buf))
	}
	buf = buf[:width]
	ty := types.NewPrimitive(prim)

	if prim == types.Bool {
		return mir.Bool(buf[0] != 0), nil
	}
	u := desc.Uint(buf)
	if prim.IsUnsigned() || prim == types.Char {
		return mir.Uint(u, ty), nil
	}
	if prim == types.F32 || prim == types.F64 {
		return mir.Constant{}, fmt.Errorf("mono: floating-point const-generic literals are not supported (spec §9)")
	}
	signBit := uint64(1) << (uint(width)*8 - 1)
	if u&signBit != 0 {
		signed := int64(u) - int64(signBit)*2
		return mir.Int(signed, ty), nil
	}
	return mir.Int(int64(u), ty), nil
}

// substConstGeneric resolves Constant::Generic(ref) through m, producing a
// concrete integer constant when the substitution yields one. The result
// is typed usize absent a more specific declared type, since ConstGeneric
// itself carries no type information (internal/resolve.GetConstParamType
// is the authority on a const parameter's declared type; callers that have
// it on hand should prefer building the Constant themselves).
func substConstGeneric(m Monomorphiser, ref types.GenericRef) (mir.Constant, bool) {
	sub, ok := m.Const(ref)
	if !ok || sub.Kind != types.ConstInteger {
		return mir.Constant{}, false
	}
	return mir.Uint(sub.Value, types.NewPrimitive(types.Usize)), true
}
