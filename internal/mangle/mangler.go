package mangle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/malphas-lang/malphas-lang/internal/types"
)

// mangler accumulates the encoded grammar into a strings.Builder, mirroring
// the teacher-independent, original_source-grounded Mangler class's
// single-ostream-sink design.
type mangler struct {
	sb strings.Builder
}

func (m *mangler) simplePath(p types.SimplePath) error {
	m.sb.WriteString(strconv.Itoa(len(p.Components)))
	m.sb.WriteString("c")
	name, err := encodeName(p.Crate.String())
	if err != nil {
		return err
	}
	m.sb.WriteString(name)
	for _, c := range p.Components {
		name, err := encodeName(c.String())
		if err != nil {
			return err
		}
		m.sb.WriteString(name)
	}
	return nil
}

func (m *mangler) pathParams(pp types.PathParams) error {
	m.sb.WriteString(strconv.Itoa(len(pp.Types)))
	m.sb.WriteString("g")
	for _, t := range pp.Types {
		if err := m.typeRef(t); err != nil {
			return err
		}
	}
	return nil
}

func (m *mangler) genericPath(gp types.GenericPath) error {
	if err := m.simplePath(gp.Path); err != nil {
		return err
	}
	return m.pathParams(gp.Params)
}

func (m *mangler) path(p types.Path) error {
	switch p.Kind {
	case types.PathGeneric:
		m.sb.WriteString("G")
		return m.genericPath(p.GenericP)
	case types.PathUfcsInherent:
		m.sb.WriteString("I")
		if err := m.typeRef(*p.Type); err != nil {
			return err
		}
		name, err := encodeName(p.Item.String())
		if err != nil {
			return err
		}
		m.sb.WriteString(name)
		return m.pathParams(p.Params)
	case types.PathUfcsKnown:
		m.sb.WriteString("Q")
		if err := m.typeRef(*p.Type); err != nil {
			return err
		}
		if err := m.genericPath(p.Trait); err != nil {
			return err
		}
		name, err := encodeName(p.Item.String())
		if err != nil {
			return err
		}
		m.sb.WriteString(name)
		return m.pathParams(p.Params)
	case types.PathUfcsUnknown:
		return fmt.Errorf("mangle: non-encodable path %s (UfcsUnknown)", p.String())
	default:
		return fmt.Errorf("mangle: unknown path kind %d", p.Kind)
	}
}

var primitiveCodes = map[types.PrimitiveKind]byte{
	types.U8: 'a', types.I8: 'b', types.U16: 'c', types.I16: 'd',
	types.U32: 'e', types.I32: 'f', types.U64: 'g', types.I64: 'h',
	types.U128: 'i', types.I128: 'j',
	types.F32: 'n', types.F64: 'o',
	types.Usize: 'u', types.Isize: 'v',
	types.Bool: 'w', types.Char: 'x', types.Str: 'y',
	types.Never: 'z',
}

func borrowCode(k types.BorrowKind) string {
	switch k {
	case types.Shared:
		return "s"
	case types.Unique:
		return "u"
	case types.Owned:
		return "o"
	default:
		return "?"
	}
}

func (m *mangler) typeRef(ty types.TypeRef) error {
	switch ty.Tag {
	case types.TagGeneric, types.TagOpaque, types.TagClosure:
		return fmt.Errorf("mangle: non-encodable type %s", ty.String())
	case types.TagTuple:
		m.sb.WriteString("T")
		m.sb.WriteString(strconv.Itoa(len(ty.Elems)))
		for _, e := range ty.Elems {
			if err := m.typeRef(e); err != nil {
				return err
			}
		}
		return nil
	case types.TagSlice:
		m.sb.WriteString("S")
		return m.typeRef(*ty.Inner)
	case types.TagArray:
		if ty.Size.Known == nil {
			return fmt.Errorf("mangle: array type %s has no known size", ty.String())
		}
		m.sb.WriteString("A")
		m.sb.WriteString(strconv.FormatUint(*ty.Size.Known, 10))
		return m.typeRef(*ty.Inner)
	case types.TagNominal:
		m.sb.WriteString("N")
		return m.path(ty.Nominal)
	case types.TagTraitObject:
		m.sb.WriteString("D")
		if ty.TraitObjPrincipal != nil {
			if err := m.genericPath(ty.TraitObjPrincipal.GenericPath()); err != nil {
				return err
			}
			m.sb.WriteString(strconv.Itoa(len(ty.TraitObjPrincipal.AssocBounds)))
			for _, name := range sortedAssocNames(ty.TraitObjPrincipal.AssocBounds) {
				if err := m.typeRef(ty.TraitObjPrincipal.AssocBounds[name]); err != nil {
					return err
				}
			}
		} else {
			if err := m.genericPath(types.GenericPath{}); err != nil {
				return err
			}
			m.sb.WriteString("0")
		}
		m.sb.WriteString(strconv.Itoa(len(ty.TraitObjMarkers)))
		for _, marker := range ty.TraitObjMarkers {
			if err := m.genericPath(types.GenericPath{Path: marker}); err != nil {
				return err
			}
		}
		return nil
	case types.TagFunction:
		m.sb.WriteString("F")
		if ty.FnIsUnsafe {
			m.sb.WriteString("u")
		}
		if ty.FnAbi != types.ABIRust {
			m.sb.WriteString("e")
			name, err := encodeName(string(ty.FnAbi))
			if err != nil {
				return err
			}
			m.sb.WriteString(name)
		}
		m.sb.WriteString(strconv.Itoa(len(ty.FnArgs)))
		for _, a := range ty.FnArgs {
			if err := m.typeRef(a); err != nil {
				return err
			}
		}
		return m.typeRef(*ty.FnRet)
	case types.TagBorrow:
		m.sb.WriteString("B")
		m.sb.WriteString(borrowCode(ty.Borrow))
		return m.typeRef(*ty.Inner)
	case types.TagPointer:
		m.sb.WriteString("P")
		m.sb.WriteString(borrowCode(ty.Borrow))
		return m.typeRef(*ty.Inner)
	case types.TagPrimitive:
		code, ok := primitiveCodes[ty.Primitive]
		if !ok {
			return fmt.Errorf("mangle: unknown primitive %s", ty.Primitive)
		}
		m.sb.WriteByte('C')
		m.sb.WriteByte(code)
		return nil
	default:
		return fmt.Errorf("mangle: unknown type tag %d", ty.Tag)
	}
}

func sortedAssocNames(m map[string]types.TypeRef) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
