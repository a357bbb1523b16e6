package types

// Compare gives TypeRef a total order, identical across builds, so that
// cached resolver/cloner decisions keyed on a TypeRef stay stable
// (spec.md §4.1 "Equality contract": "Ordering is lexicographic on the tag
// then on the payload, defined identically across builds so that cached
// decisions are stable"). Returns -1, 0, or 1.
func Compare(a, b TypeRef) int {
	if a.Tag != b.Tag {
		return cmpU8(uint8(a.Tag), uint8(b.Tag))
	}
	switch a.Tag {
	case TagPrimitive:
		return cmpU8(uint8(a.Primitive), uint8(b.Primitive))
	case TagGeneric:
		return cmpGenericRef(a.Generic, b.Generic)
	case TagTuple:
		return cmpTypeSlices(a.Elems, b.Elems)
	case TagSlice:
		return Compare(*a.Inner, *b.Inner)
	case TagArray:
		if c := cmpArraySize(a.Size, b.Size); c != 0 {
			return c
		}
		return Compare(*a.Inner, *b.Inner)
	case TagBorrow:
		if c := cmpU8(uint8(a.Borrow), uint8(b.Borrow)); c != 0 {
			return c
		}
		return Compare(*a.Inner, *b.Inner)
	case TagPointer:
		if c := cmpU8(uint8(a.Pointer), uint8(b.Pointer)); c != 0 {
			return c
		}
		return Compare(*a.Inner, *b.Inner)
	case TagFunction:
		if a.FnIsUnsafe != b.FnIsUnsafe {
			if !a.FnIsUnsafe {
				return -1
			}
			return 1
		}
		if a.FnAbi != b.FnAbi {
			if a.FnAbi < b.FnAbi {
				return -1
			}
			return 1
		}
		if c := cmpTypeSlices(a.FnArgs, b.FnArgs); c != 0 {
			return c
		}
		return Compare(*a.FnRet, *b.FnRet)
	case TagTraitObject:
		if c := cmpGenericPath(a.TraitObjPrincipal.GenericPath(), b.TraitObjPrincipal.GenericPath()); c != 0 {
			return c
		}
		return cmpSimplePathSlices(a.TraitObjMarkers, b.TraitObjMarkers)
	case TagNominal:
		return cmpPath(a.Nominal, b.Nominal)
	case TagOpaque:
		return cmpPath(a.OpaqueOrigin, b.OpaqueOrigin)
	case TagClosure:
		if a.ClosureIsGen != b.ClosureIsGen {
			if !a.ClosureIsGen {
				return -1
			}
			return 1
		}
		return cmpPath(a.ClosureOrigin, b.ClosureOrigin)
	}
	return 0
}

func cmpU8(a, b uint8) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func cmpGenericRef(a, b GenericRef) int {
	if a.Group != b.Group {
		return cmpU8(uint8(a.Group), uint8(b.Group))
	}
	return cmpInt(a.Index, b.Index)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func cmpTypeSlices(a, b []TypeRef) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func cmpArraySize(a, b ArraySize) int {
	rank := func(s ArraySize) int {
		switch {
		case s.Known != nil:
			return 0
		case s.Ref != nil:
			return 1
		default:
			return 2
		}
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	switch ra {
	case 0:
		if *a.Known < *b.Known {
			return -1
		}
		if *a.Known > *b.Known {
			return 1
		}
		return 0
	case 1:
		return cmpGenericRef(*a.Ref, *b.Ref)
	default:
		if a.UnevalKey < b.UnevalKey {
			return -1
		}
		if a.UnevalKey > b.UnevalKey {
			return 1
		}
		return 0
	}
}

func cmpSimplePath(a, b SimplePath) int {
	if a.Crate != b.Crate {
		if a.Crate.Less(b.Crate) {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Components) && i < len(b.Components); i++ {
		if a.Components[i] != b.Components[i] {
			if a.Components[i].Less(b.Components[i]) {
				return -1
			}
			return 1
		}
	}
	return cmpInt(len(a.Components), len(b.Components))
}

func cmpSimplePathSlices(a, b []SimplePath) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmpSimplePath(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func cmpPathParams(a, b PathParams) int {
	if c := cmpTypeSlices(a.Types, b.Types); c != 0 {
		return c
	}
	if c := cmpInt(len(a.Consts), len(b.Consts)); c != 0 {
		return c
	}
	for i := range a.Consts {
		if c := compareConstGeneric(a.Consts[i], b.Consts[i]); c != 0 {
			return c
		}
	}
	return 0
}

func cmpGenericPath(a, b GenericPath) int {
	if c := cmpSimplePath(a.Path, b.Path); c != 0 {
		return c
	}
	return cmpPathParams(a.Params, b.Params)
}

func cmpPath(a, b Path) int {
	if a.Kind != b.Kind {
		return cmpU8(uint8(a.Kind), uint8(b.Kind))
	}
	switch a.Kind {
	case PathGeneric:
		return cmpGenericPath(a.GenericP, b.GenericP)
	case PathUfcsInherent:
		if c := Compare(*a.Type, *b.Type); c != 0 {
			return c
		}
		if a.Item != b.Item {
			if a.Item.Less(b.Item) {
				return -1
			}
			return 1
		}
		return cmpPathParams(a.Params, b.Params)
	case PathUfcsKnown:
		if c := Compare(*a.Type, *b.Type); c != 0 {
			return c
		}
		if c := cmpGenericPath(a.Trait, b.Trait); c != 0 {
			return c
		}
		if a.Item != b.Item {
			if a.Item.Less(b.Item) {
				return -1
			}
			return 1
		}
		return cmpPathParams(a.Params, b.Params)
	case PathUfcsUnknown:
		if c := Compare(*a.Type, *b.Type); c != 0 {
			return c
		}
		if a.Item != b.Item {
			if a.Item.Less(b.Item) {
				return -1
			}
			return 1
		}
		return cmpPathParams(a.Params, b.Params)
	}
	return 0
}

func compareConstGeneric(a, b ConstGeneric) int {
	if a.Kind != b.Kind {
		return cmpU8(uint8(a.Kind), uint8(b.Kind))
	}
	switch a.Kind {
	case ConstInteger:
		if a.Value < b.Value {
			return -1
		}
		if a.Value > b.Value {
			return 1
		}
		return 0
	case ConstGenericParam:
		return cmpGenericRef(a.Ref, b.Ref)
	case ConstUnevaluated:
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return 0
	}
	return 0
}
