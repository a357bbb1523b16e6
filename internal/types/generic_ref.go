package types

import "strconv"

// Group distinguishes which parameter scope a GenericRef names a slot in.
// The tag-to-slot mapping must be preserved exactly end to end: the
// Monomorphiser in internal/mono dispatches on this tag, and associated-type
// expansion in internal/resolve will silently select the wrong binding if a
// reference's group is ever normalized away (spec.md §9).
type Group uint8

const (
	GroupImpl Group = iota
	GroupItem
	GroupPlaceholder
	GroupHRB
)

func (g Group) String() string {
	switch g {
	case GroupImpl:
		return "impl"
	case GroupItem:
		return "item"
	case GroupPlaceholder:
		return "placeholder"
	case GroupHRB:
		return "hrb"
	default:
		return "?"
	}
}

// GenericRef identifies a single parameter slot: (group, index). It never
// carries a name — names are cosmetic metadata living on GenericParams,
// looked up only for diagnostics.
type GenericRef struct {
	Group Group
	Index int
}

func (g GenericRef) Less(o GenericRef) bool {
	if g.Group != o.Group {
		return g.Group < o.Group
	}
	return g.Index < o.Index
}

func (g GenericRef) String() string {
	switch g.Group {
	case GroupImpl:
		return "I#" + strconv.Itoa(g.Index)
	case GroupItem:
		return "A#" + strconv.Itoa(g.Index)
	case GroupPlaceholder:
		return "P#" + strconv.Itoa(g.Index)
	case GroupHRB:
		return "H#" + strconv.Itoa(g.Index)
	default:
		return "?#" + strconv.Itoa(g.Index)
	}
}
