// Package mangle is symbol mangling (component S of spec.md §4.6): a
// deterministic, length-prefixed ASCII grammar turning a SimplePath,
// GenericPath, Path, or TypeRef into a linker symbol, byte-for-byte
// grounded on original_source/src/trans/mangling_v2.cpp's Mangler class.
package mangle

import (
	"fmt"
	"strconv"
	"strings"
)

// encodeName applies the `fmt_name` grammar (mangling_v2.cpp): an
// identifier may contain at most one '#' or '-' (treated identically); if
// present, the name is split around it and re-joined as
// `h<prelen><prebody><postlen><postbody>`, otherwise it's a plain
// `<len><body>`. A leading digit is invalid, matching mrustc's own ASSERT.
func encodeName(s string) (string, error) {
	hashPos := -1
	for i, r := range s {
		if i == 0 && r >= '0' && r <= '9' {
			return "", fmt.Errorf("mangle: leading digit not valid in %q", s)
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		case r == '#' || r == '-':
			if hashPos != -1 {
				return "", fmt.Errorf("mangle: multiple '#'/'-' characters in %q", s)
			}
			hashPos = i
		default:
			return "", fmt.Errorf("mangle: invalid character %q in %q", r, s)
		}
	}

	if hashPos == -1 {
		return strconv.Itoa(len(s)) + s, nil
	}

	pre := s[:hashPos]
	post := s[hashPos+1:]
	var sb strings.Builder
	sb.WriteString("h")
	sb.WriteString(strconv.Itoa(len(pre)))
	sb.WriteString(pre)
	sb.WriteString(strconv.Itoa(len(post)))
	sb.WriteString(post)
	return sb.String(), nil
}
