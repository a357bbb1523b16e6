package mangle

import (
	"hash/fnv"
	"strconv"

	"github.com/malphas-lang/malphas-lang/internal/types"
)

// maxLen is the over-long-symbol cutoff from mangling_v2.cpp's max_len():
// past this many bytes, truncate and append a hash of the full string so
// the symbol stays unique without growing unbounded.
const maxLen = 128

// truncate applies the 128-byte truncation + hash-suffix rule.
func truncate(s string) string {
	if len(s) <= maxLen {
		return s
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return s[:maxLen-9] + "$" + strconv.FormatUint(h.Sum64(), 16)
}

// SimplePath mangles a bare SimplePath with no type parameters
// (Trans_MangleSimplePath: "ZRG" + simple_path + empty path_params).
func SimplePath(p types.SimplePath) (string, error) {
	var m mangler
	m.sb.WriteString("ZRG")
	if err := m.simplePath(p); err != nil {
		return "", err
	}
	if err := m.pathParams(types.PathParams{}); err != nil {
		return "", err
	}
	return truncate(m.sb.String()), nil
}

// GenericPath mangles a GenericPath ("ZRG" + generic_path).
func GenericPath(p types.GenericPath) (string, error) {
	var m mangler
	m.sb.WriteString("ZRG")
	if err := m.genericPath(p); err != nil {
		return "", err
	}
	return truncate(m.sb.String()), nil
}

// TypePath mangles a full Path ("ZR" + path), covering UFCS forms that
// GenericPath cannot express.
func TypePath(p types.Path) (string, error) {
	var m mangler
	m.sb.WriteString("ZR")
	if err := m.path(p); err != nil {
		return "", err
	}
	return truncate(m.sb.String()), nil
}

// TypeRef mangles a bare TypeRef ("ZRT" + type).
func TypeRef(ty types.TypeRef) (string, error) {
	var m mangler
	m.sb.WriteString("ZRT")
	if err := m.typeRef(ty); err != nil {
		return "", err
	}
	return truncate(m.sb.String()), nil
}
