// Package target describes the compilation target a crate is being built
// for: pointer width and byte order. It resolves spec.md §9's Open
// Question of which endianness const-generic literal decoding should
// assume, by making the target descriptor an explicit, loaded-from-config
// value rather than hard-coding host endianness (spec.md §9; grounded on
// original_source/tools/common/target_detect.h's per-target-name table,
// generalised here to a data file instead of compiled-in #ifdefs).
package target

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Endianness is the target's byte order for multi-byte scalar encoding.
type Endianness string

const (
	LittleEndian Endianness = "little"
	BigEndian    Endianness = "big"
)

// Descriptor is the subset of a target spec this module needs: enough to
// decode a Constant::Generic literal in internal/mono, whose decoder reads
// Endianness for byte order and PointerBits for the width of usize/isize.
type Descriptor struct {
	Name         string     `yaml:"name"`
	PointerBits  int        `yaml:"pointer_bits"`
	Endianness   Endianness `yaml:"endianness"`
}

// Default is x86_64-unknown-linux-gnu, mrustc's own default host target
// (original_source/tools/common/target_detect.h).
var Default = Descriptor{Name: "x86_64-unknown-linux-gnu", PointerBits: 64, Endianness: LittleEndian}

// Parse loads a Descriptor from YAML (spec.md's AMBIENT STACK config
// section: target descriptors are config, not code).
func Parse(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("target: parse descriptor: %w", err)
	}
	if d.PointerBits == 0 {
		d.PointerBits = 64
	}
	if d.Endianness == "" {
		d.Endianness = LittleEndian
	}
	return d, nil
}

// PutUint writes v into a width-byte buffer using this descriptor's byte
// order; it is the inverse of Uint.
func (d Descriptor) PutUint(v uint64, width int) []byte {
	buf := make([]byte, width)
	switch d.Endianness {
	case BigEndian:
		for i := width - 1; i >= 0; i-- {
			buf[i] = byte(v)
			v >>= 8
		}
	default:
		for i := 0; i < width; i++ {
			buf[i] = byte(v)
			v >>= 8
		}
	}
	return buf
}

// Uint reads a width-byte unsigned integer from buf using this
// descriptor's byte order.
func (d Descriptor) Uint(buf []byte) uint64 {
	var v uint64
	switch d.Endianness {
	case BigEndian:
		for _, b := range buf {
			v = v<<8 | uint64(b)
		}
	default:
		for i := len(buf) - 1; i >= 0; i-- {
			v = v<<8 | uint64(buf[i])
		}
	}
	return v
}
