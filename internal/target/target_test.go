package target_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/target"
)

func TestParseDefaultsToLittleEndian64Bit(t *testing.T) {
	d, err := target.Parse([]byte("name: x86_64-unknown-linux-gnu\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.PointerBits != 64 || d.Endianness != target.LittleEndian {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestParseExplicitBigEndian(t *testing.T) {
	d, err := target.Parse([]byte("name: powerpc64-unknown-linux-gnu\npointer_bits: 64\nendianness: big\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Endianness != target.BigEndian {
		t.Fatalf("expected big endian, got %s", d.Endianness)
	}
}

func TestPutUintRoundTrips(t *testing.T) {
	for _, d := range []target.Descriptor{target.Default, {Endianness: target.BigEndian}} {
		buf := d.PutUint(0x1234, 4)
		if got := d.Uint(buf); got != 0x1234 {
			t.Fatalf("round trip failed for %+v: got %x", d, got)
		}
	}
}
