package vfs

import "testing"

func TestReadWriteByteBigEndianPacking(t *testing.T) {
	var b Block
	writeByte(&b, 0, 0xAB)
	writeByte(&b, 3, 0xCD)
	want := uint32(0xAB000000 | 0xCD)
	if b[0] != int32(want) {
		t.Fatalf("cell 0 = %#x", b[0])
	}
	if got := readByte(&b, 0); got != 0xAB {
		t.Fatalf("readByte(0) = %#x, want 0xAB", got)
	}
	if got := readByte(&b, 3); got != 0xCD {
		t.Fatalf("readByte(3) = %#x, want 0xCD", got)
	}
}

func TestWriteByteOnlyTouchesItsOwnByte(t *testing.T) {
	var b Block
	for p := 0; p < BlockBytes; p++ {
		writeByte(&b, p, byte(p))
	}
	for p := 0; p < BlockBytes; p++ {
		if got := readByte(&b, p); got != byte(p) {
			t.Fatalf("readByte(%d) = %d, want %d", p, got, p)
		}
	}
}
