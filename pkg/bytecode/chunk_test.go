package bytecode

import "testing"

func TestEncodeDecodeUInt31RoundTrips(t *testing.T) {
	for _, v := range []int{0, 1, 42, 1 << 20, 1<<31 - 1} {
		var buf [4]byte
		EncodeUInt31(buf[:], v)
		got := DecodeUInt31(buf[:])
		if got != v {
			t.Errorf("EncodeUInt31/DecodeUInt31(%d): got %d", v, got)
		}
	}
}

func TestEncodeUInt31PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic encoding a negative value")
		}
	}()
	var buf [4]byte
	EncodeUInt31(buf[:], -1)
}

func TestWriteAndPatchUInt31(t *testing.T) {
	c := &Chunk{}
	c.Write(byte(OpJumpIfFalse))
	pos := c.WriteUInt31(0)

	if got := DecodeUInt31(c.Code[pos:]); got != 0 {
		t.Fatalf("expected placeholder 0, got %d", got)
	}

	c.Write(byte(OpPop))
	offset := c.Len() - (pos + 4)
	c.PatchUInt31(pos, offset)

	if got := DecodeUInt31(c.Code[pos:]); got != offset {
		t.Fatalf("expected patched offset %d, got %d", offset, got)
	}
}

func TestChunkWriteReturnsOffset(t *testing.T) {
	c := &Chunk{}
	c.Write(1, 2, 3)
	pos := c.Write(4, 5)
	if pos != 3 {
		t.Fatalf("expected offset 3, got %d", pos)
	}
	if c.Len() != 5 {
		t.Fatalf("expected length 5, got %d", c.Len())
	}
}
