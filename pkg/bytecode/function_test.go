package bytecode

import (
	"bytes"
	"testing"
)

func TestHeapReserveAndGet(t *testing.T) {
	h := NewHeap()
	if h.Len() != 1 {
		t.Fatalf("expected 1 reserved slot for main, got %d", h.Len())
	}

	slot := h.Reserve(2)
	if slot != 1 {
		t.Fatalf("expected slot 1, got %d", slot)
	}

	h.Get(slot).Chunk.Write(byte(OpReturn))
	h.Set(slot, &Function{Arity: 2, Chunk: h.Get(slot).Chunk})

	fn := h.Get(slot)
	if fn.Arity != 2 {
		t.Fatalf("expected arity 2, got %d", fn.Arity)
	}
}

func TestHeapGetPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range FuncPtr")
		}
	}()
	NewHeap().Get(99)
}

func TestHeapSerializeDeserializeRoundTrip(t *testing.T) {
	h := NewHeap()
	h.Get(0).Chunk.Write(byte(OpPush))
	NewInt(42).WriteOperand(h.Get(0).Chunk)
	h.Get(0).Chunk.Write(byte(OpPrintInt))

	var buf bytes.Buffer
	if err := h.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := DeserializeHeap(&buf)
	if err != nil {
		t.Fatalf("DeserializeHeap: %v", err)
	}

	if got.Len() != h.Len() {
		t.Fatalf("expected %d functions, got %d", h.Len(), got.Len())
	}
	if !bytes.Equal(got.Get(0).Chunk.Code, h.Get(0).Chunk.Code) {
		t.Fatalf("round-tripped chunk bytes differ")
	}
}
