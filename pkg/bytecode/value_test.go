package bytecode

import (
	"bytes"
	"testing"
)

func TestValueOperandRoundTrip(t *testing.T) {
	cases := []Value{
		NewInt(0),
		NewInt(-1),
		NewInt(1 << 40),
		NewBool(true),
		NewBool(false),
		NewUnit(),
		NewFuncPtr(7),
	}

	for _, v := range cases {
		c := &Chunk{}
		v.WriteOperand(c)
		got, n := DecodeOperand(c.Code)
		if n != 9 {
			t.Fatalf("expected 9 bytes consumed, got %d", n)
		}
		if !ValuesEqual(v, got) {
			t.Errorf("round trip of %v produced %v", v, got)
		}
	}
}

func TestValueSerializeDeserialize(t *testing.T) {
	v := NewFuncPtr(3)
	var buf bytes.Buffer
	if err := v.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := DeserializeValue(&buf)
	if err != nil {
		t.Fatalf("DeserializeValue: %v", err)
	}
	if !ValuesEqual(v, got) {
		t.Errorf("expected %v, got %v", v, got)
	}
}

func TestIsTruthyPanicsOnFuncPtr(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling IsTruthy on a FuncPtr")
		}
	}()
	NewFuncPtr(0).IsTruthy()
}

func TestValuesEqualAcrossKinds(t *testing.T) {
	if ValuesEqual(NewInt(0), NewFuncPtr(0)) {
		t.Fatal("Int(0) should not equal FuncPtr(0)")
	}
}
