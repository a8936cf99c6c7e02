package objectid

import "testing"

func TestNoneIsZeroValue(t *testing.T) {
	var id ID
	if !id.IsNone() {
		t.Error("zero value ID must be None")
	}
	if id.Tag() != TagNone {
		t.Errorf("zero value Tag() = %v, want TagNone", id.Tag())
	}
}

func TestFromInt(t *testing.T) {
	id := FromInt(42)
	n, ok := id.Int()
	if !ok || n != 42 {
		t.Errorf("Int() = (%v, %v), want (42, true)", n, ok)
	}
	if _, ok := id.OID(); ok {
		t.Error("an Int id must not report an OID")
	}
}

func TestFromOIDRoundTrip(t *testing.T) {
	var b [12]byte
	for i := range b {
		b[i] = byte(i)
	}
	id := FromOID(b[:])
	got, ok := id.OID()
	if !ok || got != b {
		t.Errorf("OID() = (%v, %v), want (%v, true)", got, ok, b)
	}
}

func TestFromOIDWrongLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromOID with wrong-length input should panic")
		}
	}()
	FromOID([]byte{1, 2, 3})
}

func TestNewOIDGeneratesDistinctIDs(t *testing.T) {
	a, err := NewOID()
	if err != nil {
		t.Fatalf("NewOID: %v", err)
	}
	b, err := NewOID()
	if err != nil {
		t.Fatalf("NewOID: %v", err)
	}
	if a.Compare(b) == 0 {
		t.Error("two random NewOID calls produced equal ids (statistically implausible)")
	}
}

func TestCompareOrdersNoneBeforeIntBeforeOID(t *testing.T) {
	none := None()
	i := FromInt(0)
	o := FromOID(make([]byte, 12))

	if none.Compare(i) >= 0 {
		t.Error("None must compare less than any Int id")
	}
	if i.Compare(o) >= 0 {
		t.Error("Int must compare less than any OID id")
	}
}

func TestCompareOrdersWithinIntTag(t *testing.T) {
	a := FromInt(1)
	b := FromInt(2)
	if a.Compare(b) >= 0 {
		t.Error("FromInt(1) must compare less than FromInt(2)")
	}
	if b.Compare(a) <= 0 {
		t.Error("FromInt(2) must compare greater than FromInt(1)")
	}
	if a.Compare(a) != 0 {
		t.Error("an id must compare equal to itself")
	}
}
