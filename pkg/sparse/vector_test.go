package sparse

import (
	"math"
	"testing"
)

func TestVectorSetGet(t *testing.T) {
	v := NewVector(0, 0)
	v.Set(1, 2.5)
	if got := v.Get(1); got != 2.5 {
		t.Errorf("Get(1) = %v, want 2.5", got)
	}
	if got := v.Get(2); got != 0 {
		t.Errorf("Get(2) = %v, want 0 (absent)", got)
	}
	if !v.Has(1) {
		t.Error("Has(1) = false, want true")
	}
	if v.Has(2) {
		t.Error("Has(2) = true, want false")
	}
}

func TestVectorSetZeroWithoutNonzeroMaterialises(t *testing.T) {
	v := NewVector(0, 0)
	v.Set(1, 0)
	if !v.Has(1) {
		t.Error("Set(1, 0) without Nonzero should still materialise the entry")
	}
}

func TestVectorNonzeroRemovesBelowEps(t *testing.T) {
	v := NewVector(Nonzero, 1e-3)
	v.Set(1, 5)
	v.Set(1, 1e-6)
	if v.Has(1) {
		t.Error("Set below eps under Nonzero should remove the entry")
	}
}

func TestVectorPositiveRemovesNegative(t *testing.T) {
	v := NewVector(Positive, 0)
	v.Set(1, 5)
	v.Set(1, -1)
	if v.Has(1) {
		t.Error("Set to negative under Positive should remove the entry")
	}
}

func TestVectorAddSub(t *testing.T) {
	v := NewVector(0, 0)
	v.Add(1, 3)
	v.Add(1, 4)
	if got := v.Get(1); got != 7 {
		t.Errorf("Get(1) after two Adds = %v, want 7", got)
	}
	v.Sub(1, 2)
	if got := v.Get(1); got != 5 {
		t.Errorf("Get(1) after Sub = %v, want 5", got)
	}
}

func TestVectorDel(t *testing.T) {
	v := NewVector(0, 0)
	v.Set(1, 1)
	v.Del(1)
	if v.Has(1) {
		t.Error("Del did not remove the entry")
	}
	rev := v.Revision()
	v.Del(1) // deleting an absent key is a no-op, must not bump revision
	if v.Revision() != rev {
		t.Error("Del on an absent key must not bump revision")
	}
}

func TestVectorBulkLengthMismatch(t *testing.T) {
	v := NewVector(0, 0)
	err := v.SetMany([]uint64{1, 2}, []float32{1})
	if err != ErrLengthMismatch {
		t.Errorf("SetMany length mismatch = %v, want ErrLengthMismatch", err)
	}
}

func TestVectorBulkDefaultWeight(t *testing.T) {
	v := NewVector(0, 0)
	if err := v.SetMany([]uint64{1, 2, 3}, nil); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	for _, k := range []uint64{1, 2, 3} {
		if got := v.Get(k); got != 1 {
			t.Errorf("Get(%d) = %v, want 1 (default weight)", k, got)
		}
	}
}

func TestVectorMulConst(t *testing.T) {
	v := NewVector(Nonzero, 1e-3)
	v.Set(1, 4)
	v.Set(2, 6)
	v.MulConst(0.5)
	if got := v.Get(1); got != 2 {
		t.Errorf("Get(1) after MulConst(0.5) = %v, want 2", got)
	}
	if got := v.Get(2); got != 3 {
		t.Errorf("Get(2) after MulConst(0.5) = %v, want 3", got)
	}

	v.MulConst(0)
	if v.Len() != 0 {
		t.Errorf("MulConst(0) under Nonzero should remove every entry, got %d left", v.Len())
	}
}

func TestVectorNorm(t *testing.T) {
	v := NewVector(0, 0)
	v.Set(1, 3)
	v.Set(2, 4)
	if got := v.Norm(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Norm() = %v, want 5", got)
	}
}

func TestVectorNormMemoisedAcrossReads(t *testing.T) {
	v := NewVector(0, 0)
	v.Set(1, 3)
	v.Set(2, 4)
	first := v.Norm()
	second := v.Norm()
	if first != second {
		t.Errorf("Norm() not stable across repeated reads: %v != %v", first, second)
	}
	v.Set(1, 6)
	if v.Norm() == first {
		t.Error("Norm() did not recompute after a mutation bumped the revision")
	}
}

func TestVectorDot(t *testing.T) {
	a := NewVector(0, 0)
	a.Set(1, 2)
	a.Set(2, 3)
	b := NewVector(0, 0)
	b.Set(2, 5)
	b.Set(3, 7)
	if got := a.Dot(b); got != 15 { // only index 2 overlaps: 3*5
		t.Errorf("Dot = %v, want 15", got)
	}
}

func TestVectorSubNorm(t *testing.T) {
	a := NewVector(0, 0)
	a.Set(1, 3)
	b := NewVector(0, 0)
	b.Set(1, 0)
	b.Set(2, 4)
	// diff at 1: 3-0=3, diff at 2: 0-4=-4 -> norm = 5
	if got := a.SubNorm(b); math.Abs(got-5) > 1e-9 {
		t.Errorf("SubNorm = %v, want 5", got)
	}
}

func TestVectorEntriesSortedByIndex(t *testing.T) {
	v := NewVector(0, 0)
	v.Set(5, 1)
	v.Set(1, 2)
	v.Set(3, 3)
	es := v.Entries()
	for i := 1; i < len(es); i++ {
		if es[i-1].Index >= es[i].Index {
			t.Fatalf("Entries() not sorted: %+v", es)
		}
	}
}

func TestVectorCloneIndependence(t *testing.T) {
	v := NewVector(0, 0)
	v.Set(1, 1)
	c := v.Clone()
	c.Set(1, 99)
	if v.Get(1) != 1 {
		t.Error("mutating a clone must not affect the original")
	}
}

func TestVectorRevisionMonotonic(t *testing.T) {
	v := NewVector(0, 0)
	r0 := v.Revision()
	v.Set(1, 1)
	r1 := v.Revision()
	v.Set(1, 2)
	r2 := v.Revision()
	if !(r0 < r1 && r1 < r2) {
		t.Errorf("revision not strictly increasing across observable mutations: %d, %d, %d", r0, r1, r2)
	}
}
