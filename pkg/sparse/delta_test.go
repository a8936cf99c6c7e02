package sparse

import "testing"

func TestDeltaDisabledByDefault(t *testing.T) {
	g := NewGraph(Directed, 0)
	if g.DeltaEnabled() {
		t.Error("delta tracking must be off until EnableDelta is called")
	}
	if d := g.TakeDelta(); d != nil {
		t.Error("TakeDelta before EnableDelta must return nil")
	}
}

func TestDeltaAccumulatesNetChange(t *testing.T) {
	g := NewGraph(Directed, 0)
	g.Set(1, 2, 10)
	g.EnableDelta()

	g.Add(1, 2, 5)  // 10 -> 15, delta +5
	g.Sub(1, 2, 3)  // 15 -> 12, delta -3
	g.Set(3, 4, 7)  // new edge, delta +7

	d := g.TakeDelta()
	if d == nil {
		t.Fatal("TakeDelta returned nil while enabled")
	}
	if got := d.Get(1, 2); got != 2 {
		t.Errorf("net delta on (1,2) = %v, want 2 (+5-3)", got)
	}
	if got := d.Get(3, 4); got != 7 {
		t.Errorf("net delta on (3,4) = %v, want 7", got)
	}
}

func TestDeltaResetsAfterTake(t *testing.T) {
	g := NewGraph(Directed, 0)
	g.EnableDelta()
	g.Set(1, 2, 5)
	_ = g.TakeDelta()

	g.Set(3, 4, 1)
	d := g.TakeDelta()
	if d.Has(1, 2) {
		t.Error("TakeDelta must reset the accumulator; stale entries leaked across calls")
	}
	if got := d.Get(3, 4); got != 1 {
		t.Errorf("fresh delta after reset = %v, want 1", got)
	}
}

func TestDeltaDeletionRecordsNegative(t *testing.T) {
	g := NewGraph(Directed, 0)
	g.Set(1, 2, 10)
	g.EnableDelta()
	g.Del(1, 2)

	d := g.TakeDelta()
	if got := d.Get(1, 2); got != -10 {
		t.Errorf("delta after Del = %v, want -10", got)
	}
}

func TestDeltaDisableDiscardsAccumulator(t *testing.T) {
	g := NewGraph(Directed, 0)
	g.EnableDelta()
	g.Set(1, 2, 5)
	g.DisableDelta()
	if g.DeltaEnabled() {
		t.Error("DeltaEnabled() true after DisableDelta")
	}
	if d := g.TakeDelta(); d != nil {
		t.Error("TakeDelta after DisableDelta must return nil")
	}
}

func TestDeltaMulConstRecordsPerEdge(t *testing.T) {
	g := NewGraph(Nonzero, 1e-3)
	g.Set(1, 2, 10)
	g.EnableDelta()
	g.MulConst(0.5)

	d := g.TakeDelta()
	if got := d.Get(1, 2); got != -5 {
		t.Errorf("delta after MulConst(0.5) on weight 10 = %v, want -5 (10*0.5-10)", got)
	}
}
