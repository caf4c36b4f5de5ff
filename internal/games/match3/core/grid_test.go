package core

import (
	"math/rand"
	"testing"
)

func TestGridSetAndGet(t *testing.T) {
	g := NewGrid(3, 3)
	p := &Piece{ID: 1, Kind: KindBlue}

	g.Set(C(1, 2), p)
	if got := g.Get(C(1, 2)); got != p {
		t.Errorf("Get(1,2) = %v, want %v", got, p)
	}
	if k, ok := g.KindAt(C(1, 2)); !ok || k != KindBlue {
		t.Errorf("KindAt(1,2) = %v,%v, want blue,true", k, ok)
	}

	g.Set(C(1, 2), nil)
	if g.Get(C(1, 2)) != nil {
		t.Error("expected empty cell after Set(nil)")
	}

	// Out of range reads and writes are ignored
	g.Set(C(3, 0), p)
	if g.Get(C(3, 0)) != nil || g.Get(C(-1, 0)) != nil {
		t.Error("out-of-range Get should return nil")
	}
}

func TestGridBlankNeverHoldsPiece(t *testing.T) {
	g := NewGrid(3, 1)
	g.Set(C(0, 0), &Piece{ID: 1})
	g.SetBlank(C(0, 0))

	if g.Get(C(0, 0)) != nil {
		t.Error("SetBlank should drop the piece")
	}

	g.Set(C(0, 0), &Piece{ID: 2})
	if g.Get(C(0, 0)) != nil {
		t.Error("Set should not write into a blank cell")
	}

	g.Set(C(1, 0), &Piece{ID: 3})
	g.Swap(C(0, 0), C(1, 0))
	if g.Get(C(0, 0)) != nil || g.Get(C(1, 0)) == nil {
		t.Error("Swap with a blank cell should be a no-op")
	}

	g.SetTile(C(0, 0), 2)
	if g.Tile(C(0, 0)) != 0 {
		t.Error("blank cells cannot carry a tile")
	}
}

func TestGridSwapTwiceRestores(t *testing.T) {
	g := gridFromRows(t, []string{
		"ABCA",
		"B#AB",
		"CAB.",
	})
	original := g.Clone()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		a := C(rng.Intn(g.W+1)-1, rng.Intn(g.H+1)-1)
		b := C(rng.Intn(g.W+1)-1, rng.Intn(g.H+1)-1)
		g.Swap(a, b)
		g.Swap(a, b)
		if !g.Equal(original) {
			t.Fatalf("double swap %v/%v changed the grid:\n%s", a, b, g)
		}
	}
}

func TestGridDamageTile(t *testing.T) {
	g := NewGrid(2, 1)
	g.SetTile(C(0, 0), 2)

	hp, hit := g.DamageTile(C(0, 0))
	if !hit || hp != 1 {
		t.Errorf("first hit = %d,%v, want 1,true", hp, hit)
	}
	hp, hit = g.DamageTile(C(0, 0))
	if !hit || hp != 0 {
		t.Errorf("second hit = %d,%v, want 0,true", hp, hit)
	}
	if _, hit = g.DamageTile(C(0, 0)); hit {
		t.Error("depleted tile should not take damage")
	}
	if _, hit = g.DamageTile(C(1, 0)); hit {
		t.Error("cell without tile should not take damage")
	}
	if g.TileCount() != 0 {
		t.Errorf("TileCount() = %d, want 0", g.TileCount())
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := gridFromRows(t, []string{"AB", "CD"})
	clone := g.Clone()

	if !g.Equal(clone) {
		t.Fatal("clone should equal original")
	}

	g.Get(C(0, 0)).Matched = true
	g.Set(C(1, 1), nil)

	if clone.Get(C(0, 0)).Matched {
		t.Error("clone shares pieces with the original")
	}
	if clone.Get(C(1, 1)) == nil {
		t.Error("clone should not be affected by original modification")
	}
	if g.Equal(clone) {
		t.Error("modified grid should differ from clone")
	}
}

func TestGridString(t *testing.T) {
	g := gridFromRows(t, []string{
		"A.",
		"#B",
	})
	want := "0.\n#1"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGridFind(t *testing.T) {
	g := gridFromRows(t, []string{"AB", "CD"})
	p := g.Get(C(1, 0))

	at, ok := g.Find(p)
	if !ok || at != C(1, 0) {
		t.Errorf("Find() = %v,%v, want (1,0),true", at, ok)
	}
	if _, ok := g.Find(&Piece{}); ok {
		t.Error("Find should not locate a piece that is not on the grid")
	}
}
