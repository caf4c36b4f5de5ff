package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionUp) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionUp)
	f.Set(ActionSelect)
	if !f.Has(ActionUp) || !f.Has(ActionSelect) || f.Has(ActionDown) {
		t.Errorf("unexpected actions %v", f.Actions)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove every action")
	}

	g := NewInputFrame(ActionHint, ActionQuit)
	if !g.Has(ActionHint) || !g.Has(ActionQuit) || g.Empty() {
		t.Errorf("NewInputFrame lost actions: %v", g.Actions)
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:   "None",
		ActionLeft:   "Left",
		ActionSelect: "Select",
		ActionHint:   "Hint",
		Action(99):   "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}
