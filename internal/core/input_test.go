package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionPause)
	f.Set(ActionRestart)
	if !f.Has(ActionPause) || !f.Has(ActionRestart) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionQuit) {
		t.Error("unset action should not be reported")
	}

	f.Clear()
	if f.Has(ActionPause) || f.Has(ActionRestart) {
		t.Error("Clear should remove all actions")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionPause, "Pause"},
		{ActionScreenshot, "Screenshot"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.a, got, tc.expected)
		}
	}
}
