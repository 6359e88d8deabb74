package sim

import "testing"

func TestDirectionAxes(t *testing.T) {
	tests := []struct {
		a, b     Direction
		parallel bool
	}{
		{North, North, true},
		{North, South, true},
		{East, West, true},
		{North, East, false},
		{North, West, false},
		{South, East, false},
		{South, West, false},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"-"+tt.b.String(), func(t *testing.T) {
			if got := tt.a.Parallel(tt.b); got != tt.parallel {
				t.Errorf("Parallel() = %v, want %v", got, tt.parallel)
			}
			if got := tt.b.Parallel(tt.a); got != tt.parallel {
				t.Errorf("Parallel() not symmetric")
			}
			if got := tt.a.Conflicts(tt.b); got == tt.parallel {
				t.Errorf("Conflicts() = %v, want %v", got, !tt.parallel)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	for _, c := range Categories {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, ok)
		}
	}

	if _, ok := ParseDirection("up"); ok {
		t.Error("ParseDirection accepted an unknown token")
	}
	if c, ok := ParseCategory("bus"); ok || c != Regular {
		t.Errorf("ParseCategory(bus) = %v, %v; want Regular, false", c, ok)
	}
}

func TestUnknownCategoryUsesRegularSlot(t *testing.T) {
	if got := Category(42).index(); got != int(Regular) {
		t.Errorf("index() = %d, want %d", got, Regular)
	}
	if got := Category(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func TestEndReasonString(t *testing.T) {
	tests := map[EndReason]string{
		EndNone:          "running",
		EndScoreDepleted: "score_depleted",
		EndFatalCrash:    "fatal_crash",
	}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", r, got, want)
		}
	}
}
