package core

import (
	"math"
	"testing"
)

func TestBoundsContainsOpen(t *testing.T) {
	b := Bounds{Left: 300, Top: 300, Right: 500, Bottom: 500}

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"center", Vec{400, 400}, true},
		{"just inside", Vec{300.1, 499.9}, true},
		{"left edge", Vec{300, 400}, false},
		{"bottom edge", Vec{400, 500}, false},
		{"outside above", Vec{400, 250}, false},
		{"outside right", Vec{600, 400}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.ContainsOpen(tc.p); got != tc.expected {
				t.Errorf("ContainsOpen(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestBoundsExpandAndCenter(t *testing.T) {
	b := Bounds{Left: 0, Top: 0, Right: 800, Bottom: 800}
	e := b.Expand(100)

	if e.Left != -100 || e.Top != -100 || e.Right != 900 || e.Bottom != 900 {
		t.Errorf("Expand(100) = %+v", e)
	}
	if e.Width() != 1000 || e.Height() != 1000 {
		t.Errorf("Width/Height = %v/%v, expected 1000/1000", e.Width(), e.Height())
	}
	if c := b.Center(); c != (Vec{400, 400}) {
		t.Errorf("Center() = %v, expected (400, 400)", c)
	}
}

func TestVecDist(t *testing.T) {
	a := Vec{X: 0, Y: 0}
	b := Vec{X: 3, Y: 4}

	if d := a.Dist(b); math.Abs(d-5) > 1e-9 {
		t.Errorf("Dist() = %v, expected 5", d)
	}
	if d := b.Dist(a); math.Abs(d-5) > 1e-9 {
		t.Errorf("Dist() (reversed) = %v, expected 5", d)
	}
	if got := a.Add(b).Scale(2); got != (Vec{6, 8}) {
		t.Errorf("Add/Scale = %v, expected (6, 8)", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
