package vec

import (
	"math"
	"testing"
)

func TestOps(t *testing.T) {
	a := New(3, 4)
	b := New(-1, 2)

	if got := a.Add(b); got != New(2, 6) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != New(4, 2) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != New(6, 8) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot: got %f", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length: got %f", got)
	}
	if got := a.LengthSq(); got != 25 {
		t.Errorf("LengthSq: got %f", got)
	}
}

func TestNormalize(t *testing.T) {
	n := New(3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("unit length: got %f", n.Length())
	}
	if n.X <= 0 || n.Y <= 0 {
		t.Errorf("direction flipped: %v", n)
	}

	if got := Zero.Normalize(); !got.IsZero() {
		t.Errorf("zero vector should normalize to zero, got %v", got)
	}
}

func TestIsValid(t *testing.T) {
	if !New(1, 2).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec2{math.NaN(), 0}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vec2{0, math.Inf(1)}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}
