package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	blank := c.String()
	if strings.Count(blank, "\n") != 2 {
		t.Errorf("expected 2 rows, got %q", blank)
	}

	c.Set(0, 0)
	if c.String() == blank {
		t.Error("Set left the canvas blank")
	}

	c.Clear()
	if c.String() != blank {
		t.Error("Clear did not restore the blank canvas")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	blank := c.String()

	c.Set(-1, 0)
	c.Set(0, -3)
	c.Set(100, 0)
	c.Set(0, 100)

	if c.String() != blank {
		t.Error("out-of-range dots modified the canvas")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Line(0, 0, 15, 31)

	want := NewCanvas(8, 8)
	want.Set(0, 0)
	want.Set(15, 31)

	got := c.String()
	for i, r := range []rune(want.String()) {
		if r == 0x2800 || r == '\n' {
			continue
		}
		cell := []rune(got)[i]
		if cell&r != r {
			t.Errorf("cell %d missing endpoint dots: got %q", i, cell)
		}
	}
}
