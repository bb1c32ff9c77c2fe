package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColor(3, 2, '#', ColorFail)
	cell := s.GetCell(3, 2)
	if cell.Rune != '#' || cell.Color != ColorFail {
		t.Errorf("GetCell(3, 2) = %+v, expected '#' in red", cell)
	}

	// Out of bounds writes are ignored, reads return blank
	s.Set(-1, 0, 'X')
	s.Set(10, 0, 'X')
	if s.Get(-1, 0) != ' ' || s.Get(0, 99) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(2, 0, "héllo")

	if got := s.Row(0); got != "  héllo   " {
		t.Errorf("Row(0) = %q, expected %q", got, "  héllo   ")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(1, 1, 3, 2), '▓', ColorObstacle)

	expected := []string{
		"      ",
		" ▓▓▓  ",
		" ▓▓▓  ",
		"      ",
	}
	if got := s.String(); got != strings.Join(expected, "\n") {
		t.Errorf("String() =\n%s\nexpected\n%s", got, strings.Join(expected, "\n"))
	}
	if s.GetCell(2, 2).Color != ColorObstacle {
		t.Error("DrawRect should apply the color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3))

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X')
	s.Resize(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Errorf("Resize() dims = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear content")
	}
}
