package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColor(5, 5, '@', ColorPlayer)

	c := s.GetCell(5, 5)
	if c.Rune != '@' || c.Color != ColorPlayer {
		t.Errorf("GetCell(5, 5) = %+v, expected '@' in player color", c)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawTextColor(6, 0, "orbs", ColorHUD)
	if got := s.Row(0); got != "      or" {
		t.Errorf("Row(0) = %q, expected clipped text", got)
	}
	if s.GetCell(7, 0).Color != ColorHUD {
		t.Error("text color not applied")
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(7, 1)
	s.DrawTextCentered(0, "◆◆◆", ColorOrb)
	if got := s.Row(0); got != "  ◆◆◆  " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(s.Bounds(), ColorWall)
	want := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(1, 1, 'X')
	s.Resize(5, 2)
	if s.Width() != 5 || s.Height() != 2 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("resize should discard content")
	}
}
