package ui

import (
	"testing"
)

func TestPickerFilter(t *testing.T) {
	p := newPicker("test", []string{"alpha", "beta", "gamma"})

	if got := len(p.filtered()); got != 3 {
		t.Fatalf("expected all 3 items with empty query, got %d", got)
	}

	for _, r := range "ga" {
		p.typeRune(r)
	}
	visible := p.filtered()
	if len(visible) == 0 {
		t.Fatal("expected at least one match for 'ga'")
	}
	if p.items[visible[0]] != "gamma" {
		t.Errorf("expected best match gamma, got %q", p.items[visible[0]])
	}
}

func TestPickerNoMatches(t *testing.T) {
	p := newPicker("test", []string{"alpha", "beta"})
	for _, r := range "zzz" {
		p.typeRune(r)
	}

	if got := p.selected(); got != -1 {
		t.Errorf("expected selected -1 with no matches, got %d", got)
	}

	// Backspacing the query restores the full list.
	p.backspace()
	p.backspace()
	p.backspace()
	if got := p.selected(); got != 0 {
		t.Errorf("expected selected 0 after clearing query, got %d", got)
	}
}

// TestPickerBackspaceMultibyte tests that backspace removes whole runes,
// not trailing bytes of a multi-byte character.
func TestPickerBackspaceMultibyte(t *testing.T) {
	p := newPicker("test", []string{"héllo", "wörld"})
	for _, r := range "hé" {
		p.typeRune(r)
	}

	p.backspace()
	if p.query != "h" {
		t.Errorf("query after backspace = %q, want %q", p.query, "h")
	}

	p.backspace()
	if p.query != "" {
		t.Errorf("query after second backspace = %q, want empty", p.query)
	}
	if got := p.selected(); got != 0 {
		t.Errorf("selected = %d with empty query, want 0", got)
	}
}

func TestPickerCursorBounds(t *testing.T) {
	p := newPicker("test", []string{"one", "two"})

	p.moveCursor(-1)
	if p.cursor != 0 {
		t.Errorf("cursor moved below zero: %d", p.cursor)
	}

	p.moveCursor(1)
	p.moveCursor(1)
	p.moveCursor(1)
	if p.cursor != 1 {
		t.Errorf("cursor moved past last item: %d", p.cursor)
	}
}
