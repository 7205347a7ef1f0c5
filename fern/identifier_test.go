package fern

import (
	"errors"
	"testing"
)

func TestNewIdentifierValid(t *testing.T) {
	for _, raw := range []string{"n", "test", "_x", "snake_case", "UPPER"} {
		id, err := NewIdentifier(raw)
		if err != nil {
			t.Fatalf("NewIdentifier(%q): %v", raw, err)
		}
		if string(id) != raw {
			t.Fatalf("NewIdentifier(%q) = %q", raw, id)
		}
	}
}

func TestNewIdentifierInvalidCodePoint(t *testing.T) {
	cases := []struct {
		raw   string
		point rune
		index int
	}{
		{"1abc", '1', 0},
		{"my-type", '-', 2},
		{"tipo número", ' ', 4},
		{"abc9", '9', 3},
	}
	for _, c := range cases {
		_, err := NewIdentifier(c.raw)
		var invalid *InvalidCodePointError
		if !errors.As(err, &invalid) {
			t.Fatalf("NewIdentifier(%q): expected InvalidCodePointError, got %v", c.raw, err)
		}
		if invalid.CodePoint != c.point || invalid.Index != c.index {
			t.Fatalf("NewIdentifier(%q): got %q at %d, want %q at %d",
				c.raw, invalid.CodePoint, invalid.Index, c.point, c.index)
		}
	}
}

func TestNewIdentifierEmpty(t *testing.T) {
	_, err := NewIdentifier("")
	if !errors.Is(err, ErrEmptyIdentifier) {
		t.Fatalf("expected ErrEmptyIdentifier, got %v", err)
	}
}

func TestInternerDedupes(t *testing.T) {
	var in Interner
	first, err := in.Intern("counter")
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	second, err := in.Intern("counter")
	if err != nil {
		t.Fatalf("re-intern failed: %v", err)
	}
	if first != second {
		t.Fatalf("equal identifiers interned to different handles: %d vs %d", first, second)
	}
	if in.Len() != 1 {
		t.Fatalf("expected 1 stored identifier, got %d", in.Len())
	}
	if name := in.Name(first); name != "counter" {
		t.Fatalf("Name(%d) = %q", first, name)
	}
}

func TestInternerRejectsInvalid(t *testing.T) {
	var in Interner
	if _, err := in.Intern("not ok"); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := in.Intern(""); !errors.Is(err, ErrEmptyIdentifier) {
		t.Fatalf("expected ErrEmptyIdentifier, got %v", err)
	}
	if in.Len() != 0 {
		t.Fatalf("failed interns must not store anything, got %d", in.Len())
	}
}
