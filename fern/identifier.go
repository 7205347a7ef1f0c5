package fern

import (
	"errors"
	"fmt"
)

// Identifier is validated identifier text: non-empty, every code point an
// ASCII letter or underscore.
type Identifier string

// ErrEmptyIdentifier reports an identifier with zero length.
var ErrEmptyIdentifier = errors.New("identifiers must not be empty")

// InvalidCodePointError reports the first disallowed code point in text
// intended as an identifier.
type InvalidCodePointError struct {
	CodePoint rune
	Index     int // code-point index, not byte offset
}

func (e *InvalidCodePointError) Error() string {
	return fmt.Sprintf("%q at index %d is not a valid identifier character", e.CodePoint, e.Index)
}

// NewIdentifier validates raw text against the identifier grammar. The two
// failure kinds are distinct: ErrEmptyIdentifier for zero-length input,
// *InvalidCodePointError for anything outside the allowed character class.
func NewIdentifier(raw string) (Identifier, error) {
	if raw == "" {
		return "", ErrEmptyIdentifier
	}
	index := 0
	for _, r := range raw {
		if !isIdentifierRune(r) {
			return "", &InvalidCodePointError{CodePoint: r, Index: index}
		}
		index++
	}
	return Identifier(raw), nil
}

func isIdentifierRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

// Symbol is a handle to one interned identifier. Handles are only
// meaningful against the Interner or Output that produced them.
type Symbol uint32

// Interner stores one canonical copy of each identifier so that repeated
// names share storage and compare by handle.
type Interner struct {
	index map[string]Symbol
	names []string
}

// Intern validates raw text and returns the handle of its canonical copy,
// storing it on first sight.
func (in *Interner) Intern(raw string) (Symbol, error) {
	if sym, ok := in.index[raw]; ok {
		return sym, nil
	}
	id, err := NewIdentifier(raw)
	if err != nil {
		return 0, err
	}
	if in.index == nil {
		in.index = make(map[string]Symbol)
	}
	sym := Symbol(len(in.names))
	in.names = append(in.names, string(id))
	in.index[string(id)] = sym
	return sym, nil
}

// Name returns the identifier text a handle refers to.
func (in *Interner) Name(sym Symbol) string {
	return in.names[sym]
}

// Len reports the number of distinct interned identifiers.
func (in *Interner) Len() int {
	return len(in.names)
}

func (in *Interner) reset() {
	in.names = in.names[:0]
	clear(in.index)
}
