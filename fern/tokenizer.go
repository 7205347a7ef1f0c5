package fern

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// UnexpectedCodePointError reports a code point the scanner has no rule
// for. Tokenization stops at the first one; a token stream with gaps would
// corrupt downstream offset invariants.
type UnexpectedCodePointError struct {
	CodePoint rune
	Offset    Offset
}

func (e *UnexpectedCodePointError) Error() string {
	return fmt.Sprintf("unexpected code point %q at offset %d", e.CodePoint, e.Offset)
}

// IndentError reports a dedent to a depth that matches no open
// indentation level.
type IndentError struct {
	Offset Offset
	Depth  int
}

func (e *IndentError) Error() string {
	return fmt.Sprintf("inconsistent indentation depth %d at offset %d", e.Depth, e.Offset)
}

// LiteralError reports an unterminated or malformed character or string
// literal.
type LiteralError struct {
	Offset Offset
	Reason string
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
}

// Tokenize scans the input for tokens. cache may be nil, in which case the
// run owns fresh storage; passing a retained Cache reuses its buffers and
// invalidates Outputs previously produced with it.
func Tokenize(in Input, cache *Cache) (*Output, error) {
	if cache == nil {
		cache = new(Cache)
	}
	cache.reset()
	t := &tokenizer{cache: cache, line: firstNumber}
	if err := t.run(in); err != nil {
		return nil, err
	}
	return &Output{
		entries: cache.entries,
		names:   &cache.names,
		strings: cache.strings,
		locs:    &cache.locs,
	}, nil
}

// TokenizeString scans in-memory source text.
func TokenizeString(src string, cache *Cache) (*Output, error) {
	return Tokenize(FromString(src), cache)
}

type tokenizer struct {
	cache  *Cache
	offset Offset // byte offset of the current line's first byte
	line   Number
}

func (t *tokenizer) run(in Input) error {
	for {
		t.cache.line.reset()
		term, ok, err := in.NextLine(&t.cache.line)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		line := t.cache.line.bytes()
		if uint64(t.offset)+uint64(len(line))+uint64(term) > math.MaxUint32 {
			return ErrCounterOverflow
		}
		if err := t.scanLine(line); err != nil {
			return err
		}
		t.offset += Offset(len(line) + term)
		if err := incrementNumber(&t.line); err != nil {
			return err
		}
	}

	// End of input closes every still-open indentation level.
	for len(t.cache.indents) > 1 {
		t.cache.indents = t.cache.indents[:len(t.cache.indents)-1]
		t.emit(Token{Kind: KindDedent}, OffsetRange{Start: t.offset, End: t.offset},
			Location{Line: t.line, Column: firstNumber})
	}
	return nil
}

// cursor reads code points from one line of source. Copies are cheap:
// lookahead reads on a copy and commits by assigning it back, so
// multi-character lexemes never re-scan.
type cursor struct {
	rest   []byte
	offset Offset
	column Number
}

// next returns the code point under the cursor, its byte offset, and the
// cursor advanced past it. ok is false at end of line.
func (c cursor) next() (r rune, at Offset, after cursor, ok bool) {
	if len(c.rest) == 0 {
		return 0, c.offset, c, false
	}
	r, w := utf8.DecodeRune(c.rest)
	after = cursor{rest: c.rest[w:], offset: c.offset + Offset(w), column: c.column + 1}
	return r, c.offset, after, true
}

func (t *tokenizer) scanLine(line []byte) error {
	c := cursor{rest: line, offset: t.offset, column: firstNumber}

	// Indentation phase: consume leading whitespace to find this line's
	// depth before normal scanning resumes.
	depth := 0
	for {
		r, _, after, ok := c.next()
		if !ok || (r != ' ' && r != '\t') {
			break
		}
		depth++
		c = after
	}

	// Blank and comment-only lines leave indentation untouched.
	if r, _, _, ok := c.next(); !ok || r == '#' {
		return nil
	}

	if err := t.applyIndent(depth, c.offset); err != nil {
		return err
	}

	for {
		r, at, after, ok := c.next()
		if !ok {
			return nil
		}
		switch r {
		case ' ', '\t':
			c = after
		case '#':
			return nil
		case '{':
			c = t.single(KindOpenCurlyBrace, at, c, after)
		case '}':
			c = t.single(KindCloseCurlyBrace, at, c, after)
		case '(':
			c = t.single(KindOpenParenthesis, at, c, after)
		case ')':
			c = t.single(KindCloseParenthesis, at, c, after)
		case '[':
			c = t.single(KindOpenSquareBracket, at, c, after)
		case ']':
			c = t.single(KindCloseSquareBracket, at, c, after)
		case '>':
			c = t.single(KindGreaterThan, at, c, after)
		case '\\':
			c = t.single(KindBackslash, at, c, after)
		case '+':
			c = t.single(KindPlusSign, at, c, after)
		case '*':
			c = t.single(KindAsterisk, at, c, after)
		case '/':
			c = t.single(KindForwardSlash, at, c, after)
		case '.':
			c = t.single(KindPeriod, at, c, after)
		case '=':
			c = t.single(KindEquals, at, c, after)
		case '&':
			c = t.single(KindAmpersand, at, c, after)
		case '|':
			c = t.single(KindVerticalBar, at, c, after)
		case ',':
			c = t.single(KindComma, at, c, after)
		case ';':
			c = t.single(KindSemicolon, at, c, after)
		case ':':
			if r2, _, after2, ok2 := after.next(); ok2 && r2 == ':' {
				t.emit(Token{Kind: KindDoubleColon}, OffsetRange{Start: at, End: after2.offset}, t.loc(c))
				c = after2
			} else {
				c = t.single(KindColon, at, c, after)
			}
		case '<':
			if r2, _, after2, ok2 := after.next(); ok2 && r2 == '-' {
				t.emit(Token{Kind: KindAssign}, OffsetRange{Start: at, End: after2.offset}, t.loc(c))
				c = after2
			} else {
				c = t.single(KindLessThan, at, c, after)
			}
		case '-':
			if r2, _, after2, ok2 := after.next(); ok2 && r2 == '>' {
				t.emit(Token{Kind: KindArrow}, OffsetRange{Start: at, End: after2.offset}, t.loc(c))
				c = after2
			} else {
				c = t.single(KindMinusSign, at, c, after)
			}
		case '\'':
			next, err := t.scanChar(c, at, after)
			if err != nil {
				return err
			}
			c = next
		case '"':
			next, err := t.scanString(c, at, after)
			if err != nil {
				return err
			}
			c = next
		default:
			if !isIdentifierRune(r) {
				return &UnexpectedCodePointError{CodePoint: r, Offset: at}
			}
			next, err := t.scanIdentifier(line, c, at, after)
			if err != nil {
				return err
			}
			c = next
		}
	}
}

func (t *tokenizer) applyIndent(depth int, contentAt Offset) error {
	indents := t.cache.indents
	top := indents[len(indents)-1]
	switch {
	case depth > top:
		t.cache.indents = append(indents, depth)
		t.emit(Token{Kind: KindIndent}, OffsetRange{Start: t.offset, End: contentAt},
			Location{Line: t.line, Column: firstNumber})
	case depth < top:
		for depth < indents[len(indents)-1] {
			indents = indents[:len(indents)-1]
			t.emit(Token{Kind: KindDedent}, OffsetRange{Start: contentAt, End: contentAt},
				Location{Line: t.line, Column: Number(depth) + 1})
		}
		t.cache.indents = indents
		if indents[len(indents)-1] != depth {
			return &IndentError{Offset: contentAt, Depth: depth}
		}
	}
	return nil
}

func (t *tokenizer) single(kind Kind, at Offset, c, after cursor) cursor {
	t.emit(Token{Kind: kind}, OffsetRange{Start: at, End: at + 1}, t.loc(c))
	return after
}

func (t *tokenizer) scanIdentifier(line []byte, c cursor, start Offset, after cursor) (cursor, error) {
	end := after
	for {
		r, _, next, ok := end.next()
		if !ok || !isIdentifierRune(r) {
			break
		}
		end = next
	}
	text := string(line[start-t.offset : end.offset-t.offset])
	tok, isKeyword := lookupKeyword(text)
	if !isKeyword {
		sym, err := t.cache.names.Intern(text)
		if err != nil {
			return end, err
		}
		tok = identToken(sym)
	}
	t.emit(tok, OffsetRange{Start: start, End: end.offset}, t.loc(c))
	return end, nil
}

func (t *tokenizer) scanChar(c cursor, start Offset, after cursor) (cursor, error) {
	r, _, next, ok := after.next()
	if !ok {
		return after, &LiteralError{Offset: start, Reason: "unterminated character literal"}
	}
	if r == '\'' {
		return next, &LiteralError{Offset: start, Reason: "empty character literal"}
	}
	if r == '\\' {
		e, at2, next2, ok2 := next.next()
		if !ok2 {
			return next, &LiteralError{Offset: start, Reason: "unterminated character literal"}
		}
		decoded, valid := unescape(e)
		if !valid {
			return next2, &LiteralError{Offset: at2, Reason: fmt.Sprintf("invalid escape sequence %q", `\`+string(e))}
		}
		r = decoded
		next = next2
	}
	q, _, closing, ok := next.next()
	if !ok || q != '\'' {
		return next, &LiteralError{Offset: start, Reason: "unterminated character literal"}
	}
	t.emit(charToken(r), OffsetRange{Start: start, End: closing.offset}, t.loc(c))
	return closing, nil
}

func (t *tokenizer) scanString(c cursor, start Offset, after cursor) (cursor, error) {
	var sb strings.Builder
	cur := after
	for {
		r, _, next, ok := cur.next()
		if !ok {
			return cur, &LiteralError{Offset: start, Reason: "unterminated string literal"}
		}
		switch r {
		case '"':
			h := StringHandle(len(t.cache.strings))
			t.cache.strings = append(t.cache.strings, sb.String())
			t.emit(stringToken(h), OffsetRange{Start: start, End: next.offset}, t.loc(c))
			return next, nil
		case '\\':
			e, at2, next2, ok2 := next.next()
			if !ok2 {
				return next, &LiteralError{Offset: start, Reason: "unterminated string literal"}
			}
			decoded, valid := unescape(e)
			if !valid {
				return next2, &LiteralError{Offset: at2, Reason: fmt.Sprintf("invalid escape sequence %q", `\`+string(e))}
			}
			sb.WriteRune(decoded)
			cur = next2
		default:
			sb.WriteRune(r)
			cur = next
		}
	}
}

func unescape(r rune) (rune, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '\\', '"', '\'':
		return r, true
	}
	return 0, false
}

func (t *tokenizer) emit(tok Token, r OffsetRange, loc Location) {
	t.cache.entries = append(t.cache.entries, Entry{Token: tok, Range: r})
	t.cache.locs.record(r, loc)
}

func (t *tokenizer) loc(c cursor) Location {
	return Location{Line: t.line, Column: c.column}
}
