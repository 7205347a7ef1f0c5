package fern

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// LineBuffer is a reusable buffer holding one line of source text. Lines
// never contain terminator characters; sources must strip them before
// writing.
type LineBuffer struct {
	data []byte
}

// Push appends one code point to the buffer. Line terminators are a
// contract violation and panic.
func (b *LineBuffer) Push(r rune) {
	if r == '\n' || r == '\r' {
		panic("fern: line buffer must not contain line terminators")
	}
	b.data = utf8.AppendRune(b.data, r)
}

// PushString appends text to the buffer. Line terminators are a contract
// violation and panic.
func (b *LineBuffer) PushString(s string) {
	if strings.ContainsAny(s, "\n\r") {
		panic("fern: line buffer must not contain line terminators")
	}
	b.data = append(b.data, s...)
}

func (b *LineBuffer) pushBytes(p []byte) {
	b.data = append(b.data, p...)
}

// pushString appends without the terminator guard. Built-in sources strip
// terminators themselves; anything else they pass through lands in front
// of the scanner, which rejects it with a positioned error instead of a
// panic.
func (b *LineBuffer) pushString(s string) {
	b.data = append(b.data, s...)
}

// trimTrailingCR drops one trailing carriage return, reporting whether it
// did. Reader sources use it when a CRLF terminator was split across two
// buffered reads.
func (b *LineBuffer) trimTrailingCR() bool {
	if n := len(b.data); n > 0 && b.data[n-1] == '\r' {
		b.data = b.data[:n-1]
		return true
	}
	return false
}

// Len reports the byte length of the buffered line.
func (b *LineBuffer) Len() int {
	return len(b.data)
}

func (b *LineBuffer) bytes() []byte {
	return b.data
}

func (b *LineBuffer) reset() {
	b.data = b.data[:0]
}

// Input supplies successive lines of source text. The tokenizer resets the
// buffer before each call, so implementations only append.
type Input interface {
	// NextLine writes the next line into buf without its terminator and
	// reports the byte width of the terminator it consumed: 1 for "\n",
	// 2 for "\r\n", 0 when the final line is unterminated. ok is false at
	// end of input, which is distinct from an empty line. A source error
	// aborts tokenization and is surfaced to the caller verbatim.
	NextLine(buf *LineBuffer) (term int, ok bool, err error)
}

// FromString returns an Input reading lines from in-memory source text.
func FromString(src string) Input {
	return &stringInput{rest: src, done: src == ""}
}

type stringInput struct {
	rest string
	done bool
}

func (in *stringInput) NextLine(buf *LineBuffer) (int, bool, error) {
	if in.done {
		return 0, false, nil
	}
	line := in.rest
	term := 0
	if nl := strings.IndexByte(in.rest, '\n'); nl >= 0 {
		line = in.rest[:nl]
		term = 1
		if strings.HasSuffix(line, "\r") {
			line = line[:len(line)-1]
			term = 2
		}
		in.rest = in.rest[nl+1:]
		in.done = in.rest == ""
	} else {
		in.rest = ""
		in.done = true
	}
	buf.pushString(line)
	return term, true, nil
}

// FromReader returns an Input reading lines from an open stream. Reads are
// buffered; line contents accumulate in the caller's reusable buffer.
func FromReader(r io.Reader) Input {
	return &readerInput{r: bufio.NewReader(r)}
}

type readerInput struct {
	r    *bufio.Reader
	done bool
}

func (in *readerInput) NextLine(buf *LineBuffer) (int, bool, error) {
	if in.done {
		return 0, false, nil
	}
	wrote := false
	for {
		chunk, err := in.r.ReadSlice('\n')
		switch err {
		case nil:
			line := chunk[:len(chunk)-1]
			term := 1
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
				term = 2
			} else if n == 0 && wrote && buf.trimTrailingCR() {
				// CRLF split across buffered reads.
				term = 2
			}
			buf.pushBytes(line)
			return term, true, nil
		case bufio.ErrBufferFull:
			buf.pushBytes(chunk)
			wrote = true
		case io.EOF:
			in.done = true
			buf.pushBytes(chunk)
			if !wrote && len(chunk) == 0 {
				return 0, false, nil
			}
			return 0, true, nil
		default:
			return 0, false, err
		}
	}
}

// FromLines returns an Input reading from a pre-split line sequence. Each
// line but the last counts one terminator byte for offset purposes.
func FromLines(lines []string) Input {
	return &linesInput{lines: lines}
}

type linesInput struct {
	lines []string
	next  int
}

func (in *linesInput) NextLine(buf *LineBuffer) (int, bool, error) {
	if in.next >= len(in.lines) {
		return 0, false, nil
	}
	line := in.lines[in.next]
	in.next++
	buf.PushString(line)
	term := 1
	if in.next == len(in.lines) {
		term = 0
	}
	return term, true, nil
}
