package fern

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Offset is a byte index into the UTF-8 source stream. Offsets always land
// on code-point boundaries.
type Offset uint32

// OffsetRange identifies the half-open span [Start, End) of bytes a token
// was scanned from.
type OffsetRange struct {
	Start Offset
	End   Offset
}

func (r OffsetRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Number is a line or column counter. Numbers start at 1; the zero value
// never appears in a valid Location.
type Number uint32

const firstNumber Number = 1

// ErrCounterOverflow reports a line or column count that exceeded the
// representable range. It is surfaced instead of wrapping silently.
var ErrCounterOverflow = errors.New("line or column counter overflow")

func incrementNumber(n *Number) error {
	if *n == math.MaxUint32 {
		return ErrCounterOverflow
	}
	*n++
	return nil
}

// Location is a line and column position in a source file. Columns count
// code points from the start of the line, not bytes.
type Location struct {
	Line   Number
	Column Number
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// LocationMap resolves byte offsets back to line and column positions.
// The tokenizer records one entry per token, in offset order; only
// diagnostic consumers query it.
type LocationMap struct {
	ranges []OffsetRange
	locs   []Location
}

func (m *LocationMap) record(r OffsetRange, loc Location) {
	m.ranges = append(m.ranges, r)
	m.locs = append(m.locs, loc)
}

func (m *LocationMap) reset() {
	m.ranges = m.ranges[:0]
	m.locs = m.locs[:0]
}

// Len reports the number of recorded ranges.
func (m *LocationMap) Len() int {
	return len(m.ranges)
}

// Resolve returns the location of the recorded range enclosing the offset.
func (m *LocationMap) Resolve(at Offset) (Location, bool) {
	i := sort.Search(len(m.ranges), func(i int) bool { return m.ranges[i].End > at })
	if i < len(m.ranges) && m.ranges[i].Start <= at {
		return m.locs[i], true
	}
	return Location{}, false
}

// ResolveRange returns the location recorded for an exact range, as carried
// by a token stream entry.
func (m *LocationMap) ResolveRange(r OffsetRange) (Location, bool) {
	i := sort.Search(len(m.ranges), func(i int) bool { return m.ranges[i].Start >= r.Start })
	for ; i < len(m.ranges) && m.ranges[i].Start == r.Start; i++ {
		if m.ranges[i].End == r.End {
			return m.locs[i], true
		}
	}
	return Location{}, false
}
