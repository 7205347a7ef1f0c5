package fern

// Entry pairs one token with the byte span it was scanned from.
type Entry struct {
	Token Token
	Range OffsetRange
}

// Cache holds reusable tokenizer storage across runs: the line buffer, the
// entry slice, the identifier interner, the string literal store, and the
// location map. A fresh Cache is the zero value.
//
// A Cache is an exclusive borrow: it must not be shared by two concurrent
// tokenizations, and reusing it invalidates every Output previously
// produced with it, since those Outputs reference the same storage.
type Cache struct {
	line    LineBuffer
	entries []Entry
	indents []int
	names   Interner
	strings []string
	locs    LocationMap
}

func (c *Cache) reset() {
	c.line.reset()
	c.entries = c.entries[:0]
	c.indents = append(c.indents[:0], 0)
	c.names.reset()
	c.strings = c.strings[:0]
	c.locs.reset()
}

// Output owns the results of one tokenization: the token stream plus the
// interner and string storage its payload handles resolve against. Token
// handles must not be resolved after the Output's backing Cache is reused.
type Output struct {
	entries []Entry
	names   *Interner
	strings []string
	locs    *LocationMap
}

// Len reports the number of stream entries.
func (o *Output) Len() int {
	return len(o.entries)
}

// At returns the i-th stream entry.
func (o *Output) At(i int) Entry {
	return o.entries[i]
}

// Tokens exposes the token stream in scan order. The slice is read-only.
func (o *Output) Tokens() []Entry {
	return o.entries
}

// Name resolves an identifier token's handle to its text.
func (o *Output) Name(sym Symbol) string {
	return o.names.Name(sym)
}

// StringValue resolves a string literal token's handle to its decoded
// contents.
func (o *Output) StringValue(h StringHandle) string {
	return o.strings[h]
}

// Location resolves a stream entry's range to its line and column.
func (o *Output) Location(r OffsetRange) (Location, bool) {
	return o.locs.ResolveRange(r)
}
