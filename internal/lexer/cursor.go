package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"stylic/internal/source"
)

// Cursor is a byte position inside one file, bounded by Limit.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // exclusive; defaults to len(File.Content)
}

// NewCursor creates a cursor covering the whole file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content length overflow: %w", err))
	}
	return Cursor{File: f, Off: 0, Limit: limit}
}

// NewCursorAt creates a cursor over the byte range [start, end) of f.
// Template substitutions are lexed through range cursors so their spans
// stay absolute within the file.
func NewCursorAt(f *source.File, start, end uint32) Cursor {
	return Cursor{File: f, Off: start, Limit: end}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 returns the current and next bytes.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Peek3 returns the current and two following bytes.
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.Off+2 >= c.Limit {
		return 0, 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], c.File.Content[c.Off+2], true
}

// Bump advances one byte and returns it, or 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Mark remembers a position so a Span can be built for a scanned fragment.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[m:Mark(c.Off)])
}
