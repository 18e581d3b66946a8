package source

import (
	"bytes"
	"path/filepath"
	"sort"
)

var bomPrefix = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bomPrefix) {
		return content[len(bomPrefix):], true
	}
	return content, false
}

func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func normalizePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(path)
}

// buildLineIndex records the byte offset of every '\n' in content.
func buildLineIndex(content []byte) []uint32 {
	var idx []uint32
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)) // #nosec G115 -- file sizes fit uint32
		}
	}
	return idx
}

// toLineCol maps a byte offset to a 1-based line/column pair using the
// newline index. Column is a byte column, consistent with Span offsets.
func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	line := sort.Search(len(lineIdx), func(i int) bool {
		return lineIdx[i] >= offset
	})
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{
		Line: uint32(line) + 1, // #nosec G115 -- line counts fit uint32
		Col:  offset - lineStart + 1,
	}
}
