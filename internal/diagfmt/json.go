package diagfmt

import (
	"encoding/json"
	"io"

	"stylic/internal/diag"
	"stylic/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string          `json:"severity"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	Location LocationJSON    `json:"location"`
	Notes    []NoteJSON      `json:"notes,omitempty"`
	Inner    *DiagnosticJSON `json:"inner,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if int(span.File) >= fs.Len() {
		return loc
	}
	switch opts.PathMode {
	case PathModeAbsolute:
		loc.File = displayPath(span.File, fs, PathModeAbsolute)
	case PathModeBasename:
		loc.File = displayPath(span.File, fs, PathModeBasename)
	default:
		loc.File = fs.DisplayPath(span.File)
	}
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

func makeDiagnostic(d *diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.String(),
		Message:  d.Message,
		Location: makeLocation(d.Primary, fs, opts),
	}
	if opts.IncludeNotes {
		for _, note := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{
				Message:  note.Msg,
				Location: makeLocation(note.Span, fs, opts),
			})
		}
	}
	if d.Inner != nil {
		inner := makeDiagnostic(d.Inner, fs, opts)
		out.Inner = &inner
	}
	return out
}

// JSON сериализует диагностики для инструментов.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	output := DiagnosticsOutput{Count: len(items)}
	for i := range items {
		if opts.Max > 0 && len(output.Diagnostics) >= opts.Max {
			output.Truncated = true
			break
		}
		output.Diagnostics = append(output.Diagnostics, makeDiagnostic(&items[i], fs, opts))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
