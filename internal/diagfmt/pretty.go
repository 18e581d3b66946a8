package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stylic/internal/diag"
	"stylic/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan, color.Bold)
	pathColor  = color.New(color.Bold)
	caretColor = color.New(color.FgGreen, color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, &d, fs, opts, "")
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, indent string) {
	sevColor := severityColor(d.Severity)
	sev := d.Severity.String()
	code := d.Code.String()
	if opts.Color {
		sev = sevColor.Sprint(sev)
		code = sevColor.Sprint(code)
	}
	loc := formatLocation(d.Primary, fs, opts)
	fmt.Fprintf(w, "%s%s: %s %s: %s\n", indent, loc, sev, code, d.Message)

	if opts.ShowSource {
		writeSourceLine(w, d.Primary, fs, opts, indent)
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "%s  note: %s (%s)\n", indent, note.Msg, formatLocation(note.Span, fs, opts))
		}
	}
	if d.Inner != nil {
		writeDiagnostic(w, d.Inner, fs, opts, indent+"  ")
	}
}

// writeSourceLine prints the first line covered by span with a caret
// underline sized by display width, so wide runes underline correctly.
func writeSourceLine(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts, indent string) {
	if int(span.File) >= fs.Len() || (span.Empty() && span.Start == 0) {
		return
	}
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "%s  %s\n", indent, line)

	startCol := int(start.Col) - 1
	if startCol < 0 || startCol > len(line) {
		return
	}
	pad := runewidth.StringWidth(line[:startCol])
	width := 1
	if end.Line == start.Line && int(end.Col)-1 <= len(line) && end.Col > start.Col {
		width = runewidth.StringWidth(line[startCol : end.Col-1])
	}
	if width < 1 {
		width = 1
	}
	caret := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "%s  %s%s\n", indent, strings.Repeat(" ", pad), caret)
}

func formatLocation(span source.Span, fs *source.FileSet, opts PrettyOpts) string {
	if int(span.File) >= fs.Len() {
		return "<unknown>"
	}
	path := displayPath(span.File, fs, opts.PathMode)
	start, _ := fs.Resolve(span)
	loc := fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
	if opts.Color {
		return pathColor.Sprint(loc)
	}
	return loc
}

func displayPath(id source.FileID, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(fs.Get(id).Path); err == nil {
			return abs
		}
		return fs.Get(id).Path
	case PathModeBasename:
		return filepath.Base(fs.Get(id).Path)
	default:
		return fs.DisplayPath(id)
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

// Summary prints the closing one-liner after an extraction run.
func Summary(w io.Writer, files, rewritten, dropped, errors int, useColor bool) {
	line := fmt.Sprintf("%d file(s), %d usage(s) inlined, %d declaration(s) removed", files, rewritten, dropped)
	if errors > 0 {
		suffix := fmt.Sprintf(", %d error(s)", errors)
		if useColor {
			suffix = errorColor.Sprint(suffix)
		}
		line += suffix
	}
	fmt.Fprintln(w, line)
}
