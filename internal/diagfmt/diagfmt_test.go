package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"stylic/internal/diag"
	"stylic/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()

	content := []byte("const x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.jsx", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 10, End: 30},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{
			name:     "Absolute path",
			mode:     PathModeAbsolute,
			contains: "/home/user/project/src/test.jsx",
		},
		{
			name:     "Auto relative path",
			mode:     PathModeAuto,
			contains: "src/test.jsx",
		},
		{
			name:     "Basename only",
			mode:     PathModeBasename,
			contains: "test.jsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Color: false, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR") {
				t.Error("Expected ERROR in output")
			}
			if !strings.Contains(output, "LEX1002") {
				t.Error("Expected LEX1002 code in output")
			}
			if !strings.Contains(output, "Unterminated string") {
				t.Error("Expected error message in output")
			}
		})
	}
}

// TestPrettySourceLine проверяет контекст строки с подчёркиванием
func TestPrettySourceLine(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const Button = styled.button(theme);\n")
	fileID := fs.AddVirtual("test.jsx", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.ExtractDynamicStyle,
		source.Span{File: fileID, Start: 29, End: 34},
		"style descriptor is not statically evaluable",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowSource: true})
	output := buf.String()

	if !strings.Contains(output, "const Button = styled.button(theme);") {
		t.Errorf("Expected source line in output, got:\n%s", output)
	}
	if !strings.Contains(output, "^~~~~") {
		t.Errorf("Expected caret underline in output, got:\n%s", output)
	}
}

// TestPrettyInner проверяет вложенные диагностики
func TestPrettyInner(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte("const Button = styled.button(theme);\n"))

	inner := diag.New(
		diag.SevInfo,
		diag.EvalRequiresRuntime,
		source.Span{File: fileID, Start: 29, End: 34},
		"identifier 'theme' cannot be resolved",
	)
	outer := diag.New(
		diag.SevError,
		diag.ExtractDynamicStyle,
		source.Span{File: fileID, Start: 15, End: 35},
		"style descriptor is not statically evaluable",
	)
	outer.Inner = &inner

	bag := diag.NewBag(10)
	bag.Add(outer)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	output := buf.String()

	if !strings.Contains(output, "EXT3001") {
		t.Errorf("Expected outer code in output, got:\n%s", output)
	}
	if !strings.Contains(output, "  test.jsx:1:30") {
		t.Errorf("Expected indented inner location in output, got:\n%s", output)
	}
	if !strings.Contains(output, "cannot be resolved") {
		t.Errorf("Expected inner message in output, got:\n%s", output)
	}
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte("const x = \"unterminated\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 10, End: 23},
		"Unterminated string literal",
	))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if output.Count != 1 {
		t.Errorf("Expected count=1, got %d", output.Count)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", d.Severity)
	}
	if d.Code != "LEX1002" {
		t.Errorf("Expected code=LEX1002, got %s", d.Code)
	}
	if d.Location.File != "test.jsx" {
		t.Errorf("Expected file=test.jsx, got %s", d.Location.File)
	}
	if d.Location.StartByte != 10 || d.Location.EndByte != 23 {
		t.Errorf("Unexpected byte range: %d-%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 11 {
		t.Errorf("Unexpected start position: %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

// TestJSONMax проверяет обрезку вывода
func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte("const a = 1;\n"))

	bag := diag.NewBag(10)
	for i := 0; i < 5; i++ {
		bag.Add(diag.New(
			diag.SevInfo,
			diag.ExtractDynamicStyle,
			source.Span{File: fileID, Start: uint32(i), End: uint32(i) + 1},
			"skipped",
		))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(output.Diagnostics) != 2 {
		t.Errorf("Expected 2 diagnostics after truncation, got %d", len(output.Diagnostics))
	}
	if !output.Truncated {
		t.Error("Expected truncated flag to be set")
	}
	if output.Count != 5 {
		t.Errorf("Expected count=5, got %d", output.Count)
	}
}

// TestSummary проверяет итоговую строку
func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, 3, 7, 2, 0, false)
	if got := buf.String(); got != "3 file(s), 7 usage(s) inlined, 2 declaration(s) removed\n" {
		t.Errorf("Unexpected summary: %q", got)
	}

	buf.Reset()
	Summary(&buf, 1, 0, 0, 4, false)
	if !strings.Contains(buf.String(), "4 error(s)") {
		t.Errorf("Expected error count in summary, got %q", buf.String())
	}
}
