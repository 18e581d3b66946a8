package source

import (
	"testing"
)

func TestAddAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte("const a = 1;\nconst b = 2;\n"))

	start, end := fs.Resolve(Span{File: id, Start: 13, End: 18})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 6 {
		t.Fatalf("end = %+v, want line 2 col 6", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, c := range cases {
		if got := f.GetLine(c.line); got != c.want {
			t.Errorf("GetLine(%d) = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("Cover = %+v, want 5..20", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must be a no-op, got %+v", got)
	}
}

func TestNormalizeOnLoadFlags(t *testing.T) {
	content, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !hadBOM || string(content) != "x" {
		t.Fatalf("BOM not stripped: %q", content)
	}
	content, hadCRLF := normalizeCRLF([]byte("a\r\nb"))
	if !hadCRLF || string(content) != "a\nb" {
		t.Fatalf("CRLF not normalized: %q", content)
	}
}
