package lexer

import (
	"testing"

	"stylic/internal/diag"
	"stylic/internal/source"
	"stylic/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte(src))
	bag := diag.NewBag(16)
	lx := New(fs.Get(id), diag.BagReporter{Bag: bag})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, bag
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexDeclaration(t *testing.T) {
	toks, bag := lexAll(t, `const Box = styled.div({ color: 'red' });`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{
		token.KwConst, token.Ident, token.Assign, token.Ident, token.Dot,
		token.Ident, token.LParen, token.LBrace, token.Ident, token.Colon,
		token.StringLit, token.RBrace, token.RParen, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexOperators(t *testing.T) {
	toks, _ := lexAll(t, `=> === !== ?? ... <= >=`)
	want := []token.Kind{
		token.Arrow, token.EqEqEq, token.BangEqEq, token.QuestionQuestion,
		token.Ellipsis, token.LtEq, token.GtEq, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexNumber(t *testing.T) {
	toks, bag := lexAll(t, `12 1.5 .25 1e3 2.5e-2`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(toks) != 6 { // 5 numbers + EOF
		t.Fatalf("token count = %d: %v", len(toks), kinds(toks))
	}
	for i := 0; i < 5; i++ {
		if toks[i].Kind != token.NumberLit {
			t.Fatalf("token %d = %v, want number", i, toks[i].Kind)
		}
	}
	if toks[4].Text != "2.5e-2" {
		t.Fatalf("text = %q", toks[4].Text)
	}
}

func TestLexDirectiveTrivia(t *testing.T) {
	toks, _ := lexAll(t, "// @stylic all-dynamic\nconst x = 1;")
	d, ok := toks[0].Directive()
	if !ok {
		t.Fatal("directive not attached to const token")
	}
	if d.Name != "all-dynamic" {
		t.Fatalf("directive = %q", d.Name)
	}
}

func TestLexBlockCommentDirective(t *testing.T) {
	toks, _ := lexAll(t, "/* @stylic static */ const Box = 1;")
	d, ok := toks[0].Directive()
	if !ok || d.Name != "static" {
		t.Fatalf("directive = (%+v, %v)", d, ok)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, `const s = 'oops`)
	if !bag.HasErrors() {
		t.Fatal("expected unterminated string error")
	}
}

func TestLexTemplateWithSubstitution(t *testing.T) {
	toks, bag := lexAll(t, "const s = `a${1 + {b: 2}.b}c`;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	var tmpl *token.Token
	for i := range toks {
		if toks[i].Kind == token.TemplateLit {
			tmpl = &toks[i]
		}
	}
	if tmpl == nil {
		t.Fatalf("no template token: %v", kinds(toks))
	}
	if tmpl.Text != "`a${1 + {b: 2}.b}c`" {
		t.Fatalf("template text = %q", tmpl.Text)
	}
}

func TestScanJSXText(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte("hello world<span>"))
	lx := New(fs.Get(id), diag.NopReporter{})

	txt := lx.ScanJSXText()
	if txt.Kind != token.JSXText || txt.Text != "hello world" {
		t.Fatalf("jsx text = %+v", txt)
	}
	next := lx.Next()
	if next.Kind != token.Lt {
		t.Fatalf("next after text = %v", next.Kind)
	}
}
