package token

import (
	"testing"

	"stylic/internal/source"
)

func TestLookupKeyword(t *testing.T) {
	if LookupKeyword("const") != KwConst {
		t.Fatal("const not recognized")
	}
	if LookupKeyword("styled") != Ident {
		t.Fatal("styled must be a plain identifier")
	}
}

func TestParseDirective(t *testing.T) {
	cases := []struct {
		text string
		name string
		ok   bool
	}{
		{" @stylic all-dynamic", "all-dynamic", true},
		{"@stylic all-static", "all-static", true},
		{"@stylic static", "static", true},
		{"@stylic dynamic reason: computed at runtime", "dynamic", true},
		{"@stylic bogus", "", false},
		{"plain comment", "", false},
		{"@stylicX static", "", false},
	}
	for _, c := range cases {
		d, ok := ParseDirective(c.text, source.Span{})
		if ok != c.ok || d.Name != c.name {
			t.Errorf("ParseDirective(%q) = (%q, %v), want (%q, %v)", c.text, d.Name, ok, c.name, c.ok)
		}
	}
}

func TestTokenDirective(t *testing.T) {
	d := Directive{Name: "static"}
	tok := Token{
		Kind: KwConst,
		Leading: []Trivia{
			{Kind: TriviaLineComment, Text: "unrelated"},
			{Kind: TriviaDirective, Directive: &d},
		},
	}
	got, ok := tok.Directive()
	if !ok || got.Name != "static" {
		t.Fatalf("Directive() = (%+v, %v)", got, ok)
	}
}
