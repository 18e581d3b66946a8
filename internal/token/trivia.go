package token

import (
	"strings"

	"stylic/internal/source"
)

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDirective
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDirective:
		return "Directive"
	}
	return "Unknown"
}

// Directive is a @stylic marker embedded in a comment.
// Name is one of "all-dynamic", "all-static", "static", "dynamic".
type Directive struct {
	Name string
	Span source.Span
}

type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // set only when Kind == TriviaDirective
}

const directiveMarker = "@stylic"

// ParseDirective extracts a stylic directive from comment text, with the
// comment delimiters already stripped. Returns false for ordinary comments.
func ParseDirective(text string, span source.Span) (Directive, bool) {
	body := strings.TrimSpace(text)
	if !strings.HasPrefix(body, directiveMarker) {
		return Directive{}, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(body, directiveMarker))
	// Only the first word counts; trailing prose is allowed.
	name, _, _ := strings.Cut(rest, " ")
	switch name {
	case "all-dynamic", "all-static", "static", "dynamic":
		return Directive{Name: name, Span: span}, true
	}
	return Directive{}, false
}
