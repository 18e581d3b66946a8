package token

import (
	"stylic/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, TemplateLit, KwTrue, KwFalse, KwNull, KwUndefined:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a keyword of the subset.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwConst && t.Kind <= KwTypeof
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Directive returns the first stylic directive attached to the token's
// leading trivia, if any.
func (t Token) Directive() (Directive, bool) {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaDirective && tr.Directive != nil {
			return *tr.Directive, true
		}
	}
	return Directive{}, false
}
