package lexer

import (
	"stylic/internal/diag"
	"stylic/internal/token"
)

// scanString handles single and double quoted strings. Token.Text keeps
// the raw source including quotes; the parser unescapes.
func (lx *Lexer) scanString(quote byte) token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	closed := false
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '\n' {
			break
		}
		lx.cursor.Bump()
		if ch == '\\' {
			// Consume the escaped byte blindly; the parser validates.
			lx.cursor.Bump()
			continue
		}
		if ch == quote {
			closed = true
			break
		}
	}
	span := lx.cursor.SpanFrom(mark)
	if !closed {
		diag.ReportError(lx.reporter, diag.LexUnterminatedString, span,
			"unterminated string literal").Emit()
		return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.TextFrom(mark)}
	}
	return token.Token{Kind: token.StringLit, Span: span, Text: lx.cursor.TextFrom(mark)}
}

// scanTemplate consumes a whole template literal including `${...}`
// substitutions with balanced braces. The parser re-lexes substitution
// ranges with NewRange.
func (lx *Lexer) scanTemplate() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '`'
	closed := false
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		if ch == '\\' {
			lx.cursor.Bump()
			continue
		}
		if ch == '`' {
			closed = true
			break
		}
		if ch == '$' && lx.cursor.Peek() == '{' {
			lx.cursor.Bump()
			depth := 1
			for !lx.cursor.EOF() && depth > 0 {
				switch lx.cursor.Bump() {
				case '{':
					depth++
				case '}':
					depth--
				}
			}
		}
	}
	span := lx.cursor.SpanFrom(mark)
	if !closed {
		diag.ReportError(lx.reporter, diag.LexUnterminatedString, span,
			"unterminated template literal").Emit()
		return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.TextFrom(mark)}
	}
	return token.Token{Kind: token.TemplateLit, Span: span, Text: lx.cursor.TextFrom(mark)}
}
