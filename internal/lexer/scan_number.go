package lexer

import (
	"stylic/internal/diag"
	"stylic/internal/token"
)

// scanNumber handles decimal integers and floats, including a leading dot
// (".5") and exponents.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()

	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && lx.digitAfterDot() {
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
		_, b1, ok := lx.cursor.Peek2()
		if ok && (isDigit(b1) || b1 == '+' || b1 == '-') {
			lx.cursor.Bump()
			if ch := lx.cursor.Peek(); ch == '+' || ch == '-' {
				lx.cursor.Bump()
			}
			if !isDigit(lx.cursor.Peek()) {
				diag.ReportError(lx.reporter, diag.LexBadNumber, lx.cursor.SpanFrom(mark),
					"exponent has no digits").Emit()
			}
			for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	return token.Token{
		Kind: token.NumberLit,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}

func (lx *Lexer) digitAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDigit(b1)
}
