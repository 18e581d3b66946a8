package lexer

import (
	"fmt"

	"stylic/internal/diag"
	"stylic/internal/token"
)

// scanOperatorOrPunct scans punctuation and operators, longest match first.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()

	make1 := func(kind token.Kind) token.Token {
		lx.cursor.Bump()
		return lx.finish(kind, mark)
	}
	makeN := func(kind token.Kind, n int) token.Token {
		for i := 0; i < n; i++ {
			lx.cursor.Bump()
		}
		return lx.finish(kind, mark)
	}

	ch := lx.cursor.Peek()
	_, b1, ok2 := lx.cursor.Peek2()
	_, _, b2, ok3 := lx.cursor.Peek3()

	switch ch {
	case '(':
		return make1(token.LParen)
	case ')':
		return make1(token.RParen)
	case '{':
		return make1(token.LBrace)
	case '}':
		return make1(token.RBrace)
	case '[':
		return make1(token.LBracket)
	case ']':
		return make1(token.RBracket)
	case ';':
		return make1(token.Semicolon)
	case ':':
		return make1(token.Colon)
	case ',':
		return make1(token.Comma)
	case '.':
		if ok3 && b1 == '.' && b2 == '.' {
			return makeN(token.Ellipsis, 3)
		}
		return make1(token.Dot)
	case '+':
		return make1(token.Plus)
	case '-':
		return make1(token.Minus)
	case '*':
		return make1(token.Star)
	case '/':
		return make1(token.Slash)
	case '%':
		return make1(token.Percent)
	case '?':
		if ok2 && b1 == '?' {
			return makeN(token.QuestionQuestion, 2)
		}
		return make1(token.Question)
	case '=':
		if ok3 && b1 == '=' && b2 == '=' {
			return makeN(token.EqEqEq, 3)
		}
		if ok2 && b1 == '=' {
			return makeN(token.EqEq, 2)
		}
		if ok2 && b1 == '>' {
			return makeN(token.Arrow, 2)
		}
		return make1(token.Assign)
	case '!':
		if ok3 && b1 == '=' && b2 == '=' {
			return makeN(token.BangEqEq, 3)
		}
		if ok2 && b1 == '=' {
			return makeN(token.BangEq, 2)
		}
		return make1(token.Bang)
	case '<':
		if ok2 && b1 == '=' {
			return makeN(token.LtEq, 2)
		}
		return make1(token.Lt)
	case '>':
		if ok2 && b1 == '=' {
			return makeN(token.GtEq, 2)
		}
		return make1(token.Gt)
	case '&':
		if ok2 && b1 == '&' {
			return makeN(token.AndAnd, 2)
		}
	case '|':
		if ok2 && b1 == '|' {
			return makeN(token.OrOr, 2)
		}
	}

	lx.cursor.Bump()
	span := lx.cursor.SpanFrom(mark)
	diag.ReportError(lx.reporter, diag.LexUnknownChar, span,
		fmt.Sprintf("unexpected character %q", ch)).Emit()
	return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.TextFrom(mark)}
}

func (lx *Lexer) finish(kind token.Kind, mark Mark) token.Token {
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}
