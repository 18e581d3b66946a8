package lexer

import (
	"stylic/internal/diag"
	"stylic/internal/source"
	"stylic/internal/token"
)

// Lexer produces tokens for the JS/JSX subset. It owns no lookahead; the
// parser drives it strictly forward, which is what makes the JSX text mode
// (ScanJSXText) possible.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
	hold     []token.Trivia
}

// New creates a lexer over the whole file.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		reporter: reporter,
	}
}

// NewRange creates a lexer over the byte range [start, end) of file.
// Used for template substitution chunks.
func NewRange(file *source.File, start, end uint32, reporter diag.Reporter) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursorAt(file, start, end),
		reporter: reporter,
	}
}

// Next returns the next significant token with collected leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: lx.takeHold(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStart(ch):
		tok = lx.scanIdentOrKeyword()
	case isDigit(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.digitAfterDot():
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	case ch == '`':
		tok = lx.scanTemplate()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.takeHold()
	return tok
}

// ScanJSXText scans raw JSX text from the current position up to the next
// '<' or '{'. The parser calls this right after consuming '>' of an
// opening tag, before pulling the next regular token.
func (lx *Lexer) ScanJSXText() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '<' || ch == '{' || ch == '}' {
			break
		}
		lx.cursor.Bump()
	}
	return token.Token{
		Kind: token.JSXText,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}

// Pos returns the current byte offset, used by the parser to slice
// template substitution ranges.
func (lx *Lexer) Pos() uint32 {
	return lx.cursor.Off
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) takeHold() []token.Trivia {
	hold := lx.hold
	lx.hold = nil
	return hold
}

// collectLeadingTrivia consumes whitespace and comments into lx.hold.
// Comments carrying @stylic markers become TriviaDirective entries.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.cursor.Bump()
		case ch == '\n':
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: lx.cursor.SpanFrom(mark)})
		case ch == '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
				return
			}
			if b1 == '/' {
				lx.scanLineComment()
			} else {
				lx.scanBlockComment()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanLineComment() {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '/'
	body := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.pushComment(token.TriviaLineComment, mark, lx.cursor.TextFrom(body))
}

func (lx *Lexer) scanBlockComment() {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	body := lx.cursor.Mark()
	bodyEnd := lx.cursor.Off
	closed := false
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '*' && b1 == '/' {
			bodyEnd = lx.cursor.Off
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	if !closed {
		bodyEnd = lx.cursor.Off
		diag.ReportError(lx.reporter, diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(mark),
			"unterminated block comment").Emit()
	}
	text := string(lx.file.Content[body:Mark(bodyEnd)])
	lx.pushComment(token.TriviaBlockComment, mark, text)
}

func (lx *Lexer) pushComment(kind token.TriviaKind, mark Mark, text string) {
	span := lx.cursor.SpanFrom(mark)
	if d, ok := token.ParseDirective(text, span); ok {
		lx.hold = append(lx.hold, token.Trivia{
			Kind:      token.TriviaDirective,
			Span:      span,
			Text:      text,
			Directive: &d,
		})
		return
	}
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: span, Text: text})
}
