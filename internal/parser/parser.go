// Package parser builds the AST for the JS/JSX subset.
//
// The parser holds exactly one current token and never buffers ahead.
// That discipline keeps the lexer cursor position authoritative, which
// the JSX text mode depends on: after consuming '>' the parser asks the
// lexer for a raw text run before pulling the next structural token.
package parser

import (
	"fmt"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/lexer"
	"stylic/internal/source"
	"stylic/internal/token"
)

type Parser struct {
	lex      *lexer.Lexer
	file     *source.File
	reporter diag.Reporter

	tok     token.Token
	prevEnd uint32

	allDynamic bool
	allStatic  bool
	// pendingStatic carries a declaration-level static directive seen on
	// an export keyword down to the declaration it modifies.
	pendingStatic bool
}

// ParseFile parses the whole file into an ast.File.
func ParseFile(file *source.File, reporter diag.Reporter) *ast.File {
	p := &Parser{
		lex:      lexer.New(file, reporter),
		file:     file,
		reporter: reporter,
	}
	p.next()

	out := &ast.File{Path: file.Path}
	for p.tok.Kind != token.EOF {
		before := p.tok.Span
		out.Stmts = append(out.Stmts, p.parseStmt())
		if p.tok.Span == before && p.tok.Kind != token.EOF {
			// No progress; skip the offending token to guarantee
			// termination.
			p.next()
		}
	}
	out.AllDynamic = p.allDynamic
	out.AllStatic = p.allStatic
	return out
}

// parseExprRange parses a single expression from a byte range of the file.
// Template substitutions go through here.
func parseExprRange(file *source.File, start, end uint32, reporter diag.Reporter) ast.Expr {
	p := &Parser{
		lex:      lexer.NewRange(file, start, end, reporter),
		file:     file,
		reporter: reporter,
	}
	p.next()
	return p.parseExpr()
}

// next pulls the following token, harvesting file-level directives from
// its leading trivia on the way.
func (p *Parser) next() {
	p.prevEnd = p.tok.Span.End
	p.tok = p.lex.Next()
	for _, tr := range p.tok.Leading {
		if tr.Kind != token.TriviaDirective || tr.Directive == nil {
			continue
		}
		switch tr.Directive.Name {
		case "all-dynamic":
			p.allDynamic = true
		case "all-static":
			p.allStatic = true
		}
	}
}

// hasDirective reports whether the current token's leading trivia carries
// the named stylic directive.
func (p *Parser) hasDirective(name string) bool {
	for _, tr := range p.tok.Leading {
		if tr.Kind == token.TriviaDirective && tr.Directive != nil && tr.Directive.Name == name {
			return true
		}
	}
	return false
}

// newlineBefore reports whether a line break precedes the current token,
// for the restricted-production treatment of return.
func (p *Parser) newlineBefore() bool {
	for _, tr := range p.tok.Leading {
		if tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}

func (p *Parser) at(kind token.Kind) bool {
	return p.tok.Kind == kind
}

// eat consumes the current token when it matches kind.
func (p *Parser) eat(kind token.Kind) bool {
	if p.tok.Kind != kind {
		return false
	}
	p.next()
	return true
}

// expect consumes a token of the given kind or reports an error, leaving
// the token in place for recovery.
func (p *Parser) expect(kind token.Kind) token.Token {
	tok := p.tok
	if tok.Kind != kind {
		diag.ReportError(p.reporter, diag.SynUnexpectedToken, tok.Span,
			fmt.Sprintf("expected %q, found %q", kind.String(), tok.Text)).Emit()
		return token.Token{Kind: kind, Span: p.hereSpan()}
	}
	p.next()
	return tok
}

func (p *Parser) hereSpan() source.Span {
	return source.Span{File: p.file.ID, Start: p.tok.Span.Start, End: p.tok.Span.Start}
}

// spanFrom builds a span from a start offset to the end of the last
// consumed token.
func (p *Parser) spanFrom(start uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: p.prevEnd}
}

// semi consumes an optional statement terminator.
func (p *Parser) semi() {
	p.eat(token.Semicolon)
}
