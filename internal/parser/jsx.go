package parser

import (
	"fmt"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/source"
	"stylic/internal/token"
)

// JSX parsing protocol: whenever the current token is the '>' that ends a
// tag, the lexer cursor sits right past it. Children contexts must call
// ScanJSXText before fetching the next structural token. Element parsing
// therefore returns with the element's final '>' still current, and the
// caller decides how to step over it.

// parseJSXElement parses an element in expression position.
func (p *Parser) parseJSXElement() ast.Expr {
	start := p.tok.Span.Start
	dynamic := p.hasDirective("dynamic")
	p.next() // '<'
	expr := p.parseJSXAfterLt(start, dynamic)
	p.next() // step past the final '>'
	return expr
}

// parseJSXAfterLt parses an element whose '<' is already consumed.
// On return the current token is the element's final '>'.
func (p *Parser) parseJSXAfterLt(start uint32, dynamic bool) ast.Expr {
	el := &ast.EJSXElement{Dynamic: dynamic}

	// Fragment: <>...</>
	if p.at(token.Gt) {
		p.parseJSXChildren(el, "")
		span := source.Span{File: p.file.ID, Start: start, End: p.tok.Span.End}
		el.OriginalSpan = span
		return ast.Expr{Span: span, Data: el}
	}

	tag := p.parseJSXTag()
	el.Tag = &tag

	for p.tok.IsIdent() || p.tok.IsKeyword() || p.at(token.LBrace) {
		el.Attrs = append(el.Attrs, p.parseJSXAttr())
	}

	if p.eat(token.Slash) {
		el.SelfClosing = true
		if !p.at(token.Gt) {
			diag.ReportError(p.reporter, diag.SynUnclosedJSXTag, p.tok.Span,
				"expected '>' after '/'").Emit()
		}
		span := source.Span{File: p.file.ID, Start: start, End: p.tok.Span.End}
		el.OriginalSpan = span
		return ast.Expr{Span: span, Data: el}
	}

	if !p.at(token.Gt) {
		diag.ReportError(p.reporter, diag.SynUnclosedJSXTag, p.tok.Span,
			"expected '>' to close the opening tag").Emit()
		span := source.Span{File: p.file.ID, Start: start, End: p.tok.Span.End}
		el.OriginalSpan = span
		return ast.Expr{Span: span, Data: el}
	}

	p.parseJSXChildren(el, el.TagName())
	span := source.Span{File: p.file.ID, Start: start, End: p.tok.Span.End}
	el.OriginalSpan = span
	return ast.Expr{Span: span, Data: el}
}

// parseJSXTag parses `name` or `ns.Name` tag expressions.
func (p *Parser) parseJSXTag() ast.Expr {
	nameTok := p.expect(token.Ident)
	tag := ast.Expr{Span: nameTok.Span, Data: &ast.EIdent{Name: nameTok.Text}}
	for p.eat(token.Dot) {
		memberTok := p.expect(token.Ident)
		tag = ast.Expr{
			Span: tag.Span.Cover(memberTok.Span),
			Data: &ast.EDot{Target: tag, Name: memberTok.Text, NameSpan: memberTok.Span},
		}
	}
	return tag
}

// parseJSXAttr parses one attribute: bare, valued, or spread.
func (p *Parser) parseJSXAttr() ast.JSXAttr {
	if p.at(token.LBrace) {
		p.next()
		p.expect(token.Ellipsis)
		value := p.parseAssign()
		p.expect(token.RBrace)
		return ast.JSXAttr{Spread: true, Value: &value, NameSpan: value.Span}
	}

	name, nameSpan := p.parseJSXAttrName()
	attr := ast.JSXAttr{Name: name, NameSpan: nameSpan}
	if !p.eat(token.Assign) {
		return attr
	}

	switch p.tok.Kind {
	case token.StringLit:
		value := ast.Expr{
			Span: p.tok.Span,
			Data: &ast.EString{Value: unquote(p.tok.Text), Raw: p.tok.Text},
		}
		p.next()
		attr.Value = &value
	case token.LBrace:
		p.next()
		value := p.parseAssign()
		p.expect(token.RBrace)
		attr.Value = &value
	default:
		diag.ReportError(p.reporter, diag.SynExpectAttrValue, p.tok.Span,
			"expected string or {expression} attribute value").Emit()
	}
	return attr
}

// parseJSXAttrName joins dashed names (data-x) when the pieces are
// adjacent in the source.
func (p *Parser) parseJSXAttrName() (string, source.Span) {
	first := p.tok
	if !first.IsIdent() && !first.IsKeyword() {
		diag.ReportError(p.reporter, diag.SynExpectIdentifier, first.Span,
			"expected attribute name").Emit()
	}
	name := first.Text
	span := first.Span
	p.next()
	for p.at(token.Minus) && p.tok.Span.Start == span.End {
		p.next()
		part := p.tok
		if !part.IsIdent() && !part.IsKeyword() {
			break
		}
		name += "-" + part.Text
		span = span.Cover(part.Span)
		p.next()
	}
	return name, span
}

// parseJSXChildren consumes children and the closing tag. closeName is ""
// for fragments. On return the current token is the closing tag's '>'.
func (p *Parser) parseJSXChildren(el *ast.EJSXElement, closeName string) {
	pendingDynamic := false
	for {
		// The current token is a '>' or '}' whose following bytes are raw
		// JSX text.
		text := p.lex.ScanJSXText()
		if text.Text != "" {
			el.Children = append(el.Children, ast.Expr{
				Span: text.Span,
				Data: &ast.EJSXText{Value: text.Text},
			})
		}
		p.next()

		switch p.tok.Kind {
		case token.Lt:
			ltStart := p.tok.Span.Start
			p.next()
			if p.eat(token.Slash) {
				// Closing tag.
				if closeName == "" {
					if !p.at(token.Gt) {
						diag.ReportError(p.reporter, diag.SynMismatchedJSXTag, p.tok.Span,
							"expected '>' to close the fragment").Emit()
					}
					return
				}
				closing := p.parseJSXTag()
				if got := jsxTagString(closing); got != closeName {
					diag.ReportError(p.reporter, diag.SynMismatchedJSXTag, closing.Span,
						fmt.Sprintf("closing tag </%s> does not match <%s>", got, closeName)).Emit()
				}
				if !p.at(token.Gt) {
					diag.ReportError(p.reporter, diag.SynUnclosedJSXTag, p.tok.Span,
						"expected '>' after closing tag name").Emit()
				}
				return
			}
			child := p.parseJSXAfterLt(ltStart, pendingDynamic)
			pendingDynamic = false
			el.Children = append(el.Children, child)
			// child's final '>' is current; loop back to text scanning.

		case token.LBrace:
			p.next()
			if p.at(token.RBrace) {
				// Comment-only container; a directive applies to the
				// next sibling element.
				if p.hasDirective("dynamic") {
					pendingDynamic = true
				}
				// RBrace stays current; loop scans trailing text.
				continue
			}
			value := p.parseAssign()
			el.Children = append(el.Children, ast.Expr{
				Span: value.Span,
				Data: &ast.EJSXContainer{Value: value},
			})
			if !p.at(token.RBrace) {
				diag.ReportError(p.reporter, diag.SynUnclosedDelimiter, p.tok.Span,
					"expected '}' after JSX expression").Emit()
			}
			// RBrace stays current; loop scans trailing text.

		case token.EOF:
			diag.ReportError(p.reporter, diag.SynUnclosedJSXTag, p.tok.Span,
				"unexpected end of file inside JSX element").Emit()
			return

		default:
			diag.ReportError(p.reporter, diag.SynUnexpectedToken, p.tok.Span,
				fmt.Sprintf("unexpected %q inside JSX element", p.tok.Text)).Emit()
			return
		}
	}
}

func jsxTagString(tag ast.Expr) string {
	switch data := tag.Data.(type) {
	case *ast.EIdent:
		return data.Name
	case *ast.EDot:
		return jsxTagString(data.Target) + "." + data.Name
	}
	return "?"
}
