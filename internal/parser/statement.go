package parser

import (
	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/token"
)

func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwExport:
		return p.parseExport()
	case token.KwConst, token.KwLet, token.KwVar:
		return p.parseLocal(false)
	case token.KwFunction:
		return p.parseFunction(false)
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.LBrace:
		return p.parseBlockStmt()
	case token.Semicolon:
		start := p.tok.Span.Start
		p.next()
		return ast.Stmt{Span: p.spanFrom(start), Data: &ast.SEmpty{}}
	default:
		start := p.tok.Span.Start
		value := p.parseExpr()
		p.semi()
		return ast.Stmt{Span: p.spanFrom(start), Data: &ast.SExpr{Value: value}}
	}
}

func (p *Parser) parseLocal(exported bool) ast.Stmt {
	start := p.tok.Span.Start
	static := p.hasDirective("static") || p.pendingStatic
	p.pendingStatic = false

	var kind ast.LocalKind
	switch p.tok.Kind {
	case token.KwConst:
		kind = ast.LocalConst
	case token.KwLet:
		kind = ast.LocalLet
	default:
		kind = ast.LocalVar
	}
	p.next()

	var decls []ast.Declarator
	for {
		nameTok := p.expect(token.Ident)
		decl := ast.Declarator{
			Name:     &ast.EIdent{Name: nameTok.Text},
			NameSpan: nameTok.Span,
		}
		if p.eat(token.Assign) {
			init := p.parseAssign()
			decl.Init = &init
		}
		decls = append(decls, decl)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.semi()

	return ast.Stmt{
		Span: p.spanFrom(start),
		Data: &ast.SLocal{Kind: kind, Decls: decls, Exported: exported, Static: static},
	}
}

func (p *Parser) parseFunction(exported bool) ast.Stmt {
	start := p.tok.Span.Start
	p.next() // function
	nameTok := p.expect(token.Ident)
	params := p.parseParams()
	body := p.parseBlock()
	return ast.Stmt{
		Span: p.spanFrom(start),
		Data: &ast.SFunction{
			Name:     &ast.EIdent{Name: nameTok.Text},
			NameSpan: nameTok.Span,
			Fn:       ast.Fn{Params: params, Body: body},
			Exported: exported,
		},
	}
}

func (p *Parser) parseParams() []ast.Param {
	p.expect(token.LParen)
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		nameTok := p.expect(token.Ident)
		params = append(params, ast.Param{
			Name: &ast.EIdent{Name: nameTok.Text},
			Span: nameTok.Span,
		})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return params
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.tok.Span.Start
	p.next() // return
	stmt := &ast.SReturn{}
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) && !p.newlineBefore() {
		value := p.parseExpr()
		stmt.Value = &value
	}
	p.semi()
	return ast.Stmt{Span: p.spanFrom(start), Data: stmt}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.tok.Span.Start
	p.next() // if
	p.expect(token.LParen)
	test := p.parseExpr()
	p.expect(token.RParen)
	yes := p.parseStmt()
	stmt := &ast.SIf{Test: test, Yes: yes}
	if p.eat(token.KwElse) {
		no := p.parseStmt()
		stmt.No = &no
	}
	return ast.Stmt{Span: p.spanFrom(start), Data: stmt}
}

func (p *Parser) parseBlockStmt() ast.Stmt {
	start := p.tok.Span.Start
	block := p.parseBlock()
	return ast.Stmt{Span: p.spanFrom(start), Data: block}
}

func (p *Parser) parseBlock() *ast.SBlock {
	p.expect(token.LBrace)
	block := &ast.SBlock{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.tok.Span
		block.Stmts = append(block.Stmts, p.parseStmt())
		if p.tok.Span == before && !p.at(token.EOF) {
			p.next()
		}
	}
	p.expect(token.RBrace)
	return block
}

func (p *Parser) parseImport() ast.Stmt {
	start := p.tok.Span.Start
	p.next() // import
	stmt := &ast.SImport{}

	switch p.tok.Kind {
	case token.StringLit:
		// Bare side-effect import.
		stmt.Source = unquote(p.tok.Text)
		p.next()
		p.semi()
		return ast.Stmt{Span: p.spanFrom(start), Data: stmt}
	case token.Ident:
		stmt.Default = &ast.EIdent{Name: p.tok.Text}
		p.next()
		if p.eat(token.Comma) {
			p.parseImportClause(stmt)
		}
	case token.Star:
		p.next()
		p.expect(token.KwAs)
		nsTok := p.expect(token.Ident)
		stmt.Namespace = &ast.EIdent{Name: nsTok.Text}
	case token.LBrace:
		p.parseImportClause(stmt)
	default:
		diag.ReportError(p.reporter, diag.SynUnexpectedToken, p.tok.Span,
			"expected import clause").Emit()
	}

	p.expect(token.KwFrom)
	srcTok := p.expect(token.StringLit)
	stmt.Source = unquote(srcTok.Text)
	p.semi()
	return ast.Stmt{Span: p.spanFrom(start), Data: stmt}
}

func (p *Parser) parseImportClause(stmt *ast.SImport) {
	if p.at(token.Star) {
		p.next()
		p.expect(token.KwAs)
		nsTok := p.expect(token.Ident)
		stmt.Namespace = &ast.EIdent{Name: nsTok.Text}
		return
	}
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok := p.expect(token.Ident)
		name := ast.ImportName{Name: nameTok.Text, Span: nameTok.Span}
		if p.eat(token.KwAs) {
			aliasTok := p.expect(token.Ident)
			name.Alias = &ast.EIdent{Name: aliasTok.Text}
		} else {
			name.Alias = &ast.EIdent{Name: nameTok.Text}
		}
		stmt.Named = append(stmt.Named, name)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
}

func (p *Parser) parseExport() ast.Stmt {
	start := p.tok.Span.Start
	// A declaration-level directive may sit on the export keyword.
	p.pendingStatic = p.hasDirective("static")
	p.next() // export
	switch p.tok.Kind {
	case token.KwConst, token.KwLet, token.KwVar:
		return p.parseLocal(true)
	case token.KwFunction:
		return p.parseFunction(true)
	case token.KwDefault:
		p.next()
		value := p.parseExpr()
		p.semi()
		return ast.Stmt{Span: p.spanFrom(start), Data: &ast.SExportDefault{Value: value}}
	default:
		diag.ReportError(p.reporter, diag.SynUnexpectedToken, p.tok.Span,
			"expected declaration or default after export").Emit()
		return ast.Stmt{Span: p.spanFrom(start), Data: &ast.SEmpty{}}
	}
}
