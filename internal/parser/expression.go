package parser

import (
	"strconv"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/token"
)

// parseExpr parses a full expression, assignments included.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

func (p *Parser) parseAssign() ast.Expr {
	start := p.tok.Span.Start
	left := p.parseCond()

	// Single-identifier arrow: `x => body`.
	if _, isIdent := left.Data.(*ast.EIdent); isIdent && p.at(token.Arrow) {
		return p.parseArrowBody(start, []ast.Param{identParam(left)})
	}

	if p.eat(token.Assign) {
		right := p.parseAssign()
		return ast.Expr{
			Span: p.spanFrom(start),
			Data: &ast.EBinary{Op: ast.BinAssign, Left: left, Right: right},
		}
	}
	return left
}

func identParam(e ast.Expr) ast.Param {
	id := e.Data.(*ast.EIdent)
	return ast.Param{Name: id, Span: e.Span}
}

func (p *Parser) parseCond() ast.Expr {
	start := p.tok.Span.Start
	test := p.parseBinary(0)
	if !p.eat(token.Question) {
		return test
	}
	yes := p.parseAssign()
	p.expect(token.Colon)
	no := p.parseAssign()
	return ast.Expr{
		Span: p.spanFrom(start),
		Data: &ast.ECond{Test: test, Yes: yes, No: no},
	}
}

// Binding powers for binary operators, loosest first.
var binaryPrec = map[token.Kind]int{
	token.QuestionQuestion: 1,
	token.OrOr:             2,
	token.AndAnd:           3,
	token.EqEq:             4,
	token.EqEqEq:           4,
	token.BangEq:           4,
	token.BangEqEq:         4,
	token.Lt:               5,
	token.Gt:               5,
	token.LtEq:             5,
	token.GtEq:             5,
	token.Plus:             6,
	token.Minus:            6,
	token.Star:             7,
	token.Slash:            7,
	token.Percent:          7,
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.QuestionQuestion: ast.BinNullish,
	token.OrOr:             ast.BinOr,
	token.AndAnd:           ast.BinAnd,
	token.EqEq:             ast.BinEq,
	token.EqEqEq:           ast.BinStrictEq,
	token.BangEq:           ast.BinNotEq,
	token.BangEqEq:         ast.BinStrictNotEq,
	token.Lt:               ast.BinLt,
	token.Gt:               ast.BinGt,
	token.LtEq:             ast.BinLtEq,
	token.GtEq:             ast.BinGtEq,
	token.Plus:             ast.BinAdd,
	token.Minus:            ast.BinSub,
	token.Star:             ast.BinMul,
	token.Slash:            ast.BinDiv,
	token.Percent:          ast.BinMod,
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	start := p.tok.Span.Start
	left := p.parseUnary()
	for {
		prec, ok := binaryPrec[p.tok.Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := binaryOps[p.tok.Kind]
		p.next()
		right := p.parseBinary(prec + 1)
		left = ast.Expr{
			Span: p.spanFrom(start),
			Data: &ast.EBinary{Op: op, Left: left, Right: right},
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.tok.Span.Start
	var op ast.UnaryOp
	switch p.tok.Kind {
	case token.Minus:
		op = ast.UnaryNeg
	case token.Plus:
		op = ast.UnaryPos
	case token.Bang:
		op = ast.UnaryNot
	case token.KwTypeof:
		op = ast.UnaryTypeof
	default:
		return p.parseSuffix()
	}
	p.next()
	value := p.parseUnary()
	return ast.Expr{
		Span: p.spanFrom(start),
		Data: &ast.EUnary{Op: op, Value: value},
	}
}

// parseSuffix parses a primary expression followed by member access,
// indexing, and call chains.
func (p *Parser) parseSuffix() ast.Expr {
	start := p.tok.Span.Start
	expr := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.next()
			nameTok := p.expect(token.Ident)
			expr = ast.Expr{
				Span: p.spanFrom(start),
				Data: &ast.EDot{Target: expr, Name: nameTok.Text, NameSpan: nameTok.Span},
			}
		case token.LBracket:
			p.next()
			index := p.parseExpr()
			p.expect(token.RBracket)
			expr = ast.Expr{
				Span: p.spanFrom(start),
				Data: &ast.EIndex{Target: expr, Index: index},
			}
		case token.LParen:
			args := p.parseArgs()
			expr = ast.Expr{
				Span: p.spanFrom(start),
				Data: &ast.ECall{Target: expr, Args: args},
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	p.expect(token.LParen)
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Ellipsis) {
			start := p.tok.Span.Start
			p.next()
			value := p.parseAssign()
			args = append(args, ast.Expr{
				Span: p.spanFrom(start),
				Data: &ast.ESpread{Value: value},
			})
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Ident:
		name := p.tok.Text
		p.next()
		return ast.Expr{Span: p.spanFrom(start), Data: &ast.EIdent{Name: name}}
	case token.StringLit:
		raw := p.tok.Text
		p.next()
		return ast.Expr{
			Span: p.spanFrom(start),
			Data: &ast.EString{Value: unquote(raw), Raw: raw},
		}
	case token.NumberLit:
		raw := p.tok.Text
		p.next()
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			diag.ReportError(p.reporter, diag.LexBadNumber, p.spanFrom(start),
				"malformed number literal").Emit()
		}
		return ast.Expr{Span: p.spanFrom(start), Data: &ast.ENumber{Value: value, Raw: raw}}
	case token.TemplateLit:
		return p.parseTemplate()
	case token.KwTrue:
		p.next()
		return ast.Expr{Span: p.spanFrom(start), Data: &ast.EBool{Value: true}}
	case token.KwFalse:
		p.next()
		return ast.Expr{Span: p.spanFrom(start), Data: &ast.EBool{Value: false}}
	case token.KwNull:
		p.next()
		return ast.Expr{Span: p.spanFrom(start), Data: &ast.ENull{}}
	case token.KwUndefined:
		p.next()
		return ast.Expr{Span: p.spanFrom(start), Data: &ast.EUndefined{}}
	case token.LBracket:
		return p.parseArray()
	case token.LBrace:
		return p.parseObject()
	case token.LParen:
		return p.parseParenOrArrow()
	case token.Lt:
		return p.parseJSXElement()
	case token.KwFunction:
		return p.parseFunctionExpr()
	case token.KwNew:
		p.next()
		target := p.parseSuffix()
		// parseSuffix already folded the argument list into an ECall;
		// unwrap it so `new X(...)` keeps constructor semantics.
		if call, ok := target.Data.(*ast.ECall); ok {
			return ast.Expr{
				Span: p.spanFrom(start),
				Data: &ast.ENew{Target: call.Target, Args: call.Args},
			}
		}
		return ast.Expr{Span: p.spanFrom(start), Data: &ast.ENew{Target: target}}
	default:
		diag.ReportError(p.reporter, diag.SynExpectExpression, p.tok.Span,
			"expected expression").Emit()
		span := p.tok.Span
		return ast.Expr{Span: span, Data: &ast.EMissing{}}
	}
}

func (p *Parser) parseArray() ast.Expr {
	start := p.tok.Span.Start
	p.expect(token.LBracket)
	arr := &ast.EArray{}
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Ellipsis) {
			spreadStart := p.tok.Span.Start
			p.next()
			value := p.parseAssign()
			arr.Items = append(arr.Items, ast.Expr{
				Span: p.spanFrom(spreadStart),
				Data: &ast.ESpread{Value: value},
			})
		} else {
			arr.Items = append(arr.Items, p.parseAssign())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return ast.Expr{Span: p.spanFrom(start), Data: arr}
}

func (p *Parser) parseObject() ast.Expr {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	obj := &ast.EObject{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		obj.Properties = append(obj.Properties, p.parseProperty())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return ast.Expr{Span: p.spanFrom(start), Data: obj}
}

func (p *Parser) parseProperty() ast.Property {
	if p.at(token.Ellipsis) {
		start := p.tok.Span
		p.next()
		value := p.parseAssign()
		return ast.Property{KeySpan: start, Value: value, Spread: true}
	}

	switch p.tok.Kind {
	case token.StringLit:
		key := unquote(p.tok.Text)
		keySpan := p.tok.Span
		p.next()
		p.expect(token.Colon)
		return ast.Property{Key: key, KeySpan: keySpan, Value: p.parseAssign()}
	case token.NumberLit:
		key := p.tok.Text
		keySpan := p.tok.Span
		p.next()
		p.expect(token.Colon)
		return ast.Property{Key: key, KeySpan: keySpan, Value: p.parseAssign()}
	case token.LBracket:
		keySpan := p.tok.Span
		p.next()
		computed := p.parseAssign()
		p.expect(token.RBracket)
		p.expect(token.Colon)
		return ast.Property{KeySpan: keySpan, Computed: &computed, Value: p.parseAssign()}
	default:
		// Identifier (or keyword used as a property name).
		key := p.tok.Text
		keySpan := p.tok.Span
		if !p.tok.IsIdent() && !p.tok.IsKeyword() {
			diag.ReportError(p.reporter, diag.SynExpectIdentifier, p.tok.Span,
				"expected property name").Emit()
		}
		p.next()
		if p.eat(token.Colon) {
			return ast.Property{Key: key, KeySpan: keySpan, Value: p.parseAssign()}
		}
		// Shorthand { key }.
		return ast.Property{
			Key:       key,
			KeySpan:   keySpan,
			Value:     ast.Expr{Span: keySpan, Data: &ast.EIdent{Name: key}},
			Shorthand: true,
		}
	}
}

// parseParenOrArrow parses `(...)`" and decides between a parenthesized
// expression and an arrow function parameter list by looking at what
// follows the closing paren (the esbuild "parse then reinterpret" trick).
func (p *Parser) parseParenOrArrow() ast.Expr {
	start := p.tok.Span.Start
	p.expect(token.LParen)

	var items []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		items = append(items, p.parseAssign())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)

	if p.at(token.Arrow) {
		params := make([]ast.Param, 0, len(items))
		for _, item := range items {
			if _, ok := item.Data.(*ast.EIdent); !ok {
				diag.ReportError(p.reporter, diag.SynExpectIdentifier, item.Span,
					"arrow parameters must be plain identifiers").Emit()
				continue
			}
			params = append(params, identParam(item))
		}
		return p.parseArrowBody(start, params)
	}

	if len(items) != 1 {
		diag.ReportError(p.reporter, diag.SynExpectExpression, p.spanFrom(start),
			"parenthesized expression must contain exactly one expression").Emit()
		return ast.Expr{Span: p.spanFrom(start), Data: &ast.EMissing{}}
	}
	return items[0]
}

func (p *Parser) parseArrowBody(start uint32, params []ast.Param) ast.Expr {
	p.expect(token.Arrow)
	arrow := &ast.EArrow{Params: params}
	if p.at(token.LBrace) {
		arrow.BodyBlock = p.parseBlock()
	} else {
		body := p.parseAssign()
		arrow.BodyExpr = &body
	}
	return ast.Expr{Span: p.spanFrom(start), Data: arrow}
}

func (p *Parser) parseFunctionExpr() ast.Expr {
	start := p.tok.Span.Start
	p.next() // function
	name := ""
	if p.at(token.Ident) {
		name = p.tok.Text
		p.next()
	}
	params := p.parseParams()
	body := p.parseBlock()
	return ast.Expr{
		Span: p.spanFrom(start),
		Data: &ast.EFunction{Name: name, Fn: ast.Fn{Params: params, Body: body}},
	}
}
