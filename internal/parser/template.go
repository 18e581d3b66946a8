package parser

import (
	"strings"

	"stylic/internal/ast"
	"stylic/internal/source"
)

// parseTemplate splits the raw template token into text chunks and
// substitution expressions. Substitution ranges are re-lexed in place, so
// their spans stay absolute.
func (p *Parser) parseTemplate() ast.Expr {
	tok := p.tok
	p.next()

	raw := tok.Text
	base := tok.Span.Start
	tmpl := &ast.ETemplate{}

	// Strip backticks; unterminated templates were reported by the lexer.
	if len(raw) < 2 {
		return ast.Expr{Span: tok.Span, Data: tmpl}
	}
	body := raw[1 : len(raw)-1]
	offset := uint32(1) // past opening backtick

	textStart := 0
	i := 0
	flushText := func(end int) {
		if end > textStart {
			tmpl.Parts = append(tmpl.Parts, ast.TemplatePart{
				Text: unescapeTemplate(body[textStart:end]),
				Span: source.Span{
					File:  tok.Span.File,
					Start: base + offset + uint32(textStart), // #nosec G115
					End:   base + offset + uint32(end),       // #nosec G115
				},
			})
		}
	}

	for i < len(body) {
		if body[i] == '\\' && i+1 < len(body) {
			i += 2
			continue
		}
		if body[i] == '$' && i+1 < len(body) && body[i+1] == '{' {
			flushText(i)
			exprStart := i + 2
			depth := 1
			j := exprStart
			for j < len(body) && depth > 0 {
				switch body[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			exprEnd := j - 1 // before closing '}'
			absStart := base + offset + uint32(exprStart) // #nosec G115
			absEnd := base + offset + uint32(exprEnd)     // #nosec G115
			sub := parseExprRange(p.file, absStart, absEnd, p.reporter)
			tmpl.Parts = append(tmpl.Parts, ast.TemplatePart{Expr: &sub, Span: sub.Span})
			i = j
			textStart = i
			continue
		}
		i++
	}
	flushText(len(body))

	return ast.Expr{Span: tok.Span, Data: tmpl}
}

// unquote strips quotes from a string literal and resolves escapes.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	return unescape(raw[1 : len(raw)-1])
}

func unescape(body string) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		default:
			// Quotes, backslash, backtick, and anything unrecognized
			// resolve to the escaped byte itself.
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}

func unescapeTemplate(body string) string {
	return unescape(body)
}
