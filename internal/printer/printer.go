// Package printer renders AST nodes back to source text.
//
// The extractor rewrites files by splicing span edits into the original
// bytes (see edits.go), so untouched code survives byte for byte. The
// printer is only responsible for replacement nodes and for whole-file
// dumps in tests and debug commands.
package printer

import (
	"strconv"
	"strings"

	"stylic/internal/ast"
)

// PrintExpr renders one expression.
func PrintExpr(e *ast.Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e, 0)
	return sb.String()
}

// PrintStmt renders one statement at the given indent level.
func PrintStmt(s *ast.Stmt, indent int) string {
	var sb strings.Builder
	writeStmt(&sb, s, indent)
	return sb.String()
}

// PrintFile renders the whole file.
func PrintFile(f *ast.File) string {
	var sb strings.Builder
	for i := range f.Stmts {
		writeStmt(&sb, &f.Stmts[i], 0)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func ind(sb *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
}

func writeStmt(sb *strings.Builder, s *ast.Stmt, indent int) {
	switch data := s.Data.(type) {
	case *ast.SLocal:
		ind(sb, indent)
		if data.Exported {
			sb.WriteString("export ")
		}
		sb.WriteString(data.Kind.String())
		sb.WriteByte(' ')
		for i := range data.Decls {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(data.Decls[i].Name.Name)
			if data.Decls[i].Init != nil {
				sb.WriteString(" = ")
				writeExpr(sb, data.Decls[i].Init, indent)
			}
		}
		sb.WriteByte(';')
	case *ast.SFunction:
		ind(sb, indent)
		if data.Exported {
			sb.WriteString("export ")
		}
		sb.WriteString("function ")
		sb.WriteString(data.Name.Name)
		writeParams(sb, data.Fn.Params)
		sb.WriteByte(' ')
		writeBlock(sb, data.Fn.Body, indent)
	case *ast.SReturn:
		ind(sb, indent)
		sb.WriteString("return")
		if data.Value != nil {
			sb.WriteByte(' ')
			writeExpr(sb, data.Value, indent)
		}
		sb.WriteByte(';')
	case *ast.SExpr:
		ind(sb, indent)
		writeExpr(sb, &data.Value, indent)
		sb.WriteByte(';')
	case *ast.SIf:
		ind(sb, indent)
		sb.WriteString("if (")
		writeExpr(sb, &data.Test, indent)
		sb.WriteString(") ")
		writeNestedStmt(sb, &data.Yes, indent)
		if data.No != nil {
			sb.WriteString(" else ")
			writeNestedStmt(sb, data.No, indent)
		}
	case *ast.SBlock:
		ind(sb, indent)
		writeBlock(sb, data, indent)
	case *ast.SImport:
		ind(sb, indent)
		writeImport(sb, data)
	case *ast.SExportDefault:
		ind(sb, indent)
		sb.WriteString("export default ")
		writeExpr(sb, &data.Value, indent)
		sb.WriteByte(';')
	case *ast.SEmpty:
		ind(sb, indent)
		sb.WriteByte(';')
	}
}

// writeNestedStmt renders the branch of an if statement without leading
// indentation when it is a block.
func writeNestedStmt(sb *strings.Builder, s *ast.Stmt, indent int) {
	if block, ok := s.Data.(*ast.SBlock); ok {
		writeBlock(sb, block, indent)
		return
	}
	var inner strings.Builder
	writeStmt(&inner, s, 0)
	sb.WriteString(inner.String())
}

func writeBlock(sb *strings.Builder, b *ast.SBlock, indent int) {
	if b == nil || len(b.Stmts) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{\n")
	for i := range b.Stmts {
		writeStmt(sb, &b.Stmts[i], indent+1)
		sb.WriteByte('\n')
	}
	ind(sb, indent)
	sb.WriteByte('}')
}

func writeImport(sb *strings.Builder, imp *ast.SImport) {
	sb.WriteString("import ")
	wrote := false
	if imp.Default != nil {
		sb.WriteString(imp.Default.Name)
		wrote = true
	}
	if imp.Namespace != nil {
		if wrote {
			sb.WriteString(", ")
		}
		sb.WriteString("* as ")
		sb.WriteString(imp.Namespace.Name)
		wrote = true
	}
	if len(imp.Named) > 0 {
		if wrote {
			sb.WriteString(", ")
		}
		sb.WriteString("{ ")
		for i, n := range imp.Named {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(n.Name)
			if n.Alias != nil && n.Alias.Name != n.Name {
				sb.WriteString(" as ")
				sb.WriteString(n.Alias.Name)
			}
		}
		sb.WriteString(" }")
		wrote = true
	}
	if wrote {
		sb.WriteString(" from ")
	}
	sb.WriteString(quote(imp.Source))
	sb.WriteByte(';')
}

func writeParams(sb *strings.Builder, params []ast.Param) {
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name.Name)
	}
	sb.WriteByte(')')
}

func writeExpr(sb *strings.Builder, e *ast.Expr, indent int) {
	switch data := e.Data.(type) {
	case *ast.EIdent:
		sb.WriteString(data.Name)
	case *ast.EString:
		if data.Raw != "" {
			sb.WriteString(data.Raw)
		} else {
			sb.WriteString(quote(data.Value))
		}
	case *ast.ENumber:
		if data.Raw != "" {
			sb.WriteString(data.Raw)
		} else {
			sb.WriteString(strconv.FormatFloat(data.Value, 'g', -1, 64))
		}
	case *ast.EBool:
		sb.WriteString(strconv.FormatBool(data.Value))
	case *ast.ENull:
		sb.WriteString("null")
	case *ast.EUndefined:
		sb.WriteString("undefined")
	case *ast.ETemplate:
		writeTemplate(sb, data, indent)
	case *ast.EArray:
		sb.WriteByte('[')
		for i := range data.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, &data.Items[i], indent)
		}
		sb.WriteByte(']')
	case *ast.EObject:
		writeObject(sb, data, indent)
	case *ast.EDot:
		writeOperand(sb, &data.Target, indent)
		sb.WriteByte('.')
		sb.WriteString(data.Name)
	case *ast.EIndex:
		writeOperand(sb, &data.Target, indent)
		sb.WriteByte('[')
		writeExpr(sb, &data.Index, indent)
		sb.WriteByte(']')
	case *ast.ECall:
		writeOperand(sb, &data.Target, indent)
		writeArgs(sb, data.Args, indent)
	case *ast.ENew:
		sb.WriteString("new ")
		writeOperand(sb, &data.Target, indent)
		writeArgs(sb, data.Args, indent)
	case *ast.EArrow:
		writeParams2(sb, data.Params)
		sb.WriteString(" => ")
		if data.BodyExpr != nil {
			// Parenthesize object-literal bodies so they are not read
			// as blocks.
			if _, isObj := data.BodyExpr.Data.(*ast.EObject); isObj {
				sb.WriteByte('(')
				writeExpr(sb, data.BodyExpr, indent)
				sb.WriteByte(')')
			} else {
				writeExpr(sb, data.BodyExpr, indent)
			}
		} else {
			writeBlock(sb, data.BodyBlock, indent)
		}
	case *ast.EFunction:
		sb.WriteString("function")
		if data.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(data.Name)
		}
		writeParams(sb, data.Fn.Params)
		sb.WriteByte(' ')
		writeBlock(sb, data.Fn.Body, indent)
	case *ast.EUnary:
		sb.WriteString(data.Op.String())
		writeOperand(sb, &data.Value, indent)
	case *ast.EBinary:
		if data.Op == ast.BinAssign {
			writeExpr(sb, &data.Left, indent)
			sb.WriteString(" = ")
			writeExpr(sb, &data.Right, indent)
			return
		}
		writeOperand(sb, &data.Left, indent)
		sb.WriteByte(' ')
		sb.WriteString(data.Op.String())
		sb.WriteByte(' ')
		writeOperand(sb, &data.Right, indent)
	case *ast.ECond:
		writeOperand(sb, &data.Test, indent)
		sb.WriteString(" ? ")
		writeExpr(sb, &data.Yes, indent)
		sb.WriteString(" : ")
		writeExpr(sb, &data.No, indent)
	case *ast.ESpread:
		sb.WriteString("...")
		writeExpr(sb, &data.Value, indent)
	case *ast.EJSXElement:
		writeJSXElement(sb, data, indent)
	case *ast.EJSXText:
		sb.WriteString(data.Value)
	case *ast.EJSXContainer:
		sb.WriteByte('{')
		writeExpr(sb, &data.Value, indent)
		sb.WriteByte('}')
	case *ast.EMissing:
	}
}

// writeOperand wraps compound operands in parentheses. This over-wraps
// slightly but never changes meaning.
func writeOperand(sb *strings.Builder, e *ast.Expr, indent int) {
	switch e.Data.(type) {
	case *ast.EBinary, *ast.ECond, *ast.EArrow:
		sb.WriteByte('(')
		writeExpr(sb, e, indent)
		sb.WriteByte(')')
	default:
		writeExpr(sb, e, indent)
	}
}

func writeParams2(sb *strings.Builder, params []ast.Param) {
	if len(params) == 1 {
		sb.WriteString(params[0].Name.Name)
		return
	}
	writeParams(sb, params)
}

func writeArgs(sb *strings.Builder, args []ast.Expr, indent int) {
	sb.WriteByte('(')
	for i := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, &args[i], indent)
	}
	sb.WriteByte(')')
}

func writeObject(sb *strings.Builder, obj *ast.EObject, indent int) {
	if len(obj.Properties) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{ ")
	for i := range obj.Properties {
		if i > 0 {
			sb.WriteString(", ")
		}
		p := &obj.Properties[i]
		switch {
		case p.Spread:
			sb.WriteString("...")
			writeExpr(sb, &p.Value, indent)
			continue
		case p.Computed != nil:
			sb.WriteByte('[')
			writeExpr(sb, p.Computed, indent)
			sb.WriteByte(']')
		case isIdentName(p.Key):
			sb.WriteString(p.Key)
		default:
			sb.WriteString(quote(p.Key))
		}
		if p.Shorthand {
			continue
		}
		sb.WriteString(": ")
		writeExpr(sb, &p.Value, indent)
	}
	sb.WriteString(" }")
}

func writeTemplate(sb *strings.Builder, tmpl *ast.ETemplate, indent int) {
	sb.WriteByte('`')
	for i := range tmpl.Parts {
		part := &tmpl.Parts[i]
		if part.Expr != nil {
			sb.WriteString("${")
			writeExpr(sb, part.Expr, indent)
			sb.WriteByte('}')
		} else {
			sb.WriteString(escapeTemplateText(part.Text))
		}
	}
	sb.WriteByte('`')
}

func writeJSXElement(sb *strings.Builder, el *ast.EJSXElement, indent int) {
	if el.Tag == nil {
		sb.WriteString("<>")
		for i := range el.Children {
			writeExpr(sb, &el.Children[i], indent)
		}
		sb.WriteString("</>")
		return
	}

	sb.WriteByte('<')
	writeExpr(sb, el.Tag, indent)
	for i := range el.Attrs {
		sb.WriteByte(' ')
		writeJSXAttr(sb, &el.Attrs[i], indent)
	}
	if el.SelfClosing {
		sb.WriteString(" />")
		return
	}
	sb.WriteByte('>')
	for i := range el.Children {
		writeExpr(sb, &el.Children[i], indent)
	}
	sb.WriteString("</")
	writeExpr(sb, el.Tag, indent)
	sb.WriteByte('>')
}

func writeJSXAttr(sb *strings.Builder, attr *ast.JSXAttr, indent int) {
	if attr.Spread {
		sb.WriteString("{...")
		writeExpr(sb, attr.Value, indent)
		sb.WriteByte('}')
		return
	}
	sb.WriteString(attr.Name)
	if attr.Value == nil {
		return
	}
	sb.WriteByte('=')
	if str, ok := attr.Value.Data.(*ast.EString); ok {
		if str.Raw != "" {
			sb.WriteString(str.Raw)
		} else {
			sb.WriteString(quote(str.Value))
		}
		return
	}
	sb.WriteByte('{')
	writeExpr(sb, attr.Value, indent)
	sb.WriteByte('}')
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\'':
			sb.WriteString("\\'")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\t':
			sb.WriteString("\\t")
		default:
			sb.WriteByte(ch)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

func escapeTemplateText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "${", "\\${")
}

func isIdentName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		alpha := ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		if !alpha && (i == 0 || ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}
