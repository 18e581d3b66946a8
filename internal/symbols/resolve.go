package symbols

import (
	"stylic/internal/ast"
)

// Resolve builds the binding table for one file. Unresolved identifiers
// (globals such as console) are simply absent from the table.
func Resolve(file *ast.File) *Table {
	r := &resolver{table: newTable()}
	r.push()
	r.hoistStmts(file.Stmts, true)
	for i := range file.Stmts {
		r.resolveStmt(&file.Stmts[i])
	}
	r.pop()
	return r.table
}

type resolver struct {
	table  *Table
	scopes []map[string]SymbolID
}

func (r *resolver) push() {
	r.scopes = append(r.scopes, make(map[string]SymbolID))
}

func (r *resolver) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name *ast.EIdent, sym Symbol) SymbolID {
	sym.Name = name.Name
	id := r.table.newSymbol(sym)
	r.scopes[len(r.scopes)-1][name.Name] = id
	r.table.refs[name] = id
	return id
}

func (r *resolver) lookup(name string) (SymbolID, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if id, ok := r.scopes[i][name]; ok {
			return id, true
		}
	}
	return NoSymbol, false
}

// hoistStmts declares every binding introduced by stmts into the current
// scope before bodies are resolved, so forward references inside function
// bodies bind correctly.
func (r *resolver) hoistStmts(stmts []ast.Stmt, topLevel bool) {
	for i := range stmts {
		switch data := stmts[i].Data.(type) {
		case *ast.SLocal:
			for j := range data.Decls {
				decl := &data.Decls[j]
				id := r.declare(decl.Name, Symbol{
					Kind:     SymbolLocal,
					DeclSpan: decl.NameSpan,
					TopLevel: topLevel,
				})
				if decl.Init != nil {
					r.table.declInit[id] = decl.Init
				}
				r.table.declKind[id] = data.Kind
			}
		case *ast.SFunction:
			r.declare(data.Name, Symbol{
				Kind:     SymbolFunc,
				DeclSpan: data.NameSpan,
				TopLevel: topLevel,
			})
		case *ast.SImport:
			if data.Default != nil {
				r.declare(data.Default, Symbol{
					Kind:         SymbolImport,
					TopLevel:     topLevel,
					ImportSource: data.Source,
					ImportName:   "default",
				})
			}
			if data.Namespace != nil {
				r.declare(data.Namespace, Symbol{
					Kind:         SymbolImport,
					TopLevel:     topLevel,
					ImportSource: data.Source,
					ImportName:   "*",
				})
			}
			for j := range data.Named {
				named := &data.Named[j]
				r.declare(named.Alias, Symbol{
					Kind:         SymbolImport,
					DeclSpan:     named.Span,
					TopLevel:     topLevel,
					ImportSource: data.Source,
					ImportName:   named.Name,
				})
			}
		}
	}
}

func (r *resolver) resolveStmt(s *ast.Stmt) {
	switch data := s.Data.(type) {
	case *ast.SLocal:
		for i := range data.Decls {
			if init := data.Decls[i].Init; init != nil {
				r.resolveExpr(init)
			}
		}
	case *ast.SFunction:
		r.resolveFn(data.Fn.Params, nil, data.Fn.Body)
	case *ast.SReturn:
		if data.Value != nil {
			r.resolveExpr(data.Value)
		}
	case *ast.SExpr:
		r.resolveExpr(&data.Value)
	case *ast.SIf:
		r.resolveExpr(&data.Test)
		r.resolveStmt(&data.Yes)
		if data.No != nil {
			r.resolveStmt(data.No)
		}
	case *ast.SBlock:
		r.push()
		r.hoistStmts(data.Stmts, false)
		for i := range data.Stmts {
			r.resolveStmt(&data.Stmts[i])
		}
		r.pop()
	case *ast.SExportDefault:
		r.resolveExpr(&data.Value)
	case *ast.SImport, *ast.SEmpty, nil:
	}
}

// resolveFn handles a function-like scope: params plus either an
// expression body or a block body.
func (r *resolver) resolveFn(params []ast.Param, bodyExpr *ast.Expr, body *ast.SBlock) {
	r.push()
	for i := range params {
		r.declare(params[i].Name, Symbol{Kind: SymbolParam, DeclSpan: params[i].Span})
	}
	if bodyExpr != nil {
		r.resolveExpr(bodyExpr)
	}
	if body != nil {
		r.hoistStmts(body.Stmts, false)
		for i := range body.Stmts {
			r.resolveStmt(&body.Stmts[i])
		}
	}
	r.pop()
}

func (r *resolver) resolveExpr(e *ast.Expr) {
	switch data := e.Data.(type) {
	case *ast.EIdent:
		if id, ok := r.lookup(data.Name); ok {
			r.table.refs[data] = id
		}
	case *ast.ETemplate:
		for i := range data.Parts {
			if data.Parts[i].Expr != nil {
				r.resolveExpr(data.Parts[i].Expr)
			}
		}
	case *ast.EArray:
		for i := range data.Items {
			r.resolveExpr(&data.Items[i])
		}
	case *ast.EObject:
		for i := range data.Properties {
			p := &data.Properties[i]
			if p.Computed != nil {
				r.resolveExpr(p.Computed)
			}
			r.resolveExpr(&p.Value)
		}
	case *ast.EDot:
		r.resolveExpr(&data.Target)
	case *ast.EIndex:
		r.resolveExpr(&data.Target)
		r.resolveExpr(&data.Index)
	case *ast.ECall:
		r.resolveExpr(&data.Target)
		for i := range data.Args {
			r.resolveExpr(&data.Args[i])
		}
	case *ast.ENew:
		r.resolveExpr(&data.Target)
		for i := range data.Args {
			r.resolveExpr(&data.Args[i])
		}
	case *ast.EArrow:
		r.resolveFn(data.Params, data.BodyExpr, data.BodyBlock)
	case *ast.EFunction:
		r.resolveFn(data.Fn.Params, nil, data.Fn.Body)
	case *ast.EUnary:
		r.resolveExpr(&data.Value)
	case *ast.EBinary:
		r.resolveExpr(&data.Left)
		r.resolveExpr(&data.Right)
	case *ast.ECond:
		r.resolveExpr(&data.Test)
		r.resolveExpr(&data.Yes)
		r.resolveExpr(&data.No)
	case *ast.ESpread:
		r.resolveExpr(&data.Value)
	case *ast.EJSXElement:
		r.resolveJSXTag(data.Tag)
		for i := range data.Attrs {
			if data.Attrs[i].Value != nil {
				r.resolveExpr(data.Attrs[i].Value)
			}
		}
		for i := range data.Children {
			r.resolveExpr(&data.Children[i])
		}
	case *ast.EJSXContainer:
		r.resolveExpr(&data.Value)
	}
}

// resolveJSXTag binds component tags. Lowercase identifier tags are
// intrinsic elements ("div"), never references.
func (r *resolver) resolveJSXTag(tag *ast.Expr) {
	if tag == nil {
		return
	}
	if ident, ok := tag.Data.(*ast.EIdent); ok {
		if isIntrinsicTag(ident.Name) {
			return
		}
		if id, ok := r.lookup(ident.Name); ok {
			r.table.refs[ident] = id
		}
		return
	}
	r.resolveExpr(tag)
}

func isIntrinsicTag(name string) bool {
	if name == "" {
		return true
	}
	ch := name[0]
	return ch >= 'a' && ch <= 'z'
}
