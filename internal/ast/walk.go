package ast

// Visitor receives every node in pre-order. Returning false skips the
// node's children. Either callback may be nil.
type Visitor struct {
	Expr func(*Expr) bool
	Stmt func(*Stmt) bool
}

func (v Visitor) expr(e *Expr) bool {
	if v.Expr == nil {
		return true
	}
	return v.Expr(e)
}

func (v Visitor) stmt(s *Stmt) bool {
	if v.Stmt == nil {
		return true
	}
	return v.Stmt(s)
}

// WalkFile walks every statement of the file.
func WalkFile(f *File, v Visitor) {
	for i := range f.Stmts {
		WalkStmt(&f.Stmts[i], v)
	}
}

// WalkStmt walks s and its children in pre-order.
func WalkStmt(s *Stmt, v Visitor) {
	if !v.stmt(s) {
		return
	}
	switch data := s.Data.(type) {
	case *SLocal:
		for i := range data.Decls {
			if init := data.Decls[i].Init; init != nil {
				WalkExpr(init, v)
			}
		}
	case *SFunction:
		walkBlock(data.Fn.Body, v)
	case *SReturn:
		if data.Value != nil {
			WalkExpr(data.Value, v)
		}
	case *SExpr:
		WalkExpr(&data.Value, v)
	case *SIf:
		WalkExpr(&data.Test, v)
		WalkStmt(&data.Yes, v)
		if data.No != nil {
			WalkStmt(data.No, v)
		}
	case *SBlock:
		for i := range data.Stmts {
			WalkStmt(&data.Stmts[i], v)
		}
	case *SExportDefault:
		WalkExpr(&data.Value, v)
	case *SImport, *SEmpty, nil:
	}
}

func walkBlock(b *SBlock, v Visitor) {
	if b == nil {
		return
	}
	for i := range b.Stmts {
		WalkStmt(&b.Stmts[i], v)
	}
}

// WalkExpr walks e and its children in pre-order.
func WalkExpr(e *Expr, v Visitor) {
	if !v.expr(e) {
		return
	}
	switch data := e.Data.(type) {
	case *ETemplate:
		for i := range data.Parts {
			if data.Parts[i].Expr != nil {
				WalkExpr(data.Parts[i].Expr, v)
			}
		}
	case *EArray:
		for i := range data.Items {
			WalkExpr(&data.Items[i], v)
		}
	case *EObject:
		for i := range data.Properties {
			p := &data.Properties[i]
			if p.Computed != nil {
				WalkExpr(p.Computed, v)
			}
			WalkExpr(&p.Value, v)
		}
	case *EDot:
		WalkExpr(&data.Target, v)
	case *EIndex:
		WalkExpr(&data.Target, v)
		WalkExpr(&data.Index, v)
	case *ECall:
		WalkExpr(&data.Target, v)
		for i := range data.Args {
			WalkExpr(&data.Args[i], v)
		}
	case *ENew:
		WalkExpr(&data.Target, v)
		for i := range data.Args {
			WalkExpr(&data.Args[i], v)
		}
	case *EArrow:
		if data.BodyExpr != nil {
			WalkExpr(data.BodyExpr, v)
		}
		walkBlock(data.BodyBlock, v)
	case *EFunction:
		walkBlock(data.Fn.Body, v)
	case *EUnary:
		WalkExpr(&data.Value, v)
	case *EBinary:
		WalkExpr(&data.Left, v)
		WalkExpr(&data.Right, v)
	case *ECond:
		WalkExpr(&data.Test, v)
		WalkExpr(&data.Yes, v)
		WalkExpr(&data.No, v)
	case *ESpread:
		WalkExpr(&data.Value, v)
	case *EJSXElement:
		if data.Tag != nil {
			WalkExpr(data.Tag, v)
		}
		for i := range data.Attrs {
			if data.Attrs[i].Value != nil {
				WalkExpr(data.Attrs[i].Value, v)
			}
		}
		for i := range data.Children {
			WalkExpr(&data.Children[i], v)
		}
	case *EJSXContainer:
		WalkExpr(&data.Value, v)
	case *EIdent, *EString, *ENumber, *EBool, *ENull, *EUndefined,
		*EJSXText, *EMissing, nil:
	}
}

// ContainsFunction reports whether any function-valued node occurs inside
// e, returning the deepest such node found. JSX subtrees count too: an
// element attribute holding an arrow keeps the descriptor dynamic.
func ContainsFunction(e *Expr) (deepest *Expr, found bool) {
	WalkExpr(e, Visitor{Expr: func(cur *Expr) bool {
		switch cur.Data.(type) {
		case *EArrow, *EFunction:
			// Pre-order means later hits are at least as deep along the
			// current path; keep the last one.
			deepest = cur
			found = true
		}
		return true
	}})
	return deepest, found
}
