package symbols

import (
	"stylic/internal/ast"
)

// Table is the per-file binding table. Identifier occurrences are keyed
// by node pointer, which is why rewrites must mutate identifier nodes in
// place instead of replacing them.
type Table struct {
	symbols []Symbol // index = SymbolID - 1
	refs    map[*ast.EIdent]SymbolID
	// declInit maps a binding to its declarator initializer, when the
	// binding comes from a const/let/var with an initializer. The
	// evaluator follows these when folding identifier references.
	declInit map[SymbolID]*ast.Expr
	// declKind records the local kind for SymbolLocal bindings.
	declKind map[SymbolID]ast.LocalKind
}

func newTable() *Table {
	return &Table{
		refs:     make(map[*ast.EIdent]SymbolID),
		declInit: make(map[SymbolID]*ast.Expr),
		declKind: make(map[SymbolID]ast.LocalKind),
	}
}

func (t *Table) newSymbol(s Symbol) SymbolID {
	id := SymbolID(len(t.symbols) + 1) // #nosec G115 -- per-file symbol counts are small
	s.ID = id
	t.symbols = append(t.symbols, s)
	return id
}

// Get returns the symbol for id.
func (t *Table) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) > len(t.symbols) {
		return nil
	}
	return &t.symbols[id-1]
}

// ResolveIdent returns the binding an identifier occurrence refers to.
func (t *Table) ResolveIdent(ident *ast.EIdent) (SymbolID, bool) {
	id, ok := t.refs[ident]
	return id, ok
}

// ResolveExpr resolves an expression when it is a plain identifier.
func (t *Table) ResolveExpr(e *ast.Expr) (SymbolID, bool) {
	if e == nil {
		return NoSymbol, false
	}
	if ident, ok := e.Data.(*ast.EIdent); ok {
		return t.ResolveIdent(ident)
	}
	return NoSymbol, false
}

// DeclInit returns the declarator initializer for a binding, if any.
func (t *Table) DeclInit(id SymbolID) (*ast.Expr, bool) {
	init, ok := t.declInit[id]
	return init, ok
}

// IsConst reports whether a binding comes from a const declaration.
func (t *Table) IsConst(id SymbolID) bool {
	kind, ok := t.declKind[id]
	return ok && kind == ast.LocalConst
}

// Len returns the number of declared bindings.
func (t *Table) Len() int {
	return len(t.symbols)
}
