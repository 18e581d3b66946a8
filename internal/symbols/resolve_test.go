package symbols

import (
	"testing"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/parser"
	"stylic/internal/source"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte(src))
	bag := diag.NewBag(16)
	file := parser.ParseFile(fs.Get(id), diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	return file
}

func findIdent(file *ast.File, name string, skip int) *ast.EIdent {
	var found *ast.EIdent
	ast.WalkFile(file, ast.Visitor{Expr: func(e *ast.Expr) bool {
		if ident, ok := e.Data.(*ast.EIdent); ok && ident.Name == name {
			if skip == 0 && found == nil {
				found = ident
			} else if found == nil {
				skip--
			}
		}
		return true
	}})
	return found
}

func TestResolveTopLevelConst(t *testing.T) {
	file := parse(t, `
const Box = 1;
function App() {
  return Box;
}
`)
	table := Resolve(file)

	local := file.Stmts[0].Data.(*ast.SLocal)
	declID, ok := table.ResolveIdent(local.Decls[0].Name)
	if !ok {
		t.Fatal("declaration not registered")
	}

	use := findIdent(file, "Box", 0)
	useID, ok := table.ResolveIdent(use)
	if !ok {
		t.Fatal("use not resolved")
	}
	if useID != declID {
		t.Fatalf("use bound to %d, decl is %d", useID, declID)
	}
	if sym := table.Get(declID); !sym.TopLevel || sym.Kind != SymbolLocal {
		t.Fatalf("symbol = %+v", sym)
	}
}

func TestResolveShadowing(t *testing.T) {
	file := parse(t, `
const x = 1;
function f(x) {
  return x;
}
`)
	table := Resolve(file)

	outer := file.Stmts[0].Data.(*ast.SLocal)
	outerID, _ := table.ResolveIdent(outer.Decls[0].Name)

	use := findIdent(file, "x", 0) // declarator names are not expression nodes
	useID, ok := table.ResolveIdent(use)
	if !ok {
		t.Fatal("use not resolved")
	}
	if useID == outerID {
		t.Fatal("parameter must shadow the outer binding")
	}
	if sym := table.Get(useID); sym.Kind != SymbolParam {
		t.Fatalf("kind = %v, want param", sym.Kind)
	}
}

func TestResolveImports(t *testing.T) {
	file := parse(t, `
import { styled as s, keyframes } from '@stylic/core';
const Box = s.div({});
`)
	table := Resolve(file)

	use := findIdent(file, "s", 0)
	id, ok := table.ResolveIdent(use)
	if !ok {
		t.Fatal("import use not resolved")
	}
	sym := table.Get(id)
	if sym.Kind != SymbolImport || sym.ImportSource != "@stylic/core" || sym.ImportName != "styled" {
		t.Fatalf("symbol = %+v", sym)
	}
}

func TestIntrinsicTagsNotResolved(t *testing.T) {
	file := parse(t, `
const div = 1;
function App() {
  return <div>x</div>;
}
`)
	table := Resolve(file)

	var tagIdent *ast.EIdent
	ast.WalkFile(file, ast.Visitor{Expr: func(e *ast.Expr) bool {
		if el, ok := e.Data.(*ast.EJSXElement); ok && el.Tag != nil {
			tagIdent = el.Tag.Data.(*ast.EIdent)
		}
		return true
	}})
	if tagIdent == nil {
		t.Fatal("no JSX tag found")
	}
	if _, ok := table.ResolveIdent(tagIdent); ok {
		t.Fatal("lowercase JSX tag must not bind to a local")
	}
}

func TestComponentTagResolved(t *testing.T) {
	file := parse(t, `
const Box = 1;
function App() {
  return <Box />;
}
`)
	table := Resolve(file)

	local := file.Stmts[0].Data.(*ast.SLocal)
	declID, _ := table.ResolveIdent(local.Decls[0].Name)

	var tagIdent *ast.EIdent
	ast.WalkFile(file, ast.Visitor{Expr: func(e *ast.Expr) bool {
		if el, ok := e.Data.(*ast.EJSXElement); ok && el.Tag != nil {
			tagIdent = el.Tag.Data.(*ast.EIdent)
		}
		return true
	}})
	id, ok := table.ResolveIdent(tagIdent)
	if !ok || id != declID {
		t.Fatalf("tag bound to %d (ok=%v), want %d", id, ok, declID)
	}
}

func TestDeclInit(t *testing.T) {
	file := parse(t, `const size = 12;`)
	table := Resolve(file)
	local := file.Stmts[0].Data.(*ast.SLocal)
	id, _ := table.ResolveIdent(local.Decls[0].Name)
	init, ok := table.DeclInit(id)
	if !ok {
		t.Fatal("no init recorded")
	}
	if _, isNum := init.Data.(*ast.ENumber); !isNum {
		t.Fatalf("init = %T", init.Data)
	}
	if !table.IsConst(id) {
		t.Fatal("IsConst = false")
	}
}
