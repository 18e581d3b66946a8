package parser

import (
	"testing"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte(src))
	bag := diag.NewBag(16)
	file := ParseFile(fs.Get(id), diag.BagReporter{Bag: bag})
	return file, bag
}

func noDiags(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestParseImportForms(t *testing.T) {
	file, bag := parseSrc(t, `import styled from "@stylic/core";
import { css, keyframes as kf } from "@stylic/core";
import * as React from "react";
import "./side-effect.css";
`)
	noDiags(t, bag)
	if len(file.Stmts) != 4 {
		t.Fatalf("statement count = %d, want 4", len(file.Stmts))
	}

	def := file.Stmts[0].Data.(*ast.SImport)
	if def.Default == nil || def.Default.Name != "styled" || def.Source != "@stylic/core" {
		t.Fatalf("default import parsed wrong: %+v", def)
	}

	named := file.Stmts[1].Data.(*ast.SImport)
	if len(named.Named) != 2 {
		t.Fatalf("named import count = %d, want 2", len(named.Named))
	}
	if named.Named[0].Name != "css" || named.Named[0].Alias.Name != "css" {
		t.Fatalf("unaliased name parsed wrong: %+v", named.Named[0])
	}
	if named.Named[1].Name != "keyframes" || named.Named[1].Alias.Name != "kf" {
		t.Fatalf("aliased name parsed wrong: %+v", named.Named[1])
	}

	ns := file.Stmts[2].Data.(*ast.SImport)
	if ns.Namespace == nil || ns.Namespace.Name != "React" {
		t.Fatalf("namespace import parsed wrong: %+v", ns)
	}

	bare := file.Stmts[3].Data.(*ast.SImport)
	if bare.Source != "./side-effect.css" || bare.Default != nil || len(bare.Named) != 0 {
		t.Fatalf("bare import parsed wrong: %+v", bare)
	}
}

func TestParseStyledDeclaration(t *testing.T) {
	file, bag := parseSrc(t, `const Box = styled.div({ color: 'red', padding: 8 });`)
	noDiags(t, bag)

	local := file.Stmts[0].Data.(*ast.SLocal)
	if local.Kind != ast.LocalConst || len(local.Decls) != 1 {
		t.Fatalf("local parsed wrong: %+v", local)
	}
	decl := local.Decls[0]
	if decl.Name.Name != "Box" || decl.Init == nil {
		t.Fatalf("declarator parsed wrong: %+v", decl)
	}

	call := decl.Init.Data.(*ast.ECall)
	dot := call.Target.Data.(*ast.EDot)
	if dot.Name != "div" {
		t.Fatalf("member = %q, want div", dot.Name)
	}
	if base := dot.Target.Data.(*ast.EIdent); base.Name != "styled" {
		t.Fatalf("base = %q, want styled", base.Name)
	}

	obj := call.Args[0].Data.(*ast.EObject)
	if len(obj.Properties) != 2 {
		t.Fatalf("property count = %d, want 2", len(obj.Properties))
	}
	if obj.Properties[0].Key != "color" {
		t.Fatalf("first key = %q, want color", obj.Properties[0].Key)
	}
	if num := obj.Properties[1].Value.Data.(*ast.ENumber); num.Value != 8 {
		t.Fatalf("padding value = %v, want 8", num.Value)
	}
}

func TestParseJSXTree(t *testing.T) {
	file, bag := parseSrc(t, `const App = () => (
  <div className="wrap">
    <Box id="a" count={n} disabled />
    hello {name}
  </div>
);`)
	noDiags(t, bag)

	local := file.Stmts[0].Data.(*ast.SLocal)
	arrow := local.Decls[0].Init.Data.(*ast.EArrow)
	if arrow.BodyExpr == nil {
		t.Fatal("arrow body should be an expression")
	}

	div := arrow.BodyExpr.Data.(*ast.EJSXElement)
	if div.TagName() != "div" || div.SelfClosing {
		t.Fatalf("outer element parsed wrong: %+v", div)
	}
	if len(div.Attrs) != 1 || div.Attrs[0].Name != "className" {
		t.Fatalf("outer attrs parsed wrong: %+v", div.Attrs)
	}
	if str := div.Attrs[0].Value.Data.(*ast.EString); str.Value != "wrap" {
		t.Fatalf("className = %q, want wrap", str.Value)
	}

	var box *ast.EJSXElement
	var sawText, sawContainer bool
	for _, child := range div.Children {
		switch data := child.Data.(type) {
		case *ast.EJSXElement:
			box = data
		case *ast.EJSXText:
			sawText = true
		case *ast.EJSXContainer:
			sawContainer = true
		}
	}
	if box == nil || box.TagName() != "Box" || !box.SelfClosing {
		t.Fatalf("inner element parsed wrong: %+v", box)
	}
	if len(box.Attrs) != 3 {
		t.Fatalf("inner attr count = %d, want 3", len(box.Attrs))
	}
	if box.Attrs[2].Name != "disabled" || box.Attrs[2].Value != nil {
		t.Fatalf("bare attribute parsed wrong: %+v", box.Attrs[2])
	}
	if !sawText || !sawContainer {
		t.Fatalf("children missing text or container: text=%v container=%v", sawText, sawContainer)
	}
}

func TestParseJSXFragmentAndSpread(t *testing.T) {
	file, bag := parseSrc(t, `const App = () => <><Box {...props} /></>;`)
	noDiags(t, bag)

	arrow := file.Stmts[0].Data.(*ast.SLocal).Decls[0].Init.Data.(*ast.EArrow)
	frag := arrow.BodyExpr.Data.(*ast.EJSXElement)
	if frag.Tag != nil {
		t.Fatalf("fragment should have nil tag, got %+v", frag.Tag)
	}
	box := frag.Children[0].Data.(*ast.EJSXElement)
	if len(box.Attrs) != 1 || !box.Attrs[0].Spread {
		t.Fatalf("spread attribute parsed wrong: %+v", box.Attrs)
	}
}

func TestParseDashedAttrName(t *testing.T) {
	file, bag := parseSrc(t, `const App = () => <div data-test-id="x" />;`)
	noDiags(t, bag)

	arrow := file.Stmts[0].Data.(*ast.SLocal).Decls[0].Init.Data.(*ast.EArrow)
	div := arrow.BodyExpr.Data.(*ast.EJSXElement)
	if div.Attrs[0].Name != "data-test-id" {
		t.Fatalf("attr name = %q, want data-test-id", div.Attrs[0].Name)
	}
}

func TestParseTemplateSubstitution(t *testing.T) {
	file, bag := parseSrc(t, "const s = `a ${1 + 2} b`;")
	noDiags(t, bag)

	tmpl := file.Stmts[0].Data.(*ast.SLocal).Decls[0].Init.Data.(*ast.ETemplate)
	if len(tmpl.Parts) != 3 {
		t.Fatalf("part count = %d, want 3", len(tmpl.Parts))
	}
	if tmpl.Parts[0].Text != "a " || tmpl.Parts[2].Text != " b" {
		t.Fatalf("text parts wrong: %+v", tmpl.Parts)
	}
	bin := tmpl.Parts[1].Expr.Data.(*ast.EBinary)
	if bin.Op != ast.BinAdd {
		t.Fatalf("substitution op = %v, want +", bin.Op)
	}
}

func TestParseFileDirectives(t *testing.T) {
	file, bag := parseSrc(t, `// @stylic all-static
const x = 1;`)
	noDiags(t, bag)
	if !file.AllStatic || file.AllDynamic {
		t.Fatalf("AllStatic=%v AllDynamic=%v, want true false", file.AllStatic, file.AllDynamic)
	}

	file, bag = parseSrc(t, `/* @stylic all-dynamic */
const x = 1;`)
	noDiags(t, bag)
	if !file.AllDynamic {
		t.Fatal("expected AllDynamic from block comment directive")
	}
}

func TestParseDeclarationStaticDirective(t *testing.T) {
	file, bag := parseSrc(t, `// @stylic static
const Box = styled.div({});
const Other = 1;`)
	noDiags(t, bag)

	if !file.Stmts[0].Data.(*ast.SLocal).Static {
		t.Fatal("directive should mark the first declaration static")
	}
	if file.Stmts[1].Data.(*ast.SLocal).Static {
		t.Fatal("directive must not leak to the next declaration")
	}
}

func TestParseStaticDirectiveOnExport(t *testing.T) {
	file, bag := parseSrc(t, `// @stylic static
export const Box = styled.div({});`)
	noDiags(t, bag)

	local := file.Stmts[0].Data.(*ast.SLocal)
	if !local.Exported || !local.Static {
		t.Fatalf("Exported=%v Static=%v, want true true", local.Exported, local.Static)
	}
}

func TestParseDynamicDirectiveOnElement(t *testing.T) {
	file, bag := parseSrc(t, `const App = () => (
  <div>
    {/* @stylic dynamic */}
    <Box />
    <Other />
  </div>
);`)
	noDiags(t, bag)

	arrow := file.Stmts[0].Data.(*ast.SLocal).Decls[0].Init.Data.(*ast.EArrow)
	div := arrow.BodyExpr.Data.(*ast.EJSXElement)

	var elements []*ast.EJSXElement
	for _, child := range div.Children {
		if el, ok := child.Data.(*ast.EJSXElement); ok {
			elements = append(elements, el)
		}
	}
	if len(elements) != 2 {
		t.Fatalf("element count = %d, want 2", len(elements))
	}
	if !elements[0].Dynamic {
		t.Fatal("directive should mark the next sibling dynamic")
	}
	if elements[1].Dynamic {
		t.Fatal("directive must not leak past one element")
	}
}

func TestParseReturnNewlineRestriction(t *testing.T) {
	file, bag := parseSrc(t, `function App() {
  return
  1;
}`)
	noDiags(t, bag)

	fn := file.Stmts[0].Data.(*ast.SFunction)
	ret := fn.Fn.Body.Stmts[0].Data.(*ast.SReturn)
	if ret.Value != nil {
		t.Fatalf("return before newline must have no value, got %+v", ret.Value)
	}
}

func TestParseMismatchedJSXTag(t *testing.T) {
	_, bag := parseSrc(t, `const App = () => <div>text</span>;`)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMismatchedJSXTag {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynMismatchedJSXTag, got %+v", bag.Items())
	}
}

func TestParseRecoversAndTerminates(t *testing.T) {
	file, bag := parseSrc(t, `const = ;
const ok = 1;`)
	if bag.Len() == 0 {
		t.Fatal("expected diagnostics for the malformed declaration")
	}
	var found bool
	for _, s := range file.Stmts {
		if local, ok := s.Data.(*ast.SLocal); ok {
			for _, d := range local.Decls {
				if d.Name.Name == "ok" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatal("parser should recover and parse the following declaration")
	}
}

func TestParseConditionalAndLogical(t *testing.T) {
	file, bag := parseSrc(t, `const x = a ? b : c ?? d;`)
	noDiags(t, bag)

	cond := file.Stmts[0].Data.(*ast.SLocal).Decls[0].Init.Data.(*ast.ECond)
	if _, ok := cond.No.Data.(*ast.EBinary); !ok {
		t.Fatalf("else arm should be a binary expression, got %T", cond.No.Data)
	}
}

func TestParseExportDefault(t *testing.T) {
	file, bag := parseSrc(t, `export default App;`)
	noDiags(t, bag)
	def := file.Stmts[0].Data.(*ast.SExportDefault)
	if id := def.Value.Data.(*ast.EIdent); id.Name != "App" {
		t.Fatalf("default export value = %q, want App", id.Name)
	}
}
