package evaluator

import (
	"testing"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/parser"
	"stylic/internal/source"
	"stylic/internal/symbols"
)

// evalLast parses src, resolves bindings, and folds the initializer of
// the last declaration.
func evalLast(t *testing.T, src string) (Value, *RequiresRuntime) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte(src))
	bag := diag.NewBag(16)
	file := parser.ParseFile(fs.Get(id), diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	table := symbols.Resolve(file)

	var last *ast.SLocal
	for i := range file.Stmts {
		if local, ok := file.Stmts[i].Data.(*ast.SLocal); ok {
			last = local
		}
	}
	if last == nil || last.Decls[0].Init == nil {
		t.Fatal("no declaration with initializer")
	}
	return Evaluate(last.Decls[0].Init, NewEnv(table))
}

func TestEvalLiterals(t *testing.T) {
	v, rr := evalLast(t, `const x = 'red';`)
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	if v != StringValue("red") {
		t.Fatalf("v = %#v", v)
	}
}

func TestEvalObjectOrder(t *testing.T) {
	v, rr := evalLast(t, `const x = { color: 'red', fontSize: 12, margin: 0 };`)
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	obj := v.(*ObjectValue)
	want := []string{"color", "fontSize", "margin"}
	if len(obj.Keys) != len(want) {
		t.Fatalf("keys = %v", obj.Keys)
	}
	for i := range want {
		if obj.Keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", obj.Keys, want)
		}
	}
}

func TestEvalConstReference(t *testing.T) {
	v, rr := evalLast(t, `
const size = 12;
const x = { fontSize: size + 2 };
`)
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	obj := v.(*ObjectValue)
	if got, _ := obj.Get("fontSize"); got != NumberValue(14) {
		t.Fatalf("fontSize = %#v", got)
	}
}

func TestEvalLetIsNotConstant(t *testing.T) {
	_, rr := evalLast(t, `
let size = 12;
const x = { fontSize: size };
`)
	if rr == nil {
		t.Fatal("let binding must not fold")
	}
}

func TestEvalSpreadMerge(t *testing.T) {
	v, rr := evalLast(t, `
const base = { color: 'red', margin: 1 };
const x = { ...base, margin: 2 };
`)
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	obj := v.(*ObjectValue)
	if got, _ := obj.Get("margin"); got != NumberValue(2) {
		t.Fatalf("margin = %#v", got)
	}
	if obj.Keys[0] != "color" {
		t.Fatalf("keys = %v", obj.Keys)
	}
}

func TestEvalFunctionBecomesLeaf(t *testing.T) {
	v, rr := evalLast(t, `const x = { color: () => 'red' };`)
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	obj := v.(*ObjectValue)
	leaf, _ := obj.Get("color")
	if _, ok := leaf.(*FunctionValue); !ok {
		t.Fatalf("leaf = %#v, want function value", leaf)
	}
}

func TestEvalCallRequiresRuntime(t *testing.T) {
	_, rr := evalLast(t, `const x = compute();`)
	if rr == nil {
		t.Fatal("call must require runtime")
	}
	if rr.Origin.Empty() {
		t.Fatal("verdict must carry an origin span")
	}
}

func TestEvalTemplate(t *testing.T) {
	v, rr := evalLast(t, "const u = 4;\nconst x = `${u * 2}px solid`;")
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	if v != StringValue("8px solid") {
		t.Fatalf("v = %#v", v)
	}
}

func TestEvalTernaryAndLogic(t *testing.T) {
	v, rr := evalLast(t, `const x = true ? 'a' + 'b' : 'c';`)
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	if v != StringValue("ab") {
		t.Fatalf("v = %#v", v)
	}

	v, rr = evalLast(t, `const x = null ?? 'fallback';`)
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	if v != StringValue("fallback") {
		t.Fatalf("v = %#v", v)
	}
}

func TestEvalInitializerCycle(t *testing.T) {
	_, rr := evalLast(t, `
const a = b;
const b = a;
const x = a;
`)
	if rr == nil {
		t.Fatal("cycle must require runtime")
	}
}

func TestEvalMemberOfConstObject(t *testing.T) {
	v, rr := evalLast(t, `
const theme = { colors: { primary: 'tomato' } };
const x = theme.colors.primary;
`)
	if rr != nil {
		t.Fatalf("requires runtime: %s", rr.Reason)
	}
	if v != StringValue("tomato") {
		t.Fatalf("v = %#v", v)
	}
}
