package transform

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/evaluator"
	"stylic/internal/source"
	"stylic/internal/symbols"
)

// analyzeStmt registers styled-component declarations. Only single
// declarator const statements qualify; anything else is left alone.
func (t *fileTransform) analyzeStmt(stmt *ast.Stmt) {
	local, ok := stmt.Data.(*ast.SLocal)
	if !ok || local.Kind != ast.LocalConst || len(local.Decls) != 1 {
		return
	}
	decl := &local.Decls[0]
	if decl.Init == nil {
		return
	}
	sym, ok := t.table.ResolveIdent(decl.Name)
	if !ok {
		return
	}

	call, ok := decl.Init.Data.(*ast.ECall)
	if !ok {
		t.analyzeFactory(stmt, local, decl, sym)
		return
	}

	switch target := call.Target.Data.(type) {
	case *ast.EDot:
		if id, ok := t.table.ResolveExpr(&target.Target); ok && t.primitive[id] {
			t.analyzeDirect(stmt, local, decl, sym, call, target)
			return
		}
	case *ast.EIdent:
		if id, ok := t.table.ResolveIdent(target); ok && t.primitive[id] {
			t.analyzeExtension(stmt, local, decl, sym, call)
			return
		}
	}
	t.analyzeFactory(stmt, local, decl, sym)
}

// analyzeDirect handles `styled.Tag({...})`. The element name is the
// lowercased member name; the single argument must fold to an object.
func (t *fileTransform) analyzeDirect(stmt *ast.Stmt, local *ast.SLocal, decl *ast.Declarator, sym symbols.SymbolID, call *ast.ECall, target *ast.EDot) {
	if len(call.Args) != 1 {
		t.rejectDeclaration(local, stmt.Span, diag.ExtractDynamicStyle,
			fmt.Sprintf("styled.%s expects a single style descriptor argument", target.Name), nil)
		return
	}
	style, ok := t.foldDescriptor(&call.Args[0], local, stmt.Span, decl.Name.Name)
	if !ok {
		return
	}
	t.reg.register(&Component{
		Name:     decl.Name.Name,
		Element:  strings.ToLower(target.Name),
		Styles:   []*evaluator.ObjectValue{style},
		Symbol:   sym,
		Decl:     stmt,
		Exported: local.Exported,
		Static:   local.Static,
	})
}

// analyzeExtension handles `styled(Parent, {...})`. The parent must be
// registered already; declaration order within the file matters.
func (t *fileTransform) analyzeExtension(stmt *ast.Stmt, local *ast.SLocal, decl *ast.Declarator, sym symbols.SymbolID, call *ast.ECall) {
	if len(call.Args) != 2 {
		t.rejectDeclaration(local, stmt.Span, diag.ExtractDynamicStyle,
			"a composition call expects a parent component and a style descriptor", nil)
		return
	}
	parentIdent, ok := call.Args[0].Data.(*ast.EIdent)
	if !ok {
		t.rejectDeclaration(local, call.Args[0].Span, diag.ExtractUnknownParent,
			"the parent of a composition call must be a component name", nil)
		return
	}
	parentSym, ok := t.table.ResolveIdent(parentIdent)
	if ok {
		t.reg.markExtended(parentSym)
	}
	parent := t.reg.component(parentSym)
	if parent == nil {
		t.rejectDeclaration(local, call.Args[0].Span, diag.ExtractUnknownParent,
			fmt.Sprintf("%s is not a statically known component; it must be declared above this composition", parentIdent.Name), nil)
		return
	}
	style, ok := t.foldDescriptor(&call.Args[1], local, stmt.Span, decl.Name.Name)
	if !ok {
		return
	}
	composed := make([]*evaluator.ObjectValue, 0, len(parent.Styles)+1)
	composed = append(composed, parent.Styles...)
	composed = append(composed, style)
	t.reg.register(&Component{
		Name:     decl.Name.Name,
		Element:  parent.Element,
		Styles:   composed,
		Parent:   parent,
		Symbol:   sym,
		Decl:     stmt,
		Exported: local.Exported,
		Static:   local.Static,
	})
}

// analyzeFactory handles the opaque factory form: a capitalized binding
// whose initializer folds to `{elementName, styles[]}`. Bindings that do
// not fold, or fold to something else entirely, are simply not styled
// components; the shape diagnostic fires only when the value clearly
// tried to be one.
func (t *fileTransform) analyzeFactory(stmt *ast.Stmt, local *ast.SLocal, decl *ast.Declarator, sym symbols.SymbolID) {
	if !isComponentName(decl.Name.Name) {
		return
	}
	switch decl.Init.Data.(type) {
	case *ast.EArrow, *ast.EFunction, *ast.EJSXElement:
		return
	}
	value, rr := evaluator.Evaluate(decl.Init, t.env)
	if rr != nil {
		return
	}
	obj, ok := value.(*evaluator.ObjectValue)
	if !ok {
		return
	}
	elemVal, hasElem := obj.Get("elementName")
	if !hasElem {
		return
	}
	elem, ok := elemVal.(evaluator.StringValue)
	if !ok {
		t.rejectDeclaration(local, stmt.Span, diag.ExtractBadFactoryShape,
			fmt.Sprintf("%s: elementName must be a string", decl.Name.Name), nil)
		return
	}
	stylesVal, _ := obj.Get("styles")
	arr, ok := stylesVal.(*evaluator.ArrayValue)
	if !ok {
		t.rejectDeclaration(local, stmt.Span, diag.ExtractBadFactoryShape,
			fmt.Sprintf("%s: styles must be an array of style descriptors", decl.Name.Name), nil)
		return
	}
	stack := make([]*evaluator.ObjectValue, 0, len(arr.Items))
	for _, item := range arr.Items {
		entry, ok := item.(*evaluator.ObjectValue)
		if !ok {
			t.rejectDeclaration(local, stmt.Span, diag.ExtractBadFactoryShape,
				fmt.Sprintf("%s: styles must be an array of style descriptors", decl.Name.Name), nil)
			return
		}
		if leaf := findFunctionLeaf(entry); leaf != nil {
			t.rejectDeclaration(local, leaf.Span, diag.ExtractDynamicLeaf,
				fmt.Sprintf("%s has a function-valued style property and stays dynamic", decl.Name.Name), nil)
			return
		}
		stack = append(stack, entry)
	}
	t.reg.register(&Component{
		Name:     decl.Name.Name,
		Element:  string(elem),
		Styles:   stack,
		Symbol:   sym,
		Decl:     stmt,
		Exported: local.Exported,
		Static:   local.Static,
	})
}

// foldDescriptor folds one style descriptor argument. A function leaf at
// any depth keeps the descriptor dynamic no matter what the evaluator
// says, with the diagnostic at the deepest function-bearing node.
func (t *fileTransform) foldDescriptor(arg *ast.Expr, local *ast.SLocal, declSpan source.Span, name string) (*evaluator.ObjectValue, bool) {
	if fn, found := ast.ContainsFunction(arg); found {
		at := declSpan
		if fn != nil {
			at = fn.Span
		}
		t.rejectDeclaration(local, at, diag.ExtractDynamicLeaf,
			fmt.Sprintf("%s has a function-valued style property and stays dynamic", name), nil)
		return nil, false
	}
	value, rr := evaluator.Evaluate(arg, t.env)
	if rr != nil {
		inner := rr.Diagnostic()
		t.rejectDeclaration(local, arg.Span, diag.ExtractDynamicStyle,
			fmt.Sprintf("the style descriptor of %s cannot be folded at compile time", name), &inner)
		return nil, false
	}
	obj, ok := value.(*evaluator.ObjectValue)
	if !ok {
		t.rejectDeclaration(local, arg.Span, diag.ExtractDynamicStyle,
			fmt.Sprintf("the style descriptor of %s must be an object literal", name), nil)
		return nil, false
	}
	// Evaluation can still smuggle a function in through a folded const
	// reference; those nodes are not part of this argument's subtree.
	if leaf := findFunctionLeaf(obj); leaf != nil {
		t.rejectDeclaration(local, leaf.Span, diag.ExtractDynamicLeaf,
			fmt.Sprintf("%s has a function-valued style property and stays dynamic", name), nil)
		return nil, false
	}
	return obj, true
}

func (t *fileTransform) rejectDeclaration(local *ast.SLocal, at source.Span, code diag.Code, msg string, inner *diag.Diagnostic) {
	b := diag.NewReportBuilder(t.reporter, t.severityFor(local.Static), code, at, msg)
	if inner != nil {
		b.WithInner(*inner)
	}
	b.Emit()
}

// findFunctionLeaf looks for a function value anywhere inside a folded
// descriptor and returns it, or nil.
func findFunctionLeaf(v evaluator.Value) *evaluator.FunctionValue {
	switch val := v.(type) {
	case *evaluator.FunctionValue:
		return val
	case *evaluator.ObjectValue:
		for _, key := range val.Keys {
			if leaf := findFunctionLeaf(val.Values[key]); leaf != nil {
				return leaf
			}
		}
	case *evaluator.ArrayValue:
		for _, item := range val.Items {
			if leaf := findFunctionLeaf(item); leaf != nil {
				return leaf
			}
		}
	}
	return nil
}

// isComponentName is the capitalized-identifier heuristic: first rune
// upper, second rune lower. SCREAMING_CASE constants stay out.
func isComponentName(name string) bool {
	first, size := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(first) {
		return false
	}
	second, _ := utf8.DecodeRuneInString(name[size:])
	return unicode.IsLower(second)
}
