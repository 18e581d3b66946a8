package transform

import (
	"fmt"
	"strings"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/evaluator"
	"stylic/internal/symbols"
)

// usageSite is one markup usage collected in the first pass, together
// with everything the rewrite pass needs to decide its fate.
type usageSite struct {
	expr *ast.Expr
	el   *ast.EJSXElement

	// direct marks `<styled.div>` style usages; element then carries the
	// lowercased member name. Otherwise tagSym and comp identify a
	// registered component.
	direct  bool
	element string
	tagSym  symbols.SymbolID
	comp    *Component

	// enclosing is the nearest top-level named component owning this
	// markup; topLevelReturn marks the component's direct returned
	// expression.
	enclosing      symbols.SymbolID
	topLevelReturn bool

	// blocked sites sit inside a dynamic-directive subtree and are never
	// rewritten, but they still pin the declaration in place.
	blocked bool

	hasCSS   bool
	cssStyle *evaluator.ObjectValue
	// cssDiag holds the fold failure; severity is assigned at report
	// time because directive escalation depends on the declaration.
	cssDiag *diag.Diagnostic

	done     bool
	reported bool
}

// refWalker drives the first-pass reference scan. Every identifier that
// resolves to a registered component and is not a markup tag, a
// declarator target, or a composition parent counts as an escape.
type refWalker struct {
	t         *fileTransform
	enclosing symbols.SymbolID
	dynamic   bool
}

func (t *fileTransform) collectReferences() {
	w := &refWalker{t: t}
	for i := range t.file.Stmts {
		w.stmt(&t.file.Stmts[i], false)
	}
}

// stmt walks one statement. fnTop is true for statements sitting
// directly in the current named component's body, where a return
// statement's expression counts as the direct return.
func (w *refWalker) stmt(s *ast.Stmt, fnTop bool) {
	switch data := s.Data.(type) {
	case *ast.SLocal:
		for i := range data.Decls {
			decl := &data.Decls[i]
			if decl.Init == nil {
				continue
			}
			if w.enclosing == symbols.NoSymbol {
				switch decl.Init.Data.(type) {
				case *ast.EArrow, *ast.EFunction:
					// const X = () => ... at the top level is a named
					// component; its body gets direct-return tracking.
					if id, ok := w.t.table.ResolveIdent(decl.Name); ok {
						w.component(id, decl.Init)
						continue
					}
				}
			}
			w.expr(decl.Init, false)
		}
	case *ast.SFunction:
		if w.enclosing == symbols.NoSymbol {
			if id, ok := w.t.table.ResolveIdent(data.Name); ok {
				saved := w.enclosing
				w.enclosing = id
				w.block(data.Fn.Body, true)
				w.enclosing = saved
				return
			}
		}
		w.block(data.Fn.Body, false)
	case *ast.SReturn:
		if data.Value != nil {
			w.expr(data.Value, fnTop)
		}
	case *ast.SExpr:
		w.expr(&data.Value, false)
	case *ast.SIf:
		w.expr(&data.Test, false)
		w.stmt(&data.Yes, false)
		if data.No != nil {
			w.stmt(data.No, false)
		}
	case *ast.SBlock:
		for i := range data.Stmts {
			w.stmt(&data.Stmts[i], false)
		}
	case *ast.SExportDefault:
		w.expr(&data.Value, false)
	case *ast.SImport, *ast.SEmpty, nil:
	}
}

// component walks a named component's function body with direct-return
// tracking enabled.
func (w *refWalker) component(id symbols.SymbolID, fn *ast.Expr) {
	saved := w.enclosing
	w.enclosing = id
	switch data := fn.Data.(type) {
	case *ast.EArrow:
		if data.BodyExpr != nil {
			w.expr(data.BodyExpr, true)
		}
		w.block(data.BodyBlock, true)
	case *ast.EFunction:
		w.block(data.Fn.Body, true)
	}
	w.enclosing = saved
}

func (w *refWalker) block(b *ast.SBlock, fnTop bool) {
	if b == nil {
		return
	}
	for i := range b.Stmts {
		w.stmt(&b.Stmts[i], fnTop)
	}
}

// expr walks e. directReturn is true only when e itself is the direct
// returned expression of the enclosing named component; it never
// propagates into children.
func (w *refWalker) expr(e *ast.Expr, directReturn bool) {
	switch data := e.Data.(type) {
	case *ast.EIdent:
		w.classify(e, data)
	case *ast.ECall:
		if target, ok := data.Target.Data.(*ast.EIdent); ok {
			if id, ok := w.t.table.ResolveIdent(target); ok && w.t.primitive[id] {
				// Первый аргумент композиции не считается утечкой.
				for i := range data.Args {
					if i == 0 {
						if _, isIdent := data.Args[0].Data.(*ast.EIdent); isIdent {
							continue
						}
					}
					w.expr(&data.Args[i], false)
				}
				return
			}
		}
		w.expr(&data.Target, false)
		for i := range data.Args {
			w.expr(&data.Args[i], false)
		}
	case *ast.EJSXElement:
		w.jsx(e, data, directReturn)
	case *ast.EJSXContainer:
		w.expr(&data.Value, false)
	case *ast.EArrow:
		if data.BodyExpr != nil {
			w.expr(data.BodyExpr, false)
		}
		w.block(data.BodyBlock, false)
	case *ast.EFunction:
		w.block(data.Fn.Body, false)
	case *ast.ETemplate:
		for i := range data.Parts {
			if data.Parts[i].Expr != nil {
				w.expr(data.Parts[i].Expr, false)
			}
		}
	case *ast.EArray:
		for i := range data.Items {
			w.expr(&data.Items[i], false)
		}
	case *ast.EObject:
		for i := range data.Properties {
			p := &data.Properties[i]
			if p.Computed != nil {
				w.expr(p.Computed, false)
			}
			w.expr(&p.Value, false)
		}
	case *ast.EDot:
		w.expr(&data.Target, false)
	case *ast.EIndex:
		w.expr(&data.Target, false)
		w.expr(&data.Index, false)
	case *ast.ENew:
		w.expr(&data.Target, false)
		for i := range data.Args {
			w.expr(&data.Args[i], false)
		}
	case *ast.EUnary:
		w.expr(&data.Value, false)
	case *ast.EBinary:
		w.expr(&data.Left, false)
		w.expr(&data.Right, false)
	case *ast.ECond:
		w.expr(&data.Test, false)
		w.expr(&data.Yes, false)
		w.expr(&data.No, false)
	case *ast.ESpread:
		w.expr(&data.Value, false)
	case *ast.EString, *ast.ENumber, *ast.EBool, *ast.ENull,
		*ast.EUndefined, *ast.EJSXText, *ast.EMissing, nil:
	}
}

// classify records a plain-value reference to a registered component.
// Tag positions and composition parents never reach this point.
func (w *refWalker) classify(e *ast.Expr, ident *ast.EIdent) {
	id, ok := w.t.table.ResolveIdent(ident)
	if !ok {
		return
	}
	if w.t.reg.component(id) == nil {
		return
	}
	w.t.reg.addEscape(id, e.Span)
}

func (w *refWalker) jsx(e *ast.Expr, el *ast.EJSXElement, directReturn bool) {
	dynamic := w.dynamic || el.Dynamic

	var site *usageSite
	if el.Tag != nil {
		switch tag := el.Tag.Data.(type) {
		case *ast.EDot:
			if id, ok := w.t.table.ResolveExpr(&tag.Target); ok && w.t.primitive[id] {
				site = &usageSite{expr: e, el: el, direct: true, element: strings.ToLower(tag.Name)}
			} else {
				w.expr(&tag.Target, false)
			}
		case *ast.EIdent:
			if id, ok := w.t.table.ResolveIdent(tag); ok {
				if comp := w.t.reg.component(id); comp != nil {
					site = &usageSite{expr: e, el: el, tagSym: id, comp: comp}
				}
			}
		}
	}
	if site != nil {
		site.enclosing = w.enclosing
		site.topLevelReturn = directReturn
		site.blocked = dynamic
		w.collectCSS(site)
		w.t.sites = append(w.t.sites, site)
	}

	saved := w.dynamic
	w.dynamic = dynamic
	for i := range el.Attrs {
		if v := el.Attrs[i].Value; v != nil {
			w.expr(v, false)
		}
	}
	for i := range el.Children {
		w.expr(&el.Children[i], false)
	}
	w.dynamic = saved
}

// collectCSS pre-folds the css attribute so the rewrite pass and the
// declaration-drop decision see the same verdict.
func (w *refWalker) collectCSS(site *usageSite) {
	attr := findAttr(site.el, w.t.opts.CSSAttr)
	if attr == nil {
		return
	}
	site.hasCSS = true
	if attr.Value == nil {
		d := diag.New(diag.SevInfo, diag.ExtractDynamicCSSAttr, attr.NameSpan,
			"the css attribute needs a style descriptor value")
		site.cssDiag = &d
		return
	}
	if fn, found := ast.ContainsFunction(attr.Value); found {
		at := attr.Value.Span
		if fn != nil {
			at = fn.Span
		}
		d := diag.New(diag.SevInfo, diag.ExtractDynamicLeaf, at,
			"the inline style has a function-valued property and stays dynamic")
		site.cssDiag = &d
		return
	}
	value, rr := evaluator.Evaluate(attr.Value, w.t.env)
	if rr != nil {
		d := diag.New(diag.SevInfo, diag.ExtractDynamicCSSAttr, attr.Value.Span,
			"the inline style cannot be folded at compile time").WithInner(rr.Diagnostic())
		site.cssDiag = &d
		return
	}
	obj, ok := value.(*evaluator.ObjectValue)
	if !ok {
		d := diag.New(diag.SevInfo, diag.ExtractDynamicCSSAttr, attr.Value.Span,
			"the css attribute must hold an object-shaped style descriptor")
		site.cssDiag = &d
		return
	}
	if leaf := findFunctionLeaf(obj); leaf != nil {
		d := diag.New(diag.SevInfo, diag.ExtractDynamicLeaf, leaf.Span,
			"the inline style has a function-valued property and stays dynamic")
		site.cssDiag = &d
		return
	}
	site.cssStyle = obj
}

func findAttr(el *ast.EJSXElement, name string) *ast.JSXAttr {
	for i := range el.Attrs {
		if !el.Attrs[i].Spread && el.Attrs[i].Name == name {
			return &el.Attrs[i]
		}
	}
	return nil
}

// reportEscapes emits one diagnostic per distinct escape site, once.
// Later passes see hasBeenReported and stay silent.
func (t *fileTransform) reportEscapes() {
	for _, id := range t.reg.escapeOrder {
		rec := t.reg.escapes[id]
		if rec.hasBeenReported {
			continue
		}
		rec.hasBeenReported = true
		comp := t.reg.components[id]
		name := "component"
		static := false
		if comp != nil {
			name = comp.Name
			static = comp.Static
		}
		sev := t.severityFor(static)
		for _, sp := range rec.sites {
			diag.NewReportBuilder(t.reporter, sev, diag.ExtractEscapedReference, sp,
				fmt.Sprintf("%s is used as a plain value here; its markup usages stay dynamic", name)).Emit()
		}
	}
}
