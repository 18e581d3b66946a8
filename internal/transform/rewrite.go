package transform

import (
	"fmt"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/evaluator"
	"stylic/internal/printer"
	"stylic/internal/symbols"
)

// rewriteSite replaces one markup usage with a plain element carrying
// the injected class. Any skip leaves the node exactly as authored.
func (t *fileTransform) rewriteSite(site *usageSite) {
	declStatic := site.comp != nil && site.comp.Static

	if !site.direct && t.reg.escaped(site.comp.Symbol) {
		// Diagnostics for the escape sites already went out.
		return
	}
	if site.topLevelReturn && site.enclosing != symbols.NoSymbol && t.reg.extended[site.enclosing] {
		if !site.reported {
			site.reported = true
			sev := t.severityFor(declStatic)
			diag.NewReportBuilder(t.reporter, sev, diag.ExtractComposedTopLevel, site.expr.Span,
				"this markup is the direct return of a composed component and must stay a component reference").Emit()
		}
		return
	}
	if site.cssDiag != nil {
		if !site.reported {
			site.reported = true
			d := *site.cssDiag
			d.Severity = t.severityFor(declStatic)
			t.reporter.Report(d)
		}
		return
	}

	classAttr := findAttr(site.el, t.opts.ClassAttr)
	var existingClass string
	if classAttr != nil {
		str, ok := classAttrLiteral(classAttr)
		if !ok {
			if !site.reported {
				site.reported = true
				sev := t.severityFor(declStatic)
				diag.NewReportBuilder(t.reporter, sev, diag.ExtractClassNameConflict, classAttr.NameSpan,
					fmt.Sprintf("%s already has a dynamic %s; the usage stays as written", tagLabel(site), t.opts.ClassAttr)).Emit()
			}
			return
		}
		existingClass = str
	}

	var stack []*evaluator.ObjectValue
	if site.comp != nil {
		stack = append(stack, site.comp.Styles...)
	}
	if site.cssStyle != nil {
		stack = append(stack, site.cssStyle)
	}
	className, injectErr := t.engine.Inject(stack)
	if injectErr != nil {
		if !site.reported {
			site.reported = true
			sev := t.severityFor(declStatic)
			diag.NewReportBuilder(t.reporter, sev, diag.ExtractDynamicStyle, injectErr.Origin,
				injectErr.Reason).Emit()
		}
		return
	}

	element := site.element
	if site.comp != nil {
		element = site.comp.Element
	}
	t.replaceElement(site, element, existingClass, className)
	site.done = true
	t.rewritten++
}

// replaceElement mutates the usage node into a plain element and splices
// its new text over the original span. Children were already rewritten
// where possible, so printing the node here picks them up.
func (t *fileTransform) replaceElement(site *usageSite, element, existingClass, className string) {
	el := site.el
	original := site.expr.Span

	attrs := make([]ast.JSXAttr, 0, len(el.Attrs)+1)
	classSet := false
	for i := range el.Attrs {
		attr := el.Attrs[i]
		if !attr.Spread && attr.Name == t.opts.CSSAttr {
			continue
		}
		if !attr.Spread && attr.Name == t.opts.ClassAttr {
			attr.Value = classValue(joinClasses(existingClass, className), attr.Value)
			classSet = true
			if attr.Value == nil {
				continue
			}
		}
		attrs = append(attrs, attr)
	}
	if !classSet && className != "" {
		attrs = append(attrs, ast.JSXAttr{
			Name:  t.opts.ClassAttr,
			Value: classValue(className, nil),
		})
	}

	el.Tag = &ast.Expr{
		Span: el.Tag.Span,
		Data: &ast.EIdent{Name: element},
	}
	el.Attrs = attrs
	el.OriginalSpan = original

	t.edits = append(t.edits, printer.Edit{
		Span: original,
		Text: printer.PrintExpr(site.expr),
	})
}

// classAttrLiteral extracts a static class string. Only a plain string
// literal qualifies for merging.
func classAttrLiteral(attr *ast.JSXAttr) (string, bool) {
	if attr.Value == nil {
		return "", false
	}
	switch data := attr.Value.Data.(type) {
	case *ast.EString:
		return data.Value, true
	}
	return "", false
}

func classValue(class string, prev *ast.Expr) *ast.Expr {
	if class == "" {
		return prev
	}
	e := &ast.Expr{Data: &ast.EString{Value: class}}
	if prev != nil {
		e.Span = prev.Span
	}
	return e
}

func joinClasses(existing, generated string) string {
	switch {
	case existing == "":
		return generated
	case generated == "":
		return existing
	default:
		return existing + " " + generated
	}
}

func tagLabel(site *usageSite) string {
	if site.comp != nil {
		return site.comp.Name
	}
	return site.el.TagName()
}
