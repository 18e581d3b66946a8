package transform

import (
	"sort"

	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/evaluator"
	"stylic/internal/printer"
	"stylic/internal/source"
	"stylic/internal/styles"
	"stylic/internal/symbols"
)

// Options selects the styling primitive and attribute names the
// extractor looks for.
type Options struct {
	// PrimitiveSource is the import specifier that provides the styling
	// primitive.
	PrimitiveSource string
	// PrimitiveName is the exported name of the primitive; "default"
	// matches a default import.
	PrimitiveName string
	CSSAttr       string
	ClassAttr     string
}

func DefaultOptions() Options {
	return Options{
		PrimitiveSource: "@stylic/core",
		PrimitiveName:   "styled",
		CSSAttr:         "css",
		ClassAttr:       "className",
	}
}

// Result is the outcome of one file transform.
type Result struct {
	Output  string
	Changed bool
	// Rewritten counts markup usages replaced with plain elements.
	Rewritten int
	// Dropped counts removed component declarations.
	Dropped int
}

type fileTransform struct {
	file     *ast.File
	src      []byte
	table    *symbols.Table
	env      *evaluator.Env
	engine   *styles.Engine
	reporter diag.Reporter
	opts     Options

	// primitive holds every local binding of the styling primitive.
	primitive map[symbols.SymbolID]bool

	reg   *Registry
	sites []*usageSite
	edits []printer.Edit

	rewritten int
	dropped   int
}

// Apply runs the extraction over one parsed file and returns the
// rewritten source. The input tree is mutated in place; on files with
// nothing to extract the output equals the input byte for byte.
func Apply(file *ast.File, src []byte, table *symbols.Table, engine *styles.Engine, reporter diag.Reporter, opts Options) Result {
	if file.AllDynamic {
		return Result{Output: string(src)}
	}
	t := &fileTransform{
		file:      file,
		src:       src,
		table:     table,
		env:       evaluator.NewEnv(table),
		engine:    engine,
		reporter:  reporter,
		opts:      opts,
		primitive: make(map[symbols.SymbolID]bool),
		reg:       newRegistry(),
	}
	t.findPrimitive()

	t.firstPass()
	t.runRewritePass()
	// Плоские ссылки, найденные в первом проходе, дают ровно один
	// дополнительный прогон. Не цикл до неподвижной точки.
	if len(t.reg.escapeOrder) > 0 {
		t.runRewritePass()
	}

	if len(t.edits) == 0 {
		return Result{Output: string(src)}
	}
	return Result{
		Output:    printer.ApplyEdits(src, t.edits),
		Changed:   true,
		Rewritten: t.rewritten,
		Dropped:   t.dropped,
	}
}

// findPrimitive resolves which local bindings refer to the styling
// primitive. A default import matches PrimitiveName "default"; named
// imports match by exported name.
func (t *fileTransform) findPrimitive() {
	for i := range t.file.Stmts {
		imp, ok := t.file.Stmts[i].Data.(*ast.SImport)
		if !ok || imp.Source != t.opts.PrimitiveSource {
			continue
		}
		if imp.Default != nil {
			if id, ok := t.table.ResolveIdent(imp.Default); ok {
				t.primitive[id] = true
			}
		}
		for j := range imp.Named {
			if imp.Named[j].Name != t.opts.PrimitiveName {
				continue
			}
			if id, ok := t.table.ResolveIdent(imp.Named[j].Alias); ok {
				t.primitive[id] = true
			}
		}
	}
}

// firstPass registers declarations in statement order, then classifies
// every reference and collects markup usage sites. Registration runs
// first because extension calls may only name parents declared earlier.
func (t *fileTransform) firstPass() {
	for i := range t.file.Stmts {
		t.analyzeStmt(&t.file.Stmts[i])
	}
	t.collectReferences()
	// Inner sites first, so an outer replacement is printed after its
	// children have already been rewritten.
	sort.SliceStable(t.sites, func(i, j int) bool {
		return t.sites[i].expr.Span.Start > t.sites[j].expr.Span.Start
	})
}

// runRewritePass implements the second and the optional third pass:
// report escapes, rewrite safe usages, then drop fully inlined
// declarations.
func (t *fileTransform) runRewritePass() {
	t.reportEscapes()
	for _, site := range t.sites {
		if site.done || site.blocked {
			continue
		}
		t.rewriteSite(site)
	}
	t.dropDeclarations()
}

func (t *fileTransform) severityFor(declStatic bool) diag.Severity {
	if t.file.AllStatic || declStatic {
		return diag.SevError
	}
	return diag.SevInfo
}

// dropDeclarations removes declarations whose every use was inlined.
// Reverse registration order lets a parent go once its children are
// gone, since the child declaration held the only reference.
func (t *fileTransform) dropDeclarations() {
	for i := len(t.reg.order) - 1; i >= 0; i-- {
		comp := t.reg.components[t.reg.order[i]]
		if comp.dropped || comp.Exported || t.reg.escaped(comp.Symbol) {
			continue
		}
		if !t.allSitesRewritten(comp.Symbol) || !t.allChildrenDropped(comp) {
			continue
		}
		comp.dropped = true
		t.dropped++
		t.edits = append(t.edits, printer.Edit{
			Span: t.stmtSpanWithNewline(comp.Decl),
			Text: "",
		})
	}
}

func (t *fileTransform) allSitesRewritten(id symbols.SymbolID) bool {
	for _, site := range t.sites {
		if site.tagSym == id && !site.done {
			return false
		}
	}
	return true
}

func (t *fileTransform) allChildrenDropped(comp *Component) bool {
	for _, child := range comp.children {
		if !child.dropped {
			return false
		}
	}
	return true
}

// stmtSpanWithNewline widens a statement span over one trailing newline
// so that deleting the declaration does not leave a blank line behind.
func (t *fileTransform) stmtSpanWithNewline(s *ast.Stmt) (sp source.Span) {
	sp = s.Span
	if int(sp.End) < len(t.src) && t.src[sp.End] == '\n' {
		sp.End++
	}
	return sp
}
