package transform

import (
	"stylic/internal/ast"
	"stylic/internal/evaluator"
	"stylic/internal/source"
	"stylic/internal/symbols"
)

// Component is a registered styled component. Одна запись на биндинг,
// snapshot делается один раз и дальше не мутирует.
type Component struct {
	Name    string
	Element string
	// Styles is the composed stack, parent entries first.
	Styles []*evaluator.ObjectValue
	Parent *Component
	Symbol symbols.SymbolID

	// Decl is the declaring statement, kept so the second pass can drop
	// fully inlined declarations.
	Decl     *ast.Stmt
	Exported bool
	// Static mirrors a declaration-level static directive.
	Static bool

	children []*Component
	dropped  bool
}

// escapeRecord tracks a component binding used as a plain value. Once
// reported, later passes stay silent for this binding.
type escapeRecord struct {
	component       *Component
	sites           []source.Span
	hasBeenReported bool
}

// Registry holds the per-file maps. Fresh per file, never shared.
type Registry struct {
	components map[symbols.SymbolID]*Component
	order      []symbols.SymbolID

	escapes     map[symbols.SymbolID]*escapeRecord
	escapeOrder []symbols.SymbolID

	// extended is the set of bindings passed as the first argument to a
	// composition call, whether or not that call itself registered.
	extended map[symbols.SymbolID]bool
}

func newRegistry() *Registry {
	return &Registry{
		components: make(map[symbols.SymbolID]*Component),
		escapes:    make(map[symbols.SymbolID]*escapeRecord),
		extended:   make(map[symbols.SymbolID]bool),
	}
}

func (r *Registry) register(c *Component) {
	if _, exists := r.components[c.Symbol]; exists {
		return
	}
	r.components[c.Symbol] = c
	r.order = append(r.order, c.Symbol)
	if c.Parent != nil {
		c.Parent.children = append(c.Parent.children, c)
	}
}

func (r *Registry) component(id symbols.SymbolID) *Component {
	return r.components[id]
}

func (r *Registry) markExtended(id symbols.SymbolID) {
	r.extended[id] = true
}

func (r *Registry) addEscape(id symbols.SymbolID, site source.Span) {
	rec := r.escapes[id]
	if rec == nil {
		rec = &escapeRecord{component: r.components[id]}
		r.escapes[id] = rec
		r.escapeOrder = append(r.escapeOrder, id)
	}
	for _, existing := range rec.sites {
		if existing == site {
			return
		}
	}
	rec.sites = append(rec.sites, site)
}

func (r *Registry) escaped(id symbols.SymbolID) bool {
	return r.escapes[id] != nil
}
