// Package symbols resolves every identifier occurrence in a file to the
// binding that declares it. The transform depends on this to tell two
// variables with the same name apart and to find every reference site of
// a styled-component binding.
package symbols

import (
	"stylic/internal/source"
)

// SymbolID identifies one binding within a file's Table.
type SymbolID uint32

// NoSymbol is the zero SymbolID; valid IDs start at 1.
const NoSymbol SymbolID = 0

func (id SymbolID) IsValid() bool { return id != NoSymbol }

// SymbolKind classifies what introduced a binding.
type SymbolKind uint8

const (
	SymbolLocal SymbolKind = iota // const/let/var declarator
	SymbolFunc                    // function declaration
	SymbolParam                   // function or arrow parameter
	SymbolImport                  // import binding
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolLocal:
		return "local"
	case SymbolFunc:
		return "function"
	case SymbolParam:
		return "param"
	case SymbolImport:
		return "import"
	}
	return "invalid"
}

// Symbol is one declared binding.
type Symbol struct {
	ID       SymbolID
	Name     string
	Kind     SymbolKind
	DeclSpan source.Span
	// TopLevel marks file-scope bindings; only those can be styled
	// components.
	TopLevel bool
	// ImportSource is the module specifier for SymbolImport bindings.
	ImportSource string
	// ImportName is the exported name for named imports ("styled" in
	// `import { styled as s } from ...`), "default" for default imports,
	// "*" for namespace imports.
	ImportName string
}
