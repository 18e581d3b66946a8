package driver

import (
	"stylic/internal/ast"
	"stylic/internal/diag"
	"stylic/internal/lexer"
	"stylic/internal/parser"
	"stylic/internal/source"
	"stylic/internal/token"
)

// TokenizeFile scans one file into its token stream.
func TokenizeFile(file *source.File, maxDiagnostics int) ([]token.Token, *diag.Bag) {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, diag.BagReporter{Bag: bag})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, bag
}

// ParseOnly parses one file without running the extraction.
func ParseOnly(file *source.File, maxDiagnostics int) (*ast.File, *diag.Bag) {
	bag := diag.NewBag(maxDiagnostics)
	parsed := parser.ParseFile(file, diag.BagReporter{Bag: bag})
	return parsed, bag
}
