// Package ast models the JS/JSX subset the extractor understands.
//
// Expressions and statements are tagged unions: a small wrapper struct
// carrying a span plus a Data field holding one of the E/S variant types.
// Node identity is pointer identity; the symbols package keys its binding
// table on *EIdent pointers, so visitors must never copy identifier nodes
// when rewriting.
package ast
