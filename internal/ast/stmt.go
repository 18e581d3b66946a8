package ast

import (
	"stylic/internal/source"
)

// Stmt is a statement node: span plus variant data.
type Stmt struct {
	Span source.Span
	Data S
}

// S is implemented by every statement variant.
type S interface{ isStmt() }

func (*SLocal) isStmt()         {}
func (*SFunction) isStmt()      {}
func (*SReturn) isStmt()        {}
func (*SExpr) isStmt()          {}
func (*SIf) isStmt()            {}
func (*SBlock) isStmt()         {}
func (*SImport) isStmt()        {}
func (*SExportDefault) isStmt() {}
func (*SEmpty) isStmt()         {}

type LocalKind uint8

const (
	LocalConst LocalKind = iota
	LocalLet
	LocalVar
)

var localNames = [...]string{LocalConst: "const", LocalLet: "let", LocalVar: "var"}

func (k LocalKind) String() string { return localNames[k] }

// SLocal is a const/let/var statement.
type SLocal struct {
	Kind  LocalKind
	Decls []Declarator
	// Exported marks `export const ...`.
	Exported bool
	// Static is set by a declaration-level @stylic static directive and
	// escalates extraction fallbacks for this declaration to errors.
	Static bool
}

type Declarator struct {
	Name     *EIdent
	NameSpan source.Span
	Init     *Expr
}

type SFunction struct {
	Name     *EIdent
	NameSpan source.Span
	Fn       Fn
	Exported bool
}

type SReturn struct {
	Value *Expr
}

type SExpr struct {
	Value Expr
}

type SIf struct {
	Test Expr
	Yes  Stmt
	No   *Stmt
}

type SBlock struct {
	Stmts []Stmt
}

// SImport covers `import X from "m"`, `import { a, b as c } from "m"` and
// `import * as ns from "m"`.
type SImport struct {
	Default   *EIdent
	Namespace *EIdent
	Named     []ImportName
	Source    string
}

type ImportName struct {
	Name  string
	Alias *EIdent // binding introduced locally; equals Name when not aliased
	Span  source.Span
}

type SExportDefault struct {
	Value Expr
}

type SEmpty struct{}

// File is one parsed source file.
type File struct {
	Path  string
	Stmts []Stmt
	// AllDynamic and AllStatic reflect file-level @stylic directives.
	AllDynamic bool
	AllStatic  bool
}
