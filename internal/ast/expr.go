package ast

import (
	"stylic/internal/source"
)

// Expr is an expression node: span plus variant data.
type Expr struct {
	Span source.Span
	Data E
}

// E is implemented by every expression variant. The methods are never
// called; they only encode the closed set in the type system.
type E interface{ isExpr() }

func (*EIdent) isExpr()        {}
func (*EString) isExpr()       {}
func (*ENumber) isExpr()       {}
func (*EBool) isExpr()         {}
func (*ENull) isExpr()         {}
func (*EUndefined) isExpr()    {}
func (*ETemplate) isExpr()     {}
func (*EArray) isExpr()        {}
func (*EObject) isExpr()       {}
func (*EDot) isExpr()          {}
func (*EIndex) isExpr()        {}
func (*ECall) isExpr()         {}
func (*ENew) isExpr()          {}
func (*EArrow) isExpr()        {}
func (*EFunction) isExpr()     {}
func (*EUnary) isExpr()        {}
func (*EBinary) isExpr()       {}
func (*ECond) isExpr()         {}
func (*ESpread) isExpr()       {}
func (*EJSXElement) isExpr()   {}
func (*EJSXText) isExpr()      {}
func (*EJSXContainer) isExpr() {}
func (*EMissing) isExpr()      {}

type EIdent struct {
	Name string
}

type EString struct {
	Value string
	// Raw keeps the original quoting for reprinting.
	Raw string
}

type ENumber struct {
	Value float64
	Raw   string
}

type EBool struct{ Value bool }

type ENull struct{}

type EUndefined struct{}

// ETemplate is a template literal. Parts alternate between raw text chunks
// and substitution expressions in source order.
type ETemplate struct {
	Parts []TemplatePart
}

type TemplatePart struct {
	// Text is valid when Expr is nil.
	Text string
	Expr *Expr
	Span source.Span
}

type EArray struct {
	Items []Expr
}

type EObject struct {
	Properties []Property
}

// Property is one member of an object literal.
type Property struct {
	// Key is the property name for identifier and string-literal keys.
	Key     string
	KeySpan source.Span
	// Computed holds the key expression for obj[k]-style keys; such
	// properties are never statically foldable here.
	Computed  *Expr
	Value     Expr
	Shorthand bool
	Spread    bool
}

type EDot struct {
	Target   Expr
	Name     string
	NameSpan source.Span
}

type EIndex struct {
	Target Expr
	Index  Expr
}

type ECall struct {
	Target Expr
	Args   []Expr
}

type ENew struct {
	Target Expr
	Args   []Expr
}

// EArrow is an arrow function. Exactly one of BodyExpr and BodyBlock is set.
type EArrow struct {
	Params    []Param
	BodyExpr  *Expr
	BodyBlock *SBlock
}

type EFunction struct {
	Name string // optional
	Fn   Fn
}

type Fn struct {
	Params []Param
	Body   *SBlock
}

type Param struct {
	Name *EIdent
	Span source.Span
	// Default initializer, rest markers etc. are out of scope; a
	// parameter is always a plain identifier in the subset.
}

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryPos
	UnaryNot
	UnaryTypeof
)

var unaryNames = [...]string{UnaryNeg: "-", UnaryPos: "+", UnaryNot: "!", UnaryTypeof: "typeof "}

func (op UnaryOp) String() string { return unaryNames[op] }

type EUnary struct {
	Op    UnaryOp
	Value Expr
}

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinLt
	BinGt
	BinLtEq
	BinGtEq
	BinEq
	BinStrictEq
	BinNotEq
	BinStrictNotEq
	BinAnd
	BinOr
	BinNullish
	BinAssign
)

var binaryNames = [...]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinMod: "%",
	BinLt: "<", BinGt: ">", BinLtEq: "<=", BinGtEq: ">=",
	BinEq: "==", BinStrictEq: "===", BinNotEq: "!=", BinStrictNotEq: "!==",
	BinAnd: "&&", BinOr: "||", BinNullish: "??", BinAssign: "=",
}

func (op BinaryOp) String() string { return binaryNames[op] }

type EBinary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type ECond struct {
	Test Expr
	Yes  Expr
	No   Expr
}

type ESpread struct {
	Value Expr
}

// EJSXElement is a JSX element or fragment (nil Tag).
type EJSXElement struct {
	// Tag is an EIdent ("div", "Box") or EDot ("styled.Div"); nil for
	// fragments.
	Tag      *Expr
	Attrs    []JSXAttr
	Children []Expr // EJSXText, EJSXElement, EJSXContainer
	SelfClosing bool
	// Dynamic is set when a node-level @stylic dynamic directive exempts
	// this subtree from rewriting.
	Dynamic bool
	// OriginalSpan survives rewriting for source-map provenance: a
	// replacement element keeps the span of the node it replaced.
	OriginalSpan source.Span
}

// TagName returns the printable tag ("div", "styled.Div"), or "" for
// fragments and non-simple tags.
func (el *EJSXElement) TagName() string {
	if el.Tag == nil {
		return ""
	}
	switch tag := el.Tag.Data.(type) {
	case *EIdent:
		return tag.Name
	case *EDot:
		if base, ok := tag.Target.Data.(*EIdent); ok {
			return base.Name + "." + tag.Name
		}
	}
	return ""
}

type JSXAttr struct {
	Name     string
	NameSpan source.Span
	// Value is nil for bare attributes (<input disabled />). String
	// values are EString; {expr} values are the inner expression.
	Value *Expr
	// Spread marks {...props}; Value then holds the spread operand.
	Spread bool
}

type EJSXText struct {
	Value string
}

// EJSXContainer is a {expr} child inside a JSX element.
type EJSXContainer struct {
	Value Expr
}

// EMissing fills holes left by parse errors.
type EMissing struct{}
