package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// Keywords of the supported subset.
	KwConst     // const
	KwLet       // let
	KwVar       // var
	KwFunction  // function
	KwReturn    // return
	KwIf        // if
	KwElse      // else
	KwTrue      // true
	KwFalse     // false
	KwNull      // null
	KwUndefined // undefined
	KwImport    // import
	KwExport    // export
	KwDefault   // default
	KwFrom      // from
	KwAs        // as
	KwNew       // new
	KwTypeof    // typeof

	// Literals.
	NumberLit   // 12, 1.5
	StringLit   // "..." or '...'
	TemplateLit // `...`

	// Punctuation and operators.
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Colon     // :
	Comma     // ,
	Dot       // .
	Ellipsis  // ...
	Arrow     // =>
	Assign    // =
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Bang      // !
	Question  // ?
	Lt        // <
	Gt        // >
	LtEq      // <=
	GtEq      // >=
	EqEq      // ==
	EqEqEq    // ===
	BangEq    // !=
	BangEqEq  // !==
	AndAnd    // &&
	OrOr      // ||
	QuestionQuestion // ??

	// JSXText is emitted only by the lexer's JSX mode.
	JSXText
)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	KwConst:          "const",
	KwLet:            "let",
	KwVar:            "var",
	KwFunction:       "function",
	KwReturn:         "return",
	KwIf:             "if",
	KwElse:           "else",
	KwTrue:           "true",
	KwFalse:          "false",
	KwNull:           "null",
	KwUndefined:      "undefined",
	KwImport:         "import",
	KwExport:         "export",
	KwDefault:        "default",
	KwFrom:           "from",
	KwAs:             "as",
	KwNew:            "new",
	KwTypeof:         "typeof",
	NumberLit:        "Number",
	StringLit:        "String",
	TemplateLit:      "Template",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Semicolon:        ";",
	Colon:            ":",
	Comma:            ",",
	Dot:              ".",
	Ellipsis:         "...",
	Arrow:            "=>",
	Assign:           "=",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	Bang:             "!",
	Question:         "?",
	Lt:               "<",
	Gt:               ">",
	LtEq:             "<=",
	GtEq:             ">=",
	EqEq:             "==",
	EqEqEq:           "===",
	BangEq:           "!=",
	BangEqEq:         "!==",
	AndAnd:           "&&",
	OrOr:             "||",
	QuestionQuestion: "??",
	JSXText:          "JSXText",
}
