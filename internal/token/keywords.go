package token

var keywords = map[string]Kind{
	"const":     KwConst,
	"let":       KwLet,
	"var":       KwVar,
	"function":  KwFunction,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
	"undefined": KwUndefined,
	"import":    KwImport,
	"export":    KwExport,
	"default":   KwDefault,
	"from":      KwFrom,
	"as":        KwAs,
	"new":       KwNew,
	"typeof":    KwTypeof,
}

// LookupKeyword returns the keyword kind for ident, or Ident.
func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Ident
}
