package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber          Code = 1004

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynUnclosedJSXTag    Code = 2005
	SynMismatchedJSXTag  Code = 2006
	SynExpectAttrValue   Code = 2007
	SynExpectSemicolon   Code = 2008

	// Extraction
	ExtractInfo              Code = 3000
	ExtractDynamicStyle      Code = 3001
	ExtractDynamicLeaf       Code = 3002
	ExtractUnknownParent     Code = 3003
	ExtractEscapedReference  Code = 3004
	ExtractComposedTopLevel  Code = 3005
	ExtractDynamicCSSAttr    Code = 3006
	ExtractClassNameConflict Code = 3007
	ExtractBadFactoryShape   Code = 3008

	// Evaluation
	EvalInfo            Code = 4000
	EvalRequiresRuntime Code = 4001

	// Input/output
	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002
)

// codePrefix groups codes by phase for display.
func (c Code) prefix() string {
	switch {
	case c >= 5000:
		return "IO"
	case c >= 4000:
		return "EVAL"
	case c >= 3000:
		return "EXT"
	case c >= 2000:
		return "SYN"
	case c >= 1000:
		return "LEX"
	}
	return "UNK"
}

func (c Code) String() string {
	return fmt.Sprintf("%s%04d", c.prefix(), uint16(c))
}
