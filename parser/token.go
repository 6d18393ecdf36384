package parser

import "github.com/abnfkit/railroad/ast"

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenIdentifier           // rule name: ALPHA *(ALPHA / DIGIT / "-")
	TokenString               // quoted literal, optionally prefixed %s/%i, quotes kept
	TokenNumVal               // %x.. or %d.. value, including '.' and '-' forms
	TokenRepeat               // repetition count: n*m, n*, *m
	TokenStar                 // bare '*'
	TokenInteger              // bare decimal integer
	TokenAssign               // '=' or ':='
	TokenSlash                // '/'
	TokenLParen               // '('
	TokenRParen               // ')'
	TokenLBracket             // '['
	TokenRBracket             // ']'
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "end of input",
	TokenIdentifier: "identifier",
	TokenString:     "string",
	TokenNumVal:     "numeric value",
	TokenRepeat:     "repetition count",
	TokenStar:       "'*'",
	TokenInteger:    "integer",
	TokenAssign:     "'='",
	TokenSlash:      "'/'",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit. Text is the verbatim source spelling;
// quoted strings and numeric values are never decoded.
type Token struct {
	Kind TokenKind
	Text string
	Pos  ast.SourcePos
}
