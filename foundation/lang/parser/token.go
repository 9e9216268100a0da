// File: token.go
// Title: fn Token Model
// Description: Defines the token types produced by the fn lexer, the keyword
//              table and the single-character operator table.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial token definitions (inside lexer.go)
// - 2026-10-18 v0.2.0: fn keywords, numeric payloads, EOF sentinel

package parser

import "fmt"

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Identifiers and literals
	TokenIdentifier // foo, x_1
	TokenInt        // 42
	TokenFloat      // 3.14

	// Keywords
	TokenFn     // fn
	TokenReturn // return
	TokenExtern // extern
	TokenTrue   // true
	TokenFalse  // false
	TokenNumber // number
	TokenPrint  // print
	TokenStart  // start

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenDot       // .
	TokenQuestion  // ?
	TokenAnd       // &&
	TokenOr        // ||
	TokenAssign    // =
	TokenLess      // <
	TokenGreater   // >
	TokenEqual     // ==
	TokenNotEqual  // !=
	TokenLessEq    // <=
	TokenGreaterEq // >=
	TokenColon     // :
	TokenTilde     // ~

	// Delimiters
	TokenComma      // ,
	TokenSemicolon  // ;
	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }

	// TokenOperator is any other single non-space character
	TokenOperator
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "IDENTIFIER",
	TokenInt:        "INT",
	TokenFloat:      "FLOAT",
	TokenFn:         "FN",
	TokenReturn:     "RETURN",
	TokenExtern:     "EXTERN",
	TokenTrue:       "TRUE",
	TokenFalse:      "FALSE",
	TokenNumber:     "NUMBER",
	TokenPrint:      "PRINT",
	TokenStart:      "START",
	TokenPlus:       "PLUS",
	TokenMinus:      "MINUS",
	TokenStar:       "STAR",
	TokenSlash:      "SLASH",
	TokenDot:        "DOT",
	TokenQuestion:   "QUESTION",
	TokenAnd:        "AND",
	TokenOr:         "OR",
	TokenAssign:     "ASSIGN",
	TokenLess:       "LESS",
	TokenGreater:    "GREATER",
	TokenEqual:      "EQUAL",
	TokenNotEqual:   "NOT_EQUAL",
	TokenLessEq:     "LESS_EQ",
	TokenGreaterEq:  "GREATER_EQ",
	TokenColon:      "COLON",
	TokenTilde:      "TILDE",
	TokenComma:      "COMMA",
	TokenSemicolon:  "SEMICOLON",
	TokenLeftParen:  "LEFT_PAREN",
	TokenRightParen: "RIGHT_PAREN",
	TokenLeftBrace:  "LEFT_BRACE",
	TokenRightBrace: "RIGHT_BRACE",
	TokenOperator:   "OPERATOR",
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsKeyword reports whether tt is one of the reserved words
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenFn && tt <= TokenStart
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"fn":     TokenFn,
	"return": TokenReturn,
	"extern": TokenExtern,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"number": TokenNumber,
	"print":  TokenPrint,
	"start":  TokenStart,
}

// LookupIdent returns the keyword token type for ident, or TokenIdentifier
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsKeyword reports whether s is a reserved word
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// operators maps fixed operator and delimiter lexemes to their token types.
// Lexemes missing here become TokenOperator.
var operators = map[string]TokenType{
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenStar,
	"/":  TokenSlash,
	".":  TokenDot,
	"?":  TokenQuestion,
	"&&": TokenAnd,
	"||": TokenOr,
	"=":  TokenAssign,
	"<":  TokenLess,
	">":  TokenGreater,
	"==": TokenEqual,
	"!=": TokenNotEqual,
	"<=": TokenLessEq,
	">=": TokenGreaterEq,
	":":  TokenColon,
	"~":  TokenTilde,
	",":  TokenComma,
	";":  TokenSemicolon,
	"(":  TokenLeftParen,
	")":  TokenRightParen,
	"{":  TokenLeftBrace,
	"}":  TokenRightBrace,
}

func lookupOperator(lexeme string) TokenType {
	if tok, ok := operators[lexeme]; ok {
		return tok
	}
	return TokenOperator
}

// Token represents a lexical token with position information. Numeric
// literals carry their converted value in Int or Float.
type Token struct {
	Type     TokenType // Token type
	Value    string    // Token text
	Int      int64     // Value of a TokenInt
	Float    float64   // Value of a TokenFloat
	Position int       // Byte position in input
	Line     int       // Line number (1-based)
	Column   int       // Column number (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier, TokenOperator, TokenInt, TokenFloat:
		return fmt.Sprintf("%s(%s)", t.Type.String(), t.Value)
	default:
		return t.Type.String()
	}
}

// IsEOF reports whether t is the end-of-input sentinel
func (t Token) IsEOF() bool {
	return t.Type == TokenEOF
}

// NumericValue returns the literal value of an INT or FLOAT token as float64
func (t Token) NumericValue() (float64, bool) {
	switch t.Type {
	case TokenInt:
		return float64(t.Int), true
	case TokenFloat:
		return t.Float, true
	}
	return 0, false
}
