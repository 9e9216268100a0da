// File: errors.go
// Title: fn Syntax Faults
// Description: Defines SyntaxError, the positioned fault value returned by
//              the lexer (LexFault) and the parser (ParseFault).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: ParseError with position information (inside parser.go)
// - 2026-10-18 v0.2.0: Fault kinds, expected-token hint, end-of-input detection

package parser

import (
	"errors"
	"fmt"
)

// FaultKind distinguishes lexer faults from parser faults
type FaultKind int

const (
	// FaultParse is raised when the token stream does not match the grammar
	FaultParse FaultKind = iota
	// FaultLex is raised when the source text cannot be tokenized
	FaultLex
)

// String returns "parse" or "lex"
func (k FaultKind) String() string {
	if k == FaultLex {
		return "lex"
	}
	return "parse"
}

// SyntaxError represents a lexing or parsing fault with position information
type SyntaxError struct {
	Kind     FaultKind
	Message  string
	Expected string // what the parser was looking for, e.g. "')'"
	Token    Token  // offending token
	Line     int
	Column   int
	Offset   int
}

func newSyntaxError(kind FaultKind, tok Token, expected, message string) *SyntaxError {
	return &SyntaxError{
		Kind:     kind,
		Message:  message,
		Expected: expected,
		Token:    tok,
		Line:     tok.Line,
		Column:   tok.Column,
		Offset:   tok.Position,
	}
}

func (se *SyntaxError) Error() string {
	near := fmt.Sprintf("(near '%s')", se.Token.Value)
	if se.IsEndOfInput() {
		near = "(at end of input)"
	}
	return fmt.Sprintf("%s error at line %d, column %d: %s %s",
		se.Kind, se.Line, se.Column, se.Message, near)
}

// IsEndOfInput reports whether the fault was raised at the EOF sentinel
func (se *SyntaxError) IsEndOfInput() bool {
	return se.Token.Type == TokenEOF
}

// AsSyntaxError finds the first *SyntaxError in err's chain
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
