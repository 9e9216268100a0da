// File: doc.go
// Title: fn Parser Package Documentation
// Description: Implements the lexical analyzer and parser for the fn
//              expression language. Converts source text into tokens and
//              tokens into AST nodes with positioned fault reporting.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-18 v0.2.0: fn lexer and precedence climbing parser

/*
Package parser provides lexical analysis and parsing for the fn language.

The pipeline is strictly one way:

	source --Tokenize--> []Token --Parser--> ast.Program

The lexer blanks '#' line comments and then matches one composite regular
expression left to right. Numeric literals are converted while lexing; a
literal that overflows its type is a LexFault and no tokens are returned.
The token slice always ends with one EOF token, and the parser's lookahead
returns that sentinel for any position past the end, so running out of input
surfaces as an ordinary ParseFault.

Binary expressions are parsed by precedence climbing:

	<      10
	+ -    20
	*      40

Operators of equal precedence associate to the left. Options.Precedence
installs additional operators or changes the table.

Example:

	prog, faults := parser.ParseSource("demo.fn", "fn sq(x) x * x\nsq(4)", parser.Options{})
	for _, fault := range faults {
		fmt.Println(fault)
	}
	fmt.Print(ast.Dump(prog))
*/
package parser
