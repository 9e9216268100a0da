// File: doc.go
// Title: fn Abstract Syntax Tree Package Documentation
// Description: Defines the Abstract Syntax Tree nodes produced by the fn
//              parser together with visitors, printers and structural
//              equality.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST implementation
// - 2026-10-18 v0.2.0: Expression, prototype and function nodes for fn

/*
Package ast defines the Abstract Syntax Tree for the fn expression language.

The tree is small and closed:

	Expr      NumberExpr | VariableExpr | BinaryExpr | CallExpr
	TopLevel  *Function | *Prototype (extern declaration)
	Program   ordered list of TopLevel items

Every node owns its children exclusively and is fully formed once the parser
hands it out. Positions are kept for diagnostics but are ignored by Equal,
Dump and Infix, so two parses of differently formatted sources compare equal.

Example:

	prog, faults := parser.ParseSource("demo", "fn f(x) x + 1", parser.Options{})
	fmt.Print(ast.Dump(prog))
*/
package ast
