// File: nodes.go
// Title: fn AST Node Definitions
// Description: Defines the node types of the fn AST: numeric literals,
//              variables, binary operations, calls, prototypes, function
//              definitions and programs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-18 v0.2.0: Replaced command nodes with expression nodes

package ast

import (
	"fmt"
	"strings"
)

// AnonymousFunctionName is the prototype name given to top-level expressions
const AnonymousFunctionName = "__anon_expr"

// Node represents any node in the AST
type Node interface {
	String() string
	Accept(visitor Visitor) interface{}
	Position() Position
	Validate() error
}

// Expr is implemented by the four expression variants
type Expr interface {
	Node
	exprNode()
}

// TopLevel is implemented by the items a Program may hold
type TopLevel interface {
	Node
	topLevelNode()
}

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // byte offset from the start of the input
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// NumberExpr is a numeric literal. Integer literals are widened to float64.
type NumberExpr struct {
	Value float64
	Pos   Position
}

// VariableExpr is a reference to a named value
type VariableExpr struct {
	Name string
	Pos  Position
}

// BinaryExpr is a binary operation; Op holds the operator lexeme
type BinaryExpr struct {
	Op  string
	LHS Expr
	RHS Expr
	Pos Position
}

// CallExpr is a call of a named function
type CallExpr struct {
	Callee string
	Args   []Expr
	Pos    Position
}

// Prototype is a function signature: a name and its parameter names.
// Stand-alone prototypes in a Program are extern declarations.
type Prototype struct {
	Name   string
	Params []string
	Pos    Position
}

// Function is a function definition
type Function struct {
	Proto *Prototype
	Body  Expr
	Pos   Position
}

// Program is the ordered result of parsing a whole source file
type Program struct {
	Name  string
	Items []TopLevel
}

func (*NumberExpr) exprNode()   {}
func (*VariableExpr) exprNode() {}
func (*BinaryExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}

func (*Prototype) topLevelNode() {}
func (*Function) topLevelNode()  {}

// Implementation of Node interface for NumberExpr

func (n *NumberExpr) String() string {
	return FormatNumber(n.Value)
}

func (n *NumberExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitNumber(n)
}

func (n *NumberExpr) Position() Position {
	return n.Pos
}

func (n *NumberExpr) Validate() error {
	return nil
}

// Implementation of Node interface for VariableExpr

func (v *VariableExpr) String() string {
	return v.Name
}

func (v *VariableExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitVariable(v)
}

func (v *VariableExpr) Position() Position {
	return v.Pos
}

func (v *VariableExpr) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("variable name is required")
	}
	return nil
}

// Implementation of Node interface for BinaryExpr

func (b *BinaryExpr) String() string {
	return Infix(b)
}

func (b *BinaryExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinary(b)
}

func (b *BinaryExpr) Position() Position {
	return b.Pos
}

func (b *BinaryExpr) Validate() error {
	if b.Op == "" {
		return fmt.Errorf("binary operator is required")
	}
	if b.LHS == nil || b.RHS == nil {
		return fmt.Errorf("binary %q requires both operands", b.Op)
	}
	if err := b.LHS.Validate(); err != nil {
		return fmt.Errorf("left operand: %w", err)
	}
	if err := b.RHS.Validate(); err != nil {
		return fmt.Errorf("right operand: %w", err)
	}
	return nil
}

// Implementation of Node interface for CallExpr

func (c *CallExpr) String() string {
	return Infix(c)
}

func (c *CallExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitCall(c)
}

func (c *CallExpr) Position() Position {
	return c.Pos
}

func (c *CallExpr) Validate() error {
	if strings.TrimSpace(c.Callee) == "" {
		return fmt.Errorf("callee name is required")
	}
	for i, arg := range c.Args {
		if arg == nil {
			return fmt.Errorf("argument %d is missing", i)
		}
		if err := arg.Validate(); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return nil
}

// Implementation of Node interface for Prototype

func (p *Prototype) String() string {
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(p.Params, " "))
}

func (p *Prototype) Accept(visitor Visitor) interface{} {
	return visitor.VisitPrototype(p)
}

func (p *Prototype) Position() Position {
	return p.Pos
}

func (p *Prototype) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("prototype name is required")
	}
	for i, param := range p.Params {
		if strings.TrimSpace(param) == "" {
			return fmt.Errorf("parameter %d of %s has no name", i, p.Name)
		}
	}
	return nil
}

// IsAnonymous reports whether the prototype wraps a top-level expression
func (p *Prototype) IsAnonymous() bool {
	return p.Name == AnonymousFunctionName
}

// Implementation of Node interface for Function

func (f *Function) String() string {
	if f.Proto == nil || f.Body == nil {
		return "fn <incomplete>"
	}
	if f.Proto.IsAnonymous() {
		return Infix(f.Body)
	}
	return fmt.Sprintf("fn %s %s", f.Proto.String(), Infix(f.Body))
}

func (f *Function) Accept(visitor Visitor) interface{} {
	return visitor.VisitFunction(f)
}

func (f *Function) Position() Position {
	return f.Pos
}

func (f *Function) Validate() error {
	if f.Proto == nil {
		return fmt.Errorf("function prototype is required")
	}
	if err := f.Proto.Validate(); err != nil {
		return fmt.Errorf("prototype: %w", err)
	}
	if f.Body == nil {
		return fmt.Errorf("function %s has no body", f.Proto.Name)
	}
	if err := f.Body.Validate(); err != nil {
		return fmt.Errorf("body of %s: %w", f.Proto.Name, err)
	}
	return nil
}

// Implementation of Node interface for Program

func (p *Program) String() string {
	lines := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if proto, ok := item.(*Prototype); ok {
			lines = append(lines, "extern "+proto.String())
			continue
		}
		lines = append(lines, item.String())
	}
	return strings.Join(lines, "\n")
}

func (p *Program) Accept(visitor Visitor) interface{} {
	return visitor.VisitProgram(p)
}

// Position of a program is always the start of the input
func (p *Program) Position() Position {
	return Position{Line: 1, Column: 1}
}

func (p *Program) Validate() error {
	for i, item := range p.Items {
		if item == nil {
			return fmt.Errorf("item %d is missing", i)
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// Functions returns the definitions of the program, anonymous ones included
func (p *Program) Functions() []*Function {
	var result []*Function
	for _, item := range p.Items {
		if fn, ok := item.(*Function); ok {
			result = append(result, fn)
		}
	}
	return result
}

// Externs returns the extern declarations of the program
func (p *Program) Externs() []*Prototype {
	var result []*Prototype
	for _, item := range p.Items {
		if proto, ok := item.(*Prototype); ok {
			result = append(result, proto)
		}
	}
	return result
}
