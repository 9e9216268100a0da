// File: print.go
// Title: fn AST Printers and Structural Equality
// Description: Deterministic renderings of the AST (indented dump and fully
//              parenthesised infix) and position-insensitive structural
//              equality.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a numeric literal so that the fn lexer reads it back
// as the same value. Integral values outside the int64 range get a ".0"
// suffix, since they would not lex as integers.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") && (v >= math.MaxInt64 || v < math.MinInt64) {
		s += ".0"
	}
	return s
}

// Infix renders an expression with explicit parentheses around every binary
// node, e.g. "(a + (b * 2))". Parsing the result yields an equal tree.
func Infix(expr Expr) string {
	var sb strings.Builder
	writeInfix(&sb, expr)
	return sb.String()
}

func writeInfix(sb *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *NumberExpr:
		sb.WriteString(FormatNumber(e.Value))
	case *VariableExpr:
		sb.WriteString(e.Name)
	case *BinaryExpr:
		sb.WriteString("(")
		writeInfix(sb, e.LHS)
		sb.WriteString(" ")
		sb.WriteString(e.Op)
		sb.WriteString(" ")
		writeInfix(sb, e.RHS)
		sb.WriteString(")")
	case *CallExpr:
		sb.WriteString(e.Callee)
		sb.WriteString("(")
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeInfix(sb, arg)
		}
		sb.WriteString(")")
	default:
		fmt.Fprintf(sb, "<%T>", expr)
	}
}

// Dump renders node as an indented tree, two spaces per level:
//
//	Program demo
//	  Function f(x)
//	    Binary +
//	      Variable x
//	      Number 1
//	  Extern g()
func Dump(node Node) string {
	dv := &dumpVisitor{}
	if node != nil {
		node.Accept(dv)
	}
	return dv.buffer.String()
}

// dumpVisitor drives its own recursion to track the indentation depth
type dumpVisitor struct {
	buffer strings.Builder
	indent int
}

func (dv *dumpVisitor) line(format string, args ...interface{}) {
	for i := 0; i < dv.indent; i++ {
		dv.buffer.WriteString("  ")
	}
	fmt.Fprintf(&dv.buffer, format, args...)
	dv.buffer.WriteString("\n")
}

func (dv *dumpVisitor) child(node Node) {
	dv.indent++
	if node == nil {
		dv.line("<nil>")
	} else {
		node.Accept(dv)
	}
	dv.indent--
}

func (dv *dumpVisitor) VisitNumber(expr *NumberExpr) interface{} {
	dv.line("Number %s", FormatNumber(expr.Value))
	return nil
}

func (dv *dumpVisitor) VisitVariable(expr *VariableExpr) interface{} {
	dv.line("Variable %s", expr.Name)
	return nil
}

func (dv *dumpVisitor) VisitBinary(expr *BinaryExpr) interface{} {
	dv.line("Binary %s", expr.Op)
	dv.child(exprNode(expr.LHS))
	dv.child(exprNode(expr.RHS))
	return nil
}

func (dv *dumpVisitor) VisitCall(expr *CallExpr) interface{} {
	dv.line("Call %s", expr.Callee)
	for _, arg := range expr.Args {
		dv.child(exprNode(arg))
	}
	return nil
}

func (dv *dumpVisitor) VisitPrototype(proto *Prototype) interface{} {
	dv.line("Extern %s", signature(proto))
	return nil
}

func (dv *dumpVisitor) VisitFunction(fn *Function) interface{} {
	if fn.Proto != nil && fn.Proto.IsAnonymous() {
		dv.line("Expression")
	} else {
		dv.line("Function %s", signature(fn.Proto))
	}
	dv.child(exprNode(fn.Body))
	return nil
}

func (dv *dumpVisitor) VisitProgram(prog *Program) interface{} {
	dv.line("Program %s", prog.Name)
	for _, item := range prog.Items {
		if item == nil {
			dv.child(nil)
			continue
		}
		dv.child(item)
	}
	return nil
}

// exprNode keeps a nil Expr from turning into a non-nil Node
func exprNode(expr Expr) Node {
	if expr == nil {
		return nil
	}
	return expr
}

func signature(proto *Prototype) string {
	if proto == nil {
		return "<nil>()"
	}
	return fmt.Sprintf("%s(%s)", proto.Name, strings.Join(proto.Params, ", "))
}

// Equal reports whether two expressions have the same structure. Positions
// are ignored; numbers compare by value.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *NumberExpr:
		y, ok := b.(*NumberExpr)
		return ok && x.Value == y.Value
	case *VariableExpr:
		y, ok := b.(*VariableExpr)
		return ok && x.Name == y.Name
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Op == y.Op && Equal(x.LHS, y.LHS) && Equal(x.RHS, y.RHS)
	case *CallExpr:
		y, ok := b.(*CallExpr)
		if !ok || x.Callee != y.Callee || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EqualPrototype reports whether two prototypes have the same name and
// parameters
func EqualPrototype(a, b *Prototype) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Name != b.Name || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	return true
}

// EqualTopLevel compares two program items structurally
func EqualTopLevel(a, b TopLevel) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Prototype:
		y, ok := b.(*Prototype)
		return ok && EqualPrototype(x, y)
	case *Function:
		y, ok := b.(*Function)
		return ok && EqualPrototype(x.Proto, y.Proto) && Equal(x.Body, y.Body)
	default:
		return false
	}
}

// EqualProgram compares the items of two programs structurally. Names are
// ignored.
func EqualProgram(a, b *Program) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !EqualTopLevel(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}
