// File: visitor.go
// Title: fn AST Visitor Pattern Implementation
// Description: Implements the visitor pattern for the fn AST: the Visitor
//              interface, a pre-order Walk, and visitors that collect nodes
//              and validate the fully-formed invariant.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2026-10-18 v0.2.0: Walk drives traversal, visitors only handle one node

package ast

import "fmt"

// Visitor interface for processing AST nodes using the visitor pattern.
// Visit methods handle a single node; Walk takes care of the children.
type Visitor interface {
	// Visit expression nodes
	VisitNumber(expr *NumberExpr) interface{}
	VisitVariable(expr *VariableExpr) interface{}
	VisitBinary(expr *BinaryExpr) interface{}
	VisitCall(expr *CallExpr) interface{}

	// Visit top-level nodes
	VisitPrototype(proto *Prototype) interface{}
	VisitFunction(fn *Function) interface{}
	VisitProgram(prog *Program) interface{}
}

// Walk visits node and then its children in source order. Nil children are
// skipped so Walk can be used on trees that fail validation.
func Walk(visitor Visitor, node Node) {
	if node == nil {
		return
	}
	node.Accept(visitor)

	switch n := node.(type) {
	case *BinaryExpr:
		if n.LHS != nil {
			Walk(visitor, n.LHS)
		}
		if n.RHS != nil {
			Walk(visitor, n.RHS)
		}
	case *CallExpr:
		for _, arg := range n.Args {
			if arg != nil {
				Walk(visitor, arg)
			}
		}
	case *Function:
		if n.Proto != nil {
			Walk(visitor, n.Proto)
		}
		if n.Body != nil {
			Walk(visitor, n.Body)
		}
	case *Program:
		for _, item := range n.Items {
			if item != nil {
				Walk(visitor, item)
			}
		}
	}
}

// BaseVisitor provides no-op implementations for all visitor methods.
// Embed this in concrete visitors to only override needed methods.
type BaseVisitor struct{}

func (bv *BaseVisitor) VisitNumber(expr *NumberExpr) interface{}     { return nil }
func (bv *BaseVisitor) VisitVariable(expr *VariableExpr) interface{} { return nil }
func (bv *BaseVisitor) VisitBinary(expr *BinaryExpr) interface{}     { return nil }
func (bv *BaseVisitor) VisitCall(expr *CallExpr) interface{}         { return nil }
func (bv *BaseVisitor) VisitPrototype(proto *Prototype) interface{}  { return nil }
func (bv *BaseVisitor) VisitFunction(fn *Function) interface{}       { return nil }
func (bv *BaseVisitor) VisitProgram(prog *Program) interface{}       { return nil }

// CollectorVisitor collects specific types of nodes from the AST
type CollectorVisitor struct {
	BaseVisitor
	Numbers   []*NumberExpr
	Variables []*VariableExpr
	Calls     []*CallExpr
	Functions []*Function
	Externs   []*Prototype
	inFunc    int
}

// NewCollectorVisitor creates a new collector visitor
func NewCollectorVisitor() *CollectorVisitor {
	return &CollectorVisitor{
		Numbers:   make([]*NumberExpr, 0),
		Variables: make([]*VariableExpr, 0),
		Calls:     make([]*CallExpr, 0),
		Functions: make([]*Function, 0),
		Externs:   make([]*Prototype, 0),
	}
}

// Reset clears all collected nodes
func (cv *CollectorVisitor) Reset() {
	cv.Numbers = cv.Numbers[:0]
	cv.Variables = cv.Variables[:0]
	cv.Calls = cv.Calls[:0]
	cv.Functions = cv.Functions[:0]
	cv.Externs = cv.Externs[:0]
	cv.inFunc = 0
}

func (cv *CollectorVisitor) VisitNumber(expr *NumberExpr) interface{} {
	cv.Numbers = append(cv.Numbers, expr)
	return nil
}

func (cv *CollectorVisitor) VisitVariable(expr *VariableExpr) interface{} {
	cv.Variables = append(cv.Variables, expr)
	return nil
}

func (cv *CollectorVisitor) VisitCall(expr *CallExpr) interface{} {
	cv.Calls = append(cv.Calls, expr)
	return nil
}

func (cv *CollectorVisitor) VisitFunction(fn *Function) interface{} {
	cv.Functions = append(cv.Functions, fn)
	if fn.Proto != nil {
		cv.inFunc++
	}
	return nil
}

// VisitPrototype records extern declarations. Walk visits the prototype of a
// definition right after the definition itself, which is how the two are
// told apart.
func (cv *CollectorVisitor) VisitPrototype(proto *Prototype) interface{} {
	if cv.inFunc > 0 {
		cv.inFunc--
		return nil
	}
	cv.Externs = append(cv.Externs, proto)
	return nil
}

// CalleeNames returns the distinct callee names in first-seen order
func (cv *CollectorVisitor) CalleeNames() []string {
	seen := make(map[string]bool, len(cv.Calls))
	names := make([]string, 0, len(cv.Calls))
	for _, call := range cv.Calls {
		if !seen[call.Callee] {
			seen[call.Callee] = true
			names = append(names, call.Callee)
		}
	}
	return names
}

// ValidationVisitor validates AST nodes and collects errors
type ValidationVisitor struct {
	BaseVisitor
	errors []error
}

// NewValidationVisitor creates a new validation visitor
func NewValidationVisitor() *ValidationVisitor {
	return &ValidationVisitor{
		errors: make([]error, 0),
	}
}

// Errors returns all validation errors found
func (vv *ValidationVisitor) Errors() []error {
	return vv.errors
}

// HasErrors returns true if any validation errors were found
func (vv *ValidationVisitor) HasErrors() bool {
	return len(vv.errors) > 0
}

// Reset clears all collected errors
func (vv *ValidationVisitor) Reset() {
	vv.errors = vv.errors[:0]
}

func (vv *ValidationVisitor) check(kind string, node Node) {
	if err := node.Validate(); err != nil {
		vv.errors = append(vv.errors, fmt.Errorf("%s at %s: %w", kind, node.Position(), err))
	}
}

func (vv *ValidationVisitor) VisitVariable(expr *VariableExpr) interface{} {
	vv.check("variable", expr)
	return nil
}

func (vv *ValidationVisitor) VisitBinary(expr *BinaryExpr) interface{} {
	if expr.Op == "" || expr.LHS == nil || expr.RHS == nil {
		vv.check("binary expression", expr)
	}
	return nil
}

func (vv *ValidationVisitor) VisitCall(expr *CallExpr) interface{} {
	if expr.Callee == "" {
		vv.check("call", expr)
		return nil
	}
	for i, arg := range expr.Args {
		if arg == nil {
			vv.errors = append(vv.errors, fmt.Errorf("call at %s: argument %d is missing", expr.Pos, i))
		}
	}
	return nil
}

func (vv *ValidationVisitor) VisitPrototype(proto *Prototype) interface{} {
	vv.check("prototype", proto)
	return nil
}

func (vv *ValidationVisitor) VisitProgram(prog *Program) interface{} {
	for i, item := range prog.Items {
		if item == nil {
			vv.errors = append(vv.errors, fmt.Errorf("program %s: item %d is missing", prog.Name, i))
		}
	}
	return nil
}

func (vv *ValidationVisitor) VisitFunction(fn *Function) interface{} {
	if fn.Proto == nil {
		vv.errors = append(vv.errors, fmt.Errorf("function at %s: prototype is required", fn.Pos))
	}
	if fn.Body == nil {
		vv.errors = append(vv.errors, fmt.Errorf("function at %s: body is required", fn.Pos))
	}
	return nil
}

// Check walks node with a fresh ValidationVisitor and returns its errors
func Check(node Node) []error {
	vv := NewValidationVisitor()
	Walk(vv, node)
	return vv.Errors()
}
