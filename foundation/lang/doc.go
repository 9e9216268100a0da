// File: doc.go
// Title: fn Language Front End Package Documentation
// Description: High-level entry point to the fn front end. Wraps lexer and
//              parser with input limits, logging, timing and coded errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

/*
Package lang is the facade over the fn lexer and parser.

An Engine holds configuration only, so one instance can serve concurrent
callers. Every Parse call gets a job ID, runs Tokenize and ParseProgram,
and reports faults as *mdwerror.Error values carrying LEX_FAULT or
PARSE_FAULT. The underlying *parser.SyntaxError stays reachable through
errors.As:

	engine := lang.New(lang.Options{})
	result, err := engine.Parse("demo.fn", "fn f(x) x + 1")
	if err != nil {
		return err // input rejected, e.g. INPUT_TOO_LARGE
	}
	for _, fault := range result.Faults {
		if se, ok := parser.AsSyntaxError(fault); ok {
			fmt.Println(se.Line, se.Column, se.Message)
		}
	}
*/
package lang
