// Package error provides the structured error type used across fnc.
//
// Package: error
// Title: fnc Error Handling
// Description: Coded errors with severity, details and wrapping. Lexer and
//              parser faults stay typed in their own package; this package is
//              what the engine, the store, the server and the CLI hand around.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-18 v0.2.0: Codes reduced to the front end's fault taxonomy
//
// Usage:
//
//	import mdwerror "github.com/msto63/fnc/foundation/core/error"
//
//	err := mdwerror.New("input exceeds maximum length").
//		WithCode(mdwerror.CodeInputTooLarge).
//		WithDetail("length", len(src))
//
//	if mdwerror.HasCode(err, mdwerror.CodeParseFault) {
//		// report diagnostics
//	}
package error
