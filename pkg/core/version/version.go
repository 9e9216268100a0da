// ============================================================================
// fnc - front end for the fn expression language
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all fnc components
const (
	// Platform version
	Platform = "0.3.0"

	// Component versions
	Lexer  = "0.3.0"
	Parser = "0.3.0"
	Server = "0.2.0"
	Store  = "0.2.0"
	REPL   = "0.1.0"
)

// Build metadata, set with -ldflags "-X github.com/msto63/fnc/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "server":
		return Server
	case "store":
		return Store
	case "repl":
		return REPL
	default:
		return Platform
	}
}

// Info returns a one-line description of the build
func Info() string {
	return fmt.Sprintf("fnc %s (commit %s, built %s, %s %s/%s)",
		Platform, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
