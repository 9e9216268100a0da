// ============================================================================
// fnc - front end for the fn expression language
// ============================================================================
//
// Package:     repl
// Description: Message types for async operations in the REPL
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"time"

	"github.com/msto63/fnc/foundation/lang"
)

// Mode selects how a parsed line is shown
type Mode int

const (
	ModeDump Mode = iota
	ModeInfix
	ModeTokens
)

// String returns the name of the mode
func (m Mode) String() string {
	switch m {
	case ModeDump:
		return "dump"
	case ModeInfix:
		return "infix"
	case ModeTokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "dump", "ast":
		return ModeDump, true
	case "infix", "program":
		return ModeInfix, true
	case "tokens":
		return ModeTokens, true
	default:
		return ModeDump, false
	}
}

// Entry is one evaluated input line in the transcript
type Entry struct {
	Input    string
	Output   string
	Faults   []lang.FaultInfo
	Note     string
	Duration time.Duration
}

// Message types for tea.Cmd async operations

// parsedMsg is sent when a line has been parsed
type parsedMsg struct {
	entry Entry
}
