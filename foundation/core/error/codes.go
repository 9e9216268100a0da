// File: codes.go
// Title: Error Codes
// Description: Structured error codes for the fnc front end and its drivers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial error code catalogue
// - 2026-10-18 v0.2.0: Lexer/parser fault codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Front end faults
	CodeLexFault      Code = "LEX_FAULT"
	CodeParseFault    Code = "PARSE_FAULT"
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Service and network
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeLexFault, CodeParseFault, CodeInputTooLarge,
		CodeDatabaseError, CodeServiceUnavailable,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexFault, CodeParseFault, CodeInputTooLarge:
		return "syntax"
	case CodeDatabaseError:
		return "database"
	case CodeServiceUnavailable:
		return "service"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}
