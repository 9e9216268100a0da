// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels and the default severity of each code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial severity levels
// - 2026-10-18 v0.2.0: Defaults for front end codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a fault in user input, e.g. a syntax error
	SeverityLow Severity = iota

	// SeverityMedium is the default for unclassified errors
	SeverityMedium

	// SeverityHigh means a component cannot do its job (storage, config)
	SeverityHigh

	// SeverityCritical means the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeParseFault, CodeInvalidInput, CodeNotFound, CodeInputTooLarge:
		return SeverityLow
	case CodeLexFault:
		// lex faults abort the whole run
		return SeverityMedium
	case CodeDatabaseError, CodeConfigError, CodeInvalidConfig, CodeServiceUnavailable:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
