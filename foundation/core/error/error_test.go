// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes and severity.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-18 v0.2.0: Front end codes

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap coded error",
			err:      New("unexpected token").WithCode(CodeParseFault),
			message:  "parse failed",
			wantMsg:  "parse failed: unexpected token",
			wantCode: CodeParseFault,
		},
		{
			name:     "wrap coded error behind fmt.Errorf",
			err:      fmt.Errorf("job 7: %w", New("bad literal").WithCode(CodeLexFault)),
			message:  "tokenize failed",
			wantMsg:  "tokenize failed: job 7: bad literal",
			wantCode: CodeLexFault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("wrapped error should match the original with errors.Is")
			}
		})
	}
}

func TestWithCode_SetsDefaultSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeParseFault, SeverityLow},
		{CodeInputTooLarge, SeverityLow},
		{CodeLexFault, SeverityMedium},
		{CodeDatabaseError, SeverityHigh},
		{CodeInternal, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityCritical).WithCode(CodeParseFault)
	if explicit.Severity() != SeverityCritical {
		t.Errorf("explicit severity overwritten: got %v", explicit.Severity())
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	inner := New("bad literal").WithCode(CodeLexFault)
	outer := Wrap(inner, "run aborted").WithCode(CodeInternal)

	if !HasCode(outer, CodeInternal) {
		t.Error("expected outer code to match")
	}
	if !HasCode(outer, CodeLexFault) {
		t.Error("expected inner code to be found in the chain")
	}
	if HasCode(outer, CodeDatabaseError) {
		t.Error("unexpected code match")
	}
	if HasCode(errors.New("plain"), CodeLexFault) {
		t.Error("plain errors carry no code")
	}
	if GetCode(outer) != CodeInternal {
		t.Errorf("GetCode() = %v, want %v", GetCode(outer), CodeInternal)
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode of a plain error should be CodeUnknown")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity of a plain error should be SeverityMedium")
	}
}

func TestDetailsAndString(t *testing.T) {
	err := New("input exceeds maximum length").
		WithCode(CodeInputTooLarge).
		WithOperation("lang.Parse").
		WithDetail("max", 10).
		WithDetail("length", 12)

	details := err.Details()
	details["max"] = 99
	if err.Details()["max"] != 10 {
		t.Error("Details() must return a copy")
	}

	s := err.String()
	for _, want := range []string{
		"Error: input exceeds maximum length",
		"Code: INPUT_TOO_LARGE",
		"Severity: low",
		"Operation: lang.Parse",
		"Details: {length=12, max=10}",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("disk full"), "save job").WithCode(CodeDatabaseError)

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal failed: %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("Unmarshal failed: %v", jerr)
	}
	if decoded["code"] != "DATABASE_ERROR" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["severity"] != "high" {
		t.Errorf("severity = %v", decoded["severity"])
	}
	if decoded["cause"] != "disk full" {
		t.Errorf("cause = %v", decoded["cause"])
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeLexFault, "syntax"},
		{CodeParseFault, "syntax"},
		{CodeDatabaseError, "database"},
		{CodeInvalidConfig, "configuration"},
		{CodeUnknown, "generic"},
	}
	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.want {
			t.Errorf("%s.Category() = %q, want %q", tt.code, got, tt.want)
		}
		if !tt.code.IsValid() {
			t.Errorf("%s should be valid", tt.code)
		}
	}
	if Code("NOPE").IsValid() {
		t.Error("unknown code reported valid")
	}
}
