// File: engine.go
// Title: fn Front End Engine
// Description: Provides a high-level interface that runs the lexer and the
//              parser for a named source, enforces input limits, times the
//              run and maps syntax faults onto coded errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial high-level engine implementation
// - 2026-10-18 v0.2.0: Parse-only engine for fn with job IDs and statistics

package lang

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/fnc/foundation/core/error"
	mdwlog "github.com/msto63/fnc/foundation/core/log"
	mdwast "github.com/msto63/fnc/foundation/lang/ast"
	mdwparser "github.com/msto63/fnc/foundation/lang/parser"
)

// DefaultMaxInputLength is the largest accepted source, in bytes
const DefaultMaxInputLength = 1 << 20

// Options configures the engine
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
	StopOnError    bool
	Precedence     map[mdwparser.TokenType]int
}

// Engine runs the fn front end. It holds no per-parse state.
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Stats summarises a parsed program
type Stats struct {
	Tokens      int `json:"tokens"`
	Functions   int `json:"functions"`
	Externs     int `json:"externs"`
	Expressions int `json:"expressions"`
	Calls       int `json:"calls"`
}

// Result is the outcome of one parse job
type Result struct {
	JobID    uuid.UUID
	Name     string
	Program  *mdwast.Program // nil after a LexFault
	Tokens   []mdwparser.Token
	Faults   []error
	Stats    Stats
	Duration time.Duration
}

// OK reports whether the job finished without faults
func (r *Result) OK() bool {
	return len(r.Faults) == 0
}

// Err joins all faults into one error, or returns nil
func (r *Result) Err() error {
	return errors.Join(r.Faults...)
}

// New creates a new engine with the given options
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	return &Engine{
		logger:  opts.Logger.WithField("component", "fnc-engine"),
		options: opts,
	}
}

// WithStopOnError returns an engine with the same options except
// StopOnError. The receiver is returned when nothing changes.
func (e *Engine) WithStopOnError(stop bool) *Engine {
	if e.options.StopOnError == stop {
		return e
	}
	opts := e.options
	opts.StopOnError = stop
	return &Engine{logger: e.logger, options: opts}
}

// StopOnError reports whether parsing ends at the first fault
func (e *Engine) StopOnError() bool {
	return e.options.StopOnError
}

// MaxInputLength returns the configured input limit in bytes
func (e *Engine) MaxInputLength() int {
	return e.options.MaxInputLength
}

// Tokenize validates and tokenizes src
func (e *Engine) Tokenize(src string) ([]mdwparser.Token, error) {
	if err := e.checkInput("lang.Tokenize", src); err != nil {
		return nil, err
	}

	tokens, err := mdwparser.Tokenize(src)
	if err != nil {
		return nil, e.fault("", "lang.Tokenize", err)
	}
	return tokens, nil
}

// Parse tokenizes and parses src. The returned error is non-nil only when
// the input is rejected before lexing; syntax faults are reported in
// Result.Faults.
func (e *Engine) Parse(name, src string) (*Result, error) {
	if err := e.checkInput("lang.Parse", src); err != nil {
		return nil, err
	}

	result := &Result{
		JobID: uuid.New(),
		Name:  name,
	}
	logger := e.logger.WithRequestID(result.JobID.String())
	timer := logger.StartTimer("parse").WithLevel(mdwlog.LevelDebug).WithField("source", name)
	start := time.Now()

	logger.Debug("Starting parse", mdwlog.Fields{
		"source": name,
		"bytes":  len(src),
	})

	tokens, err := mdwparser.Tokenize(src)
	if err != nil {
		result.Faults = []error{e.fault(name, "lang.Parse", err)}
		result.Duration = time.Since(start)
		timer.StopWithError(err)
		return result, nil
	}
	result.Tokens = tokens

	p := mdwparser.New(tokens, mdwparser.Options{
		Logger:      logger,
		Precedence:  e.options.Precedence,
		StopOnError: e.options.StopOnError,
	})
	program, faults := p.ParseProgram(name)
	result.Program = program

	for _, fault := range faults {
		result.Faults = append(result.Faults, e.fault(name, "lang.Parse", fault))
	}

	if invalid := mdwast.Check(program); len(invalid) > 0 {
		internal := mdwerror.Wrap(errors.Join(invalid...), "parser produced an incomplete tree").
			WithCode(mdwerror.CodeInternal).
			WithOperation("lang.Parse").
			WithDetail("source", name)
		logger.LogError(internal)
		result.Faults = append(result.Faults, internal)
	}

	result.Stats = collectStats(program, len(tokens))
	result.Duration = time.Since(start)
	timer.WithField("faults", len(result.Faults)).Stop()

	logger.Debug("Parse finished", mdwlog.Fields{
		"source":    name,
		"items":     len(program.Items),
		"faults":    len(result.Faults),
		"functions": result.Stats.Functions,
		"externs":   result.Stats.Externs,
		"calls":     result.Stats.Calls,
	})

	return result, nil
}

// Check parses src and returns nil if it is free of faults. Otherwise the
// first fault is returned, annotated with the total count.
func (e *Engine) Check(name, src string) error {
	result, err := e.Parse(name, src)
	if err != nil {
		return err
	}
	if result.OK() {
		return nil
	}

	return mdwerror.Wrap(result.Faults[0], fmt.Sprintf("%s: %d syntax fault(s)", name, len(result.Faults))).
		WithDetail("faults", len(result.Faults))
}

func (e *Engine) checkInput(operation, src string) error {
	if len(src) <= e.options.MaxInputLength {
		return nil
	}
	return mdwerror.New(fmt.Sprintf("input exceeds maximum length: %d > %d", len(src), e.options.MaxInputLength)).
		WithCode(mdwerror.CodeInputTooLarge).
		WithOperation(operation).
		WithDetail("length", len(src)).
		WithDetail("max", e.options.MaxInputLength)
}

// fault converts a syntax fault into a coded error that keeps the original
// *SyntaxError in its chain
func (e *Engine) fault(name, operation string, err error) *mdwerror.Error {
	se, ok := mdwparser.AsSyntaxError(err)
	if !ok {
		return mdwerror.Wrap(err, "unexpected parser failure").
			WithCode(mdwerror.CodeInternal).
			WithOperation(operation)
	}

	code := mdwerror.CodeParseFault
	if se.Kind == mdwparser.FaultLex {
		code = mdwerror.CodeLexFault
	}

	message := "syntax fault"
	if name != "" {
		message = name
	}

	wrapped := mdwerror.Wrap(se, message).
		WithCode(code).
		WithOperation(operation).
		WithDetail("line", se.Line).
		WithDetail("column", se.Column).
		WithDetail("offset", se.Offset)
	if se.Expected != "" {
		wrapped = wrapped.WithDetail("expected", se.Expected)
	}
	return wrapped
}

func collectStats(program *mdwast.Program, tokens int) Stats {
	cv := mdwast.NewCollectorVisitor()
	mdwast.Walk(cv, program)

	stats := Stats{
		Tokens:  tokens,
		Externs: len(program.Externs()),
		Calls:   len(cv.Calls),
	}
	for _, fn := range program.Functions() {
		if fn.Proto != nil && fn.Proto.IsAnonymous() {
			stats.Expressions++
		} else {
			stats.Functions++
		}
	}
	return stats
}

// FaultInfo is the flat form of one fault, as stored and served
type FaultInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// Describe flattens a fault returned by Parse or Tokenize
func Describe(err error) FaultInfo {
	info := FaultInfo{
		Code:    string(mdwerror.GetCode(err)),
		Message: err.Error(),
	}
	if se, ok := mdwparser.AsSyntaxError(err); ok {
		info.Message = se.Error()
		info.Line = se.Line
		info.Column = se.Column
	}
	return info
}

// FaultInfos flattens all faults of the result
func (r *Result) FaultInfos() []FaultInfo {
	infos := make([]FaultInfo, 0, len(r.Faults))
	for _, f := range r.Faults {
		infos = append(infos, Describe(f))
	}
	return infos
}
