// File: program.go
// Title: fn Program Driver
// Description: Drives the parser over a whole source file, collecting
//              top-level items and faults with one-token resynchronisation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	mdwlog "github.com/msto63/fnc/foundation/core/log"
	mdwast "github.com/msto63/fnc/foundation/lang/ast"
)

// ParseProgram calls Start until the EOF sentinel is reached. Items are
// returned in source order. After a fault the offending token is skipped and
// parsing continues, unless Options.StopOnError is set.
func (p *Parser) ParseProgram(name string) (*mdwast.Program, []error) {
	program := &mdwast.Program{Name: name, Items: make([]mdwast.TopLevel, 0)}
	var faults []error

	p.logger.Debug("Starting program parse", mdwlog.Fields{
		"program": name,
		"tokens":  len(p.tokens),
	})

	for !p.AtEnd() {
		item, err := p.Start()
		if err != nil {
			faults = append(faults, err)
			if p.options.StopOnError {
				break
			}
			p.advance()
			continue
		}
		if item != nil {
			program.Items = append(program.Items, item)
		}
	}

	p.logger.Debug("Program parse finished", mdwlog.Fields{
		"program": name,
		"items":   len(program.Items),
		"faults":  len(faults),
	})

	return program, faults
}

// ParseSource tokenizes src and parses it as a program. A LexFault aborts
// the run and is returned alone with a nil program.
func ParseSource(name, src string, opts Options) (*mdwast.Program, []error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, []error{err}
	}
	return New(tokens, opts).ParseProgram(name)
}
