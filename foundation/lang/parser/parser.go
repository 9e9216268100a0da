// File: parser.go
// Title: fn Recursive Descent Parser
// Description: Implements the parsing phase of fn. Converts token slices into
//              AST nodes using recursive descent for prototypes, definitions
//              and externs and operator-precedence climbing for binary
//              expressions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-18 v0.2.0: Precedence climbing over a token slice with EOF sentinel

package parser

import (
	mdwlog "github.com/msto63/fnc/foundation/core/log"
	mdwast "github.com/msto63/fnc/foundation/lang/ast"
)

// DefaultPrecedence is the binary operator table. Higher binds tighter;
// tokens missing from the table are not binary operators.
var DefaultPrecedence = map[TokenType]int{
	TokenLess:  10,
	TokenPlus:  20,
	TokenMinus: 20,
	TokenStar:  40,
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// Precedence adds or replaces entries of DefaultPrecedence. A negative
	// value removes the operator.
	Precedence map[TokenType]int

	// StopOnError makes ParseProgram return after the first fault instead of
	// skipping a token and continuing
	StopOnError bool
}

// Parser implements recursive descent parsing for fn over a token slice
type Parser struct {
	tokens     []Token
	pos        int   // index of current
	current    Token // Current token
	precedence map[TokenType]int
	logger     *mdwlog.Logger
	options    Options
}

// New creates a parser over tokens. The slice is expected to come from
// Tokenize; if it does not end with an EOF token one is appended to a copy.
func New(tokens []Token, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		terminated := make([]Token, len(tokens), len(tokens)+1)
		copy(terminated, tokens)
		eof := Token{Type: TokenEOF, Line: 1, Column: 1}
		if n := len(tokens); n > 0 {
			last := tokens[n-1]
			eof.Position = last.Position + len(last.Value)
			eof.Line = last.Line
			eof.Column = last.Column + len([]rune(last.Value))
		}
		tokens = append(terminated, eof)
	}

	precedence := make(map[TokenType]int, len(DefaultPrecedence)+len(opts.Precedence))
	for tok, prec := range DefaultPrecedence {
		precedence[tok] = prec
	}
	for tok, prec := range opts.Precedence {
		if prec < 0 {
			delete(precedence, tok)
			continue
		}
		precedence[tok] = prec
	}

	p := &Parser{
		tokens:     tokens,
		precedence: precedence,
		logger:     opts.Logger.WithField("component", "fnc-parser"),
		options:    opts,
	}
	p.current = p.peek(0)
	return p
}

// AtEnd reports whether the cursor is on the EOF sentinel
func (p *Parser) AtEnd() bool {
	return p.current.Type == TokenEOF
}

// ParsePrimary parses an identifier expression, a numeric literal or a
// parenthesised expression
func (p *Parser) ParsePrimary() (mdwast.Expr, error) {
	switch p.current.Type {
	case TokenIdentifier:
		return p.ParseIdentifierExpr()

	case TokenInt, TokenFloat:
		value, _ := p.current.NumericValue()
		expr := &mdwast.NumberExpr{Value: value, Pos: p.currentPosition()}
		p.advance()
		return expr, nil

	case TokenLeftParen:
		return p.parseParenExpr()

	default:
		return nil, p.parseError("an expression", "unexpected token where an expression was expected")
	}
}

// parseParenExpr parses '(' expression ')'. The parentheses leave no node.
func (p *Parser) parseParenExpr() (mdwast.Expr, error) {
	p.advance() // consume '('

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenRightParen {
		return nil, p.parseError("')'", "expected ')' after expression")
	}
	p.advance() // consume ')'

	return expr, nil
}

// ParseIdentifierExpr parses a variable reference or, when the identifier
// is followed by '(', a call with its argument list
func (p *Parser) ParseIdentifierExpr() (mdwast.Expr, error) {
	if p.current.Type != TokenIdentifier {
		return nil, p.parseError("identifier", "expected identifier")
	}

	pos := p.currentPosition()
	name := p.current.Value
	p.advance()

	if p.current.Type != TokenLeftParen {
		return &mdwast.VariableExpr{Name: name, Pos: pos}, nil
	}
	p.advance() // consume '('

	args := make([]mdwast.Expr, 0)
	if p.current.Type != TokenRightParen {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.current.Type == TokenRightParen {
				break
			}
			if p.current.Type != TokenComma {
				return nil, p.parseError("')' or ','", "expected ')' or ',' in argument list")
			}
			p.advance() // consume ','
		}
	}
	p.advance() // consume ')'

	return &mdwast.CallExpr{Callee: name, Args: args, Pos: pos}, nil
}

// ParseExpression parses a primary expression followed by any number of
// binary operator/primary pairs
func (p *Parser) ParseExpression() (mdwast.Expr, error) {
	lhs, err := p.ParsePrimary()
	if err != nil {
		return nil, err
	}
	return p.ParseBinOpRHS(0, lhs)
}

// ParseBinOpRHS folds operator/primary pairs into lhs as long as the
// operator binds at least as tightly as minPrec. Operators of equal
// precedence associate to the left.
func (p *Parser) ParseBinOpRHS(minPrec int, lhs mdwast.Expr) (mdwast.Expr, error) {
	for {
		prec := p.tokenPrecedence()
		if prec < minPrec {
			return lhs, nil
		}

		op := p.current
		pos := p.currentPosition()
		p.advance()

		rhs, err := p.ParsePrimary()
		if err != nil {
			return nil, err
		}

		if next := p.tokenPrecedence(); prec < next {
			rhs, err = p.ParseBinOpRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &mdwast.BinaryExpr{Op: op.Value, LHS: lhs, RHS: rhs, Pos: pos}
	}
}

// ParsePrototype parses IDENT '(' IDENT* ')'
func (p *Parser) ParsePrototype() (*mdwast.Prototype, error) {
	if p.current.Type != TokenIdentifier {
		return nil, p.parseError("function name", "expected function name in prototype")
	}

	pos := p.currentPosition()
	name := p.current.Value
	p.advance()

	if p.current.Type != TokenLeftParen {
		return nil, p.parseError("'('", "expected '(' in prototype")
	}
	p.advance()

	params := make([]string, 0)
	for p.current.Type == TokenIdentifier {
		params = append(params, p.current.Value)
		p.advance()
	}

	if p.current.Type != TokenRightParen {
		return nil, p.parseError("')'", "expected ')' in prototype")
	}
	p.advance()

	return &mdwast.Prototype{Name: name, Params: params, Pos: pos}, nil
}

// ParseDefinition parses 'fn' prototype expression
func (p *Parser) ParseDefinition() (*mdwast.Function, error) {
	if p.current.Type != TokenFn {
		return nil, p.parseError("'fn'", "expected 'fn' to start a definition")
	}

	pos := p.currentPosition()
	p.advance() // consume 'fn'

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &mdwast.Function{Proto: proto, Body: body, Pos: pos}, nil
}

// ParseExtern parses 'extern' prototype
func (p *Parser) ParseExtern() (*mdwast.Prototype, error) {
	if p.current.Type != TokenExtern {
		return nil, p.parseError("'extern'", "expected 'extern' to start a declaration")
	}
	p.advance() // consume 'extern'

	return p.ParsePrototype()
}

// ParseTopLevelExpr parses an expression and wraps it in an anonymous
// function with no parameters
func (p *Parser) ParseTopLevelExpr() (*mdwast.Function, error) {
	pos := p.currentPosition()

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	proto := &mdwast.Prototype{Name: mdwast.AnonymousFunctionName, Params: []string{}, Pos: pos}
	return &mdwast.Function{Proto: proto, Body: body, Pos: pos}, nil
}

// Start performs one top-level step. A ';' is consumed and yields a nil
// item without error.
func (p *Parser) Start() (mdwast.TopLevel, error) {
	switch p.current.Type {
	case TokenSemicolon:
		p.advance()
		return nil, nil

	case TokenFn:
		fn, err := p.ParseDefinition()
		if err != nil {
			return nil, err
		}
		return fn, nil

	case TokenExtern:
		proto, err := p.ParseExtern()
		if err != nil {
			return nil, err
		}
		return proto, nil

	default:
		fn, err := p.ParseTopLevelExpr()
		if err != nil {
			return nil, err
		}
		return fn, nil
	}
}

// Utility methods

// peek returns the token offset positions after the cursor, or the EOF
// sentinel when that lies past the end
func (p *Parser) peek(offset int) Token {
	idx := p.pos + offset
	if idx < 0 || idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

// advance moves to the next token. The cursor never moves past EOF.
func (p *Parser) advance() {
	if p.current.Type == TokenEOF {
		return
	}
	p.pos++
	p.current = p.peek(0)
}

// tokenPrecedence returns the binding power of the current token, or -1
func (p *Parser) tokenPrecedence() int {
	if prec, ok := p.precedence[p.current.Type]; ok {
		return prec
	}
	return -1
}

// currentPosition returns the current AST position
func (p *Parser) currentPosition() mdwast.Position {
	return mdwast.Position{
		Line:   p.current.Line,
		Column: p.current.Column,
		Offset: p.current.Position,
	}
}

// parseError creates a parse fault at the current token
func (p *Parser) parseError(expected, message string) *SyntaxError {
	err := newSyntaxError(FaultParse, p.current, expected, message)
	p.logger.Trace("Parse fault", mdwlog.Fields{
		"message":  message,
		"expected": expected,
		"token":    p.current.String(),
		"line":     p.current.Line,
		"column":   p.current.Column,
	})
	return err
}
