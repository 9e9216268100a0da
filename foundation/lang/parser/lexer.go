// File: lexer.go
// Title: fn Lexical Analyzer (Tokenizer)
// Description: Implements the lexical analysis phase of fn parsing. Line
//              comments are blanked, then a single composite regular
//              expression is matched left to right. Numeric literals are
//              converted while lexing.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2026-10-18 v0.2.0: Regexp driven lexer for fn, LexFault on numeric overflow

package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Alternatives are tried in order at each position, so floats win over
// integers and two-character relational operators over single ones.
var tokenPattern = regexp.MustCompile(
	`([\p{L}_][\p{L}\p{N}_]*)` + // 1 identifier or keyword
		`|([;,])` + // 2 separators
		`|(&&|\|\|)` + // 3 logical operators
		`|([(){}])` + // 4 brackets
		`|([0-9]+\.[0-9]+)` + // 5 float
		`|([0-9]+)` + // 6 integer
		`|(<=|==|>=|!=|[=<>])` + // 7 relational operators
		`|([^\s\x0B\p{Z}])`, // 8 any other non-space character
)

var commentPattern = regexp.MustCompile(`#[^\n]*`)

const (
	groupIdent = 1
	groupFloat = 5
	groupInt   = 6
)

// StripComments replaces every line comment with spaces of the same byte
// length, so offsets, lines and columns of the remaining text are unchanged
func StripComments(input string) string {
	if !strings.Contains(input, "#") {
		return input
	}
	return commentPattern.ReplaceAllStringFunc(input, func(comment string) string {
		return strings.Repeat(" ", len(comment))
	})
}

// Lexer tokenizes fn source text one token at a time
type Lexer struct {
	input   string // source with comments blanked
	offset  int    // next byte to scan
	scanned int    // byte offset line and column refer to
	line    int
	column  int
	done    bool
}

// NewLexer creates a new lexer for input
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  StripComments(input),
		line:   1,
		column: 1,
	}
}

// NextToken returns the next token. Once the input is exhausted it keeps
// returning the EOF token. A numeric literal that does not fit its type is
// reported as a LexFault.
func (l *Lexer) NextToken() (Token, error) {
	if l.done || l.offset >= len(l.input) {
		return l.eof(), nil
	}

	loc := tokenPattern.FindStringSubmatchIndex(l.input[l.offset:])
	if loc == nil {
		return l.eof(), nil
	}

	start, end := l.offset+loc[0], l.offset+loc[1]
	l.moveTo(start)

	tok := Token{
		Value:    l.input[start:end],
		Position: start,
		Line:     l.line,
		Column:   l.column,
	}

	switch {
	case loc[2*groupIdent] >= 0:
		tok.Type = LookupIdent(tok.Value)
	case loc[2*groupFloat] >= 0:
		tok.Type = TokenFloat
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return Token{}, newSyntaxError(FaultLex, tok, "", "float literal is out of range")
		}
		tok.Float = f
	case loc[2*groupInt] >= 0:
		tok.Type = TokenInt
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return Token{}, newSyntaxError(FaultLex, tok, "", "integer literal does not fit in 64 bits")
		}
		tok.Int = n
	default:
		tok.Type = lookupOperator(tok.Value)
	}

	l.moveTo(end)
	l.offset = end
	return tok, nil
}

// eof returns the sentinel positioned just past the last character
func (l *Lexer) eof() Token {
	l.done = true
	l.moveTo(len(l.input))
	l.offset = len(l.input)
	return Token{
		Type:     TokenEOF,
		Position: len(l.input),
		Line:     l.line,
		Column:   l.column,
	}
}

// moveTo advances the line/column bookkeeping to pos. Columns count runes.
func (l *Lexer) moveTo(pos int) {
	for l.scanned < pos {
		r, size := utf8.DecodeRuneInString(l.input[l.scanned:])
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.scanned += size
	}
}

// Tokenize converts input into a token slice that always ends with exactly
// one EOF token. On a LexFault no tokens are returned.
func Tokenize(input string) ([]Token, error) {
	lexer := NewLexer(input)
	tokens := make([]Token, 0, len(input)/3+1)

	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}
