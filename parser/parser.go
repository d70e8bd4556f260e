// Package parser implements a recursive-descent parser with Pratt
// (precedence-climbing) expression parsing for nyx source text. It
// converts a token stream from lexer into the typed ast tree.
package parser

import (
	"fmt"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/lexer"
)

// Parser holds parsing state: the lexer, a one-token lookahead, and the
// current/next token pair needed for Pratt parsing. Unlike the teacher
// parser, which collects every error and keeps going, this parser stops
// at the first syntax error and returns it — matching the single fatal
// "Error at line:col: message" contract used throughout the toolchain.
type Parser struct {
	lex    *lexer.Lexer
	cur    lexer.Token
	peek   lexer.Token
}

// New creates a Parser positioned at the start of src's token stream.
func New(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *Parser) pos() ast.Pos { return ast.Pos{Line: p.cur.Line, Col: p.cur.Col} }

func (p *Parser) errf(format string, args ...interface{}) error {
	return fmt.Errorf("Error at %d:%d: %s", p.cur.Line, p.cur.Col, fmt.Sprintf(format, args...))
}

// expect checks that cur matches t, advances past it, and errors otherwise.
func (p *Parser) expect(t lexer.Type) error {
	if p.cur.Type != t {
		return p.errf("expected %s, got %s", t, p.cur.Type)
	}
	return p.advance()
}

// ParseProgram parses an entire source file into a top-level Block. It
// is the single entry point the resolver uses for the main file and for
// every imported module it inlines; cmd/nyx and cmd/nyxc reach it
// through the resolver.
func ParseProgram(src string) (*ast.Block, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	return p.parseBlockUntil(lexer.EOF)
}

// parseBlockUntil parses statements until cur.Type == end (end is NOT
// consumed; callers that need a closing brace call expect themselves).
func (p *Parser) parseBlockUntil(end lexer.Type) (*ast.Block, error) {
	block := &ast.Block{}
	for p.cur.Type != end {
		if p.cur.Type == lexer.EOF {
			return nil, p.errf("unexpected end of input, expected %s", end)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

// parseBraceBlock parses `{ stmt* }`, consuming both braces.
func (p *Parser) parseBraceBlock() (*ast.Block, error) {
	if err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	block, err := p.parseBlockUntil(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}
