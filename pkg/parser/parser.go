// Package parser implements a recursive descent parser for LOLCODE
package parser

import (
	"fmt"

	"github.com/kod-kristoff/lci/pkg/ast"
	"github.com/kod-kristoff/lci/pkg/lexer"
)

// ErrorKind classifies parse errors
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	MismatchedLoopName
	InvalidDeclaration
	MissingCase
)

func (k ErrorKind) String() string {
	names := []string{
		"unexpected token", "unexpected end of file", "mismatched loop name",
		"invalid declaration", "missing case",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown error"
}

// ParseError is a located parse error. The first error aborts the parse
// and no partial tree is returned.
type ParseError struct {
	Kind ErrorKind
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

type funcKey struct {
	scope string
	name  string
}

// Parser parses a token sequence into a LOLCODE AST. The token
// sequence must be EOF-terminated, as produced by lexer.Tokenize.
type Parser struct {
	tokens []lexer.Token
	pos    int

	// functions declared so far, registered when a HOW IZ header has
	// been parsed; consulted to recognize unary functions at the
	// loop-update position
	funcs      map[funcKey]int
	unaryScope map[string]string
}

// New creates a new Parser for the given token sequence
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:     tokens,
		funcs:      make(map[funcKey]int),
		unaryScope: make(map[string]string),
	}
}

// Parse parses a token sequence into a program root
func Parse(tokens []lexer.Token) (*ast.Main, error) {
	return New(tokens).parseMain()
}

func (p *Parser) cur() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if n := len(p.tokens); n > 0 {
		return p.tokens[n-1]
	}
	return lexer.Token{Type: lexer.TokenEOF, Line: 1}
}

func (p *Parser) next() {
	if p.pos < len(p.tokens) && p.tokens[p.pos].Type != lexer.TokenEOF {
		p.pos++
	}
}

func (p *Parser) peek(t lexer.TokenType) bool {
	return p.cur().Type == t
}

// peekNext looks one token past the current one. The grammar needs this
// second slot after the identifier opening a statement and after an
// identifier in an expression, where IZ marks a function call.
func (p *Parser) peekNext(t lexer.TokenType) bool {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1].Type == t
	}
	return t == lexer.TokenEOF
}

func (p *Parser) accept(t lexer.TokenType) bool {
	if p.peek(t) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(t lexer.TokenType) error {
	if p.accept(t) {
		return nil
	}
	return p.unexpected(fmt.Sprintf("expected %s", t))
}

func (p *Parser) errorf(kind ErrorKind, tok lexer.Token, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, File: tok.File, Line: tok.Line, Msg: fmt.Sprintf(format, args...)}
}

// unexpected builds an error located at the current token. A premature
// end of stream reports UnexpectedEOF instead of UnexpectedToken.
func (p *Parser) unexpected(want string) *ParseError {
	tok := p.cur()
	kind := UnexpectedToken
	if tok.Type == lexer.TokenEOF {
		kind = UnexpectedEOF
	}
	return p.errorf(kind, tok, "%s, got %s", want, tok.Type)
}

// declareFunc registers a parsed function header. The first unary
// function under a given name wins for loop-update recognition.
func (p *Parser) declareFunc(scope, name ast.Identifier, arity int) {
	p.funcs[funcKey{scope: scope.Image, name: name.Image}] = arity
	if arity == 1 {
		if _, ok := p.unaryScope[name.Image]; !ok {
			p.unaryScope[name.Image] = scope.Image
		}
	}
}

// unaryFunc reports whether image names a declared unary function and
// returns the scope it was declared in.
func (p *Parser) unaryFunc(image string) (string, bool) {
	scope, ok := p.unaryScope[image]
	return scope, ok
}
