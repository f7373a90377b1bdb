package parser

import (
	"github.com/kod-kristoff/lci/pkg/ast"
	"github.com/kod-kristoff/lci/pkg/lexer"
)

// binaryOps maps binary operator keywords to operation kinds
var binaryOps = map[lexer.TokenType]ast.OpKind{
	lexer.TokenSumOf:      ast.OpAdd,
	lexer.TokenDiffOf:     ast.OpSub,
	lexer.TokenProduktOf:  ast.OpMult,
	lexer.TokenQuoshuntOf: ast.OpDiv,
	lexer.TokenModOf:      ast.OpMod,
	lexer.TokenBiggrOf:    ast.OpMax,
	lexer.TokenSmallrOf:   ast.OpMin,
	lexer.TokenBothOf:     ast.OpAnd,
	lexer.TokenEitherOf:   ast.OpOr,
	lexer.TokenWonOf:      ast.OpXor,
	lexer.TokenBothSaem:   ast.OpEq,
	lexer.TokenDiffrint:   ast.OpNeq,
}

// parseExpr parses an expression. Expressions are prefix in surface
// syntax, so the first token decides the form.
func (p *Parser) parseExpr() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenInteger, lexer.TokenFloat, lexer.TokenBoolean, lexer.TokenString:
		return p.parseConstant()
	case lexer.TokenIt:
		p.next()
		return ast.ImplicitVar{}, nil
	case lexer.TokenMaek:
		return p.parseCastExpr()
	case lexer.TokenNot:
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.Op{Kind: ast.OpNot, Args: []ast.Expr{arg}}, nil
	case lexer.TokenSmoosh:
		return p.parseNaryOp(ast.OpCat)
	case lexer.TokenAllOf:
		return p.parseNaryOp(ast.OpAnd)
	case lexer.TokenAnyOf:
		return p.parseNaryOp(ast.OpOr)
	case lexer.TokenIdent:
		if p.peekNext(lexer.TokenIz) {
			return p.parseFuncCall()
		}
		return p.parseIdentifier()
	}
	if kind, ok := binaryOps[tok.Type]; ok {
		return p.parseBinaryOp(kind)
	}
	return nil, p.unexpected("expected expression")
}

func (p *Parser) parseConstant() (ast.Expr, error) {
	tok := p.cur()
	p.next()
	switch tok.Type {
	case lexer.TokenInteger:
		return ast.Constant{Kind: ast.ConstInteger, Int: tok.Int}, nil
	case lexer.TokenFloat:
		return ast.Constant{Kind: ast.ConstFloat, Float: tok.Float}, nil
	case lexer.TokenBoolean:
		return ast.Constant{Kind: ast.ConstBoolean, Bool: tok.Bool}, nil
	default:
		return ast.Constant{Kind: ast.ConstString, Str: tok.Str}, nil
	}
}

func (p *Parser) parseIdentifier() (ast.Identifier, error) {
	tok := p.cur()
	if !p.accept(lexer.TokenIdent) {
		return ast.Identifier{}, p.unexpected("expected identifier")
	}
	return ast.Identifier{Image: tok.Literal, File: tok.File, Line: tok.Line}, nil
}

func (p *Parser) parseType() (ast.Type, error) {
	var t ast.Type
	switch p.cur().Type {
	case lexer.TokenNoob:
		t = ast.TypeNoob
	case lexer.TokenTroof:
		t = ast.TypeTroof
	case lexer.TokenNumbr:
		t = ast.TypeNumbr
	case lexer.TokenNumbar:
		t = ast.TypeNumbar
	case lexer.TokenYarn:
		t = ast.TypeYarn
	default:
		return 0, p.unexpected("expected type")
	}
	p.next()
	return t, nil
}

func (p *Parser) parseCastExpr() (ast.Expr, error) {
	p.next() // MAEK
	target, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenA); err != nil {
		return nil, err
	}
	newType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ast.Cast{Target: target, NewType: newType}, nil
}

func (p *Parser) parseBinaryOp(kind ast.OpKind) (ast.Expr, error) {
	p.next() // operator keyword
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.accept(lexer.TokenAn)
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.Op{Kind: kind, Args: []ast.Expr{left, right}}, nil
}

// parseNaryOp parses an MKAY-terminated operand list. AN separators are
// optional and never change arity. At least two operands are required.
func (p *Parser) parseNaryOp(kind ast.OpKind) (ast.Expr, error) {
	opTok := p.cur()
	p.next()
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args := []ast.Expr{first}
	for !p.peek(lexer.TokenMkay) {
		p.accept(lexer.TokenAn)
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	mkay := p.cur()
	p.next() // MKAY
	if len(args) < 2 {
		return nil, p.errorf(UnexpectedToken, mkay,
			"%s needs at least two operands", opTok.Type)
	}
	return ast.Op{Kind: kind, Args: args}, nil
}

// parseFuncCall parses "scope IZ name", an optional YR-led argument
// list, and the closing MKAY. The scanner folds "AN YR" into one token,
// so argument separators arrive as AN YR or a bare YR.
func (p *Parser) parseFuncCall() (ast.Expr, error) {
	scope, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenIz); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.accept(lexer.TokenYr) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.accept(lexer.TokenAnYr) || p.accept(lexer.TokenYr) {
			if arg, err = p.parseExpr(); err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if err := p.expect(lexer.TokenMkay); err != nil {
		return nil, err
	}
	return ast.FuncCall{Scope: scope, Name: name, Args: args}, nil
}
