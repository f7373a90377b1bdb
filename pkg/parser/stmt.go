package parser

import (
	"github.com/kod-kristoff/lci/pkg/ast"
	"github.com/kod-kristoff/lci/pkg/lexer"
)

// parseMain parses the whole program: the HAI greeting with its version
// number, the top-level block, and the closing KTHXBYE.
func (p *Parser) parseMain() (*ast.Main, error) {
	if err := p.expect(lexer.TokenHai); err != nil {
		return nil, err
	}
	version := p.cur()
	if !p.accept(lexer.TokenFloat) {
		return nil, p.unexpected("expected version number")
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenKthxbye); err != nil {
		return nil, err
	}
	for p.accept(lexer.TokenNewline) {
	}
	if err := p.expect(lexer.TokenEOF); err != nil {
		return nil, err
	}
	return &ast.Main{Version: version.Float, Block: block}, nil
}

// atBlockEnd reports whether the current token closes a block. Any
// other token begins another statement.
func (p *Parser) atBlockEnd() bool {
	switch p.cur().Type {
	case lexer.TokenKthxbye, lexer.TokenOic, lexer.TokenYarly,
		lexer.TokenNowai, lexer.TokenMebbe, lexer.TokenOmg,
		lexer.TokenOmgwtf, lexer.TokenImOuttaYr, lexer.TokenIfUSaySo,
		lexer.TokenEOF:
		return true
	}
	return false
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	block := &ast.Block{}
	for !p.atBlockEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Type {
	case lexer.TokenVisible:
		return p.parsePrintStmt()
	case lexer.TokenGimmeh:
		return p.parseInputStmt()
	case lexer.TokenOrly:
		return p.parseIfStmt()
	case lexer.TokenWtf:
		return p.parseSwitchStmt()
	case lexer.TokenGtfo:
		return p.parseBreakStmt()
	case lexer.TokenFoundYr:
		return p.parseReturnStmt()
	case lexer.TokenImInYr:
		return p.parseLoopStmt()
	case lexer.TokenHowIz:
		return p.parseFuncDefStmt()
	case lexer.TokenIdent:
		// the keyword after the identifier decides the statement form
		switch {
		case p.peekNext(lexer.TokenIsNowA):
			return p.parseCastStmt()
		case p.peekNext(lexer.TokenR):
			return p.parseAssignStmt()
		case p.peekNext(lexer.TokenHasA):
			return p.parseDeclStmt()
		case p.peekNext(lexer.TokenRNoob):
			return p.parseDeallocStmt()
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) parseCastStmt() (ast.Stmt, error) {
	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenIsNowA); err != nil {
		return nil, err
	}
	newType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.CastStmt{Target: target, NewType: newType}, nil
}

func (p *Parser) parsePrintStmt() (ast.Stmt, error) {
	p.next() // VISIBLE
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args := []ast.Expr{first}
	for !p.peek(lexer.TokenBang) && !p.peek(lexer.TokenNewline) && !p.peek(lexer.TokenEOF) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	noNewline := p.accept(lexer.TokenBang)
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.PrintStmt{Args: args, NoNewline: noNewline}, nil
}

func (p *Parser) parseInputStmt() (ast.Stmt, error) {
	p.next() // GIMMEH
	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.InputStmt{Target: target}, nil
}

func (p *Parser) parseAssignStmt() (ast.Stmt, error) {
	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenR); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.AssignStmt{Target: target, Expr: expr}, nil
}

// parseDeclStmt parses "scope HAS A target", optionally followed by
// ITZ expr or ITZ A type. Supplying both is rejected.
func (p *Parser) parseDeclStmt() (ast.Stmt, error) {
	scope, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenHasA); err != nil {
		return nil, err
	}
	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	var declType *ast.Type
	if p.accept(lexer.TokenItz) {
		if init, err = p.parseExpr(); err != nil {
			return nil, err
		}
	} else if p.accept(lexer.TokenItzA) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		declType = &t
	}
	if p.peek(lexer.TokenItz) || p.peek(lexer.TokenItzA) {
		return nil, p.errorf(InvalidDeclaration, p.cur(),
			"declaration of %s has both an initial value and a declared type", target.Image)
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.DeclStmt{Scope: scope, Target: target, Init: init, DeclType: declType}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	p.next() // O RLY?
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenYarly); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	yes, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var guards []ast.Expr
	var blocks []*ast.Block
	for p.accept(lexer.TokenMebbe) {
		guard, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TokenNewline); err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		guards = append(guards, guard)
		blocks = append(blocks, block)
	}
	var no *ast.Block
	if p.accept(lexer.TokenNowai) {
		if err := p.expect(lexer.TokenNewline); err != nil {
			return nil, err
		}
		if no, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.TokenOic); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.IfStmt{Yes: yes, No: no, Guards: guards, Blocks: blocks}, nil
}

func (p *Parser) parseSwitchStmt() (ast.Stmt, error) {
	p.next() // WTF?
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	if !p.peek(lexer.TokenOmg) {
		return nil, p.errorf(MissingCase, p.cur(), "WTF? switch has no OMG cases")
	}
	var guards []ast.Expr
	var blocks []*ast.Block
	for p.accept(lexer.TokenOmg) {
		guard, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TokenNewline); err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		guards = append(guards, guard)
		blocks = append(blocks, block)
	}
	var def *ast.Block
	if p.accept(lexer.TokenOmgwtf) {
		if err := p.expect(lexer.TokenNewline); err != nil {
			return nil, err
		}
		var err error
		if def, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.TokenOic); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.SwitchStmt{Guards: guards, Blocks: blocks, Default: def}, nil
}

func (p *Parser) parseBreakStmt() (ast.Stmt, error) {
	p.next() // GTFO
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.BreakStmt{}, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	p.next() // FOUND YR
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.ReturnStmt{Value: value}, nil
}

func (p *Parser) parseLoopStmt() (ast.Stmt, error) {
	p.next() // IM IN YR
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	loop := ast.LoopStmt{Name: name}
	if err := p.parseLoopUpdate(&loop); err != nil {
		return nil, err
	}
	if p.accept(lexer.TokenTil) {
		loop.GuardKind = ast.GuardUntil
	} else if p.accept(lexer.TokenWile) {
		loop.GuardKind = ast.GuardWhile
	}
	if loop.GuardKind != ast.GuardNone {
		if loop.Guard, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	if loop.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenImOuttaYr); err != nil {
		return nil, err
	}
	closeTok := p.cur()
	closeName, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if closeName.Image != name.Image {
		return nil, p.errorf(MismatchedLoopName, closeTok,
			"loop %s closed with IM OUTTA YR %s", name.Image, closeName.Image)
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return loop, nil
}

// parseLoopUpdate recognizes an optional loop update: UPPIN, NERFIN, or
// the name of a previously declared unary function, each followed by
// "YR var". UPPIN and NERFIN desugar to SUM OF / DIFF OF the variable
// and one; a unary function becomes a call with the variable as its
// argument.
func (p *Parser) parseLoopUpdate(loop *ast.LoopStmt) error {
	opTok := p.cur()
	switch opTok.Type {
	case lexer.TokenUppin, lexer.TokenNerfin:
		p.next()
	case lexer.TokenIdent:
		if _, ok := p.unaryFunc(opTok.Literal); !ok {
			return nil
		}
		p.next()
	default:
		return nil
	}
	if err := p.expect(lexer.TokenYr); err != nil {
		return err
	}
	v, err := p.parseIdentifier()
	if err != nil {
		return err
	}
	loop.Var = &v
	switch opTok.Type {
	case lexer.TokenUppin:
		loop.Update = ast.Op{Kind: ast.OpAdd, Args: []ast.Expr{v, one()}}
	case lexer.TokenNerfin:
		loop.Update = ast.Op{Kind: ast.OpSub, Args: []ast.Expr{v, one()}}
	default:
		scope, _ := p.unaryFunc(opTok.Literal)
		loop.Update = ast.FuncCall{
			Scope: ast.Identifier{Image: scope, File: opTok.File, Line: opTok.Line},
			Name:  ast.Identifier{Image: opTok.Literal, File: opTok.File, Line: opTok.Line},
			Args:  []ast.Expr{v},
		}
	}
	return nil
}

func one() ast.Expr {
	return ast.Constant{Kind: ast.ConstInteger, Int: 1}
}

func (p *Parser) parseFuncDefStmt() (ast.Stmt, error) {
	p.next() // HOW IZ
	scope, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	var params []ast.Identifier
	if p.accept(lexer.TokenYr) {
		param, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		for p.accept(lexer.TokenAnYr) {
			if param, err = p.parseIdentifier(); err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}
	// the header is complete; the function is visible to loop updates
	// from here on, including inside its own body
	p.declareFunc(scope, name, len(params))
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenIfUSaySo); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.FuncDefStmt{Scope: scope, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseDeallocStmt() (ast.Stmt, error) {
	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenRNoob); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenNewline); err != nil {
		return nil, err
	}
	return ast.DeallocStmt{Target: target}, nil
}
