package parser

import (
	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/token"
)

// parseModule parses an entire file as a flat top-level block terminated by
// EOF. It recovers from the sentinel panic raised by expect/error, turning
// it into a nil return: the parser never attempts to resynchronize and
// continue after the first error (SPEC_FULL §4.2).
func (p *parser) parseModule() (mod *ast.Module) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errParse); ok {
				mod = nil
				return
			}
			panic(r)
		}
	}()

	start := p.val.Pos
	stmts := p.parseStmtsUntil(token.EOF)
	eofPos := p.val.Pos
	return &ast.Module{Block: newBlock(start, eofPos, stmts), EOF: eofPos}
}

// newBlock stably partitions stmts so that declarations (FunDecl, Struct)
// precede other statements while each partition keeps source order, and
// records the split point as DeclCount.
func newBlock(start, end token.Pos, stmts []ast.Stmt) *ast.Block {
	decls := make([]ast.Stmt, 0, len(stmts))
	rest := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if s.Decl() {
			decls = append(decls, s)
		} else {
			rest = append(rest, s)
		}
	}
	ordered := append(decls, rest...)
	return &ast.Block{Start: start, End: end, Stmts: ordered, DeclCount: len(decls)}
}

func (p *parser) parseStmtsUntil(end token.Token) []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != end && p.tok != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	return stmts
}

// parseBlock parses a "{ stmt* }" block.
func (p *parser) parseBlock() *ast.Block {
	start := p.expect(token.LBRACE)
	stmts := p.parseStmtsUntil(token.RBRACE)
	end := p.expect(token.RBRACE)
	return newBlock(start, end, stmts)
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FUN:
		return p.parseFunDecl()
	case token.STRUCT:
		return p.parseStruct()
	case token.RETURN:
		return p.parseReturn()
	case token.IDENT:
		return p.parseIdentStmt()
	default:
		if p.tok.IsBinOp() {
			p.error(p.val.Pos, "unexpected "+p.tok.GoString()+" at start of statement")
		}
		x := p.parseExpr()
		return &ast.ExprStmt{X: x}
	}
}

// parseIdentStmt disambiguates "name := expr" (VarDecl), "name = expr"
// (Assign) and a bare expression statement starting with an identifier
// (e.g. a call "f(x)") with one token of lookahead.
func (p *parser) parseIdentStmt() ast.Stmt {
	namePos, name, id := p.val.Pos, p.val.Raw, p.val.ID
	save := *p
	p.advance()

	switch p.tok {
	case token.COLONEQ:
		colonEq := p.val.Pos
		p.advance()
		right := p.parseExpr()
		return &ast.VarDecl{Left: &ast.Identifier{NamePos: namePos, Name: name, ID: id}, ColonEq: colonEq, Right: right}
	case token.EQ:
		eq := p.val.Pos
		p.advance()
		right := p.parseExpr()
		return &ast.Assign{Left: &ast.Identifier{NamePos: namePos, Name: name, ID: id}, Eq: eq, Right: right}
	default:
		*p = save
		x := p.parseExpr()
		return &ast.ExprStmt{X: x}
	}
}

// parseCondAndBody parses a condition in "body-follows" mode (suppressing
// "{" as a struct-init suffix so "if x {" parses as the block, not "x{}"),
// then the then-form body: "then stmt" for a single statement, or a "{...}"
// block if "then" is absent. The reported thenForm flag lets the caller
// parse an "else" branch the same way, since a second "then" never
// reappears before it.
func (p *parser) parseCondAndBody() (cond ast.Expr, body ast.Stmt, thenForm bool) {
	p.noInit = true
	cond = p.parseExpr()
	p.noInit = false

	if p.tok == token.THEN {
		p.advance()
		return cond, p.parseStmt(), true
	}
	return cond, p.parseBlock(), false
}

func (p *parser) parseIf() ast.Stmt {
	ifPos := p.expect(token.IF)
	cond, then, thenForm := p.parseCondAndBody()

	n := &ast.If{IfPos: ifPos, Cond: cond, Then: then}
	if p.tok == token.ELSE {
		p.advance()
		switch {
		case p.tok == token.IF:
			n.Else = p.parseIf()
		case thenForm:
			n.Else = p.parseStmt()
		default:
			n.Else = p.parseBlock()
		}
	}
	return n
}

func (p *parser) parseWhile() ast.Stmt {
	whilePos := p.expect(token.WHILE)
	cond, body, _ := p.parseCondAndBody()
	return &ast.While{WhilePos: whilePos, Cond: cond, Body: body}
}

func (p *parser) parseReturn() ast.Stmt {
	returnPos := p.expect(token.RETURN)
	n := &ast.Return{ReturnPos: returnPos}
	if p.tok != token.RBRACE && p.tok != token.EOF {
		n.X = p.parseExpr()
	}
	return n
}

// parseType parses a type name: a builtin scalar (int, real, str, bool) or
// a struct name, both lexed as a plain identifier.
func (p *parser) parseType() *ast.Type {
	namePos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)
	return &ast.Type{NamePos: namePos, Name: name}
}

func (p *parser) parseFunDecl() ast.Stmt {
	fun := p.expect(token.FUN)
	namePos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)

	lparen := p.expect(token.LPAREN)
	var params []*ast.FunParam
	for p.tok != token.RPAREN {
		pNamePos := p.val.Pos
		pName := p.val.Raw
		p.expect(token.IDENT)
		colon := p.expect(token.COLON)
		typ := p.parseType()
		params = append(params, &ast.FunParam{Name: pName, NamePos: pNamePos, Colon: colon, Type: typ})
		if p.tok != token.COMMA {
			break
		}
		p.advance()
	}
	rparen := p.expect(token.RPAREN)

	var retType *ast.Type
	if p.tok == token.IDENT {
		retType = p.parseType()
	}

	body := &ast.FunBody{Block: p.parseBlock()}
	return &ast.FunDecl{
		Fun: fun, Name: name, NamePos: namePos,
		Lparen: lparen, Params: params, Rparen: rparen,
		ReturnType: retType, Body: body,
	}
}

func (p *parser) parseStruct() ast.Stmt {
	structPos := p.expect(token.STRUCT)
	namePos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)
	lbrace := p.expect(token.LBRACE)

	var fields []*ast.StructField
	for p.tok != token.RBRACE {
		fNamePos := p.val.Pos
		fName := p.val.Raw
		p.expect(token.IDENT)
		colon := p.expect(token.COLON)
		typ := p.parseType()

		fld := &ast.StructField{Name: fName, NamePos: fNamePos, Colon: colon, Type: typ, Slot: len(fields)}
		if p.tok == token.EQ {
			fld.Eq = p.val.Pos
			p.advance()
			fld.Default = p.parseExpr()
		}
		fields = append(fields, fld)
		// The comma between fields is optional (spec.md §8 scenario 6's
		// `struct Foo { a: int b: int }` has none): consume one if present,
		// otherwise let the loop condition decide whether another field
		// follows.
		if p.tok == token.COMMA {
			p.advance()
		}
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.Struct{StructPos: structPos, Name: name, NamePos: namePos, Lbrace: lbrace, Fields: fields, Rbrace: rbrace}
}
