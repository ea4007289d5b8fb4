package parser

import (
	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/token"
)

// prec is a binding power level in nox's expression grammar: None, Or, And,
// Equality, Comparison, Term, Factor, Unary, Call, Primary. Assignment sits
// above None in the full precedence table but is never reached from
// parseExpr: "=" only appears at statement level (ast.Assign), never as a
// sub-expression operator.
type prec int

const (
	precNone prec = iota
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
)

// binPrec returns the binding power of tok as a binary operator, or
// precNone if tok never appears infix.
func binPrec(tok token.Token) prec {
	switch {
	case tok == token.OR:
		return precOr
	case tok == token.AND:
		return precAnd
	case tok == token.EQEQ || tok == token.NEQ:
		return precEquality
	case tok.IsCompareOp():
		return precComparison
	case tok == token.PLUS || tok == token.MINUS:
		return precTerm
	case tok == token.STAR || tok == token.SLASH || tok == token.PERCENT:
		return precFactor
	default:
		return precNone
	}
}

// parseExpr parses a full expression, the entry point used everywhere an
// Expr is expected (initializers, call arguments, return values, etc).
func (p *parser) parseExpr() ast.Expr {
	return p.parseBinExpr(precOr)
}

// parseBinExpr implements precedence climbing: it parses a unary expression,
// then repeatedly folds in infix operators whose binding power is at least
// minPrec, recursing at prec+1 to keep every binary operator left
// associative.
func (p *parser) parseBinExpr(minPrec prec) ast.Expr {
	left := p.parseUnaryExpr()

	for {
		opPrec := binPrec(p.tok)
		if opPrec == precNone || opPrec < minPrec {
			return left
		}
		opPos, op := p.val.Pos, p.tok
		p.advance()
		right := p.parseBinExpr(opPrec + 1)
		left = &ast.Binary{Left: left, OpPos: opPos, Op: op, Right: right}
	}
}

func (p *parser) parseUnaryExpr() ast.Expr {
	if p.tok.IsUnaryOp() {
		opPos, op := p.val.Pos, p.tok
		p.advance()
		x := p.parseUnaryExpr()
		return &ast.Unary{OpPos: opPos, Op: op, X: x}
	}
	return p.parseCallExpr()
}

// parseCallExpr parses a primary expression followed by any number of call,
// field-access or struct-init suffixes, e.g. f(1).g{x = 2}.h.
func (p *parser) parseCallExpr() ast.Expr {
	x := p.parsePrimaryExpr()

	for {
		switch {
		case p.tok == token.LPAREN:
			x = p.parseCallSuffix(x)
		case p.tok == token.DOT:
			dot := p.expect(token.DOT)
			namePos := p.val.Pos
			name := p.val.Raw
			p.expect(token.IDENT)
			x = &ast.Access{X: x, Dot: dot, Name: name, NamePos: namePos}
		case p.tok == token.LBRACE && !p.noInit:
			ident, ok := x.(*ast.Identifier)
			if !ok {
				return x
			}
			x = p.parseInitSuffix(ident)
		default:
			return x
		}
	}
}

func (p *parser) parseCallSuffix(fun ast.Expr) ast.Expr {
	lparen := p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok != token.RPAREN {
		args = append(args, p.parseExpr())
		if p.tok != token.COMMA {
			break
		}
		p.advance()
	}
	rparen := p.expect(token.RPAREN)
	return &ast.Call{Fun: fun, Lparen: lparen, Args: args, Rparen: rparen}
}

func (p *parser) parseInitSuffix(ident *ast.Identifier) ast.Expr {
	typ := &ast.Type{NamePos: ident.NamePos, Name: ident.Name}
	lbrace := p.expect(token.LBRACE)
	var args []*ast.InitArg
	for p.tok != token.RBRACE {
		args = append(args, p.parseInitArg())
		// Optional comma, same as parseStruct's field list (spec.md §8
		// scenario 6's `Foo { a = 35 b = 34 }` has none between args).
		if p.tok == token.COMMA {
			p.advance()
		}
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.Init{Type: typ, Lbrace: lbrace, Args: args, Rbrace: rbrace}
}

// parseInitArg parses "name = expr" (named) or a bare "expr" (positional).
// Disambiguated with one token of lookahead: IDENT immediately followed by
// "=" is named, anything else is parsed as a plain expression.
func (p *parser) parseInitArg() *ast.InitArg {
	if p.tok == token.IDENT {
		name, namePos := p.val.Raw, p.val.Pos
		save := *p
		p.advance()
		if p.tok == token.EQ {
			eq := p.val.Pos
			p.advance()
			val := p.parseExpr()
			return &ast.InitArg{Name: name, NamePos: namePos, Eq: eq, Value: val}
		}
		*p = save
	}
	val := p.parseExpr()
	return &ast.InitArg{Value: val}
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch {
	case p.tok == token.INT || p.tok == token.FLOAT || p.tok == token.STRING ||
		p.tok == token.TRUE || p.tok == token.FALSE:
		lit := &ast.Literal{Kind: p.tok, Pos: p.val.Pos, ID: p.val.ID, Raw: p.val.Raw}
		p.advance()
		return lit

	case p.tok == token.IDENT:
		ident := &ast.Identifier{NamePos: p.val.Pos, Name: p.val.Raw, ID: p.val.ID}
		p.advance()
		return ident

	case p.tok == token.LPAREN:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x

	default:
		p.errorExpected(p.val.Pos, "expression")
		panic(errParse{}) // unreachable, errorExpected always panics
	}
}
