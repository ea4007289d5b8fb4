package ast_test

import (
	"bytes"
	"testing"

	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/token"
	"github.com/stretchr/testify/require"
)

func ident(name string, pos token.Pos) *ast.Identifier {
	return &ast.Identifier{Name: name, NamePos: pos}
}

func TestBlockSpan(t *testing.T) {
	b := &ast.Block{
		Start: 1,
		End:   10,
		Stmts: []ast.Stmt{
			&ast.VarDecl{Left: ident("x", 2), ColonEq: 4, Right: &ast.Literal{Kind: token.INT, Pos: 7, Raw: "1"}},
		},
	}
	start, end := b.Span()
	require.Equal(t, token.Pos(1), start)
	require.Equal(t, token.Pos(10), end)
}

func TestWalkVisitsAllChildren(t *testing.T) {
	module := &ast.Module{
		Block: &ast.Block{
			Start: 1,
			End:   20,
			Stmts: []ast.Stmt{
				&ast.VarDecl{Left: ident("x", 2), Right: &ast.Literal{Kind: token.INT, Pos: 7, Raw: "1"}},
				&ast.Assign{Left: ident("x", 10), Right: &ast.Binary{
					Left:  ident("x", 12),
					Op:    token.PLUS,
					Right: &ast.Literal{Kind: token.INT, Pos: 16, Raw: "1"},
				}},
			},
		},
		EOF: 20,
	}

	var kinds []string
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			kinds = append(kinds, nodeKind(n))
		}
		return v
	}
	ast.Walk(v, module)

	require.Equal(t, []string{
		"module", "block",
		"vardecl", "ident", "literal",
		"assign", "ident", "binary", "ident", "literal",
	}, kinds)
}

func nodeKind(n ast.Node) string {
	switch n.(type) {
	case *ast.Module:
		return "module"
	case *ast.Block:
		return "block"
	case *ast.VarDecl:
		return "vardecl"
	case *ast.Assign:
		return "assign"
	case *ast.Binary:
		return "binary"
	case *ast.Identifier:
		return "ident"
	case *ast.Literal:
		return "literal"
	default:
		return "other"
	}
}

func TestPrinter(t *testing.T) {
	module := &ast.Module{
		Block: &ast.Block{
			Start: 1,
			End:   10,
			Stmts: []ast.Stmt{
				&ast.VarDecl{Left: ident("x", 2), Right: &ast.Literal{Kind: token.INT, Pos: 7, Raw: "1"}},
			},
		},
		EOF: 10,
	}

	var buf bytes.Buffer
	p := ast.Printer{Output: &buf, Pos: token.PosNone}
	require.NoError(t, p.Print(module, nil))
	require.Contains(t, buf.String(), "module")
	require.Contains(t, buf.String(), "var decl x")
}

func TestIfSpanIncludesElse(t *testing.T) {
	thenBlock := &ast.Block{Start: 5, End: 8}
	elseBlock := &ast.Block{Start: 10, End: 15}
	ifStmt := &ast.If{
		IfPos: 1,
		Cond:  ident("c", 3),
		Then:  thenBlock,
		Else:  elseBlock,
	}
	_, end := ifStmt.Span()
	require.Equal(t, token.Pos(15), end)
}

func TestDeclPartitioning(t *testing.T) {
	fd := &ast.FunDecl{Name: "f", Body: &ast.FunBody{Block: &ast.Block{}}}
	s := &ast.Struct{Name: "S"}
	a := &ast.Assign{Left: ident("x", 1), Right: &ast.Literal{Kind: token.INT, Raw: "1"}}

	require.True(t, fd.Decl())
	require.True(t, s.Decl())
	require.False(t, a.Decl())
}
