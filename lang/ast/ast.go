// Package ast defines the abstract syntax tree of nox: a closed family of
// tagged node variants produced by the parser and consumed by the checker,
// code generator and diagnostic printer. Traversal is via the Visitor
// pattern in visitor.go; nothing outside this package implements Node.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nox-lang/nox/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself; the only supported verbs are 'v' and 's'. The '#' flag adds
	// child-count information. A width pads or truncates the description,
	// left-padded by default, right-padded with '-', unpadded with '+'.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each child node inside itself, implementing the Visitor
	// pattern's traversal half.
	Walk(v Visitor)
}

// Expr represents an expression node: Literal, Identifier, Unary, Binary,
// Call, Access or Init.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement node: ExprStmt, Assign, VarDecl, Block,
// FunParam, FunDecl, Return, If, While, InitArg, StructField or Struct.
type Stmt interface {
	Node

	// Decl reports whether this statement is a declaration (FunDecl or
	// Struct). Declarations are sorted to the front of their enclosing
	// Block so that forward references resolve without multiple passes.
	Decl() bool
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		switch {
		case len(runes) >= w:
			runes = runes[:w]
		case minus:
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		case !plus:
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
