package token

import "github.com/nox-lang/nox/lang/intern"

// Value carries the per-occurrence data attached to a scanned Token: its
// source position, its exact source text, and, for IDENT/INT/FLOAT/STRING,
// the ID of its payload in the shared intern.Pool. Numbers are interned as
// their textual form; parsing to a numeric value happens later, in the
// checker.
type Value struct {
	Pos Pos
	Raw string
	ID  intern.ID
}
