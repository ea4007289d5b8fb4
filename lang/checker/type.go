package checker

import "fmt"

// Kind is the tag of a Type: one of nox's four built-in scalars, void (a
// function with no return type), or a user-declared struct.
type Kind uint8

const (
	Invalid Kind = iota
	Int
	Real
	Str
	Bool
	Void
	Func
	StructKind
)

var kindNames = [...]string{
	Invalid:    "invalid",
	Int:        "int",
	Real:       "real",
	Str:        "str",
	Bool:       "bool",
	Void:       "void",
	Func:       "function",
	StructKind: "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Type is a nox value type: a built-in scalar, void, a function marker (used
// only to tag a Binding; call-checking goes through the Funcs signature
// table, not Type), or a named struct.
type Type struct {
	Kind Kind
	Name string // struct name, set only when Kind == StructKind
}

var (
	IntType  = Type{Kind: Int}
	RealType = Type{Kind: Real}
	StrType  = Type{Kind: Str}
	BoolType = Type{Kind: Bool}
	VoidType = Type{Kind: Void}
	FuncType = Type{Kind: Func}
)

// StructType returns the Type for the struct named name.
func StructType(name string) Type { return Type{Kind: StructKind, Name: name} }

func (t Type) String() string {
	if t.Kind == StructKind {
		return t.Name
	}
	return t.Kind.String()
}

func (t Type) numeric() bool { return t.Kind == Int || t.Kind == Real }

func sameType(a, b Type) bool { return a.Kind == b.Kind && a.Name == b.Name }
