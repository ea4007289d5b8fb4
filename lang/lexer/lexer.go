// Package lexer tokenizes nox source files into a token.FileSet-backed
// stream of token.Token/token.Value pairs, interning every literal payload
// into a shared lang/intern.Pool as it goes.
package lexer

import (
	"context"
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/nox-lang/nox/lang/intern"
	"github.com/nox-lang/nox/lang/token"
	"github.com/nox-lang/nox/utf8x"
)

type (
	// Error is a single lexical (or, reused downstream, syntax) error.
	Error = token.Error
	// ErrorList aggregates Errors in source-position order.
	ErrorList = token.ErrorList
)

// PrintError writes err, or every error in an ErrorList, to w.
var PrintError = token.PrintError

// TokenAndValue pairs a scanned Token with its Value.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles tokenizes every named file, returning the FileSet they were
// registered in, their tokens (one slice per input file, same order), the
// intern pool every literal payload was interned into, and the first error
// encountered, if any. On error the returned tokens are nil: there are no
// partial results.
func ScanFiles(ctx context.Context, files ...string) (*token.FileSet, [][]TokenAndValue, *intern.Pool, error) {
	if len(files) == 0 {
		return nil, nil, nil, nil
	}

	var (
		l      Lexer
		tokVal token.Value
		el     ErrorList
	)

	fset := token.NewFileSet()
	pool := intern.NewPool(256)
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}

		b, err := os.ReadFile(name)
		if err != nil {
			el.Add(token.Position{Filename: name}, err.Error())
			continue
		}

		f := fset.AddFile(name, -1, len(b))
		l.Init(f, b, pool, el.Add)
		for {
			tok := l.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{Token: tok, Value: tokVal})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	if err := el.Err(); err != nil {
		return nil, nil, nil, err
	}
	return fset, tokensByFile, pool, nil
}

// Lexer tokenizes a single source file.
type Lexer struct {
	file *token.File
	src  []byte
	pool *intern.Pool
	err  func(pos token.Position, msg string)

	commentDepth int // nesting depth while inside a /* */ block comment
	commentStart int // byte offset of the outermost /*

	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset right after cur
}

// Init (re)initializes the lexer to scan src, the full contents of file.
// It panics if the sizes disagree.
func (l *Lexer) Init(file *token.File, src []byte, pool *intern.Pool, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("lexer: file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}

	l.file = file
	l.src = src
	l.pool = pool
	l.err = errHandler
	l.commentDepth = 0
	l.commentStart = 0
	l.cur = ' '
	l.off = 0
	l.roff = 0
	l.advance()
}

func (l *Lexer) peek() byte {
	if l.roff < len(l.src) {
		return l.src[l.roff]
	}
	return 0
}

func (l *Lexer) advance() {
	if l.roff >= len(l.src) {
		l.off = len(l.src)
		if l.cur == '\n' {
			l.file.AddLine(l.off)
		}
		l.cur = -1
		return
	}

	l.off = l.roff
	if l.cur == '\n' {
		l.file.AddLine(l.off)
	}

	r, w := rune(l.src[l.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(l.src[l.roff:])
		if r == utf8.RuneError && w == 1 {
			l.errorWidth(l.off, 1, "illegal UTF-8 encoding")
		}
	}
	l.roff += w
	l.cur = r
}

func (l *Lexer) error(off int, msg string) {
	l.errorWidth(off, 1, msg)
}

// errorWidth reports an error at off, carrying width (the multi_byte_count
// of the offending sequence) so callers building a carat excerpt know how
// many bytes to underline. The diagnostic text itself does not repeat the
// width; width is conveyed structurally by pointing at Position(off) and
// letting the caller re-derive the lexeme length from the source.
func (l *Lexer) errorWidth(off, width int, msg string) {
	if l.err != nil {
		l.err(l.file.Position(l.file.Pos(off)), msg)
	}
}

func (l *Lexer) advanceIf(b byte) bool {
	if byte(l.cur) == b && l.cur >= 0 && l.cur < utf8.RuneSelf {
		l.advance()
		return true
	}
	return false
}

// Scan returns the next token, filling tokVal with its value.
func (l *Lexer) Scan(tokVal *token.Value) (tok token.Token) {
	l.skipWhitespaceAndComments()

	pos := l.file.Pos(l.off)
	start := l.off

	switch cur := l.cur; {
	case isLetter(cur):
		lit := l.ident()
		tok = token.IDENT
		if len(lit) > 1 {
			tok = token.LookupKw(lit)
		}
		*tokVal = token.Value{Raw: lit, Pos: pos}
		if tok == token.IDENT {
			tokVal.ID = l.pool.Intern(lit)
		}

	case isDecimal(cur) || (cur == '.' && isDecimal(rune(l.peek()))):
		tok, lit := l.number()
		*tokVal = token.Value{Raw: lit, Pos: pos, ID: l.pool.Intern(lit)}

	case cur == '"':
		lit := l.stringLit()
		*tokVal = token.Value{Raw: lit, Pos: pos, ID: l.pool.Intern(lit)}
		tok = token.STRING

	default:
		l.advance() // always make progress

		switch cur {
		case -1:
			tok = token.EOF
			*tokVal = token.Value{Pos: pos}

		case '+':
			tok = token.PLUS
		case '-':
			tok = token.MINUS
		case '*':
			tok = token.STAR
		case '/':
			tok = token.SLASH
		case '%':
			tok = token.PERCENT
		case '.':
			tok = token.DOT
		case '!':
			tok = token.BANG
			if l.advanceIf('=') {
				tok = token.NEQ
			}
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case ',':
			tok = token.COMMA
		case ':':
			tok = token.COLON
			if l.advanceIf('=') {
				tok = token.COLONEQ
			}
		case '=':
			tok = token.EQ
			if l.advanceIf('=') {
				tok = token.EQEQ
			}
		case '<':
			tok = token.LT
			if l.advanceIf('=') {
				tok = token.LE
			}
		case '>':
			tok = token.GT
			if l.advanceIf('=') {
				tok = token.GE
			}
		default:
			l.errorWidth(start, utf8x.RuneWidth(cur), fmt.Sprintf("illegal character %#U", cur))
			tok = token.ILLEGAL
		}
		if tok != token.EOF {
			*tokVal = token.Value{Raw: string(l.src[start:l.off]), Pos: pos}
		}
	}
	return tok
}

func (l *Lexer) ident() string {
	start := l.off
	for isLetter(l.cur) || isDigit(l.cur) {
		l.advance()
	}
	return string(l.src[start:l.off])
}

// number scans an integer or real literal: digits, optionally followed by
// '.' and more digits. There is no exponent form.
func (l *Lexer) number() (token.Token, string) {
	start := l.off
	tok := token.INT

	for isDecimal(l.cur) {
		l.advance()
	}
	if l.cur == '.' && isDecimal(rune(l.peek())) {
		tok = token.FLOAT
		l.advance() // '.'
		for isDecimal(l.cur) {
			l.advance()
		}
	}
	return tok, string(l.src[start:l.off])
}

// stringLit scans a double-quoted string literal. Escape sequences are
// preserved verbatim; they are not interpreted at lex time.
func (l *Lexer) stringLit() string {
	start := l.off
	l.advance() // opening '"'

	for {
		switch l.cur {
		case -1, '\n':
			l.error(start, "string literal not terminated")
			return string(l.src[start:l.off])
		case '"':
			l.advance()
			return string(l.src[start:l.off])
		case '\\':
			l.advance()
			if l.cur == -1 {
				l.error(start, "string literal not terminated")
				return string(l.src[start:l.off])
			}
			l.advance()
		default:
			l.advance()
		}
	}
}

// skipWhitespaceAndComments consumes whitespace, line comments, and
// balanced, nestable block comments. An unterminated block comment is
// reported at its outermost opening "/*".
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(l.cur):
			l.advance()
		case l.cur == '/' && l.peek() == '/':
			for l.cur != '\n' && l.cur != -1 {
				l.advance()
			}
		case l.cur == '/' && l.peek() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.off
	l.advance() // '/'
	l.advance() // '*'
	depth := 1
	for depth > 0 {
		switch {
		case l.cur == -1:
			l.error(start, "block comment not terminated")
			return
		case l.cur == '/' && l.peek() == '*':
			l.advance()
			l.advance()
			depth++
		case l.cur == '*' && l.peek() == '/':
			l.advance()
			l.advance()
			depth--
		default:
			l.advance()
		}
	}
}

func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' || r == '\n' }

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9' || r >= utf8.RuneSelf && unicode.IsDigit(r)
}

func isDecimal(r rune) bool { return '0' <= r && r <= '9' }
