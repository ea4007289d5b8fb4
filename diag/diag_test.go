package diag_test

import (
	"strings"
	"testing"

	"github.com/nox-lang/nox/diag"
	"github.com/nox-lang/nox/lang/token"
	"github.com/nox-lang/nox/logger"
	"github.com/stretchr/testify/require"
)

func newFile(t *testing.T, src string) (*token.File, []byte) {
	t.Helper()
	fs := token.NewFileSet()
	f := fs.AddFile("test.nox", -1, len(src))
	for i, b := range []byte(src) {
		if b == '\n' {
			f.AddLine(i)
		}
	}
	return f, []byte(src)
}

func TestFormatSingleLineSpan(t *testing.T) {
	src := "x := 1 +\n"
	f, buf := newFile(t, src)

	start := f.Pos(9) // past end of line, same-line degenerate span for the test
	out := diag.Format(logger.LevelError, "parser", f, buf, f.Pos(5), start, "unexpected end of input")

	require.True(t, strings.HasPrefix(out, "[ERROR] (parser) "))
	require.Contains(t, out, "x := 1 +")
	require.Contains(t, out, "^")
}

func TestFormatMultiLineSpanHasContinuationBar(t *testing.T) {
	src := "a := {\n  x = 1\n  y = 2\n}\n"
	f, buf := newFile(t, src)

	out := diag.Format(logger.LevelWarn, "checker", f, buf, f.Pos(0), f.Pos(len(src)-1), "struct init spans multiple lines")

	require.Contains(t, out, "[WARN] (checker) ")
	require.Contains(t, out, "⋮")
}
