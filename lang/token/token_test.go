package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupKw(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		expect := tok >= kwStart && tok <= kwEnd
		val := LookupKw(tok.String())
		if expect {
			require.Equal(t, tok, val)
		} else {
			require.Equal(t, IDENT, val)
		}
	}
}

func TestLookupPunct(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		expect := tok >= arithStart && tok <= COMMA
		val := LookupPunct(tok.String())
		if expect {
			require.Equal(t, tok, val)
		} else {
			require.Equal(t, ILLEGAL, val)
		}
	}
}

func TestIsArithOp(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		require.Equal(t, tok >= arithStart && tok <= arithEnd, tok.IsArithOp())
	}
}

func TestIsCompareOp(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		require.Equal(t, tok >= cmpStart && tok <= cmpEnd, tok.IsCompareOp())
	}
}

func TestIsBinOp(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		maybe := tok.IsArithOp() || tok.IsCompareOp() || tok.IsLogicOp()
		require.Equal(t, maybe, tok.IsBinOp())
	}
}

func TestIsUnaryOp(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		maybe := tok == MINUS || tok == BANG || tok == NOT
		require.Equal(t, maybe, tok.IsUnaryOp())
	}
}

func TestIsLiteral(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		maybe := (tok >= litStart && tok <= litEnd) || tok == TRUE || tok == FALSE
		require.Equal(t, maybe, tok.IsLiteral())
	}
}

func TestIsKeyword(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		require.Equal(t, tok >= kwStart && tok <= kwEnd, tok.IsKeyword())
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "if", IF.GoString())
}
