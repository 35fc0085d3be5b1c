package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKw(t *testing.T) {
	require.Equal(t, WHILE, LookupKw("while"))
	require.Equal(t, IDENT, LookupKw("whilex"))
}

func TestLookupPunct(t *testing.T) {
	require.Equal(t, LE, LookupPunct("<="))
	require.Equal(t, ILLEGAL, LookupPunct("<=>"))
}

func TestIsRelational(t *testing.T) {
	require.True(t, LT.IsRelational())
	require.True(t, NEQ.IsRelational())
	require.False(t, ASSIGN.IsRelational())
}

func TestIsMulAddOp(t *testing.T) {
	require.True(t, STAR.IsMulOp())
	require.False(t, PLUS.IsMulOp())
	require.True(t, MINUS.IsAddOp())
	require.False(t, SLASH.IsAddOp())
}

func TestGoStringQuotesPunctAndKeywords(t *testing.T) {
	require.Equal(t, "'while'", WHILE.GoString())
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}

func TestLiteral(t *testing.T) {
	require.Equal(t, "foo", IDENT.Literal(Value{Raw: "foo"}))
	require.Equal(t, "42", INT.Literal(Value{Raw: "42"}))
	require.Equal(t, "", PLUS.Literal(Value{Raw: "+"}))
}
