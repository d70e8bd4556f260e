package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		if tok.Type == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestOperatorsPreferTwoCharForms(t *testing.T) {
	toks := allTokens(t, "== != && || ?? <= >= = ! < >")
	types := make([]Type, len(toks))
	for i, tk := range toks {
		types[i] = tk.Type
	}
	assert.Equal(t, []Type{EQ, NEQ, AND, OR, COALESCE, LE, GE, ASSIGN, BANG, LT, GT}, types)
}

func TestIntegerLiteral(t *testing.T) {
	toks := allTokens(t, "42 0 9223372036854775807")
	require.Len(t, toks, 3)
	assert.EqualValues(t, 42, toks[0].IntVal)
	assert.EqualValues(t, 0, toks[1].IntVal)
	assert.EqualValues(t, 9223372036854775807, toks[2].IntVal)
}

func TestIntegerOverflowIsLexicalError(t *testing.T) {
	l := New("9223372036854775808")
	_, err := l.NextToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflow")
}

func TestStringEscapes(t *testing.T) {
	toks := allTokens(t, `"a\nb\t\"c\\d"`)
	require.Len(t, toks, 1)
	assert.Equal(t, "a\nb\t\"c\\d", toks[0].Literal)
}

func TestUnknownEscapeIsPreservedVerbatim(t *testing.T) {
	toks := allTokens(t, `"C:\data\logs"`)
	require.Len(t, toks, 1)
	assert.Equal(t, `C:\data\logs`, toks[0].Literal)
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	l := New(`"abc`)
	_, err := l.NextToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := allTokens(t, "let x = fn if else")
	types := make([]Type, len(toks))
	for i, tk := range toks {
		types[i] = tk.Type
	}
	assert.Equal(t, []Type{LET, IDENT, ASSIGN, FN, IF, ELSE}, types)
}

func TestLineColumnTracking(t *testing.T) {
	toks := allTokens(t, "let x\n= 1")
	require.Len(t, toks, 4)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[2].Line)
	assert.Equal(t, 1, toks[2].Col)
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := allTokens(t, "let x = 1 # trailing comment\nlet y = 2")
	assert.Len(t, toks, 8)
}

func TestIllegalCharacter(t *testing.T) {
	l := New("&")
	_, err := l.NextToken()
	require.Error(t, err)
}
