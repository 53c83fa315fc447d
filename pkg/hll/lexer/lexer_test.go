package lexer_test

import (
	"testing"

	"github.com/mlogc/mlogc/pkg/hll/lexer"
	"github.com/mlogc/mlogc/pkg/hll/token"
	"github.com/mlogc/mlogc/pkg/util/assert"
	"github.com/mlogc/mlogc/pkg/util/source"
)

func kinds(t *testing.T, text string) []token.Kind {
	t.Helper()

	srcfile := *source.NewSourceFile("t", []byte(text))

	toks, errs := lexer.Lex(srcfile)
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}

	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}

	return out
}

func TestLex_KeywordsAndPunctuation(t *testing.T) {
	got := kinds(t, "entrypoint { var x = 1; }")
	expected := []token.Kind{
		token.ENTRYPOINT, token.LBRACE, token.VAR, token.IDENTIFIER, token.ASSIGN,
		token.NUMBER, token.SEMICOLON, token.RBRACE, token.EOF,
	}
	assert.Equal(t, expected, got)
}

func TestLex_CompoundPunctuationPrecedesItsPrefix(t *testing.T) {
	got := kinds(t, "a <<= b >> c <= d")
	expected := []token.Kind{
		token.IDENTIFIER, token.SHL_ASSIGN, token.IDENTIFIER, token.SHR,
		token.IDENTIFIER, token.LE, token.IDENTIFIER, token.EOF,
	}
	assert.Equal(t, expected, got)
}

func TestLex_LineCommentAndWhitespaceDiscarded(t *testing.T) {
	got := kinds(t, "x # a trailing comment\n= 1;")
	expected := []token.Kind{token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF}
	assert.Equal(t, expected, got)
}

func TestLex_StringLiteralText(t *testing.T) {
	srcfile := *source.NewSourceFile("t", []byte(`"hello"`))

	toks, errs := lexer.Lex(srcfile)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 2, len(toks))
	assert.Equal(t, "hello", toks[0].Text)
}

func TestLex_UnknownCharacterFails(t *testing.T) {
	srcfile := *source.NewSourceFile("t", []byte("var x = 1 $ 2;"))

	_, errs := lexer.Lex(srcfile)
	assert.True(t, len(errs) > 0, "expected an unknown-character diagnostic")
}
