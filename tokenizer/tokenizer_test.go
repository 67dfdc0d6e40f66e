package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_EmptyInput(t *testing.T) {
	tokens, diags := Tokenize("", Options{})

	require.Empty(t, diags)
	require.Len(t, tokens, 1)

	eof := tokens[0]
	require.Equal(t, KindEOF, eof.Kind)
	require.Equal(t, 0, eof.Start)
	require.Equal(t, 0, eof.End)
	require.Equal(t, 1, eof.Line)
	require.Equal(t, 1, eof.Column)
}

func TestTokenize_AlwaysEndsWithSingleEOF(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"<p>x</p>",
		"<",
		"<p",
		"</",
		"<!-- never closed",
		"<![CDATA[ never closed",
		"<div><span></div>",
		"plain < text > here",
	}

	for _, input := range inputs {
		tokens, _ := Tokenize(input, Options{RecognizeCDATA: true})

		count := 0
		for _, tok := range tokens {
			if tok.Kind == KindEOF {
				count++
			}
		}
		require.Equal(t, 1, count, "input %q", input)

		last := tokens[len(tokens)-1]
		require.Equal(t, KindEOF, last.Kind, "input %q", input)
		require.Equal(t, len(input), last.Start, "input %q", input)
		require.Equal(t, len(input), last.End, "input %q", input)
	}
}

func TestTokenize_OffsetsNonDecreasing(t *testing.T) {
	inputs := []string{
		"<p>Hello <b>world</b></p>",
		"text <div id='a'>more</div> tail",
		"<!DOCTYPE html><html><!-- c --></html>",
		"<broken <div>ok</div>",
	}

	for _, input := range inputs {
		tokens, _ := Tokenize(input, Options{})

		prev := -1
		for _, tok := range tokens {
			require.GreaterOrEqual(t, tok.Start, prev, "input %q", input)
			require.GreaterOrEqual(t, tok.End, tok.Start, "input %q", input)
			prev = tok.Start
		}
	}
}

func TestTokenize_LineColumnConsistency(t *testing.T) {
	input := "line one\n<p>\n  text</p>"

	tokens, diags := Tokenize(input, Options{})
	require.Empty(t, diags)

	// line/column of every token must agree with counting newlines in
	// the input before the token's start offset
	for _, tok := range tokens {
		prefix := input[:tok.Start]
		wantLine := 1 + strings.Count(prefix, "\n")

		wantCol := tok.Start + 1
		if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
			wantCol = tok.Start - idx
		}

		require.Equal(t, wantLine, tok.Line, "token %v at %d", tok.Kind, tok.Start)
		require.Equal(t, wantCol, tok.Column, "token %v at %d", tok.Kind, tok.Start)
	}
}

func TestTokenize_WhitespaceTextFlagged(t *testing.T) {
	tokens, diags := Tokenize("  \t \n", Options{})
	require.Empty(t, diags)

	require.Equal(t, []Kind{KindText, KindEOF}, kinds(tokens))
	require.True(t, tokens[0].IsWhitespace)

	// PreserveWhitespace does not change what the tokenizer emits, only
	// how downstream stages treat the flagged runs
	preserved, _ := Tokenize("  \t \n", Options{PreserveWhitespace: true})
	require.Equal(t, kinds(tokens), kinds(preserved))
}

func TestTokenize_NonWhitespaceTextNotFlagged(t *testing.T) {
	tokens, _ := Tokenize(" x ", Options{})

	require.Equal(t, []Kind{KindText, KindEOF}, kinds(tokens))
	require.False(t, tokens[0].IsWhitespace)
	require.Equal(t, " x ", tokens[0].Text)
}

func TestTokenize_LoneAngleBracketReported(t *testing.T) {
	tokens, diags := Tokenize("5 < 5", Options{})

	require.Len(t, diags, 1)
	require.Equal(t, IssueMalformedTag, diags[0].Issue)
	require.Equal(t, SeverityError, diags[0].Severity)

	// the leading text survives, the malformed tail is skipped
	require.Equal(t, KindText, tokens[0].Kind)
	require.Equal(t, "5 ", tokens[0].Text)
}

func TestTokenize_MultiByteContent(t *testing.T) {
	input := "<p>привет</p>"

	tokens, diags := Tokenize(input, Options{})
	require.Empty(t, diags)

	require.Equal(t, []Kind{KindStartTag, KindText, KindEndTag, KindEOF}, kinds(tokens))
	require.Equal(t, "привет", tokens[1].Text)

	// columns count characters, not bytes: "привет" is 6 runes
	require.Equal(t, 4, tokens[1].Column)
	require.Equal(t, 10, tokens[2].Column)
}
