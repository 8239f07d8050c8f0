package lexer_test

import (
	"testing"

	"github.com/cwbudde/go-script/internal/lexer"
)

func kinds(t *testing.T, toks []lexer.Token) []lexer.Kind {
	t.Helper()
	out := make([]lexer.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexNumbers(t *testing.T) {
	toks, err := lexer.Lex("1 2.5 3e2 3.14e-1 10.", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(toks))
	}
	want := []lexer.Kind{lexer.Integer, lexer.Float, lexer.Float, lexer.Float, lexer.Float}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: want %s, got %s (%q)", i, k, toks[i].Kind, toks[i].Text)
		}
	}
	// "10." upgrades to a float even with no digit after the dot, so the
	// dot stays part of the single number token.
	if toks[4].Text != "10." {
		t.Errorf("want float 10., got %q", toks[4].Text)
	}
}

func TestLexIdentifiersAndKeywords(t *testing.T) {
	toks, err := lexer.Lex("var x = func foo", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != lexer.Keyword || toks[0].Kw != lexer.KwVar {
		t.Errorf("want keyword var, got %v", toks[0])
	}
	if toks[1].Kind != lexer.Identifier || toks[1].Text != "x" {
		t.Errorf("want identifier x, got %v", toks[1])
	}
	if toks[3].Kind != lexer.Keyword || toks[3].Kw != lexer.KwFunc {
		t.Errorf("want keyword func, got %v", toks[3])
	}
}

func TestLexStringEscape(t *testing.T) {
	toks, err := lexer.Lex(`"he said \"hi\""`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != lexer.String {
		t.Fatalf("expected a single string token, got %v", toks)
	}
	if toks[0].Text != `he said \"hi\"` {
		t.Errorf("unexpected string body: %q", toks[0].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := lexer.Lex(`"unterminated`, 1)
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestLexComment(t *testing.T) {
	toks, err := lexer.Lex("1 + 2 # trailing comment", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens before the comment, got %d", len(toks))
	}
}

func TestLexOperatorsLongestMatch(t *testing.T) {
	toks, err := lexer.Lex("a += 1 == 2 && b <= 3 => c", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ops := []lexer.Op{}
	for _, tok := range toks {
		if tok.Kind == lexer.Operator {
			ops = append(ops, tok.Op)
		}
	}
	want := []lexer.Op{lexer.OpPlusEq, lexer.OpEq, lexer.OpAndAnd, lexer.OpLessEq, lexer.OpFatArrow}
	if len(ops) != len(want) {
		t.Fatalf("want %d operators, got %d (%v)", len(want), len(ops), ops)
	}
	for i, op := range want {
		if ops[i] != op {
			t.Errorf("operator %d: want %s, got %s", i, op, ops[i])
		}
	}
}

func TestLexUnknownCharacter(t *testing.T) {
	_, err := lexer.Lex("a ? b", 1)
	if err == nil {
		t.Fatal("expected an error for an unknown character")
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := lexer.Lex("  foo", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Start.Line != 7 || toks[0].Start.Column != 3 {
		t.Errorf("unexpected start position: %+v", toks[0].Start)
	}
}
