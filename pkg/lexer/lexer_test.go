package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := `SELECT a.id, "Foo" FROM t WHERE id <> 3 AND x >= 1; -- trailing comment
SELECT 1`

	expected := []TokenType{
		SELECT, IDENT, DOT, IDENT, COMMA, STRING, FROM, IDENT, WHERE, IDENT, NOT_EQ, NUMBER,
		AND, IDENT, GTE, NUMBER, SEMICOLON,
		SELECT, NUMBER, EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	l := New(`'it''s' "double"`)
	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "it's" {
		t.Fatalf("expected escaped single-quoted string, got %q", tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != "double" {
		t.Fatalf("expected double-quoted string, got %q", tok.Literal)
	}
}

func TestNumberLiterals(t *testing.T) {
	l := New(`123 4.5`)
	tok := l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "123" {
		t.Fatalf("expected integer literal, got %q", tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "4.5" {
		t.Fatalf("expected real literal, got %q", tok.Literal)
	}
}

func TestBitwiseOperators(t *testing.T) {
	l := New(`~7 & 3 | 1 << 2 >> 1`)
	expected := []TokenType{TILDE, NUMBER, AMP, NUMBER, PIPE, NUMBER, SHL, NUMBER, SHR, NUMBER, EOF}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %s, got %s", i, want, tok.Type)
		}
	}
}

func TestKeywordsCaseInsensitiveIdentsCaseSensitive(t *testing.T) {
	l := New(`select Select FROM From Foo foo`)
	for i := 0; i < 2; i++ {
		tok := l.NextToken()
		if tok.Type != SELECT {
			t.Fatalf("expected SELECT keyword regardless of case, got %s", tok.Type)
		}
	}
	for i := 0; i < 2; i++ {
		tok := l.NextToken()
		if tok.Type != FROM {
			t.Fatalf("expected FROM keyword regardless of case, got %s", tok.Type)
		}
	}
	for _, want := range []string{"Foo", "foo"} {
		tok := l.NextToken()
		if tok.Type != IDENT || tok.Literal != want {
			t.Fatalf("expected identifier %q with its case kept, got %s (%q)", want, tok.Type, tok.Literal)
		}
	}
}
