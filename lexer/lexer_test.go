package lexer_test

import (
	"testing"

	"github.com/kr/pretty"

	. "github.com/axiomlang/axiom/lexer"
)

func tok(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

func TestLexBasicTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "empty",
			src:  "",
			want: []Token{tok(EOF, "", 1)},
		},
		{
			name: "varDecl",
			src:  "let x:int=1;",
			want: []Token{
				tok(LET, "let", 1), tok(IDENTIFIER, "x", 1), tok(COLON, ":", 1),
				tok(TYPE_INT, "int", 1), tok(EQUALS, "=", 1), tok(NUMBER, "1", 1),
				tok(SEMICOLON, ";", 1), tok(EOF, "", 1),
			},
		},
		{
			name: "operators",
			src:  "== != >= <= && || > < ! + - * /",
			want: []Token{
				tok(EQ_EQ, "==", 1), tok(BANG_EQ, "!=", 1), tok(GREATER_EQ, ">=", 1),
				tok(LESS_EQ, "<=", 1), tok(AND, "&&", 1), tok(OR, "||", 1),
				tok(GREATER, ">", 1), tok(LESS, "<", 1), tok(BANG, "!", 1),
				tok(PLUS, "+", 1), tok(MINUS, "-", 1), tok(MULT, "*", 1), tok(DIV, "/", 1),
				tok(EOF, "", 1),
			},
		},
		{
			name: "string and comment",
			src:  "\"hello\" // trailing comment\ntrue",
			want: []Token{
				tok(STRING, "hello", 1), tok(TRUE, "true", 2), tok(EOF, "", 2),
			},
		},
		{
			name: "keywords",
			src:  "let if else true false int string bool date in",
			want: []Token{
				tok(LET, "let", 1), tok(IF, "if", 1), tok(ELSE, "else", 1),
				tok(TRUE, "true", 1), tok(FALSE, "false", 1), tok(TYPE_INT, "int", 1),
				tok(TYPE_STRING, "string", 1), tok(TYPE_BOOL, "bool", 1), tok(TYPE_DATE, "date", 1),
				tok(IN, "in", 1), tok(EOF, "", 1),
			},
		},
		{
			name: "member and macro punctuation",
			src:  "a.b.exists(n, n)",
			want: []Token{
				tok(IDENTIFIER, "a", 1), tok(DOT, ".", 1), tok(IDENTIFIER, "b", 1),
				tok(DOT, ".", 1), tok(IDENTIFIER, "exists", 1), tok(LPAREN, "(", 1),
				tok(IDENTIFIER, "n", 1), tok(COMMA, ",", 1), tok(IDENTIFIER, "n", 1),
				tok(RPAREN, ")", 1), tok(EOF, "", 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.src)
			if err != nil {
				t.Fatalf("Lex(%q) returned error: %v", tt.src, err)
			}
			if diff := pretty.Diff(tt.want, got); len(diff) > 0 {
				t.Errorf("Lex(%q) mismatch:\n%s", tt.src, pretty.Sprint(diff))
			}
		})
	}
}

func TestLexLineCounting(t *testing.T) {
	src := "1\n2\n3"
	got, err := Lex(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 3, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i, tok := range got {
		if tok.Line != want[i] {
			t.Errorf("token %d: line = %d, want %d", i, tok.Line, want[i])
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `"abc`},
		{"bare ampersand", "a & b"},
		{"bare pipe", "a | b"},
		{"bad character", "a ~ b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.src)
			if err == nil {
				t.Fatalf("Lex(%q) succeeded, want SyntaxError", tt.src)
			}
			var se *SyntaxError
			if !asSyntaxError(err, &se) {
				t.Fatalf("Lex(%q) error = %v, want *SyntaxError", tt.src, err)
			}
		})
	}
}

func asSyntaxError(err error, target **SyntaxError) bool {
	se, ok := err.(*SyntaxError)
	if ok {
		*target = se
	}
	return ok
}
