package lexer

import "golang.org/x/exp/slices"

// Kind is the closed token-kind enum from spec.md §3.
type Kind int

const (
	NUMBER Kind = iota
	STRING
	IDENTIFIER
	LET
	IF
	ELSE
	TRUE
	FALSE
	TYPE_INT
	TYPE_STRING
	TYPE_BOOL
	TYPE_DATE
	EQUALS
	PLUS
	MINUS
	MULT
	DIV
	EQ_EQ
	BANG_EQ
	GREATER
	GREATER_EQ
	LESS
	LESS_EQ
	AND
	OR
	BANG
	SEMICOLON
	COLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	DOT
	IN
	EOF
)

var kindNames = map[Kind]string{
	NUMBER: "NUMBER", STRING: "STRING", IDENTIFIER: "IDENTIFIER",
	LET: "LET", IF: "IF", ELSE: "ELSE", TRUE: "TRUE", FALSE: "FALSE",
	TYPE_INT: "TYPE_INT", TYPE_STRING: "TYPE_STRING", TYPE_BOOL: "TYPE_BOOL", TYPE_DATE: "TYPE_DATE",
	EQUALS: "EQUALS", PLUS: "PLUS", MINUS: "MINUS", MULT: "MULT", DIV: "DIV",
	EQ_EQ: "EQ_EQ", BANG_EQ: "BANG_EQ", GREATER: "GREATER", GREATER_EQ: "GREATER_EQ",
	LESS: "LESS", LESS_EQ: "LESS_EQ", AND: "AND", OR: "OR", BANG: "BANG",
	SEMICOLON: "SEMICOLON", COLON: "COLON", LPAREN: "LPAREN", RPAREN: "RPAREN",
	LBRACE: "LBRACE", RBRACE: "RBRACE", LBRACKET: "LBRACKET", RBRACKET: "RBRACKET",
	COMMA: "COMMA", DOT: "DOT", IN: "IN", EOF: "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is the lexer's output unit, per spec.md §3: { kind, lexeme, line }.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// Keywords maps reserved identifiers to their keyword Kind, used by
// lexIdentOrKeyword the same way the teacher's lexer.Keywords table
// disambiguates identifiers from reserved words.
var Keywords = map[string]Kind{
	"let": LET, "if": IF, "else": ELSE, "true": TRUE, "false": FALSE,
	"int": TYPE_INT, "string": TYPE_STRING, "bool": TYPE_BOOL, "date": TYPE_DATE,
	"in": IN,
}

// singleCharTokens mirrors the teacher's lexer.SingleCharTokens lookup
// table (lexer/token.go): punctuation that can never start a longer
// multi-character operator is dispatched through one table instead of a
// long if/else chain.
var singleCharTokens = map[rune]Kind{
	'+': PLUS, '-': MINUS, '*': MULT, '/': DIV,
	';': SEMICOLON, ':': COLON, '(': LPAREN, ')': RPAREN,
	'{': LBRACE, '}': RBRACE, '[': LBRACKET, ']': RBRACKET,
	',': COMMA, '.': DOT,
}

// maximalMunchPair is one entry of the two-character operator table; see
// maximalMunch below.
type maximalMunchPair struct {
	first, second rune
	kind          Kind
}

var twoCharOperators = []maximalMunchPair{
	{'=', '=', EQ_EQ},
	{'!', '=', BANG_EQ},
	{'>', '=', GREATER_EQ},
	{'<', '=', LESS_EQ},
	{'&', '&', AND},
	{'|', '|', OR},
}

// maximalMunch looks up a two-character operator by its leading rune,
// mirroring the teacher's table-driven operator dispatch (lexer/token.go)
// rather than a long hand-written if/else chain.
func maximalMunch(first rune) (maximalMunchPair, bool) {
	i := slices.IndexFunc(twoCharOperators, func(p maximalMunchPair) bool { return p.first == first })
	if i < 0 {
		return maximalMunchPair{}, false
	}
	return twoCharOperators[i], true
}
