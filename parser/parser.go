// Package parser implements Axiom's recursive-descent parser: tokens to a
// Statement list, per spec.md §4.2. It is adapted from the teacher's
// parser.Parser (parser/parser.go) — single-token lookahead, a
// precedence-climbing chain of mutually recursive methods — but follows
// spec.md's grammar rather than gflat's.
package parser

import (
	"fmt"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/lexer"
)

type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse lexes and parses src into a top-level statement list.
func Parse(src string) ([]ast.Stmt, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already-lexed token stream, terminated by EOF.
func ParseTokens(toks []lexer.Token) ([]ast.Stmt, error) {
	p := &Parser{toks: toks}
	var stmts []ast.Stmt
	for !p.at(lexer.EOF) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) cur() lexer.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if !p.at(k) {
		return lexer.Token{}, p.errorf("expected %s, got %q", what, p.cur().Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &lexer.SyntaxError{Line: p.cur().Line, Message: fmt.Sprintf(format, args...)}
}

// --- statements ---

func (p *Parser) statement() (ast.Stmt, error) {
	switch p.cur().Kind {
	case lexer.LET:
		return p.varDecl()
	case lexer.IF:
		return p.ifStmt()
	case lexer.LBRACE:
		// '{' IDENT ':' cannot start a block, so it begins an object literal.
		if p.peekAt(1).Kind == lexer.IDENTIFIER && p.peekAt(2).Kind == lexer.COLON {
			return p.exprStmt()
		}
		return p.block()
	}
	if p.at(lexer.IDENTIFIER) && p.peekAt(1).Kind == lexer.EQUALS {
		return p.assignment()
	}
	return p.exprStmt()
}

func (p *Parser) varDecl() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'let'
	name, err := p.expect(lexer.IDENTIFIER, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, "':'"); err != nil {
		return nil, err
	}
	ty, err := p.typeAnno()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.EQUALS, "'='"); err != nil {
		return nil, err
	}
	init, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return ast.NewVarDecl(line, name.Lexeme, ty, init), nil
}

func (p *Parser) typeAnno() (ast.Type, error) {
	var base ast.Kind
	switch p.cur().Kind {
	case lexer.TYPE_INT:
		base = ast.Int
	case lexer.TYPE_STRING:
		base = ast.String
	case lexer.TYPE_BOOL:
		base = ast.Bool
	case lexer.TYPE_DATE:
		base = ast.Date
	default:
		return ast.Type{}, p.errorf("expected a type, got %q", p.cur().Lexeme)
	}
	p.advance()
	if p.at(lexer.LBRACKET) {
		p.advance()
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return ast.Type{}, err
		}
		return ast.ListOf(ast.Prim(base)), nil
	}
	return ast.Prim(base), nil
}

func (p *Parser) assignment() (ast.Stmt, error) {
	line := p.cur().Line
	name := p.advance()
	p.advance() // '='
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return ast.NewAssignment(line, name.Lexeme, value), nil
}

func (p *Parser) ifStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'if'
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.at(lexer.ELSE) {
		p.advance()
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(line, cond, then, els), nil
}

func (p *Parser) block() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // '{'
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewBlock(line, stmts), nil
}

func (p *Parser) exprStmt() (ast.Stmt, error) {
	line := p.cur().Line
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.SEMICOLON) {
		p.advance()
	} else if !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		return nil, p.errorf("expected ';' after expression, got %q", p.cur().Lexeme)
	}
	return ast.NewExprStmt(line, expr), nil
}

// --- expressions, by precedence (low to high) ---

func (p *Parser) expression() (ast.Expr, error) { return p.logicOr() }

func (p *Parser) logicOr() (ast.Expr, error) {
	return p.binaryChain(p.logicAnd, map[lexer.Kind]ast.Op{lexer.OR: ast.OpOr})
}

func (p *Parser) logicAnd() (ast.Expr, error) {
	return p.binaryChain(p.equality, map[lexer.Kind]ast.Op{lexer.AND: ast.OpAnd})
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binaryChain(p.comparison, map[lexer.Kind]ast.Op{
		lexer.EQ_EQ: ast.OpEq, lexer.BANG_EQ: ast.OpNeq,
	})
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binaryChain(p.term, map[lexer.Kind]ast.Op{
		lexer.GREATER: ast.OpGt, lexer.GREATER_EQ: ast.OpGte,
		lexer.LESS: ast.OpLt, lexer.LESS_EQ: ast.OpLte, lexer.IN: ast.OpIn,
	})
}

func (p *Parser) term() (ast.Expr, error) {
	return p.binaryChain(p.factor, map[lexer.Kind]ast.Op{lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub})
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binaryChain(p.unary, map[lexer.Kind]ast.Op{lexer.MULT: ast.OpMul, lexer.DIV: ast.OpDiv})
}

// binaryChain implements one left-associative precedence level: it parses
// one operand via next, then repeatedly consumes an operator from ops
// followed by another operand, per spec.md §4.2's "left-associative"
// requirement for every binary operator.
func (p *Parser) binaryChain(next func() (ast.Expr, error), ops map[lexer.Kind]ast.Op) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			return left, nil
		}
		line := p.cur().Line
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(line, op, left, right)
	}
}

func (p *Parser) unary() (ast.Expr, error) {
	switch p.cur().Kind {
	case lexer.BANG:
		line := p.cur().Line
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(line, ast.OpNot, operand), nil
	case lexer.MINUS:
		line := p.cur().Line
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(line, ast.OpNeg, operand), nil
	}
	return p.call()
}

// call parses primary postfix*, where postfix is either a direct call
// '(' args? ')', or '.' IDENT optionally followed by the two-argument
// macro-call form '(' IDENT ',' expression ')', per spec.md §4.2.
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case lexer.LPAREN:
			line := p.cur().Line
			p.advance()
			args, err := p.argList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
				return nil, err
			}
			expr = ast.NewCall(line, expr, args)
		case lexer.DOT:
			line := p.cur().Line
			p.advance()
			prop, err := p.expect(lexer.IDENTIFIER, "property name")
			if err != nil {
				return nil, err
			}
			if p.at(lexer.LPAREN) {
				expr, err = p.macroCall(line, expr, prop.Lexeme)
				if err != nil {
					return nil, err
				}
			} else {
				expr = ast.NewMember(line, expr, prop.Lexeme)
			}
		default:
			return expr, nil
		}
	}
}

// macroCall parses the `(' IDENT ',' expression ')` tail of
// `expr.exists(name, body)` / `expr.all(name, body)`, producing
// Call{Callee: Member{expr, prop}, Args: [Lambda{name, body}]} directly,
// per spec.md §4.2's "Macro syntax" note.
func (p *Parser) macroCall(line int, receiver ast.Expr, prop string) (ast.Expr, error) {
	p.advance() // '('
	paramLine := p.cur().Line
	param, err := p.expect(lexer.IDENTIFIER, "lambda parameter name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COMMA, "','"); err != nil {
		return nil, err
	}
	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	lambda := ast.NewLambda(paramLine, param.Lexeme, body)
	return ast.NewCall(line, ast.NewMember(line, receiver, prop), []ast.Expr{lambda}), nil
}

func (p *Parser) argList() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.at(lexer.RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		return args, nil
	}
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.NUMBER:
		p.advance()
		var v int64
		for _, r := range tok.Lexeme {
			v = v*10 + int64(r-'0')
		}
		return ast.NewIntLit(tok.Line, v), nil
	case lexer.STRING:
		p.advance()
		return ast.NewStringLit(tok.Line, tok.Lexeme), nil
	case lexer.TRUE:
		p.advance()
		return ast.NewBoolLit(tok.Line, true), nil
	case lexer.FALSE:
		p.advance()
		return ast.NewBoolLit(tok.Line, false), nil
	case lexer.IDENTIFIER:
		p.advance()
		return ast.NewVariable(tok.Line, tok.Lexeme), nil
	case lexer.LPAREN:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.LBRACKET:
		return p.listLit()
	case lexer.LBRACE:
		return p.objectLit()
	}
	return nil, p.errorf("unexpected token %q", tok.Lexeme)
}

func (p *Parser) listLit() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // '['
	var elems []ast.Expr
	if !p.at(lexer.RBRACKET) {
		for {
			elem, err := p.expression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return ast.NewListLit(line, elems), nil
}

func (p *Parser) objectLit() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // '{'
	var fields []ast.ObjectField
	if !p.at(lexer.RBRACE) {
		for {
			key, err := p.expect(lexer.IDENTIFIER, "object field name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON, "':'"); err != nil {
				return nil, err
			}
			val, err := p.expression()
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.ObjectField{Name: key.Lexeme, Value: val})
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewObjectLit(line, fields), nil
}
