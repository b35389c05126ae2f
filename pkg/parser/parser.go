// Package parser recognizes the SQL surface from spec §4.2 and builds the
// pkg/ast trees pkg/engine executes. It is adapted from the teacher
// repository's recursive-descent parser (curToken/peekToken two-token
// lookahead, expectPeek-style error reporting), trimmed to the statement
// and expression shapes this engine supports and generalized to the full
// operator set (bitwise, shifts, the complete comparison set).
//
// Binary expressions are intentionally built right-leaning and flat:
// parseExpression does not climb a precedence ladder, it just recurses
// into its own right-hand side whenever another operator follows, so a
// chain like `a + b * c - d` parses as Binary{Add, a, Binary{Mul, b,
// Binary{Sub, c, d}}} with no regard for precedence. Fixing that up is
// pkg/engine's job (its evaluator re-associates the tree before first
// use, per spec §4.4, an algorithm that assumes exactly this shape).
package parser

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Chahine-tech/gosql-engine/pkg/ast"
	"github.com/Chahine-tech/gosql-engine/pkg/lexer"
	"github.com/Chahine-tech/gosql-engine/pkg/value"
)

type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	err error
}

func new(input string) *Parser {
	p := &Parser{l: lexer.New(input)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.setErrorf("expected %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Literal)
	return false
}

func (p *Parser) setErrorf(format string, args ...interface{}) {
	if p.err == nil {
		p.err = errors.Errorf(format, args...)
	}
}

// Parse recognizes a semicolon-separated sequence of statements. On
// failure it returns a single wrapped error and no statements at all
// (spec §4.2: "partial parses of a multi-statement script do not execute
// any statement").
func Parse(sql string) ([]ast.Statement, error) {
	p := new(sql)

	var stmts []ast.Statement
	for !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil, errors.Wrap(p.err, "parse")
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		for p.curTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
	}
	return stmts, nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.SELECT:
		return p.parseSelectStatement()
	case lexer.CREATE:
		return p.parseCreateTableStatement()
	case lexer.DROP:
		return p.parseDropTableStatement()
	case lexer.ALTER:
		return p.parseAlterTableStatement()
	case lexer.INSERT:
		return p.parseInsertStatement()
	case lexer.DELETE:
		return p.parseDeleteStatement()
	case lexer.UPDATE:
		return p.parseUpdateStatement()
	default:
		p.setErrorf("unexpected token at start of statement: %s (%q)", p.curToken.Type, p.curToken.Literal)
		return nil
	}
}

// ---- expressions ----

// binaryOps maps each binary operator token to its ast.BinaryOp and decides
// which tokens continue an expression. It carries no precedence: the parser
// builds a flat right-leaning chain, and ranks live in pkg/engine's
// re-association pass.
var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.ASTERISK: ast.OpMul,
	lexer.SLASH:    ast.OpDiv,
	lexer.PERCENT:  ast.OpMod,
	lexer.PLUS:     ast.OpAdd,
	lexer.MINUS:    ast.OpSub,
	lexer.SHL:      ast.OpShl,
	lexer.SHR:      ast.OpShr,
	lexer.AMP:      ast.OpBitAnd,
	lexer.PIPE:     ast.OpBitOr,
	lexer.LT:       ast.OpLt,
	lexer.LTE:      ast.OpLe,
	lexer.GT:       ast.OpGt,
	lexer.GTE:      ast.OpGe,
	lexer.ASSIGN:   ast.OpEq,
	lexer.EQ:       ast.OpEq,
	lexer.NOT_EQ:   ast.OpNe,
	lexer.AND:      ast.OpAnd,
	lexer.OR:       ast.OpOr,
}

func (p *Parser) parseExpression() ast.Expression {
	left := p.parseUnary()
	if p.err != nil {
		return nil
	}

	op, ok := binaryOps[p.curToken.Type]
	if !ok {
		return left
	}
	p.nextToken()
	right := p.parseExpression()
	if p.err != nil {
		return nil
	}
	return &ast.Binary{Op: op, Left: left, Right: right}
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.curToken.Type {
	case lexer.PLUS:
		p.nextToken()
		return &ast.Unary{Op: ast.OpPos, Operand: p.parseUnary()}
	case lexer.MINUS:
		p.nextToken()
		return &ast.Unary{Op: ast.OpNeg, Operand: p.parseUnary()}
	case lexer.NOT:
		p.nextToken()
		return &ast.Unary{Op: ast.OpNot, Operand: p.parseUnary()}
	case lexer.TILDE:
		p.nextToken()
		return &ast.Unary{Op: ast.OpBitNot, Operand: p.parseUnary()}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case lexer.IDENT:
		return p.parseIdentifierExpression()
	case lexer.NUMBER:
		return p.parseNumberLiteral()
	case lexer.STRING:
		lit := &ast.Literal{Value: value.Text(p.curToken.Literal)}
		p.nextToken()
		return lit
	case lexer.NULL:
		p.nextToken()
		return &ast.Literal{Value: value.Null()}
	case lexer.TRUE:
		p.nextToken()
		return &ast.Literal{Value: value.Boolean(true)}
	case lexer.FALSE:
		p.nextToken()
		return &ast.Literal{Value: value.Boolean(false)}
	case lexer.ASTERISK:
		p.nextToken()
		return &ast.Star{}
	case lexer.LPAREN:
		p.nextToken()
		expr := p.parseExpression()
		if p.err != nil {
			return nil
		}
		if !p.curTokenIs(lexer.RPAREN) {
			p.setErrorf("expected ')' to close grouped expression, got %q", p.curToken.Literal)
			return nil
		}
		p.nextToken()
		// Wrapped in ast.Grouped, not returned bare, so pkg/engine's
		// re-association pass can see the parenthesis boundary and stop
		// rotating operators there instead of reaching across it.
		return &ast.Grouped{Inner: expr}
	default:
		p.setErrorf("unexpected token in expression: %s (%q)", p.curToken.Type, p.curToken.Literal)
		return nil
	}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := p.curToken.Literal
	p.nextToken()
	if strings.Contains(lit, ".") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.setErrorf("invalid real literal %q", lit)
			return nil
		}
		return &ast.Literal{Value: value.Real(f)}
	}
	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		p.setErrorf("invalid integer literal %q", lit)
		return nil
	}
	return &ast.Literal{Value: value.Integer(i)}
}

// parseIdentifierExpression parses `name`, `table.name`, or `table.*`.
func (p *Parser) parseIdentifierExpression() ast.Expression {
	first := p.curToken.Literal
	p.nextToken()

	if !p.curTokenIs(lexer.DOT) {
		return &ast.ColumnName{Name: first}
	}
	p.nextToken()

	if p.curTokenIs(lexer.ASTERISK) {
		p.nextToken()
		return &ast.Star{Table: first}
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected column name after '%s.', got %q", first, p.curToken.Literal)
		return nil
	}
	col := p.curToken.Literal
	p.nextToken()
	return &ast.TableColumn{Table: first, Inner: &ast.ColumnName{Name: col}}
}

// ---- SELECT ----

func (p *Parser) parseSelectStatement() *ast.Select {
	p.nextToken() // consume SELECT

	stmt := &ast.Select{}
	stmt.Columns = p.parseSelectList()
	if p.err != nil {
		return nil
	}

	if p.curTokenIs(lexer.FROM) {
		p.nextToken()
		p.parseFromClause(stmt)
		if p.err != nil {
			return nil
		}
	}

	if p.curTokenIs(lexer.WHERE) {
		p.nextToken()
		stmt.Where = p.parseExpression()
		if p.err != nil {
			return nil
		}
	}

	if p.curTokenIs(lexer.ORDER) {
		p.nextToken()
		if !p.expectPeekNoAdvanceBY() {
			return nil
		}
		stmt.OrderBy = p.parseOrderByClause()
		if p.err != nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) expectPeekNoAdvanceBY() bool {
	if !p.curTokenIs(lexer.BY) {
		p.setErrorf("expected BY after ORDER, got %q", p.curToken.Literal)
		return false
	}
	p.nextToken()
	return true
}

func (p *Parser) parseSelectList() []ast.Expression {
	var cols []ast.Expression
	if p.curTokenIs(lexer.ASTERISK) && !isDotNext(p) {
		p.nextToken()
		return []ast.Expression{&ast.Star{}}
	}

	for {
		expr := p.parseExpression()
		if p.err != nil {
			return nil
		}
		cols = append(cols, expr)
		if !p.curTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	return cols
}

func isDotNext(p *Parser) bool { return p.peekTokenIs(lexer.DOT) }

func (p *Parser) parseFromClause(stmt *ast.Select) {
	first := p.parseTableName()
	if p.err != nil {
		return
	}

	if p.curTokenIs(lexer.COMMA) {
		stmt.From = []string{first}
		for p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			name := p.parseTableName()
			if p.err != nil {
				return
			}
			stmt.From = append(stmt.From, name)
		}
		return
	}

	if isJoinStart(p.curToken.Type) {
		stmt.Left = first
		for isJoinStart(p.curToken.Type) {
			join := p.parseJoinClause()
			if p.err != nil {
				return
			}
			stmt.Joins = append(stmt.Joins, join)
		}
		return
	}

	stmt.From = []string{first}
}

func isJoinStart(t lexer.TokenType) bool {
	switch t {
	case lexer.JOIN, lexer.INNER, lexer.LEFT, lexer.RIGHT, lexer.FULL, lexer.NATURAL:
		return true
	default:
		return false
	}
}

func (p *Parser) parseJoinClause() ast.Join {
	var join ast.Join
	switch p.curToken.Type {
	case lexer.NATURAL:
		join.Type = ast.JoinNatural
		p.nextToken()
		if p.curTokenIs(lexer.JOIN) {
			p.nextToken()
		}
	case lexer.INNER:
		join.Type = ast.JoinInner
		p.nextToken()
		p.expectJoinKeyword()
	case lexer.LEFT:
		join.Type = ast.JoinLeft
		p.nextToken()
		p.expectJoinKeyword()
	case lexer.RIGHT:
		join.Type = ast.JoinRight
		p.nextToken()
		p.expectJoinKeyword()
	case lexer.FULL:
		join.Type = ast.JoinFull
		p.nextToken()
		p.expectJoinKeyword()
	case lexer.JOIN:
		join.Type = ast.JoinInner
		p.nextToken()
	}
	if p.err != nil {
		return join
	}

	join.Table = p.parseTableName()
	if p.err != nil {
		return join
	}

	if p.curTokenIs(lexer.ON) {
		p.nextToken()
		join.On = p.parseExpression()
	}
	return join
}

func (p *Parser) expectJoinKeyword() {
	if !p.curTokenIs(lexer.JOIN) {
		p.setErrorf("expected JOIN, got %q", p.curToken.Literal)
		return
	}
	p.nextToken()
}

func (p *Parser) parseTableName() string {
	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected table name, got %s (%q)", p.curToken.Type, p.curToken.Literal)
		return ""
	}
	name := p.curToken.Literal
	p.nextToken()
	return name
}

func (p *Parser) parseOrderByClause() []ast.OrderByTerm {
	var terms []ast.OrderByTerm
	for {
		expr := p.parseExpression()
		if p.err != nil {
			return nil
		}
		term := ast.OrderByTerm{Expr: expr}
		switch p.curToken.Type {
		case lexer.ASC:
			p.nextToken()
		case lexer.DESC:
			term.Desc = true
			p.nextToken()
		}
		terms = append(terms, term)
		if !p.curTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	return terms
}
