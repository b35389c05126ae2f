package parser

import (
	"github.com/Chahine-tech/gosql-engine/pkg/ast"
	"github.com/Chahine-tech/gosql-engine/pkg/lexer"
)

// parseInsertStatement parses `INSERT INTO name [(col, ...)] VALUES (expr,
// ...), ...` and `INSERT INTO name SELECT ...`. A column list followed by
// SELECT is a parse error.
func (p *Parser) parseInsertStatement() ast.Statement {
	p.nextToken() // consume INSERT
	if !p.curTokenIs(lexer.INTO) {
		p.setErrorf("expected INTO after INSERT, got %q", p.curToken.Literal)
		return nil
	}
	p.nextToken()

	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected table name, got %q", p.curToken.Literal)
		return nil
	}
	table := p.curToken.Literal
	p.nextToken()

	var columns []string
	if p.curTokenIs(lexer.LPAREN) {
		p.nextToken()
		for {
			if !p.curTokenIs(lexer.IDENT) {
				p.setErrorf("expected column name, got %q", p.curToken.Literal)
				return nil
			}
			columns = append(columns, p.curToken.Literal)
			p.nextToken()
			if !p.curTokenIs(lexer.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.curTokenIs(lexer.RPAREN) {
			p.setErrorf("expected ')' to close column list, got %q", p.curToken.Literal)
			return nil
		}
		p.nextToken()
	}

	if p.curTokenIs(lexer.SELECT) {
		if columns != nil {
			p.setErrorf("a column list is not supported with INSERT ... SELECT")
			return nil
		}
		sel := p.parseSelectStatement()
		if p.err != nil {
			return nil
		}
		return &ast.InsertSelect{Table: table, Select: sel}
	}

	if !p.curTokenIs(lexer.VALUES) {
		p.setErrorf("expected VALUES or SELECT, got %q", p.curToken.Literal)
		return nil
	}
	p.nextToken()

	stmt := &ast.InsertValues{Table: table, Columns: columns}
	for {
		if !p.curTokenIs(lexer.LPAREN) {
			p.setErrorf("expected '(' to start a VALUES row, got %q", p.curToken.Literal)
			return nil
		}
		p.nextToken()

		var row []ast.Expression
		for {
			expr := p.parseExpression()
			if p.err != nil {
				return nil
			}
			row = append(row, expr)
			if !p.curTokenIs(lexer.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.curTokenIs(lexer.RPAREN) {
			p.setErrorf("expected ')' to close a VALUES row, got %q", p.curToken.Literal)
			return nil
		}
		p.nextToken()
		stmt.Rows = append(stmt.Rows, row)

		if !p.curTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}

	return stmt
}

// parseDeleteStatement parses `DELETE FROM name [WHERE expr]`.
func (p *Parser) parseDeleteStatement() *ast.Delete {
	p.nextToken() // consume DELETE
	if !p.curTokenIs(lexer.FROM) {
		p.setErrorf("expected FROM after DELETE, got %q", p.curToken.Literal)
		return nil
	}
	p.nextToken()

	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected table name, got %q", p.curToken.Literal)
		return nil
	}
	stmt := &ast.Delete{Table: p.curToken.Literal}
	p.nextToken()

	if p.curTokenIs(lexer.WHERE) {
		p.nextToken()
		stmt.Where = p.parseExpression()
		if p.err != nil {
			return nil
		}
	}
	return stmt
}

// parseUpdateStatement parses `UPDATE name SET col=expr, ... [WHERE expr]`.
func (p *Parser) parseUpdateStatement() *ast.Update {
	p.nextToken() // consume UPDATE
	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected table name, got %q", p.curToken.Literal)
		return nil
	}
	stmt := &ast.Update{Table: p.curToken.Literal}
	p.nextToken()

	if !p.curTokenIs(lexer.SET) {
		p.setErrorf("expected SET after table name, got %q", p.curToken.Literal)
		return nil
	}
	p.nextToken()

	for {
		if !p.curTokenIs(lexer.IDENT) {
			p.setErrorf("expected column name in SET clause, got %q", p.curToken.Literal)
			return nil
		}
		col := p.curToken.Literal
		p.nextToken()

		if !(p.curTokenIs(lexer.ASSIGN) || p.curTokenIs(lexer.EQ)) {
			p.setErrorf("expected '=' in SET clause, got %q", p.curToken.Literal)
			return nil
		}
		p.nextToken()

		val := p.parseExpression()
		if p.err != nil {
			return nil
		}
		stmt.Set = append(stmt.Set, ast.Assignment{Column: col, Value: val})

		if !p.curTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}

	if p.curTokenIs(lexer.WHERE) {
		p.nextToken()
		stmt.Where = p.parseExpression()
		if p.err != nil {
			return nil
		}
	}
	return stmt
}
