package parser

import (
	"github.com/Chahine-tech/gosql-engine/pkg/ast"
	"github.com/Chahine-tech/gosql-engine/pkg/lexer"
)

// parseCreateTableStatement parses
// `CREATE TABLE [IF NOT EXISTS] name (col_def [, ...])`.
func (p *Parser) parseCreateTableStatement() *ast.CreateTable {
	p.nextToken() // consume CREATE
	if !p.curTokenIs(lexer.TABLE) {
		p.setErrorf("expected TABLE after CREATE, got %q", p.curToken.Literal)
		return nil
	}
	p.nextToken()

	stmt := &ast.CreateTable{}
	if p.curTokenIs(lexer.IF) {
		p.nextToken()
		if !p.curTokenIs(lexer.NOT) {
			p.setErrorf("expected NOT after IF, got %q", p.curToken.Literal)
			return nil
		}
		p.nextToken()
		if !p.curTokenIs(lexer.EXISTS) {
			p.setErrorf("expected EXISTS after IF NOT, got %q", p.curToken.Literal)
			return nil
		}
		p.nextToken()
		stmt.IfNotExists = true
	}

	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected table name, got %q", p.curToken.Literal)
		return nil
	}
	stmt.Name = p.curToken.Literal
	p.nextToken()

	if !p.curTokenIs(lexer.LPAREN) {
		p.setErrorf("expected '(' after table name, got %q", p.curToken.Literal)
		return nil
	}
	p.nextToken()

	for {
		col := p.parseColumnDef()
		if p.err != nil {
			return nil
		}
		stmt.Columns = append(stmt.Columns, col)
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

	return stmt
}

func (p *Parser) parseColumnDef() ast.ColumnDef {
	var col ast.ColumnDef
	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected column name, got %q", p.curToken.Literal)
		return col
	}
	col.Name = p.curToken.Literal
	p.nextToken()

	switch p.curToken.Type {
	case lexer.INTEGER:
		col.Type = ast.ColumnTypeInteger
		p.nextToken()
	case lexer.TEXT:
		col.Type = ast.ColumnTypeText
		p.nextToken()
	}

	if p.curTokenIs(lexer.PRIMARY) {
		p.nextToken()
		if !p.curTokenIs(lexer.KEY) {
			p.setErrorf("expected KEY after PRIMARY, got %q", p.curToken.Literal)
			return col
		}
		p.nextToken()
		col.PrimaryKey = true
	}

	return col
}

// parseDropTableStatement parses `DROP TABLE name`.
func (p *Parser) parseDropTableStatement() *ast.DropTable {
	p.nextToken() // consume DROP
	if !p.curTokenIs(lexer.TABLE) {
		p.setErrorf("expected TABLE after DROP, got %q", p.curToken.Literal)
		return nil
	}
	p.nextToken()

	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected table name, got %q", p.curToken.Literal)
		return nil
	}
	name := p.curToken.Literal
	p.nextToken()
	return &ast.DropTable{Name: name}
}

// parseAlterTableStatement parses `ALTER TABLE name RENAME TO new_name` and
// `ALTER TABLE name ADD [COLUMN] col_def`.
func (p *Parser) parseAlterTableStatement() ast.Statement {
	p.nextToken() // consume ALTER
	if !p.curTokenIs(lexer.TABLE) {
		p.setErrorf("expected TABLE after ALTER, got %q", p.curToken.Literal)
		return nil
	}
	p.nextToken()

	if !p.curTokenIs(lexer.IDENT) {
		p.setErrorf("expected table name, got %q", p.curToken.Literal)
		return nil
	}
	name := p.curToken.Literal
	p.nextToken()

	switch p.curToken.Type {
	case lexer.RENAME:
		p.nextToken()
		if !p.curTokenIs(lexer.TO) {
			p.setErrorf("expected TO after RENAME, got %q", p.curToken.Literal)
			return nil
		}
		p.nextToken()
		if !p.curTokenIs(lexer.IDENT) {
			p.setErrorf("expected new table name, got %q", p.curToken.Literal)
			return nil
		}
		newName := p.curToken.Literal
		p.nextToken()
		return &ast.AlterRenameTable{Name: name, NewName: newName}
	case lexer.ADD:
		p.nextToken()
		if p.curTokenIs(lexer.COLUMN) {
			p.nextToken()
		}
		col := p.parseColumnDef()
		if p.err != nil {
			return nil
		}
		return &ast.AlterAddColumn{Name: name, Column: col}
	default:
		p.setErrorf("expected RENAME or ADD after table name, got %q", p.curToken.Literal)
		return nil
	}
}
