package parser

import (
	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/lexer"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.SWITCH:
		return p.parseSwitchStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForInStmt()
	case lexer.BREAK:
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Base: ast.NewBase(pos)}, nil
	case lexer.CONTINUE:
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Base: ast.NewBase(pos)}, nil
	case lexer.CLASS:
		return p.parseClassStmt()
	case lexer.MODULE:
		return p.parseModuleStmt()
	case lexer.TYPEALIAS:
		return p.parseTypeAliasStmt()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.FN:
		return p.parseFuncDeclStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.THROW:
		return p.parseThrowStmt()
	case lexer.IMPORT:
		return p.parseImportStmt()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseLetStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'let'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected identifier after 'let', got %s", p.cur.Type)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.NewLetStmt(pos, name, value), nil
}

// parseSimpleStmt handles expression statements and the three assignment
// forms (to a name, a member, or an index), which all start the same way:
// parse an expression, then look for '='.
func (p *Parser) parseSimpleStmt() (ast.Stmt, error) {
	pos := p.pos()
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.ASSIGN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.Ident:
			return &ast.AssignNameStmt{Base: ast.NewBase(pos), Name: target.Name, Value: value}, nil
		case *ast.MemberExpr:
			return &ast.AssignMemberStmt{Base: ast.NewBase(pos), Recv: target.Recv, Name: target.Name, Value: value}, nil
		case *ast.IndexExpr:
			return &ast.AssignIndexStmt{Base: ast.NewBase(pos), Recv: target.Recv, Index: target.Index, Value: value}, nil
		default:
			return nil, p.errf("invalid assignment target")
		}
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.NewExprStmt(pos, expr), nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'if'
		return nil, err
	}
	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Base: ast.NewBase(pos), Cond: cond, Then: then}
	if p.cur.Type == lexer.ELSE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.IF {
			elseIf, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			stmt.Else = &ast.Block{Stmts: []ast.Stmt{elseIf}}
		} else {
			elseBlock, err := p.parseBraceBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	}
	return stmt, nil
}

func (p *Parser) parseSwitchStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'switch'
		return nil, err
	}
	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	subject, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	stmt := &ast.SwitchStmt{Base: ast.NewBase(pos)}
	sawDefault := false
	for p.cur.Type != lexer.RBRACE {
		switch p.cur.Type {
		case lexer.CASE:
			if err := p.advance(); err != nil {
				return nil, err
			}
			var values []ast.Expr
			for {
				v, err := p.parseExpression(precLowest)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
				if p.cur.Type != lexer.COMMA {
					break
				}
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
			if err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			body, err := p.parseBraceBlock()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, &ast.SwitchCase{Values: values, Body: body})
		case lexer.DEFAULT:
			if sawDefault {
				return nil, p.errf("switch already has a default case")
			}
			sawDefault = true
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			body, err := p.parseBraceBlock()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, &ast.SwitchCase{Body: body, IsDefault: true})
		default:
			return nil, p.errf("expected 'case' or 'default', got %s", p.cur.Type)
		}
	}
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'while'
		return nil, err
	}
	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Base: ast.NewBase(pos), Cond: cond, Body: body}, nil
}

// parseForInStmt parses `for (x in iter) { ... }` and the two-variable
// `for (k, v in iter) { ... }` form.
func (p *Parser) parseForInStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'for'
		return nil, err
	}
	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected identifier in for-in binding, got %s", p.cur.Type)
	}
	first := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	var key, value string
	if p.cur.Type == lexer.COMMA {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.IDENT {
			return nil, p.errf("expected identifier after ',' in for-in binding, got %s", p.cur.Type)
		}
		key = first
		value = p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		value = first
	}
	if err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForInStmt{Base: ast.NewBase(pos), Key: key, Value: value, Iter: iter, Body: body}, nil
}

func (p *Parser) parseClassStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'class'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected class name, got %s", p.cur.Type)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ClassStmt{Base: ast.NewBase(pos), Name: name, Body: body}, nil
}

func (p *Parser) parseModuleStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'module'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected module name, got %s", p.cur.Type)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ModuleStmt{Base: ast.NewBase(pos), Name: name, Body: body}, nil
}

// parseTypeAliasStmt parses `typealias Name = Target;`. It carries no
// runtime behavior; see ast.TypeAliasStmt.
func (p *Parser) parseTypeAliasStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'typealias'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected alias name, got %s", p.cur.Type)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected target type name, got %s", p.cur.Type)
	}
	target := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.TypeAliasStmt{Base: ast.NewBase(pos), Name: name, Target: target}, nil
}

func (p *Parser) parseTryStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'try'
		return nil, err
	}
	tryBlock, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.CATCH); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected identifier in catch binding, got %s", p.cur.Type)
	}
	catchName := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	catchBlock, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.TryStmt{Base: ast.NewBase(pos), Try: tryBlock, CatchName: catchName, Catch: catchBlock}, nil
}

func (p *Parser) parseFuncDeclStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'fn'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected function name, got %s", p.cur.Type)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDeclStmt{Base: ast.NewBase(pos), Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseParamList() ([]string, error) {
	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for p.cur.Type != lexer.RPAREN {
		if p.cur.Type != lexer.IDENT {
			return nil, p.errf("expected parameter name, got %s", p.cur.Type)
		}
		params = append(params, p.cur.Literal)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // past ')'
		return nil, err
	}
	return params, nil
}

// parseReturnStmt parses `return;` (bare, yields null) or `return expr;`.
func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'return'
		return nil, err
	}
	if p.cur.Type == lexer.SEMI {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Base: ast.NewBase(pos)}, nil
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Base: ast.NewBase(pos), Value: value}, nil
}

func (p *Parser) parseThrowStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'throw'
		return nil, err
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.ThrowStmt{Base: ast.NewBase(pos), Value: value}, nil
}

func (p *Parser) parseImportStmt() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past 'import'
		return nil, err
	}
	if p.cur.Type != lexer.STR {
		return nil, p.errf("expected string path after 'import', got %s", p.cur.Type)
	}
	path := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Base: ast.NewBase(pos), Path: path}, nil
}
