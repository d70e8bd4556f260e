package parser

import (
	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/lexer"
)

// Precedence levels, lowest to highest, per the operator table: coalesce
// < or < and < equality < compare < additive < multiplicative < prefix
// < postfix (call/index/member).
const (
	precLowest int = iota
	precCoalesce
	precOr
	precAnd
	precEquality
	precCompare
	precAdditive
	precMultiplicative
	precPrefix
	precPostfix
)

func infixPrecedence(t lexer.Type) int {
	switch t {
	case lexer.COALESCE:
		return precCoalesce
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.EQ, lexer.NEQ:
		return precEquality
	case lexer.LT, lexer.GT, lexer.LE, lexer.GE:
		return precCompare
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return precMultiplicative
	case lexer.LPAREN, lexer.LBRACKET, lexer.DOT:
		return precPostfix
	default:
		return precLowest
	}
}

var binaryOps = map[lexer.Type]ast.BinaryOp{
	lexer.PLUS:     ast.BinAdd,
	lexer.MINUS:    ast.BinSub,
	lexer.STAR:     ast.BinMul,
	lexer.SLASH:    ast.BinDiv,
	lexer.PERCENT:  ast.BinMod,
	lexer.EQ:       ast.BinEq,
	lexer.NEQ:      ast.BinNeq,
	lexer.LT:       ast.BinLt,
	lexer.GT:       ast.BinGt,
	lexer.LE:       ast.BinLe,
	lexer.GE:       ast.BinGe,
	lexer.AND:      ast.BinAnd,
	lexer.OR:       ast.BinOr,
	lexer.COALESCE: ast.BinCoalesce,
}

// parseExpression implements Pratt (precedence-climbing) parsing: parse
// a prefix/primary term, then repeatedly fold in infix and postfix
// operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec := infixPrecedence(p.cur.Type)
		if prec <= minPrec {
			return left, nil
		}
		switch p.cur.Type {
		case lexer.LPAREN:
			left, err = p.parseCall(left)
		case lexer.LBRACKET:
			left, err = p.parseIndex(left)
		case lexer.DOT:
			left, err = p.parseMember(left)
		default:
			left, err = p.parseBinary(left, prec)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseBinary(left ast.Expr, prec int) (ast.Expr, error) {
	pos := p.pos()
	op, ok := binaryOps[p.cur.Type]
	if !ok {
		return nil, p.errf("unexpected token %s in expression", p.cur.Type)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryExpr(pos, op, left, right), nil
}

func (p *Parser) parsePrefix() (ast.Expr, error) {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.MINUS:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpression(precPrefix)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, ast.UnaryNeg, operand), nil
	case lexer.BANG:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpression(precPrefix)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, ast.UnaryNot, operand), nil
	case lexer.INT:
		v := p.cur.IntVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewIntLit(pos, v), nil
	case lexer.STR:
		v := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewStringLit(pos, v), nil
	case lexer.TRUE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolLit(pos, true), nil
	case lexer.FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolLit(pos, false), nil
	case lexer.NULL:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewNullLit(pos), nil
	case lexer.IDENT:
		name := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewIdent(pos, name), nil
	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LBRACKET:
		return p.parseArrayLitOrComp(pos)
	case lexer.LBRACE:
		return p.parseObjectLit(pos)
	default:
		return nil, p.errf("unexpected token %s in expression", p.cur.Type)
	}
}

func (p *Parser) parseCall(callee ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past '('
		return nil, err
	}
	var args []ast.Expr
	for p.cur.Type != lexer.RPAREN {
		arg, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // past ')'
		return nil, err
	}
	return ast.NewCallExpr(pos, callee, args), nil
}

func (p *Parser) parseIndex(recv ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past '['
		return nil, err
	}
	idx, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return ast.NewIndexExpr(pos, recv, idx), nil
}

func (p *Parser) parseMember(recv ast.Expr) (ast.Expr, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // past '.'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected member name after '.', got %s", p.cur.Type)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.NewMemberExpr(pos, recv, name), nil
}

// parseArrayLitOrComp disambiguates `[a, b, c]` from
// `[expr for name in iter]` / `[expr for k, v in iter if cond]` by
// parsing the first element and checking whether 'for' follows.
func (p *Parser) parseArrayLitOrComp(pos ast.Pos) (ast.Expr, error) {
	if err := p.advance(); err != nil { // past '['
		return nil, err
	}
	if p.cur.Type == lexer.RBRACKET {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewArrayLit(pos, nil), nil
	}
	first, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.FOR {
		return p.parseArrayCompTail(pos, first)
	}
	elems := []ast.Expr{first}
	for p.cur.Type == lexer.COMMA {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.RBRACKET {
			break
		}
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return ast.NewArrayLit(pos, elems), nil
}

func (p *Parser) parseArrayCompTail(pos ast.Pos, result ast.Expr) (ast.Expr, error) {
	if err := p.advance(); err != nil { // past 'for'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf("expected identifier in comprehension binding, got %s", p.cur.Type)
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
			return nil, p.errf("expected identifier after ',' in comprehension binding, got %s", p.cur.Type)
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
	var filter ast.Expr
	if p.cur.Type == lexer.IF {
		if err := p.advance(); err != nil {
			return nil, err
		}
		filter, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ArrayComp{Base: ast.NewBase(pos), Result: result, Key: key, Value: value, Iter: iter, Filter: filter}, nil
}

// parseObjectLit parses `{ key: value, ... }`. Keys are bare identifiers
// or string literals; duplicate keys keep only the last value, matching
// the data-model invariant.
func (p *Parser) parseObjectLit(pos ast.Pos) (ast.Expr, error) {
	if err := p.advance(); err != nil { // past '{'
		return nil, err
	}
	lit := &ast.ObjectLit{Base: ast.NewBase(pos)}
	seen := map[string]int{}
	for p.cur.Type != lexer.RBRACE {
		var key string
		switch p.cur.Type {
		case lexer.IDENT:
			key = p.cur.Literal
			if err := p.advance(); err != nil {
				return nil, err
			}
		case lexer.STR:
			key = p.cur.Literal
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errf("expected object key, got %s", p.cur.Type)
		}
		if err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if idx, ok := seen[key]; ok {
			lit.Values[idx] = value
		} else {
			seen[key] = len(lit.Keys)
			lit.Keys = append(lit.Keys, key)
			lit.Values = append(lit.Values, value)
		}
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // past '}'
		return nil, err
	}
	return lit, nil
}
