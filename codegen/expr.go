package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/runtime"
)

var runtimeBuiltinNames = runtime.BuiltinNames

// genExpr translates an expression node to a C expression string of
// type NyxValue. It never emits statements of its own — every
// sub-translation composes into one expression, except array
// comprehensions, which hoist their loop body into the comprehension
// dispatcher (comp.go) and leave only a dispatch call at the use site.
func (g *gen) genExpr(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("nyx_int(%dLL)", n.Value), nil
	case *ast.StringLit:
		return fmt.Sprintf("nyx_string(%s)", cStringLit(n.Value)), nil
	case *ast.BoolLit:
		if n.Value {
			return "nyx_bool(1)", nil
		}
		return "nyx_bool(0)", nil
	case *ast.NullLit:
		return "nyx_null()", nil

	case *ast.Ident:
		if local, ok := g.lookup(n.Name); ok {
			return local, nil
		}
		if _, ok := g.fnSeen[n.Name]; ok {
			return fmt.Sprintf("nyx_function(%q)", n.Name), nil
		}
		if runtimeBuiltinNames[n.Name] {
			return fmt.Sprintf("nyx_builtin(%q)", n.Name), nil
		}
		return "", errAt(n.Pos(), "undefined identifier %q", n.Name)

	case *ast.ArrayLit:
		if len(n.Elements) == 0 {
			return "nyx_array_new(NULL, 0)", nil
		}
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			s, err := g.genExpr(el)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return fmt.Sprintf("nyx_array_new((NyxValue[]){%s}, %d)", strings.Join(parts, ", "), len(parts)), nil

	case *ast.ArrayComp:
		return g.genArrayComp(n)

	case *ast.ObjectLit:
		return g.genObjectLit(n)

	case *ast.IndexExpr:
		recv, err := g.genExpr(n.Recv)
		if err != nil {
			return "", err
		}
		idx, err := g.genExpr(n.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("nyx_index_get(%d, %d, %s, %s)", n.Pos().Line, n.Pos().Col, recv, idx), nil

	case *ast.MemberExpr:
		recv, err := g.genExpr(n.Recv)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("nyx_member_get(%d, %d, %s, %q)", n.Pos().Line, n.Pos().Col, recv, n.Name), nil

	case *ast.UnaryExpr:
		operand, err := g.genExpr(n.Operand)
		if err != nil {
			return "", err
		}
		switch n.Op {
		case ast.UnaryNeg:
			return fmt.Sprintf("nyx_neg(%d, %d, %s)", n.Pos().Line, n.Pos().Col, operand), nil
		case ast.UnaryNot:
			return fmt.Sprintf("nyx_not(%s)", operand), nil
		}
		return "", errAt(n.Pos(), "codegen: unhandled unary operator")

	case *ast.BinaryExpr:
		return g.genBinary(n)

	case *ast.CallExpr:
		return g.genCall(n)
	}
	return "", errAt(e.Pos(), "codegen: unhandled expression type %T", e)
}

// cStringLit renders s as a C string literal; nyx string values are
// ASCII byte sequences, so only the characters C itself requires
// escaping in a string literal need handling.
func cStringLit(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c > 0x7e {
				fmt.Fprintf(&b, `\x%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

var binOpHelper = map[ast.BinaryOp]string{
	ast.BinAdd: "nyx_add", ast.BinSub: "nyx_sub", ast.BinMul: "nyx_mul",
	ast.BinDiv: "nyx_div", ast.BinMod: "nyx_mod",
	ast.BinLt: "nyx_lt", ast.BinGt: "nyx_gt", ast.BinLe: "nyx_le", ast.BinGe: "nyx_ge",
}

func (g *gen) genBinary(n *ast.BinaryExpr) (string, error) {
	left, err := g.genExpr(n.Left)
	if err != nil {
		return "", err
	}
	right, err := g.genExpr(n.Right)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case ast.BinEq:
		return fmt.Sprintf("nyx_eq(%s, %s)", left, right), nil
	case ast.BinNeq:
		return fmt.Sprintf("nyx_neq(%s, %s)", left, right), nil
	case ast.BinCoalesce:
		return fmt.Sprintf("nyx_coalesce(%s, %s)", left, right), nil
	case ast.BinAnd:
		// Deliberately non-short-circuiting: both operands are always
		// evaluated (bitwise & instead of && forces it), matching the
		// expression VM's OpAnd and the transpiler's documented quirk —
		// the tree interpreter alone short-circuits these.
		return fmt.Sprintf("nyx_bool(nyx_truthy(%s) & nyx_truthy(%s))", left, right), nil
	case ast.BinOr:
		return fmt.Sprintf("nyx_bool(nyx_truthy(%s) | nyx_truthy(%s))", left, right), nil
	}
	helper, ok := binOpHelper[n.Op]
	if !ok {
		return "", errAt(n.Pos(), "codegen: unhandled binary operator")
	}
	return fmt.Sprintf("%s(%d, %d, %s, %s)", helper, n.Pos().Line, n.Pos().Col, left, right), nil
}

func (g *gen) genObjectLit(n *ast.ObjectLit) (string, error) {
	if len(n.Keys) == 0 {
		return "nyx_object_literal(0, NULL, NULL)", nil
	}
	keyLits := make([]string, len(n.Keys))
	valExprs := make([]string, len(n.Values))
	for i := range n.Keys {
		keyLits[i] = cStringLit(n.Keys[i])
		v, err := g.genExpr(n.Values[i])
		if err != nil {
			return "", err
		}
		valExprs[i] = v
	}
	return fmt.Sprintf("nyx_object_literal(%d, (const char*[]){%s}, (NyxValue[]){%s})",
		len(n.Keys), strings.Join(keyLits, ", "), strings.Join(valExprs, ", ")), nil
}

// genCall picks the cheapest correct call form: a direct dispatch to a
// known user function or builtin by name when the callee is a bare
// identifier not shadowed by a local, else a fully generic call through
// a runtime value (covers member calls, bound methods, and calls
// through a variable holding a function value).
func (g *gen) genCall(n *ast.CallExpr) (string, error) {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		s, err := g.genExpr(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	argv := "NULL"
	if len(args) > 0 {
		argv = fmt.Sprintf("(NyxValue[]){%s}", strings.Join(args, ", "))
	}
	argc := strconv.Itoa(len(args))

	if ident, ok := n.Callee.(*ast.Ident); ok {
		if _, shadowed := g.lookup(ident.Name); !shadowed {
			if _, ok := g.fnSeen[ident.Name]; ok {
				return fmt.Sprintf("nyx_dispatch_user(%q, %s, %s)", ident.Name, argv, argc), nil
			}
			if runtimeBuiltinNames[ident.Name] {
				return fmt.Sprintf("nyx_call_builtin(%q, %s, %s)", ident.Name, argv, argc), nil
			}
			return "", errAt(n.Pos(), "undefined identifier %q", ident.Name)
		}
	}

	callee, err := g.genExpr(n.Callee)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("nyx_call(%s, %s, %s)", callee, argv, argc), nil
}
