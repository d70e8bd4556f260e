package interp

import (
	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/env"
	"github.com/nyxlang/nyx/values"
	"github.com/nyxlang/nyx/vm"
)

// vmArrayComp adapts the interpreter's own for-in iteration rules to the
// VM's ArrayCompEvaluator interface, so BC_ARRAY_COMP reuses exactly
// the same comprehension semantics as the tree-walking path instead of
// a second implementation.
type vmArrayComp struct {
	it         *Interpreter
	sourceFile string
}

func (c vmArrayComp) EvalArrayComp(comp *ast.ArrayComp, e values.Environment) (values.Value, error) {
	return c.it.evalArrayComp(comp, e.(*env.Environment), c.sourceFile)
}

func (it *Interpreter) evalExpr(expr ast.Expr, e *env.Environment, sourceFile string) (values.Value, error) {
	if it.VM != nil {
		fallback := func(expr ast.Expr, ev values.Environment) (values.Value, error) {
			return it.evalExprTree(expr, e, sourceFile)
		}
		return it.VM.Eval(expr, e, it, vmArrayComp{it, sourceFile}, fallback)
	}
	return it.evalExprTree(expr, e, sourceFile)
}

func (it *Interpreter) evalExprTree(expr ast.Expr, e *env.Environment, sourceFile string) (values.Value, error) {
	switch n := expr.(type) {
	case *ast.IntLit:
		return values.Int{Value: n.Value}, nil
	case *ast.StringLit:
		return values.String{Value: n.Value}, nil
	case *ast.BoolLit:
		return values.Bool{Value: n.Value}, nil
	case *ast.NullLit:
		return values.Null{}, nil
	case *ast.Ident:
		v, ok := e.Lookup(n.Name)
		if !ok {
			return nil, rerr(n.Pos(), "undefined variable: %s", n.Name)
		}
		return v, nil
	case *ast.ArrayLit:
		elems := make([]values.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := it.evalExpr(el, e, sourceFile)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		if err := it.AllocQuota.tick(n.Pos(), "allocation quota"); err != nil {
			return nil, err
		}
		return values.NewArray(elems), nil
	case *ast.ArrayComp:
		if err := it.AllocQuota.tick(n.Pos(), "allocation quota"); err != nil {
			return nil, err
		}
		return it.evalArrayComp(n, e, sourceFile)
	case *ast.ObjectLit:
		if err := it.AllocQuota.tick(n.Pos(), "allocation quota"); err != nil {
			return nil, err
		}
		obj := values.NewObject(values.KindPlain)
		for i, k := range n.Keys {
			v, err := it.evalExpr(n.Values[i], e, sourceFile)
			if err != nil {
				return nil, err
			}
			obj.Set(k, v)
		}
		return obj, nil
	case *ast.IndexExpr:
		return it.evalIndex(n, e, sourceFile)
	case *ast.MemberExpr:
		return it.evalMember(n, e, sourceFile)
	case *ast.UnaryExpr:
		return it.evalUnary(n, e, sourceFile)
	case *ast.BinaryExpr:
		return it.evalBinary(n, e, sourceFile)
	case *ast.CallExpr:
		return it.evalCall(n, e, sourceFile)
	default:
		return nil, rerr(expr.Pos(), "unhandled expression type %T", expr)
	}
}

func (it *Interpreter) evalIndex(n *ast.IndexExpr, e *env.Environment, sourceFile string) (values.Value, error) {
	recv, err := it.evalExpr(n.Recv, e, sourceFile)
	if err != nil {
		return nil, err
	}
	idx, err := it.evalExpr(n.Index, e, sourceFile)
	if err != nil {
		return nil, err
	}
	switch r := recv.(type) {
	case *values.Array:
		i, ok := idx.(values.Int)
		if !ok {
			return nil, rerr(n.Pos(), "array index must be an int")
		}
		if i.Value < 0 || i.Value >= int64(len(r.Elements)) {
			// Reads out of range yield null; only indexed assignment
			// errors (see assignIndex) — spec.md §7.
			return values.Null{}, nil
		}
		return r.Elements[i.Value], nil
	case *values.Object:
		key, ok := idx.(values.String)
		if !ok {
			return nil, rerr(n.Pos(), "object index must be a string")
		}
		v, ok := r.Get(key.Value)
		if !ok {
			return values.Null{}, nil
		}
		return v, nil
	case values.String:
		i, ok := idx.(values.Int)
		if !ok {
			return nil, rerr(n.Pos(), "string index must be an int")
		}
		if i.Value < 0 || i.Value >= int64(len(r.Value)) {
			return nil, rerr(n.Pos(), "string index out of range: %d", i.Value)
		}
		return values.String{Value: string(r.Value[i.Value])}, nil
	default:
		return nil, rerr(n.Pos(), "value of type %s is not indexable", recv.Type())
	}
}

// assignIndex is the lvalue counterpart of evalIndex, used by
// AssignIndexStmt. Strings are immutable, so indexed assignment into a
// string is a runtime error.
func (it *Interpreter) assignIndex(pos ast.Pos, recv, idx, val values.Value) error {
	switch r := recv.(type) {
	case *values.Array:
		i, ok := idx.(values.Int)
		if !ok {
			return rerr(pos, "array index must be an int")
		}
		if i.Value < 0 || i.Value >= int64(len(r.Elements)) {
			return rerr(pos, "array index out of range: %d", i.Value)
		}
		r.Elements[i.Value] = val
		return nil
	case *values.Object:
		key, ok := idx.(values.String)
		if !ok {
			return rerr(pos, "object index must be a string")
		}
		r.Set(key.Value, val)
		return nil
	default:
		return rerr(pos, "value of type %s is not assignable by index", recv.Type())
	}
}

func (it *Interpreter) evalMember(n *ast.MemberExpr, e *env.Environment, sourceFile string) (values.Value, error) {
	recv, err := it.evalExpr(n.Recv, e, sourceFile)
	if err != nil {
		return nil, err
	}
	obj, ok := recv.(*values.Object)
	if !ok {
		return nil, rerr(n.Pos(), "value of type %s has no members", recv.Type())
	}
	v, ok := obj.Get(n.Name)
	if !ok {
		return values.Null{}, nil
	}
	return v, nil
}

func (it *Interpreter) evalUnary(n *ast.UnaryExpr, e *env.Environment, sourceFile string) (values.Value, error) {
	operand, err := it.evalExpr(n.Operand, e, sourceFile)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.UnaryNeg:
		i, ok := operand.(values.Int)
		if !ok {
			return nil, rerr(n.Pos(), "unary '-' requires an int")
		}
		return values.Int{Value: -i.Value}, nil
	case ast.UnaryNot:
		return values.Bool{Value: !values.Truthy(operand)}, nil
	default:
		return nil, rerr(n.Pos(), "unhandled unary operator")
	}
}

func (it *Interpreter) evalBinary(n *ast.BinaryExpr, e *env.Environment, sourceFile string) (values.Value, error) {
	// Logical operators short-circuit and so must not eagerly evaluate
	// the right-hand side.
	switch n.Op {
	case ast.BinAnd:
		l, err := it.evalExpr(n.Left, e, sourceFile)
		if err != nil {
			return nil, err
		}
		if !values.Truthy(l) {
			return values.Bool{Value: false}, nil
		}
		r, err := it.evalExpr(n.Right, e, sourceFile)
		if err != nil {
			return nil, err
		}
		return values.Bool{Value: values.Truthy(r)}, nil
	case ast.BinOr:
		l, err := it.evalExpr(n.Left, e, sourceFile)
		if err != nil {
			return nil, err
		}
		if values.Truthy(l) {
			return values.Bool{Value: true}, nil
		}
		r, err := it.evalExpr(n.Right, e, sourceFile)
		if err != nil {
			return nil, err
		}
		return values.Bool{Value: values.Truthy(r)}, nil
	case ast.BinCoalesce:
		l, err := it.evalExpr(n.Left, e, sourceFile)
		if err != nil {
			return nil, err
		}
		if _, isNull := l.(values.Null); !isNull {
			return l, nil
		}
		return it.evalExpr(n.Right, e, sourceFile)
	}

	left, err := it.evalExpr(n.Left, e, sourceFile)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(n.Right, e, sourceFile)
	if err != nil {
		return nil, err
	}

	if n.Op == ast.BinEq {
		return values.Bool{Value: values.Equal(left, right)}, nil
	}
	if n.Op == ast.BinNeq {
		return values.Bool{Value: !values.Equal(left, right)}, nil
	}

	switch n.Op {
	case ast.BinAdd:
		if ls, ok := left.(values.String); ok {
			rs, ok := right.(values.String)
			if !ok {
				return nil, rerr(n.Pos(), "'+' on a string requires a string")
			}
			return values.String{Value: ls.Value + rs.Value}, nil
		}
	}

	li, lok := left.(values.Int)
	ri, rok := right.(values.Int)
	if !lok || !rok {
		return nil, rerr(n.Pos(), "operator requires two ints (or, for '+', two strings)")
	}
	switch n.Op {
	case ast.BinAdd:
		return values.Int{Value: li.Value + ri.Value}, nil
	case ast.BinSub:
		return values.Int{Value: li.Value - ri.Value}, nil
	case ast.BinMul:
		return values.Int{Value: li.Value * ri.Value}, nil
	case ast.BinDiv:
		if ri.Value == 0 {
			return nil, rerr(n.Pos(), "division by zero")
		}
		return values.Int{Value: li.Value / ri.Value}, nil
	case ast.BinMod:
		if ri.Value == 0 {
			return nil, rerr(n.Pos(), "division by zero")
		}
		return values.Int{Value: li.Value % ri.Value}, nil
	case ast.BinLt:
		return values.Bool{Value: li.Value < ri.Value}, nil
	case ast.BinGt:
		return values.Bool{Value: li.Value > ri.Value}, nil
	case ast.BinLe:
		return values.Bool{Value: li.Value <= ri.Value}, nil
	case ast.BinGe:
		return values.Bool{Value: li.Value >= ri.Value}, nil
	default:
		return nil, rerr(n.Pos(), "unhandled binary operator")
	}
}
