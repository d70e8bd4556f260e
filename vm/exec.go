package vm

import (
	"fmt"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/values"
)

type stack struct {
	items []values.Value
}

func (s *stack) push(v values.Value) { s.items = append(s.items, v) }

// exec runs a compiled Bytecode to a single value, per vm_exec. comp is
// only reached from an OpArrayComp instruction, since array
// comprehensions keep their one true implementation in whatever owns
// for-in iteration semantics rather than duplicating it here. fallback
// is not called here: Eval routes unsupported expressions to it before
// anything is compiled.
func exec(bc *Bytecode, e values.Environment, caller values.Caller, comp ArrayCompEvaluator, fallback Fallback) (values.Value, error) {
	var st stack
	pop := func(pos ast.Pos) (values.Value, error) {
		if len(st.items) == 0 {
			return nil, fmt.Errorf("Runtime error at %d:%d: VM stack underflow", pos.Line, pos.Col)
		}
		v := st.items[len(st.items)-1]
		st.items = st.items[:len(st.items)-1]
		return v, nil
	}

	for _, in := range bc.Instrs {
		switch in.Op {
		case OpPushInt:
			st.push(values.Int{Value: in.Int})
		case OpPushString:
			st.push(values.String{Value: in.Str})
		case OpPushBool:
			st.push(values.Bool{Value: in.Int != 0})
		case OpPushNull:
			st.push(values.Null{})
		case OpLoad:
			v, ok := e.Lookup(in.Str)
			if !ok {
				return nil, fmt.Errorf("Runtime error at %d:%d: undefined variable: %s", in.Pos.Line, in.Pos.Col, in.Str)
			}
			st.push(v)
		case OpArrayMake:
			n := int(in.Int)
			if len(st.items) < n {
				return nil, fmt.Errorf("Runtime error at %d:%d: invalid array build", in.Pos.Line, in.Pos.Col)
			}
			elems := make([]values.Value, n)
			copy(elems, st.items[len(st.items)-n:])
			st.items = st.items[:len(st.items)-n]
			st.push(values.NewArray(elems))
		case OpArrayComp:
			v, err := comp.EvalArrayComp(in.Node, e)
			if err != nil {
				return nil, err
			}
			st.push(v)
		case OpObjectNew:
			st.push(values.NewObject(values.KindPlain))
		case OpObjectSetKey:
			val, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			objVal, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			obj, ok := objVal.(*values.Object)
			if !ok {
				return nil, fmt.Errorf("Runtime error at %d:%d: object build expected object value", in.Pos.Line, in.Pos.Col)
			}
			obj.Set(in.Str, val)
			st.push(obj)
		case OpIndexGet:
			idx, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			left, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			switch l := left.(type) {
			case *values.Array:
				i, ok := idx.(values.Int)
				if !ok {
					return nil, fmt.Errorf("Runtime error at %d:%d: indexing expects array[int] or object[string]", in.Pos.Line, in.Pos.Col)
				}
				if i.Value < 0 || int(i.Value) >= len(l.Elements) {
					st.push(values.Null{})
				} else {
					st.push(l.Elements[i.Value])
				}
			case *values.Object:
				s, ok := idx.(values.String)
				if !ok {
					return nil, fmt.Errorf("Runtime error at %d:%d: indexing expects array[int] or object[string]", in.Pos.Line, in.Pos.Col)
				}
				v, ok := l.Get(s.Value)
				if !ok {
					v = values.Null{}
				}
				st.push(v)
			default:
				return nil, fmt.Errorf("Runtime error at %d:%d: indexing expects array[int] or object[string]", in.Pos.Line, in.Pos.Col)
			}
		case OpDotGet:
			left, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			obj, ok := left.(*values.Object)
			if !ok {
				return nil, fmt.Errorf("Runtime error at %d:%d: value of type %s has no members", in.Pos.Line, in.Pos.Col, values.TypeName(left))
			}
			v, ok := obj.Get(in.Str)
			if !ok {
				v = values.Null{}
			}
			st.push(v)
		case OpNeg:
			right, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			i, ok := right.(values.Int)
			if !ok {
				return nil, fmt.Errorf("Runtime error at %d:%d: unary '-' expects integer", in.Pos.Line, in.Pos.Col)
			}
			st.push(values.Int{Value: -i.Value})
		case OpNot:
			right, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			st.push(values.Bool{Value: !values.Truthy(right)})
		case OpAdd:
			right, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			left, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			if li, ok := left.(values.Int); ok {
				if ri, ok := right.(values.Int); ok {
					st.push(values.Int{Value: li.Value + ri.Value})
					break
				}
			}
			if ls, ok := left.(values.String); ok {
				if rs, ok := right.(values.String); ok {
					st.push(values.String{Value: ls.Value + rs.Value})
					break
				}
			}
			return nil, fmt.Errorf("Runtime error at %d:%d: '+' expects int+int or string+string", in.Pos.Line, in.Pos.Col)
		case OpSub, OpMul, OpDiv, OpMod:
			right, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			left, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			li, lok := left.(values.Int)
			ri, rok := right.(values.Int)
			if !lok || !rok {
				return nil, fmt.Errorf("Runtime error at %d:%d: arithmetic expects integers", in.Pos.Line, in.Pos.Col)
			}
			switch in.Op {
			case OpSub:
				st.push(values.Int{Value: li.Value - ri.Value})
			case OpMul:
				st.push(values.Int{Value: li.Value * ri.Value})
			case OpDiv:
				if ri.Value == 0 {
					return nil, fmt.Errorf("Runtime error at %d:%d: division by zero", in.Pos.Line, in.Pos.Col)
				}
				st.push(values.Int{Value: li.Value / ri.Value})
			case OpMod:
				if ri.Value == 0 {
					return nil, fmt.Errorf("Runtime error at %d:%d: division by zero", in.Pos.Line, in.Pos.Col)
				}
				st.push(values.Int{Value: li.Value % ri.Value})
			}
		case OpEq, OpNeq:
			right, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			left, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			eq := values.Equal(left, right)
			if in.Op == OpNeq {
				eq = !eq
			}
			st.push(values.Bool{Value: eq})
		case OpAnd, OpOr:
			// Both operands are compiled eagerly (unlike the tree
			// interpreter's short-circuit &&/||): the bytecode form
			// always evaluates both sides before combining them,
			// matching the reference VM exactly.
			right, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			left, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			lv, rv := values.Truthy(left), values.Truthy(right)
			if in.Op == OpAnd {
				st.push(values.Bool{Value: lv && rv})
			} else {
				st.push(values.Bool{Value: lv || rv})
			}
		case OpCoalesce:
			right, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			left, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			if _, isNull := left.(values.Null); isNull {
				st.push(right)
			} else {
				st.push(left)
			}
		case OpLt, OpGt, OpLe, OpGe:
			right, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			left, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			li, lok := left.(values.Int)
			ri, rok := right.(values.Int)
			if !lok || !rok {
				return nil, fmt.Errorf("Runtime error at %d:%d: comparison expects integers", in.Pos.Line, in.Pos.Col)
			}
			var ok bool
			switch in.Op {
			case OpLt:
				ok = li.Value < ri.Value
			case OpGt:
				ok = li.Value > ri.Value
			case OpLe:
				ok = li.Value <= ri.Value
			case OpGe:
				ok = li.Value >= ri.Value
			}
			st.push(values.Bool{Value: ok})
		case OpCall:
			argc := int(in.Int)
			if len(st.items) < argc+1 {
				return nil, fmt.Errorf("Runtime error at %d:%d: invalid call frame", in.Pos.Line, in.Pos.Col)
			}
			args := make([]values.Value, argc)
			copy(args, st.items[len(st.items)-argc:])
			st.items = st.items[:len(st.items)-argc]
			callee, err := pop(in.Pos)
			if err != nil {
				return nil, err
			}
			out, err := caller.Call(callee, args)
			if err != nil {
				return nil, err
			}
			st.push(out)
		}
	}

	if len(st.items) == 0 {
		return values.Null{}, nil
	}
	return st.items[len(st.items)-1], nil
}
