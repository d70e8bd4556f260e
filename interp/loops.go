package interp

import (
	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/env"
	"github.com/nyxlang/nyx/values"
)

// execForIn implements both the single-variable and two-variable
// for-in forms over arrays (element, or index+element) and objects
// (key, or key+value), per §4.E.
func (it *Interpreter) execForIn(s *ast.ForInStmt, e *env.Environment, sourceFile string) (EvalResult, error) {
	iter, err := it.evalExpr(s.Iter, e, sourceFile)
	if err != nil {
		return EvalResult{}, err
	}
	switch coll := iter.(type) {
	case *values.Array:
		for i, elem := range coll.Elements {
			loopEnv := env.New(e)
			if s.Key != "" {
				loopEnv.Define(s.Key, values.Int{Value: int64(i)})
				loopEnv.Define(s.Value, elem)
			} else {
				loopEnv.Define(s.Value, elem)
			}
			result, err := it.execBlock(s.Body, loopEnv, sourceFile)
			if err != nil {
				return EvalResult{}, err
			}
			switch result.Control {
			case CtrlBreak:
				return none(values.Null{}), nil
			case CtrlReturn, CtrlThrow:
				return result, nil
			}
		}
		return none(values.Null{}), nil

	case *values.Object:
		for _, key := range coll.Keys {
			v, _ := coll.GetOwn(key)
			loopEnv := env.New(e)
			if s.Key != "" {
				loopEnv.Define(s.Key, values.String{Value: key})
				loopEnv.Define(s.Value, v)
			} else {
				loopEnv.Define(s.Value, values.String{Value: key})
			}
			result, err := it.execBlock(s.Body, loopEnv, sourceFile)
			if err != nil {
				return EvalResult{}, err
			}
			switch result.Control {
			case CtrlBreak:
				return none(values.Null{}), nil
			case CtrlReturn, CtrlThrow:
				return result, nil
			}
		}
		return none(values.Null{}), nil

	default:
		return EvalResult{}, rerr(s.Pos(), "value of type %s is not iterable", iter.Type())
	}
}

// evalArrayComp implements array-comprehension semantics: identical
// iteration rules to execForIn, but producing one Result value per
// accepted iteration instead of running a statement block.
func (it *Interpreter) evalArrayComp(n *ast.ArrayComp, e *env.Environment, sourceFile string) (values.Value, error) {
	iter, err := it.evalExpr(n.Iter, e, sourceFile)
	if err != nil {
		return nil, err
	}

	var out []values.Value
	accept := func(loopEnv *env.Environment) error {
		if n.Filter != nil {
			cond, err := it.evalExpr(n.Filter, loopEnv, sourceFile)
			if err != nil {
				return err
			}
			if !values.Truthy(cond) {
				return nil
			}
		}
		v, err := it.evalExpr(n.Result, loopEnv, sourceFile)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	}

	switch coll := iter.(type) {
	case *values.Array:
		for i, elem := range coll.Elements {
			loopEnv := env.New(e)
			if n.Key != "" {
				loopEnv.Define(n.Key, values.Int{Value: int64(i)})
				loopEnv.Define(n.Value, elem)
			} else {
				loopEnv.Define(n.Value, elem)
			}
			if err := accept(loopEnv); err != nil {
				return nil, err
			}
		}
	case *values.Object:
		for _, key := range coll.Keys {
			v, _ := coll.GetOwn(key)
			loopEnv := env.New(e)
			if n.Key != "" {
				loopEnv.Define(n.Key, values.String{Value: key})
				loopEnv.Define(n.Value, v)
			} else {
				loopEnv.Define(n.Value, values.String{Value: key})
			}
			if err := accept(loopEnv); err != nil {
				return nil, err
			}
		}
	default:
		return nil, rerr(n.Pos(), "value of type %s is not iterable", iter.Type())
	}
	return values.NewArray(out), nil
}
