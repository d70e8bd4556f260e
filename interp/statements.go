package interp

import (
	"fmt"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/env"
	"github.com/nyxlang/nyx/values"
)

// execBlock runs every statement in block against e in order, stopping
// and propagating the first non-None control result; otherwise the
// block's value is that of its last statement (null for an empty block).
// execBlockOpt's topLevel flag additionally prints expression statements
// whose value is non-null, mirroring the C code generator's top-level
// auto-print behavior.
func (it *Interpreter) execBlock(block *ast.Block, e *env.Environment, sourceFile string) (EvalResult, error) {
	return it.execBlockOpt(block, e, sourceFile, false)
}

func (it *Interpreter) execBlockOpt(block *ast.Block, e *env.Environment, sourceFile string, topLevel bool) (EvalResult, error) {
	last := values.Value(values.Null{})
	for _, stmt := range block.Stmts {
		result, err := it.execStmt(stmt, e, sourceFile, topLevel)
		if err != nil {
			return EvalResult{}, err
		}
		if result.Control != CtrlNone {
			return result, nil
		}
		last = result.Value
	}
	return none(last), nil
}

func (it *Interpreter) execStmt(stmt ast.Stmt, e *env.Environment, sourceFile string, topLevel bool) (EvalResult, error) {
	if it.Debug != nil {
		if err := it.Debug.BeforeStatement(stmt, e, sourceFile); err != nil {
			return EvalResult{}, err
		}
	}
	if err := it.StepQuota.tick(stmt.Pos(), "max step count"); err != nil {
		return EvalResult{}, err
	}

	switch s := stmt.(type) {
	case *ast.LetStmt:
		v, err := it.evalExpr(s.Value, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		e.Define(s.Name, v)
		return none(values.Null{}), nil

	case *ast.AssignNameStmt:
		v, err := it.evalExpr(s.Value, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		if err := e.Assign(s.Name, v); err != nil {
			return EvalResult{}, rerr(s.Pos(), "%s", err.Error())
		}
		return none(values.Null{}), nil

	case *ast.AssignMemberStmt:
		recv, err := it.evalExpr(s.Recv, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		obj, ok := recv.(*values.Object)
		if !ok {
			return EvalResult{}, rerr(s.Pos(), "member assignment target is not an object")
		}
		v, err := it.evalExpr(s.Value, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		obj.Set(s.Name, v)
		return none(values.Null{}), nil

	case *ast.AssignIndexStmt:
		recv, err := it.evalExpr(s.Recv, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		idx, err := it.evalExpr(s.Index, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		v, err := it.evalExpr(s.Value, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		if err := it.assignIndex(s.Pos(), recv, idx, v); err != nil {
			return EvalResult{}, err
		}
		return none(values.Null{}), nil

	case *ast.ExprStmt:
		v, err := it.evalExpr(s.X, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		if topLevel {
			if _, isNull := v.(values.Null); !isNull {
				fmt.Fprintln(it.Stdout, values.PrintRepr(v))
			}
		}
		return none(v), nil

	case *ast.IfStmt:
		cond, err := it.evalExpr(s.Cond, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		if values.Truthy(cond) {
			return it.execBlock(s.Then, env.New(e), sourceFile)
		} else if s.Else != nil {
			return it.execBlock(s.Else, env.New(e), sourceFile)
		}
		return none(values.Null{}), nil

	case *ast.SwitchStmt:
		return it.execSwitch(s, e, sourceFile)

	case *ast.WhileStmt:
		return it.execWhile(s, e, sourceFile)

	case *ast.ForInStmt:
		return it.execForIn(s, e, sourceFile)

	case *ast.BreakStmt:
		return EvalResult{Value: values.Null{}, Control: CtrlBreak}, nil

	case *ast.ContinueStmt:
		return EvalResult{Value: values.Null{}, Control: CtrlContinue}, nil

	case *ast.ClassStmt:
		return it.execClassOrModule(s.Body, e, sourceFile, values.KindClass, s.Name)

	case *ast.ModuleStmt:
		return it.execClassOrModule(s.Body, e, sourceFile, values.KindModule, s.Name)

	case *ast.TypeAliasStmt:
		return none(values.Null{}), nil

	case *ast.TryStmt:
		return it.execTry(s, e, sourceFile)

	case *ast.FuncDeclStmt:
		fn := &values.Function{Name: s.Name, Params: s.Params, Body: s.Body, Env: e, SourceFile: sourceFile}
		e.Define(s.Name, fn)
		return none(values.Null{}), nil

	case *ast.ReturnStmt:
		if s.Value == nil {
			return EvalResult{Value: values.Null{}, Control: CtrlReturn}, nil
		}
		v, err := it.evalExpr(s.Value, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		return EvalResult{Value: v, Control: CtrlReturn}, nil

	case *ast.ThrowStmt:
		v, err := it.evalExpr(s.Value, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		return EvalResult{Value: v, Control: CtrlThrow}, nil

	case *ast.ImportStmt:
		// Imports are resolved and inlined before execution begins (see
		// the resolver package); by the time the interpreter runs, no
		// ImportStmt nodes remain in the program. Tolerate one here only
		// because the grammar allows `import` anywhere syntactically.
		return none(values.Null{}), nil

	default:
		return EvalResult{}, rerr(stmt.Pos(), "unhandled statement type %T", stmt)
	}
}

// execClassOrModule evaluates a class/module body in its own
// environment, then copies every name it defined into a fresh Object of
// the given kind. Non-None control inside the body is a fatal error,
// per §4.E's "class and module bodies reject any non-none control".
func (it *Interpreter) execClassOrModule(body *ast.Block, e *env.Environment, sourceFile string, kind values.Kind, name string) (EvalResult, error) {
	bodyEnv := env.New(e)
	result, err := it.execBlock(body, bodyEnv, sourceFile)
	if err != nil {
		return EvalResult{}, err
	}
	if result.Control != CtrlNone {
		return EvalResult{}, rerr(body.Stmts[0].Pos(), "class/module body may not return, break, continue, or throw")
	}
	obj := values.NewObject(kind)
	for _, n := range bodyEnv.Names() {
		v, _ := bodyEnv.Lookup(n)
		obj.Set(n, v)
	}
	e.Define(name, obj)
	return none(values.Null{}), nil
}

func (it *Interpreter) execWhile(s *ast.WhileStmt, e *env.Environment, sourceFile string) (EvalResult, error) {
	for {
		cond, err := it.evalExpr(s.Cond, e, sourceFile)
		if err != nil {
			return EvalResult{}, err
		}
		if !values.Truthy(cond) {
			return none(values.Null{}), nil
		}
		result, err := it.execBlock(s.Body, env.New(e), sourceFile)
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
}

func (it *Interpreter) execSwitch(s *ast.SwitchStmt, e *env.Environment, sourceFile string) (EvalResult, error) {
	subject, err := it.evalExpr(s.Subject, e, sourceFile)
	if err != nil {
		return EvalResult{}, err
	}
	var defaultCase *ast.SwitchCase
	for _, c := range s.Cases {
		if c.IsDefault {
			defaultCase = c
			continue
		}
		for _, ve := range c.Values {
			v, err := it.evalExpr(ve, e, sourceFile)
			if err != nil {
				return EvalResult{}, err
			}
			if values.Equal(subject, v) {
				return it.execBlock(c.Body, env.New(e), sourceFile)
			}
		}
	}
	if defaultCase != nil {
		return it.execBlock(defaultCase.Body, env.New(e), sourceFile)
	}
	return none(values.Null{}), nil
}

func (it *Interpreter) execTry(s *ast.TryStmt, e *env.Environment, sourceFile string) (EvalResult, error) {
	result, err := it.execBlock(s.Try, env.New(e), sourceFile)
	var thrownValue values.Value
	switch {
	case err != nil:
		// A throw that unwound through one or more intervening function
		// calls surfaces here as a *values.Thrown error rather than a
		// CtrlThrow control result (see values.Thrown and
		// callFunction). Anything else is a genuine fatal error and
		// keeps propagating.
		thrown, ok := err.(*values.Thrown)
		if !ok {
			return EvalResult{}, err
		}
		thrownValue = thrown.Value
	case result.Control == CtrlThrow:
		thrownValue = result.Value
	default:
		return result, nil
	}
	catchEnv := env.New(e)
	catchEnv.Define(s.CatchName, thrownValue)
	return it.execBlock(s.Catch, catchEnv, sourceFile)
}
