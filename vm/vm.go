// Package vm is the optional expression-level bytecode engine: a
// subset of expression forms compiles to a flat instruction list and
// runs on a value stack instead of being walked by the tree
// interpreter. It mirrors the reference implementation's
// compile_expr_bytecode/vm_exec pair one opcode at a time, caching
// each expression's compiled form by its AST node identity so a
// hot loop body only pays the compile cost once.
package vm

import (
	"fmt"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/values"
)

type Opcode int

const (
	OpPushInt Opcode = iota
	OpPushString
	OpPushBool
	OpPushNull
	OpLoad
	OpArrayMake
	OpArrayComp
	OpObjectNew
	OpObjectSetKey
	OpIndexGet
	OpDotGet
	OpNeg
	OpNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpAnd
	OpOr
	OpCoalesce
	OpLt
	OpGt
	OpLe
	OpGe
	OpCall
)

// Instr is one bytecode instruction. Only the fields relevant to Op
// are populated; unused fields stay zero.
type Instr struct {
	Op   Opcode
	Int  int64
	Str  string
	Node *ast.ArrayComp
	Pos  ast.Pos
}

// Bytecode is a flat instruction sequence compiled from one expression.
type Bytecode struct {
	Instrs []Instr
}

func (bc *Bytecode) emit(op Opcode, pos ast.Pos) *Instr {
	bc.Instrs = append(bc.Instrs, Instr{Op: op, Pos: pos})
	return &bc.Instrs[len(bc.Instrs)-1]
}

// Supported reports whether expr compiles to bytecode at all. Forms
// outside this subset (assignments are statements, not expressions
// here, so this list matches §4.F exactly) always fall back to the
// tree interpreter.
func Supported(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.IntLit, *ast.StringLit, *ast.BoolLit, *ast.NullLit, *ast.Ident:
		return true
	case *ast.ArrayLit:
		for _, el := range e.Elements {
			if !Supported(el) {
				return false
			}
		}
		return true
	case *ast.ArrayComp:
		if !Supported(e.Result) || !Supported(e.Iter) {
			return false
		}
		if e.Filter != nil && !Supported(e.Filter) {
			return false
		}
		return true
	case *ast.ObjectLit:
		for _, v := range e.Values {
			if !Supported(v) {
				return false
			}
		}
		return true
	case *ast.IndexExpr:
		return Supported(e.Recv) && Supported(e.Index)
	case *ast.MemberExpr:
		return Supported(e.Recv)
	case *ast.UnaryExpr:
		return Supported(e.Operand)
	case *ast.BinaryExpr:
		if !Supported(e.Left) || !Supported(e.Right) {
			return false
		}
		switch e.Op {
		case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod,
			ast.BinEq, ast.BinNeq, ast.BinAnd, ast.BinOr, ast.BinCoalesce,
			ast.BinLt, ast.BinGt, ast.BinLe, ast.BinGe:
			return true
		default:
			return false
		}
	case *ast.CallExpr:
		if !Supported(e.Callee) {
			return false
		}
		for _, a := range e.Args {
			if !Supported(a) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

var binaryOpcodes = map[ast.BinaryOp]Opcode{
	ast.BinAdd: OpAdd, ast.BinSub: OpSub, ast.BinMul: OpMul, ast.BinDiv: OpDiv, ast.BinMod: OpMod,
	ast.BinEq: OpEq, ast.BinNeq: OpNeq, ast.BinAnd: OpAnd, ast.BinOr: OpOr, ast.BinCoalesce: OpCoalesce,
	ast.BinLt: OpLt, ast.BinGt: OpGt, ast.BinLe: OpLe, ast.BinGe: OpGe,
}

// compile appends expr's instructions to bc. Callers must only invoke
// this after Supported(expr) returns true; an unrecognized node type
// here silently emits nothing rather than producing broken bytecode,
// since that path is unreachable once Supported has been checked.
func compile(expr ast.Expr, bc *Bytecode) {
	switch e := expr.(type) {
	case *ast.IntLit:
		bc.emit(OpPushInt, e.Pos()).Int = e.Value
	case *ast.StringLit:
		bc.emit(OpPushString, e.Pos()).Str = e.Value
	case *ast.BoolLit:
		in := bc.emit(OpPushBool, e.Pos())
		if e.Value {
			in.Int = 1
		}
	case *ast.NullLit:
		bc.emit(OpPushNull, e.Pos())
	case *ast.Ident:
		bc.emit(OpLoad, e.Pos()).Str = e.Name
	case *ast.ArrayLit:
		for _, el := range e.Elements {
			compile(el, bc)
		}
		bc.emit(OpArrayMake, e.Pos()).Int = int64(len(e.Elements))
	case *ast.ArrayComp:
		bc.emit(OpArrayComp, e.Pos()).Node = e
	case *ast.ObjectLit:
		bc.emit(OpObjectNew, e.Pos())
		for i, v := range e.Values {
			compile(v, bc)
			bc.emit(OpObjectSetKey, e.Pos()).Str = e.Keys[i]
		}
	case *ast.IndexExpr:
		compile(e.Recv, bc)
		compile(e.Index, bc)
		bc.emit(OpIndexGet, e.Pos())
	case *ast.MemberExpr:
		compile(e.Recv, bc)
		bc.emit(OpDotGet, e.Pos()).Str = e.Name
	case *ast.UnaryExpr:
		compile(e.Operand, bc)
		switch e.Op {
		case ast.UnaryNeg:
			bc.emit(OpNeg, e.Pos())
		case ast.UnaryNot:
			bc.emit(OpNot, e.Pos())
		}
	case *ast.BinaryExpr:
		compile(e.Left, bc)
		compile(e.Right, bc)
		bc.emit(binaryOpcodes[e.Op], e.Pos())
	case *ast.CallExpr:
		compile(e.Callee, bc)
		for _, a := range e.Args {
			compile(a, bc)
		}
		bc.emit(OpCall, e.Pos()).Int = int64(len(e.Args))
	}
}

// Engine owns the per-expression compile cache and the strict-mode
// flag. One Engine is shared by an Interpreter for its whole run.
type Engine struct {
	Strict bool
	cache  map[ast.NodeID]*Bytecode
}

func NewEngine(strict bool) *Engine {
	return &Engine{Strict: strict, cache: make(map[ast.NodeID]*Bytecode)}
}

func (eng *Engine) bytecodeFor(expr ast.Expr) *Bytecode {
	id := expr.ID()
	if bc, ok := eng.cache[id]; ok {
		return bc
	}
	bc := &Bytecode{}
	compile(expr, bc)
	eng.cache[id] = bc
	return bc
}

// ArrayCompEvaluator lets the VM hand BC_ARRAY_COMP back to whatever
// owns the full for-in iteration rules (keyed/unkeyed array and object
// iteration, filter semantics) instead of reimplementing them here.
type ArrayCompEvaluator interface {
	EvalArrayComp(comp *ast.ArrayComp, e values.Environment) (values.Value, error)
}

// Fallback evaluates an expression outside the VM's supported subset;
// in non-strict mode it is how the VM hands control back to the tree
// interpreter for one node.
type Fallback func(expr ast.Expr, e values.Environment) (values.Value, error)

// Eval runs expr through the VM if it is in the supported subset; in
// strict mode an unsupported expression is a fatal error, otherwise it
// is handed to fallback, matching eval_expr_vm's own strict/lenient
// split.
func (eng *Engine) Eval(expr ast.Expr, e values.Environment, caller values.Caller, comp ArrayCompEvaluator, fallback Fallback) (values.Value, error) {
	if !Supported(expr) {
		if eng.Strict {
			return nil, fmt.Errorf("Runtime error at %d:%d: expression is not supported in strict VM mode", expr.Pos().Line, expr.Pos().Col)
		}
		return fallback(expr, e)
	}
	bc := eng.bytecodeFor(expr)
	return exec(bc, e, caller, comp, fallback)
}
