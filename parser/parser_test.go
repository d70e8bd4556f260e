package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyx/ast"
)

func parseOneStmt(t *testing.T, src string) ast.Stmt {
	t.Helper()
	block, err := ParseProgram(src)
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)
	return block.Stmts[0]
}

func TestLetStatement(t *testing.T) {
	stmt := parseOneStmt(t, `let x = 1 + 2 * 3;`)
	let, ok := stmt.(*ast.LetStmt)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	bin, ok := let.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinAdd, bin.Op)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinMul, rhs.Op)
}

func TestPrecedenceCoalesceLowestAboveOr(t *testing.T) {
	stmt := parseOneStmt(t, `let x = a || b ?? c;`)
	let := stmt.(*ast.LetStmt)
	top, ok := let.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinCoalesce, top.Op)
	_, ok = top.Left.(*ast.BinaryExpr)
	require.True(t, ok)
}

func TestAssignmentTargets(t *testing.T) {
	stmt := parseOneStmt(t, `x = 1;`)
	_, ok := stmt.(*ast.AssignNameStmt)
	assert.True(t, ok)

	stmt = parseOneStmt(t, `a.b = 1;`)
	_, ok = stmt.(*ast.AssignMemberStmt)
	assert.True(t, ok)

	stmt = parseOneStmt(t, `a[0] = 1;`)
	_, ok = stmt.(*ast.AssignIndexStmt)
	assert.True(t, ok)
}

func TestInvalidAssignmentTargetIsError(t *testing.T) {
	_, err := ParseProgram(`1 + 1 = 2;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assignment target")
}

func TestIfElseIfElse(t *testing.T) {
	stmt := parseOneStmt(t, `if (x) { y(); } else if (z) { w(); } else { v(); }`)
	ifs, ok := stmt.(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifs.Else)
	require.Len(t, ifs.Else.Stmts, 1)
	_, ok = ifs.Else.Stmts[0].(*ast.IfStmt)
	assert.True(t, ok)
}

func TestSwitchDuplicateDefaultIsError(t *testing.T) {
	_, err := ParseProgram(`switch (x) { default: { a(); } default: { b(); } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")
}

func TestForInTwoVariableForm(t *testing.T) {
	stmt := parseOneStmt(t, `for (k, v in obj) { print(k, v); }`)
	f, ok := stmt.(*ast.ForInStmt)
	require.True(t, ok)
	assert.Equal(t, "k", f.Key)
	assert.Equal(t, "v", f.Value)
}

func TestArrayLiteralVsComprehension(t *testing.T) {
	stmt := parseOneStmt(t, `let a = [1, 2, 3];`)
	let := stmt.(*ast.LetStmt)
	_, ok := let.Value.(*ast.ArrayLit)
	assert.True(t, ok)

	stmt = parseOneStmt(t, `let b = [x * 2 for x in a if x > 0];`)
	let = stmt.(*ast.LetStmt)
	comp, ok := let.Value.(*ast.ArrayComp)
	require.True(t, ok)
	assert.Equal(t, "x", comp.Value)
	assert.NotNil(t, comp.Filter)
}

func TestObjectLiteralLastWriterWins(t *testing.T) {
	stmt := parseOneStmt(t, `let o = { a: 1, a: 2 };`)
	let := stmt.(*ast.LetStmt)
	obj, ok := let.Value.(*ast.ObjectLit)
	require.True(t, ok)
	require.Len(t, obj.Keys, 1)
	intLit, ok := obj.Values[0].(*ast.IntLit)
	require.True(t, ok)
	assert.EqualValues(t, 2, intLit.Value)
}

func TestCallIndexMemberChaining(t *testing.T) {
	stmt := parseOneStmt(t, `a.b(1)[0].c;`)
	es, ok := stmt.(*ast.ExprStmt)
	require.True(t, ok)
	member, ok := es.X.(*ast.MemberExpr)
	require.True(t, ok)
	assert.Equal(t, "c", member.Name)
	_, ok = member.Recv.(*ast.IndexExpr)
	assert.True(t, ok)
}

func TestClosureExample(t *testing.T) {
	block, err := ParseProgram(`fn mk(n) { fn inc() { return n; } return inc; } let f = mk(7);`)
	require.NoError(t, err)
	require.Len(t, block.Stmts, 2)
	fn, ok := block.Stmts[0].(*ast.FuncDeclStmt)
	require.True(t, ok)
	assert.Equal(t, "mk", fn.Name)
	require.Len(t, fn.Body.Stmts, 2)
	_, ok = fn.Body.Stmts[0].(*ast.FuncDeclStmt)
	assert.True(t, ok)
}

func TestTryCatch(t *testing.T) {
	stmt := parseOneStmt(t, `try { throw 1; } catch (e) { print(e); }`)
	ts, ok := stmt.(*ast.TryStmt)
	require.True(t, ok)
	assert.Equal(t, "e", ts.CatchName)
	_, ok = ts.Try.Stmts[0].(*ast.ThrowStmt)
	assert.True(t, ok)
}

func TestBareReturnYieldsNilValue(t *testing.T) {
	block, err := ParseProgram(`fn f() { return; }`)
	require.NoError(t, err)
	fn := block.Stmts[0].(*ast.FuncDeclStmt)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	assert.Nil(t, ret.Value)
}

func TestImportStatement(t *testing.T) {
	stmt := parseOneStmt(t, `import "cy:math";`)
	imp, ok := stmt.(*ast.ImportStmt)
	require.True(t, ok)
	assert.Equal(t, "cy:math", imp.Path)
}

func TestSyntaxErrorReportsLineCol(t *testing.T) {
	_, err := ParseProgram("let x\n= ;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error at 2:")
}
