// Package codegen walks a fully resolved nyx program (every import
// already inlined by resolver) and emits a single C translation unit:
// the embedded runtime, one C function per user function, a
// name-dispatch switch, a comprehension-dispatch function, and a main
// that runs the translated top-level statements. It is grounded on
// _examples/original_source/compiler/v3_compiler_template.c's own
// six-section emission order, re-expressed from scratch in Go.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/runtime"
)

// Error reports a codegen-time fatal error with a source position, the
// compiler driver's uniform "Error at line:col: message" convention.
type Error struct {
	Pos ast.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("Error at %d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg) }

func errAt(p ast.Pos, format string, args ...any) error {
	return &Error{Pos: p, Msg: fmt.Sprintf(format, args...)}
}

type funcDecl struct {
	name   string
	pos    ast.Pos
	params []string
	body   *ast.Block
}

// scope maps a nyx identifier to the C local variable name holding its
// current value, for one lexical level of a single generated function.
type scope map[string]string

// gen carries the state for translating one program. Each user
// function is compiled independently against a fresh scope stack — per
// spec.md §4.H, functions are hoisted to global C functions and do not
// close over an enclosing function's locals; only array comprehensions
// get an explicit free-variable capture mechanism (comp.go).
type gen struct {
	fnOrder []*funcDecl
	fnSeen  map[string]*funcDecl

	scopes []scope
	fresh  int

	compCases strings.Builder
	compNext  int
}

func newGen() *gen {
	return &gen{fnSeen: map[string]*funcDecl{}}
}

func (g *gen) pushScope() { g.scopes = append(g.scopes, scope{}) }
func (g *gen) popScope()  { g.scopes = g.scopes[:len(g.scopes)-1] }

func (g *gen) declareLocal(name string) string {
	g.fresh++
	local := fmt.Sprintf("__cy_%s_%d", sanitize(name), g.fresh)
	g.scopes[len(g.scopes)-1][name] = local
	return local
}

func (g *gen) freshTemp(base string) string {
	g.fresh++
	return fmt.Sprintf("__cy_%s_%d", sanitize(base), g.fresh)
}

func (g *gen) lookup(name string) (string, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if local, ok := g.scopes[i][name]; ok {
			return local, true
		}
	}
	return "", false
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "v"
	}
	return b.String()
}

// collectFuncs recursively finds every FuncDeclStmt reachable from
// block, regardless of nesting inside if/while/for/try/class/module
// bodies, per §4.H item 2: function scope is global, and a name
// collision anywhere is a fatal codegen error.
func (g *gen) collectFuncs(block *ast.Block) error {
	for _, stmt := range block.Stmts {
		if err := g.collectFuncsStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *gen) collectFuncsStmt(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.FuncDeclStmt:
		if prev, ok := g.fnSeen[st.Name]; ok {
			return errAt(st.Pos(), "duplicate function name %q (also declared at %d:%d)", st.Name, prev.pos.Line, prev.pos.Col)
		}
		fd := &funcDecl{name: st.Name, pos: st.Pos(), params: st.Params, body: st.Body}
		g.fnSeen[st.Name] = fd
		g.fnOrder = append(g.fnOrder, fd)
		return g.collectFuncs(st.Body)
	case *ast.IfStmt:
		if err := g.collectFuncs(st.Then); err != nil {
			return err
		}
		if st.Else != nil {
			return g.collectFuncs(st.Else)
		}
	case *ast.SwitchStmt:
		for _, c := range st.Cases {
			if err := g.collectFuncs(c.Body); err != nil {
				return err
			}
		}
	case *ast.WhileStmt:
		return g.collectFuncs(st.Body)
	case *ast.ForInStmt:
		return g.collectFuncs(st.Body)
	case *ast.TryStmt:
		if err := g.collectFuncs(st.Try); err != nil {
			return err
		}
		return g.collectFuncs(st.Catch)
	case *ast.ClassStmt:
		return g.collectFuncs(st.Body)
	case *ast.ModuleStmt:
		return g.collectFuncs(st.Body)
	}
	return nil
}

// Generate translates program into one C translation unit.
func Generate(program *ast.Block) (string, error) {
	g := newGen()
	if err := g.collectFuncs(program); err != nil {
		return "", err
	}

	var fnDefs strings.Builder
	for _, fd := range g.fnOrder {
		src, err := g.genFunc(fd)
		if err != nil {
			return "", err
		}
		fnDefs.WriteString(src)
	}

	var main strings.Builder
	g.pushScope()
	for _, stmt := range program.Stmts {
		if _, ok := stmt.(*ast.FuncDeclStmt); ok {
			continue // emitted globally above, not run inline in main
		}
		if err := g.genStmt(stmt, &main, true); err != nil {
			return "", err
		}
	}
	g.popScope()

	var out strings.Builder
	out.WriteString(runtime.Source)
	out.WriteString("\n/* ---- program: forward prototypes ---- */\n")
	names := make([]string, 0, len(g.fnOrder))
	for _, fd := range g.fnOrder {
		names = append(names, fd.name)
		fmt.Fprintf(&out, "static NyxValue fn_%s(NyxValue *args, int argc);\n", cFuncName(fd.name))
	}
	out.WriteString("static NyxValue nyx_eval_comp(int comp_id, NyxValue __cy_env);\n\n")

	out.WriteString("/* ---- program: user function dispatch ---- */\n")
	out.WriteString("static NyxValue nyx_dispatch_user(const char *name, NyxValue *args, int argc) {\n")
	out.WriteString("    g_call_depth++;\n")
	out.WriteString("    if (g_max_call_depth > 0 && g_call_depth > g_max_call_depth) {\n")
	out.WriteString("        nyx_runtime_error(0, 0, \"call depth quota exceeded\");\n")
	out.WriteString("    }\n")
	out.WriteString("    NyxValue __cy_result = nyx_null();\n")
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&out, "    if (strcmp(name, %q) == 0) { __cy_result = fn_%s(args, argc); g_call_depth--; return __cy_result; }\n", name, cFuncName(name))
	}
	out.WriteString("    g_call_depth--;\n")
	out.WriteString("    nyx_runtime_error(0, 0, \"unknown user function\");\n")
	out.WriteString("    return nyx_null();\n")
	out.WriteString("}\n\n")

	out.WriteString("/* ---- program: user function definitions ---- */\n")
	out.WriteString(fnDefs.String())

	out.WriteString("/* ---- program: comprehension dispatch ---- */\n")
	out.WriteString("static NyxValue nyx_eval_comp(int comp_id, NyxValue __cy_env) {\n")
	out.WriteString("    (void)__cy_env;\n")
	out.WriteString("    switch (comp_id) {\n")
	out.WriteString(g.compCases.String())
	out.WriteString("        default: nyx_runtime_error(0, 0, \"internal error: unknown comprehension id\");\n")
	out.WriteString("    }\n")
	out.WriteString("    return nyx_null();\n")
	out.WriteString("}\n\n")

	out.WriteString("/* ---- program: entry point ---- */\n")
	out.WriteString("int main(int argc, char **argv) {\n")
	out.WriteString("    g_script_argc = argc > 1 ? argc - 1 : 0;\n")
	out.WriteString("    g_script_argv = argc > 1 ? argv + 1 : argv;\n")
	out.WriteString(main.String())
	out.WriteString("    return 0;\n")
	out.WriteString("}\n")

	return out.String(), nil
}

// cFuncName maps a nyx function name to a legal C identifier suffix;
// nyx identifiers are already ASCII words (the lexer admits no other
// character class), so this only guards against a future relaxation.
func cFuncName(name string) string { return sanitize(name) }

func (g *gen) genFunc(fd *funcDecl) (string, error) {
	var body strings.Builder
	g.pushScope()
	fmt.Fprintf(&body, "static NyxValue fn_%s(NyxValue *args, int argc) {\n", cFuncName(fd.name))
	fmt.Fprintf(&body, "    if (argc != %d) nyx_runtime_error(%d, %d, \"wrong number of arguments to %s\");\n",
		len(fd.params), fd.pos.Line, fd.pos.Col, fd.name)
	for i, p := range fd.params {
		local := g.declareLocal(p)
		fmt.Fprintf(&body, "    NyxValue %s = args[%d]; (void)%s;\n", local, i, local)
	}
	for _, stmt := range fd.body.Stmts {
		if err := g.genStmt(stmt, &body, false); err != nil {
			return "", err
		}
	}
	body.WriteString("    return nyx_null();\n")
	body.WriteString("}\n\n")
	g.popScope()
	return body.String(), nil
}
