package codegen

import (
	"fmt"
	"strings"

	"github.com/nyxlang/nyx/ast"
)

// genBlock emits a nested C block for a statement body that introduces
// its own lexical scope (if/while/for/try arms). Function bodies are
// NOT wrapped this way — their params and top-level locals share one
// scope, matching env.New's single environment per call.
func (g *gen) genBlock(block *ast.Block, w *strings.Builder) error {
	g.pushScope()
	w.WriteString("{\n")
	for _, stmt := range block.Stmts {
		if err := g.genStmt(stmt, w, false); err != nil {
			return err
		}
	}
	w.WriteString("}\n")
	g.popScope()
	return nil
}

func (g *gen) genStmt(s ast.Stmt, w *strings.Builder, topLevel bool) error {
	switch st := s.(type) {
	case *ast.LetStmt:
		expr, err := g.genExpr(st.Value)
		if err != nil {
			return err
		}
		local := g.declareLocal(st.Name)
		fmt.Fprintf(w, "NyxValue %s = %s; (void)%s;\n", local, expr, local)

	case *ast.AssignNameStmt:
		local, ok := g.lookup(st.Name)
		if !ok {
			return errAt(st.Pos(), "undefined identifier %q", st.Name)
		}
		expr, err := g.genExpr(st.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %s;\n", local, expr)

	case *ast.AssignMemberStmt:
		recv, err := g.genExpr(st.Recv)
		if err != nil {
			return err
		}
		val, err := g.genExpr(st.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "nyx_assign_member(%d, %d, %s, %q, %s);\n", st.Pos().Line, st.Pos().Col, recv, st.Name, val)

	case *ast.AssignIndexStmt:
		recv, err := g.genExpr(st.Recv)
		if err != nil {
			return err
		}
		idx, err := g.genExpr(st.Index)
		if err != nil {
			return err
		}
		val, err := g.genExpr(st.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "nyx_assign_index(%d, %d, %s, %s, %s);\n", st.Pos().Line, st.Pos().Col, recv, idx, val)

	case *ast.ExprStmt:
		expr, err := g.genExpr(st.X)
		if err != nil {
			return err
		}
		if topLevel {
			fmt.Fprintf(w, "nyx_auto_print(%s);\n", expr)
		} else {
			fmt.Fprintf(w, "(void)(%s);\n", expr)
		}

	case *ast.IfStmt:
		cond, err := g.genExpr(st.Cond)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "if (nyx_truthy(%s)) ", cond)
		if err := g.genBlock(st.Then, w); err != nil {
			return err
		}
		if st.Else != nil {
			w.WriteString("else ")
			if err := g.genBlock(st.Else, w); err != nil {
				return err
			}
		}

	case *ast.SwitchStmt:
		return g.genSwitch(st, w)

	case *ast.WhileStmt:
		cond, err := g.genExpr(st.Cond)
		if err != nil {
			return err
		}
		// cond may reference locals bound outside the loop; re-evaluate
		// it on every iteration via a C while whose test re-runs genExpr's
		// already-emitted-once code is wrong if cond has side effects —
		// so the condition itself is regenerated per emission instead of
		// cached, matching a plain `while (nyx_truthy(<cond>))`.
		fmt.Fprintf(w, "while (nyx_truthy(%s)) ", cond)
		return g.genBlock(st.Body, w)

	case *ast.ForInStmt:
		return g.genForIn(st, w)

	case *ast.BreakStmt:
		w.WriteString("break;\n")

	case *ast.ContinueStmt:
		w.WriteString("continue;\n")

	case *ast.ReturnStmt:
		if st.Value == nil {
			w.WriteString("return nyx_null();\n")
			return nil
		}
		expr, err := g.genExpr(st.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "return %s;\n", expr)

	case *ast.ThrowStmt:
		expr, err := g.genExpr(st.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "nyx_throw(%d, %d, %s);\n", st.Pos().Line, st.Pos().Col, expr)

	case *ast.TryStmt:
		return g.genTry(st, w)

	case *ast.ClassStmt:
		return g.genClassOrModule(st.Name, st.Body, "OBJ_CLASS", w)

	case *ast.ModuleStmt:
		return g.genClassOrModule(st.Name, st.Body, "OBJ_MODULE", w)

	case *ast.TypeAliasStmt:
		// no runtime behavior; kept parseable for source compatibility.

	case *ast.FuncDeclStmt:
		// hoisted globally and emitted once in Generate; a nested
		// declaration site contributes no inline code.

	case *ast.ImportStmt:
		// resolver has already inlined every import before codegen runs.

	default:
		return errAt(s.Pos(), "codegen: unhandled statement type %T", s)
	}
	return nil
}

// genSwitch lowers `switch` to a chain of `if`/`else if` over equality
// against the subject, since the language's `case` values are arbitrary
// expressions (not C-switch-compatible integer constants).
func (g *gen) genSwitch(st *ast.SwitchStmt, w *strings.Builder) error {
	g.pushScope()
	w.WriteString("{\n")
	subj, err := g.genExpr(st.Subject)
	if err != nil {
		g.popScope()
		return err
	}
	subjTmp := g.freshTemp("switch_subject")
	fmt.Fprintf(w, "NyxValue %s = %s;\n", subjTmp, subj)

	wroteIf := false
	var defaultCase *ast.SwitchCase
	for _, c := range st.Cases {
		if c.IsDefault {
			defaultCase = c
			continue
		}
		conds := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			ve, err := g.genExpr(v)
			if err != nil {
				g.popScope()
				return err
			}
			conds = append(conds, fmt.Sprintf("nyx_equal(%s, %s)", subjTmp, ve))
		}
		if wroteIf {
			w.WriteString("else ")
		}
		fmt.Fprintf(w, "if (%s) ", strings.Join(conds, " || "))
		if err := g.genBlock(c.Body, w); err != nil {
			g.popScope()
			return err
		}
		wroteIf = true
	}
	if defaultCase != nil {
		if wroteIf {
			w.WriteString("else ")
		}
		if err := g.genBlock(defaultCase.Body, w); err != nil {
			g.popScope()
			return err
		}
	}
	w.WriteString("}\n")
	g.popScope()
	return nil
}

// genForIn lowers both the single- and two-variable forms over arrays
// and objects, matching interp/loops.go's execForIn binding rules.
func (g *gen) genForIn(st *ast.ForInStmt, w *strings.Builder) error {
	g.pushScope()
	w.WriteString("{\n")
	iterExpr, err := g.genExpr(st.Iter)
	if err != nil {
		g.popScope()
		return err
	}
	iterTmp := g.freshTemp("for_iter")
	idxTmp := g.freshTemp("for_i")
	fmt.Fprintf(w, "NyxValue %s = %s;\n", iterTmp, iterExpr)

	fmt.Fprintf(w, "if (%s.type == VAL_ARRAY) {\n", iterTmp)
	fmt.Fprintf(w, "for (int %s = 0; %s < %s.as.array_val->count; %s++) {\n", idxTmp, idxTmp, iterTmp, idxTmp)
	g.pushScope()
	if st.Key != "" {
		keyLocal := g.declareLocal(st.Key)
		valLocal := g.declareLocal(st.Value)
		fmt.Fprintf(w, "NyxValue %s = nyx_int(%s); (void)%s;\n", keyLocal, idxTmp, keyLocal)
		fmt.Fprintf(w, "NyxValue %s = %s.as.array_val->items[%s]; (void)%s;\n", valLocal, iterTmp, idxTmp, valLocal)
	} else {
		valLocal := g.declareLocal(st.Value)
		fmt.Fprintf(w, "NyxValue %s = %s.as.array_val->items[%s]; (void)%s;\n", valLocal, iterTmp, idxTmp, valLocal)
	}
	for _, stmt := range st.Body.Stmts {
		if err := g.genStmt(stmt, w, false); err != nil {
			g.popScope()
			g.popScope()
			return err
		}
	}
	g.popScope()
	w.WriteString("}\n")

	fmt.Fprintf(w, "} else if (%s.type == VAL_OBJECT) {\n", iterTmp)
	fmt.Fprintf(w, "for (int %s = 0; %s < %s.as.object_val->count; %s++) {\n", idxTmp, idxTmp, iterTmp, idxTmp)
	g.pushScope()
	if st.Key != "" {
		keyLocal := g.declareLocal(st.Key)
		valLocal := g.declareLocal(st.Value)
		fmt.Fprintf(w, "NyxValue %s = nyx_string(%s.as.object_val->items[%s].key); (void)%s;\n", keyLocal, iterTmp, idxTmp, keyLocal)
		fmt.Fprintf(w, "NyxValue %s = *%s.as.object_val->items[%s].value; (void)%s;\n", valLocal, iterTmp, idxTmp, valLocal)
	} else {
		keyLocal := g.declareLocal(st.Value)
		fmt.Fprintf(w, "NyxValue %s = nyx_string(%s.as.object_val->items[%s].key); (void)%s;\n", keyLocal, iterTmp, idxTmp, keyLocal)
	}
	for _, stmt := range st.Body.Stmts {
		if err := g.genStmt(stmt, w, false); err != nil {
			g.popScope()
			g.popScope()
			return err
		}
	}
	g.popScope()
	w.WriteString("}\n")

	w.WriteString("} else {\n")
	fmt.Fprintf(w, "nyx_runtime_error(%d, %d, \"value is not iterable\");\n", st.Pos().Line, st.Pos().Col)
	w.WriteString("}\n")

	w.WriteString("}\n")
	g.popScope()
	return nil
}

// genTry lowers try/catch to a linked setjmp exception frame (§4.H).
func (g *gen) genTry(st *ast.TryStmt, w *strings.Builder) error {
	g.pushScope()
	w.WriteString("{\n")
	frame := g.freshTemp("exc_frame")
	fmt.Fprintf(w, "NyxExcFrame %s;\n", frame)
	fmt.Fprintf(w, "%s.next = g_exc_top;\n", frame)
	fmt.Fprintf(w, "g_exc_top = &%s;\n", frame)
	fmt.Fprintf(w, "if (setjmp(%s.env) == 0) {\n", frame)
	if err := g.genBlock(st.Try, w); err != nil {
		g.popScope()
		return err
	}
	fmt.Fprintf(w, "g_exc_top = %s.next;\n", frame)
	w.WriteString("} else {\n")
	fmt.Fprintf(w, "g_exc_top = %s.next;\n", frame)
	g.pushScope()
	catchLocal := g.declareLocal(st.CatchName)
	fmt.Fprintf(w, "NyxValue %s = g_exc_value; (void)%s;\n", catchLocal, catchLocal)
	for _, stmt := range st.Catch.Stmts {
		if err := g.genStmt(stmt, w, false); err != nil {
			g.popScope()
			g.popScope()
			return err
		}
	}
	g.popScope()
	w.WriteString("}\n")
	w.WriteString("}\n")
	g.popScope()
	return nil
}

// genClassOrModule evaluates body in a fresh scope, then copies every
// binding it produced into a freshly allocated object of the given
// kind, attaching __name__. FuncDeclStmts inside the body are methods:
// they were already hoisted to global C functions by collectFuncs, so
// here they're stored as function values under their own name.
func (g *gen) genClassOrModule(name string, body *ast.Block, kind string, w *strings.Builder) error {
	objTmp := g.freshTemp("obj")
	fmt.Fprintf(w, "NyxObject *%s = nyx_object_new_kind(%s);\n", objTmp, kind)
	fmt.Fprintf(w, "nyx_object_set(%s, \"__name__\", nyx_string(%q));\n", objTmp, name)

	// Member bindings are scoped to this construction only — they don't
	// leak into name resolution after the class/module statement, only
	// the class/module name itself (declared below, in the caller's
	// scope) does.
	g.pushScope()
	for _, stmt := range body.Stmts {
		switch bs := stmt.(type) {
		case *ast.FuncDeclStmt:
			fmt.Fprintf(w, "nyx_object_set(%s, %q, nyx_function(%q));\n", objTmp, bs.Name, bs.Name)
		case *ast.LetStmt:
			expr, err := g.genExpr(bs.Value)
			if err != nil {
				g.popScope()
				return err
			}
			local := g.declareLocal(bs.Name)
			fmt.Fprintf(w, "NyxValue %s = %s; (void)%s;\n", local, expr, local)
			fmt.Fprintf(w, "nyx_object_set(%s, %q, %s);\n", objTmp, bs.Name, local)
		default:
			if err := g.genStmt(stmt, w, false); err != nil {
				g.popScope()
				return err
			}
		}
	}
	g.popScope()

	local := g.declareLocal(name)
	fmt.Fprintf(w, "NyxValue %s = nyx_object(%s); (void)%s;\n", local, objTmp, local)
	return nil
}
