package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nyxlang/nyx/ast"
)

// collectIdentUses walks e collecting every identifier name it
// references into used, recursing into a nested comprehension's iter
// expression (evaluated in the outer scope) but not into its own
// result/filter (whose loop-bound names are local to that nested
// comprehension, not this one).
func collectIdentUses(e ast.Expr, used map[string]bool) {
	switch n := e.(type) {
	case nil:
		return
	case *ast.Ident:
		used[n.Name] = true
	case *ast.ArrayLit:
		for _, el := range n.Elements {
			collectIdentUses(el, used)
		}
	case *ast.ArrayComp:
		collectIdentUses(n.Iter, used)
		inner := map[string]bool{}
		collectIdentUses(n.Result, inner)
		if n.Filter != nil {
			collectIdentUses(n.Filter, inner)
		}
		delete(inner, n.Key)
		delete(inner, n.Value)
		for name := range inner {
			used[name] = true
		}
	case *ast.ObjectLit:
		for _, v := range n.Values {
			collectIdentUses(v, used)
		}
	case *ast.IndexExpr:
		collectIdentUses(n.Recv, used)
		collectIdentUses(n.Index, used)
	case *ast.MemberExpr:
		collectIdentUses(n.Recv, used)
	case *ast.UnaryExpr:
		collectIdentUses(n.Operand, used)
	case *ast.BinaryExpr:
		collectIdentUses(n.Left, used)
		collectIdentUses(n.Right, used)
	case *ast.CallExpr:
		collectIdentUses(n.Callee, used)
		for _, a := range n.Args {
			collectIdentUses(a, used)
		}
	}
}

type capturedVar struct{ name, local string }

// genArrayComp lowers `[result for key,value in iter if filter]` to a
// call against the program's single comprehension dispatcher (§4.H's
// item 6): the call site packs every free variable the comprehension
// body actually uses (and that's visible in scope here) into an
// anonymous object, and the dispatcher looks them back up by name in
// an isolated scope holding only the loop-bound names plus the
// captures — it cannot see any of the enclosing function's other
// locals, matching the reference implementation's per-site capture
// list.
func (g *gen) genArrayComp(n *ast.ArrayComp) (string, error) {
	used := map[string]bool{}
	collectIdentUses(n.Iter, used)
	collectIdentUses(n.Result, used)
	if n.Filter != nil {
		collectIdentUses(n.Filter, used)
	}
	delete(used, n.Key)
	delete(used, n.Value)

	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)

	var caps []capturedVar
	for _, name := range names {
		if local, ok := g.lookup(name); ok {
			caps = append(caps, capturedVar{name: name, local: local})
		}
	}

	compID := g.compNext
	g.compNext++

	savedScopes := g.scopes
	g.scopes = []scope{{}}

	var body strings.Builder
	fmt.Fprintf(&body, "case %d: {\n", compID)
	for _, c := range caps {
		local := g.declareLocal(c.name)
		fmt.Fprintf(&body, "NyxValue %s = nyx_object_get(__cy_env.as.object_val, %s); (void)%s;\n",
			local, cStringLit(c.name), local)
	}

	outTmp := g.freshTemp("comp_out")
	iterTmp := g.freshTemp("comp_iter")
	idxTmp := g.freshTemp("comp_i")

	iterExpr, err := g.genExpr(n.Iter)
	if err != nil {
		g.scopes = savedScopes
		return "", err
	}
	fmt.Fprintf(&body, "NyxValue %s = nyx_array_new(NULL, 0);\n", outTmp)
	fmt.Fprintf(&body, "NyxValue %s = %s;\n", iterTmp, iterExpr)

	fmt.Fprintf(&body, "if (%s.type == VAL_ARRAY) {\n", iterTmp)
	fmt.Fprintf(&body, "for (int %s = 0; %s < %s.as.array_val->count; %s++) {\n", idxTmp, idxTmp, iterTmp, idxTmp)
	g.pushScope()
	if n.Key != "" {
		keyLocal := g.declareLocal(n.Key)
		valLocal := g.declareLocal(n.Value)
		fmt.Fprintf(&body, "NyxValue %s = nyx_int(%s); (void)%s;\n", keyLocal, idxTmp, keyLocal)
		fmt.Fprintf(&body, "NyxValue %s = %s.as.array_val->items[%s]; (void)%s;\n", valLocal, iterTmp, idxTmp, valLocal)
	} else {
		valLocal := g.declareLocal(n.Value)
		fmt.Fprintf(&body, "NyxValue %s = %s.as.array_val->items[%s]; (void)%s;\n", valLocal, iterTmp, idxTmp, valLocal)
	}
	if err := g.emitCompFilterAndPush(n, &body, outTmp); err != nil {
		g.popScope()
		g.scopes = savedScopes
		return "", err
	}
	g.popScope()
	body.WriteString("}\n")

	fmt.Fprintf(&body, "} else if (%s.type == VAL_OBJECT) {\n", iterTmp)
	fmt.Fprintf(&body, "for (int %s = 0; %s < %s.as.object_val->count; %s++) {\n", idxTmp, idxTmp, iterTmp, idxTmp)
	g.pushScope()
	if n.Key != "" {
		keyLocal := g.declareLocal(n.Key)
		valLocal := g.declareLocal(n.Value)
		fmt.Fprintf(&body, "NyxValue %s = nyx_string(%s.as.object_val->items[%s].key); (void)%s;\n", keyLocal, iterTmp, idxTmp, keyLocal)
		fmt.Fprintf(&body, "NyxValue %s = *%s.as.object_val->items[%s].value; (void)%s;\n", valLocal, iterTmp, idxTmp, valLocal)
	} else {
		keyLocal := g.declareLocal(n.Value)
		fmt.Fprintf(&body, "NyxValue %s = nyx_string(%s.as.object_val->items[%s].key); (void)%s;\n", keyLocal, iterTmp, idxTmp, keyLocal)
	}
	if err := g.emitCompFilterAndPush(n, &body, outTmp); err != nil {
		g.popScope()
		g.scopes = savedScopes
		return "", err
	}
	g.popScope()
	body.WriteString("}\n")

	body.WriteString("} else {\n")
	fmt.Fprintf(&body, "nyx_runtime_error(%d, %d, \"array comprehension expects array or object iterable\");\n",
		n.Pos().Line, n.Pos().Col)
	body.WriteString("}\n")
	fmt.Fprintf(&body, "return %s;\n", outTmp)
	body.WriteString("}\n")

	g.compCases.WriteString(body.String())
	g.scopes = savedScopes

	if len(caps) == 0 {
		return fmt.Sprintf("nyx_eval_comp(%d, nyx_object_literal(0, NULL, NULL))", compID), nil
	}
	keyLits := make([]string, len(caps))
	localRefs := make([]string, len(caps))
	for i, c := range caps {
		keyLits[i] = cStringLit(c.name)
		localRefs[i] = c.local
	}
	return fmt.Sprintf("nyx_eval_comp(%d, nyx_object_literal(%d, (const char*[]){%s}, (NyxValue[]){%s}))",
		compID, len(caps), strings.Join(keyLits, ", "), strings.Join(localRefs, ", ")), nil
}

func (g *gen) emitCompFilterAndPush(n *ast.ArrayComp, body *strings.Builder, outTmp string) error {
	if n.Filter != nil {
		filterExpr, err := g.genExpr(n.Filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(body, "if (!nyx_truthy(%s)) continue;\n", filterExpr)
	}
	valueExpr, err := g.genExpr(n.Result)
	if err != nil {
		return err
	}
	fmt.Fprintf(body, "(void)nyx_bi_push((NyxValue[]){%s, %s}, 2);\n", outTmp, valueExpr)
	return nil
}
