package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/env"
	"github.com/nyxlang/nyx/values"
)

// Debugger is the default DebugHook: before each statement it prints a
// trace line while stepping, while the step-count budget lasts, or at a
// breakpoint, and, unless in continue mode (and no breakpoint hit),
// blocks on an interactive prompt. It mirrors the reference implementation's
// debug_before_statement/debug_prompt pair, swapping its raw fgets loop
// for github.com/chzyer/readline — the same dependency the teacher
// carried (indirectly, for its now-dropped REPL) repurposed here for an
// interactive prompt that actually belongs in this spec's scope.
type Debugger struct {
	Out           io.Writer
	StepMode      bool
	ContinueMode  bool
	StepBudget    int
	BreakLines    map[int]bool
	NoPrompt      bool
	stepIndex     int
	rl            *readline.Instance
}

// NewDebugger creates a Debugger starting in continue mode with the
// given breakpoint line numbers (may be empty).
func NewDebugger(out io.Writer, breakLines []int, stepCount int, noPrompt bool) *Debugger {
	lines := make(map[int]bool, len(breakLines))
	for _, l := range breakLines {
		lines[l] = true
	}
	return &Debugger{Out: out, ContinueMode: true, StepBudget: stepCount, BreakLines: lines, NoPrompt: noPrompt}
}

func (d *Debugger) hitBreakpoint(line int) bool { return d.BreakLines[line] }

func stmtKindName(stmt ast.Stmt) string {
	name := fmt.Sprintf("%T", stmt)
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// BeforeStatement implements interp.DebugHook.
func (d *Debugger) BeforeStatement(stmt ast.Stmt, e *env.Environment, sourceFile string) error {
	file := sourceFile
	if file == "" {
		file = "<memory>"
	}
	pos := stmt.Pos()
	hit := d.hitBreakpoint(pos.Line)

	if d.StepMode || d.StepBudget > 0 {
		d.stepIndex++
		fmt.Fprintf(d.Out, "[step %d] %s at %s:%d:%d\n", d.stepIndex, stmtKindName(stmt), file, pos.Line, pos.Col)
		if d.StepBudget > 0 {
			d.StepBudget--
		}
	}
	if hit {
		fmt.Fprintf(d.Out, "[break] %s at %s:%d:%d\n", stmtKindName(stmt), file, pos.Line, pos.Col)
	}
	if !d.ContinueMode || d.StepMode || hit {
		fmt.Fprintf(d.Out, "[debug] %s at %s:%d:%d\n", stmtKindName(stmt), file, pos.Line, pos.Col)
		return d.prompt(e)
	}
	return nil
}

// DebugQuit is returned by prompt when the user types 'q'/'quit'; the
// driver treats it as an ordinary (non-error) termination with exit
// code 130, matching the reference implementation's exit(130).
var DebugQuit = fmt.Errorf("debugger quit")

func (d *Debugger) prompt(e *env.Environment) error {
	if d.NoPrompt {
		return nil
	}
	if d.rl == nil {
		rl, err := readline.New("cydbg> ")
		if err != nil {
			d.NoPrompt = true
			return nil
		}
		d.rl = rl
	}
	for {
		line, err := d.rl.Readline()
		if err != nil { // EOF or interrupt: behave like continue
			d.ContinueMode = true
			d.StepMode = false
			return nil
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line == "s" || line == "step":
			d.ContinueMode = false
			d.StepMode = true
			return nil
		case line == "c" || line == "continue":
			d.ContinueMode = true
			d.StepMode = false
			return nil
		case line == "q" || line == "quit":
			fmt.Fprintln(d.Out, "Debugger quit")
			return DebugQuit
		case strings.HasPrefix(line, "p "):
			name := strings.TrimSpace(line[2:])
			if name == "" {
				fmt.Fprintln(d.Out, "Usage: p <variable>")
				continue
			}
			if v, ok := e.Lookup(name); ok {
				fmt.Fprintf(d.Out, "%s = %s\n", name, values.Stringify(v))
			} else {
				fmt.Fprintf(d.Out, "%s is undefined\n", name)
			}
		default:
			fmt.Fprintln(d.Out, "Commands: s/step, c/continue, q/quit, p <var>")
		}
	}
}

// Close releases the readline instance, if one was opened.
func (d *Debugger) Close() error {
	if d.rl != nil {
		return d.rl.Close()
	}
	return nil
}
