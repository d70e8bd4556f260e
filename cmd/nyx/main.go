// Command nyx runs a script through the tree-walking interpreter (and,
// with --vm, through the expression VM for the subset it supports).
// Flag handling and the DEBUG/INFO log-level split follow the
// reference driving program's use of flag and
// github.com/hashicorp/logutils, the one example repo in the pack that
// wires a levelled logger this way.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/logutils"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/builtins"
	"github.com/nyxlang/nyx/config"
	"github.com/nyxlang/nyx/env"
	"github.com/nyxlang/nyx/interp"
	"github.com/nyxlang/nyx/resolver"
	"github.com/nyxlang/nyx/vm"
)

// traceHook is the DebugHook installed by --trace (without --debug): it
// logs one DEBUG-level line per statement through the same
// hashicorp/logutils filter setupLogging configures, rather than
// driving the interactive prompt the way Debugger does.
type traceHook struct{}

func (traceHook) BeforeStatement(stmt ast.Stmt, e *env.Environment, sourceFile string) error {
	file := sourceFile
	if file == "" {
		file = "<memory>"
	}
	pos := stmt.Pos()
	name := fmt.Sprintf("%T", stmt)
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	log.Printf("[DEBUG] %s at %s:%d:%d", name, file, pos.Line, pos.Col)
	return nil
}

// combinedHook runs both the tracer and the interactive debugger before
// every statement, so --trace --debug together get log lines as well as
// the prompt.
type combinedHook struct {
	trace traceHook
	debug *interp.Debugger
}

func (c combinedHook) BeforeStatement(stmt ast.Stmt, e *env.Environment, sourceFile string) error {
	if err := c.trace.BeforeStatement(stmt, e, sourceFile); err != nil {
		return err
	}
	return c.debug.BeforeStatement(stmt, e, sourceFile)
}

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := newFlagSet()
	if err := flags.fs.Parse(args); err != nil {
		return usageExit()
	}

	if flags.version {
		fmt.Println(builtins.LangVersion)
		return 0
	}

	rest := flags.fs.Args()
	scriptPath := "main.nx"
	var scriptArgs []string
	if len(rest) > 0 {
		scriptPath = rest[0]
		scriptArgs = rest[1:]
	}

	cfg, err := config.Load("nyxrc.yaml")
	if err != nil {
		redColor.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	flags.applyConfigDefaults(cfg)

	setupLogging(flags.trace)

	block, _, err := resolver.ResolveFile(scriptPath, resolver.OSReadFile)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	if flags.parseOnly {
		cyanColor.Fprintln(os.Stdout, "OK")
		return 0
	}

	var stdout = os.Stdout
	it := interp.New(stdout)
	it.Argv = scriptArgs
	it.AllocQuota.Limit = flags.maxAlloc
	it.StepQuota.Limit = flags.maxSteps
	it.CallQuota.Limit = flags.maxCallDepth
	builtins.Stdout = stdout
	builtins.Register(it.Global)

	if flags.vm {
		it.VM = vm.NewEngine(flags.vmStrict)
	}

	switch {
	case flags.debug && flags.trace:
		dbg := interp.NewDebugger(os.Stdout, flags.breakLines, flags.stepCount, flags.debugNoPrompt)
		defer dbg.Close()
		it.Debug = combinedHook{debug: dbg}
	case flags.debug:
		dbg := interp.NewDebugger(os.Stdout, flags.breakLines, flags.stepCount, flags.debugNoPrompt)
		defer dbg.Close()
		it.Debug = dbg
	case flags.trace:
		it.Debug = traceHook{}
	}

	_, err = it.RunTopLevel(block, scriptPath)
	if err != nil {
		if err == interp.DebugQuit {
			return 130
		}
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	return 0
}

func usageExit() int {
	fmt.Fprintln(os.Stderr, "usage: nyx [flags] [script.nx] [-- script-args...]")
	return 1
}

func setupLogging(trace bool) {
	filter := &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERROR"},
		MinLevel: logutils.LogLevel("WARN"),
		Writer:   os.Stderr,
	}
	if trace {
		filter.MinLevel = logutils.LogLevel("DEBUG")
	}
	log.SetOutput(filter)
	log.SetFlags(0)
}

type cliFlags struct {
	fs            *stdFlagSet
	trace         bool
	parseOnly     bool
	vm            bool
	vmStrict      bool
	version       bool
	debug         bool
	stepCount     int
	debugNoPrompt bool
	breakLines    []int
	maxAlloc      int64
	maxSteps      int64
	maxCallDepth  int64
	breakRaw      string
}

func (c *cliFlags) applyConfigDefaults(cfg *config.Config) {
	if !c.fs.wasSet("max-alloc") && cfg.MaxAlloc != 0 {
		c.maxAlloc = cfg.MaxAlloc
	}
	if !c.fs.wasSet("max-steps") && cfg.MaxSteps != 0 {
		c.maxSteps = cfg.MaxSteps
	}
	if !c.fs.wasSet("max-call-depth") && cfg.MaxCallDepth != 0 {
		c.maxCallDepth = cfg.MaxCallDepth
	}
	if !c.fs.wasSet("vm") && cfg.VM {
		c.vm = true
	}
	if !c.fs.wasSet("vm-strict") && cfg.VMStrict {
		c.vmStrict = true
	}
	if !c.fs.wasSet("trace") && cfg.Trace {
		c.trace = true
	}
	if c.breakRaw != "" {
		c.breakLines = parseBreakLines(c.breakRaw)
	}
}

func parseBreakLines(raw string) []int {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}
