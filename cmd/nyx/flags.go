package main

import "flag"

// stdFlagSet wraps flag.FlagSet to track which flags the user actually
// passed, so config.Load's nyxrc.yaml defaults only fill in flags the
// command line left untouched.
type stdFlagSet struct {
	*flag.FlagSet
	set map[string]bool
}

func (s *stdFlagSet) Parse(args []string) error {
	if err := s.FlagSet.Parse(args); err != nil {
		return err
	}
	s.set = map[string]bool{}
	s.FlagSet.Visit(func(f *flag.Flag) { s.set[f.Name] = true })
	return nil
}

func (s *stdFlagSet) wasSet(name string) bool { return s.set[name] }

func newFlagSet() *cliFlags {
	fs := flag.NewFlagSet("nyx", flag.ContinueOnError)
	c := &cliFlags{fs: &stdFlagSet{FlagSet: fs}}

	fs.BoolVar(&c.trace, "trace", false, "enable DEBUG-level tracing")
	fs.BoolVar(&c.parseOnly, "parse-only", false, "resolve and parse only, then exit")
	fs.BoolVar(&c.parseOnly, "lint", false, "alias for --parse-only")
	fs.BoolVar(&c.vm, "vm", false, "route expression evaluation through the bytecode VM where supported")
	fs.BoolVar(&c.vmStrict, "vm-strict", false, "fail instead of falling back to the tree walker on VM-unsupported expressions")
	fs.BoolVar(&c.version, "version", false, "print the language version and exit")
	fs.Int64Var(&c.maxAlloc, "max-alloc", 0, "allocation quota (0 disables)")
	fs.Int64Var(&c.maxSteps, "max-steps", 0, "execution step quota (0 disables)")
	fs.Int64Var(&c.maxCallDepth, "max-call-depth", 0, "call depth quota (0 disables)")
	fs.BoolVar(&c.debug, "debug", false, "enable the interactive statement debugger")
	fs.IntVar(&c.stepCount, "step-count", 0, "trace the first N statements before returning to continue mode")
	fs.BoolVar(&c.debug, "step", false, "alias for --debug")
	fs.StringVar(&c.breakRaw, "break", "", "comma-separated breakpoint line numbers")
	fs.BoolVar(&c.debugNoPrompt, "debug-no-prompt", false, "trace statements without blocking on an interactive prompt")

	return c
}
