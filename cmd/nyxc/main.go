// Command nyxc transpiles a script to a single self-contained C
// translation unit, per the code generator's six-section emission
// order (codegen.Generate). With --emit-self, it instead copies its own
// Go source to the output path, matching the reference transpiler's
// `copy_file(__FILE__, argv[2])` (a quine-style escape hatch for
// inspecting the compiler binary's own source without a separate build
// step).
package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/nyxlang/nyx/codegen"
	"github.com/nyxlang/nyx/resolver"
)

//go:embed main.go
var ownSource []byte

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	red := color.New(color.FgRed)

	emitSelf := false
	var rest []string
	for _, a := range args {
		if a == "--emit-self" {
			emitSelf = true
			continue
		}
		rest = append(rest, a)
	}

	if emitSelf {
		if len(rest) != 1 {
			fmt.Fprintln(os.Stderr, "usage: nyxc --emit-self <output.c>")
			return 1
		}
		if err := os.WriteFile(rest[0], ownSource, 0o644); err != nil {
			red.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		return 0
	}

	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "usage: nyxc <input.nx> <output.c>")
		return 1
	}
	inputPath, outputPath := rest[0], rest[1]

	block, _, err := resolver.ResolveFile(inputPath, resolver.OSReadFile)
	if err != nil {
		red.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	src, err := codegen.Generate(block)
	if err != nil {
		red.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	if err := os.WriteFile(outputPath, []byte(src), 0o644); err != nil {
		red.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}
