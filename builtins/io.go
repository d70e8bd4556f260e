package builtins

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyxlang/nyx/values"
)

var ioMethods = []entry{
	{"print", biPrint},
	{"read", biRead},
	{"write", biWrite},
	{"argc", biArgc},
	{"argv", biArgv},
}

func init() { all = append(all, ioMethods...) }

// Stdout is where `print` writes. It defaults to os.Stdout; cmd/nyx
// (and tests) may reassign it before running a program, mirroring the
// interpreter's own Stdout field for the top-level auto-print feature
// — both writers should point at the same stream.
var Stdout io.Writer = os.Stdout

// biPrint implements `print(xs...)`: each argument separated by a
// space, newline at end, recursive container rendering (see
// values.PrintRepr — distinct from str()'s "[array]"/"[object]"
// placeholders).
func biPrint(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = values.PrintRepr(a)
	}
	fmt.Fprintln(Stdout, strings.Join(parts, " "))
	return values.Null{}, nil
}

// resolvePath resolves path relative to the calling source file's
// directory, matching read/write's §4.G contract; absolute paths pass
// through unchanged.
func resolvePath(sourceFile, path string) string {
	if filepath.IsAbs(path) || sourceFile == "" {
		return path
	}
	return filepath.Join(filepath.Dir(sourceFile), path)
}

// biRead implements `read(path)`: reads a file into a string.
func biRead(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("read", 1, len(args))
	}
	p, ok := args[0].(values.String)
	if !ok {
		return nil, argErrorf("read", "expected a string path, got %s", values.TypeName(args[0]))
	}
	data, err := os.ReadFile(resolvePath(ctx.SourceFile, p.Value))
	if err != nil {
		return nil, argErrorf("read", "%s", err.Error())
	}
	return values.String{Value: string(data)}, nil
}

// biWrite implements `write(path, x)`: writes str(x) to a file,
// returning the number of bytes written.
func biWrite(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, wantArgs("write", 2, len(args))
	}
	p, ok := args[0].(values.String)
	if !ok {
		return nil, argErrorf("write", "expected a string path, got %s", values.TypeName(args[0]))
	}
	data := values.Stringify(args[1])
	if err := os.WriteFile(resolvePath(ctx.SourceFile, p.Value), []byte(data), 0o644); err != nil {
		return nil, argErrorf("write", "%s", err.Error())
	}
	return values.Int{Value: int64(len(data))}, nil
}

// biArgc implements `argc()`: the number of script arguments.
func biArgc(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 0 {
		return nil, wantArgs("argc", 0, len(args))
	}
	return values.Int{Value: int64(len(ctx.Argv))}, nil
}

// biArgv implements `argv(i)`: the i-th script argument, or null if out
// of range (matching the index-out-of-range-reads-null convention used
// elsewhere for reads, per spec.md §7).
func biArgv(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("argv", 1, len(args))
	}
	i, err := asInt("argv", args[0])
	if err != nil {
		return nil, err
	}
	if i < 0 || int(i) >= len(ctx.Argv) {
		return values.Null{}, nil
	}
	return values.String{Value: ctx.Argv[i]}, nil
}
