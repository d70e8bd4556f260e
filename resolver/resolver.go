// Package resolver recursively loads and inlines the source files (and
// built-in modules) referenced by `import` statements, producing a
// single flat top-level block before execution or code generation
// begins.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/parser"
)

// ReadFile abstracts source loading so tests can resolve imports
// without touching the filesystem.
type ReadFile func(path string) (string, error)

// OSReadFile reads from the real filesystem; it's the ReadFile used by
// cmd/nyx and cmd/nyxc.
func OSReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

const builtinPrefix = "cy:"

func isBuiltinModulePath(path string) bool { return strings.HasPrefix(path, builtinPrefix) }

func isAbsolutePath(path string) bool { return filepath.IsAbs(path) }

// resolvePath resolves raw_path relative to currentFile's directory,
// matching the reference implementation's resolve_path: absolute paths
// and built-in module paths pass through unchanged.
func resolvePath(currentFile, rawPath string) string {
	if isAbsolutePath(rawPath) || isBuiltinModulePath(rawPath) {
		return rawPath
	}
	if currentFile == "" {
		return rawPath
	}
	return filepath.Join(filepath.Dir(currentFile), rawPath)
}

// ResolveFile loads rootPath, recursively inlining every import it (and
// its transitive imports) references, and returns the combined
// top-level block plus the import set in load order (for diagnostics).
func ResolveFile(rootPath string, read ReadFile) (*ast.Block, []string, error) {
	r := &resolution{read: read, seen: make(map[string]bool)}
	if err := r.resolveInto(rootPath); err != nil {
		return nil, nil, err
	}
	return &ast.Block{Stmts: r.out}, r.order, nil
}

type resolution struct {
	read  ReadFile
	seen  map[string]bool
	order []string
	out   []ast.Stmt
}

func (r *resolution) resolveInto(path string) error {
	if r.seen[path] {
		return nil
	}
	r.seen[path] = true
	r.order = append(r.order, path)

	var src string
	if isBuiltinModulePath(path) {
		s, ok := builtinModuleSource(path)
		if !ok {
			return fmt.Errorf("unknown built-in module: %s", path)
		}
		src = s
	} else {
		s, err := r.read(path)
		if err != nil {
			return fmt.Errorf("failed to read import %q: %w", path, err)
		}
		src = s
	}

	block, err := parser.ParseProgram(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, stmt := range block.Stmts {
		imp, ok := stmt.(*ast.ImportStmt)
		if !ok {
			r.out = append(r.out, stmt)
			continue
		}
		target := resolvePath(path, imp.Path)
		if err := r.resolveInto(target); err != nil {
			return err
		}
	}
	return nil
}
