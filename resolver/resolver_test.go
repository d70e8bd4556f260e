package resolver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyx/ast"
)

func fakeFS(files map[string]string) ReadFile {
	return func(path string) (string, error) {
		if src, ok := files[path]; ok {
			return src, nil
		}
		return "", fmt.Errorf("no such file: %s", path)
	}
}

func TestResolvesRelativeImport(t *testing.T) {
	fs := fakeFS(map[string]string{
		"main.nx": `import "lib.nx"; let x = 1;`,
		"lib.nx":  `let y = 2;`,
	})
	block, order, err := ResolveFile("main.nx", fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.nx", "lib.nx"}, order)
	require.Len(t, block.Stmts, 2)
	_, ok := block.Stmts[0].(*ast.LetStmt)
	assert.True(t, ok)
}

func TestDuplicateImportsAreSkipped(t *testing.T) {
	fs := fakeFS(map[string]string{
		"main.nx": `import "lib.nx"; import "lib.nx"; let x = 1;`,
		"lib.nx":  `let y = 2;`,
	})
	block, _, err := ResolveFile("main.nx", fs)
	require.NoError(t, err)
	assert.Len(t, block.Stmts, 2)
}

func TestImportCycleTerminates(t *testing.T) {
	fs := fakeFS(map[string]string{
		"a.nx": `import "b.nx"; let a = 1;`,
		"b.nx": `import "a.nx"; let b = 2;`,
	})
	block, _, err := ResolveFile("a.nx", fs)
	require.NoError(t, err)
	assert.Len(t, block.Stmts, 2)
}

func TestBuiltinModulePassesThrough(t *testing.T) {
	fs := fakeFS(map[string]string{
		"main.nx": `import "cy:math"; let x = 1;`,
	})
	block, order, err := ResolveFile("main.nx", fs)
	require.NoError(t, err)
	assert.Contains(t, order, "cy:math")
	found := false
	for _, stmt := range block.Stmts {
		if mod, ok := stmt.(*ast.ModuleStmt); ok && mod.Name == "Math" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMissingImportIsFatal(t *testing.T) {
	fs := fakeFS(map[string]string{"main.nx": `import "missing.nx";`})
	_, _, err := ResolveFile("main.nx", fs)
	assert.Error(t, err)
}

func TestAllBuiltinModulesParse(t *testing.T) {
	for path := range builtinModules {
		src, _ := builtinModuleSource(path)
		fs := fakeFS(map[string]string{"main.nx": `import "` + path + `";`, path: src})
		_, _, err := ResolveFile("main.nx", fs)
		assert.NoError(t, err, path)
	}
}
