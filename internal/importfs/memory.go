package importfs

import (
	"fmt"
	"path"

	"github.com/Thessal/comet/internal/ast"
)

// Memory is an in-memory symbols.ImportSource keyed by logical path,
// used by resolver tests to exercise import-cycle and duplicate-spelling
// scenarios (spec §8) without touching the real filesystem. Two keys that
// path.Clean to the same string are treated as the same file, modeling the
// symlink/".." aliasing spec §8 requires the resolver to collapse.
type Memory struct {
	Files map[string]*ast.Program
	// Aliases maps an alternate spelling of a path to its canonical key, so
	// tests can model symlinks without a real filesystem.
	Aliases map[string]string
}

// NewMemory returns an empty in-memory import source.
func NewMemory() *Memory {
	return &Memory{Files: make(map[string]*ast.Program), Aliases: make(map[string]string)}
}

// Put registers program under the path.Clean form of key.
func (m *Memory) Put(key string, program *ast.Program) {
	m.Files[path.Clean(key)] = program
}

// Alias registers from as an alternate spelling of to, so Canonicalize(from)
// resolves to the same identity as Canonicalize(to).
func (m *Memory) Alias(from, to string) {
	m.Aliases[path.Clean(from)] = path.Clean(to)
}

func (m *Memory) Canonicalize(basePath, modulePath string) (string, error) {
	joined := modulePath
	if len(modulePath) > 0 && modulePath[0] == '.' {
		joined = path.Join(path.Dir(basePath), modulePath)
	}
	joined = path.Clean(joined)
	if canon, ok := m.Aliases[joined]; ok {
		return canon, nil
	}
	return joined, nil
}

func (m *Memory) Parse(canonicalPath string) (*ast.Program, error) {
	p, ok := m.Files[canonicalPath]
	if !ok {
		return nil, fmt.Errorf("no such module: %s", canonicalPath)
	}
	return p, nil
}
