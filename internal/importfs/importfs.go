// Package importfs provides filesystem- and in-memory-backed
// implementations of symbols.ImportSource (spec §6 "Import resolver").
package importfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Thessal/comet/internal/ast"
)

// ParseFunc turns source text into a Program. comet's core does not
// implement concrete-syntax parsing (spec §1 Non-goals); callers supply
// whatever parser produced the rest of their AST, or (for comet's own
// fixtures and CLI) internal/astyaml.Unmarshal.
type ParseFunc func(path, source string) (*ast.Program, error)

// FS resolves imports against the real filesystem, canonicalizing paths by
// collapsing ".."/symlinks via filepath.EvalSymlinks so that two different
// spellings of the same file compare equal (spec §6, §8).
type FS struct {
	ParseSource ParseFunc
}

// New returns a filesystem ImportSource that reads files with os.ReadFile
// and parses them with parse.
func New(parse ParseFunc) *FS {
	return &FS{ParseSource: parse}
}

// Canonicalize resolves modulePath relative to basePath (a file or
// directory) and collapses symlinks/".." so that two different spellings
// of the same file produce an identical string.
func (f *FS) Canonicalize(basePath, modulePath string) (string, error) {
	dir := basePath
	if info, err := os.Stat(basePath); err == nil && !info.IsDir() {
		dir = filepath.Dir(basePath)
	}
	joined := modulePath
	if !filepath.IsAbs(modulePath) {
		joined = filepath.Join(dir, modulePath)
	}
	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		// File may not exist yet on some code paths (e.g. dry canonicalization
		// in tests); fall back to the lexically-cleaned path.
		resolved = filepath.Clean(joined)
	}
	return filepath.Clean(resolved), nil
}

// Parse reads and parses the file at canonicalPath, satisfying
// symbols.ImportSource.
func (f *FS) Parse(canonicalPath string) (*ast.Program, error) {
	src, err := os.ReadFile(canonicalPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", canonicalPath, err)
	}
	return f.ParseSource(canonicalPath, string(src))
}
