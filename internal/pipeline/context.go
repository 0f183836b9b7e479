package pipeline

import (
	"github.com/Thessal/comet/internal/ast"
	"github.com/Thessal/comet/internal/diagnostics"
	"github.com/Thessal/comet/internal/symbols"
	"github.com/Thessal/comet/internal/synthesis"
)

// PipelineContext carries state between stages: the loaded program, the
// populated SymbolTable, per-flow synthesis results, and every diagnostic
// raised so far.
type PipelineContext struct {
	SourcePath string
	Source     []byte

	Program *ast.Program
	Table   *symbols.SymbolTable

	FlowResults map[string][]*synthesis.Context
	Errors      []*diagnostics.DiagnosticError
}

// NewPipelineContext seeds a context from raw source bytes read from path.
func NewPipelineContext(sourcePath string, source []byte) *PipelineContext {
	return &PipelineContext{
		SourcePath:  sourcePath,
		Source:      source,
		FlowResults: make(map[string][]*synthesis.Context),
	}
}

// Failed reports whether any stage recorded a diagnostic.
func (c *PipelineContext) Failed() bool { return len(c.Errors) > 0 }

// Processor is one pipeline stage.
type Processor interface {
	Process(*PipelineContext) *PipelineContext
}
