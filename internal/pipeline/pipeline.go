// Package pipeline assembles comet's three analysis stages — load, resolve,
// synthesize — behind the teacher's own Processor/Pipeline abstraction
// (originally used to chain parse and semantic stages), repurposed here to
// drive spec §6's CLI sequence: parse a YAML AST, register it and the
// builtin prelude into a SymbolTable, then synthesize every declared flow.
package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

// New returns a Pipeline running processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline, threading ctx through every stage. A stage
// that records an error in ctx does not stop the pipeline: later stages
// degrade gracefully (spec §6 "continue on errors to collect diagnostics
// from every stage" — resolver errors and synthesis errors are both
// wanted in one CLI run).
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
