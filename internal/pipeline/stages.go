package pipeline

import (
	"sort"

	"github.com/Thessal/comet/internal/ast"
	"github.com/Thessal/comet/internal/astyaml"
	"github.com/Thessal/comet/internal/builtins"
	"github.com/Thessal/comet/internal/config"
	"github.com/Thessal/comet/internal/diagnostics"
	"github.com/Thessal/comet/internal/importfs"
	"github.com/Thessal/comet/internal/symbols"
	"github.com/Thessal/comet/internal/synthesis"
)

var zeroPos ast.Position

// LoadStage decodes ctx.Source as a YAML-encoded ast.Program (spec §1:
// comet's core takes an already-parsed AST; YAML is the CLI's stand-in for
// the out-of-scope concrete-syntax parser).
type LoadStage struct{}

func (LoadStage) Process(ctx *PipelineContext) *PipelineContext {
	program, err := astyaml.Unmarshal(ctx.Source)
	if err != nil {
		ctx.Errors = append(ctx.Errors, diagnostics.New(diagnostics.ErrS001, zeroPos, "%s: %v", ctx.SourcePath, err))
		return ctx
	}
	program.File = ctx.SourcePath
	ctx.Program = program
	return ctx
}

// ResolveStage registers the builtin prelude and ctx.Program into a fresh
// SymbolTable, following every import via a filesystem-backed
// symbols.ImportSource whose Parse delegates to astyaml (spec §4.2, §6).
type ResolveStage struct{}

func (ResolveStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Program == nil {
		return ctx
	}

	fs := importfs.New(func(path, source string) (*ast.Program, error) {
		p, err := astyaml.Unmarshal([]byte(source))
		if err != nil {
			return nil, err
		}
		p.File = path
		return p, nil
	})

	resolver := symbols.NewResolver(fs)
	builtins.Load(resolver.Table)

	errs := resolver.Analyze(ctx.Program, ctx.SourcePath)
	ctx.Errors = append(ctx.Errors, errs...)
	ctx.Table = resolver.Table
	return ctx
}

// SynthesizeStage synthesizes every declared flow in deterministic
// (name-sorted) order, recording either its contexts or the diagnostic
// that stopped it (spec §6 "loop over every flow").
type SynthesizeStage struct {
	Limits config.Limits
}

func (s SynthesizeStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Table == nil {
		return ctx
	}
	limits := s.Limits
	if limits.MaxRecursionDepth == 0 {
		limits = config.DefaultLimits()
	}
	synth := synthesis.New(ctx.Table, limits)

	names := make([]string, 0, len(ctx.Table.Flows))
	for n := range ctx.Table.Flows {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		results, err := synth.Synthesize(name)
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			continue
		}
		ctx.FlowResults[name] = results
	}
	return ctx
}
