// Command comet is the peripheral CLI driver (spec §6): it loads a
// YAML-encoded AST, resolves it (plus the builtin prelude) into a
// SymbolTable, synthesizes every declared flow, and reports the result —
// grounded on _examples/original_source/src/main.rs's parse/analyze/
// synthesize sequence and its symbol-table stat printout.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/Thessal/comet/internal/config"
	"github.com/Thessal/comet/internal/pipeline"
)

const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorReset = "\x1b[0m"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "comet %s\n", config.Version)
		fmt.Fprintln(os.Stderr, "Usage: comet <file.yaml>")
		os.Exit(2)
	}

	color := isatty.IsTerminal(os.Stdout.Fd())

	filename := os.Args[1]
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", filename, err)
		os.Exit(1)
	}

	p := pipeline.New(
		pipeline.LoadStage{},
		pipeline.ResolveStage{},
		pipeline.SynthesizeStage{Limits: config.DefaultLimits()},
	)
	ctx := p.Run(pipeline.NewPipelineContext(filename, source))

	if ctx.Table != nil {
		fmt.Println("Symbol Table Stats:")
		fmt.Printf("  Types:     %s\n", humanize.Comma(int64(len(ctx.Table.Types))))
		fmt.Printf("  Behaviors: %s\n", humanize.Comma(int64(len(ctx.Table.Behaviors))))
		fmt.Printf("  Functions: %s\n", humanize.Comma(int64(len(ctx.Table.Functions))))
		fmt.Printf("  Flows:     %s\n", humanize.Comma(int64(len(ctx.Table.Flows))))
	}

	flowNames := make([]string, 0, len(ctx.FlowResults))
	for name := range ctx.FlowResults {
		flowNames = append(flowNames, name)
	}
	sort.Strings(flowNames)
	for _, name := range flowNames {
		printFlowResult(name, len(ctx.FlowResults[name]), color)
	}

	for _, e := range ctx.Errors {
		if color {
			fmt.Fprintf(os.Stderr, "%s%v%s\n", colorRed, e, colorReset)
		} else {
			fmt.Fprintln(os.Stderr, e)
		}
	}

	if ctx.Failed() {
		os.Exit(1)
	}
}

func printFlowResult(name string, n int, color bool) {
	label := fmt.Sprintf("flow %s: %s synthesis context(s)", name, humanize.Comma(int64(n)))
	if color {
		fmt.Printf("%s%s%s\n", colorGreen, label, colorReset)
		return
	}
	fmt.Println(label)
}
