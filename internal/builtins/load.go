package builtins

import "github.com/Thessal/comet/internal/symbols"

// Load registers every builtin type, behavior, and function into table.
// Callers run Load before resolving user source, so user declarations that
// collide with a builtin name are caught by the resolver's ordinary
// duplicate-declaration check (spec §3) rather than silently shadowing it.
func Load(table *symbols.SymbolTable) {
	for _, t := range Types() {
		table.Types[t.Name] = t
	}
	for _, b := range Behaviors() {
		table.Behaviors[b.Name] = b
	}
	for _, f := range Functions() {
		table.Functions[f.Name] = f
	}
}
