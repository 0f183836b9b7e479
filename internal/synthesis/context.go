package synthesis

import "github.com/Thessal/comet/internal/constraintalg"

// VariableState is a variable's state within one synthesis branch: the set
// of possible type chains it currently holds, and the execution-graph node
// that produced it (spec §3).
type VariableState struct {
	Name   string
	Set    constraintalg.ConstraintSet
	NodeID int
}

// Context is one synthesis branch's full state: variable bindings plus the
// execution graph built so far. Contexts are immutable-by-convention:
// branching clones a Context rather than mutating one shared by siblings
// (spec §3, §5, §9).
type Context struct {
	Variables map[string]VariableState
	Graph     *Graph
}

// NewContext returns an empty context with a fresh graph.
func NewContext() *Context {
	return &Context{Variables: make(map[string]VariableState), Graph: NewGraph()}
}

// Clone returns a deep copy: a new graph and a new variable map, so that
// mutating the clone never affects the original (spec §4.5, §9 "Branching
// contexts vs. mutable state").
func (c *Context) Clone() *Context {
	vars := make(map[string]VariableState, len(c.Variables))
	for k, v := range c.Variables {
		vars[k] = v
	}
	return &Context{Variables: vars, Graph: c.Graph.Clone()}
}

// AddNode appends a node to this context's graph and returns its id.
func (c *Context) AddNode(n Node) int {
	return c.Graph.AddNode(n)
}

// Bind records target's new state inside this context (copy-on-write: the
// caller should Clone() first if other branches still reference c).
func (c *Context) Bind(target string, set constraintalg.ConstraintSet, nodeID int) {
	c.Variables[target] = VariableState{Name: target, Set: set, NodeID: nodeID}
}

// Result returns the VariableState (ConstraintSet and node id) bound to
// "result", and whether it is bound; "result" is the convention by
// which a flow's final value is exposed (spec §4.3 item 3, §6).
func (c *Context) Result() (VariableState, bool) {
	v, ok := c.Variables["result"]
	return v, ok
}
