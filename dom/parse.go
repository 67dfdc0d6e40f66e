package dom

import (
	"github.com/obinexuscomputing/marktree/automaton"
	"github.com/obinexuscomputing/marktree/tokenizer"
)

// Tree is the result of a full parse: the rooted node hierarchy plus
// aggregate counts, state-model minimization metrics and everything
// non-fatal that was reported along the way.
type Tree struct {
	Root *Node `json:"root"`

	Counts Counts `json:"counts"`

	Minimization automaton.Metrics `json:"minimization_metrics"`

	// Diagnostics are the tokenizer's non-fatal findings.
	Diagnostics []tokenizer.Diagnostic `json:"diagnostics,omitempty"`

	// Errors are the builder's recoverable per-token failures.
	Errors []BuildError `json:"errors,omitempty"`
}

// Parse runs the full pipeline (tokenize, minimize the state model, build)
// with default tokenizer options.
func Parse(input string) *Tree {
	return ParseWithOptions(input, tokenizer.Options{})
}

// ParseWithOptions is Parse with explicit tokenizer options.
// PreserveWhitespace additionally makes the builder retain whitespace-only
// text runs as tree nodes.
func ParseWithOptions(input string, opts tokenizer.Options) *Tree {
	tokens, diags := tokenizer.Tokenize(input, opts)

	model := automaton.NewModel()
	model.Minimize()

	builder := NewBuilder(model, opts.PreserveWhitespace)
	tree, _ := builder.Build(tokens)

	tree.Minimization = model.Metrics()
	tree.Diagnostics = diags

	return tree
}
