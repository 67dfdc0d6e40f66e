// Package automaton holds a small fixed abstract automaton describing the
// phases of a markup parse, together with a Moore-style partition-refinement
// minimizer. The automaton is a structural abstraction: it is not driven by
// the token stream. Its minimized equivalence classes are attached to tree
// nodes as descriptive metadata.
package automaton

// Transition symbols of the parse-phase automaton.
const (
	SymbolOpen    = "open"    // '<' starts a tag
	SymbolClose   = "close"   // '>' returns to content
	SymbolComment = "comment" // "<!--" enters a comment
	SymbolDoctype = "doctype" // "<!DOCTYPE" enters a doctype
	SymbolEnd     = "end"     // end of input
)

// State labels. The set is fixed for this domain.
const (
	LabelInitial   = "initial"
	LabelInTag     = "in_tag"
	LabelInContent = "in_content"
	LabelInComment = "in_comment"
	LabelInDoctype = "in_doctype"
	LabelFinal     = "final"
)

// State is one abstract parse-phase state with symbolic transitions to
// other states of the same automaton.
type State struct {
	Label       string
	Accepting   bool
	Transitions map[string]*State
}

// ParsePhases builds the fixed six-state parse-phase automaton:
// Initial, InTag, InContent (accepting), InComment, InDoctype and Final
// (accepting). Each call returns a fresh, independent instance so callers
// never share mutable state.
func ParsePhases() []*State {
	initial := &State{Label: LabelInitial}
	inTag := &State{Label: LabelInTag}
	inContent := &State{Label: LabelInContent, Accepting: true}
	inComment := &State{Label: LabelInComment}
	inDoctype := &State{Label: LabelInDoctype}
	final := &State{Label: LabelFinal, Accepting: true}

	initial.Transitions = map[string]*State{
		SymbolOpen: inTag,
		SymbolEnd:  final,
	}
	inTag.Transitions = map[string]*State{
		SymbolClose:   inContent,
		SymbolComment: inComment,
		SymbolDoctype: inDoctype,
	}
	inContent.Transitions = map[string]*State{
		SymbolOpen: inTag,
		SymbolEnd:  final,
	}
	inComment.Transitions = map[string]*State{
		SymbolClose: inContent,
	}
	inDoctype.Transitions = map[string]*State{
		SymbolClose: inContent,
	}
	final.Transitions = map[string]*State{}

	return []*State{initial, inTag, inContent, inComment, inDoctype, final}
}
