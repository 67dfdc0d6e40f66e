package dom

import (
	"fmt"

	"github.com/obinexuscomputing/marktree/automaton"
	"github.com/obinexuscomputing/marktree/tokenizer"
)

// RootName is the tag name of the synthetic element every built tree is
// rooted at.
const RootName = "root"

// Builder consumes a token sequence and produces a rooted tree. All of its
// state, the open-element stack in particular, belongs to a single Build
// call; a Builder must not be reused concurrently.
type Builder struct {
	model          *automaton.Model
	keepWhitespace bool

	// stack is the chain of currently-open elements, bottomed by the
	// synthetic root. The top entry is the current insertion point.
	stack []*Node

	errs []BuildError
}

// NewBuilder creates a Builder that stamps node metadata from the given
// model. keepWhitespace retains whitespace-only text runs as tree nodes.
func NewBuilder(model *automaton.Model, keepWhitespace bool) *Builder {
	return &Builder{model: model, keepWhitespace: keepWhitespace}
}

// Build assembles the token sequence into a Tree. Per-token failures are
// collected as recoverable BuildErrors; the build always produces a tree.
func (b *Builder) Build(tokens []tokenizer.Token) (*Tree, []BuildError) {
	root := &Node{Type: ElementNode, Name: RootName}
	b.stampMeta(root)

	b.stack = b.stack[:0]
	b.stack = append(b.stack, root)
	b.errs = nil

	for _, tok := range tokens {
		if tok.Kind == tokenizer.KindEOF {
			break
		}

		if err := b.apply(tok); err != nil {
			b.errs = append(b.errs, *err)
		}
	}

	tree := &Tree{
		Root:   root,
		Counts: CountNodes(root),
		Errors: b.errs,
	}

	// the stack is scratch state only; drop it so nothing keeps an
	// upward view into the finished tree
	b.stack = nil

	return tree, b.errs
}

// apply routes one token into the tree. A non-nil result is a recoverable
// error; the tree is left in a consistent state either way.
func (b *Builder) apply(tok tokenizer.Token) *BuildError {
	switch tok.Kind {
	case tokenizer.KindStartTag:
		return b.applyStartTag(tok)

	case tokenizer.KindEndTag:
		return b.applyEndTag(tok)

	case tokenizer.KindText:
		if !tok.IsWhitespace || b.keepWhitespace {
			text := NewText(tok.Text)
			b.stampMeta(text)
			b.top().AppendChild(text)
		}
		return nil

	case tokenizer.KindComment:
		comment := NewComment(tok.Text)
		b.stampMeta(comment)
		b.top().AppendChild(comment)
		return nil

	default:
		// doctype and CDATA tokens carry no tree effect in this core
		return nil
	}
}

func (b *Builder) applyStartTag(tok tokenizer.Token) *BuildError {
	el, err := NewElement(tok.Name, attrMap(tok.Attrs))
	if err != nil {
		return &BuildError{
			Issue:       IssueInvalidNode,
			Pos:         tok.Start,
			Line:        tok.Line,
			Column:      tok.Column,
			Description: err.Error(),
		}
	}

	b.stampMeta(el)
	b.top().AppendChild(el)

	if !tok.SelfClosing {
		b.stack = append(b.stack, el)
	}

	return nil
}

// applyEndTag scans the stack from the top toward (but not including) the
// root for a matching name. On a match every intervening open element is
// closed along with the matched one, which tolerates unbalanced and
// overlapping tags. Without a match the token is ignored so the tree is
// never corrupted.
func (b *Builder) applyEndTag(tok tokenizer.Token) *BuildError {
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].Name == tok.Name {
			b.stack = b.stack[:i]
			return nil
		}
	}

	return &BuildError{
		Issue:       IssueUnmatchedEndTag,
		Pos:         tok.Start,
		Line:        tok.Line,
		Column:      tok.Column,
		Description: fmt.Sprintf("end tag </%s> has no open element to close", tok.Name),
	}
}

// top returns the current insertion point. The stack always holds at least
// the root.
func (b *Builder) top() *Node {
	return b.stack[len(b.stack)-1]
}

// stampMeta tags a freshly created node with the minimized class id of the
// model's current abstract state.
func (b *Builder) stampMeta(n *Node) {
	if b.model == nil {
		return
	}

	if class, ok := b.model.CurrentClass(); ok {
		n.Meta = Meta{EquivalenceClass: class, IsMinimized: true}
	}
}

func attrMap(attrs []tokenizer.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}

	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}

	return m
}
