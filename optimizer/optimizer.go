// Package optimizer normalizes and compacts a parsed document tree. It
// groups structurally identical subtrees into reported state classes,
// rewrites the tree (dropping empty attributes, dropping and merging text),
// and computes before/after size metrics. The input tree is never mutated;
// the output is a fresh tree of read-only nodes.
package optimizer

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/obinexuscomputing/marktree/dom"
)

// ErrNilTree is returned when Optimize is called without a tree to work on.
var ErrNilTree = errors.New("optimizer: nil tree")

// Tree is an optimized document tree together with its state classes and
// optimization metrics. Like its nodes it is read-only.
type Tree struct {
	root    *Node
	classes []StateClass
	metrics Metrics
}

// Root returns the optimized root node.
func (t *Tree) Root() *Node {
	return t.root
}

// StateClasses returns a copy of the reported state classes.
func (t *Tree) StateClasses() []StateClass {
	if len(t.classes) == 0 {
		return nil
	}

	out := make([]StateClass, len(t.classes))
	copy(out, t.classes)

	return out
}

// Metrics returns the optimization metrics.
func (t *Tree) Metrics() Metrics {
	return t.metrics
}

// MarshalJSON serializes the optimized tree with its state classes and
// metrics, mirroring the [dom.Tree] shape for the root.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Root         *Node        `json:"root"`
		StateClasses []StateClass `json:"state_classes,omitempty"`
		Metrics      Metrics      `json:"optimization_metrics"`
	}{t.root, t.classes, t.metrics})
}

// AsTree rebuilds a mutable [dom.Tree] from the optimized result, with
// fresh counts. This is how an already-optimized tree is fed through
// Optimize again.
func (t *Tree) AsTree() *dom.Tree {
	root := t.root.toDOM()

	return &dom.Tree{
		Root:   root,
		Counts: dom.CountNodes(root),
	}
}

// Optimize runs the optimization passes over the given tree and returns a
// fresh, read-only result. It is a pure function of its input: the source
// tree is left untouched and all scratch state (the memo cache in
// particular) lives and dies with the call.
func Optimize(t *dom.Tree) (*Tree, error) {
	if t == nil || t.Root == nil {
		return nil, ErrNilTree
	}

	classes := collectClasses(t.Root)

	rw := &rewriter{memo: make(map[*dom.Node]*Node)}
	root := rw.rewrite(t.Root)

	return &Tree{
		root:    root,
		classes: classes,
		metrics: computeMetrics(t.Root, root, classes),
	}, nil
}

// rewriter carries the per-invocation memo cache. The cache is keyed by
// input node pointer: when the same node object is reachable via multiple
// paths it is optimized once and the cached result reused. This
// de-duplicates computation, not output identity: each placement in a
// parent's child list keeps its own slot, which may point at the same
// optimized value.
type rewriter struct {
	memo map[*dom.Node]*Node
}

func (rw *rewriter) rewrite(n *dom.Node) *Node {
	if cached, ok := rw.memo[n]; ok {
		return cached
	}

	out := &Node{
		nodeType: n.Type,
		name:     n.Name,
		value:    n.Value,
		meta:     n.Meta,
		attrs:    prunedAttrs(n.Attrs),
	}

	for _, child := range n.Children {
		// text children whose trimmed value is empty are dropped
		// before any merging happens
		if child.Type == dom.TextNode && strings.TrimSpace(child.Value) == "" {
			continue
		}

		oc := rw.rewrite(child)

		// merge consecutive text children, concatenating in order
		if oc.nodeType == dom.TextNode && len(out.children) > 0 {
			if last := out.children[len(out.children)-1]; last.nodeType == dom.TextNode {
				out.children[len(out.children)-1] = &Node{
					nodeType: dom.TextNode,
					value:    last.value + oc.value,
					meta:     last.meta,
				}
				continue
			}
		}

		out.children = append(out.children, oc)
	}

	rw.memo[n] = out

	return out
}

// prunedAttrs copies the attribute map, dropping any attribute whose value
// is empty.
func prunedAttrs(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}

	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		if v == "" {
			continue
		}
		out[k] = v
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
