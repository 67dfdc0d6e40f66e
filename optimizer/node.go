package optimizer

import (
	"encoding/json"

	"github.com/obinexuscomputing/marktree/dom"
)

// Node is one node of an optimized tree. It is immutable by construction:
// all fields are unexported and the accessors return copies of any mutable
// containers, so no caller can alter an optimized tree after the fact.
type Node struct {
	nodeType dom.NodeType
	name     string
	value    string
	attrs    map[string]string
	children []*Node
	meta     dom.Meta
}

// Type returns the node's kind.
func (n *Node) Type() dom.NodeType {
	return n.nodeType
}

// Name returns the element's lowercased tag name, or "" for non-elements.
func (n *Node) Name() string {
	return n.name
}

// Value returns the content of text and comment nodes.
func (n *Node) Value() string {
	return n.value
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns a copy of the node's attribute map.
func (n *Node) Attrs() map[string]string {
	if len(n.attrs) == 0 {
		return nil
	}

	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}

	return out
}

// NumChildren returns the number of children without copying.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the i-th child.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Children returns a copy of the node's child list.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}

	out := make([]*Node, len(n.children))
	copy(out, n.children)

	return out
}

// Meta returns the node's equivalence-class metadata.
func (n *Node) Meta() dom.Meta {
	return n.meta
}

// MarshalJSON serializes the node in the same shape as [dom.Node].
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		Type:     n.nodeType,
		Name:     n.name,
		Value:    n.value,
		Attrs:    n.attrs,
		Children: n.children,
		Meta:     n.meta,
	})
}

type nodeJSON struct {
	Type     dom.NodeType      `json:"type"`
	Name     string            `json:"name,omitempty"`
	Value    string            `json:"value,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*Node           `json:"children,omitempty"`
	Meta     dom.Meta          `json:"meta"`
}

// walk visits the node and its descendants. Shared subtrees produced by
// memoized rewriting are visited once per placement, which matches how a
// strict-ownership consumer sees the tree.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// toDOM rebuilds a mutable dom.Node hierarchy from the read-only view.
// Every placement gets a fresh node so the result honours the strict
// single-parent ownership of the dom package.
func (n *Node) toDOM() *dom.Node {
	out := &dom.Node{
		Type:  n.nodeType,
		Name:  n.name,
		Value: n.value,
		Attrs: n.Attrs(),
		Meta:  n.meta,
	}

	for _, c := range n.children {
		out.AppendChild(c.toDOM())
	}

	return out
}
