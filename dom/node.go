// Package dom assembles tokenizer output into a rooted document tree of
// element, text and comment nodes. Mismatched or unbalanced markup degrades
// to best-effort structure plus recoverable build errors; the build itself
// never aborts.
package dom

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NodeType defines the semantic kind of a tree node.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

var nodeTypeNames = [...]string{
	ElementNode: "element",
	TextNode:    "text",
	CommentNode: "comment",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
	return nodeTypeNames[t]
}

func (t NodeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *NodeType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for i, n := range nodeTypeNames {
		if n == name {
			*t = NodeType(i)
			return nil
		}
	}

	return fmt.Errorf("unknown node type: %q", name)
}

// Meta is the equivalence-class metadata stamped on every node at the
// moment of its creation during tree building.
type Meta struct {
	EquivalenceClass int  `json:"equivalence_class"`
	IsMinimized      bool `json:"is_minimized"`
}

// Node represents a single node of the document tree.
//
// The tree is a strict hierarchy: each node has exactly one parent (except
// the root) and owns its children exclusively. Nodes keep no back-reference
// to their parent; the builder's open-element stack is the only transient
// upward view and is discarded once the tree is built.
type Node struct {
	Type NodeType `json:"type"`

	// Name is the lowercased tag name; set for element nodes only.
	Name string `json:"name,omitempty"`

	// Value is the content of text and comment nodes.
	Value string `json:"value,omitempty"`

	// Attrs holds the element's attributes. Insertion order is
	// irrelevant at the tree level.
	Attrs map[string]string `json:"attrs,omitempty"`

	Children []*Node `json:"children,omitempty"`

	Meta Meta `json:"meta"`
}

// ErrInvalidShape is returned when a node is constructed with fields that
// do not fit its type, e.g. an element without a name. This is the fatal,
// programmer-error class of failure; malformed input never produces it.
var ErrInvalidShape = errors.New("invalid node shape")

// NewElement creates an element node with the given lowercase-expected
// name and attributes.
func NewElement(name string, attrs map[string]string) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: element requires a name", ErrInvalidShape)
	}

	return &Node{Type: ElementNode, Name: name, Attrs: attrs}, nil
}

// NewText creates a text node.
func NewText(value string) *Node {
	return &Node{Type: TextNode, Value: value}
}

// NewComment creates a comment node.
func NewComment(value string) *Node {
	return &Node{Type: CommentNode, Value: value}
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// Walk visits n and all of its descendants depth-first, children in order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Counts aggregates node totals from a full tree walk. By convention the
// synthetic root element is excluded from every count.
type Counts struct {
	Nodes    int `json:"node_count"`
	Elements int `json:"element_count"`
	Texts    int `json:"text_count"`
	Comments int `json:"comment_count"`
}

// CountNodes computes aggregate counts for the tree under root, excluding
// the root itself.
func CountNodes(root *Node) Counts {
	var counts Counts

	root.Walk(func(n *Node) {
		if n == root {
			return
		}

		counts.Nodes++
		switch n.Type {
		case ElementNode:
			counts.Elements++
		case TextNode:
			counts.Texts++
		case CommentNode:
			counts.Comments++
		}
	})

	return counts
}
