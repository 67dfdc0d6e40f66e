package optimizer

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/obinexuscomputing/marktree/dom"
)

// Signature computes a structural digest of a node:
//
//	type | name | sorted-attribute-pairs-json | comma-joined-child-types
//
// Two nodes with the same signature are structurally identical at this
// level: same kind, same name, same attributes and the same sequence of
// child kinds.
func Signature(n *dom.Node) string {
	pairs := make([][2]string, 0, len(n.Attrs))
	for k, v := range n.Attrs {
		pairs = append(pairs, [2]string{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	// the pairs are plain strings, marshalling cannot fail
	attrJSON, _ := json.Marshal(pairs)

	childTypes := make([]string, len(n.Children))
	for i, c := range n.Children {
		childTypes[i] = c.Type.String()
	}

	return n.Type.String() + "|" + n.Name + "|" + string(attrJSON) + "|" + strings.Join(childTypes, ",")
}

// StateClass names a group of two or more structurally identical nodes.
// Classes are reporting metadata only; they do not introduce structural
// sharing in the output tree.
type StateClass struct {
	ID        int    `json:"id"`
	Signature string `json:"signature"`
	Size      int    `json:"size"`
}

// collectClasses walks the tree, groups nodes by identical signature and
// returns a class for every group with more than one member. Class ids
// follow the order in which the signatures first appear in the walk.
func collectClasses(root *dom.Node) []StateClass {
	sizes := map[string]int{}
	var order []string

	root.Walk(func(n *dom.Node) {
		sig := Signature(n)
		if sizes[sig] == 0 {
			order = append(order, sig)
		}
		sizes[sig]++
	})

	var classes []StateClass
	for _, sig := range order {
		if sizes[sig] < 2 {
			continue
		}

		classes = append(classes, StateClass{
			ID:        len(classes),
			Signature: sig,
			Size:      sizes[sig],
		})
	}

	return classes
}
