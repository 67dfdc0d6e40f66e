package optimizer

import (
	"encoding/json"

	"github.com/obinexuscomputing/marktree/dom"
)

// nodeOverheadBytes is the fixed per-node footprint charged on top of the
// node's string content when estimating memory usage. Characters of
// type/name/value/attribute strings are charged at 2 bytes each.
const nodeOverheadBytes = 48

// Reduction compares a quantity before and after optimization.
// Ratio is optimized over original.
type Reduction struct {
	Original  int     `json:"original"`
	Optimized int     `json:"optimized"`
	Ratio     float64 `json:"ratio"`
}

// ClassStats summarizes the state classes found during signature classing.
// AverageSize is the total class-member count divided by the class count;
// with zero classes the average is undefined and reported as null rather
// than zero.
type ClassStats struct {
	Count       int      `json:"count"`
	AverageSize *float64 `json:"average_size"`
}

// Metrics is the full optimization report, attached to the optimized tree.
type Metrics struct {
	NodeReduction Reduction  `json:"node_reduction"`
	MemoryUsage   Reduction  `json:"memory_usage"`
	StateClasses  ClassStats `json:"state_classes"`
}

// computeMetrics walks the original and the optimized tree once each.
// Node counts include the root on both sides so the ratio compares like
// with like.
func computeMetrics(original *dom.Node, optimized *Node, classes []StateClass) Metrics {
	var origNodes, origBytes int
	original.Walk(func(n *dom.Node) {
		origNodes++
		origBytes += domFootprint(n)
	})

	var optNodes, optBytes int
	optimized.walk(func(n *Node) {
		optNodes++
		optBytes += viewFootprint(n)
	})

	return Metrics{
		NodeReduction: reduction(origNodes, optNodes),
		MemoryUsage:   reduction(origBytes, optBytes),
		StateClasses:  classStats(classes),
	}
}

func reduction(original, optimized int) Reduction {
	var ratio float64
	if original > 0 {
		ratio = float64(optimized) / float64(original)
	}

	return Reduction{Original: original, Optimized: optimized, Ratio: ratio}
}

func classStats(classes []StateClass) ClassStats {
	stats := ClassStats{Count: len(classes)}
	if len(classes) == 0 {
		return stats
	}

	total := 0
	for _, c := range classes {
		total += c.Size
	}

	avg := float64(total) / float64(len(classes))
	stats.AverageSize = &avg

	return stats
}

func domFootprint(n *dom.Node) int {
	return footprint(n.Type, n.Name, n.Value, n.Attrs, n.Meta)
}

func viewFootprint(n *Node) int {
	return footprint(n.nodeType, n.name, n.value, n.attrs, n.meta)
}

// footprint estimates one node's memory: the fixed overhead, 2 bytes per
// character of the type/name/value/attribute strings, and the serialized
// size of the metadata record.
func footprint(t dom.NodeType, name, value string, attrs map[string]string, meta dom.Meta) int {
	size := nodeOverheadBytes

	size += 2 * len(t.String())
	size += 2 * len(name)
	size += 2 * len(value)

	for k, v := range attrs {
		size += 2 * (len(k) + len(v))
	}

	// meta is a fixed-shape struct of scalars, marshalling cannot fail
	metaJSON, _ := json.Marshal(meta)
	size += len(metaJSON)

	return size
}
