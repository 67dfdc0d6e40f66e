package optimizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obinexuscomputing/marktree/dom"
	"github.com/obinexuscomputing/marktree/tokenizer"
)

func TestOptimize_NilTree(t *testing.T) {
	_, err := Optimize(nil)
	require.ErrorIs(t, err, ErrNilTree)

	_, err = Optimize(&dom.Tree{})
	require.ErrorIs(t, err, ErrNilTree)
}

func TestOptimize_DropsEmptyAttributes(t *testing.T) {
	opt, err := Optimize(dom.Parse(`<img src="" alt="x"/>`))
	require.NoError(t, err)

	img := opt.Root().Child(0)
	require.Equal(t, "img", img.Name())

	_, ok := img.Attr("src")
	require.False(t, ok)

	alt, ok := img.Attr("alt")
	require.True(t, ok)
	require.Equal(t, "x", alt)
}

func TestOptimize_DropsBlankTextChildren(t *testing.T) {
	tree := dom.ParseWithOptions("<p>  \n </p>", tokenizer.Options{PreserveWhitespace: true})
	require.Equal(t, 1, tree.Counts.Texts)

	opt, err := Optimize(tree)
	require.NoError(t, err)

	require.Equal(t, 0, opt.Root().Child(0).NumChildren())
}

func TestOptimize_MergesConsecutiveText(t *testing.T) {
	p, err := dom.NewElement("p", nil)
	require.NoError(t, err)
	p.AppendChild(dom.NewText("a"))
	p.AppendChild(dom.NewText(""))
	p.AppendChild(dom.NewText("b"))

	root, err := dom.NewElement(dom.RootName, nil)
	require.NoError(t, err)
	root.AppendChild(p)

	opt, err := Optimize(&dom.Tree{Root: root, Counts: dom.CountNodes(root)})
	require.NoError(t, err)

	out := opt.Root().Child(0)
	require.Equal(t, 1, out.NumChildren())
	require.Equal(t, dom.TextNode, out.Child(0).Type())

	// the empty middle run is dropped before merging, so the survivors
	// concatenate without it
	require.Equal(t, "ab", out.Child(0).Value())
}

func TestOptimize_TextSeparatedByElementNotMerged(t *testing.T) {
	opt, err := Optimize(dom.Parse(`<p>a<b>x</b>c</p>`))
	require.NoError(t, err)

	p := opt.Root().Child(0)
	require.Equal(t, 3, p.NumChildren())
	require.Equal(t, "a", p.Child(0).Value())
	require.Equal(t, "c", p.Child(2).Value())
}

func TestOptimize_SourceTreeUntouched(t *testing.T) {
	tree := dom.Parse(`<img src="" alt="x"/>`)
	img := tree.Root.Children[0]

	_, err := Optimize(tree)
	require.NoError(t, err)

	// the input keeps its empty attribute
	require.Equal(t, "", img.Attrs["src"])
}

func TestOptimize_SharedSubtreeRewrittenOnce(t *testing.T) {
	shared := dom.NewText("x")

	left, err := dom.NewElement("a", nil)
	require.NoError(t, err)
	right, err := dom.NewElement("b", nil)
	require.NoError(t, err)

	left.AppendChild(shared)
	right.AppendChild(shared)

	root, err := dom.NewElement(dom.RootName, nil)
	require.NoError(t, err)
	root.AppendChild(left)
	root.AppendChild(right)

	opt, err := Optimize(&dom.Tree{Root: root})
	require.NoError(t, err)

	// both placements resolve to the one memoized result
	first := opt.Root().Child(0).Child(0)
	second := opt.Root().Child(1).Child(0)
	require.Same(t, first, second)
}

func TestOptimize_NodeReductionMetrics(t *testing.T) {
	input := "<div>\n  <p>a</p>\n</div>"

	tree := dom.ParseWithOptions(input, tokenizer.Options{PreserveWhitespace: true})

	opt, err := Optimize(tree)
	require.NoError(t, err)

	m := opt.Metrics()

	// counts include the synthetic root on both sides: six nodes in, the
	// two whitespace runs dropped, four out
	require.Equal(t, 6, m.NodeReduction.Original)
	require.Equal(t, 4, m.NodeReduction.Optimized)
	require.InDelta(t, 4.0/6.0, m.NodeReduction.Ratio, 1e-9)

	require.Less(t, m.MemoryUsage.Optimized, m.MemoryUsage.Original)
}

func TestOptimize_ClassStats(t *testing.T) {
	opt, err := Optimize(dom.Parse(`<ul><li>a</li><li>b</li></ul>`))
	require.NoError(t, err)

	classes := opt.StateClasses()
	require.Len(t, classes, 2)

	stats := opt.Metrics().StateClasses
	require.Equal(t, 2, stats.Count)
	require.NotNil(t, stats.AverageSize)
	require.InDelta(t, 2.0, *stats.AverageSize, 1e-9)
}

func TestOptimize_ClassStats_NoClasses(t *testing.T) {
	opt, err := Optimize(dom.Parse(`<div><p>only</p></div>`))
	require.NoError(t, err)

	require.Empty(t, opt.StateClasses())

	stats := opt.Metrics().StateClasses
	require.Equal(t, 0, stats.Count)

	// undefined, not zero
	require.Nil(t, stats.AverageSize)
}

func TestOptimize_Idempotent(t *testing.T) {
	once, err := Optimize(dom.Parse(`<div><img src="" alt="x"/><p>a<!-- c -->b</p></div>`))
	require.NoError(t, err)

	twice, err := Optimize(once.AsTree())
	require.NoError(t, err)

	m := twice.Metrics()
	require.Equal(t, m.NodeReduction.Original, m.NodeReduction.Optimized)
	require.InDelta(t, 1.0, m.NodeReduction.Ratio, 1e-9)

	a, err := json.Marshal(once.Root())
	require.NoError(t, err)
	b, err := json.Marshal(twice.Root())
	require.NoError(t, err)
	require.JSONEq(t, string(a), string(b))
}

func TestTree_AccessorsReturnCopies(t *testing.T) {
	opt, err := Optimize(dom.Parse(`<ul><li class="x">a</li><li class="x">b</li></ul>`))
	require.NoError(t, err)

	classes := opt.StateClasses()
	classes[0].Size = 99
	require.NotEqual(t, 99, opt.StateClasses()[0].Size)

	li := opt.Root().Child(0).Child(0)
	attrs := li.Attrs()
	attrs["class"] = "mutated"

	v, _ := li.Attr("class")
	require.Equal(t, "x", v)

	children := opt.Root().Children()
	children[0] = nil
	require.NotNil(t, opt.Root().Child(0))
}

func TestTree_MarshalJSONShape(t *testing.T) {
	opt, err := Optimize(dom.Parse(`<ul><li>a</li><li>b</li></ul>`))
	require.NoError(t, err)

	data, err := json.Marshal(opt)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Contains(t, decoded, "root")
	require.Contains(t, decoded, "state_classes")
	require.Contains(t, decoded, "optimization_metrics")
}
