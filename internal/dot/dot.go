// Package dot renders a dependence graph as a Graphviz DOT document: one
// node per gate (plus SOURCE/SINK), edges labeled with their operand,
// weight, and dependence kind, and an optional cycle-rank clustering with a
// timeline spine connecting consecutive cycle clusters.
//
// Grounded on the string-builder DOT-emission style of
// Atul-Ranjan12-google-dag-optimization/src/visualize.go (digraph header,
// per-node fillcolor/style attributes, a dedicated cluster per logical
// grouping) — this package has no functional role in scheduling, matching
// spec §4.6 ("No functional role in scheduling").
package dot

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/vk/qsched/internal/depgraph"
)

// labelWrapWidth bounds the DOT node label width before go-wordwrap inserts
// a line break, keeping wide gate names from stretching the rendered graph.
const labelWrapWidth = 24

// Options controls the render.
type Options struct {
	// RankByCycle groups nodes into per-cycle clusters connected by a
	// timeline spine, per spec §4.6. Requires Gate.Cycle to already be
	// assigned (i.e. render after a scheduling pass).
	RankByCycle bool
}

// Render writes g as a DOT document to w.
func Render(g *depgraph.Graph, opts Options, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("digraph Schedule {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	if opts.RankByCycle {
		writeCycleClusters(&sb, g)
	} else {
		for _, n := range g.Nodes {
			writeNode(&sb, n)
		}
	}

	sb.WriteString("\n")
	for _, e := range g.Edges {
		sb.WriteString(fmt.Sprintf("  %s -> %s [label=\"q%d, %d, %s\"];\n",
			nodeID(g.Nodes[e.Source]), nodeID(g.Nodes[e.Target]), e.Operand, e.Weight, e.Kind))
	}

	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func nodeID(n *depgraph.Node) string {
	switch n.Kind {
	case depgraph.SourceNode:
		return "SOURCE"
	case depgraph.SinkNode:
		return "SINK"
	default:
		return fmt.Sprintf("N%d", n.ID)
	}
}

func writeNode(sb *strings.Builder, n *depgraph.Node) {
	color := "lightyellow"
	label := wordwrap.WrapString(n.Gate.Name, labelWrapWidth)
	switch n.Kind {
	case depgraph.SourceNode:
		color = "lightgreen"
		label = "SOURCE"
	case depgraph.SinkNode:
		color = "lightblue"
		label = "SINK"
	default:
		label = fmt.Sprintf("%s\\n%s\\ncycle=%d", label, n.Gate.Kind, n.Gate.Cycle)
	}
	sb.WriteString(fmt.Sprintf("  %s [label=\"%s\", fillcolor=\"%s\"];\n", nodeID(n), label, color))
}

// writeCycleClusters groups nodes by Gate.Cycle into rank=same subgraphs and
// chains the cycle clusters together with an invisible timeline spine, per
// spec §4.6's "each cycle number becomes a rank-equal cluster with a
// timeline spine".
func writeCycleClusters(sb *strings.Builder, g *depgraph.Graph) {
	byCycle := make(map[int][]*depgraph.Node)
	for _, n := range g.Nodes {
		byCycle[n.Gate.Cycle] = append(byCycle[n.Gate.Cycle], n)
	}

	cycles := make([]int, 0, len(byCycle))
	for c := range byCycle {
		cycles = append(cycles, c)
	}
	sort.Ints(cycles)

	for _, c := range cycles {
		sb.WriteString(fmt.Sprintf("  subgraph cluster_cycle_%d {\n", c))
		sb.WriteString(fmt.Sprintf("    label=\"Cycle %d\";\n", c))
		sb.WriteString("    style=dashed;\n")
		for _, n := range byCycle[c] {
			sb.WriteString("  ")
			writeNode(sb, n)
		}
		sb.WriteString(fmt.Sprintf("    \"Cycle%d\" [shape=point, style=invis];\n", c))
		sb.WriteString("  }\n")
	}

	sb.WriteString("\n  // timeline spine\n")
	sb.WriteString("  edge [style=invis];\n")
	for i := 1; i < len(cycles); i++ {
		sb.WriteString(fmt.Sprintf("  \"Cycle%d\" -> \"Cycle%d\";\n", cycles[i-1], cycles[i]))
	}
	sb.WriteString("  edge [style=solid];\n")
}
