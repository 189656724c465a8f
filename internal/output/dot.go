// # internal/output/dot.go
package output

import (
	"fmt"
	"sort"
	"strings"

	"depscan/internal/graph"
)

type DOTGenerator struct {
	representation *graph.Representation
}

func NewDOTGenerator(r *graph.Representation) *DOTGenerator {
	return &DOTGenerator{representation: r}
}

// Generate renders the representation as Graphviz DOT with cycle edges
// highlighted.
func (d *DOTGenerator) Generate(cycles [][]string) (string, error) {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("digraph %s {\n", string(d.representation.Kind)))
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  overlap=false;\n\n")

	cycleEdges := make(map[string]map[string]bool)
	cycleNodes := make(map[string]bool)
	for _, cycle := range cycles {
		for i := 0; i < len(cycle); i++ {
			from := cycle[i]
			to := cycle[(i+1)%len(cycle)]
			if cycleEdges[from] == nil {
				cycleEdges[from] = make(map[string]bool)
			}
			cycleEdges[from][to] = true
			cycleNodes[from] = true
		}
	}

	adjacency, err := d.representation.Directed.AdjacencyMap()
	if err != nil {
		return "", err
	}

	nodes := make([]string, 0, len(adjacency))
	for node := range adjacency {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	for _, node := range nodes {
		if cycleNodes[node] {
			buf.WriteString(fmt.Sprintf("  %q [fillcolor=\"mistyrose\", color=\"red\", style=\"rounded,filled\", penwidth=2.0];\n", node))
		} else {
			buf.WriteString(fmt.Sprintf("  %q;\n", node))
		}
	}
	buf.WriteString("\n")

	for _, from := range nodes {
		targets := make([]string, 0, len(adjacency[from]))
		for to := range adjacency[from] {
			targets = append(targets, to)
		}
		sort.Strings(targets)

		for _, to := range targets {
			if cycleEdges[from] != nil && cycleEdges[from][to] {
				buf.WriteString(fmt.Sprintf("  %q -> %q [color=\"red\", penwidth=3.0, label=\"CYCLE\"];\n", from, to))
			} else {
				buf.WriteString(fmt.Sprintf("  %q -> %q;\n", from, to))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
