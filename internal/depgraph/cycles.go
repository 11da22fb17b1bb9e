package depgraph

import "fmt"

// DetectCycles runs a DFS cycle check over the graph, grounded on the
// teacher's three-color (unvisited/temporary/permanent) DFS in
// internal/dag.Graph.DetectCycles. Construction can only add edges from an
// already-added node to a new one, so in practice this always passes; it
// exists as the fatal self-check spec §7 requires ("dependence graph is not
// a DAG").
func DetectCycles(g *Graph) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(g.Nodes))

	var visit func(id int) error
	visit = func(id int) error {
		state[id] = visiting
		for _, edgeIdx := range g.Nodes[id].Out {
			e := g.Edges[edgeIdx]
			switch state[e.Target] {
			case visiting:
				return fmt.Errorf("cycle detected involving node %d (%s)", e.Target, g.Nodes[e.Target].Gate.Name)
			case unvisited:
				if err := visit(e.Target); err != nil {
					return err
				}
			}
		}
		state[id] = done
		return nil
	}

	for _, n := range g.Nodes {
		if state[n.ID] == unvisited {
			if err := visit(n.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
