package circuit

import "slices"

// Node is a gate together with its position in the dependency graph.
// Dependencies are the indices of the latest earlier non-barrier gates
// sharing a qubit with it.
type Node struct {
	Index        int
	Gate         Gate
	Step         int
	Dependencies []int
}

// DAG is the dependency view of a Program. Gates that touch disjoint qubits
// may share a step; a gate always lands after every gate it depends on.
type DAG struct {
	NumQubits int
	Nodes     []Node
}

// BuildDAG derives the dependency graph of p. Barriers occupy a step of their
// own and synchronize every qubit they span, so gates never move across them.
func BuildDAG(p *Program) *DAG {
	dag := &DAG{NumQubits: p.NumQubits, Nodes: make([]Node, 0, len(p.gates))}

	// Barriers fix drawing columns but never become a dependency.
	lastGateOnQubit := make(map[int]int)
	nextFree := make([]int, p.NumQubits)

	for i, g := range p.gates {
		qubitsUsed := g.Qubits(p.NumQubits)

		step := 0
		depSet := make(map[int]bool)
		for _, q := range qubitsUsed {
			if last, ok := lastGateOnQubit[q]; ok {
				depSet[last] = true
			}
		}
		lo, hi := 0, -1
		if len(qubitsUsed) > 0 {
			lo, hi = slices.Min(qubitsUsed), slices.Max(qubitsUsed)
		}
		for q := lo; q <= hi; q++ {
			step = max(step, nextFree[q])
		}

		deps := make([]int, 0, len(depSet))
		for d := range depSet {
			deps = append(deps, d)
		}
		slices.Sort(deps)

		dag.Nodes = append(dag.Nodes, Node{Index: i, Gate: g, Step: step, Dependencies: deps})

		for _, q := range qubitsUsed {
			if g.Kind != Barrier {
				lastGateOnQubit[q] = i
			}
			nextFree[q] = step + 1
		}
		if g.Kind == Barrier {
			// Nothing after a barrier may share its column, even on qubits it does not span.
			for q := range nextFree {
				nextFree[q] = max(nextFree[q], step+1)
			}
		} else if len(qubitsUsed) > 1 {
			// Multi-qubit gates draw a vertical connector; keep spanned wires clear.
			for q := lo; q <= hi; q++ {
				nextFree[q] = max(nextFree[q], step+1)
			}
		}
	}

	return dag
}

// MaxStep returns the number of steps the DAG occupies.
func (dag *DAG) MaxStep() int {
	maxStep := 0
	for _, node := range dag.Nodes {
		maxStep = max(maxStep, node.Step+1)
	}
	return maxStep
}

// NodesAtStep returns the nodes scheduled at step, in program order.
func (dag *DAG) NodesAtStep(step int) []Node {
	var result []Node
	for _, node := range dag.Nodes {
		if node.Step == step {
			result = append(result, node)
		}
	}
	return result
}

// TopologicalSort returns node indices so that every node follows its dependencies.
func (dag *DAG) TopologicalSort() []int {
	visited := make([]bool, len(dag.Nodes))
	result := make([]int, 0, len(dag.Nodes))

	var visit func(i int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		for _, dep := range dag.Nodes[i].Dependencies {
			visit(dep)
		}
		result = append(result, i)
	}

	for i := range dag.Nodes {
		visit(i)
	}
	return result
}

// CriticalPath returns the indices of the longest chain of dependent gates,
// first gate first. Its length equals the program depth.
func (dag *DAG) CriticalPath() []int {
	length := make([]int, len(dag.Nodes))
	prev := make([]int, len(dag.Nodes))
	end := -1
	for _, i := range dag.TopologicalSort() {
		prev[i] = -1
		if dag.Nodes[i].Gate.Kind == Barrier {
			continue
		}
		for _, d := range dag.Nodes[i].Dependencies {
			if prev[i] < 0 || length[d] > length[prev[i]] {
				prev[i] = d
			}
		}
		length[i] = 1
		if prev[i] >= 0 {
			length[i] += length[prev[i]]
		}
		if end < 0 || length[i] > length[end] {
			end = i
		}
	}

	var path []int
	for i := end; i >= 0; i = prev[i] {
		path = append(path, i)
	}
	slices.Reverse(path)
	return path
}
