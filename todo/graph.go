package todo

import "sort"

// Graph maintains the prerequisite relation between todo IDs as a mapping
// from dependent ID to its prerequisite IDs. The relation is kept acyclic:
// AddEdge refuses any edge that would close a cycle.
//
// Graph does not know which IDs name live todos; the store validates ID
// existence before delegating edge mutations.
type Graph struct {
	prereqs map[int][]int
}

// NewGraph builds a graph from a dependent-to-prerequisites mapping. The
// input is copied.
func NewGraph(edges map[int][]int) *Graph {
	prereqs := make(map[int][]int, len(edges))
	for dependent, ids := range edges {
		prereqs[dependent] = append([]int(nil), ids...)
	}
	return &Graph{prereqs: prereqs}
}

// AddEdge records that dependent requires prerequisite. It fails with
// ErrSelfDependency for a 1-node cycle, ErrDuplicateDependency if the edge
// already exists, and ErrCycle if dependent is reachable from prerequisite
// along existing edges. On failure the graph is unchanged.
func (g *Graph) AddEdge(dependent, prerequisite int) error {
	if dependent == prerequisite {
		return ErrSelfDependency
	}
	if g.HasEdge(dependent, prerequisite) {
		return ErrDuplicateDependency
	}
	if g.reachable(prerequisite, dependent) {
		return ErrCycle
	}
	g.prereqs[dependent] = append(g.prereqs[dependent], prerequisite)
	return nil
}

// RemoveEdge removes the edge if present; absent edges are a no-op.
func (g *Graph) RemoveEdge(dependent, prerequisite int) {
	ids := g.prereqs[dependent]
	for i, id := range ids {
		if id == prerequisite {
			g.prereqs[dependent] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(g.prereqs[dependent]) == 0 {
		delete(g.prereqs, dependent)
	}
}

// RemoveNode deletes every edge touching id in either direction, so no
// dangling references survive a todo deletion.
func (g *Graph) RemoveNode(id int) {
	delete(g.prereqs, id)
	for dependent := range g.prereqs {
		g.RemoveEdge(dependent, id)
	}
}

// HasEdge reports whether dependent directly requires prerequisite.
func (g *Graph) HasEdge(dependent, prerequisite int) bool {
	for _, id := range g.prereqs[dependent] {
		if id == prerequisite {
			return true
		}
	}
	return false
}

// Prerequisites returns the direct prerequisites of id.
func (g *Graph) Prerequisites(id int) []int {
	return append([]int(nil), g.prereqs[id]...)
}

// Ancestors returns every todo id transitively depends on, in ascending
// order.
func (g *Graph) Ancestors(id int) []int {
	visited := map[int]bool{id: true}
	var out []int
	g.walkAncestors(id, visited, &out)
	sort.Ints(out)
	return out
}

func (g *Graph) walkAncestors(id int, visited map[int]bool, out *[]int) {
	for _, prereq := range g.prereqs[id] {
		if visited[prereq] {
			continue
		}
		visited[prereq] = true
		*out = append(*out, prereq)
		g.walkAncestors(prereq, visited, out)
	}
}

// Descendants returns every todo that transitively depends on id, in
// ascending order.
func (g *Graph) Descendants(id int) []int {
	visited := map[int]bool{id: true}
	var out []int
	g.walkDescendants(id, visited, &out)
	sort.Ints(out)
	return out
}

func (g *Graph) walkDescendants(id int, visited map[int]bool, out *[]int) {
	for _, dependent := range g.dependentsOf(id) {
		if visited[dependent] {
			continue
		}
		visited[dependent] = true
		*out = append(*out, dependent)
		g.walkDescendants(dependent, visited, out)
	}
}

func (g *Graph) dependentsOf(id int) []int {
	var dependents []int
	for dependent, prereqs := range g.prereqs {
		for _, prereq := range prereqs {
			if prereq == id {
				dependents = append(dependents, dependent)
				break
			}
		}
	}
	sort.Ints(dependents)
	return dependents
}

// reachable reports whether target can be reached from start by following
// prerequisite edges. The visited set guards against diamonds.
func (g *Graph) reachable(start, target int) bool {
	visited := make(map[int]bool)
	stack := []int{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == target {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		stack = append(stack, g.prereqs[current]...)
	}
	return false
}

// HasCycle reports whether the stored relation contains a cycle. Loading
// rejects documents for which this is true.
func (g *Graph) HasCycle() bool {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[int]int, len(g.prereqs))

	var visit func(id int) bool
	visit = func(id int) bool {
		state[id] = inStack
		for _, prereq := range g.prereqs[id] {
			switch state[prereq] {
			case inStack:
				return true
			case unvisited:
				if visit(prereq) {
					return true
				}
			}
		}
		state[id] = done
		return false
	}

	for id := range g.prereqs {
		if state[id] == unvisited && visit(id) {
			return true
		}
	}
	return false
}

// Edges returns a copy of the dependent-to-prerequisites mapping.
func (g *Graph) Edges() map[int][]int {
	edges := make(map[int][]int, len(g.prereqs))
	for dependent, ids := range g.prereqs {
		edges[dependent] = append([]int(nil), ids...)
	}
	return edges
}

// Len returns the number of dependents with at least one prerequisite.
func (g *Graph) Len() int {
	return len(g.prereqs)
}
