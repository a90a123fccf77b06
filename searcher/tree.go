package searcher

import (
	"fmt"
	"math"

	"treesearch/game"
)

// edgeRef addresses nodes[node].edges[index], a path is the list of edges taken
// from the root in order
type edgeRef struct {
	node  nodeID
	index int
}

type tree[A comparable] struct {
	nodes    []*node[A]
	index    map[game.StateHash]nodeID // nil unless transpositions are enabled
	cSquared float64
}

func newTree[A comparable](state game.State[A], cSquared float64, transpositions bool) *tree[A] {
	t := &tree[A]{
		nodes:    []*node[A]{newNode(state)},
		cSquared: cSquared,
	}
	if transpositions {
		t.index = map[game.StateHash]nodeID{state.Hash(): rootID}
	}
	return t
}

func (t *tree[A]) root() *node[A] {
	return t.nodes[rootID]
}

func (t *tree[A]) size() int {
	return len(t.nodes)
}

func (t *tree[A]) child(e *edge[A]) *node[A] {
	return t.nodes[e.child]
}

// lookup returns the node for state, adding one if the state was not seen before.
// The bool reports whether an existing node was reused.
func (t *tree[A]) lookup(state game.State[A]) (nodeID, bool) {
	if t.index != nil {
		if id, ok := t.index[state.Hash()]; ok {
			return id, true
		}
	}
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, newNode(state))
	if t.index != nil {
		t.index[state.Hash()] = id
	}
	return id, false
}

// expand attaches one unvisited edge per legal action and returns how many of the
// children were transpositions. Expanding an expanded node is a no-op.
func (t *tree[A]) expand(id nodeID) (int, error) {
	n := t.nodes[id]
	if !n.isLeaf() {
		return 0, nil
	}

	actions := n.state.LegalActions()
	if len(actions) == 0 {
		return 0, fmt.Errorf("%w: non-terminal state has no legal actions", ErrContractViolation)
	}

	edges := make([]edge[A], 0, len(actions))
	shared := 0
	for _, action := range actions {
		child, reused := t.lookup(n.state.Play(action))
		if reused {
			shared++
		}
		edges = append(edges, edge[A]{action: action, parent: id, child: child})
	}
	n.edges = edges
	return shared, nil
}

// descend follows UCB1 from the root until it reaches a leaf, appending the edges
// it takes to path
func (t *tree[A]) descend(path []edgeRef) ([]edgeRef, nodeID, error) {
	id := rootID
	for !t.nodes[id].isLeaf() {
		// A simple path never has more edges than the tree has nodes
		if len(path) >= len(t.nodes) {
			return path, id, fmt.Errorf("%w: cycle in the state graph", ErrContractViolation)
		}
		i := t.selectEdge(id)
		path = append(path, edgeRef{node: id, index: i})
		id = t.nodes[id].edges[i].child
	}
	return path, id, nil
}

// selectEdge returns the edge index with the highest UCB1 score from the
// perspective of the node's actor. Unvisited edges score +Inf and ties go to the
// first edge.
func (t *tree[A]) selectEdge(id nodeID) int {
	n := t.nodes[id]
	total := n.edgeVisits()
	if total == 0 {
		return 0
	}

	policy := newUCB(t.cSquared, float64(total))
	sign := n.actor.Sign()
	best, bestScore := 0, math.Inf(-1)
	for i := range n.edges {
		e := &n.edges[i]
		score := math.Inf(1)
		if e.visits > 0 {
			score = policy.evaluate(sign*t.child(e).average(), float64(e.visits))
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// backup credits the reward to the simulated node once, then walks the path from
// the leaf back to the root crediting every traversed edge and its parent
func (t *tree[A]) backup(leaf nodeID, path []edgeRef, reward float64) {
	n := t.nodes[leaf]
	n.rewards += reward
	n.visits++

	for i := len(path) - 1; i >= 0; i-- {
		ref := path[i]
		parent := t.nodes[ref.node]
		parent.edges[ref.index].visits++
		parent.rewards += reward
		parent.visits++
	}
}
