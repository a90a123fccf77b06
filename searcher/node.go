package searcher

import "treesearch/game"

// nodeID indexes tree.nodes, edges refer to children by id so that a child can be
// shared between parents when transpositions are enabled
type nodeID int

const rootID nodeID = 0

type edge[A comparable] struct {
	action A
	parent nodeID
	child  nodeID
	visits int
}

type node[A comparable] struct {
	state   game.State[A]
	actor   game.Actor
	rewards float64 // Raw payoffs, never sign adjusted
	visits  int
	edges   []edge[A]
}

func newNode[A comparable](state game.State[A]) *node[A] {
	return &node[A]{
		state: state,
		actor: state.Actor(),
	}
}

func (n *node[A]) average() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.rewards / float64(n.visits)
}

func (n *node[A]) isLeaf() bool {
	return len(n.edges) == 0
}

// edgeVisits is T in the UCB1 exploration term
func (n *node[A]) edgeVisits() int {
	total := 0
	for i := range n.edges {
		total += n.edges[i].visits
	}
	return total
}
