package searcher

import (
	"sync/atomic"
	"testing"

	"treesearch/game"

	"github.com/stretchr/testify/require"
)

var mockHashes atomic.Uint64

type mockMove int

// mockState is an explicit game tree, each state has a unique hash unless the same
// *mockState is reachable twice
type mockState struct {
	hash     game.StateHash
	actor    game.Actor
	children []*mockState
	payoff   float64
	terminal bool
}

func nextHash() game.StateHash {
	return game.StateHash(mockHashes.Add(1))
}

func leaf(payoff float64) *mockState {
	return &mockState{hash: nextHash(), payoff: payoff, terminal: true}
}

func branch(actor game.Actor, children ...*mockState) *mockState {
	return &mockState{hash: nextHash(), actor: actor, children: children}
}

func (m *mockState) Actor() game.Actor {
	return m.actor
}

func (m *mockState) LegalActions() []mockMove {
	if m.terminal {
		return nil
	}
	moves := make([]mockMove, len(m.children))
	for i := range m.children {
		moves[i] = mockMove(i)
	}
	return moves
}

func (m *mockState) Play(move mockMove) game.State[mockMove] {
	return m.children[move]
}

func (m *mockState) IsTerminal() bool {
	return m.terminal
}

func (m *mockState) Payoff() float64 {
	return m.payoff
}

func (m *mockState) Hash() game.StateHash {
	return m.hash
}

func TestNodeAverage(t *testing.T) {
	t.Run("unvisited node", func(t *testing.T) {
		n := newNode[mockMove](leaf(1))

		require.Zero(t, n.average(), "Unvisited node should average 0")
	})

	t.Run("raw rewards", func(t *testing.T) {
		n := newNode[mockMove](leaf(1))
		n.rewards, n.visits = -3, 4

		require.Equal(t, -0.75, n.average(), "Average should not be sign adjusted")
	})
}

func TestNodeEdges(t *testing.T) {
	n := newNode[mockMove](branch(game.Minimizer, leaf(0), leaf(0)))

	require.True(t, n.isLeaf(), "New node should be a leaf")
	require.Equal(t, game.Minimizer, n.actor, "Actor should be cached from the state")

	n.edges = []edge[mockMove]{{action: 0, visits: 2}, {action: 1, visits: 3}}

	require.False(t, n.isLeaf())
	require.Equal(t, 5, n.edgeVisits(), "Should sum sibling edge visits")
}
