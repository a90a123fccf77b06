package searcher

import (
	"testing"

	"treesearch/game"

	"github.com/stretchr/testify/require"
)

func expandedTree(t *testing.T, root *mockState, transpositions bool) *tree[mockMove] {
	t.Helper()
	tr := newTree[mockMove](root, CSquared, transpositions)
	_, err := tr.expand(rootID)
	require.NoError(t, err)
	return tr
}

// setStats records visits on a root edge and the matching child
func setStats(tr *tree[mockMove], index int, visits int, rewards float64) {
	e := &tr.root().edges[index]
	e.visits = visits
	child := tr.child(e)
	child.visits = visits
	child.rewards = rewards
	tr.root().visits += visits
	tr.root().rewards += rewards
}

func TestExpand(t *testing.T) {
	t.Run("one edge per legal action in order", func(t *testing.T) {
		root := branch(game.Maximizer, leaf(1), leaf(0), leaf(-1))
		tr := expandedTree(t, root, false)

		edges := tr.root().edges
		require.Len(t, edges, 3)
		require.Equal(t, 4, tr.size())
		for i, e := range edges {
			require.Equal(t, mockMove(i), e.action)
			require.Equal(t, rootID, e.parent)
			require.Zero(t, e.visits, "New edges should be unvisited")
			require.Same(t, root.children[i], tr.child(&e).state)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		tr := expandedTree(t, branch(game.Maximizer, leaf(1), leaf(0)), false)
		tr.root().edges[0].visits = 5

		_, err := tr.expand(rootID)

		require.NoError(t, err)
		require.Len(t, tr.root().edges, 2)
		require.Equal(t, 5, tr.root().edges[0].visits, "Re-expanding should keep statistics")
		require.Equal(t, 3, tr.size())
	})

	t.Run("shares transposed children", func(t *testing.T) {
		shared := leaf(1)
		root := branch(game.Maximizer, shared, shared, leaf(0))

		tr := newTree[mockMove](root, CSquared, true)
		count, err := tr.expand(rootID)

		require.NoError(t, err)
		require.Equal(t, 1, count, "Second edge should reuse the first child")
		require.Equal(t, tr.root().edges[0].child, tr.root().edges[1].child)
		require.Equal(t, 3, tr.size())
	})

	t.Run("without transpositions every edge owns its child", func(t *testing.T) {
		shared := leaf(1)
		tr := newTree[mockMove](branch(game.Maximizer, shared, shared), CSquared, false)
		count, err := tr.expand(rootID)

		require.NoError(t, err)
		require.Zero(t, count)
		require.NotEqual(t, tr.root().edges[0].child, tr.root().edges[1].child)
	})

	t.Run("non-terminal state without actions", func(t *testing.T) {
		tr := newTree[mockMove](branch(game.Maximizer), CSquared, false)

		_, err := tr.expand(rootID)

		require.ErrorIs(t, err, ErrContractViolation)
	})
}

func TestSelectEdge(t *testing.T) {
	t.Run("all unvisited picks the first edge", func(t *testing.T) {
		tr := expandedTree(t, branch(game.Maximizer, leaf(1), leaf(1)), false)

		require.Equal(t, 0, tr.selectEdge(rootID))
	})

	t.Run("unvisited edges come first", func(t *testing.T) {
		tr := expandedTree(t, branch(game.Maximizer, leaf(1), leaf(-1)), false)
		setStats(tr, 0, 100, 100)

		require.Equal(t, 1, tr.selectEdge(rootID), "Unvisited edge should score +Inf")
	})

	t.Run("maximizer prefers higher averages", func(t *testing.T) {
		tr := expandedTree(t, branch(game.Maximizer, leaf(1), leaf(-1)), false)
		setStats(tr, 0, 10, 10)
		setStats(tr, 1, 10, -10)

		require.Equal(t, 0, tr.selectEdge(rootID))
	})

	t.Run("minimizer prefers lower averages", func(t *testing.T) {
		tr := expandedTree(t, branch(game.Minimizer, leaf(1), leaf(-1)), false)
		setStats(tr, 0, 10, 10)
		setStats(tr, 1, 10, -10)

		require.Equal(t, 1, tr.selectEdge(rootID))
	})

	t.Run("exploration overcomes a small gap", func(t *testing.T) {
		tr := expandedTree(t, branch(game.Maximizer, leaf(1), leaf(1)), false)
		setStats(tr, 0, 100, 60)
		setStats(tr, 1, 2, 1)

		require.Equal(t, 1, tr.selectEdge(rootID), "Rarely visited edge should get explored")
	})
}

func TestDescend(t *testing.T) {
	t.Run("stops at the first leaf", func(t *testing.T) {
		tr := expandedTree(t, branch(game.Maximizer, leaf(1), leaf(0)), false)

		path, id, err := tr.descend(nil)

		require.NoError(t, err)
		require.Equal(t, []edgeRef{{node: rootID, index: 0}}, path)
		require.Equal(t, tr.root().edges[0].child, id)
	})

	t.Run("detects cycles", func(t *testing.T) {
		root := branch(game.Maximizer)
		root.children = []*mockState{root}
		tr := expandedTree(t, root, true)

		_, _, err := tr.descend(nil)

		require.ErrorIs(t, err, ErrContractViolation)
	})
}

func TestBackup(t *testing.T) {
	inner := branch(game.Minimizer, leaf(-1), leaf(1))
	tr := expandedTree(t, branch(game.Maximizer, leaf(0), inner), false)
	innerID := tr.root().edges[1].child
	_, err := tr.expand(innerID)
	require.NoError(t, err)
	leafID := tr.nodes[innerID].edges[1].child

	path := []edgeRef{{node: rootID, index: 1}, {node: innerID, index: 1}}
	tr.backup(leafID, path, 1)

	require.Equal(t, 1, tr.nodes[leafID].visits, "Simulated node should be visited once")
	require.Equal(t, 1.0, tr.nodes[leafID].rewards)
	require.Equal(t, 1, tr.nodes[innerID].visits)
	require.Equal(t, 1.0, tr.nodes[innerID].rewards, "Reward should not flip for the minimizer")
	require.Equal(t, 1, tr.nodes[innerID].edges[1].visits)
	require.Equal(t, 1, tr.root().visits)
	require.Equal(t, 1.0, tr.root().rewards)
	require.Equal(t, 1, tr.root().edges[1].visits)
	require.Zero(t, tr.root().edges[0].visits, "Untraversed edges should be untouched")
}
