package searcher

import "fmt"

// Decision picks the root action once the budget is spent
type Decision int

const (
	// BestAverage picks the visited action with the best average payoff for the
	// actor to move, breaking ties by visits
	BestAverage Decision = iota
	// MostVisits picks the most visited action, breaking ties by average payoff
	MostVisits
)

func (d Decision) String() string {
	switch d {
	case BestAverage:
		return "average"
	case MostVisits:
		return "visits"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

func ParseDecision(s string) (Decision, error) {
	switch s {
	case "", "average":
		return BestAverage, nil
	case "visits":
		return MostVisits, nil
	default:
		return 0, fmt.Errorf("unknown decision rule %q", s)
	}
}

// ActionStats summarizes one root edge. Value is the child's average raw payoff.
type ActionStats[A comparable] struct {
	Action A
	Visits int
	Value  float64
}

func (t *tree[A]) stats() []ActionStats[A] {
	root := t.root()
	stats := make([]ActionStats[A], len(root.edges))
	for i := range root.edges {
		e := &root.edges[i]
		stats[i] = ActionStats[A]{
			Action: e.action,
			Visits: e.visits,
			Value:  t.child(e).average(),
		}
	}
	return stats
}

// decide returns the root action chosen by rule d. Unvisited edges are never
// chosen, false means no edge was visited.
func (t *tree[A]) decide(d Decision) (A, bool) {
	root := t.root()
	sign := root.actor.Sign()

	best := -1
	for i := range root.edges {
		if root.edges[i].visits == 0 {
			continue
		}
		if best < 0 || t.better(d, sign, &root.edges[i], &root.edges[best]) {
			best = i
		}
	}

	if best < 0 {
		var zero A
		return zero, false
	}
	return root.edges[best].action, true
}

func (t *tree[A]) better(d Decision, sign float64, a, b *edge[A]) bool {
	va, vb := sign*t.child(a).average(), sign*t.child(b).average()
	if d == MostVisits {
		if a.visits != b.visits {
			return a.visits > b.visits
		}
		return va > vb
	}
	if va != vb {
		return va > vb
	}
	return a.visits > b.visits
}
