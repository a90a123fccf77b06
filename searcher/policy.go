package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant, UCB1 explores with sqrt(2*ln(T)/n)

type ucb struct {
	numerator float64
}

func newUCB(cSquared float64, T float64) *ucb {
	if T == 0 {
		panic("T cannot be 0")
	}
	return &ucb{numerator: cSquared * math.Log(T)}
}

func (u ucb) evaluate(mean float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = mean + sqrt(c^2*ln(T)/n)
	return mean + math.Sqrt(u.numerator/n)
}
