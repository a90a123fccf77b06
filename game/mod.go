package game

// StateHash identifies a state. Two states with the same hash are treated as the
// same position when the searcher shares nodes between transpositions.
type StateHash uint64

// Actor identifies whose objective governs a state. The payoff convention is fixed
// per game: positive payoffs favor the maximizing actor.
type Actor int

const (
	Maximizer Actor = iota
	Minimizer
)

// Sign converts a raw payoff into the actor's own perspective.
func (a Actor) Sign() float64 {
	if a == Maximizer {
		return 1
	}
	return -1
}

// State should be immutable - Play always returns a new state
type State[A comparable] interface {
	// Actor returns whose turn it is, single-player games always return Maximizer
	Actor() Actor
	// LegalActions may be empty only when the state is terminal
	LegalActions() []A
	Play(action A) State[A]
	IsTerminal() bool
	// Payoff is defined only for terminal states
	Payoff() float64
	Hash() StateHash
}
