package searcher

import "errors"

var (
	// ErrTerminalState is returned when a search starts from a finished game
	ErrTerminalState = errors.New("cannot search from a terminal state")
	// ErrInvalidBudget is returned when neither a positive duration nor a positive
	// episode count is configured
	ErrInvalidBudget = errors.New("search budget must be a positive duration or episode count")
	// ErrContractViolation is returned when a game.State breaks its contract, e.g. a
	// non-terminal state without legal actions or a non-finite payoff
	ErrContractViolation = errors.New("state contract violation")
)
