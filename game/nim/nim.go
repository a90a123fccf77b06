// Package nim implements normal-play Nim: players alternately take objects from a
// single heap and whoever takes the last object wins.
package nim

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"

	"treesearch/game"
)

// Take removes Count objects from heap Heap.
type Take struct {
	Heap  int
	Count int
}

func (t Take) String() string {
	return fmt.Sprintf("take %d from heap %d", t.Count, t.Heap)
}

// State is an immutable Nim position.
type State struct {
	heaps   []int
	maxTake int // 0 means a player may empty a heap in one move
	actor   game.Actor
}

// New creates a position with the maximizer to move. With maxTake > 0 each move
// removes at most maxTake objects.
func New(heaps []int, maxTake int) *State {
	copied := make([]int, len(heaps))
	for i, h := range heaps {
		copied[i] = max(h, 0)
	}
	return &State{heaps: copied, maxTake: max(maxTake, 0), actor: game.Maximizer}
}

func (s *State) Heaps() []int {
	copied := make([]int, len(s.heaps))
	copy(copied, s.heaps)
	return copied
}

func (s *State) Actor() game.Actor {
	return s.actor
}

// LegalActions lists takes heap by heap, smallest count first.
func (s *State) LegalActions() []Take {
	var actions []Take
	for i, h := range s.heaps {
		limit := h
		if s.maxTake > 0 {
			limit = min(h, s.maxTake)
		}
		for count := 1; count <= limit; count++ {
			actions = append(actions, Take{Heap: i, Count: count})
		}
	}
	return actions
}

func (s *State) Play(action Take) game.State[Take] {
	if action.Heap < 0 || action.Heap >= len(s.heaps) {
		panic(fmt.Sprintf("nim: heap %d out of range", action.Heap))
	}
	if action.Count < 1 || action.Count > s.heaps[action.Heap] || (s.maxTake > 0 && action.Count > s.maxTake) {
		panic(fmt.Sprintf("nim: illegal %v", action))
	}

	next := &State{
		heaps:   s.Heaps(),
		maxTake: s.maxTake,
		actor:   opponent(s.actor),
	}
	next.heaps[action.Heap] -= action.Count
	return next
}

func (s *State) IsTerminal() bool {
	for _, h := range s.heaps {
		if h > 0 {
			return false
		}
	}
	return true
}

// Payoff is +1 when the maximizer took the last object and -1 otherwise.
func (s *State) Payoff() float64 {
	// The actor to move on an empty board lost: the opponent made the last take
	if s.actor == game.Maximizer {
		return -1
	}
	return 1
}

func (s *State) Hash() game.StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.actor))
	binary.Write(hasher, binary.LittleEndian, int64(s.maxTake))
	for _, h := range s.heaps {
		binary.Write(hasher, binary.LittleEndian, int64(h))
	}

	return game.StateHash(hasher.Sum64())
}

func (s *State) String() string {
	parts := make([]string, len(s.heaps))
	for i, h := range s.heaps {
		parts[i] = fmt.Sprintf("%d", h)
	}
	return fmt.Sprintf("[%s] actor=%d", strings.Join(parts, " "), s.actor)
}

// Winning reports whether the actor to move can force a win. Without a take limit
// this is the classic nim-sum rule, with a limit each heap counts modulo maxTake+1.
func (s *State) Winning() bool {
	sum := 0
	for _, h := range s.heaps {
		if s.maxTake > 0 {
			sum ^= h % (s.maxTake + 1)
		} else {
			sum ^= h
		}
	}
	return sum != 0
}

func opponent(actor game.Actor) game.Actor {
	if actor == game.Maximizer {
		return game.Minimizer
	}
	return game.Maximizer
}
