package main

import (
	"fmt"
	"math/rand"
)

const (
	StrategyRandom  = "random"
	StrategyGreedy  = "greedy"
	StrategyMinimax = "minimax"
)

// Strategy picks one move out of the pre-filtered safe candidates. The
// decision pipeline has already handled wins, blocks and losing moves
// before a strategy ever runs.
type Strategy interface {
	Name() string
	SelectFrom(state GameState, rules Rules, safe []Move, settings AISearchSettings) (Move, error)
}

func NewStrategy(name string) (Strategy, error) {
	switch name {
	case StrategyRandom:
		return &RandomStrategy{}, nil
	case StrategyGreedy:
		return &GreedyStrategy{}, nil
	case StrategyMinimax:
		return &MinimaxStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// RandomStrategy picks uniformly among the safe candidates.
type RandomStrategy struct{}

func (s *RandomStrategy) Name() string { return StrategyRandom }

func (s *RandomStrategy) SelectFrom(state GameState, rules Rules, safe []Move, settings AISearchSettings) (Move, error) {
	if len(safe) == 0 {
		return Move{}, ErrNoLegalMoves
	}
	return safe[rand.Intn(len(safe))], nil
}

// GreedyStrategy evaluates the position one ply ahead and takes the move
// with the best static score.
type GreedyStrategy struct{}

func (s *GreedyStrategy) Name() string { return StrategyGreedy }

func (s *GreedyStrategy) SelectFrom(state GameState, rules Rules, safe []Move, settings AISearchSettings) (Move, error) {
	if len(safe) == 0 {
		return Move{}, ErrNoLegalMoves
	}
	best := safe[0]
	bestScore := illegalScore
	for _, move := range safe {
		undo, ok := applySearchMove(&state, rules, move, settings.Player)
		if !ok {
			continue
		}
		score := EvaluateBoard(&state.Board, settings.Player, rules.WinLength(), settings.Config.Heuristics)
		undo.revert(&state)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best, nil
}

// MinimaxStrategy runs the full iterative deepening search and picks the
// best-scoring safe move.
type MinimaxStrategy struct{}

func (s *MinimaxStrategy) Name() string { return StrategyMinimax }

func (s *MinimaxStrategy) SelectFrom(state GameState, rules Rules, safe []Move, settings AISearchSettings) (Move, error) {
	if len(safe) == 0 {
		return Move{}, ErrNoLegalMoves
	}
	scores, _ := ScoreMoves(state, rules, settings)
	if len(scores) == 0 {
		return Move{}, ErrSearchTimedOut
	}
	safeSet := map[Move]bool{}
	for _, move := range safe {
		safeSet[NewMove(move.X, move.Y)] = true
	}
	filtered := []MoveScore{}
	for _, score := range scores {
		if safeSet[NewMove(score.Move.X, score.Move.Y)] {
			filtered = append(filtered, score)
		}
	}
	if len(filtered) == 0 {
		// Every searched move lost on reply filtering; fall back to the
		// safest candidate by distance to center.
		move, _ := closestToCenter(safe, state.Board.Cols())
		return move, nil
	}
	best, _ := BestScoredMove(filtered, state.Board.Cols())
	return best.Move, nil
}
