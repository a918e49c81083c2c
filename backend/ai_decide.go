package main

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrNoLegalMoves   = errors.New("no legal moves available")
	ErrIllegalMove    = errors.New("illegal move requested")
	ErrSearchTimedOut = errors.New("search timed out before completing")
	ErrInvalidConfig  = errors.New("invalid decision configuration")
)

// DecisionConfig is the per-call knob set for SelectMove. Zero values fall
// back to the global config.
type DecisionConfig struct {
	MaxDepth     int
	TimeBudgetMs int
	Strategy     string
	TT           *TranspositionTable
	ShouldStop   func() bool
	Stats        *SearchStats
}

func (dc DecisionConfig) withDefaults(cfg Config) DecisionConfig {
	if dc.MaxDepth == 0 {
		dc.MaxDepth = cfg.AiDepth
	}
	if dc.TimeBudgetMs == 0 {
		dc.TimeBudgetMs = cfg.AiTimeBudgetMs
	}
	if dc.Strategy == "" {
		dc.Strategy = cfg.AiStrategy
	}
	return dc
}

func validateDecisionConfig(dc DecisionConfig, rules Rules) error {
	settings := rules.Settings()
	if settings.WinLength > settings.Cols && settings.WinLength > settings.Rows {
		return fmt.Errorf("%w: win length %d exceeds both board dimensions %dx%d",
			ErrInvalidConfig, settings.WinLength, settings.Cols, settings.Rows)
	}
	if settings.WinLength < 2 {
		return fmt.Errorf("%w: win length %d is below 2", ErrInvalidConfig, settings.WinLength)
	}
	if dc.MaxDepth < 1 {
		return fmt.Errorf("%w: search depth %d is below 1", ErrInvalidConfig, dc.MaxDepth)
	}
	if _, err := NewStrategy(dc.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SelectMove picks the move the engine plays for state.ToMove. The pipeline
// runs fixed stages in order: take an immediate win, block the opponent's
// immediate win or open double threat, drop candidates that lose on the
// reply, then hand the survivors to the configured strategy.
func SelectMove(state GameState, rules Rules, dc DecisionConfig) (Move, error) {
	cfg := GetConfig()
	dc = dc.withDefaults(cfg)
	if err := validateDecisionConfig(dc, rules); err != nil {
		return Move{}, err
	}

	player := state.ToMove
	working := state.Clone()
	legal := rules.LegalMoves(&working)
	if len(legal) == 0 {
		return Move{}, ErrNoLegalMoves
	}

	// Opening book: first stone goes to the center column.
	if working.MoveCount == 0 && rules.Gravity() {
		center := working.Board.Cols() / 2
		if move, ok := rules.ResolveColumn(&working.Board, center); ok {
			return move, nil
		}
	}

	if wins := findWinningMoves(&working, rules, player); len(wins) > 0 {
		return wins[rand.Intn(len(wins))], nil
	}

	opponent := otherPlayer(player)
	if blocks := findWinningMoves(&working, rules, opponent); len(blocks) > 0 {
		return blocks[rand.Intn(len(blocks))], nil
	}

	if cfg.AiEnableForkCheck {
		if forkCell, ok := findForkThreatCell(&working, rules, opponent); ok {
			return forkCell, nil
		}
	}

	safe := filterSafeMoves(&working, rules, player, legal)
	if len(safe) == 0 {
		// Every move loses; play the most central one and make the
		// opponent prove it.
		move, _ := closestToCenter(legal, working.Board.Cols())
		return move, nil
	}

	strategy, err := NewStrategy(dc.Strategy)
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	settings := AISearchSettings{
		Depth:        dc.MaxDepth,
		TimeBudgetMs: dc.TimeBudgetMs,
		Player:       player,
		Config:       cfg,
		TT:           dc.TT,
		ShouldStop:   dc.ShouldStop,
		Stats:        dc.Stats,
	}
	selected, err := strategy.SelectFrom(working, rules, safe, settings)
	if err != nil {
		return Move{}, err
	}
	if ok, reason := rules.IsLegal(&working, selected, player); !ok {
		return Move{}, fmt.Errorf("%w: strategy %s returned %v: %s", ErrIllegalMove, strategy.Name(), selected, reason)
	}
	return selected, nil
}
