package main

import (
	"math/rand"
	"testing"
	"time"
)

func smallSettings() GameSettings {
	settings := DefaultGameSettings()
	settings.Cols = 4
	settings.Rows = 4
	settings.WinLength = 3
	return settings
}

// plainMinimax is a direct reference search with no pruning, no cache and
// no move ordering, used to pin down the alpha-beta result.
func plainMinimax(state *GameState, rules Rules, cfg Config, rootPlayer PlayerColor, depth, depthFromRoot int) float64 {
	switch state.Status {
	case winStatusFor(rootPlayer):
		return winScore - float64(depthFromRoot)
	case winStatusFor(otherPlayer(rootPlayer)):
		return -winScore + float64(depthFromRoot)
	case StatusDraw:
		return 0
	}
	if depth <= 0 {
		return EvaluateBoard(&state.Board, rootPlayer, rules.WinLength(), cfg.Heuristics)
	}
	moves := rules.LegalMoves(state)
	if len(moves) == 0 {
		return EvaluateBoard(&state.Board, rootPlayer, rules.WinLength(), cfg.Heuristics)
	}
	maximizing := state.ToMove == rootPlayer
	best := winScore * 2
	if maximizing {
		best = -winScore * 2
	}
	for _, move := range moves {
		undo, ok := applySearchMove(state, rules, move, state.ToMove)
		if !ok {
			continue
		}
		value := plainMinimax(state, rules, cfg, rootPlayer, depth-1, depthFromRoot+1)
		undo.revert(state)
		if maximizing && value > best {
			best = value
		}
		if !maximizing && value < best {
			best = value
		}
	}
	return best
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	settings := smallSettings()
	rules := NewRules(settings)
	cfg := DefaultConfig()
	cfg.AiEnableTT = false

	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		state := runningState(settings)
		// Random but game-legal prefix.
		plies := rng.Intn(6)
		for i := 0; i < plies; i++ {
			moves := rules.LegalMoves(&state)
			if len(moves) == 0 || state.Status != StatusRunning {
				break
			}
			move := moves[rng.Intn(len(moves))]
			if _, ok := applySearchMove(&state, rules, move, state.ToMove); !ok {
				t.Fatalf("trial %d: legal move failed to apply", trial)
			}
		}
		if state.Status != StatusRunning {
			continue
		}

		for depth := 1; depth <= 6; depth++ {
			ctx := &searchContext{
				rules:    rules,
				settings: &AISearchSettings{Depth: depth, Player: state.ToMove, Config: cfg},
			}
			pruned := minimax(&state, ctx, depth, state.ToMove, 0, -winScore*2, winScore*2)
			plain := plainMinimax(&state, rules, cfg, state.ToMove, depth, 0)
			if pruned != plain {
				t.Fatalf("trial %d depth %d: alpha-beta %f diverged from plain minimax %f",
					trial, depth, pruned, plain)
			}
		}
	}
}

func TestSharedTableSeparatesSeatPerspectives(t *testing.T) {
	settings := smallSettings()
	rules := NewRules(settings)
	cfg := DefaultConfig()
	cfg.AiQuickWinExit = false
	tt := NewTranspositionTable(1<<12, 2)

	if ttKeyFor(5, PlayerRed) == ttKeyFor(5, PlayerYellow) {
		t.Fatalf("seat keys must differ for the same position")
	}

	// Red fills the table from the opening, then yellow searches the reply
	// position through the same table. Scores are signed per searching
	// player, so red's entries must never satisfy yellow's probes.
	state := runningState(settings)
	scores, _ := ScoreMoves(state, rules, AISearchSettings{
		Depth:  6,
		Player: PlayerRed,
		Config: cfg,
		TT:     tt,
	})
	best, ok := BestScoredMove(scores, state.Board.Cols())
	if !ok {
		t.Fatalf("expected root scores for red")
	}
	if _, applied := applySearchMove(&state, rules, best.Move, PlayerRed); !applied {
		t.Fatalf("red's move failed to apply")
	}

	shared, _ := ScoreMoves(state, rules, AISearchSettings{
		Depth:  5,
		Player: PlayerYellow,
		Config: cfg,
		TT:     tt,
	})

	cold := cfg
	cold.AiEnableTT = false
	plain, _ := ScoreMoves(state, rules, AISearchSettings{
		Depth:  5,
		Player: PlayerYellow,
		Config: cold,
	})

	if len(shared) != len(plain) {
		t.Fatalf("score count mismatch: %d with the table, %d without", len(shared), len(plain))
	}
	for i := range shared {
		if !shared[i].Move.Equals(plain[i].Move) {
			t.Fatalf("move order mismatch at %d: %v vs %v", i, shared[i].Move, plain[i].Move)
		}
		if shared[i].Score != plain[i].Score {
			t.Fatalf("move %v: score %f through the shared table, %f without it",
				shared[i].Move, shared[i].Score, plain[i].Score)
		}
	}
}

func TestApplyUndoRestoresStateExactly(t *testing.T) {
	settings := winSettings()
	rules := NewRules(settings)
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		state := runningState(settings)
		plies := rng.Intn(12)
		for i := 0; i < plies && state.Status == StatusRunning; i++ {
			moves := rules.LegalMoves(&state)
			if len(moves) == 0 {
				break
			}
			move := moves[rng.Intn(len(moves))]
			applySearchMove(&state, rules, move, state.ToMove)
		}

		snapshot := state.Clone()
		moves := rules.LegalMoves(&state)
		if len(moves) == 0 || state.Status != StatusRunning {
			continue
		}
		move := moves[rng.Intn(len(moves))]
		undo, ok := applySearchMove(&state, rules, move, state.ToMove)
		if !ok {
			t.Fatalf("trial %d: apply failed for %v", trial, move)
		}
		undo.revert(&state)

		if !state.Board.Equal(snapshot.Board) {
			t.Fatalf("trial %d: board not restored", trial)
		}
		if state.Hash != snapshot.Hash {
			t.Fatalf("trial %d: hash not restored: got %d want %d", trial, state.Hash, snapshot.Hash)
		}
		if state.ToMove != snapshot.ToMove || state.Status != snapshot.Status ||
			state.MoveCount != snapshot.MoveCount ||
			state.HasLastMove != snapshot.HasLastMove || !state.LastMove.Equals(snapshot.LastMove) {
			t.Fatalf("trial %d: metadata not restored", trial)
		}
	}
}

func TestSearchFindsForcedWin(t *testing.T) {
	settings := winSettings()
	rules := NewRules(settings)
	cfg := DefaultConfig()
	state := runningState(settings)
	for x := 0; x < 3; x++ {
		state.Board.Set(x, 5, CellRed)
	}
	state.ToMove = PlayerRed
	state.recomputeHash()

	scores, _ := ScoreMoves(state, rules, AISearchSettings{
		Depth:  4,
		Player: PlayerRed,
		Config: cfg,
	})
	best, ok := BestScoredMove(scores, state.Board.Cols())
	if !ok {
		t.Fatalf("expected scores for a live position")
	}
	if best.Move.X != 3 || best.Move.Y != 5 {
		t.Fatalf("search must take the immediate win, picked %v", best.Move)
	}
	if best.Score < winScore-10 {
		t.Fatalf("winning move should score near the win sentinel, got %f", best.Score)
	}
}

func TestSearchPrefersQuickerWin(t *testing.T) {
	settings := winSettings()
	rules := NewRules(settings)
	cfg := DefaultConfig()
	state := runningState(settings)
	// Red can win immediately at (3,5) or dawdle and win later.
	for x := 0; x < 3; x++ {
		state.Board.Set(x, 5, CellRed)
	}
	state.Board.Set(0, 4, CellYellow)
	state.Board.Set(1, 4, CellYellow)
	state.ToMove = PlayerRed
	state.recomputeHash()

	scores, _ := ScoreMoves(state, rules, AISearchSettings{
		Depth:  5,
		Player: PlayerRed,
		Config: cfg,
	})
	var winNow, other float64
	for _, score := range scores {
		if score.Move.X == 3 && score.Move.Y == 5 {
			winNow = score.Score
		} else if score.Score > other {
			other = score.Score
		}
	}
	if winNow <= other {
		t.Fatalf("immediate win (%f) must outscore delayed lines (%f)", winNow, other)
	}
}

func TestScoreMovesRespectsCancellation(t *testing.T) {
	settings := winSettings()
	rules := NewRules(settings)
	cfg := DefaultConfig()
	cfg.AiMinDepth = 1
	state := runningState(settings)

	calls := 0
	scores, completedDepth := ScoreMoves(state, rules, AISearchSettings{
		Depth:  8,
		Player: state.ToMove,
		Config: cfg,
		ShouldStop: func() bool {
			calls++
			return calls > 2000
		},
	})
	if completedDepth < 1 {
		t.Fatalf("the first deepening pass must always complete")
	}
	if len(scores) == 0 {
		t.Fatalf("cancellation must still leave the last complete result")
	}
}

func TestScoreMovesTimeBudgetKeepsLastComplete(t *testing.T) {
	settings := winSettings()
	rules := NewRules(settings)
	cfg := DefaultConfig()
	cfg.AiMinDepth = 1
	state := runningState(settings)

	stats := &SearchStats{Start: time.Now()}
	scores, completedDepth := ScoreMoves(state, rules, AISearchSettings{
		Depth:        10,
		TimeBudgetMs: 30,
		Player:       state.ToMove,
		Config:       cfg,
		Stats:        stats,
	})
	if len(scores) == 0 {
		t.Fatalf("budgeted search must return a result")
	}
	if completedDepth < cfg.AiMinDepth {
		t.Fatalf("completed depth %d below the minimum", completedDepth)
	}
	legal := rules.LegalMoves(&state)
	if len(scores) != len(legal) {
		t.Fatalf("retained result must cover every root move: %d vs %d", len(scores), len(legal))
	}
}

func TestOrderedColumnsCenterOut(t *testing.T) {
	got := orderedColumns(7)
	want := []int{3, 2, 4, 1, 5, 0, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestOrderedMovesPutsPVFirst(t *testing.T) {
	settings := winSettings()
	rules := NewRules(settings)
	state := runningState(settings)
	pv := Move{X: 6, Y: 5}
	moves := orderedMoves(&state, rules, pv, true)
	if len(moves) != 7 {
		t.Fatalf("expected 7 root moves, got %d", len(moves))
	}
	if !moves[0].Equals(pv) {
		t.Fatalf("principal variation move must come first, got %v", moves[0])
	}
	if moves[1].X != 3 {
		t.Fatalf("center column should follow the PV move, got %v", moves[1])
	}
}
