package main

import "testing"

func TestHashIncludesSideToMove(t *testing.T) {
	settings := DefaultGameSettings()
	state := DefaultGameState(settings)
	state.Status = StatusRunning
	state.Board.Set(0, 5, CellRed)
	state.recomputeHash()

	flipped := state.Clone()
	flipped.ToMove = otherPlayer(flipped.ToMove)
	flipped.recomputeHash()
	if state.Hash == flipped.Hash {
		t.Fatalf("expected hash to differ for different side to move")
	}
}

func TestIncrementalHashMatchesFullRecompute(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Status = StatusRunning

	columns := []int{3, 3, 2, 4, 0, 6, 1}
	for _, col := range columns {
		move, ok := rules.ResolveColumn(&state.Board, col)
		if !ok {
			t.Fatalf("column %d unexpectedly full", col)
		}
		if _, ok := applySearchMove(&state, rules, move, state.ToMove); !ok {
			t.Fatalf("move %v should apply", move)
		}
		expected := ComputeHash(state)
		if state.Hash != expected {
			t.Fatalf("incremental hash diverged after column %d: got %d want %d", col, state.Hash, expected)
		}
	}
}

func TestDifferentGeometriesUseDifferentTables(t *testing.T) {
	small := GetZobrist(4, 4)
	large := GetZobrist(7, 6)
	if small == large {
		t.Fatalf("distinct board geometries must not share a zobrist table")
	}
	if small != GetZobrist(4, 4) {
		t.Fatalf("same geometry should return the cached table")
	}
}
