package main

import "testing"

func evalWeights() HeuristicConfig {
	return DefaultConfig().Heuristics
}

func TestEvaluateEmptyBoardIsNeutral(t *testing.T) {
	board := NewBoard(7, 6)
	if got := EvaluateBoard(&board, PlayerRed, 4, evalWeights()); got != 0 {
		t.Fatalf("empty board should evaluate to 0, got %f", got)
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	board := NewBoard(7, 6)
	board.Set(1, 5, CellRed)
	board.Set(2, 5, CellRed)
	board.Set(5, 5, CellYellow)
	forRed := EvaluateBoard(&board, PlayerRed, 4, evalWeights())
	forYellow := EvaluateBoard(&board, PlayerYellow, 4, evalWeights())
	if forRed != -forYellow {
		t.Fatalf("perspectives must negate: red %f yellow %f", forRed, forYellow)
	}
}

func TestEvaluatePrefersMoreOwnTokensInWindow(t *testing.T) {
	weights := evalWeights()

	two := NewBoard(7, 6)
	two.Set(0, 5, CellRed)
	two.Set(1, 5, CellRed)

	three := NewBoard(7, 6)
	three.Set(0, 5, CellRed)
	three.Set(1, 5, CellRed)
	three.Set(2, 5, CellRed)

	if EvaluateBoard(&three, PlayerRed, 4, weights) <= EvaluateBoard(&two, PlayerRed, 4, weights) {
		t.Fatalf("three aligned tokens must outscore two")
	}
}

func TestEvaluateMixedWindowScoresNothing(t *testing.T) {
	weights := evalWeights()
	board := NewBoard(4, 1)
	board.Set(0, 0, CellRed)
	board.Set(1, 0, CellRed)
	board.Set(2, 0, CellRed)
	board.Set(3, 0, CellYellow)
	// The only horizontal window is blocked for both sides; only the
	// center-column bonus remains.
	got := EvaluateBoard(&board, PlayerRed, 4, weights)
	if got != weights.CenterColumn {
		t.Fatalf("blocked window should contribute nothing, got %f", got)
	}
}

func TestEvaluateDefensiveBias(t *testing.T) {
	weights := evalWeights()
	if weights.OpponentThree <= weights.ThreeOpen {
		t.Fatalf("opponent threats must weigh heavier than own chances")
	}

	ownThree := NewBoard(7, 6)
	ownThree.Set(0, 5, CellRed)
	ownThree.Set(1, 5, CellRed)
	ownThree.Set(2, 5, CellRed)

	oppThree := NewBoard(7, 6)
	oppThree.Set(0, 5, CellYellow)
	oppThree.Set(1, 5, CellYellow)
	oppThree.Set(2, 5, CellYellow)

	gain := EvaluateBoard(&ownThree, PlayerRed, 4, weights)
	loss := EvaluateBoard(&oppThree, PlayerRed, 4, weights)
	if gain+loss >= 0 {
		t.Fatalf("identical opponent threat should outweigh own chance: gain %f loss %f", gain, loss)
	}
}

func TestEvaluateCenterColumnBonus(t *testing.T) {
	weights := evalWeights()
	center := NewBoard(7, 6)
	center.Set(3, 5, CellRed)
	edge := NewBoard(7, 6)
	edge.Set(0, 5, CellRed)
	if EvaluateBoard(&center, PlayerRed, 4, weights) <= EvaluateBoard(&edge, PlayerRed, 4, weights) {
		t.Fatalf("a center token must outscore an edge token")
	}
}

func TestBuildWindowsCount(t *testing.T) {
	// 7x6 with length 4: 24 horizontal, 21 vertical, 12 per diagonal.
	windows := windowsFor(7, 6, 4)
	if len(windows) != 69 {
		t.Fatalf("expected 69 windows on a 7x6 board, got %d", len(windows))
	}
	if cached := windowsFor(7, 6, 4); len(cached) != len(windows) {
		t.Fatalf("cached geometry should return the same windows")
	}
}
