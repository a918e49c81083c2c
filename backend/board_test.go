package main

import "testing"

func TestDropRowFindsLowestEmpty(t *testing.T) {
	board := NewBoard(7, 6)
	if got := board.DropRow(3); got != 5 {
		t.Fatalf("empty column should land on bottom row, got %d", got)
	}
	board.Set(3, 5, CellRed)
	board.Set(3, 4, CellYellow)
	if got := board.DropRow(3); got != 3 {
		t.Fatalf("expected landing row 3, got %d", got)
	}
}

func TestDropRowFullColumn(t *testing.T) {
	board := NewBoard(7, 6)
	for y := 0; y < 6; y++ {
		board.Set(2, y, CellRed)
	}
	if got := board.DropRow(2); got != -1 {
		t.Fatalf("full column should report -1, got %d", got)
	}
	if got := board.DropRow(-1); got != -1 {
		t.Fatalf("out of range column should report -1, got %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	board := NewBoard(7, 6)
	board.Set(0, 5, CellRed)
	clone := board.Clone()
	clone.Set(1, 5, CellYellow)
	if board.At(1, 5) != CellEmpty {
		t.Fatalf("mutating a clone must not touch the original")
	}
	if !board.Equal(board.Clone()) {
		t.Fatalf("clone should compare equal to its source")
	}
}

func TestCountEmpty(t *testing.T) {
	board := NewBoard(4, 4)
	if got := board.CountEmpty(); got != 16 {
		t.Fatalf("fresh 4x4 board should have 16 empties, got %d", got)
	}
	board.Set(0, 3, CellRed)
	board.Set(1, 3, CellYellow)
	if got := board.CountEmpty(); got != 14 {
		t.Fatalf("expected 14 empties, got %d", got)
	}
}
