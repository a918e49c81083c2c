package main

import "fmt"

type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	return Rules{settings: settings}
}

func (r Rules) IsLegal(state *GameState, move Move, player PlayerColor) (bool, string) {
	if !move.IsValid(r.settings.Cols, r.settings.Rows) {
		return false, "out of bounds"
	}
	if player != state.ToMove {
		return false, "not this player's turn"
	}
	if !state.Board.IsEmpty(move.X, move.Y) {
		return false, "occupied"
	}
	if r.settings.Gravity && state.Board.DropRow(move.X) != move.Y {
		return false, "not the landing row"
	}
	return true, ""
}

func (r Rules) IsLegalDefault(state *GameState, move Move) (bool, string) {
	return r.IsLegal(state, move, state.ToMove)
}

// ResolveColumn turns a bare column request into a full move. In gravity mode
// the row is the landing row; in free placement mode callers must supply the
// row themselves and this reports the column's top empty cell.
func (r Rules) ResolveColumn(board *Board, col int) (Move, bool) {
	row := board.DropRow(col)
	if row < 0 {
		return Move{}, false
	}
	return Move{X: col, Y: row}, true
}

// LegalMoves enumerates every move the side to move can play. Gravity mode
// yields at most one move per column; free placement mode yields one per
// empty cell. A full board yields an empty slice, never an error.
func (r Rules) LegalMoves(state *GameState) []Move {
	if r.settings.Gravity {
		moves := make([]Move, 0, r.settings.Cols)
		for x := 0; x < r.settings.Cols; x++ {
			if row := state.Board.DropRow(x); row >= 0 {
				moves = append(moves, Move{X: x, Y: row})
			}
		}
		return moves
	}
	moves := make([]Move, 0, state.Board.CountEmpty())
	for y := 0; y < r.settings.Rows; y++ {
		for x := 0; x < r.settings.Cols; x++ {
			if state.Board.IsEmpty(x, y) {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

// IsWin reports whether the token at lastMove completes a run of at least
// WinLength along any of the four axes. It is a post-placement check: the
// cell is expected to hold the mover's token.
func (r Rules) IsWin(board *Board, lastMove Move) bool {
	if !lastMove.IsValid(r.settings.Cols, r.settings.Rows) {
		return false
	}
	if board.At(lastMove.X, lastMove.Y) == CellEmpty {
		return false
	}
	directions := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for i := 0; i < 4; i++ {
		dx := directions[i][0]
		dy := directions[i][1]
		count := 1
		count += r.countDirection(board, lastMove, dx, dy)
		count += r.countDirection(board, lastMove, -dx, -dy)
		if count >= r.settings.WinLength {
			return true
		}
	}
	return false
}

func (r Rules) IsDraw(board *Board) bool {
	return board.CountEmpty() == 0
}

func (r Rules) FindWinningLine(board *Board, lastMove Move) []Move {
	if !lastMove.IsValid(r.settings.Cols, r.settings.Rows) {
		return nil
	}
	if board.At(lastMove.X, lastMove.Y) == CellEmpty {
		return nil
	}
	directions := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for i := 0; i < 4; i++ {
		dx := directions[i][0]
		dy := directions[i][1]
		line := r.collectLine(board, lastMove, dx, dy)
		if len(line) >= r.settings.WinLength {
			return line
		}
	}
	return nil
}

func (r Rules) Settings() GameSettings {
	return r.settings
}

func (r Rules) WinLength() int {
	return r.settings.WinLength
}

func (r Rules) Gravity() bool {
	return r.settings.Gravity
}

func (r Rules) countDirection(board *Board, start Move, dx, dy int) int {
	target := board.At(start.X, start.Y)
	x := start.X + dx
	y := start.Y + dy
	count := 0
	for board.InBounds(x, y) && board.At(x, y) == target {
		count++
		x += dx
		y += dy
	}
	return count
}

func (r Rules) collectLine(board *Board, start Move, dx, dy int) []Move {
	line := []Move{}
	target := board.At(start.X, start.Y)
	x := start.X
	y := start.Y
	for board.InBounds(x-dx, y-dy) && board.At(x-dx, y-dy) == target {
		x -= dx
		y -= dy
	}
	for board.InBounds(x, y) && board.At(x, y) == target {
		line = append(line, Move{X: x, Y: y})
		x += dx
		y += dy
	}
	return line
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{%dx%d, win=%d, gravity=%t}", r.settings.Cols, r.settings.Rows, r.settings.WinLength, r.settings.Gravity)
}
