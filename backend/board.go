package main

import "fmt"

type Cell int

const (
	CellEmpty Cell = iota
	CellRed
	CellYellow
)

type Board struct {
	cols  int
	rows  int
	cells []Cell
}

func NewBoard(cols, rows int) Board {
	b := Board{}
	b.Reset(cols, rows)
	return b
}

func (b *Board) Reset(cols, rows int) {
	b.cols = cols
	b.rows = rows
	b.cells = make([]Cell, cols*rows)
}

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[b.index(x, y)] = value
}

func (b *Board) Remove(x, y int) {
	b.cells[b.index(x, y)] = CellEmpty
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.cols && y < b.rows
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

// DropRow returns the row a token dropped in column x lands on (row 0 is the
// top of the board), or -1 when the column is full.
func (b Board) DropRow(x int) int {
	if x < 0 || x >= b.cols {
		return -1
	}
	for y := b.rows - 1; y >= 0; y-- {
		if b.At(x, y) == CellEmpty {
			return y
		}
	}
	return -1
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Cols() int {
	return b.cols
}

func (b Board) Rows() int {
	return b.rows
}

func (b Board) Clone() Board {
	clone := Board{cols: b.cols, rows: b.rows}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) Equal(other Board) bool {
	if b.cols != other.cols || b.rows != other.rows {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) index(x, y int) int {
	return y*b.cols + x
}

func (c Cell) String() string {
	switch c {
	case CellRed:
		return "Red"
	case CellYellow:
		return "Yellow"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerRed {
		return CellRed
	}
	return CellYellow
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellRed:
		return PlayerRed, nil
	case CellYellow:
		return PlayerYellow, nil
	default:
		return PlayerRed, fmt.Errorf("empty cell has no player")
	}
}
