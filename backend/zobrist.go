package main

import "sync"

type ZobristTable struct {
	cols  int
	rows  int
	cells []uint64
	side  uint64
}

type zobristKey struct {
	cols int
	rows int
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[zobristKey]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[zobristKey]*ZobristTable)}

func GetZobrist(cols, rows int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	key := zobristKey{cols: cols, rows: rows}
	if table, ok := zobristTables.tables[key]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(cols)<<16 ^ uint64(rows)}
	table := &ZobristTable{cols: cols, rows: rows, cells: make([]uint64, cols*rows*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	table.side = rng.next()
	zobristTables.tables[key] = table
	return table
}

func (z *ZobristTable) token(x, y int, player PlayerColor) uint64 {
	idx := (y*z.cols + x) * 2
	if player == PlayerYellow {
		idx++
	}
	return z.cells[idx]
}

func ComputeHash(state GameState) uint64 {
	z := GetZobrist(state.Board.Cols(), state.Board.Rows())
	var hash uint64
	for y := 0; y < state.Board.Rows(); y++ {
		for x := 0; x < state.Board.Cols(); x++ {
			cell := state.Board.At(x, y)
			if cell == CellEmpty {
				continue
			}
			player := PlayerRed
			if cell == CellYellow {
				player = PlayerYellow
			}
			hash ^= z.token(x, y, player)
		}
	}
	if state.ToMove == PlayerYellow {
		hash ^= z.side
	}
	return hash
}

// UpdateHashAfterMove folds a single placement into the incremental hash.
// prevToMove is the side that was to move before the placement.
func UpdateHashAfterMove(state *GameState, move Move, player PlayerColor, prevToMove PlayerColor) {
	z := GetZobrist(state.Board.Cols(), state.Board.Rows())
	hash := state.Hash
	if prevToMove == PlayerYellow {
		hash ^= z.side
	}
	hash ^= z.token(move.X, move.Y, player)
	if state.ToMove == PlayerYellow {
		hash ^= z.side
	}
	state.Hash = hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
