package main

import "sync"

// evalWindow is one run of winLength cells along a single axis.
type evalWindow struct {
	cells []int
}

type windowKey struct {
	cols   int
	rows   int
	winLen int
}

var (
	windowStoreMu sync.RWMutex
	windowStore   = map[windowKey][]evalWindow{}
)

// windowsFor returns every winLen-cell alignment of a cols x rows board,
// cached per geometry. Indices are flat (y*cols + x).
func windowsFor(cols, rows, winLen int) []evalWindow {
	key := windowKey{cols: cols, rows: rows, winLen: winLen}
	windowStoreMu.RLock()
	cached, ok := windowStore[key]
	windowStoreMu.RUnlock()
	if ok {
		return cached
	}
	built := buildWindows(cols, rows, winLen)
	windowStoreMu.Lock()
	windowStore[key] = built
	windowStoreMu.Unlock()
	return built
}

func buildWindows(cols, rows, winLen int) []evalWindow {
	dirs := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	windows := []evalWindow{}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			for _, dir := range dirs {
				endX := x + dir[0]*(winLen-1)
				endY := y + dir[1]*(winLen-1)
				if endX < 0 || endX >= cols || endY < 0 || endY >= rows {
					continue
				}
				cells := make([]int, winLen)
				for i := 0; i < winLen; i++ {
					cells[i] = (y+dir[1]*i)*cols + (x + dir[0]*i)
				}
				windows = append(windows, evalWindow{cells: cells})
			}
		}
	}
	return windows
}

// EvaluateBoard scores the board from perspective's point of view. Positive
// favors perspective. Mixed windows (both colors present) score zero since
// neither side can complete them.
func EvaluateBoard(board *Board, perspective PlayerColor, winLen int, weights HeuristicConfig) float64 {
	own := CellFromPlayer(perspective)
	opp := CellFromPlayer(otherPlayer(perspective))
	score := 0.0

	for _, window := range windowsFor(board.Cols(), board.Rows(), winLen) {
		ownCount, oppCount, emptyCount := 0, 0, 0
		for _, idx := range window.cells {
			switch board.cells[idx] {
			case own:
				ownCount++
			case opp:
				oppCount++
			default:
				emptyCount++
			}
		}
		if ownCount > 0 && oppCount > 0 {
			continue
		}
		switch {
		case ownCount == winLen:
			score += weights.WindowWin
		case ownCount == winLen-1 && emptyCount == 1:
			score += weights.ThreeOpen
		case ownCount == winLen-2 && emptyCount == 2:
			score += weights.TwoOpen
		case oppCount == winLen:
			score -= weights.WindowWin
		case oppCount == winLen-1 && emptyCount == 1:
			score -= weights.OpponentThree
		case oppCount == winLen-2 && emptyCount == 2:
			score -= weights.OpponentTwo
		}
	}

	centerX := board.Cols() / 2
	for y := 0; y < board.Rows(); y++ {
		switch board.At(centerX, y) {
		case own:
			score += weights.CenterColumn
		case opp:
			score -= weights.CenterColumn
		}
	}
	return score
}
