package main

// findWinningMoves returns every legal move that wins immediately for player.
// Candidates are tried on the live board and reverted right away, which is
// cheaper than cloning the state per candidate.
func findWinningMoves(state *GameState, rules Rules, player PlayerColor) []Move {
	winning := []Move{}
	for _, move := range rules.LegalMoves(state) {
		state.Board.Set(move.X, move.Y, CellFromPlayer(player))
		if rules.IsWin(&state.Board, move) {
			winning = append(winning, move)
		}
		state.Board.Remove(move.X, move.Y)
	}
	return winning
}

// findForkThreatCell looks for the open double threat an opponent can build
// along the bottom two rows: four horizontally adjacent cells holding either
// [empty, opp, empty, opp] or [opp, empty, opp, empty]. Occupying the
// enclosed empty cell denies both completions at once. Returns the cell to
// take and whether a threat was found. Only currently reachable cells count.
func findForkThreatCell(state *GameState, rules Rules, opponent PlayerColor) (Move, bool) {
	if !rules.Gravity() {
		return Move{}, false
	}
	board := &state.Board
	oppCell := CellFromPlayer(opponent)
	for y := board.Rows() - 1; y >= board.Rows()-2 && y >= 0; y-- {
		for x := 0; x+3 < board.Cols(); x++ {
			c0 := board.At(x, y)
			c1 := board.At(x+1, y)
			c2 := board.At(x+2, y)
			c3 := board.At(x+3, y)
			var target int
			switch {
			case c0 == CellEmpty && c1 == oppCell && c2 == CellEmpty && c3 == oppCell:
				target = x + 2
			case c0 == oppCell && c1 == CellEmpty && c2 == oppCell && c3 == CellEmpty:
				target = x + 1
			default:
				continue
			}
			if board.DropRow(target) == y {
				return NewMove(target, y), true
			}
		}
	}
	return Move{}, false
}

// filterSafeMoves drops every candidate that hands the opponent an immediate
// win on the reply. The returned slice may be empty.
func filterSafeMoves(state *GameState, rules Rules, player PlayerColor, candidates []Move) []Move {
	opponent := otherPlayer(player)
	safe := []Move{}
	for _, move := range candidates {
		undo, ok := applySearchMove(state, rules, move, player)
		if !ok {
			continue
		}
		replies := []Move{}
		if state.Status == StatusRunning {
			replies = findWinningMoves(state, rules, opponent)
		}
		undo.revert(state)
		if len(replies) == 0 {
			safe = append(safe, move)
		}
	}
	return safe
}

// closestToCenter picks the candidate whose column is nearest the board
// center, breaking ties toward the lower column index.
func closestToCenter(moves []Move, cols int) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}
	center := cols / 2
	best := moves[0]
	bestDist := absInt(best.X - center)
	for _, move := range moves[1:] {
		dist := absInt(move.X - center)
		if dist < bestDist || (dist == bestDist && move.X < best.X) {
			best = move
			bestDist = dist
		}
	}
	return best, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
