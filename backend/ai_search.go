package main

import (
	"time"
)

const (
	winScore     = 1000000.0
	illegalScore = -1e9
)

// AISearchSettings carries everything one search run needs. ShouldStop is
// polled at every node so a caller can cancel mid-search.
type AISearchSettings struct {
	Depth        int
	TimeBudgetMs int
	Player       PlayerColor
	Config       Config
	TT           *TranspositionTable
	ShouldStop   func() bool
	Stats        *SearchStats
}

type SearchStats struct {
	Nodes           int64
	TTProbes        int64
	TTHits          int64
	TTStores        int64
	Cutoffs         int64
	Start           time.Time
	DepthDurations  []time.Duration
	CompletedDepths int
}

type searchContext struct {
	rules       Rules
	settings    *AISearchSettings
	start       time.Time
	deadline    time.Time
	hasDeadline bool
}

func timedOut(ctx *searchContext) bool {
	if ctx.settings.ShouldStop != nil && ctx.settings.ShouldStop() {
		return true
	}
	return ctx.hasDeadline && time.Now().After(ctx.deadline)
}

// searchUndo records everything a search move mutates so the exact prior
// state can be restored even when the callee returns early.
type searchUndo struct {
	move        Move
	prevStatus  GameStatus
	prevToMove  PlayerColor
	prevLast    Move
	prevHasLast bool
	prevHash    uint64
	prevLine    []Move
}

func (u *searchUndo) revert(state *GameState) {
	state.Board.Remove(u.move.X, u.move.Y)
	state.Status = u.prevStatus
	state.ToMove = u.prevToMove
	state.LastMove = u.prevLast
	state.HasLastMove = u.prevHasLast
	state.MoveCount--
	state.Hash = u.prevHash
	state.WinningLine = u.prevLine
}

// applySearchMove plays move for player directly on state, updating status,
// hash and turn. The returned undo restores the state bit for bit.
func applySearchMove(state *GameState, rules Rules, move Move, player PlayerColor) (searchUndo, bool) {
	if !state.Board.InBounds(move.X, move.Y) || !state.Board.IsEmpty(move.X, move.Y) {
		return searchUndo{}, false
	}
	undo := searchUndo{
		move:        move,
		prevStatus:  state.Status,
		prevToMove:  state.ToMove,
		prevLast:    state.LastMove,
		prevHasLast: state.HasLastMove,
		prevHash:    state.Hash,
		prevLine:    state.WinningLine,
	}
	state.Board.Set(move.X, move.Y, CellFromPlayer(player))
	state.LastMove = move
	state.HasLastMove = true
	state.MoveCount++
	nextToMove := otherPlayer(player)
	state.ToMove = nextToMove
	UpdateHashAfterMove(state, move, player, undo.prevToMove)
	if rules.IsWin(&state.Board, move) {
		state.Status = winStatusFor(player)
		state.WinningLine = rules.FindWinningLine(&state.Board, move)
	} else if rules.IsDraw(&state.Board) {
		state.Status = StatusDraw
	} else {
		state.Status = StatusRunning
	}
	return undo, true
}

// searchChild recurses one ply below the current node. The deferred revert
// keeps apply and undo paired no matter how the subtree exits.
func searchChild(state *GameState, ctx *searchContext, move Move, player PlayerColor, depth, depthFromRoot int, alpha, beta float64) (float64, bool) {
	undo, ok := applySearchMove(state, ctx.rules, move, player)
	if !ok {
		return 0, false
	}
	defer undo.revert(state)
	return minimax(state, ctx, depth-1, otherPlayer(player), depthFromRoot+1, alpha, beta), true
}

// minimax returns the score of state from settings.Player's perspective.
// Wins are rewarded by winScore minus the distance from the root, so the
// search prefers the quickest win and the slowest loss.
func minimax(state *GameState, ctx *searchContext, depth int, currentPlayer PlayerColor, depthFromRoot int, alpha, beta float64) float64 {
	settings := ctx.settings
	if settings.Stats != nil {
		settings.Stats.Nodes++
	}

	switch state.Status {
	case winStatusFor(settings.Player):
		return winScore - float64(depthFromRoot)
	case winStatusFor(otherPlayer(settings.Player)):
		return -winScore + float64(depthFromRoot)
	case StatusDraw:
		return 0
	}

	cfg := settings.Config
	if timedOut(ctx) || depth <= 0 {
		return EvaluateBoard(&state.Board, settings.Player, ctx.rules.WinLength(), cfg.Heuristics)
	}

	maximizing := currentPlayer == settings.Player
	alphaOrig := alpha
	betaOrig := beta

	var pvMove Move
	hasPV := false
	if cfg.AiEnableTT && settings.TT != nil {
		if settings.Stats != nil {
			settings.Stats.TTProbes++
		}
		if entry, ok := settings.TT.Probe(ttKeyFor(state.Hash, settings.Player)); ok {
			if settings.Stats != nil {
				settings.Stats.TTHits++
			}
			if entry.Depth >= depth {
				switch entry.Flag {
				case TTExact:
					return entry.Value
				case TTLower:
					if entry.Value > alpha {
						alpha = entry.Value
					}
				case TTUpper:
					if entry.Value < beta {
						beta = entry.Value
					}
				}
				if alpha >= beta {
					return entry.Value
				}
			}
			pvMove = entry.BestMove
			hasPV = true
		}
	}

	candidates := orderedMoves(state, ctx.rules, pvMove, hasPV)
	if len(candidates) == 0 {
		return EvaluateBoard(&state.Board, settings.Player, ctx.rules.WinLength(), cfg.Heuristics)
	}

	var best float64
	var bestMove Move
	if maximizing {
		best = -winScore * 2
		for _, move := range candidates {
			value, ok := searchChild(state, ctx, move, currentPlayer, depth, depthFromRoot, alpha, beta)
			if !ok {
				continue
			}
			if value > best {
				best = value
				bestMove = move
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				if settings.Stats != nil {
					settings.Stats.Cutoffs++
				}
				break
			}
			if timedOut(ctx) {
				break
			}
		}
	} else {
		best = winScore * 2
		for _, move := range candidates {
			value, ok := searchChild(state, ctx, move, currentPlayer, depth, depthFromRoot, alpha, beta)
			if !ok {
				continue
			}
			if value < best {
				best = value
				bestMove = move
			}
			if best < beta {
				beta = best
			}
			if alpha >= beta {
				if settings.Stats != nil {
					settings.Stats.Cutoffs++
				}
				break
			}
			if timedOut(ctx) {
				break
			}
		}
	}

	if cfg.AiEnableTT && settings.TT != nil && !timedOut(ctx) {
		flag := TTExact
		if best <= alphaOrig {
			flag = TTUpper
		} else if best >= betaOrig {
			flag = TTLower
		}
		if settings.TT.Store(ttKeyFor(state.Hash, settings.Player), depth, best, flag, bestMove) && settings.Stats != nil {
			settings.Stats.TTStores++
		}
	}
	return best
}

// orderedMoves lists legal moves center column first, fanning outward, with
// the principal variation move tried before everything else.
func orderedMoves(state *GameState, rules Rules, pvMove Move, hasPV bool) []Move {
	legal := rules.LegalMoves(state)
	if len(legal) == 0 {
		return legal
	}
	byColumn := map[int][]Move{}
	for _, move := range legal {
		byColumn[move.X] = append(byColumn[move.X], move)
	}
	ordered := make([]Move, 0, len(legal))
	if hasPV {
		for _, move := range legal {
			if move.Equals(pvMove) {
				ordered = append(ordered, move)
				break
			}
		}
	}
	for _, col := range orderedColumns(state.Board.Cols()) {
		for _, move := range byColumn[col] {
			if hasPV && move.Equals(pvMove) {
				continue
			}
			ordered = append(ordered, move)
		}
	}
	return ordered
}

// orderedColumns yields column indices center-out: for 7 columns that is
// 3, 2, 4, 1, 5, 0, 6.
func orderedColumns(cols int) []int {
	center := cols / 2
	order := make([]int, 0, cols)
	order = append(order, center)
	for offset := 1; offset <= cols; offset++ {
		if center-offset >= 0 {
			order = append(order, center-offset)
		}
		if center+offset < cols {
			order = append(order, center+offset)
		}
	}
	return order
}

// MoveScore pairs a root move with the value its subtree returned.
type MoveScore struct {
	Move  Move
	Score float64
	Depth int
}

// ScoreMoves runs iterative deepening from minDepth up to maxDepth within
// the time budget and returns a score per legal root move. The last fully
// completed depth's scores are kept when the budget expires mid-depth.
func ScoreMoves(state GameState, rules Rules, settings AISearchSettings) ([]MoveScore, int) {
	cfg := settings.Config
	ctx := &searchContext{
		rules:    rules,
		settings: &settings,
		start:    time.Now(),
	}
	if settings.TimeBudgetMs > 0 {
		ctx.hasDeadline = true
		ctx.deadline = ctx.start.Add(time.Duration(settings.TimeBudgetMs) * time.Millisecond)
	}
	if settings.Stats != nil {
		settings.Stats.Start = ctx.start
	}
	if settings.TT != nil {
		settings.TT.NextGeneration()
	}

	legal := rules.LegalMoves(&state)
	if len(legal) == 0 {
		return nil, 0
	}

	minDepth := cfg.AiMinDepth
	if minDepth < 1 {
		minDepth = 1
	}
	maxDepth := settings.Depth
	if maxDepth < minDepth {
		maxDepth = minDepth
	}

	var completed []MoveScore
	completedDepth := 0
	for depth := minDepth; depth <= maxDepth; depth++ {
		depthStart := time.Now()
		current := make([]MoveScore, 0, len(legal))
		interrupted := false
		quickWin := false
		for _, move := range legal {
			value, ok := searchChild(&state, ctx, move, settings.Player, depth, 0, -winScore*2, winScore*2)
			if !ok {
				current = append(current, MoveScore{Move: move, Score: illegalScore, Depth: depth})
				continue
			}
			current = append(current, MoveScore{Move: move, Score: value, Depth: depth})
			if cfg.AiQuickWinExit && value >= winScore-float64(maxDepth) {
				quickWin = true
				break
			}
			// The first deepening pass always finishes so there is a
			// complete result to fall back on.
			if depth > minDepth && timedOut(ctx) {
				interrupted = true
				break
			}
		}
		if interrupted && !cfg.AiReturnLastComplete {
			completed = current
			completedDepth = depth
		}
		if !interrupted {
			completed = current
			completedDepth = depth
			if settings.Stats != nil {
				settings.Stats.DepthDurations = append(settings.Stats.DepthDurations, time.Since(depthStart))
				settings.Stats.CompletedDepths = depth
			}
		}
		if quickWin || interrupted || timedOut(ctx) {
			break
		}
	}
	return completed, completedDepth
}

// BestScoredMove returns the highest-scoring entry. When several moves tie,
// the one closest to the center column wins.
func BestScoredMove(scores []MoveScore, cols int) (MoveScore, bool) {
	if len(scores) == 0 {
		return MoveScore{}, false
	}
	best := scores[0]
	for _, score := range scores[1:] {
		if score.Score > best.Score {
			best = score
			continue
		}
		if score.Score == best.Score {
			center := cols / 2
			if absInt(score.Move.X-center) < absInt(best.Move.X-center) {
				best = score
			}
		}
	}
	return best, true
}
