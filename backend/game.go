package main

import (
	"time"

	"github.com/rs/zerolog/log"
)

type Game struct {
	settings     GameSettings
	rules        Rules
	state        GameState
	history      MoveHistory
	redPlayer    IPlayer
	yellowPlayer IPlayer
	turnStart    time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.stopAIPlayers()
	g.settings = settings
	g.rules = NewRules(settings)
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) Stop() {
	g.stopAIPlayers()
	g.state.Status = StatusNotStarted
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove validates and plays move for the side to move. A bare column
// request (Y < 0) resolves to the landing row first.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	if g.settings.Gravity && move.Y < 0 {
		resolved, ok := g.rules.ResolveColumn(&g.state.Board, move.X)
		if !ok {
			g.state.LastMessage = "Illegal move: column full"
			return false, g.state.LastMessage
		}
		resolved.Depth = move.Depth
		move = resolved
	}
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	ok, reason := g.rules.IsLegalDefault(&g.state, move)
	if !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	mover := g.state.ToMove
	prevToMove := g.state.ToMove

	g.state.Board.Set(move.X, move.Y, CellFromPlayer(mover))
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.state.MoveCount++
	g.state.WinningLine = nil

	g.history.Push(HistoryEntry{Move: move, Player: mover, ElapsedMs: elapsedMs, IsAi: isAiMove, Depth: move.Depth})
	g.logMovePlayed(move, elapsedMs, isAiMove)

	if g.rules.IsWin(&g.state.Board, move) {
		g.state.Status = winStatusFor(mover)
		g.state.WinningLine = g.rules.FindWinningLine(&g.state.Board, move)
		UpdateHashAfterMove(&g.state, move, mover, prevToMove)
		g.logWin(mover)
		return true, ""
	}
	if g.rules.IsDraw(&g.state.Board) {
		g.state.Status = StatusDraw
		UpdateHashAfterMove(&g.state, move, mover, prevToMove)
		return true, ""
	}

	g.state.ToMove = otherPlayer(mover)
	UpdateHashAfterMove(&g.state, move, mover, prevToMove)
	g.turnStart = time.Now()
	return true, ""
}

// UndoLastMove removes the most recent stone and hands the turn back. It
// also reopens a finished game.
func (g *Game) UndoLastMove() (bool, string) {
	entry, ok := g.history.Pop()
	if !ok {
		return false, "nothing to undo"
	}
	g.stopAIPlayers()
	g.state.Board.Remove(entry.Move.X, entry.Move.Y)
	g.state.MoveCount--
	g.state.ToMove = entry.Player
	g.state.Status = StatusRunning
	g.state.WinningLine = nil
	g.state.LastMessage = ""
	if prev, ok := g.lastHistoryEntry(); ok {
		g.state.LastMove = prev.Move
		g.state.HasLastMove = true
	} else {
		g.state.LastMove = Move{}
		g.state.HasLastMove = false
	}
	g.state.recomputeHash()
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances the game one step: applies a pending human move or polls the
// AI worker, starting one when idle. Returns true when a move was applied.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingMove() {
			move := human.TakePendingMove()
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		return false
	}
	ai, ok := player.(*AIPlayer)
	if ok {
		if ai.HasMoveReady() {
			move, err := ai.TakeMove()
			if err != nil {
				g.state.LastMessage = err.Error()
				log.Warn().Err(err).Msg("engine produced no move")
				if !errIsRecoverable(err) {
					g.state.Status = StatusNotStarted
				}
				return false
			}
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		if !ai.IsThinking() {
			ai.StartThinking(g.state.Clone(), g.rules)
		}
		return false
	}
	move, err := player.ChooseMove(g.state.Clone(), g.rules)
	if err != nil {
		g.state.LastMessage = err.Error()
		return false
	}
	applied, _ := g.TryApplyMove(move)
	return applied
}

func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerRed {
		return g.redPlayer
	}
	return g.yellowPlayer
}

func (g *Game) createPlayers() {
	if g.settings.RedType == PlayerHuman {
		g.redPlayer = NewHumanPlayer()
	} else {
		g.redPlayer = NewAIPlayer()
	}
	if g.settings.YellowType == PlayerHuman {
		g.yellowPlayer = NewHumanPlayer()
	} else {
		g.yellowPlayer = NewAIPlayer()
	}
}

func (g *Game) stopAIPlayers() {
	if ai, ok := g.redPlayer.(*AIPlayer); ok {
		ai.StopThinking()
	}
	if ai, ok := g.yellowPlayer.(*AIPlayer); ok {
		ai.StopThinking()
	}
}

func (g *Game) lastHistoryEntry() (HistoryEntry, bool) {
	if g.history.Size() == 0 {
		return HistoryEntry{}, false
	}
	entries := g.history.All()
	return entries[len(entries)-1], true
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "AI"
		}
		return "Human"
	}
	log.Info().
		Str("red", label(g.settings.RedType)).
		Str("yellow", label(g.settings.YellowType)).
		Str("rules", g.rules.String()).
		Msg("new game")
}

func (g *Game) logMovePlayed(move Move, elapsedMs float64, isAiMove bool) {
	log.Debug().
		Int("x", move.X).
		Int("y", move.Y).
		Float64("elapsed_ms", elapsedMs).
		Bool("ai", isAiMove).
		Int("depth", move.Depth).
		Msg("move played")
}

func (g *Game) logWin(player PlayerColor) {
	log.Info().Str("winner", player.String()).Msg("game over")
}
