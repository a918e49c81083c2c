package main

type PlayerColor int

type GameStatus int

const (
	PlayerRed PlayerColor = iota
	PlayerYellow
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusRedWon
	StatusYellowWon
	StatusDraw
)

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	MoveCount   int
	Hash        uint64
	LastMessage string
	WinningLine []Move
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard(settings.Cols, settings.Rows)
	if settings.RedStarts {
		s.ToMove = PlayerRed
	} else {
		s.ToMove = PlayerYellow
	}
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = Move{X: -1, Y: -1}
	s.MoveCount = 0
	s.Hash = 0
	s.LastMessage = ""
	s.WinningLine = nil
	s.recomputeHash()
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	return clone
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerRed {
		return PlayerYellow
	}
	return PlayerRed
}

func winStatusFor(player PlayerColor) GameStatus {
	if player == PlayerRed {
		return StatusRedWon
	}
	return StatusYellowWon
}

func (s *GameState) recomputeHash() {
	s.Hash = ComputeHash(*s)
}

func (p PlayerColor) String() string {
	if p == PlayerRed {
		return "red"
	}
	return "yellow"
}

func (st GameStatus) String() string {
	switch st {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusRedWon:
		return "red_won"
	case StatusYellowWon:
		return "yellow_won"
	case StatusDraw:
		return "draw"
	}
	return "unknown"
}
