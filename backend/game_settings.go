package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	Cols       int        `json:"cols"`
	Rows       int        `json:"rows"`
	WinLength  int        `json:"win_length"`
	Gravity    bool       `json:"gravity"`
	RedType    PlayerType `json:"-"`
	YellowType PlayerType `json:"-"`
	RedStarts  bool       `json:"red_starts"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		Cols:       7,
		Rows:       6,
		WinLength:  4,
		Gravity:    true,
		RedType:    PlayerHuman,
		YellowType: PlayerAI,
		RedStarts:  true,
	}
}
