package main

import "testing"

func TestUpdateSettingsWithoutResetKeepsBoard(t *testing.T) {
	controller := NewGameController(humanVsHumanSettings())
	controller.StartGame(humanVsHumanSettings())
	controller.ApplyHumanMove(Move{X: 3, Y: -1})

	update := controller.Settings()
	update.YellowType = PlayerAI
	controller.UpdateSettings(update, false)

	state := controller.State()
	if state.Board.At(3, 5) != CellRed {
		t.Fatalf("settings update without reset must keep the position")
	}
	if controller.Settings().YellowType != PlayerAI {
		t.Fatalf("player type update was lost")
	}
}

func TestUpdateSettingsWithResetClearsBoard(t *testing.T) {
	controller := NewGameController(humanVsHumanSettings())
	controller.StartGame(humanVsHumanSettings())
	controller.ApplyHumanMove(Move{X: 3, Y: -1})

	controller.UpdateSettings(humanVsHumanSettings(), true)
	state := controller.State()
	if state.Board.CountEmpty() != 42 {
		t.Fatalf("reset must clear the board")
	}
	if state.Status != StatusNotStarted {
		t.Fatalf("reset game should be idle, got %v", state.Status)
	}
}

func TestControllerRejectsMoveOnAiTurn(t *testing.T) {
	settings := DefaultGameSettings()
	settings.RedType = PlayerAI
	settings.YellowType = PlayerHuman
	controller := NewGameController(settings)
	controller.StartGame(settings)

	if applied, reason := controller.ApplyHumanMove(Move{X: 3, Y: -1}); applied {
		t.Fatalf("human move on the engine's turn must be rejected")
	} else if reason == "" {
		t.Fatalf("rejection should carry a reason")
	}
}

func TestControllerUndoDelegates(t *testing.T) {
	controller := NewGameController(humanVsHumanSettings())
	controller.StartGame(humanVsHumanSettings())
	controller.ApplyHumanMove(Move{X: 0, Y: -1})

	if undone, reason := controller.UndoMove(); !undone {
		t.Fatalf("undo through the controller failed: %s", reason)
	}
	if controller.History().Size() != 0 {
		t.Fatalf("history must be empty after undo")
	}
}
