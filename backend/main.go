package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StatusResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Cols            int               `json:"cols"`
	Rows            int               `json:"rows"`
	Status          string            `json:"status"`
	AiThinking      bool              `json:"ai_thinking"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []Move            `json:"winning_line"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	WinLength   int    `json:"win_length"`
	Gravity     *bool  `json:"gravity,omitempty"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Depth     int     `json:"depth"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	History         []historyEntryDTO `json:"history"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	Cols            int               `json:"cols"`
	Rows            int               `json:"rows"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type suggestResponse struct {
	Move     Move   `json:"move"`
	Strategy string `json:"strategy"`
	Depth    int    `json:"depth"`
}

type ttCacheStatusResponse struct {
	Count         int     `json:"count"`
	Capacity      int     `json:"capacity"`
	Usage         float64 `json:"usage"`
	Full          bool    `json:"full"`
	EntryBytes    uint64  `json:"entry_bytes"`
	UsedBytes     uint64  `json:"used_bytes"`
	CapacityBytes uint64  `json:"capacity_bytes"`
}

func main() {
	setupLogging()

	var persistOnce sync.Once
	persistOnShutdown := func(reason string) {
		persistOnce.Do(func() {
			log.Info().Str("reason", reason).Msg("persisting caches")
			persistTTPersistence(GetConfig())
		})
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error().Interface("panic", recovered).Msg("panic recovered in main")
			persistOnShutdown("panic")
		}
	}()

	controller := NewGameController(DefaultGameSettings())
	loadTTPersistence(GetConfig())
	defer persistOnShutdown("exit")
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := newRouter(controller, hub)

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", server.Addr).Msg("backend listening")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Warn().Err(closeErr).Msg("forced close failed")
		}
	}

	cancel()
	persistOnShutdown("shutdown")
	if runErr != nil {
		log.Error().Err(runErr).Msg("exiting after server error")
	}
}

func setupLogging() {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func newRouter(controller *GameController, hub *Hub) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.StopGame()
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings, false)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		move := Move{X: payload.X, Y: payload.Y}
		if controller.Settings().Gravity {
			move.Y = -1
		}
		applied, errMsg := controller.ApplyHumanMove(move)
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		undone, errMsg := controller.UndoMove()
		if !undone {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/suggest", func(w http.ResponseWriter, r *http.Request) {
		state := controller.State()
		rules := controller.Rules()
		stats := &SearchStats{Start: time.Now()}
		move, err := SelectMove(state, rules, DecisionConfig{TT: SharedTT(), Stats: stats})
		if err != nil {
			status := http.StatusConflict
			if errors.Is(err, ErrInvalidConfig) {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, suggestResponse{
			Move:     move,
			Strategy: GetConfig().AiStrategy,
			Depth:    stats.CompletedDepths,
		})
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ttCacheStatus())
	})
	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		SharedTT().Clear()
		writeJSON(w, http.StatusOK, map[string]any{
			"cleared": true,
		})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	return r
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	status := controllerStatus(controller)
	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})

	go func() {
		defer conn.Close()
		if err := client.writePump(conn); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			status := controllerStatus(controller)
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:        controllerSettingsDTO(controller.Settings()),
		Config:          GetConfig(),
		Board:           boardToSlice(state.Board),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Cols:            state.Board.Cols(),
		Rows:            state.Board.Rows(),
		Status:          state.Status.String(),
		AiThinking:      controller.AiThinking(),
		History:         historyToDTO(controller.History()),
		WinningLine:     append([]Move(nil), state.WinningLine...),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.RedType = PlayerAI
		settings.YellowType = PlayerAI
	case "human_vs_human":
		settings.RedType = PlayerHuman
		settings.YellowType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.RedType = PlayerAI
			settings.YellowType = PlayerHuman
		} else {
			settings.RedType = PlayerHuman
			settings.YellowType = PlayerAI
		}
	}
	if dto.Cols > 0 {
		settings.Cols = dto.Cols
	}
	if dto.Rows > 0 {
		settings.Rows = dto.Rows
	}
	if dto.WinLength > 0 {
		settings.WinLength = dto.WinLength
	}
	if dto.Gravity != nil {
		settings.Gravity = *dto.Gravity
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	mode := "ai_vs_human"
	if settings.RedType == PlayerAI && settings.YellowType == PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.RedType == PlayerHuman && settings.YellowType == PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.RedType == PlayerHuman && settings.YellowType != PlayerHuman {
		humanPlayer = 1
	} else if settings.YellowType == PlayerHuman && settings.RedType != PlayerHuman {
		humanPlayer = 2
	} else if settings.RedType == PlayerHuman && settings.YellowType == PlayerHuman {
		humanPlayer = 1
	}
	gravity := settings.Gravity
	return GameSettingsDTO{
		Mode:        mode,
		HumanPlayer: humanPlayer,
		Cols:        settings.Cols,
		Rows:        settings.Rows,
		WinLength:   settings.WinLength,
		Gravity:     &gravity,
	}
}

func boardToSlice(board Board) [][]int {
	rows := make([][]int, board.Rows())
	for y := 0; y < board.Rows(); y++ {
		rows[y] = make([]int, board.Cols())
		for x := 0; x < board.Cols(); x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellRed:
		return 1
	case CellYellow:
		return 2
	default:
		return 0
	}
}

func playerToInt(player PlayerColor) int {
	if player == PlayerRed {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusRedWon:
		return 1
	case StatusYellowWon:
		return 2
	default:
		return 0
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:         entry.Move.X,
		Y:         entry.Move.Y,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Depth:     entry.Depth,
	}
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		History:         historyToDTO(controller.History()),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          state.Status.String(),
		Cols:            state.Board.Cols(),
		Rows:            state.Board.Rows(),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func ttCacheStatus() ttCacheStatusResponse {
	tt := SharedTT()
	count := tt.Count()
	capacity := tt.Capacity()
	entryBytes := uint64(unsafe.Sizeof(TTEntry{}))
	usage := 0.0
	full := false
	if capacity > 0 {
		usage = float64(count) / float64(capacity)
		full = count >= capacity
	}
	return ttCacheStatusResponse{
		Count:         count,
		Capacity:      capacity,
		Usage:         usage,
		Full:          full,
		EntryBytes:    entryBytes,
		UsedBytes:     uint64(count) * entryBytes,
		CapacityBytes: uint64(capacity) * entryBytes,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
