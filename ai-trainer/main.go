package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// arena plays engine-vs-engine games through the backend HTTP API. Both
// seats are driven from here: the backend is configured for a
// human-vs-human game and each turn is filled with /api/suggest output,
// switching the active strategy per side.
type arena struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	redStrategy  string
	yellowStrat  string
	games        int
	maxPlies     int
}

type statusResponse struct {
	Status     string         `json:"status"`
	Winner     int            `json:"winner"`
	NextPlayer int            `json:"next_player"`
	Cols       int            `json:"cols"`
	Rows       int            `json:"rows"`
	History    []historyEntry `json:"history"`
	Config     map[string]any `json:"config"`
}

type historyEntry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Player int `json:"player"`
}

type suggestResponse struct {
	Move struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"move"`
	Strategy string `json:"strategy"`
	Depth    int    `json:"depth"`
}

type tally struct {
	redWins    int
	yellowWins int
	draws      int
	plies      int
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "backend base URL")
	games := flag.Int("games", 10, "number of games to play")
	redStrategy := flag.String("red", "minimax", "strategy for the red seat")
	yellowStrategy := flag.String("yellow", "greedy", "strategy for the yellow seat")
	timeBudget := flag.Int("time-budget-ms", 200, "per-move search budget")
	maxPlies := flag.Int("max-plies", 200, "abort a game after this many plies")
	verbose := flag.Bool("verbose", false, "log every move")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	a := &arena{
		client:       &http.Client{Timeout: 30 * time.Second},
		baseURL:      *baseURL,
		pollInterval: 50 * time.Millisecond,
		redStrategy:  *redStrategy,
		yellowStrat:  *yellowStrategy,
		games:        *games,
		maxPlies:     *maxPlies,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.waitForBackend(ctx); err != nil {
		log.Fatal().Err(err).Msg("backend not reachable")
	}
	if err := a.setTimeBudget(ctx, *timeBudget); err != nil {
		log.Fatal().Err(err).Msg("apply time budget")
	}

	result := tally{}
	for game := 1; game <= a.games; game++ {
		if ctx.Err() != nil {
			break
		}
		winner, plies, err := a.playGame(ctx, game)
		if err != nil {
			log.Error().Err(err).Int("game", game).Msg("game aborted")
			break
		}
		switch winner {
		case 1:
			result.redWins++
		case 2:
			result.yellowWins++
		default:
			result.draws++
		}
		result.plies += plies
		log.Info().
			Int("game", game).
			Int("winner", winner).
			Int("plies", plies).
			Msg("game finished")
	}

	played := result.redWins + result.yellowWins + result.draws
	avgPlies := 0.0
	if played > 0 {
		avgPlies = float64(result.plies) / float64(played)
	}
	log.Info().
		Str("red", a.redStrategy).
		Str("yellow", a.yellowStrat).
		Int("played", played).
		Int("red_wins", result.redWins).
		Int("yellow_wins", result.yellowWins).
		Int("draws", result.draws).
		Float64("avg_plies", avgPlies).
		Msg("arena summary")
}

func (a *arena) playGame(ctx context.Context, game int) (winner int, plies int, err error) {
	startPayload := map[string]any{
		"settings": map[string]any{"mode": "human_vs_human"},
	}
	if err := a.postJSON(ctx, "/api/start", startPayload, nil); err != nil {
		return 0, 0, fmt.Errorf("start game: %w", err)
	}

	for plies = 0; plies < a.maxPlies; plies++ {
		if ctx.Err() != nil {
			return 0, plies, ctx.Err()
		}
		status, err := a.fetchStatus(ctx)
		if err != nil {
			return 0, plies, err
		}
		if status.Status != "running" {
			return status.Winner, plies, nil
		}

		strategy := a.redStrategy
		if status.NextPlayer == 2 {
			strategy = a.yellowStrat
		}
		if err := a.setStrategy(ctx, strategy); err != nil {
			return 0, plies, err
		}

		var suggestion suggestResponse
		if err := a.getJSON(ctx, "/api/suggest", &suggestion); err != nil {
			return 0, plies, fmt.Errorf("suggest: %w", err)
		}
		log.Debug().
			Int("game", game).
			Int("ply", plies).
			Int("player", status.NextPlayer).
			Str("strategy", suggestion.Strategy).
			Int("x", suggestion.Move.X).
			Int("y", suggestion.Move.Y).
			Int("depth", suggestion.Depth).
			Msg("move")

		movePayload := map[string]int{"x": suggestion.Move.X, "y": suggestion.Move.Y}
		if err := a.postJSON(ctx, "/api/move", movePayload, nil); err != nil {
			return 0, plies, fmt.Errorf("apply move: %w", err)
		}
	}

	status, err := a.fetchStatus(ctx)
	if err != nil {
		return 0, plies, err
	}
	return status.Winner, plies, nil
}

func (a *arena) waitForBackend(ctx context.Context) error {
	deadline := time.Now().Add(10 * time.Second)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := a.getJSON(ctx, "/api/ping", &map[string]bool{}); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("no response from %s", a.baseURL)
		}
		time.Sleep(a.pollInterval)
	}
}

func (a *arena) setStrategy(ctx context.Context, strategy string) error {
	status, err := a.fetchStatus(ctx)
	if err != nil {
		return err
	}
	if current, ok := status.Config["ai_strategy"].(string); ok && current == strategy {
		return nil
	}
	status.Config["ai_strategy"] = strategy
	return a.postJSON(ctx, "/api/settings", map[string]any{"config": status.Config}, nil)
}

func (a *arena) setTimeBudget(ctx context.Context, budgetMs int) error {
	status, err := a.fetchStatus(ctx)
	if err != nil {
		return err
	}
	status.Config["ai_time_budget_ms"] = budgetMs
	return a.postJSON(ctx, "/api/settings", map[string]any{"config": status.Config}, nil)
}

func (a *arena) fetchStatus(ctx context.Context) (statusResponse, error) {
	var status statusResponse
	if err := a.getJSON(ctx, "/api/status", &status); err != nil {
		return statusResponse{}, fmt.Errorf("status: %w", err)
	}
	return status, nil
}

func (a *arena) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %s (%s)", path, resp.Status, bytes.TrimSpace(body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *arena) postJSON(ctx context.Context, path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %s (%s)", path, resp.Status, bytes.TrimSpace(body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
