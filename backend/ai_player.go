package main

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

type AIPlayer struct {
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stopSignal atomic.Bool
	readyMove  Move
	readyErr   error
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove runs the full decision pipeline synchronously.
func (a *AIPlayer) ChooseMove(state GameState, rules Rules) (Move, error) {
	config := GetConfig()
	stats := &SearchStats{Start: time.Now()}
	dc := DecisionConfig{
		TT:    SharedTT(),
		Stats: stats,
	}
	move, err := SelectMove(state, rules, dc)
	if config.AiLogSearchStats {
		logSearchStats("choose", stats)
	}
	if err != nil {
		return Move{}, err
	}
	move.Depth = stats.CompletedDepths
	return move, nil
}

// StartThinking kicks off an async decision for the given position. Poll
// HasMoveReady and collect with TakeMove. A second call while a worker is
// live is a no-op.
func (a *AIPlayer) StartThinking(state GameState, rules Rules) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.stopSignal.Store(false)

	stateCopy := state.Clone()
	rulesCopy := rules
	done := make(chan struct{})
	a.workerDone = done
	config := GetConfig()
	go func() {
		defer close(done)
		stats := &SearchStats{Start: time.Now()}
		dc := DecisionConfig{
			TT:         SharedTT(),
			ShouldStop: func() bool { return a.stopSignal.Load() },
			Stats:      stats,
		}
		move, err := SelectMove(stateCopy, rulesCopy, dc)
		if a.stopSignal.Load() {
			a.moveReady.Store(false)
			a.thinking.Store(false)
			return
		}
		if config.AiLogSearchStats {
			logSearchStats("think", stats)
		}
		a.moveMutex.Lock()
		if err != nil {
			a.readyMove = Move{}
			a.readyErr = err
		} else {
			move.Depth = stats.CompletedDepths
			a.readyMove = move
			a.readyErr = nil
		}
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() (Move, error) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove, a.readyErr
}

// StopThinking cancels any in-flight worker and waits for it to exit.
func (a *AIPlayer) StopThinking() {
	a.stopSignal.Store(true)
	if a.workerDone != nil && a.thinking.Load() {
		<-a.workerDone
	}
	a.moveReady.Store(false)
	a.stopSignal.Store(false)
}

func (a *AIPlayer) CacheSize() int {
	return SharedTT().Count()
}

func logSearchStats(tag string, stats *SearchStats) {
	if stats == nil {
		return
	}
	elapsed := time.Duration(0)
	if !stats.Start.IsZero() {
		elapsed = time.Since(stats.Start)
	} else {
		for _, d := range stats.DepthDurations {
			elapsed += d
		}
	}
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	ttHitRate := 0.0
	if stats.TTProbes > 0 {
		ttHitRate = float64(stats.TTHits) * 100.0 / float64(stats.TTProbes)
	}
	log.Info().
		Str("tag", tag).
		Int64("nodes", stats.Nodes).
		Int64("cutoffs", stats.Cutoffs).
		Int("depth", stats.CompletedDepths).
		Dur("elapsed", elapsed).
		Float64("nps", nps).
		Float64("tt_hit_pct", ttHitRate).
		Int64("tt_stores", stats.TTStores).
		Msg("search stats")
}

// errIsRecoverable reports whether a decision error leaves the game in a
// playable state. Configuration errors do not.
func errIsRecoverable(err error) bool {
	return err != nil && !errors.Is(err, ErrInvalidConfig)
}
