package main

import "sync"

type Config struct {
	AiStrategy           string          `json:"ai_strategy"`
	AiDepth              int             `json:"ai_depth"`
	AiMinDepth           int             `json:"ai_min_depth"`
	AiMaxDepth           int             `json:"ai_max_depth"`
	AiTimeBudgetMs       int             `json:"ai_time_budget_ms"`
	AiReturnLastComplete bool            `json:"ai_return_last_complete_depth_only"`
	AiQuickWinExit       bool            `json:"ai_quick_win_exit"`
	AiEnableForkCheck    bool            `json:"ai_enable_fork_check"`
	AiEnableTT           bool            `json:"ai_enable_tt"`
	AiTtSize             int             `json:"ai_tt_size"`
	AiTtBuckets          int             `json:"ai_tt_buckets"`
	AiEnableTtPersist    bool            `json:"ai_enable_tt_persistence"`
	AiTtPersistPath      string          `json:"ai_tt_persistence_path"`
	AiLogSearchStats     bool            `json:"ai_log_search_stats"`
	WsPingIntervalSec    int             `json:"ws_ping_interval_sec"`
	Heuristics           HeuristicConfig `json:"heuristics"`
}

type HeuristicConfig struct {
	WindowWin     float64 `json:"window_win"`
	ThreeOpen     float64 `json:"three_open"`
	TwoOpen       float64 `json:"two_open"`
	OpponentThree float64 `json:"opponent_three"`
	OpponentTwo   float64 `json:"opponent_two"`
	CenterColumn  float64 `json:"center_column"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AiStrategy: StrategyMinimax,

		// Time budget mode: iterative deepening up to AiMaxDepth, the first
		// depth always completes so a move is available under any budget.
		AiDepth:              8,
		AiMinDepth:           1,
		AiMaxDepth:           8,
		AiTimeBudgetMs:       500,
		AiReturnLastComplete: true,

		AiQuickWinExit:    true,
		AiEnableForkCheck: true,

		AiEnableTT:  true,
		AiTtSize:    1 << 16,
		AiTtBuckets: 2,

		AiEnableTtPersist: false,
		AiTtPersistPath:   "cache/tt.gob",

		AiLogSearchStats: false,

		WsPingIntervalSec: 30,

		Heuristics: HeuristicConfig{
			WindowWin: 100000.0,
			ThreeOpen: 300.0,
			TwoOpen:   40.0,
			// A completable opponent three outweighs the symmetric own-three
			// bonus so quiet play stays defensive.
			OpponentThree: 450.0,
			OpponentTwo:   40.0,
			CenterColumn:  30.0,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
