package main

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

type ttPersistenceSnapshot struct {
	Size    int
	Buckets int
	Entries []TTEntry
}

func countValidTTEntries(entries []TTEntry) int {
	count := 0
	for _, entry := range entries {
		if entry.Valid {
			count++
		}
	}
	return count
}

// loadTTPersistence restores the shared search cache from disk. A snapshot
// whose geometry differs from the current config is skipped rather than
// partially applied.
func loadTTPersistence(cfg Config) {
	if !cfg.AiEnableTtPersist || cfg.AiTtPersistPath == "" {
		return
	}
	path := cfg.AiTtPersistPath
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("open tt snapshot")
		}
		return
	}
	defer file.Close()

	var snapshot ttPersistenceSnapshot
	if err := gob.NewDecoder(file).Decode(&snapshot); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("decode tt snapshot")
		return
	}
	tt := SharedTT()
	if snapshot.Size != cfg.AiTtSize || snapshot.Buckets != cfg.AiTtBuckets || len(snapshot.Entries) != tt.Capacity() {
		log.Warn().
			Int("snapshot_size", snapshot.Size).
			Int("snapshot_buckets", snapshot.Buckets).
			Int("config_size", cfg.AiTtSize).
			Int("config_buckets", cfg.AiTtBuckets).
			Msg("tt snapshot geometry mismatch, skipping")
		return
	}
	tt.loadEntries(snapshot.Entries)
	log.Info().
		Str("path", path).
		Int("valid", countValidTTEntries(snapshot.Entries)).
		Int("total", len(snapshot.Entries)).
		Msg("restored tt snapshot")
}

func persistTTPersistence(cfg Config) {
	if !cfg.AiEnableTtPersist || cfg.AiTtPersistPath == "" {
		return
	}
	path := cfg.AiTtPersistPath
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("create tt snapshot directory")
			return
		}
	}
	entries := SharedTT().snapshotEntries()
	file, err := os.Create(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("create tt snapshot")
		return
	}
	defer file.Close()
	snapshot := ttPersistenceSnapshot{
		Size:    cfg.AiTtSize,
		Buckets: cfg.AiTtBuckets,
		Entries: entries,
	}
	if err := gob.NewEncoder(file).Encode(&snapshot); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("encode tt snapshot")
		return
	}
	log.Info().
		Str("path", path).
		Int("valid", countValidTTEntries(entries)).
		Int("total", len(entries)).
		Msg("stored tt snapshot")
}
