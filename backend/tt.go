package main

import (
	"sync"
	"sync/atomic"
)

var (
	sharedTTOnce sync.Once
	sharedTT     *TranspositionTable
)

// SharedTT is the process-wide search cache. All players and the suggestion
// endpoint share it so results carry across turns.
func SharedTT() *TranspositionTable {
	sharedTTOnce.Do(func() {
		cfg := GetConfig()
		sharedTT = NewTranspositionTable(cfg.AiTtSize, cfg.AiTtBuckets)
	})
	return sharedTT
}

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

const (
	ttStripeCount        = 64
	ttVeryOldGenerations = 4
)

// ttKeyFor salts the position hash with the searching player. Cached values
// are signed from that player's perspective, so the two seats sharing one
// table must never resolve to the same slot for the same position.
func ttKeyFor(hash uint64, player PlayerColor) uint64 {
	if player == PlayerYellow {
		return hash ^ ttYellowSalt
	}
	return hash ^ ttRedSalt
}

const (
	ttRedSalt    = 0xd6e8feb86659fd93
	ttYellowSalt = 0xa5a3564e1632f4c7
)

// TTEntry is one cached search result. Value is the alpha-beta score from
// the searching player's perspective at Depth remaining plies; the key must
// come from ttKeyFor so that perspective is part of the lookup.
type TTEntry struct {
	Key         uint64
	Depth       int
	Value       float64
	Flag        TTFlag
	BestMove    Move
	Hits        uint32
	GenWritten  uint32
	GenLastUsed uint32
	Valid       bool
}

// TranspositionTable is a fixed-size bucketed hash table with striped locks.
// Replacement prefers deeper entries, then exact bounds, then very old ones.
type TranspositionTable struct {
	mask        uint64
	bucketCount int
	entries     []TTEntry
	stripeLocks [ttStripeCount]sync.RWMutex
	gen         atomic.Uint32
}

func NewTranspositionTable(size int, buckets int) *TranspositionTable {
	if size <= 0 {
		size = 1 << 16
	}
	if buckets <= 0 {
		buckets = 1
	}
	n := nextPowerOfTwo(uint64(size))
	tt := &TranspositionTable{
		mask:        n - 1,
		bucketCount: buckets,
		entries:     make([]TTEntry, int(n)*buckets),
	}
	tt.gen.Store(1)
	return tt
}

func (tt *TranspositionTable) bucketStart(key uint64) int {
	return int(key&tt.mask) * tt.bucketCount
}

func (tt *TranspositionTable) stripeFor(key uint64) *sync.RWMutex {
	return &tt.stripeLocks[key&tt.mask&(ttStripeCount-1)]
}

// Probe returns the cached entry for key if present.
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	if tt == nil {
		return TTEntry{}, false
	}
	lock := tt.stripeFor(key)
	lock.Lock()
	defer lock.Unlock()
	start := tt.bucketStart(key)
	gen := tt.currentGeneration()
	for i := start; i < start+tt.bucketCount; i++ {
		if tt.entries[i].Valid && tt.entries[i].Key == key {
			tt.entries[i].Hits++
			tt.entries[i].GenLastUsed = gen
			return tt.entries[i], true
		}
	}
	return TTEntry{}, false
}

// Store inserts or replaces the entry for key. Returns true when an entry
// was written.
func (tt *TranspositionTable) Store(key uint64, depth int, value float64, flag TTFlag, best Move) bool {
	if tt == nil {
		return false
	}
	lock := tt.stripeFor(key)
	lock.Lock()
	defer lock.Unlock()
	start := tt.bucketStart(key)
	gen := tt.currentGeneration()

	for i := start; i < start+tt.bucketCount; i++ {
		entry := &tt.entries[i]
		if entry.Valid && entry.Key == key {
			if depth < entry.Depth {
				return false
			}
			entry.Depth = depth
			entry.Value = value
			entry.Flag = flag
			entry.BestMove = best
			entry.GenWritten = gen
			entry.GenLastUsed = gen
			return true
		}
	}

	for i := start; i < start+tt.bucketCount; i++ {
		entry := &tt.entries[i]
		if !entry.Valid {
			*entry = TTEntry{
				Key:         key,
				Depth:       depth,
				Value:       value,
				Flag:        flag,
				BestMove:    best,
				GenWritten:  gen,
				GenLastUsed: gen,
				Valid:       true,
			}
			return true
		}
	}

	victim := -1
	victimClass := 0
	for i := start; i < start+tt.bucketCount; i++ {
		class := replacementClass(tt.entries[i], depth, flag, gen)
		if class > victimClass {
			victimClass = class
			victim = i
		}
	}
	if victim < 0 {
		return false
	}
	tt.entries[victim] = TTEntry{
		Key:         key,
		Depth:       depth,
		Value:       value,
		Flag:        flag,
		BestMove:    best,
		GenWritten:  gen,
		GenLastUsed: gen,
		Valid:       true,
	}
	return true
}

func (tt *TranspositionTable) Clear() {
	if tt == nil {
		return
	}
	tt.lockAllStripes()
	defer tt.unlockAllStripes()
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

func (tt *TranspositionTable) Count() int {
	if tt == nil {
		return 0
	}
	tt.lockAllStripesRead()
	defer tt.unlockAllStripesRead()
	count := 0
	for i := range tt.entries {
		if tt.entries[i].Valid {
			count++
		}
	}
	return count
}

func (tt *TranspositionTable) Capacity() int {
	if tt == nil {
		return 0
	}
	return len(tt.entries)
}

// NextGeneration ages every live entry by one search. Old entries become
// replacement candidates without being evicted eagerly.
func (tt *TranspositionTable) NextGeneration() {
	if tt == nil {
		return
	}
	tt.gen.Add(1)
}

func (tt *TranspositionTable) currentGeneration() uint32 {
	gen := tt.gen.Load()
	if gen != 0 {
		return gen
	}
	if tt.gen.CompareAndSwap(0, 1) {
		return 1
	}
	gen = tt.gen.Load()
	if gen == 0 {
		return 1
	}
	return gen
}

func (tt *TranspositionTable) lockAllStripes() {
	for i := range tt.stripeLocks {
		tt.stripeLocks[i].Lock()
	}
}

func (tt *TranspositionTable) unlockAllStripes() {
	for i := len(tt.stripeLocks) - 1; i >= 0; i-- {
		tt.stripeLocks[i].Unlock()
	}
}

func (tt *TranspositionTable) lockAllStripesRead() {
	for i := range tt.stripeLocks {
		tt.stripeLocks[i].RLock()
	}
}

func (tt *TranspositionTable) unlockAllStripesRead() {
	for i := len(tt.stripeLocks) - 1; i >= 0; i-- {
		tt.stripeLocks[i].RUnlock()
	}
}

func (tt *TranspositionTable) snapshotEntries() []TTEntry {
	tt.lockAllStripes()
	defer tt.unlockAllStripes()
	entries := make([]TTEntry, len(tt.entries))
	copy(entries, tt.entries)
	return entries
}

func (tt *TranspositionTable) loadEntries(entries []TTEntry) {
	tt.lockAllStripes()
	defer tt.unlockAllStripes()
	if len(entries) > len(tt.entries) {
		entries = entries[:len(tt.entries)]
	}
	copy(tt.entries[:len(entries)], entries)
}

func replacementClass(entry TTEntry, depth int, flag TTFlag, gen uint32) int {
	if depth > entry.Depth {
		return 1
	}
	if depth == entry.Depth && flag == TTExact && entry.Flag != TTExact {
		return 2
	}
	if depth == entry.Depth && flag == entry.Flag && entryAge(gen, entry) >= ttVeryOldGenerations {
		return 3
	}
	return 0
}

func entryAge(gen uint32, entry TTEntry) uint32 {
	last := entry.GenLastUsed
	if last == 0 {
		last = entry.GenWritten
	}
	return gen - last
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
