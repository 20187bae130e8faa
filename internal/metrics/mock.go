package metrics

import (
	"context"
	"sync"
)

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	cacheHits            map[string]int
	cacheMisses          map[string]int
	computations         map[string]int
	computationFailures  map[string]int
	computationDurations []float64
	aggregatorLoads      map[string]int
	flushes              int
	flushFailures        int
	entriesWritten       int
	startupTime          float64
	cacheEntries         int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		cacheHits:            make(map[string]int),
		cacheMisses:          make(map[string]int),
		computations:         make(map[string]int),
		computationFailures:  make(map[string]int),
		computationDurations: make([]float64, 0),
		aggregatorLoads:      make(map[string]int),
	}
}

func (m *Mock) IncCacheHit(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits[kind]++
}

func (m *Mock) IncCacheMiss(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses[kind]++
}

func (m *Mock) IncComputations(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.computations[kind]++
}

func (m *Mock) IncComputationFailures(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.computationFailures[kind]++
}

func (m *Mock) ObserveComputationDuration(kind string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.computationDurations = append(m.computationDurations, duration)
}

func (m *Mock) IncAggregatorLoads(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregatorLoads[kind]++
}

func (m *Mock) IncFlushes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushes++
}

func (m *Mock) IncFlushFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushFailures++
}

func (m *Mock) AddEntriesWritten(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entriesWritten += n
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

func (m *Mock) SetCacheEntries(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheEntries = n
}

// CacheEntries returns the last value passed to SetCacheEntries.
func (m *Mock) CacheEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheEntries
}

// CacheHits returns the number of times IncCacheHit was called for kind.
func (m *Mock) CacheHits(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits[kind]
}

// CacheMisses returns the number of times IncCacheMiss was called for kind.
func (m *Mock) CacheMisses(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheMisses[kind]
}

// Computations returns the number of times IncComputations was called for kind.
func (m *Mock) Computations(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.computations[kind]
}

// ComputationFailures returns the number of times IncComputationFailures was called for kind.
func (m *Mock) ComputationFailures(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.computationFailures[kind]
}

// AggregatorLoads returns the number of times IncAggregatorLoads was called for kind.
func (m *Mock) AggregatorLoads(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aggregatorLoads[kind]
}

// Flushes returns the number of times IncFlushes was called.
func (m *Mock) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// FlushFailures returns the number of times IncFlushFailures was called.
func (m *Mock) FlushFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushFailures
}

// EntriesWritten returns the sum passed to AddEntriesWritten.
func (m *Mock) EntriesWritten() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entriesWritten
}

var _ CounterStore = (*MockCounterStore)(nil)

// MockCounterStore keeps counters in memory. AddFunc, when set, replaces the
// default behaviour.
type MockCounterStore struct {
	mu       sync.Mutex
	counters map[string]int
	AddFunc  func(key string, delta int) error
}

// NewMockCounterStore creates an empty in-memory counter store.
func NewMockCounterStore() *MockCounterStore {
	return &MockCounterStore{counters: make(map[string]int)}
}

func (m *MockCounterStore) Add(ctx context.Context, key string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddFunc != nil {
		return m.AddFunc(key, delta)
	}
	m.counters[key] += delta
	return nil
}

func (m *MockCounterStore) GetAll(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out, nil
}

// Get returns the current value of key.
func (m *MockCounterStore) Get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[key]
}
