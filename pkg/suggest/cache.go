package suggest

import (
	"math"
	"sync"

	"github.com/bastiangx/wordgram/pkg/ngram"
	"github.com/charmbracelet/log"
)

// HotCache keeps recent prediction results, evicting the least recently used entry.
// Cached slices are shared and must not be modified by callers.
type HotCache struct {
	entries     map[string][]ngram.Prediction
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

// NewHotCache creates a cache holding at most maxEntries results
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		entries:    make(map[string][]ngram.Prediction, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached predictions for key
func (hc *HotCache) Get(key string) ([]ngram.Prediction, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	preds, ok := hc.entries[key]
	if !ok {
		hc.misses++
		return nil, false
	}
	hc.hits++
	hc.markAccessed(key)
	return preds, true
}

// Put stores predictions for key, evicting the oldest entry when full
func (hc *HotCache) Put(key string, preds []ngram.Prediction) {
	if hc.maxEntries <= 0 {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, exists := hc.entries[key]; !exists && len(hc.entries) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.entries[key] = preds
	hc.markAccessed(key)
}

// Stats returns cache size and hit counters
func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"hotCacheEntries": len(hc.entries),
		"maxHotEntries":   hc.maxEntries,
		"hotCacheHits":    int(hc.hits),
		"hotCacheMisses":  int(hc.misses),
	}
}

func (hc *HotCache) markAccessed(key string) {
	hc.accessCount++
	hc.accessTime[key] = hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, accessTime := range hc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestTime != math.MaxInt64 {
		delete(hc.entries, oldestKey)
		delete(hc.accessTime, oldestKey)
		log.Debugf("Evicted '%s' from hot cache", oldestKey)
	}
}
