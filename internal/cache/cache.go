// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps recent analysis reports keyed by a hash of their
// input.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/dichter/pkg/types"
)

// ReportCache is a bounded least-recently-used cache of reports. It is
// safe for concurrent use.
type ReportCache struct {
	lru       *lru.Cache[string, *types.Report]
	evictions atomic.Int64
}

// New returns a cache holding at most size reports, or nil when size is
// not positive. A nil *ReportCache is a valid, always-empty cache.
func New(size int) *ReportCache {
	if size <= 0 {
		return nil
	}
	c := &ReportCache{}
	// NewWithEvict only fails for a non-positive size.
	c.lru, _ = lru.NewWithEvict[string, *types.Report](size, c.onEvict)
	return c
}

func (c *ReportCache) onEvict(string, *types.Report) {
	c.evictions.Add(1)
}

// Key derives the cache key for text analyzed with aspects. Aspect order
// does not matter; an empty set means all aspects.
func Key(text string, aspects []types.Aspect) string {
	names := make([]string, 0, len(aspects))
	for _, a := range aspects {
		names = append(names, string(a))
	}
	if len(names) == 0 {
		for _, a := range types.AllAspects {
			names = append(names, string(a))
		}
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(names, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached report for key.
func (c *ReportCache) Get(key string) (*types.Report, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

// Put stores r under key, evicting the least recently used report when
// full.
func (c *ReportCache) Put(key string, r *types.Report) {
	if c == nil || r == nil {
		return
	}
	c.lru.Add(key, r)
}

// Remove drops key from the cache.
func (c *ReportCache) Remove(key string) {
	if c != nil {
		c.lru.Remove(key)
	}
}

// Purge empties the cache.
func (c *ReportCache) Purge() {
	if c != nil {
		c.lru.Purge()
	}
}

// Len is the number of cached reports.
func (c *ReportCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Evictions counts every report dropped from the cache.
func (c *ReportCache) Evictions() int64 {
	if c == nil {
		return 0
	}
	return c.evictions.Load()
}
