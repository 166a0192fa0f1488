// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/johnqh/auctions-contracts/kv"
	"github.com/pkg/errors"
)

const slotCacheSize = 65536

// Creator state creator to cut-off kv dependency.
// States it creates share one cache of committed slots. Cache fills hold the
// read lock across the kv read, and commits hold the write lock across the
// batch write and the cache update, so a fill never lands over newer data.
type Creator struct {
	db    kv.Store
	cache *lru.Cache
	mu    sync.RWMutex
}

// NewCreator create a new state creator.
func NewCreator(db kv.Store) *Creator {
	cache, _ := lru.New(slotCacheSize)
	return &Creator{db: db, cache: cache}
}

// NewState create a new state object over the committed slots.
func (c *Creator) NewState() *State {
	return newState(c)
}

func (c *Creator) load(key storageKey) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if v, ok := c.cache.Get(key); ok {
		return v.([]byte), nil
	}
	raw, err := c.db.Get(key.dbKey())
	if err != nil {
		if !c.db.IsNotFound(err) {
			return nil, errors.Wrapf(err, "load slot %v/%v", key.addr, key.key.AbbrevString())
		}
		raw = nil
	}
	c.cache.Add(key, raw)
	return raw, nil
}
