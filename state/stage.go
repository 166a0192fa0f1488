// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/kv"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/pkg/errors"
)

// Stage abstracts the slot changes of a state, ready to be committed.
type Stage struct {
	creator *Creator
	keys    []storageKey
	changes map[storageKey]rlp.RawValue
}

func newStage(c *Creator, changes map[storageKey]rlp.RawValue) *Stage {
	keys := make([]storageKey, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].dbKey(), keys[j].dbKey()) < 0
	})
	return &Stage{creator: c, keys: keys, changes: changes}
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Hash computes the digest of all changed slots, in key order.
func (s *Stage) Hash() ledger.Bytes32 {
	hw := ledger.NewBlake2b()
	for _, k := range s.keys {
		hw.Write(k.dbKey())
		hw.Write(s.changes[k])
	}
	var h ledger.Bytes32
	hw.Sum(h[:0])
	return h
}

// Commit writes all changed slots in one batch and returns the changes hash.
func (s *Stage) Commit() (ledger.Bytes32, error) {
	return s.CommitTo(s.creator.db.NewBatch())
}

// CommitTo adds the changed slots to batch and writes it, so rows already
// staged in batch by the caller land atomically with the state. batch must
// belong to the store the creator reads from.
func (s *Stage) CommitTo(batch kv.Batch) (ledger.Bytes32, error) {
	for _, k := range s.keys {
		raw := s.changes[k]
		var err error
		if len(raw) == 0 {
			err = batch.Delete(k.dbKey())
		} else {
			err = batch.Put(k.dbKey(), raw)
		}
		if err != nil {
			return ledger.Bytes32{}, errors.Wrap(err, "stage slot")
		}
	}
	s.creator.mu.Lock()
	defer s.creator.mu.Unlock()
	if err := batch.Write(); err != nil {
		return ledger.Bytes32{}, errors.Wrap(err, "commit state")
	}
	for _, k := range s.keys {
		s.creator.cache.Add(k, []byte(s.changes[k]))
	}
	return s.Hash(), nil
}
