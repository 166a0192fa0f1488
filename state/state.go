// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/stackedmap"
	"github.com/pkg/errors"
)

var slotSpace = []byte("s") // (space, address, key) -> rlp value

type storageKey struct {
	addr ledger.Address
	key  ledger.Bytes32
}

func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, len(slotSpace)+len(k.addr)+len(k.key))
	b = append(b, slotSpace...)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// State is a revisionable view of module storage over the committed kv.
// Errors hit while reading or encoding are kept and reported by Err.
type State struct {
	creator *Creator
	sm      *stackedmap.StackedMap
	err     error
}

func newState(c *Creator) *State {
	s := &State{creator: c}
	s.sm = stackedmap.New(s.loadCommitted)
	return s
}

func (s *State) loadCommitted(key interface{}) (interface{}, bool) {
	k, ok := key.(storageKey)
	if !ok {
		panic(fmt.Errorf("unexpected key type %T", key))
	}
	raw, err := s.creator.load(k)
	if err != nil {
		s.fail(err)
		return rlp.RawValue(nil), true
	}
	return rlp.RawValue(raw), true
}

func (s *State) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first error met.
func (s *State) Err() error {
	return s.err
}

func (s *State) raw(addr ledger.Address, key ledger.Bytes32) rlp.RawValue {
	v, _ := s.sm.Get(storageKey{addr, key})
	return v.(rlp.RawValue)
}

func (s *State) setRaw(addr ledger.Address, key ledger.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// load decodes a slot into v and reports whether the slot was set.
func (s *State) load(addr ledger.Address, key ledger.Bytes32, v interface{}) bool {
	raw := s.raw(addr, key)
	if len(raw) == 0 {
		return false
	}
	if err := rlp.DecodeBytes(raw, v); err != nil {
		s.fail(errors.Wrapf(err, "decode slot %v/%v", addr, key.AbbrevString()))
		return false
	}
	return true
}

// store encodes v into a slot. A nil v clears the slot.
func (s *State) store(addr ledger.Address, key ledger.Bytes32, v interface{}) {
	if v == nil {
		s.setRaw(addr, key, nil)
		return
	}
	raw, err := rlp.EncodeToBytes(v)
	if err != nil {
		s.fail(errors.Wrapf(err, "encode slot %v/%v", addr, key.AbbrevString()))
		return
	}
	s.setRaw(addr, key, raw)
}

// NewCheckpoint returns a revision RevertTo can roll back to.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects every slot changed since the state was created.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k, v interface{}) bool {
		changes[k.(storageKey)] = v.(rlp.RawValue)
		return true
	})
	return newStage(s.creator, changes)
}
