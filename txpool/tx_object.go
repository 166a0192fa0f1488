// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"sort"
	"sync"
	"time"

	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/pkg/errors"
)

// blocks ahead of head a tx may reference
const maxBlockRefAhead = 3600

type txObject struct {
	*tx.Transaction
	origin ledger.Address

	timeAdded  int64
	executable bool
}

func resolveTx(trx *tx.Transaction) (*txObject, error) {
	origin, err := trx.Origin()
	if err != nil {
		return nil, err
	}
	if origin.IsZero() {
		return nil, errors.New("no signer specified")
	}
	if len(trx.Clauses()) == 0 {
		return nil, errors.New("no clause")
	}
	return &txObject{
		Transaction: trx,
		origin:      origin,
		timeAdded:   time.Now().UnixNano(),
	}, nil
}

func (o *txObject) Origin() ledger.Address {
	return o.origin
}

// Executable tells whether the tx can be packed on top of headBlock.
// A non-nil error means the tx will never be executable.
func (o *txObject) Executable(chain *chain.Chain, headBlock *block.Header) (bool, error) {
	switch {
	case o.IsExpired(headBlock.Number() + 1):
		return false, errors.New("head block expired")
	case o.BlockRef().Number() > headBlock.Number()+maxBlockRefAhead:
		return false, errors.New("block ref out of schedule")
	}

	known, err := chain.HasTransaction(o.ID())
	if err != nil {
		return false, err
	}
	if known {
		return false, errors.New("known tx")
	}

	if o.BlockRef().Number() > headBlock.Number() {
		return false, nil
	}
	return true, nil
}

// txObjectMap to maintain mapping of tx hash to tx object, and account quota.
type txObjectMap struct {
	lock     sync.RWMutex
	txObjMap map[ledger.Bytes32]*txObject
	quota    map[ledger.Address]int
}

func newTxObjectMap() *txObjectMap {
	return &txObjectMap{
		txObjMap: make(map[ledger.Bytes32]*txObject),
		quota:    make(map[ledger.Address]int),
	}
}

func (m *txObjectMap) Contains(txID ledger.Bytes32) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, found := m.txObjMap[txID]
	return found
}

func (m *txObjectMap) Get(txID ledger.Bytes32) *txObject {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.txObjMap[txID]
}

func (m *txObjectMap) Add(txObj *txObject, limitPerAccount int) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, found := m.txObjMap[txObj.ID()]; found {
		return nil
	}
	if limitPerAccount > 0 && m.quota[txObj.Origin()] >= limitPerAccount {
		return errors.New("account quota exceeded")
	}
	m.quota[txObj.Origin()]++
	m.txObjMap[txObj.ID()] = txObj
	return nil
}

func (m *txObjectMap) Remove(txID ledger.Bytes32) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	if txObj, ok := m.txObjMap[txID]; ok {
		if m.quota[txObj.Origin()] > 1 {
			m.quota[txObj.Origin()]--
		} else {
			delete(m.quota, txObj.Origin())
		}
		delete(m.txObjMap, txID)
		return true
	}
	return false
}

// ToTxObjects returns all objects in the order they were added.
func (m *txObjectMap) ToTxObjects() []*txObject {
	m.lock.RLock()
	defer m.lock.RUnlock()

	txObjs := make([]*txObject, 0, len(m.txObjMap))
	for _, txObj := range m.txObjMap {
		txObjs = append(txObjs, txObj)
	}
	sortTxObjsByTimeAdded(txObjs)
	return txObjs
}

func (m *txObjectMap) ToTxs() tx.Transactions {
	txObjs := m.ToTxObjects()
	txs := make(tx.Transactions, 0, len(txObjs))
	for _, txObj := range txObjs {
		txs = append(txs, txObj.Transaction)
	}
	return txs
}

func (m *txObjectMap) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.txObjMap)
}

func sortTxObjsByTimeAdded(txObjs []*txObject) {
	sort.SliceStable(txObjs, func(i, j int) bool {
		return txObjs[i].timeAdded < txObjs[j].timeAdded
	})
}
