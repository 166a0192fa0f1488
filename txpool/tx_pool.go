// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/co"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
)

// maxTxSize bounds the rlp size of an accepted tx.
const maxTxSize = 64 * 1024

var log = ledger.NewLogger("txpool")

// Options bound the pool.
type Options struct {
	Limit           int
	LimitPerAccount int
	MaxLifetime     time.Duration
}

var DefaultOptions = Options{
	Limit:           10000,
	LimitPerAccount: 128,
	MaxLifetime:     20 * time.Minute,
}

// TxEvent is posted when a tx enters the pool or turns executable.
type TxEvent struct {
	Tx         *tx.Transaction
	Executable *bool
}

// TxPool holds txs waiting to be packed.
type TxPool struct {
	options Options
	chain   *chain.Chain
	all     *txObjectMap

	executables atomic.Pointer[tx.Transactions]
	dirty       atomic.Uint32 // txs added since the last wash
	washMu      sync.Mutex

	feed  event.Feed
	scope event.SubscriptionScope
	done  chan struct{}
	goes  co.Goes
}

// New starts a pool following the head of c. Close must be called to stop it.
func New(c *chain.Chain, options Options) *TxPool {
	p := &TxPool{
		options: options,
		chain:   c,
		all:     newTxObjectMap(),
		done:    make(chan struct{}),
	}
	p.goes.Go(p.housekeeping)
	return p
}

// housekeeping washes on every new head, and once a second when txs were
// added or the pool is over its limit.
func (p *TxPool) housekeeping() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	head := p.chain.NewTicker()

	for {
		select {
		case <-p.done:
			return
		case <-head.C():
			p.Wash()
		case <-ticker.C:
			if p.dirty.Load() > 0 || p.all.Len() > p.options.Limit {
				p.Wash()
			}
		}
	}
}

func (p *TxPool) Close() {
	close(p.done)
	p.scope.Close()
	p.goes.Wait()
	log.Debug("closed")
}

func (p *TxPool) SubscribeTxEvent(ch chan *TxEvent) event.Subscription {
	return p.scope.Track(p.feed.Subscribe(ch))
}

func (p *TxPool) post(trx *tx.Transaction, executable bool) {
	p.goes.Go(func() {
		p.feed.Send(&TxEvent{Tx: trx, Executable: &executable})
	})
}

// admit checks a tx that is not yet in the pool.
func (p *TxPool) admit(trx *tx.Transaction) (*txObject, error) {
	if trx.ChainTag() != p.chain.Tag() {
		return nil, badTxError{"chain tag mismatch"}
	}
	enc, err := rlp.EncodeToBytes(trx)
	if err != nil {
		return nil, badTxError{err.Error()}
	}
	if len(enc) > maxTxSize {
		return nil, txRejectedError{"size too large"}
	}
	obj, err := resolveTx(trx)
	if err != nil {
		return nil, badTxError{err.Error()}
	}
	if obj.executable, err = obj.Executable(p.chain, p.chain.BestBlock().Header()); err != nil {
		return nil, txRejectedError{err.Error()}
	}
	return obj, nil
}

// Add puts a tx into the pool. Adding a tx already pooled is not an error.
func (p *TxPool) Add(trx *tx.Transaction) error {
	if p.all.Contains(trx.ID()) {
		return nil
	}
	obj, err := p.admit(trx)
	if err != nil {
		return err
	}
	if p.all.Len() >= p.options.Limit {
		return txRejectedError{"pool is full"}
	}
	if err := p.all.Add(obj, p.options.LimitPerAccount); err != nil {
		return txRejectedError{err.Error()}
	}
	p.dirty.Add(1)
	p.post(trx, obj.executable)
	log.Debug("tx added", "id", trx.ID(), "origin", obj.Origin(), "executable", obj.executable, "size", p.all.Len())
	return nil
}

// Remove drops a tx and reports whether it was pooled.
func (p *TxPool) Remove(txID ledger.Bytes32) bool {
	ok := p.all.Remove(txID)
	if ok {
		log.Debug("tx removed", "id", txID)
	}
	return ok
}

// Get returns a pooled tx, nil if absent.
func (p *TxPool) Get(txID ledger.Bytes32) *tx.Transaction {
	if obj := p.all.Get(txID); obj != nil {
		return obj.Transaction
	}
	return nil
}

// Executables returns the txs found executable by the last wash, oldest first.
func (p *TxPool) Executables() tx.Transactions {
	if txs := p.executables.Load(); txs != nil {
		return *txs
	}
	return nil
}

func (p *TxPool) Dump() tx.Transactions {
	return p.all.ToTxs()
}

func (p *TxPool) Len() int {
	return p.all.Len()
}

// Wash evicts stale txs and recomputes the executable list against the
// current head.
func (p *TxPool) Wash() {
	p.washMu.Lock()
	defer p.washMu.Unlock()
	p.dirty.Store(0)

	start := time.Now()
	executables, removed := p.wash(p.chain.BestBlock().Header(), start)
	p.executables.Store(&executables)

	log.Debug("wash done",
		"len", p.all.Len(),
		"executables", len(executables),
		"removed", removed,
		"elapsed", ledger.PrettyDuration(time.Since(start)))
}

func (p *TxPool) wash(head *block.Header, now time.Time) (tx.Transactions, int) {
	objs := p.all.ToTxObjects()
	executables := make(tx.Transactions, 0, len(objs))
	var evicted []ledger.Bytes32
	evict := func(obj *txObject, reason interface{}) {
		evicted = append(evicted, obj.ID())
		log.Debug("tx washed out", "id", obj.ID(), "reason", reason)
	}

	kept := 0
	for _, obj := range objs {
		if p.options.MaxLifetime > 0 && now.UnixNano() > obj.timeAdded+int64(p.options.MaxLifetime) {
			evict(obj, "out of lifetime")
			continue
		}
		executable, err := obj.Executable(p.chain, head)
		if err != nil {
			evict(obj, err)
			continue
		}
		if kept >= p.options.Limit {
			evict(obj, "pool limit")
			continue
		}
		kept++
		if !executable {
			continue
		}
		executables = append(executables, obj.Transaction)
		if !obj.executable {
			obj.executable = true
			p.post(obj.Transaction, true)
		}
	}

	for _, id := range evicted {
		p.all.Remove(id)
	}
	return executables, len(evicted)
}
