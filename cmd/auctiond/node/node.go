// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/beevik/ntp"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/co"
	"github.com/johnqh/auctions-contracts/kv"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/johnqh/auctions-contracts/notify"
	"github.com/johnqh/auctions-contracts/packer"
	"github.com/johnqh/auctions-contracts/script"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/johnqh/auctions-contracts/txpool"
	"github.com/pkg/errors"
)

const clockCheckInterval = 10 * time.Minute

// Options tunes the packing loop.
type Options struct {
	BlockInterval time.Duration
	// OnDemand skips empty blocks.
	OnDemand  bool
	NTPServer string
}

// Node packs pending transactions into blocks on a fixed interval and
// fans the outcome out to the log db and the notification publishers.
type Node struct {
	goes      co.Goes
	packer    *packer.Packer
	master    *Master
	chain     *chain.Chain
	logDB     *logdb.LogDB
	txPool    *txpool.TxPool
	publisher notify.Publisher
	options   Options
	logger    *slog.Logger
}

func New(
	master *Master,
	chain *chain.Chain,
	stateCreator *state.Creator,
	se *script.ScriptEngine,
	logDB *logdb.LogDB,
	txPool *txpool.TxPool,
	publisher notify.Publisher,
	options Options,
) *Node {
	return &Node{
		packer:    packer.New(chain, stateCreator, se, master.Address()),
		master:    master,
		chain:     chain,
		logDB:     logDB,
		txPool:    txPool,
		publisher: publisher,
		options:   options,
		logger:    ledger.NewLogger("node"),
	}
}

// Run blocks until ctx is done.
func (n *Node) Run(ctx context.Context) error {
	if n.options.BlockInterval <= 0 {
		return errors.New("block interval must be positive")
	}
	n.goes.Go(func() { n.packLoop(ctx) })
	n.goes.Go(func() { n.houseKeeping(ctx) })
	n.goes.Wait()
	return nil
}

func (n *Node) packLoop(ctx context.Context) {
	n.logger.Debug("enter pack loop")
	defer n.logger.Debug("leave pack loop")

	ticker := time.NewTicker(n.options.BlockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n.options.OnDemand && len(n.txPool.Executables()) == 0 {
				continue
			}
			if _, err := n.pack(uint64(time.Now().Unix())); err != nil {
				n.logger.Error("failed to pack block", "err", err)
			}
		}
	}
}

func (n *Node) houseKeeping(ctx context.Context) {
	n.logger.Debug("enter house keeping")
	defer n.logger.Debug("leave house keeping")

	statsTicker := time.NewTicker(time.Minute)
	defer statsTicker.Stop()

	clockTicker := time.NewTicker(clockCheckInterval)
	defer clockTicker.Stop()

	if n.options.NTPServer != "" {
		go n.checkClockOffset()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-statsTicker.C:
			n.printStats()
		case <-clockTicker.C:
			if n.options.NTPServer != "" {
				go n.checkClockOffset()
			}
		}
	}
}

func (n *Node) printStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	best := n.chain.BestBlock().Header()
	n.logger.Info("<Stats>", "best", best.Number(), "txPool", n.txPool.Len(), "executables", len(n.txPool.Executables()))
	n.logger.Info("<Memory>", "alloc", m.Alloc, "sys", m.Sys, "numGC", m.NumGC)
}

// pack builds one block on top of the best block, timestamped at now or one
// second after the parent, whichever is later.
func (n *Node) pack(now uint64) (*block.Block, error) {
	start := time.Now()
	best := n.chain.BestBlock()
	flow, err := n.packer.Schedule(best.Header(), now)
	if err != nil {
		return nil, errors.Wrap(err, "schedule")
	}

	for _, trx := range n.txPool.Executables() {
		if err := flow.Adopt(trx); err != nil {
			switch {
			case packer.IsTxNotAdoptableNow(err):
				continue
			case packer.IsBadTx(err) || packer.IsKnownTx(err):
				n.logger.Debug("drop tx", "id", trx.ID(), "err", err)
				n.txPool.Remove(trx.ID())
			default:
				return nil, errors.Wrap(err, "adopt tx")
			}
		}
	}

	newBlock, stage, receipts, err := flow.Pack(n.master.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "pack")
	}
	execElapsed := time.Since(start)

	if err := n.commitBlock(newBlock, stage, receipts); err != nil {
		return nil, err
	}

	n.logger.Info(fmt.Sprintf("* packed %v", newBlock.Oneliner()),
		"txs", len(receipts),
		"exec", ledger.PrettyDuration(execElapsed),
		"elapsed", ledger.PrettyDuration(time.Since(start)))
	return newBlock, nil
}

// commitBlock writes the block and its state changes in one batch.
func (n *Node) commitBlock(newBlock *block.Block, stage *state.Stage, receipts tx.Receipts) error {
	commitState := func(batch kv.Batch) error {
		_, err := stage.CommitTo(batch)
		return err
	}
	if err := n.chain.AddBlockWith(newBlock, receipts, commitState); err != nil {
		return errors.Wrap(err, "add block")
	}

	// skip logdb access if no txs
	if len(receipts) > 0 {
		if err := n.logDB.Prepare(newBlock.Header()).InsertReceipts(receipts).Commit(); err != nil {
			return errors.Wrap(err, "commit logs")
		}
		if n.publisher != nil {
			n.publisher.Publish(notify.FromReceipts(newBlock.Header(), receipts))
		}
	}

	for _, trx := range newBlock.Transactions() {
		n.txPool.Remove(trx.ID())
	}
	return nil
}

func (n *Node) checkClockOffset() {
	resp, err := ntp.Query(n.options.NTPServer)
	if err != nil {
		n.logger.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > n.options.BlockInterval/2 {
		n.logger.Warn("clock offset detected", "offset", ledger.PrettyDuration(resp.ClockOffset))
	}
}
