// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/co"
	"github.com/johnqh/auctions-contracts/kv"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	blockCacheLimit    = 512
	receiptsCacheLimit = 512
)

var (
	log = ledger.NewLogger("chain")
)

var errNotFound = errors.New("not found")
var ErrBlockExist = errors.New("block already exists")
var errParentMismatch = errors.New("parent is not the best block")

var (
	bestHeightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "best_height",
		Help: "BestBlock height",
	})
)

func init() {
	prometheus.MustRegister(bestHeightGauge)
}

// Chain describes a persistent, linear block chain.
// It's thread-safe.
type Chain struct {
	kv           kv.Store
	genesisBlock *block.Block
	bestBlock    *block.Block
	tag          byte
	caches       caches
	rw           sync.RWMutex
	tick         co.Signal
}

type caches struct {
	rawBlocks *lru.Cache
	receipts  *lru.Cache
}

// New create an instance of Chain.
func New(kv kv.Store, genesisBlock *block.Block) (*Chain, error) {
	if genesisBlock.Header().Number() != 0 {
		return nil, errors.New("genesis number != 0")
	}
	if len(genesisBlock.Transactions()) != 0 {
		return nil, errors.New("genesis block should not have transactions")
	}

	var bestBlock *block.Block
	genesisID := genesisBlock.Header().ID()
	if bestBlockID, err := loadBestBlockID(kv); err != nil {
		if !kv.IsNotFound(err) {
			return nil, err
		}
		// no genesis yet
		raw, err := block.EncodeRaw(genesisBlock)
		if err != nil {
			return nil, err
		}
		batch := kv.NewBatch()
		if err := saveBlockRaw(batch, genesisID, raw); err != nil {
			return nil, err
		}
		if err := saveBlockHash(batch, 0, genesisID); err != nil {
			return nil, err
		}
		if err := saveBestBlockID(batch, genesisID); err != nil {
			return nil, err
		}
		if err := batch.Write(); err != nil {
			return nil, err
		}
		bestBlock = genesisBlock
	} else {
		existGenesisID, err := loadBlockHash(kv, 0)
		if err != nil {
			return nil, err
		}
		if existGenesisID != genesisID {
			return nil, errors.New("genesis mismatch")
		}
		raw, err := loadBlockRaw(kv, bestBlockID)
		if err != nil {
			return nil, err
		}
		if bestBlock, err = raw.DecodeBlock(); err != nil {
			return nil, errors.Wrap(err, "decode best block")
		}
	}

	rawBlocks, err := lru.New(blockCacheLimit)
	if err != nil {
		return nil, err
	}
	receipts, err := lru.New(receiptsCacheLimit)
	if err != nil {
		return nil, err
	}

	bestHeightGauge.Set(float64(bestBlock.Header().Number()))
	log.Info("chain initialized", "genesis", genesisID.AbbrevString(), "best", bestBlock.Oneliner())

	return &Chain{
		kv:           kv,
		genesisBlock: genesisBlock,
		bestBlock:    bestBlock,
		tag:          genesisID[31],
		caches: caches{
			rawBlocks: rawBlocks,
			receipts:  receipts,
		},
	}, nil
}

// Exists tells whether a chain has been created in the store.
func Exists(r kv.Getter) (bool, error) {
	return r.Has(bestBlockKey)
}

// Tag returns chain tag, which is the last byte of genesis id.
func (c *Chain) Tag() byte {
	return c.tag
}

// GenesisBlock returns genesis block.
func (c *Chain) GenesisBlock() *block.Block {
	return c.genesisBlock
}

// BestBlock returns the newest block on trunk.
func (c *Chain) BestBlock() *block.Block {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return c.bestBlock
}

// AddBlock appends a new block on top of the best block.
func (c *Chain) AddBlock(newBlock *block.Block, receipts tx.Receipts) error {
	return c.AddBlockWith(newBlock, receipts, func(batch kv.Batch) error {
		return batch.Write()
	})
}

// AddBlockWith is AddBlock with the final batch write handed to write, so
// callers can add their own rows to the same atomic write. The best block is
// left unchanged if write fails.
func (c *Chain) AddBlockWith(newBlock *block.Block, receipts tx.Receipts, write func(kv.Batch) error) error {
	c.rw.Lock()
	defer c.rw.Unlock()

	header := newBlock.Header()
	newBlockID := header.ID()

	if _, err := c.getBlockHeader(newBlockID); err == nil {
		return ErrBlockExist
	} else if !c.IsNotFound(err) {
		return err
	}
	if header.ParentID() != c.bestBlock.Header().ID() {
		return errParentMismatch
	}
	if len(receipts) != len(newBlock.Transactions()) {
		return errors.Errorf("receipts count mismatch: want %d, got %d", len(newBlock.Transactions()), len(receipts))
	}

	raw, err := block.EncodeRaw(newBlock)
	if err != nil {
		return err
	}
	batch := c.kv.NewBatch()
	if err := saveBlockRaw(batch, newBlockID, raw); err != nil {
		return err
	}
	if err := saveBlockReceipts(batch, newBlockID, receipts); err != nil {
		return err
	}
	for i, trx := range newBlock.Transactions() {
		meta := &TxMeta{
			BlockID:  newBlockID,
			Index:    uint64(i),
			Reverted: receipts[i].Reverted,
		}
		if err := saveTxMeta(batch, trx.ID(), meta); err != nil {
			return err
		}
	}
	if err := saveBlockHash(batch, header.Number(), newBlockID); err != nil {
		return err
	}
	if err := saveBestBlockID(batch, newBlockID); err != nil {
		return err
	}
	if err := write(batch); err != nil {
		return errors.Wrap(err, "write block")
	}

	c.bestBlock = newBlock
	c.caches.receipts.Add(newBlockID, receipts)
	bestHeightGauge.Set(float64(header.Number()))
	log.Debug("best block updated", "block", newBlock.Oneliner())

	c.tick.Broadcast()
	return nil
}

// GetBlockHeader get block header by block id.
func (c *Chain) GetBlockHeader(id ledger.Bytes32) (*block.Header, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return c.getBlockHeader(id)
}

// GetBlock get block by id.
func (c *Chain) GetBlock(id ledger.Bytes32) (*block.Block, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return c.getBlock(id)
}

// GetBlockReceipts get all tx receipts in the block for given block id.
func (c *Chain) GetBlockReceipts(id ledger.Bytes32) (tx.Receipts, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return c.getBlockReceipts(id)
}

// GetTrunkBlockID get block id on trunk by given block number.
func (c *Chain) GetTrunkBlockID(num uint32) (ledger.Bytes32, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return c.getTrunkBlockID(num)
}

// GetTrunkBlock get block on trunk by given block number.
func (c *Chain) GetTrunkBlock(num uint32) (*block.Block, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	id, err := c.getTrunkBlockID(num)
	if err != nil {
		return nil, err
	}
	return c.getBlock(id)
}

// GetTransactionMeta get tx meta by tx id.
func (c *Chain) GetTransactionMeta(txID ledger.Bytes32) (*TxMeta, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return loadTxMeta(c.kv, txID)
}

// HasTransaction tells whether the tx is included in the chain.
func (c *Chain) HasTransaction(txID ledger.Bytes32) (bool, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return hasTxMeta(c.kv, txID)
}

// GetTrunkTransaction get transaction on trunk by id, together with its meta.
func (c *Chain) GetTrunkTransaction(txID ledger.Bytes32) (*tx.Transaction, *TxMeta, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	meta, err := loadTxMeta(c.kv, txID)
	if err != nil {
		return nil, nil, err
	}
	blk, err := c.getBlock(meta.BlockID)
	if err != nil {
		return nil, nil, err
	}
	txs := blk.Transactions()
	if meta.Index >= uint64(len(txs)) {
		return nil, nil, errors.New("tx index out of range")
	}
	return txs[meta.Index], meta, nil
}

// GetTransactionReceipt get receipt for given tx id.
func (c *Chain) GetTransactionReceipt(txID ledger.Bytes32) (*tx.Receipt, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	meta, err := loadTxMeta(c.kv, txID)
	if err != nil {
		return nil, err
	}
	receipts, err := c.getBlockReceipts(meta.BlockID)
	if err != nil {
		return nil, err
	}
	if meta.Index >= uint64(len(receipts)) {
		return nil, errors.New("receipt index out of range")
	}
	return receipts[meta.Index], nil
}

// IsNotFound returns if an error means not found.
func (c *Chain) IsNotFound(err error) bool {
	return err == errNotFound || c.kv.IsNotFound(err)
}

// NewTicker create a signal Waiter to receive event of head block change.
func (c *Chain) NewTicker() co.Waiter {
	return c.tick.NewWaiter()
}

func (c *Chain) getTrunkBlockID(num uint32) (ledger.Bytes32, error) {
	if num > c.bestBlock.Header().Number() {
		return ledger.Bytes32{}, errNotFound
	}
	return loadBlockHash(c.kv, num)
}

func (c *Chain) getRawBlock(id ledger.Bytes32) (block.Raw, error) {
	if cached, ok := c.caches.rawBlocks.Get(id); ok {
		return cached.(block.Raw), nil
	}
	raw, err := loadBlockRaw(c.kv, id)
	if err != nil {
		return nil, err
	}
	c.caches.rawBlocks.Add(id, raw)
	return raw, nil
}

func (c *Chain) getBlockHeader(id ledger.Bytes32) (*block.Header, error) {
	raw, err := c.getRawBlock(id)
	if err != nil {
		return nil, err
	}
	return raw.DecodeHeader()
}

func (c *Chain) getBlock(id ledger.Bytes32) (*block.Block, error) {
	raw, err := c.getRawBlock(id)
	if err != nil {
		return nil, err
	}
	return raw.DecodeBlock()
}

func (c *Chain) getBlockReceipts(id ledger.Bytes32) (tx.Receipts, error) {
	if cached, ok := c.caches.receipts.Get(id); ok {
		return cached.(tx.Receipts), nil
	}
	receipts, err := loadBlockReceipts(c.kv, id)
	if err != nil {
		return nil, err
	}
	c.caches.receipts.Add(id, receipts)
	return receipts, nil
}
