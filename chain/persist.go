// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/kv"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
)

// keyspace is the one byte namespace in front of every chain key.
type keyspace byte

const (
	blockSpace    keyspace = 'b' // block id -> raw block
	txMetaSpace   keyspace = 't' // tx id -> TxMeta
	receiptsSpace keyspace = 'r' // block id -> receipts
	trunkSpace    keyspace = 'n' // big endian block number -> block id
)

var bestBlockKey = []byte("best")

func (s keyspace) key(suffix []byte) []byte {
	k := make([]byte, 1+len(suffix))
	k[0] = byte(s)
	copy(k[1:], suffix)
	return k
}

func trunkKey(num uint32) []byte {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], num)
	return trunkSpace.key(n[:])
}

// TxMeta locates a settled tx.
type TxMeta struct {
	BlockID  ledger.Bytes32
	Index    uint64 // position in the block's txs
	Reverted bool
}

func putRLP(w kv.Putter, key []byte, val interface{}) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func getRLP[T any](r kv.Getter, key []byte) (*T, error) {
	data, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	var v T
	if err := rlp.DecodeBytes(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func getBytes32(r kv.Getter, key []byte) (ledger.Bytes32, error) {
	data, err := r.Get(key)
	if err != nil {
		return ledger.Bytes32{}, err
	}
	return ledger.BytesToBytes32(data), nil
}

func loadBestBlockID(r kv.Getter) (ledger.Bytes32, error) {
	return getBytes32(r, bestBlockKey)
}

func saveBestBlockID(w kv.Putter, id ledger.Bytes32) error {
	return w.Put(bestBlockKey, id.Bytes())
}

// loadBlockHash returns the id of the trunk block numbered num.
func loadBlockHash(r kv.Getter, num uint32) (ledger.Bytes32, error) {
	return getBytes32(r, trunkKey(num))
}

func saveBlockHash(w kv.Putter, num uint32, id ledger.Bytes32) error {
	return w.Put(trunkKey(num), id.Bytes())
}

func loadBlockRaw(r kv.Getter, id ledger.Bytes32) (block.Raw, error) {
	return r.Get(blockSpace.key(id.Bytes()))
}

func saveBlockRaw(w kv.Putter, id ledger.Bytes32, raw block.Raw) error {
	return w.Put(blockSpace.key(id.Bytes()), raw)
}

func saveTxMeta(w kv.Putter, txID ledger.Bytes32, meta *TxMeta) error {
	return putRLP(w, txMetaSpace.key(txID.Bytes()), meta)
}

func hasTxMeta(r kv.Getter, txID ledger.Bytes32) (bool, error) {
	return r.Has(txMetaSpace.key(txID.Bytes()))
}

func loadTxMeta(r kv.Getter, txID ledger.Bytes32) (*TxMeta, error) {
	return getRLP[TxMeta](r, txMetaSpace.key(txID.Bytes()))
}

func saveBlockReceipts(w kv.Putter, blockID ledger.Bytes32, receipts tx.Receipts) error {
	return putRLP(w, receiptsSpace.key(blockID.Bytes()), receipts)
}

func loadBlockReceipts(r kv.Getter, blockID ledger.Bytes32) (tx.Receipts, error) {
	receipts, err := getRLP[tx.Receipts](r, receiptsSpace.key(blockID.Bytes()))
	if err != nil {
		return nil, err
	}
	return *receipts, nil
}
