// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
)

// Builder assembles an unsigned block. The txs root is computed by Build.
type Builder struct {
	content headerContent
	txs     tx.Transactions
}

func (b *Builder) ParentID(id ledger.Bytes32) *Builder {
	b.content.ParentID = id
	return b
}

// Timestamp sets the block time that auctions in the block observe.
func (b *Builder) Timestamp(ts uint64) *Builder {
	b.content.Timestamp = ts
	return b
}

// StateHash sets the digest of the state changes made by the block.
func (b *Builder) StateHash(hash ledger.Bytes32) *Builder {
	b.content.StateHash = hash
	return b
}

func (b *Builder) ReceiptsRoot(hash ledger.Bytes32) *Builder {
	b.content.ReceiptsRoot = hash
	return b
}

// Transaction appends trx to the block, after the ones already added.
func (b *Builder) Transaction(trx *tx.Transaction) *Builder {
	b.txs = append(b.txs, trx)
	return b
}

func (b *Builder) Build() *Block {
	header := &Header{content: b.content}
	header.content.TxsRoot = b.txs.RootHash()
	return &Block{header: header, txs: b.txs}
}
