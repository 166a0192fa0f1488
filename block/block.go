// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
)

var log = ledger.NewLogger("block")

// Block is a signed header plus the transactions packed under it, in
// execution order. It's immutable.
type Block struct {
	header *Header
	txs    tx.Transactions
}

// Compose assembles a block from its parts without checking the txs root.
func Compose(header *Header, txs tx.Transactions) *Block {
	return &Block{
		header: header,
		txs:    append(tx.Transactions(nil), txs...),
	}
}

// WithSignature returns a copy of the block whose header carries sig.
func (b *Block) WithSignature(sig []byte) *Block {
	return &Block{
		header: b.header.withSignature(sig),
		txs:    b.txs,
	}
}

func (b *Block) Header() *Header {
	return b.header
}

// Transactions returns a copy of the packed transactions.
func (b *Block) Transactions() tx.Transactions {
	return append(tx.Transactions(nil), b.txs...)
}

// EncodeRLP implements rlp.Encoder.
func (b *Block) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []interface{}{b.header, b.txs})
}

// DecodeRLP implements rlp.Decoder.
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	var payload struct {
		Header *Header
		Txs    tx.Transactions
	}
	if err := s.Decode(&payload); err != nil {
		return err
	}
	b.header, b.txs = payload.Header, payload.Txs
	return nil
}

func (b *Block) String() string {
	return fmt.Sprintf("Block(%v){\n  %v\n  Transactions: %v\n}", b.header.Number(), b.header, b.txs)
}

// Oneliner summarizes the block for logs.
func (b *Block) Oneliner() string {
	h := b.header
	return fmt.Sprintf("Block#%v(%v) txs:%v ts:%v parent:%v", h.Number(), h.ID().AbbrevString(), len(b.txs), h.Timestamp(), h.ParentID().AbbrevString())
}
