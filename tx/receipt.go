// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
)

// Receipt represents the results of a transaction.
type Receipt struct {
	// the tx this receipt belongs to
	TxID ledger.Bytes32
	// the account that signed the tx
	Origin ledger.Address
	// if the tx reverted
	Reverted bool
	// error text of a reverted tx
	Error string
	// outputs of clauses in tx
	Outputs []*Output
}

// Output output of clause execution.
type Output struct {
	// return data of the module handler
	Data []byte
	// events produced by the clause
	Events Events
	// transfer occurred in clause
	Transfers Transfers
}

// Receipts slice of receipts.
type Receipts []*Receipt

// RootHash computes hash of receipts.
func (rs Receipts) RootHash() ledger.Bytes32 {
	if len(rs) == 0 {
		return ledger.Bytes32{}
	}
	hw := ledger.NewBlake2b()
	for _, r := range rs {
		data, err := rlp.EncodeToBytes(r)
		if err != nil {
			panic(err)
		}
		hw.Write(data)
	}
	var h ledger.Bytes32
	hw.Sum(h[:0])
	return h
}
