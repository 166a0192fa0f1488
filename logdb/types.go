// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
)

// Location pins a stored log to its block and transaction. Index counts
// events and transfers separately within the block.
type Location struct {
	BlockID     ledger.Bytes32
	BlockNumber uint32
	BlockTime   uint64
	Index       uint32
	TxID        ledger.Bytes32
	TxOrigin    ledger.Address
}

// Event is a stored tx.Event. Address is always a module address.
type Event struct {
	Location
	Address ledger.Address
	Topics  [5]*ledger.Bytes32
	Data    []byte
}

// Transfer is a stored tx.Transfer.
type Transfer struct {
	Location
	Asset     ledger.Address
	Kind      ledger.ItemKind
	SubID     *big.Int
	Sender    ledger.Address
	Recipient ledger.Address
	Amount    *big.Int
}
