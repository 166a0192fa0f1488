// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
)

// Transfer token transfer log.
type Transfer struct {
	Asset     ledger.Address
	Kind      ledger.ItemKind
	SubID     *big.Int
	Sender    ledger.Address
	Recipient ledger.Address
	Amount    *big.Int
}

// Transfers slisce of transfer logs.
type Transfers []*Transfer
