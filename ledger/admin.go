// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"fmt"
	"math/big"
)

// AdminConfig is the single protocol configuration record.
type AdminConfig struct {
	Initialized  bool
	Owner        Address
	PendingOwner Address
	Paused       bool
	FeeRate      uint64
	FeeRecipient Address
	AuctionCount uint64
}

// FeeRecipientOrOwner returns where claimed fees go.
func (c *AdminConfig) FeeRecipientOrOwner() Address {
	if c.FeeRecipient.IsZero() {
		return c.Owner
	}
	return c.FeeRecipient
}

func (c *AdminConfig) String() string {
	return fmt.Sprintf("AdminConfig(owner=%v, pending=%v, paused=%v, feeRate=%v, feeRecipient=%v, auctions=%v)",
		c.Owner, c.PendingOwner, c.Paused, c.FeeRate, c.FeeRecipient, c.AuctionCount)
}

// FeeVault accumulates protocol fees of one payment asset.
type FeeVault struct {
	Asset  Address
	Amount *big.Int
}

// EscrowAccount tracks what custody holds for one auction.
type EscrowAccount struct {
	AuctionID    uint64
	PaymentAsset Address
	Balance      *big.Int
	ItemsHeld    bool
}

func (e *EscrowAccount) String() string {
	return fmt.Sprintf("Escrow(auction=%v, asset=%v, balance=%v, itemsHeld=%v)", e.AuctionID, e.PaymentAsset, e.Balance, e.ItemsHeld)
}
