// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"fmt"
	"math/big"
	"strings"
)

type AuctionType uint8

const (
	Traditional AuctionType = iota
	Dutch
	Penny
)

func (t AuctionType) String() string {
	switch t {
	case Traditional:
		return "Traditional"
	case Dutch:
		return "Dutch"
	case Penny:
		return "Penny"
	default:
		return "Unknown"
	}
}

type AuctionStatus uint8

const (
	Active AuctionStatus = iota
	Expired
	Finalized
	Refunded
)

func (s AuctionStatus) String() string {
	switch s {
	case Active:
		return "Active"
	case Expired:
		return "Expired"
	case Finalized:
		return "Finalized"
	case Refunded:
		return "Refunded"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further transition is possible.
func (s AuctionStatus) IsTerminal() bool {
	return s == Finalized || s == Refunded
}

type ItemKind uint8

const (
	Fungible ItemKind = iota
	NonFungible
	SemiFungible
)

func (k ItemKind) String() string {
	switch k {
	case Fungible:
		return "Fungible"
	case NonFungible:
		return "NonFungible"
	case SemiFungible:
		return "SemiFungible"
	default:
		return "Unknown"
	}
}

// AuctionItem is one lot of an auction. SubID is ignored for fungible assets,
// Quantity is implicitly 1 for non-fungible ones.
type AuctionItem struct {
	Asset    Address
	Kind     ItemKind
	SubID    *big.Int
	Quantity *big.Int
}

func (it *AuctionItem) String() string {
	return fmt.Sprintf("Item(%v %v sub=%v qty=%v)", it.Kind, it.Asset, it.SubID, it.Quantity)
}

// Valid checks the kind and quantity rules of an item.
func (it *AuctionItem) Valid() bool {
	if it.Asset.IsZero() {
		return false
	}
	switch it.Kind {
	case Fungible, SemiFungible:
		return it.Quantity != nil && it.Quantity.Sign() > 0
	case NonFungible:
		return it.SubID != nil && (it.Quantity == nil || it.Quantity.Sign() == 0 || it.Quantity.Cmp(big.NewInt(1)) == 0)
	default:
		return false
	}
}

// Amount is the number of units the item moves.
func (it *AuctionItem) Amount() *big.Int {
	if it.Kind == NonFungible {
		return big.NewInt(1)
	}
	return new(big.Int).Set(it.Quantity)
}

// AuctionRecord is the common part of every auction, the type specific part
// lives in Params.
type AuctionRecord struct {
	ID           uint64
	Dealer       Address
	Type         AuctionType
	Status       AuctionStatus
	PaymentAsset Address
	Deadline     uint64
	HighBidder   Address
	CurrentBid   *big.Int
	CreatedAt    uint64
	FinalizedAt  uint64
	Items        []*AuctionItem
	Params       AuctionParams
}

// HasBidder reports whether anyone holds the lead.
func (r *AuctionRecord) HasBidder() bool {
	return !r.HighBidder.IsZero()
}

func (r *AuctionRecord) String() string {
	items := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, it.String())
	}
	return fmt.Sprintf("Auction(%v %v %v dealer=%v asset=%v deadline=%v bidder=%v bid=%v items=[%v])",
		r.ID, r.Type, r.Status, r.Dealer, r.PaymentAsset, r.Deadline, r.HighBidder, r.CurrentBid, strings.Join(items, ", "))
}
