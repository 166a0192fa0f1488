// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
)

// event topics, the second topic of every auction event is the auction id
var (
	AuctionCreatedEvent   = ledger.Blake2b([]byte("AuctionCreated"))
	BidPlacedEvent        = ledger.Blake2b([]byte("BidPlaced"))
	BidRefundedEvent      = ledger.Blake2b([]byte("BidRefunded"))
	DutchPurchasedEvent   = ledger.Blake2b([]byte("DutchPurchased"))
	PennyBidEvent         = ledger.Blake2b([]byte("PennyBid"))
	AuctionFinalizedEvent = ledger.Blake2b([]byte("AuctionFinalized"))
	AuctionExpiredEvent   = ledger.Blake2b([]byte("AuctionExpired"))
	AuctionRefundedEvent  = ledger.Blake2b([]byte("AuctionRefunded"))
	BidAcceptedEvent      = ledger.Blake2b([]byte("BidAccepted"))
)

var eventNames = map[ledger.Bytes32]string{
	AuctionCreatedEvent:   "AuctionCreated",
	BidPlacedEvent:        "BidPlaced",
	BidRefundedEvent:      "BidRefunded",
	DutchPurchasedEvent:   "DutchPurchased",
	PennyBidEvent:         "PennyBid",
	AuctionFinalizedEvent: "AuctionFinalized",
	AuctionExpiredEvent:   "AuctionExpired",
	AuctionRefundedEvent:  "AuctionRefunded",
	BidAcceptedEvent:      "BidAccepted",
}

// EventName returns the name of an auction event topic, empty if unknown.
func EventName(topic ledger.Bytes32) string {
	return eventNames[topic]
}

type AuctionCreated struct {
	Dealer       ledger.Address
	Type         ledger.AuctionType
	PaymentAsset ledger.Address
	Deadline     uint64
	ItemCount    uint64
}

// BidPlaced, BidRefunded and PennyBid share one shape.
type BidPlaced struct {
	Bidder ledger.Address
	Amount *big.Int
}

type PennyBid struct {
	Bidder            ledger.Address
	Amount            *big.Int
	TotalPaid         *big.Int
	EffectiveDeadline uint64
}

// Settlement describes a sale: DutchPurchased, AuctionFinalized and BidAccepted.
type Settlement struct {
	Winner ledger.Address
	Amount *big.Int
	Fee    *big.Int
}

type AuctionExpired struct {
	HighBidder         ledger.Address
	Amount             *big.Int
	AcceptanceDeadline uint64
}

type AuctionRefunded struct {
	Dealer ledger.Address
	Bidder ledger.Address
	Amount *big.Int
}

var eventShapes = map[ledger.Bytes32]func() interface{}{
	AuctionCreatedEvent:   func() interface{} { return new(AuctionCreated) },
	BidPlacedEvent:        func() interface{} { return new(BidPlaced) },
	BidRefundedEvent:      func() interface{} { return new(BidPlaced) },
	DutchPurchasedEvent:   func() interface{} { return new(Settlement) },
	PennyBidEvent:         func() interface{} { return new(PennyBid) },
	AuctionFinalizedEvent: func() interface{} { return new(Settlement) },
	AuctionExpiredEvent:   func() interface{} { return new(AuctionExpired) },
	AuctionRefundedEvent:  func() interface{} { return new(AuctionRefunded) },
	BidAcceptedEvent:      func() interface{} { return new(Settlement) },
}

// DecodeEvent decodes the data of an auction event into its typed shape.
func DecodeEvent(topic ledger.Bytes32, data []byte) (interface{}, error) {
	shape, ok := eventShapes[topic]
	if !ok {
		return nil, errUnknownEvent
	}
	v := shape()
	if err := rlp.DecodeBytes(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

func emit(env *setypes.ScriptEnv, topic ledger.Bytes32, id uint64, data interface{}) {
	enc, err := rlp.EncodeToBytes(data)
	if err != nil {
		log.Error("rlp encode event failed", "error", err)
		return
	}
	env.AddEvent(ledger.AuctionModuleAddr, []ledger.Bytes32{topic, ledger.Uint64ToBytes32(id)}, enc)
}
