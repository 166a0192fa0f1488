// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
)

// AuctionBody is the payload of every auction module clause. Fields an opcode
// does not use are left zero.
type AuctionBody struct {
	Opcode    uint32
	Version   uint32
	AuctionID uint64

	// creation
	PaymentAsset ledger.Address
	Items        []*ledger.AuctionItem
	Deadline     uint64

	// traditional
	StartAmount  *big.Int
	Increment    *big.Int
	ReservePrice *big.Int

	// dutch
	StartPrice       *big.Int
	DecreaseAmount   *big.Int
	DecreaseInterval uint64
	MinimumPrice     *big.Int

	// penny
	IncrementAmount *big.Int
	TimerDuration   uint64 // 0 means default

	Amount   *big.Int // traditional bid
	MaxPrice *big.Int // dutch purchase limit, 0 means none
}

func (ab *AuctionBody) ToString() string {
	return fmt.Sprintf("AuctionBody: Opcode=%v, Version=%v, AuctionID=%v, PaymentAsset=%v, Items=%v, Deadline=%v, StartAmount=%v, Increment=%v, ReservePrice=%v, StartPrice=%v, DecreaseAmount=%v, DecreaseInterval=%v, MinimumPrice=%v, IncrementAmount=%v, TimerDuration=%v, Amount=%v, MaxPrice=%v",
		GetOpName(ab.Opcode), ab.Version, ab.AuctionID, ab.PaymentAsset, len(ab.Items), ab.Deadline, ab.StartAmount, ab.Increment, ab.ReservePrice, ab.StartPrice, ab.DecreaseAmount, ab.DecreaseInterval, ab.MinimumPrice, ab.IncrementAmount, ab.TimerDuration, ab.Amount, ab.MaxPrice)
}

func (ab *AuctionBody) String() string {
	return ab.ToString()
}

func AuctionEncodeBytes(ab *AuctionBody) []byte {
	auctionBytes, err := rlp.EncodeToBytes(ab)
	if err != nil {
		log.Error("rlp encode failed", "error", err)
		return []byte{}
	}
	return auctionBytes
}

func DecodeFromBytes(bytes []byte) (*AuctionBody, error) {
	ab := AuctionBody{}
	err := rlp.DecodeBytes(bytes, &ab)
	return &ab, err
}

// amount treats a missing amount as zero.
func amount(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
