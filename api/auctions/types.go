// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions

import (
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/ledger"
)

type Item struct {
	Asset    string `json:"asset"`
	Kind     string `json:"kind"`
	SubID    string `json:"subID,omitempty"`
	Quantity string `json:"quantity"`
}

type Auction struct {
	ID           uint64  `json:"id"`
	Dealer       string  `json:"dealer"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	PaymentAsset string  `json:"paymentAsset"`
	Deadline     uint64  `json:"deadline"`
	HighBidder   string  `json:"highBidder,omitempty"`
	CurrentBid   string  `json:"currentBid"`
	CreatedAt    uint64  `json:"createdAt"`
	FinalizedAt  uint64  `json:"finalizedAt,omitempty"`
	Items        []*Item `json:"items"`
}

type TraditionalParams struct {
	StartAmount        string `json:"startAmount"`
	Increment          string `json:"increment"`
	ReservePrice       string `json:"reservePrice"`
	AcceptanceDeadline uint64 `json:"acceptanceDeadline"`
	ReserveMet         bool   `json:"reserveMet"`
}

type DutchParams struct {
	StartPrice       string `json:"startPrice"`
	DecreaseAmount   string `json:"decreaseAmount"`
	DecreaseInterval uint64 `json:"decreaseInterval"`
	MinimumPrice     string `json:"minimumPrice"`
	StartTime        uint64 `json:"startTime"`
}

type PennyParams struct {
	IncrementAmount string `json:"incrementAmount"`
	TotalPaid       string `json:"totalPaid"`
	LastBidTime     uint64 `json:"lastBidTime"`
	TimerDuration   uint64 `json:"timerDuration"`
}

// Price is a dutch price evaluated at a point in time.
type Price struct {
	Price string `json:"price"`
	At    uint64 `json:"at"`
}

type Deadline struct {
	Deadline uint64 `json:"deadline"`
}

type Escrow struct {
	AuctionID    uint64 `json:"auctionID"`
	PaymentAsset string `json:"paymentAsset"`
	Balance      string `json:"balance"`
	ItemsHeld    bool   `json:"itemsHeld"`
}

func convertAuction(rec *ledger.AuctionRecord) *Auction {
	a := &Auction{
		ID:           rec.ID,
		Dealer:       rec.Dealer.String(),
		Type:         rec.Type.String(),
		Status:       rec.Status.String(),
		PaymentAsset: rec.PaymentAsset.String(),
		Deadline:     rec.Deadline,
		CurrentBid:   utils.BigString(rec.CurrentBid),
		CreatedAt:    rec.CreatedAt,
		FinalizedAt:  rec.FinalizedAt,
		Items:        make([]*Item, 0, len(rec.Items)),
	}
	if rec.HasBidder() {
		a.HighBidder = rec.HighBidder.String()
	}
	for _, it := range rec.Items {
		item := &Item{
			Asset:    it.Asset.String(),
			Kind:     it.Kind.String(),
			Quantity: it.Amount().String(),
		}
		if it.Kind != ledger.Fungible && it.SubID != nil {
			item.SubID = it.SubID.String()
		}
		a.Items = append(a.Items, item)
	}
	return a
}

func convertTraditional(p *ledger.TraditionalParams) *TraditionalParams {
	return &TraditionalParams{
		StartAmount:        utils.BigString(p.StartAmount),
		Increment:          utils.BigString(p.Increment),
		ReservePrice:       utils.BigString(p.ReservePrice),
		AcceptanceDeadline: p.AcceptanceDeadline,
		ReserveMet:         p.ReserveMet,
	}
}

func convertDutch(p *ledger.DutchParams) *DutchParams {
	return &DutchParams{
		StartPrice:       utils.BigString(p.StartPrice),
		DecreaseAmount:   utils.BigString(p.DecreaseAmount),
		DecreaseInterval: p.DecreaseInterval,
		MinimumPrice:     utils.BigString(p.MinimumPrice),
		StartTime:        p.StartTime,
	}
}

func convertPenny(p *ledger.PennyParams) *PennyParams {
	return &PennyParams{
		IncrementAmount: utils.BigString(p.IncrementAmount),
		TotalPaid:       utils.BigString(p.TotalPaid),
		LastBidTime:     p.LastBidTime,
		TimerDuration:   p.TimerDuration,
	}
}

func convertEscrow(e *ledger.EscrowAccount) *Escrow {
	return &Escrow{
		AuctionID:    e.AuctionID,
		PaymentAsset: e.PaymentAsset.String(),
		Balance:      utils.BigString(e.Balance),
		ItemsHeld:    e.ItemsHeld,
	}
}
