// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"
	"time"

	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
)

// BidTraditional places a bid on a traditional auction. The new funds are
// secured before the previous bidder is refunded.
func (a *Auction) BidTraditional(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody) (err error) {
	start := time.Now()
	defer func() {
		a.logger.Debug("Bid completed", "elapsed", ledger.PrettyDuration(time.Since(start)))
	}()

	if err = checkNotPaused(cfg); err != nil {
		return
	}
	rec, err := a.loadAuction(env, ab.AuctionID)
	if err != nil {
		return
	}
	params, err := rec.Params.Traditional()
	if err != nil {
		return
	}
	if rec.Status != ledger.Active {
		return ErrNotActive
	}
	now := env.Now()
	if now > rec.Deadline {
		return ErrDeadlinePassed
	}

	bid := amount(ab.Amount)
	if bid.BitLen() > 256 {
		return ErrMathOverflow
	}
	minBid := params.StartAmount
	if rec.HasBidder() {
		minBid = new(big.Int).Add(rec.CurrentBid, params.Increment)
		if minBid.BitLen() > 256 {
			return ErrMathOverflow
		}
	}
	if bid.Sign() <= 0 || bid.Cmp(minBid) < 0 {
		a.logger.Info("bid too low", "auction", rec.ID, "amount", bid, "minBid", minBid)
		return ErrBidTooLow
	}

	bidder := env.Caller()
	prevBidder, prevBid := rec.HighBidder, rec.CurrentBid

	rec.HighBidder = bidder
	rec.CurrentBid = new(big.Int).Set(bid)
	if bid.Cmp(params.ReservePrice) >= 0 {
		params.ReserveMet = true
	}
	env.State().SetAuction(rec)

	esc := a.escrow(env)
	if err = esc.PullPayment(rec.ID, bidder, bid); err != nil {
		a.logger.Info("pull bid failed", "auction", rec.ID, "bidder", bidder, "error", err)
		return
	}
	if !prevBidder.IsZero() && prevBid.Sign() > 0 {
		if err = esc.PushPayment(rec.ID, prevBidder, prevBid); err != nil {
			a.logger.Error("refund previous bidder failed", "auction", rec.ID, "bidder", prevBidder, "error", err)
			return
		}
		emit(env, BidRefundedEvent, rec.ID, &BidPlaced{Bidder: prevBidder, Amount: prevBid})
	}

	emit(env, BidPlacedEvent, rec.ID, &BidPlaced{Bidder: bidder, Amount: bid})
	bidsAcceptedCounter.WithLabelValues(rec.Type.String()).Inc()
	a.logger.Info("bid placed", "auction", rec.ID, "bidder", bidder, "amount", bid, "reserveMet", params.ReserveMet)
	return nil
}
