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

// BidPenny pays one increment to lead a penny auction and restarts its timer.
// The dealer is paid on every bid.
func (a *Auction) BidPenny(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody) (err error) {
	start := time.Now()
	defer func() {
		a.logger.Debug("Penny bid completed", "elapsed", ledger.PrettyDuration(time.Since(start)))
	}()

	if err = checkNotPaused(cfg); err != nil {
		return
	}
	rec, err := a.loadAuction(env, ab.AuctionID)
	if err != nil {
		return
	}
	params, err := rec.Params.Penny()
	if err != nil {
		return
	}
	if rec.Status != ledger.Active {
		return ErrNotActive
	}
	now := env.Now()
	if now > params.EffectiveDeadline(rec.Deadline) {
		return ErrTimerExpired
	}

	bidder := env.Caller()
	increment := params.IncrementAmount
	rec.HighBidder = bidder
	rec.CurrentBid = new(big.Int).Add(rec.CurrentBid, increment)
	params.TotalPaid = new(big.Int).Add(params.TotalPaid, increment)
	params.LastBidTime = now
	env.State().SetAuction(rec)

	feeAmount, net, err := a.escrow(env).StreamPayment(rec.ID, bidder, rec.Dealer, increment, cfg.FeeRate)
	if err != nil {
		a.logger.Info("penny bid payment failed", "auction", rec.ID, "bidder", bidder, "error", err)
		return
	}

	emit(env, PennyBidEvent, rec.ID, &PennyBid{
		Bidder:            bidder,
		Amount:            increment,
		TotalPaid:         params.TotalPaid,
		EffectiveDeadline: params.EffectiveDeadline(rec.Deadline),
	})
	bidsAcceptedCounter.WithLabelValues(rec.Type.String()).Inc()
	a.logger.Info("penny bid placed", "auction", rec.ID, "bidder", bidder, "net", net, "fee", feeAmount, "totalPaid", params.TotalPaid)
	return nil
}
