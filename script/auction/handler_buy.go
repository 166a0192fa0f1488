// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"time"

	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
)

// BuyDutch buys a dutch auction at the current price. The first buyer wins.
func (a *Auction) BuyDutch(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody) (err error) {
	start := time.Now()
	defer func() {
		a.logger.Debug("Buy completed", "elapsed", ledger.PrettyDuration(time.Since(start)))
	}()

	if err = checkNotPaused(cfg); err != nil {
		return
	}
	rec, err := a.loadAuction(env, ab.AuctionID)
	if err != nil {
		return
	}
	params, err := rec.Params.Dutch()
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

	price := DutchPrice(params, now)
	if price.Cmp(params.MinimumPrice) < 0 {
		return ErrBidTooLow
	}
	if limit := amount(ab.MaxPrice); limit.Sign() > 0 && price.Cmp(limit) > 0 {
		a.logger.Info("dutch price above limit", "auction", rec.ID, "price", price, "maxPrice", limit)
		return ErrPriceAboveLimit
	}

	buyer := env.Caller()
	rec.Status = ledger.Finalized
	rec.HighBidder = buyer
	rec.CurrentBid = price
	rec.FinalizedAt = now
	env.State().SetAuction(rec)

	esc := a.escrow(env)
	feeAmount := amount(nil)
	if price.Sign() > 0 {
		if err = esc.PullPayment(rec.ID, buyer, price); err != nil {
			a.logger.Info("pull payment failed", "auction", rec.ID, "buyer", buyer, "error", err)
			return
		}
		if feeAmount, _, err = esc.PayOut(rec.ID, rec.Dealer, price, cfg.FeeRate); err != nil {
			return
		}
	}
	if err = esc.ReleaseItems(rec, buyer); err != nil {
		return
	}

	emit(env, DutchPurchasedEvent, rec.ID, &Settlement{Winner: buyer, Amount: price, Fee: feeAmount})
	bidsAcceptedCounter.WithLabelValues(rec.Type.String()).Inc()
	settlementsCounter.WithLabelValues(rec.Type.String(), rec.Status.String()).Inc()
	a.logger.Info("dutch auction sold", "auction", rec.ID, "buyer", buyer, "price", price, "fee", feeAmount)
	return nil
}
