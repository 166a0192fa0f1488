// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
)

// AcceptBid lets the dealer take the standing bid of an expired traditional
// auction while the acceptance window is open.
func (a *Auction) AcceptBid(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody) error {
	if err := checkNotPaused(cfg); err != nil {
		return err
	}
	rec, err := a.loadAuction(env, ab.AuctionID)
	if err != nil {
		return err
	}
	params, err := rec.Params.Traditional()
	if err != nil {
		return err
	}
	if env.Caller() != rec.Dealer {
		return ErrNotDealer
	}
	if rec.Status != ledger.Expired {
		return ErrNotExpired
	}
	if env.Now() > params.AcceptanceDeadline {
		return ErrAcceptanceWindowClosed
	}
	if !rec.HasBidder() {
		return ErrNoBidder
	}

	if err := a.settle(env, cfg, rec, BidAcceptedEvent); err != nil {
		return err
	}
	settlementsCounter.WithLabelValues(rec.Type.String(), "Accepted").Inc()
	return nil
}
