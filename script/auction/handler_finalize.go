// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"time"

	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
)

// Finalize moves an auction whose primary phase is over to its next status.
// Anyone may call it.
func (a *Auction) Finalize(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody) (err error) {
	start := time.Now()
	defer func() {
		a.logger.Debug("Finalize completed", "elapsed", ledger.PrettyDuration(time.Since(start)))
	}()

	if err = checkNotPaused(cfg); err != nil {
		return
	}
	rec, err := a.loadAuction(env, ab.AuctionID)
	if err != nil {
		return
	}
	if rec.Status.IsTerminal() {
		return ErrAlreadyTerminal
	}

	switch rec.Type {
	case ledger.Traditional:
		err = a.finalizeTraditional(env, cfg, rec)
	case ledger.Dutch:
		err = a.finalizeDutch(env, rec)
	case ledger.Penny:
		err = a.finalizePenny(env, rec)
	default:
		err = ErrWrongType
	}
	if err != nil {
		return
	}
	settlementsCounter.WithLabelValues(rec.Type.String(), rec.Status.String()).Inc()
	return nil
}

func (a *Auction) finalizeTraditional(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, rec *ledger.AuctionRecord) error {
	params, err := rec.Params.Traditional()
	if err != nil {
		return err
	}
	now := env.Now()

	switch rec.Status {
	case ledger.Active:
		if now <= rec.Deadline {
			return ErrNotEnded
		}
		if !rec.HasBidder() {
			return a.refund(env, rec)
		}
		if params.ReserveMet {
			return a.settle(env, cfg, rec, AuctionFinalizedEvent)
		}
		rec.Status = ledger.Expired
		params.AcceptanceDeadline = now + ledger.AcceptancePeriod
		env.State().SetAuction(rec)
		emit(env, AuctionExpiredEvent, rec.ID, &AuctionExpired{
			HighBidder:         rec.HighBidder,
			Amount:             rec.CurrentBid,
			AcceptanceDeadline: params.AcceptanceDeadline,
		})
		a.logger.Info("auction expired below reserve", "auction", rec.ID, "bid", rec.CurrentBid, "reserve", params.ReservePrice, "acceptanceDeadline", params.AcceptanceDeadline)
		return nil

	case ledger.Expired:
		if now <= params.AcceptanceDeadline {
			return ErrAcceptancePeriodActive
		}
		return a.refund(env, rec)

	default:
		return ErrNotActive
	}
}

func (a *Auction) finalizeDutch(env *setypes.ScriptEnv, rec *ledger.AuctionRecord) error {
	if rec.Status != ledger.Active {
		return ErrNotActive
	}
	if env.Now() <= rec.Deadline {
		return ErrNotEnded
	}
	return a.refund(env, rec)
}

func (a *Auction) finalizePenny(env *setypes.ScriptEnv, rec *ledger.AuctionRecord) error {
	params, err := rec.Params.Penny()
	if err != nil {
		return err
	}
	if rec.Status != ledger.Active {
		return ErrNotActive
	}
	if env.Now() <= params.EffectiveDeadline(rec.Deadline) {
		return ErrNotEnded
	}
	if !rec.HasBidder() {
		return a.refund(env, rec)
	}

	rec.Status = ledger.Finalized
	rec.FinalizedAt = env.Now()
	env.State().SetAuction(rec)
	if err := a.escrow(env).ReleaseItems(rec, rec.HighBidder); err != nil {
		return err
	}
	emit(env, AuctionFinalizedEvent, rec.ID, &Settlement{Winner: rec.HighBidder, Amount: params.TotalPaid, Fee: amount(nil)})
	a.logger.Info("penny auction finalized", "auction", rec.ID, "winner", rec.HighBidder, "totalPaid", params.TotalPaid)
	return nil
}

// settle pays the dealer from the escrowed bid and hands the items to the
// high bidder.
func (a *Auction) settle(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, rec *ledger.AuctionRecord, topic ledger.Bytes32) error {
	rec.Status = ledger.Finalized
	rec.FinalizedAt = env.Now()
	env.State().SetAuction(rec)

	esc := a.escrow(env)
	feeAmount, net, err := esc.PayOut(rec.ID, rec.Dealer, rec.CurrentBid, cfg.FeeRate)
	if err != nil {
		return err
	}
	if err := esc.ReleaseItems(rec, rec.HighBidder); err != nil {
		return err
	}
	emit(env, topic, rec.ID, &Settlement{Winner: rec.HighBidder, Amount: rec.CurrentBid, Fee: feeAmount})
	a.logger.Info("auction settled", "auction", rec.ID, "winner", rec.HighBidder, "amount", rec.CurrentBid, "net", net, "fee", feeAmount)
	return nil
}

// refund returns the escrowed bid, if any, and the items to the dealer.
func (a *Auction) refund(env *setypes.ScriptEnv, rec *ledger.AuctionRecord) error {
	rec.Status = ledger.Refunded
	rec.FinalizedAt = env.Now()
	env.State().SetAuction(rec)

	esc := a.escrow(env)
	refunded := amount(nil)
	if rec.Type == ledger.Traditional && rec.HasBidder() && rec.CurrentBid.Sign() > 0 {
		if err := esc.PushPayment(rec.ID, rec.HighBidder, rec.CurrentBid); err != nil {
			return err
		}
		refunded = rec.CurrentBid
	}
	if err := esc.ReleaseItems(rec, rec.Dealer); err != nil {
		return err
	}
	emit(env, AuctionRefundedEvent, rec.ID, &AuctionRefunded{Dealer: rec.Dealer, Bidder: rec.HighBidder, Amount: refunded})
	a.logger.Info("auction refunded", "auction", rec.ID, "dealer", rec.Dealer, "bidder", rec.HighBidder, "refunded", refunded)
	return nil
}
