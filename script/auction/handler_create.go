// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math"
	"math/big"
	"time"

	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
)

func (a *Auction) CreateTraditional(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody) (uint64, error) {
	if err := validateCreate(cfg, ab); err != nil {
		return 0, err
	}
	if amount(ab.Increment).Sign() <= 0 || ab.Deadline <= env.Now() {
		a.logger.Info("invalid traditional params", "increment", ab.Increment, "deadline", ab.Deadline, "now", env.Now())
		return 0, ErrInvalidParams
	}
	params := ledger.NewTraditionalParams(&ledger.TraditionalParams{
		StartAmount:  new(big.Int).Set(amount(ab.StartAmount)),
		Increment:    new(big.Int).Set(ab.Increment),
		ReservePrice: new(big.Int).Set(amount(ab.ReservePrice)),
	})
	return a.create(env, cfg, ab, ledger.Traditional, ab.Deadline, params)
}

func (a *Auction) CreateDutch(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody) (uint64, error) {
	if err := validateCreate(cfg, ab); err != nil {
		return 0, err
	}
	startPrice, minimum := amount(ab.StartPrice), amount(ab.MinimumPrice)
	if startPrice.Cmp(minimum) <= 0 || amount(ab.DecreaseAmount).Sign() <= 0 || ab.DecreaseInterval == 0 || ab.Deadline <= env.Now() {
		a.logger.Info("invalid dutch params", "startPrice", startPrice, "minimumPrice", minimum, "decrease", ab.DecreaseAmount, "interval", ab.DecreaseInterval, "deadline", ab.Deadline)
		return 0, ErrInvalidParams
	}
	params := ledger.NewDutchParams(&ledger.DutchParams{
		StartPrice:       new(big.Int).Set(startPrice),
		DecreaseAmount:   new(big.Int).Set(ab.DecreaseAmount),
		DecreaseInterval: ab.DecreaseInterval,
		MinimumPrice:     new(big.Int).Set(minimum),
		StartTime:        env.Now(),
	})
	return a.create(env, cfg, ab, ledger.Dutch, ab.Deadline, params)
}

func (a *Auction) CreatePenny(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody) (uint64, error) {
	if err := validateCreate(cfg, ab); err != nil {
		return 0, err
	}
	if amount(ab.IncrementAmount).Sign() <= 0 {
		return 0, ErrInvalidParams
	}
	timer := ab.TimerDuration
	if timer == 0 {
		timer = ledger.PennyTimerDuration
	}
	if env.Now() > math.MaxUint64-timer {
		return 0, ErrMathOverflow
	}
	params := ledger.NewPennyParams(&ledger.PennyParams{
		IncrementAmount: new(big.Int).Set(ab.IncrementAmount),
		TotalPaid:       new(big.Int),
		TimerDuration:   timer,
	})
	return a.create(env, cfg, ab, ledger.Penny, env.Now()+timer, params)
}

func validateCreate(cfg *ledger.AdminConfig, ab *AuctionBody) error {
	if !cfg.Initialized {
		return ledger.ErrNotInitialized
	}
	if err := checkNotPaused(cfg); err != nil {
		return err
	}
	if len(ab.Items) == 0 || len(ab.Items) > ledger.MaxItems {
		return ErrInvalidItems
	}
	for _, it := range ab.Items {
		if it == nil || !it.Valid() {
			return ErrInvalidItems
		}
	}
	if ab.PaymentAsset.IsZero() {
		return ErrInvalidParams
	}
	return nil
}

// create writes the record and takes custody of the items.
func (a *Auction) create(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, ab *AuctionBody, typ ledger.AuctionType, deadline uint64, params ledger.AuctionParams) (uint64, error) {
	start := time.Now()
	st := env.State()

	id := st.GetNextAuctionID()
	if id == math.MaxUint64 {
		return 0, ErrMathOverflow
	}

	items := make([]*ledger.AuctionItem, 0, len(ab.Items))
	for _, it := range ab.Items {
		item := &ledger.AuctionItem{Asset: it.Asset, Kind: it.Kind, SubID: new(big.Int), Quantity: it.Amount()}
		if it.SubID != nil {
			item.SubID.Set(it.SubID)
		}
		items = append(items, item)
	}

	rec := &ledger.AuctionRecord{
		ID:           id,
		Dealer:       env.Caller(),
		Type:         typ,
		Status:       ledger.Active,
		PaymentAsset: ab.PaymentAsset,
		Deadline:     deadline,
		CurrentBid:   new(big.Int),
		CreatedAt:    env.Now(),
		Items:        items,
		Params:       params,
	}
	st.SetAuction(rec)
	st.SetNextAuctionID(id + 1)
	cfg.AuctionCount++
	st.SetAdminConfig(cfg)

	if err := a.escrow(env).DepositItems(rec); err != nil {
		a.logger.Info("deposit items failed", "auction", id, "dealer", rec.Dealer, "error", err)
		return 0, err
	}

	emit(env, AuctionCreatedEvent, id, &AuctionCreated{
		Dealer:       rec.Dealer,
		Type:         typ,
		PaymentAsset: rec.PaymentAsset,
		Deadline:     deadline,
		ItemCount:    uint64(len(items)),
	})
	auctionsCreatedCounter.WithLabelValues(typ.String()).Inc()
	a.logger.Info("auction created", "id", id, "type", typ, "dealer", rec.Dealer, "items", len(items), "deadline", deadline, "elapsed", ledger.PrettyDuration(time.Since(start)))
	return id, nil
}
