// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/gonum/stat"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

type settlement struct {
	auctionID uint64
	asset     ledger.Address
	amount    *big.Int
	fee       *big.Int
}

// settlementStats summarises the sales paid in one asset.
type settlementStats struct {
	Asset  ledger.Address
	Count  int
	Total  *big.Int
	Fees   *big.Int
	Mean   float64
	StdDev float64
	Median float64
	Max    float64
}

// loadSettlements reads every sale from the log db, resolving the payment
// asset of each through the current state.
func loadSettlements(ctx context.Context, logDB *logdb.LogDB, st *state.State) ([]*settlement, error) {
	addr := ledger.AuctionModuleAddr
	filter := &logdb.EventFilter{Order: logdb.ASC}
	for _, topic := range []ledger.Bytes32{auction.DutchPurchasedEvent, auction.AuctionFinalizedEvent, auction.BidAcceptedEvent} {
		topic := topic
		filter.CriteriaSet = append(filter.CriteriaSet, &logdb.EventCriteria{
			Address: &addr,
			Topics:  [5]*ledger.Bytes32{&topic},
		})
	}
	events, err := logDB.FilterEvents(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filter settlements")
	}

	var out []*settlement
	for _, ev := range events {
		if ev.Topics[0] == nil || ev.Topics[1] == nil {
			continue
		}
		decoded, err := auction.DecodeEvent(*ev.Topics[0], ev.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "decode event of tx %v", ev.TxID)
		}
		s, ok := decoded.(*auction.Settlement)
		if !ok {
			continue
		}
		id := ledger.Bytes32ToUint64(*ev.Topics[1])
		rec, err := auction.GetAuction(st, id)
		if err != nil {
			return nil, errors.Wrapf(err, "auction %d", id)
		}
		out = append(out, &settlement{auctionID: id, asset: rec.PaymentAsset, amount: s.Amount, fee: s.Fee})
	}
	return out, nil
}

func toFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

// summarize groups settlements by payment asset, ordered by asset.
func summarize(settlements []*settlement) []*settlementStats {
	byAsset := make(map[ledger.Address][]*settlement)
	for _, s := range settlements {
		byAsset[s.asset] = append(byAsset[s.asset], s)
	}

	out := make([]*settlementStats, 0, len(byAsset))
	for asset, group := range byAsset {
		st := &settlementStats{Asset: asset, Count: len(group), Total: new(big.Int), Fees: new(big.Int)}
		amounts := make([]float64, 0, len(group))
		for _, s := range group {
			st.Total.Add(st.Total, s.amount)
			if s.fee != nil {
				st.Fees.Add(st.Fees, s.fee)
			}
			amounts = append(amounts, toFloat(s.amount))
		}
		sort.Float64s(amounts)
		st.Mean = stat.Mean(amounts, nil)
		if len(amounts) > 1 {
			st.StdDev = stat.StdDev(amounts, nil)
		}
		st.Median = stat.Quantile(0.5, stat.Empirical, amounts, nil)
		st.Max = amounts[len(amounts)-1]
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Asset.String() < out[j].Asset.String()
	})
	return out
}

func statsAction(ctx *cli.Context) error {
	chain, mainDB, logDB := openInstance(ctx)
	defer mainDB.Close()
	defer logDB.Close()

	var only *ledger.Address
	if s := ctx.String(assetFlag.Name); s != "" {
		asset, err := ledger.ParseAddress(s)
		if err != nil {
			return errors.WithMessage(err, "asset")
		}
		only = &asset
	}

	settlements, err := loadSettlements(context.Background(), logDB, state.NewCreator(mainDB).NewState())
	if err != nil {
		return err
	}
	fmt.Printf("settlements up to block #%v\n", chain.BestBlock().Header().Number())
	for _, st := range summarize(settlements) {
		if only != nil && st.Asset != *only {
			continue
		}
		fmt.Printf("%v  count=%d total=%v fees=%v mean=%.2f stddev=%.2f median=%.2f max=%.2f\n",
			st.Asset, st.Count, st.Total, st.Fees, st.Mean, st.StdDev, st.Median, st.Max)
	}
	return nil
}
