// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
)

// DutchPrice returns the price of a dutch auction at the given time. The price
// drops by DecreaseAmount every DecreaseInterval seconds after StartTime and
// never goes below MinimumPrice.
func DutchPrice(p *ledger.DutchParams, now uint64) *big.Int {
	minimum := amount(p.MinimumPrice)
	price := new(big.Int).Set(amount(p.StartPrice))
	if now > p.StartTime && p.DecreaseInterval > 0 {
		intervals := (now - p.StartTime) / p.DecreaseInterval
		decrease := new(big.Int).Mul(new(big.Int).SetUint64(intervals), amount(p.DecreaseAmount))
		price.Sub(price, decrease)
	}
	if price.Cmp(minimum) < 0 {
		return new(big.Int).Set(minimum)
	}
	return price
}
