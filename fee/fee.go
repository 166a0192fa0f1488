// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fee splits payments into protocol fee and net proceeds.
package fee

import (
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
)

var (
	ErrRateOutOfBounds = ledger.NewError(ledger.ValidationError, "fee rate out of bounds")

	denominator = new(big.Int).SetUint64(ledger.FeeDenominator)
)

// Calculate returns floor(amount*rate/10000) and the remainder.
// The rate is not bounded here, see ValidateRate.
func Calculate(amount *big.Int, rateBps uint64) (fee *big.Int, net *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return new(big.Int), new(big.Int)
	}
	fee = new(big.Int).Mul(amount, new(big.Int).SetUint64(rateBps))
	fee.Quo(fee, denominator)
	net = new(big.Int).Sub(amount, fee)
	return
}

// ValidateRate enforces the upper bound of the fee rate.
func ValidateRate(rateBps uint64) error {
	if rateBps > ledger.MaxFeeRate {
		return ErrRateOutOfBounds
	}
	return nil
}
