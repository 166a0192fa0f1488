// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fee_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/johnqh/auctions-contracts/fee"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	f, net := fee.Calculate(big.NewInt(10000), 50)
	assert.Equal(t, "50", f.String())
	assert.Equal(t, "9950", net.String())

	f, net = fee.Calculate(big.NewInt(100), 50)
	assert.Equal(t, int64(0), f.Int64())
	assert.Equal(t, "100", net.String())

	f, net = fee.Calculate(big.NewInt(199), 50)
	assert.Equal(t, int64(0), f.Int64())
	assert.Equal(t, int64(199), net.Int64())

	f, net = fee.Calculate(big.NewInt(200), 50)
	assert.Equal(t, int64(1), f.Int64())
	assert.Equal(t, int64(199), net.Int64())

	f, net = fee.Calculate(big.NewInt(0), 1000)
	assert.Equal(t, 0, f.Sign())
	assert.Equal(t, 0, net.Sign())
}

func TestCalculateInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		amount := new(big.Int).Rand(r, ledger.MaxAmount)
		rate := uint64(r.Intn(int(ledger.MaxFeeRate) + 1))

		f, net := fee.Calculate(amount, rate)
		assert.Zero(t, amount.Cmp(new(big.Int).Add(f, net)))

		expected := new(big.Int).Mul(amount, new(big.Int).SetUint64(rate))
		expected.Quo(expected, big.NewInt(10000))
		assert.Zero(t, expected.Cmp(f))
	}
}

func TestValidateRate(t *testing.T) {
	assert.NoError(t, fee.ValidateRate(0))
	assert.NoError(t, fee.ValidateRate(ledger.MaxFeeRate))
	assert.ErrorIs(t, fee.ValidateRate(ledger.MaxFeeRate+1), fee.ErrRateOutOfBounds)
}
