// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"testing"

	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	usd := ledger.BytesToAddress([]byte("usd"))
	eur := ledger.BytesToAddress([]byte("eur"))

	stats := summarize([]*settlement{
		{auctionID: 1, asset: usd, amount: big.NewInt(1000), fee: big.NewInt(5)},
		{auctionID: 2, asset: usd, amount: big.NewInt(3000), fee: big.NewInt(15)},
		{auctionID: 3, asset: eur, amount: big.NewInt(700), fee: nil},
		{auctionID: 4, asset: usd, amount: big.NewInt(2000), fee: big.NewInt(10)},
	})
	require.Len(t, stats, 2)

	var u, e *settlementStats
	for _, st := range stats {
		switch st.Asset {
		case usd:
			u = st
		case eur:
			e = st
		}
	}
	require.NotNil(t, u)
	require.NotNil(t, e)
	assert.True(t, stats[0].Asset.String() < stats[1].Asset.String())

	assert.Equal(t, 3, u.Count)
	assert.Equal(t, big.NewInt(6000), u.Total)
	assert.Equal(t, big.NewInt(30), u.Fees)
	assert.InDelta(t, 2000, u.Mean, 1e-9)
	assert.InDelta(t, 1000, u.StdDev, 1e-9)
	assert.InDelta(t, 2000, u.Median, 1e-9)
	assert.InDelta(t, 3000, u.Max, 1e-9)

	assert.Equal(t, 1, e.Count)
	assert.Equal(t, big.NewInt(700), e.Total)
	assert.Equal(t, 0, e.Fees.Sign())
	assert.Zero(t, e.StdDev)
	assert.InDelta(t, 700, e.Median, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, summarize(nil))
}
