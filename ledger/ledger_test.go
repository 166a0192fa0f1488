// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ledger.ParseAddress("0x8a88c59bf15451f9deb1d62f7734fece2002668e")
	require.NoError(t, err)
	assert.Equal(t, "0x8a88c59bf15451f9deb1d62f7734fece2002668e", addr.String())
	assert.False(t, addr.IsZero())

	_, err = ledger.ParseAddress("0x8a88")
	assert.Error(t, err)
	assert.True(t, ledger.Address{}.IsZero())
}

func TestJSONHex(t *testing.T) {
	type pair struct {
		Addr  *ledger.Address `json:"addr"`
		Topic *ledger.Bytes32 `json:"topic"`
	}
	addr := ledger.BytesToAddress([]byte("dealer"))
	topic := ledger.Uint64ToBytes32(7)
	data, err := json.Marshal(&pair{&addr, &topic})
	require.NoError(t, err)
	assert.Contains(t, string(data), topic.String())

	var decoded pair
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, *decoded.Addr)
	assert.Equal(t, uint64(7), ledger.Bytes32ToUint64(*decoded.Topic))

	assert.Error(t, json.Unmarshal([]byte(`{"topic":"0x01"}`), &decoded))
}

func TestBytesToAddressPadsLeft(t *testing.T) {
	addr := ledger.BytesToAddress([]byte{1, 2})
	assert.Equal(t, byte(1), addr[18])
	assert.Equal(t, byte(2), addr[19])
	assert.Equal(t, byte(0), addr[0])
}

func TestParamsUnionAccess(t *testing.T) {
	p := ledger.NewDutchParams(&ledger.DutchParams{
		StartPrice:       big.NewInt(1000),
		DecreaseAmount:   big.NewInt(10),
		DecreaseInterval: 60,
		MinimumPrice:     big.NewInt(100),
		StartTime:        7,
	})
	assert.Equal(t, ledger.Dutch, p.Type())

	_, err := p.Traditional()
	assert.ErrorIs(t, err, ledger.ErrWrongType)
	_, err = p.Penny()
	assert.ErrorIs(t, err, ledger.ErrWrongType)
	assert.Equal(t, ledger.StateError, ledger.ClassOf(err))

	d, err := p.Dutch()
	require.NoError(t, err)
	assert.Equal(t, uint64(60), d.DecreaseInterval)
}

func TestRecordRLP(t *testing.T) {
	rec := &ledger.AuctionRecord{
		ID:           3,
		Dealer:       ledger.BytesToAddress([]byte("dealer")),
		Type:         ledger.Penny,
		Status:       ledger.Active,
		PaymentAsset: ledger.BytesToAddress([]byte("usdc")),
		Deadline:     1300,
		CurrentBid:   big.NewInt(0),
		CreatedAt:    1000,
		Items: []*ledger.AuctionItem{
			{Asset: ledger.BytesToAddress([]byte("nft")), Kind: ledger.NonFungible, SubID: big.NewInt(42), Quantity: big.NewInt(1)},
		},
		Params: ledger.NewPennyParams(&ledger.PennyParams{
			IncrementAmount: big.NewInt(1e6),
			TotalPaid:       big.NewInt(0),
			TimerDuration:   ledger.PennyTimerDuration,
		}),
	}
	data, err := rlp.EncodeToBytes(rec)
	require.NoError(t, err)

	decoded := &ledger.AuctionRecord{}
	require.NoError(t, rlp.DecodeBytes(data, decoded))
	assert.Equal(t, rec.String(), decoded.String())

	pp, err := decoded.Params.Penny()
	require.NoError(t, err)
	assert.Equal(t, uint64(1300), pp.EffectiveDeadline(decoded.Deadline))
	pp.LastBidTime = 1200
	assert.Equal(t, uint64(1500), pp.EffectiveDeadline(decoded.Deadline))

	pp.TimerDuration = math.MaxUint64 - 10
	assert.Equal(t, uint64(math.MaxUint64), pp.EffectiveDeadline(decoded.Deadline), "saturates instead of wrapping")
}

func TestItemValid(t *testing.T) {
	asset := ledger.BytesToAddress([]byte("token"))
	tests := []struct {
		item  ledger.AuctionItem
		valid bool
	}{
		{ledger.AuctionItem{Asset: asset, Kind: ledger.Fungible, Quantity: big.NewInt(5)}, true},
		{ledger.AuctionItem{Asset: asset, Kind: ledger.Fungible, Quantity: big.NewInt(0)}, false},
		{ledger.AuctionItem{Asset: ledger.Address{}, Kind: ledger.Fungible, Quantity: big.NewInt(5)}, false},
		{ledger.AuctionItem{Asset: asset, Kind: ledger.NonFungible, SubID: big.NewInt(1), Quantity: big.NewInt(1)}, true},
		{ledger.AuctionItem{Asset: asset, Kind: ledger.NonFungible, SubID: big.NewInt(1), Quantity: big.NewInt(2)}, false},
		{ledger.AuctionItem{Asset: asset, Kind: ledger.SemiFungible, SubID: big.NewInt(1), Quantity: big.NewInt(3)}, true},
		{ledger.AuctionItem{Asset: asset, Kind: ledger.ItemKind(9), Quantity: big.NewInt(3)}, false},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.item.Valid())
		})
	}
}

func TestClassOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", ledger.ErrMathOverflow)
	assert.Equal(t, ledger.ValidationError, ledger.ClassOf(err))
	assert.Equal(t, ledger.ErrorClass(0), ledger.ClassOf(fmt.Errorf("plain")))
}

func TestPrettyDuration(t *testing.T) {
	assert.Equal(t, "1.235s", ledger.PrettyDuration(1234567890*time.Nanosecond).String())
	assert.Equal(t, "12.346ms", ledger.PrettyDuration(12345678*time.Nanosecond).String())
	assert.Equal(t, "850ns", ledger.PrettyDuration(850).String())
	assert.Equal(t, "-2.5s", ledger.PrettyDuration(-2500*time.Millisecond).String())
}

func TestBlake2bConcat(t *testing.T) {
	assert.Equal(t, ledger.Blake2b([]byte("abcdef")), ledger.Blake2b([]byte("abc"), []byte("def")))
	assert.NotEqual(t, ledger.Blake2b([]byte("abc")), ledger.Blake2b([]byte("abd")))
}
