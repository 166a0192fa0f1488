// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package notify_test

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/fortytw2/leaktest"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/notify"
	"github.com/johnqh/auctions-contracts/script/admin"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receipts(t *testing.T) tx.Receipts {
	bidder := ledger.BytesToAddress([]byte("bidder"))
	bid, err := rlp.EncodeToBytes(&auction.BidPlaced{Bidder: bidder, Amount: big.NewInt(500)})
	require.NoError(t, err)
	rate, err := rlp.EncodeToBytes(&admin.FeeRateChanged{Old: 50, New: 100})
	require.NoError(t, err)

	owner := ledger.BytesToAddress([]byte("owner"))
	return tx.Receipts{
		{
			TxID:   ledger.Bytes32{1},
			Origin: bidder,
			Outputs: []*tx.Output{{Events: tx.Events{
				{Address: ledger.AuctionModuleAddr, Topics: []ledger.Bytes32{auction.BidPlacedEvent, ledger.Uint64ToBytes32(7)}, Data: bid},
				{Address: ledger.BytesToAddress([]byte("stranger")), Topics: []ledger.Bytes32{{1}, {2}}},
			}}},
		},
		{
			TxID:     ledger.Bytes32{2},
			Reverted: true,
		},
		{
			TxID:   ledger.Bytes32{3},
			Origin: owner,
			Outputs: []*tx.Output{{Events: tx.Events{
				{Address: ledger.AdminModuleAddr, Topics: []ledger.Bytes32{admin.FeeRateChangedEvent, ledger.BytesToBytes32(owner.Bytes())}, Data: rate},
			}}},
		},
	}
}

func TestFromReceipts(t *testing.T) {
	header := new(block.Builder).Timestamp(1234).Build().Header()
	ns := notify.FromReceipts(header, receipts(t))
	require.Len(t, ns, 2)

	assert.Equal(t, notify.ModuleAuction, ns[0].Module)
	assert.Equal(t, "BidPlaced", ns[0].Name)
	assert.Equal(t, uint64(7), ns[0].AuctionID)
	assert.Equal(t, uint64(1234), ns[0].BlockTime)
	assert.NotEmpty(t, ns[0].ID)
	decoded, ok := ns[0].Decoded.(*auction.BidPlaced)
	require.True(t, ok)
	assert.Equal(t, "500", decoded.Amount.String())
	assert.Equal(t, "events.auction.BidPlaced", ns[0].Subject("events"))

	assert.Equal(t, notify.ModuleAdmin, ns[1].Module)
	assert.Equal(t, "FeeRateChanged", ns[1].Name)
	assert.Equal(t, ledger.BytesToAddress([]byte("owner")).String(), ns[1].Caller)
	assert.Equal(t, &admin.FeeRateChanged{Old: 50, New: 100}, ns[1].Decoded)
	assert.NotEqual(t, ns[0].ID, ns[1].ID)

	data, err := json.Marshal(ns[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"BidPlaced"`)
}

func TestHub(t *testing.T) {
	defer leaktest.Check(t)()

	hub := notify.NewHub()
	defer hub.Close()

	ch := make(chan *notify.Notification, 4)
	sub := hub.Subscribe(ch)
	defer sub.Unsubscribe()

	header := new(block.Builder).Build().Header()
	notify.Multi{hub}.Publish(notify.FromReceipts(header, receipts(t)))

	for _, name := range []string{"BidPlaced", "FeeRateChanged"} {
		select {
		case n := <-ch:
			assert.Equal(t, name, n.Name)
		case <-time.After(time.Second):
			t.Fatal("notification not delivered")
		}
	}
}
