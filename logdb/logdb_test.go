// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	t0 := ledger.BytesToBytes32([]byte("topic0"))
	t1 := ledger.BytesToBytes32([]byte("topic1"))
	addr := ledger.AuctionModuleAddr
	txEvent := &tx.Event{
		Address: addr,
		Topics:  []ledger.Bytes32{t0, t1},
		Data:    []byte{0xc1, 0x80},
	}

	header := new(block.Builder).Build().Header()
	for i := 0; i < 100; i++ {
		require.NoError(t, db.Prepare(header).
			Add(ledger.BytesToBytes32([]byte("txID")), ledger.BytesToAddress([]byte("txOrigin")), tx.Events{txEvent}, nil).Commit())
		header = new(block.Builder).ParentID(header.ID()).Build().Header()
	}

	limit := 5
	es, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		Range: &logdb.Range{
			Unit: logdb.Block,
			From: 0,
			To:   10,
		},
		Options: &logdb.Options{
			Offset: 0,
			Limit:  uint64(limit),
		},
		Order: logdb.DESC,
		CriteriaSet: []*logdb.EventCriteria{
			{Address: &addr},
			{Address: &addr, Topics: [5]*ledger.Bytes32{&t0, &t1}},
		},
	})
	require.NoError(t, err)
	require.Len(t, es, limit)
	assert.Equal(t, uint32(10), es[0].BlockNumber)
	assert.Equal(t, t1, *es[0].Topics[1])
	assert.Nil(t, es[0].Topics[2])
	assert.Equal(t, []byte{0xc1, 0x80}, es[0].Data)

	other := ledger.BytesToBytes32([]byte("other"))
	es, err = db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Topics: [5]*ledger.Bytes32{nil, &other}}},
	})
	require.NoError(t, err)
	assert.Empty(t, es)

	all, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 100)
}

func TestTransfers(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	from := ledger.BytesToAddress([]byte("from"))
	to := ledger.BytesToAddress([]byte("to"))
	asset := ledger.BytesToAddress([]byte("nft"))
	header := new(block.Builder).Build().Header()
	count := 100
	for i := 0; i < count; i++ {
		transLog := &tx.Transfer{
			Asset:     asset,
			Kind:      ledger.NonFungible,
			SubID:     big.NewInt(int64(i)),
			Sender:    from,
			Recipient: to,
			Amount:    big.NewInt(1),
		}
		header = new(block.Builder).ParentID(header.ID()).Build().Header()
		require.NoError(t, db.Prepare(header).Add(ledger.Bytes32{}, from, nil, tx.Transfers{transLog}).Commit())
	}

	tf := &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{
			{TxOrigin: &from, Recipient: &to},
			{Asset: &asset},
		},
		Range: &logdb.Range{
			Unit: logdb.Block,
			From: 0,
			To:   1000,
		},
		Options: &logdb.Options{
			Offset: 0,
			Limit:  uint64(count),
		},
		Order: logdb.DESC,
	}
	ts, err := db.FilterTransfers(context.Background(), tf)
	require.NoError(t, err)
	require.Len(t, ts, count)
	assert.Equal(t, ledger.NonFungible, ts[0].Kind)
	assert.Equal(t, big.NewInt(99), ts[0].SubID)
	assert.Equal(t, "1", ts[0].Amount.String())
}

func TestInsertReceiptsSkipsReverted(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	ev := &tx.Event{Address: ledger.AuctionModuleAddr, Topics: []ledger.Bytes32{{1}}}
	receipts := tx.Receipts{
		{TxID: ledger.Bytes32{1}, Outputs: []*tx.Output{{Events: tx.Events{ev}}}},
		{TxID: ledger.Bytes32{2}, Reverted: true},
	}
	header := new(block.Builder).Build().Header()
	require.NoError(t, db.Prepare(header).InsertReceipts(receipts).Commit())

	es, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, es, 1)
	assert.Equal(t, ledger.Bytes32{1}, es[0].TxID)
}

func BenchmarkLog(b *testing.B) {
	db, err := logdb.New(filepath.Join(b.TempDir(), "log.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	l := &tx.Event{
		Address: ledger.AuctionModuleAddr,
		Topics:  []ledger.Bytes32{ledger.BytesToBytes32([]byte("topic0")), ledger.BytesToBytes32([]byte("topic1"))},
		Data:    []byte("data"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		header := new(block.Builder).Build().Header()
		batch := db.Prepare(header)
		for j := 0; j < 100; j++ {
			batch.Add(ledger.BytesToBytes32([]byte("txID")), ledger.BytesToAddress([]byte("txOrigin")), tx.Events{l}, nil)
		}
		if err := batch.Commit(); err != nil {
			b.Fatal(err)
		}
	}
}
