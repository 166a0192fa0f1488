// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/johnqh/auctions-contracts/kv"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/lvldb"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	asset = ledger.BytesToAddress([]byte("asset"))
	alice = ledger.BytesToAddress([]byte("alice"))
	bob   = ledger.BytesToAddress([]byte("bob"))
)

func newCreator(t *testing.T) *state.Creator {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.NewCreator(db)
}

func TestStateReadWrite(t *testing.T) {
	st := newCreator(t).NewState()

	assert.Equal(t, 0, st.GetFungibleBalance(asset, alice).Sign())
	st.SetFungibleBalance(asset, alice, big.NewInt(100))
	assert.Equal(t, "100", st.GetFungibleBalance(asset, alice).String())

	assert.True(t, st.GetTokenOwner(asset, big.NewInt(7)).IsZero())
	st.SetTokenOwner(asset, big.NewInt(7), bob)
	assert.Equal(t, bob, st.GetTokenOwner(asset, big.NewInt(7)))

	st.SetSemiBalance(asset, big.NewInt(1), alice, big.NewInt(3))
	assert.Equal(t, "3", st.GetSemiBalance(asset, big.NewInt(1), alice).String())
	assert.Equal(t, 0, st.GetSemiBalance(asset, big.NewInt(2), alice).Sign())

	assert.Equal(t, uint64(1), st.GetNextAuctionID())
	st.SetNextAuctionID(5)
	assert.Equal(t, uint64(5), st.GetNextAuctionID())

	assert.Nil(t, st.GetAuction(1))
	assert.Nil(t, st.GetEscrow(1))
	assert.False(t, st.GetAdminConfig().Initialized)
	assert.NoError(t, st.Err())
}

func TestStateCheckpoint(t *testing.T) {
	st := newCreator(t).NewState()

	st.SetFungibleBalance(asset, alice, big.NewInt(100))
	cp := st.NewCheckpoint()
	st.SetFungibleBalance(asset, alice, big.NewInt(50))
	st.SetFungibleBalance(asset, bob, big.NewInt(50))
	assert.Equal(t, "50", st.GetFungibleBalance(asset, bob).String())

	st.RevertTo(cp)
	assert.Equal(t, "100", st.GetFungibleBalance(asset, alice).String())
	assert.Equal(t, 0, st.GetFungibleBalance(asset, bob).Sign())
}

func TestStageCommit(t *testing.T) {
	creator := newCreator(t)
	st := creator.NewState()

	cfg := &ledger.AdminConfig{Initialized: true, Owner: alice, FeeRate: ledger.DefaultFeeRate}
	st.SetAdminConfig(cfg)
	st.SetFeeVault(&ledger.FeeVault{Asset: asset, Amount: big.NewInt(9)})
	st.SetEscrow(&ledger.EscrowAccount{AuctionID: 1, PaymentAsset: asset, Balance: big.NewInt(150), ItemsHeld: true})
	st.SetFungibleBalance(asset, alice, big.NewInt(1))
	st.SetFungibleBalance(asset, alice, big.NewInt(0))

	stage := st.Stage()
	assert.Equal(t, 4, stage.Len())
	hash := stage.Hash()
	committed, err := stage.Commit()
	require.NoError(t, err)
	assert.Equal(t, hash, committed)

	fresh := creator.NewState()
	assert.Equal(t, cfg.String(), fresh.GetAdminConfig().String())
	assert.Equal(t, "9", fresh.GetFeeVault(asset).Amount.String())
	esc := fresh.GetEscrow(1)
	require.NotNil(t, esc)
	assert.Equal(t, "150", esc.Balance.String())
	assert.True(t, esc.ItemsHeld)
	assert.Equal(t, 0, fresh.GetFungibleBalance(asset, alice).Sign())
	assert.NoError(t, fresh.Err())
}

// gatedStore parks the first Get after arm until release is closed.
type gatedStore struct {
	kv.Store
	armed   int32
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) arm() {
	s.entered = make(chan struct{})
	s.release = make(chan struct{})
	atomic.StoreInt32(&s.armed, 1)
}

func (s *gatedStore) Get(key []byte) ([]byte, error) {
	v, err := s.Store.Get(key)
	if atomic.CompareAndSwapInt32(&s.armed, 1, 0) {
		close(s.entered)
		<-s.release
	}
	return v, err
}

func TestCommitWinsOverConcurrentLoad(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	store := &gatedStore{Store: db}

	seed := state.NewCreator(store).NewState()
	seed.SetFungibleBalance(asset, alice, big.NewInt(100))
	_, err = seed.Stage().Commit()
	require.NoError(t, err)

	// empty cache, so the next read goes to the store
	creator := state.NewCreator(store)
	st := creator.NewState()
	st.SetFungibleBalance(asset, alice, big.NewInt(150))
	stage := st.Stage()

	store.arm()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		creator.NewState().GetFungibleBalance(asset, alice)
	}()
	<-store.entered

	// the reader holds the stale 100 while the commit lands
	go func() {
		defer wg.Done()
		_, err := stage.Commit()
		assert.NoError(t, err)
	}()
	time.Sleep(20 * time.Millisecond)
	close(store.release)
	wg.Wait()

	assert.Equal(t, "150", creator.NewState().GetFungibleBalance(asset, alice).String())
}

func TestCommitToSharesCallerBatch(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	creator := state.NewCreator(db)

	st := creator.NewState()
	st.SetFungibleBalance(asset, bob, big.NewInt(5))

	batch := db.NewBatch()
	require.NoError(t, batch.Put([]byte("block"), []byte{1}))
	_, err = st.Stage().CommitTo(batch)
	require.NoError(t, err)

	has, err := db.Has([]byte("block"))
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "5", creator.NewState().GetFungibleBalance(asset, bob).String())
}
