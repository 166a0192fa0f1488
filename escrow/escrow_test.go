// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package escrow_test

import (
	"math/big"
	"testing"

	"github.com/johnqh/auctions-contracts/escrow"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/lvldb"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdc   = ledger.BytesToAddress([]byte("usdc"))
	nft    = ledger.BytesToAddress([]byte("nft"))
	semi   = ledger.BytesToAddress([]byte("semi"))
	dealer = ledger.BytesToAddress([]byte("dealer"))
	alice  = ledger.BytesToAddress([]byte("alice"))
	bob    = ledger.BytesToAddress([]byte("bob"))
)

type recorder struct {
	count int
}

func (r *recorder) AddTransfer(asset ledger.Address, kind ledger.ItemKind, subID *big.Int, sender, recipient ledger.Address, amount *big.Int) {
	r.count++
}

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewCreator(db).NewState()
	st.SetFungibleBalance(usdc, alice, big.NewInt(1000))
	st.SetFungibleBalance(usdc, bob, big.NewInt(1000))
	st.SetTokenOwner(nft, big.NewInt(1), dealer)
	st.SetSemiBalance(semi, big.NewInt(9), dealer, big.NewInt(10))
	return st
}

func newRecord(id uint64) *ledger.AuctionRecord {
	return &ledger.AuctionRecord{
		ID:           id,
		Dealer:       dealer,
		PaymentAsset: usdc,
		CurrentBid:   new(big.Int),
		Items: []*ledger.AuctionItem{
			{Asset: nft, Kind: ledger.NonFungible, SubID: big.NewInt(1), Quantity: big.NewInt(1)},
			{Asset: semi, Kind: ledger.SemiFungible, SubID: big.NewInt(9), Quantity: big.NewInt(4)},
		},
	}
}

func TestStateTransferer(t *testing.T) {
	st := newState(t)
	tr := escrow.NewStateTransferer(st)

	require.NoError(t, tr.Transfer(usdc, ledger.Fungible, alice, bob, nil, big.NewInt(300)))
	assert.Equal(t, "700", st.GetFungibleBalance(usdc, alice).String())
	assert.Equal(t, "1300", st.GetFungibleBalance(usdc, bob).String())

	assert.Error(t, tr.Transfer(usdc, ledger.Fungible, alice, bob, nil, big.NewInt(701)))
	assert.Error(t, tr.Transfer(usdc, ledger.Fungible, alice, bob, nil, big.NewInt(0)))
	assert.Error(t, tr.Transfer(usdc, ledger.Fungible, alice, ledger.Address{}, nil, big.NewInt(1)))

	assert.Error(t, tr.Transfer(nft, ledger.NonFungible, alice, bob, big.NewInt(1), big.NewInt(1)))
	assert.Error(t, tr.Transfer(nft, ledger.NonFungible, dealer, bob, big.NewInt(2), big.NewInt(1)))
	require.NoError(t, tr.Transfer(nft, ledger.NonFungible, dealer, bob, big.NewInt(1), big.NewInt(1)))
	assert.Equal(t, bob, st.GetTokenOwner(nft, big.NewInt(1)))

	require.NoError(t, tr.Transfer(semi, ledger.SemiFungible, dealer, bob, big.NewInt(9), big.NewInt(4)))
	assert.Equal(t, "6", st.GetSemiBalance(semi, big.NewInt(9), dealer).String())
	assert.Equal(t, "4", st.GetSemiBalance(semi, big.NewInt(9), bob).String())
	assert.Error(t, tr.Transfer(semi, ledger.SemiFungible, dealer, bob, big.NewInt(9), big.NewInt(7)))
}

func TestDepositAndRelease(t *testing.T) {
	st := newState(t)
	rec := &recorder{}
	e := escrow.New(st, escrow.NewStateTransferer(st), rec)
	auction := newRecord(1)

	require.NoError(t, e.DepositItems(auction))
	assert.Equal(t, ledger.AuctionModuleAddr, st.GetTokenOwner(nft, big.NewInt(1)))
	assert.Equal(t, "4", st.GetSemiBalance(semi, big.NewInt(9), ledger.AuctionModuleAddr).String())
	assert.Equal(t, 2, rec.count)
	assert.ErrorIs(t, e.DepositItems(auction), escrow.ErrEscrowExists)

	require.NoError(t, e.ReleaseItems(auction, alice))
	assert.Equal(t, alice, st.GetTokenOwner(nft, big.NewInt(1)))
	assert.Equal(t, "4", st.GetSemiBalance(semi, big.NewInt(9), alice).String())

	assert.ErrorIs(t, e.ReleaseItems(auction, dealer), escrow.ErrItemsNotHeld)
}

func TestDepositFailureIsReverted(t *testing.T) {
	st := newState(t)
	e := escrow.New(st, escrow.NewStateTransferer(st), nil)
	auction := newRecord(1)
	auction.Items[1].Quantity = big.NewInt(11)

	cp := st.NewCheckpoint()
	err := e.DepositItems(auction)
	assert.ErrorIs(t, err, escrow.ErrTransferFailed)
	assert.Equal(t, ledger.TransferError, ledger.ClassOf(err))
	st.RevertTo(cp)

	assert.Equal(t, dealer, st.GetTokenOwner(nft, big.NewInt(1)))
	assert.Nil(t, st.GetEscrow(1))
}

func TestPaymentConservation(t *testing.T) {
	st := newState(t)
	e := escrow.New(st, escrow.NewStateTransferer(st), nil)
	auction := newRecord(1)
	require.NoError(t, e.DepositItems(auction))

	require.NoError(t, e.PullPayment(1, alice, big.NewInt(150)))
	require.NoError(t, e.PullPayment(1, bob, big.NewInt(200)))
	require.NoError(t, e.PushPayment(1, alice, big.NewInt(150)))
	assert.ErrorIs(t, e.PushPayment(1, alice, big.NewInt(201)), escrow.ErrInsufficientEscrow)

	acc, err := e.Account(1)
	require.NoError(t, err)
	assert.Equal(t, "200", acc.Balance.String())
	assert.Equal(t, "1000", st.GetFungibleBalance(usdc, alice).String())
	assert.Equal(t, "200", st.GetFungibleBalance(usdc, ledger.AuctionModuleAddr).String())

	fee, net, err := e.PayOut(1, dealer, big.NewInt(200), 50)
	require.NoError(t, err)
	assert.Equal(t, "1", fee.String())
	assert.Equal(t, "199", net.String())
	assert.Equal(t, "199", st.GetFungibleBalance(usdc, dealer).String())
	assert.Equal(t, "1", st.GetFeeVault(usdc).Amount.String())

	// custody holds exactly escrow balances plus accrued fees
	acc, _ = e.Account(1)
	custody := st.GetFungibleBalance(usdc, ledger.AuctionModuleAddr)
	assert.Zero(t, custody.Cmp(new(big.Int).Add(acc.Balance, st.GetFeeVault(usdc).Amount)))

	claimed, err := e.ClaimFees(usdc, bob)
	require.NoError(t, err)
	assert.Equal(t, "1", claimed.String())
	assert.Equal(t, 0, st.GetFeeVault(usdc).Amount.Sign())
	assert.Equal(t, 0, st.GetFungibleBalance(usdc, ledger.AuctionModuleAddr).Sign())

	claimed, err = e.ClaimFees(usdc, bob)
	require.NoError(t, err)
	assert.Equal(t, 0, claimed.Sign())
}

func TestStreamPayment(t *testing.T) {
	st := newState(t)
	e := escrow.New(st, escrow.NewStateTransferer(st), nil)
	require.NoError(t, e.DepositItems(newRecord(1)))

	fee, net, err := e.StreamPayment(1, alice, dealer, big.NewInt(1000), 50)
	require.NoError(t, err)
	assert.Equal(t, "5", fee.String())
	assert.Equal(t, "995", net.String())
	assert.Equal(t, "995", st.GetFungibleBalance(usdc, dealer).String())
	acc, _ := e.Account(1)
	assert.Equal(t, 0, acc.Balance.Sign())

	_, _, err = e.StreamPayment(1, alice, dealer, big.NewInt(1), 50)
	assert.ErrorIs(t, err, escrow.ErrTransferFailed)
	_, err = e.Account(2)
	assert.ErrorIs(t, err, escrow.ErrEscrowNotFound)
}
