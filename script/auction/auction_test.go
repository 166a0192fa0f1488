// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/escrow"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/lvldb"
	"github.com/johnqh/auctions-contracts/script/auction"
	setypes "github.com/johnqh/auctions-contracts/script/types"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/xenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdc   = ledger.BytesToAddress([]byte("usdc"))
	nft    = ledger.BytesToAddress([]byte("nft"))
	semi   = ledger.BytesToAddress([]byte("semi"))
	owner  = ledger.BytesToAddress([]byte("owner"))
	dealer = ledger.BytesToAddress([]byte("dealer"))
	alice  = ledger.BytesToAddress([]byte("alice"))
	bob    = ledger.BytesToAddress([]byte("bob"))
	carol  = ledger.BytesToAddress([]byte("carol"))

	custody = ledger.AuctionModuleAddr
)

const startBalance = 1000000

type harness struct {
	t   *testing.T
	st  *state.State
	a   *auction.Auction
	now uint64
}

func newHarness(t *testing.T) *harness {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewCreator(db).NewState()
	st.SetAdminConfig(&ledger.AdminConfig{
		Initialized: true,
		Owner:       owner,
		FeeRate:     ledger.DefaultFeeRate,
	})
	for _, who := range []ledger.Address{alice, bob, carol} {
		st.SetFungibleBalance(usdc, who, big.NewInt(startBalance))
	}
	for i := int64(1); i <= 10; i++ {
		st.SetTokenOwner(nft, big.NewInt(i), dealer)
	}
	st.SetSemiBalance(semi, big.NewInt(7), dealer, big.NewInt(50))

	return &harness{t: t, st: st, a: auction.NewAuction(), now: 1000}
}

func (h *harness) exec(caller ledger.Address, ab *auction.AuctionBody) (*setypes.Output, error) {
	env := setypes.NewScriptEnv(h.st,
		&xenv.BlockContext{Number: 1, Time: h.now},
		&xenv.TransactionContext{Origin: caller},
		ledger.AuctionModuleAddr)
	return h.a.Handle(env, auction.AuctionEncodeBytes(ab), ledger.AuctionModuleAddr)
}

func (h *harness) mustExec(caller ledger.Address, ab *auction.AuctionBody) *setypes.Output {
	out, err := h.exec(caller, ab)
	require.NoError(h.t, err)
	return out
}

func (h *harness) create(ab *auction.AuctionBody) uint64 {
	out := h.mustExec(dealer, ab)
	var id uint64
	require.NoError(h.t, rlp.DecodeBytes(out.Data, &id))
	return id
}

func (h *harness) balance(who ledger.Address) string {
	return h.st.GetFungibleBalance(usdc, who).String()
}

func (h *harness) record(id uint64) *ledger.AuctionRecord {
	rec, err := auction.GetAuction(h.st, id)
	require.NoError(h.t, err)
	return rec
}

func (h *harness) usdcTotal() *big.Int {
	total := new(big.Int)
	for _, who := range []ledger.Address{alice, bob, carol, dealer, owner, custody} {
		total.Add(total, h.st.GetFungibleBalance(usdc, who))
	}
	return total
}

func nftItem(id int64) *ledger.AuctionItem {
	return &ledger.AuctionItem{Asset: nft, Kind: ledger.NonFungible, SubID: big.NewInt(id), Quantity: big.NewInt(1)}
}

func traditional(deadline uint64, start, inc, reserve int64, items ...*ledger.AuctionItem) *auction.AuctionBody {
	return &auction.AuctionBody{
		Opcode:       auction.OP_CREATE_TRADITIONAL,
		PaymentAsset: usdc,
		Items:        items,
		Deadline:     deadline,
		StartAmount:  big.NewInt(start),
		Increment:    big.NewInt(inc),
		ReservePrice: big.NewInt(reserve),
	}
}

func bid(id uint64, amount int64) *auction.AuctionBody {
	return &auction.AuctionBody{Opcode: auction.OP_BID_TRADITIONAL, AuctionID: id, Amount: big.NewInt(amount)}
}

func finalize(id uint64) *auction.AuctionBody {
	return &auction.AuctionBody{Opcode: auction.OP_FINALIZE, AuctionID: id}
}

func accept(id uint64) *auction.AuctionBody {
	return &auction.AuctionBody{Opcode: auction.OP_ACCEPT_BID, AuctionID: id}
}

func TestCreateTraditional(t *testing.T) {
	h := newHarness(t)
	semiItem := &ledger.AuctionItem{Asset: semi, Kind: ledger.SemiFungible, SubID: big.NewInt(7), Quantity: big.NewInt(20)}

	out := h.mustExec(dealer, traditional(2000, 1000, 100, 1500, nftItem(1), semiItem))
	var id uint64
	require.NoError(t, rlp.DecodeBytes(out.Data, &id))
	assert.Equal(t, uint64(1), id)

	rec := h.record(id)
	assert.Equal(t, dealer, rec.Dealer)
	assert.Equal(t, ledger.Traditional, rec.Type)
	assert.Equal(t, ledger.Active, rec.Status)
	assert.Equal(t, uint64(2000), rec.Deadline)
	assert.False(t, rec.HasBidder())
	assert.Len(t, rec.Items, 2)

	assert.Equal(t, custody, h.st.GetTokenOwner(nft, big.NewInt(1)))
	assert.Equal(t, "20", h.st.GetSemiBalance(semi, big.NewInt(7), custody).String())
	assert.Equal(t, "30", h.st.GetSemiBalance(semi, big.NewInt(7), dealer).String())

	acc := h.st.GetEscrow(id)
	require.NotNil(t, acc)
	assert.True(t, acc.ItemsHeld)

	events := out.Events
	require.Len(t, events, 1)
	assert.Equal(t, auction.AuctionCreatedEvent, events[0].Topics[0])
	assert.Equal(t, ledger.Uint64ToBytes32(id), events[0].Topics[1])
	assert.Len(t, out.Transfers, 2)

	// ids are sequential
	assert.Equal(t, uint64(2), h.create(traditional(2000, 1000, 100, 1500, nftItem(2))))
	assert.Equal(t, uint64(2), h.st.GetAdminConfig().AuctionCount)
}

func TestCreateValidation(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		ab   *auction.AuctionBody
		err  error
	}{
		{"no items", traditional(2000, 1000, 100, 0), auction.ErrInvalidItems},
		{"zero increment", traditional(2000, 1000, 0, 0, nftItem(1)), auction.ErrInvalidParams},
		{"deadline in the past", traditional(1000, 1000, 100, 0, nftItem(1)), auction.ErrInvalidParams},
		{"zero quantity", traditional(2000, 1000, 100, 0, &ledger.AuctionItem{Asset: semi, Kind: ledger.SemiFungible, SubID: big.NewInt(7), Quantity: new(big.Int)}), auction.ErrInvalidItems},
		{"dutch start not above minimum", &auction.AuctionBody{
			Opcode: auction.OP_CREATE_DUTCH, PaymentAsset: usdc, Items: []*ledger.AuctionItem{nftItem(1)}, Deadline: 5000,
			StartPrice: big.NewInt(500), DecreaseAmount: big.NewInt(10), DecreaseInterval: 60, MinimumPrice: big.NewInt(500),
		}, auction.ErrInvalidParams},
		{"dutch zero interval", &auction.AuctionBody{
			Opcode: auction.OP_CREATE_DUTCH, PaymentAsset: usdc, Items: []*ledger.AuctionItem{nftItem(1)}, Deadline: 5000,
			StartPrice: big.NewInt(1000), DecreaseAmount: big.NewInt(10), MinimumPrice: big.NewInt(500),
		}, auction.ErrInvalidParams},
		{"penny zero increment", &auction.AuctionBody{
			Opcode: auction.OP_CREATE_PENNY, PaymentAsset: usdc, Items: []*ledger.AuctionItem{nftItem(1)},
		}, auction.ErrInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.exec(dealer, tt.ab)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}

	// nothing leaked out of the failed creations
	assert.Equal(t, dealer, h.st.GetTokenOwner(nft, big.NewInt(1)))
	assert.Equal(t, uint64(1), h.st.GetNextAuctionID())
}

func TestCreateDealerDoesNotOwnItem(t *testing.T) {
	h := newHarness(t)
	out, err := h.exec(alice, traditional(2000, 1000, 100, 0, nftItem(1)))
	assert.True(t, errors.Is(err, auction.ErrTransferFailed))
	assert.Empty(t, out.Events)
	assert.Empty(t, out.Transfers)
	assert.Equal(t, uint64(1), h.st.GetNextAuctionID())
	assert.Nil(t, h.st.GetAuction(1))
}

func TestCreateRequiresInitialized(t *testing.T) {
	h := newHarness(t)
	h.st.SetAdminConfig(&ledger.AdminConfig{})
	_, err := h.exec(dealer, traditional(2000, 1000, 100, 0, nftItem(1)))
	assert.Equal(t, ledger.ErrNotInitialized, err)
}

// bids outbid each other, the reserve is met and the winner takes the items
func TestTraditionalReserveMet(t *testing.T) {
	h := newHarness(t)
	total := h.usdcTotal()
	id := h.create(traditional(2000, 1000, 100, 1500, nftItem(1)))

	_, err := h.exec(alice, bid(id, 999))
	assert.Equal(t, auction.ErrBidTooLow, err)

	h.mustExec(alice, bid(id, 1000))
	assert.Equal(t, "999000", h.balance(alice))
	assert.Equal(t, "1000", h.balance(custody))

	_, err = h.exec(bob, bid(id, 1099))
	assert.Equal(t, auction.ErrBidTooLow, err)

	out := h.mustExec(bob, bid(id, 1100))
	assert.Equal(t, startBalance, int(h.st.GetFungibleBalance(usdc, alice).Int64()))
	assert.Equal(t, "998900", h.balance(bob))
	require.Len(t, out.Events, 2)
	assert.Equal(t, auction.BidRefundedEvent, out.Events[0].Topics[0])
	assert.Equal(t, auction.BidPlacedEvent, out.Events[1].Topics[0])

	h.mustExec(alice, bid(id, 2000))
	params, err := auction.GetTraditionalParams(h.st, id)
	require.NoError(t, err)
	assert.True(t, params.ReserveMet)
	assert.Zero(t, total.Cmp(h.usdcTotal()))

	_, err = h.exec(carol, finalize(id))
	assert.Equal(t, auction.ErrNotEnded, err)

	h.now = 2001
	_, err = h.exec(bob, bid(id, 5000))
	assert.Equal(t, auction.ErrDeadlinePassed, err)

	out = h.mustExec(carol, finalize(id))
	rec := h.record(id)
	assert.Equal(t, ledger.Finalized, rec.Status)
	assert.Equal(t, uint64(2001), rec.FinalizedAt)
	assert.Equal(t, alice, rec.HighBidder)
	assert.Equal(t, alice, h.st.GetTokenOwner(nft, big.NewInt(1)))
	assert.Equal(t, "1990", h.balance(dealer))
	assert.Equal(t, "10", h.st.GetFeeVault(usdc).Amount.String())
	assert.Equal(t, "10", h.balance(custody))
	assert.Equal(t, auction.AuctionFinalizedEvent, out.Events[0].Topics[0])
	assert.Zero(t, total.Cmp(h.usdcTotal()))

	acc := h.st.GetEscrow(id)
	assert.Zero(t, acc.Balance.Sign())
	assert.False(t, acc.ItemsHeld)

	_, err = h.exec(carol, finalize(id))
	assert.Equal(t, auction.ErrAlreadyTerminal, err)
	_, err = h.exec(bob, bid(id, 5000))
	assert.Equal(t, auction.ErrNotActive, err)
}

func TestTraditionalReserveEqualIsMet(t *testing.T) {
	h := newHarness(t)
	id := h.create(traditional(2000, 1000, 100, 1500, nftItem(1)))
	h.mustExec(alice, bid(id, 1500))

	params, err := auction.GetTraditionalParams(h.st, id)
	require.NoError(t, err)
	assert.True(t, params.ReserveMet)
}

// the dealer accepts a bid below reserve within the acceptance window
func TestTraditionalAcceptBelowReserve(t *testing.T) {
	h := newHarness(t)
	id := h.create(traditional(2000, 1000, 100, 1500, nftItem(1)))
	h.mustExec(alice, bid(id, 1000))

	_, err := h.exec(dealer, accept(id))
	assert.Equal(t, auction.ErrNotExpired, err)

	h.now = 2001
	out := h.mustExec(carol, finalize(id))
	assert.Equal(t, auction.AuctionExpiredEvent, out.Events[0].Topics[0])
	rec := h.record(id)
	assert.Equal(t, ledger.Expired, rec.Status)
	params, _ := rec.Params.Traditional()
	assert.Equal(t, uint64(2001+ledger.AcceptancePeriod), params.AcceptanceDeadline)

	// still escrowed
	assert.Equal(t, "1000", h.balance(custody))
	assert.Equal(t, custody, h.st.GetTokenOwner(nft, big.NewInt(1)))

	_, err = h.exec(alice, bid(id, 5000))
	assert.Equal(t, auction.ErrNotActive, err)
	_, err = h.exec(alice, accept(id))
	assert.Equal(t, auction.ErrNotDealer, err)

	h.now = params.AcceptanceDeadline
	out = h.mustExec(dealer, accept(id))
	assert.Equal(t, auction.BidAcceptedEvent, out.Events[0].Topics[0])
	rec = h.record(id)
	assert.Equal(t, ledger.Finalized, rec.Status)
	assert.Equal(t, alice, h.st.GetTokenOwner(nft, big.NewInt(1)))
	assert.Equal(t, "995", h.balance(dealer))
	assert.Equal(t, "5", h.st.GetFeeVault(usdc).Amount.String())

	_, err = h.exec(dealer, accept(id))
	assert.Equal(t, auction.ErrNotExpired, err)
}

// nobody accepts, the bid and the items go back
func TestTraditionalExpiredThenRefunded(t *testing.T) {
	h := newHarness(t)
	id := h.create(traditional(2000, 1000, 100, 1500, nftItem(1)))
	h.mustExec(alice, bid(id, 1000))

	h.now = 2001
	h.mustExec(carol, finalize(id))

	h.now = 2001 + ledger.AcceptancePeriod
	_, err := h.exec(carol, finalize(id))
	assert.Equal(t, auction.ErrAcceptancePeriodActive, err)

	h.now++
	_, err = h.exec(dealer, accept(id))
	assert.Equal(t, auction.ErrAcceptanceWindowClosed, err)

	out := h.mustExec(carol, finalize(id))
	assert.Equal(t, auction.AuctionRefundedEvent, out.Events[0].Topics[0])
	rec := h.record(id)
	assert.Equal(t, ledger.Refunded, rec.Status)
	assert.Equal(t, dealer, h.st.GetTokenOwner(nft, big.NewInt(1)))
	assert.Equal(t, "1000000", h.balance(alice))
	assert.Equal(t, "0", h.balance(custody))
	assert.Equal(t, "0", h.balance(dealer))
}

func TestTraditionalNoBids(t *testing.T) {
	h := newHarness(t)
	id := h.create(traditional(2000, 1000, 100, 0, nftItem(1)))

	h.now = 2001
	h.mustExec(carol, finalize(id))
	assert.Equal(t, ledger.Refunded, h.record(id).Status)
	assert.Equal(t, dealer, h.st.GetTokenOwner(nft, big.NewInt(1)))
}

func TestBidTransferFailureReverts(t *testing.T) {
	h := newHarness(t)
	id := h.create(traditional(2000, 1000, 100, 0, nftItem(1)))
	h.mustExec(alice, bid(id, 1000))

	h.a.WithTransferer(func(st *state.State) escrow.Transferer { return &failingTransferer{escrow.NewStateTransferer(st)} })

	out, err := h.exec(bob, bid(id, 1200))
	assert.True(t, errors.Is(err, auction.ErrTransferFailed))
	assert.Equal(t, ledger.TransferError, ledger.ClassOf(err))
	assert.Empty(t, out.Events)
	assert.Empty(t, out.Transfers)

	rec := h.record(id)
	assert.Equal(t, alice, rec.HighBidder)
	assert.Equal(t, "1000", rec.CurrentBid.String())
	assert.Equal(t, "1000000", h.balance(bob))
	assert.Equal(t, "1000", h.balance(custody))
}

// failingTransferer refuses every payout from custody.
type failingTransferer struct {
	escrow.Transferer
}

func (f *failingTransferer) Transfer(asset ledger.Address, kind ledger.ItemKind, from, to ledger.Address, subID, quantity *big.Int) error {
	if from == custody {
		return errors.New("recipient rejected")
	}
	return f.Transferer.Transfer(asset, kind, from, to, subID, quantity)
}

func dutch() *auction.AuctionBody {
	return &auction.AuctionBody{
		Opcode:           auction.OP_CREATE_DUTCH,
		PaymentAsset:     usdc,
		Items:            []*ledger.AuctionItem{nftItem(3)},
		Deadline:         5000,
		StartPrice:       big.NewInt(1000),
		DecreaseAmount:   big.NewInt(100),
		DecreaseInterval: 60,
		MinimumPrice:     big.NewInt(500),
	}
}

func buy(id uint64, maxPrice int64) *auction.AuctionBody {
	return &auction.AuctionBody{Opcode: auction.OP_BUY_DUTCH, AuctionID: id, MaxPrice: big.NewInt(maxPrice)}
}

func TestDutchPrice(t *testing.T) {
	p := &ledger.DutchParams{
		StartPrice:       big.NewInt(1000),
		DecreaseAmount:   big.NewInt(100),
		DecreaseInterval: 60,
		MinimumPrice:     big.NewInt(500),
		StartTime:        1000,
	}
	tests := []struct {
		now   uint64
		price string
	}{
		{900, "1000"},
		{1000, "1000"},
		{1059, "1000"},
		{1060, "900"},
		{1130, "800"},
		{1300, "500"},
		{1000000, "500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.price, auction.DutchPrice(p, tt.now).String(), "now=%d", tt.now)
	}
}

func TestDutchBuy(t *testing.T) {
	h := newHarness(t)
	id := h.create(dutch())

	h.now = 1130
	price, err := auction.GetDutchCurrentPrice(h.st, id, h.now)
	require.NoError(t, err)
	assert.Equal(t, "800", price.String())

	_, err = h.exec(alice, buy(id, 700))
	assert.Equal(t, auction.ErrPriceAboveLimit, err)
	assert.Equal(t, ledger.Active, h.record(id).Status)

	out := h.mustExec(alice, buy(id, 0))
	assert.Equal(t, auction.DutchPurchasedEvent, out.Events[0].Topics[0])
	rec := h.record(id)
	assert.Equal(t, ledger.Finalized, rec.Status)
	assert.Equal(t, alice, rec.HighBidder)
	assert.Equal(t, "800", rec.CurrentBid.String())
	assert.Equal(t, alice, h.st.GetTokenOwner(nft, big.NewInt(3)))
	assert.Equal(t, "999200", h.balance(alice))
	assert.Equal(t, "796", h.balance(dealer))
	assert.Equal(t, "4", h.st.GetFeeVault(usdc).Amount.String())

	_, err = h.exec(bob, buy(id, 0))
	assert.Equal(t, auction.ErrNotActive, err)
}

func TestDutchUnsold(t *testing.T) {
	h := newHarness(t)
	id := h.create(dutch())

	_, err := h.exec(carol, finalize(id))
	assert.Equal(t, auction.ErrNotEnded, err)

	h.now = 5001
	_, err = h.exec(alice, buy(id, 0))
	assert.Equal(t, auction.ErrDeadlinePassed, err)

	h.mustExec(carol, finalize(id))
	assert.Equal(t, ledger.Refunded, h.record(id).Status)
	assert.Equal(t, dealer, h.st.GetTokenOwner(nft, big.NewInt(3)))
}

func penny(increment int64) *auction.AuctionBody {
	return &auction.AuctionBody{
		Opcode:          auction.OP_CREATE_PENNY,
		PaymentAsset:    usdc,
		Items:           []*ledger.AuctionItem{nftItem(4)},
		IncrementAmount: big.NewInt(increment),
	}
}

func pennyBid(id uint64) *auction.AuctionBody {
	return &auction.AuctionBody{Opcode: auction.OP_BID_PENNY, AuctionID: id}
}

func TestPennyAuction(t *testing.T) {
	h := newHarness(t)
	total := h.usdcTotal()
	id := h.create(penny(1000))

	deadline, err := auction.GetPennyDeadline(h.st, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000+ledger.PennyTimerDuration), deadline)

	h.now = 1200
	h.mustExec(alice, pennyBid(id))
	assert.Equal(t, "999000", h.balance(alice))
	assert.Equal(t, "995", h.balance(dealer))
	assert.Equal(t, "5", h.st.GetFeeVault(usdc).Amount.String())

	deadline, _ = auction.GetPennyDeadline(h.st, id)
	assert.Equal(t, uint64(1500), deadline)

	h.now = 1500
	h.mustExec(bob, pennyBid(id))
	params, err := auction.GetPennyParams(h.st, id)
	require.NoError(t, err)
	assert.Equal(t, "2000", params.TotalPaid.String())
	assert.Equal(t, uint64(1500), params.LastBidTime)
	assert.Equal(t, "1990", h.balance(dealer))
	assert.Zero(t, total.Cmp(h.usdcTotal()))

	_, err = h.exec(carol, finalize(id))
	assert.Equal(t, auction.ErrNotEnded, err)

	h.now = 1801
	before := h.record(id)
	_, err = h.exec(carol, pennyBid(id))
	assert.Equal(t, auction.ErrTimerExpired, err)
	after := h.record(id)
	assert.Equal(t, before.HighBidder, after.HighBidder)
	assert.Equal(t, before.CurrentBid.String(), after.CurrentBid.String())
	assert.Equal(t, "1000000", h.balance(carol))

	h.mustExec(carol, finalize(id))
	rec := h.record(id)
	assert.Equal(t, ledger.Finalized, rec.Status)
	assert.Equal(t, bob, h.st.GetTokenOwner(nft, big.NewInt(4)))
	assert.Equal(t, "10", h.balance(custody))
}

func TestPennyWithoutBids(t *testing.T) {
	h := newHarness(t)
	ab := penny(1000)
	ab.TimerDuration = 60
	id := h.create(ab)

	h.now = 1061
	h.mustExec(carol, finalize(id))
	assert.Equal(t, ledger.Refunded, h.record(id).Status)
	assert.Equal(t, dealer, h.st.GetTokenOwner(nft, big.NewInt(4)))
}

func TestPaused(t *testing.T) {
	h := newHarness(t)
	id := h.create(traditional(2000, 1000, 100, 0, nftItem(1)))
	h.mustExec(alice, bid(id, 1000))

	cfg := h.st.GetAdminConfig()
	cfg.Paused = true
	h.st.SetAdminConfig(cfg)

	_, err := h.exec(dealer, traditional(2000, 1000, 100, 0, nftItem(2)))
	assert.Equal(t, auction.ErrPaused, err)
	_, err = h.exec(bob, bid(id, 1100))
	assert.Equal(t, auction.ErrPaused, err)
	assert.Equal(t, ledger.AuthorizationError, ledger.ClassOf(err))

	h.now = 2001
	_, err = h.exec(carol, finalize(id))
	assert.Equal(t, auction.ErrPaused, err)

	cfg.Paused = false
	h.st.SetAdminConfig(cfg)
	h.mustExec(carol, finalize(id))
}

func TestWrongAuctionType(t *testing.T) {
	h := newHarness(t)
	id := h.create(dutch())

	_, err := h.exec(alice, bid(id, 1000))
	assert.Equal(t, auction.ErrWrongType, err)
	_, err = h.exec(alice, pennyBid(id))
	assert.Equal(t, auction.ErrWrongType, err)
	_, err = h.exec(alice, bid(99, 1000))
	assert.Equal(t, auction.ErrAuctionNotFound, err)

	_, err = auction.GetPennyParams(h.st, id)
	assert.Equal(t, ledger.ErrWrongType, err)
}

func TestUnknownOpcode(t *testing.T) {
	h := newHarness(t)
	out, err := h.exec(alice, &auction.AuctionBody{Opcode: 99})
	assert.Error(t, err)
	assert.NotEmpty(t, out.Data)
}

func TestQueries(t *testing.T) {
	h := newHarness(t)
	id := h.create(traditional(2000, 1000, 100, 0, nftItem(5)))
	h.mustExec(alice, bid(id, 1000))

	acc, err := auction.GetEscrowAccount(h.st, id)
	require.NoError(t, err)
	assert.Equal(t, "1000", acc.Balance.String())
	assert.True(t, acc.ItemsHeld)

	_, err = auction.GetEscrowAccount(h.st, 42)
	assert.Equal(t, auction.ErrAuctionNotFound, err)
	_, err = auction.GetAuction(h.st, 42)
	assert.Equal(t, auction.ErrAuctionNotFound, err)

	cfg, err := auction.GetAdminConfig(h.st)
	require.NoError(t, err)
	assert.Equal(t, owner, cfg.Owner)

	vault, err := auction.GetFeeVault(h.st, usdc)
	require.NoError(t, err)
	assert.Zero(t, vault.Amount.Sign())

	bal, err := auction.GetBalance(h.st, usdc, nil, alice)
	require.NoError(t, err)
	assert.Equal(t, "999000", bal.String())
	bal, err = auction.GetBalance(h.st, semi, big.NewInt(7), dealer)
	require.NoError(t, err)
	assert.Equal(t, "50", bal.String())

	holder, err := auction.GetOwner(h.st, nft, big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, custody, holder)
}
