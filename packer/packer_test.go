// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/genesis"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/lvldb"
	"github.com/johnqh/auctions-contracts/packer"
	"github.com/johnqh/auctions-contracts/script"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	t       *testing.T
	chain   *chain.Chain
	creator *state.Creator
	packer  *packer.Packer
	nonce   uint64
}

func newEnv(t *testing.T) *env {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	creator := state.NewCreator(kv)
	b0, stage, err := genesis.NewDevnet().Build(creator)
	require.NoError(t, err)
	_, err = stage.Commit()
	require.NoError(t, err)

	c, err := chain.New(kv, b0)
	require.NoError(t, err)

	master := genesis.DevAccounts()[0]
	return &env{
		t:       t,
		chain:   c,
		creator: creator,
		packer:  packer.New(c, creator, script.NewScriptEngine(nil), master.Address),
	}
}

func (e *env) auctionTx(from genesis.DevAccount, ab *auction.AuctionBody) *tx.Transaction {
	data, err := script.EncodeScriptData(ab)
	require.NoError(e.t, err)
	e.nonce++
	trx := new(tx.Builder).
		ChainTag(e.chain.Tag()).
		BlockRef(tx.NewBlockRef(e.chain.BestBlock().Header().Number())).
		Expiration(100).
		Nonce(e.nonce).
		Clause(tx.NewClause(ledger.AuctionModuleAddr).WithData(data)).
		Build()
	sig, err := crypto.Sign(trx.SigningHash().Bytes(), from.PrivateKey)
	require.NoError(e.t, err)
	return trx.WithSignature(sig)
}

func (e *env) pack(at uint64, txs ...*tx.Transaction) (*block.Block, tx.Receipts) {
	best := e.chain.BestBlock().Header()
	flow, err := e.packer.Mock(best, at)
	require.NoError(e.t, err)
	for _, trx := range txs {
		require.NoError(e.t, flow.Adopt(trx))
	}
	blk, stage, receipts, err := flow.Pack(genesis.DevAccounts()[0].PrivateKey)
	require.NoError(e.t, err)
	root, err := stage.Commit()
	require.NoError(e.t, err)
	assert.Equal(e.t, root, blk.Header().StateHash())
	require.NoError(e.t, e.chain.AddBlock(blk, receipts))
	return blk, receipts
}

func TestPackTraditionalAuction(t *testing.T) {
	e := newEnv(t)
	accs := genesis.DevAccounts()
	dealer, bidder := accs[1], accs[2]
	start := e.chain.GenesisBlock().Header().Timestamp()

	create := &auction.AuctionBody{
		Opcode:       auction.OP_CREATE_TRADITIONAL,
		PaymentAsset: genesis.DevUSD,
		Items:        []*ledger.AuctionItem{{Asset: genesis.DevNFT, Kind: ledger.NonFungible, SubID: big.NewInt(3), Quantity: big.NewInt(1)}},
		Deadline:     start + 100,
		StartAmount:  big.NewInt(1000),
		Increment:    big.NewInt(100),
		ReservePrice: big.NewInt(1500),
	}
	blk, receipts := e.pack(start+1, e.auctionTx(dealer, create))
	assert.Equal(t, uint32(1), blk.Header().Number())
	signer, err := blk.Header().Signer()
	require.NoError(t, err)
	assert.Equal(t, accs[0].Address, signer)
	require.Len(t, receipts, 1)
	require.False(t, receipts[0].Reverted, receipts[0].Error)

	var id uint64
	require.NoError(t, rlp.DecodeBytes(receipts[0].Outputs[0].Data, &id))

	bidTx := e.auctionTx(bidder, &auction.AuctionBody{Opcode: auction.OP_BID_TRADITIONAL, AuctionID: id, Amount: big.NewInt(2000)})
	early := e.auctionTx(bidder, &auction.AuctionBody{Opcode: auction.OP_FINALIZE, AuctionID: id})
	_, receipts = e.pack(start+50, bidTx, early)
	assert.False(t, receipts[0].Reverted)
	assert.True(t, receipts[1].Reverted, "finalize before deadline")
	assert.Equal(t, auction.ErrNotEnded.Error(), receipts[1].Error)

	_, receipts = e.pack(start+101, e.auctionTx(bidder, &auction.AuctionBody{Opcode: auction.OP_FINALIZE, AuctionID: id}))
	require.False(t, receipts[0].Reverted, receipts[0].Error)

	st := e.creator.NewState()
	assert.Equal(t, bidder.Address, st.GetTokenOwner(genesis.DevNFT, big.NewInt(3)))
	assert.Equal(t, "1000000001990", st.GetFungibleBalance(genesis.DevUSD, dealer.Address).String())
	assert.Equal(t, "999999998000", st.GetFungibleBalance(genesis.DevUSD, bidder.Address).String())
	assert.Equal(t, "10", st.GetFeeVault(genesis.DevUSD).Amount.String())
	assert.Equal(t, ledger.Finalized, st.GetAuction(id).Status)

	receipt, err := e.chain.GetTransactionReceipt(bidTx.ID())
	require.NoError(t, err)
	assert.Equal(t, bidder.Address, receipt.Origin)
}

func TestAdoptRejects(t *testing.T) {
	e := newEnv(t)
	accs := genesis.DevAccounts()
	start := e.chain.GenesisBlock().Header().Timestamp()

	flow, err := e.packer.Schedule(e.chain.BestBlock().Header(), 0)
	require.NoError(t, err)
	assert.Equal(t, start+1, flow.When(), "timestamp never goes backwards")

	trx := e.auctionTx(accs[1], &auction.AuctionBody{Opcode: auction.OP_FINALIZE, AuctionID: 1})
	require.NoError(t, flow.Adopt(trx))
	assert.True(t, packer.IsKnownTx(flow.Adopt(trx)))

	future := new(tx.Builder).ChainTag(e.chain.Tag()).BlockRef(tx.NewBlockRef(10)).Clause(tx.NewClause(ledger.AuctionModuleAddr)).Build()
	assert.True(t, packer.IsTxNotAdoptableNow(flow.Adopt(future)))

	wrongTag := new(tx.Builder).ChainTag(e.chain.Tag() + 1).Build()
	assert.True(t, packer.IsBadTx(flow.Adopt(wrongTag)))

	unsigned := new(tx.Builder).ChainTag(e.chain.Tag()).Expiration(10).Clause(tx.NewClause(ledger.AuctionModuleAddr)).Build()
	assert.True(t, packer.IsBadTx(flow.Adopt(unsigned)))
	assert.Equal(t, 1, flow.Len())

	_, _, _, err = flow.Pack(accs[1].PrivateKey)
	assert.Error(t, err, "private key mismatch")

	_, err = e.packer.Mock(e.chain.BestBlock().Header(), start)
	assert.Error(t, err, "target time must be after parent")
}
