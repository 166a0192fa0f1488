// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer

import (
	"crypto/ecdsa"
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/runtime"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/pkg/errors"
)

// Flow executes txs one at a time on top of a parent block, then seals the
// adopted ones into a new block.
type Flow struct {
	packer   *Packer
	parentID ledger.Bytes32
	rt       *runtime.Runtime
	seen     map[ledger.Bytes32]struct{}
	txs      tx.Transactions
	receipts tx.Receipts
}

func newFlow(p *Packer, parent *block.Header, rt *runtime.Runtime) *Flow {
	return &Flow{
		packer:   p,
		parentID: parent.ID(),
		rt:       rt,
		seen:     make(map[ledger.Bytes32]struct{}),
	}
}

// When is the timestamp of the block being packed.
func (f *Flow) When() uint64 {
	return f.rt.Context().Time
}

// Len returns the number of adopted txs.
func (f *Flow) Len() int {
	return len(f.txs)
}

func (f *Flow) checkAdoptable(trx *tx.Transaction) error {
	num := f.rt.Context().Number
	if trx.ChainTag() != f.packer.chain.Tag() {
		return badTxError{"chain tag mismatch"}
	}
	if trx.BlockRef().Number() > num {
		return errTxNotAdoptableNow
	}
	if trx.IsExpired(num) {
		return badTxError{"expired"}
	}
	if _, ok := f.seen[trx.ID()]; ok {
		return errKnownTx
	}
	known, err := f.packer.chain.HasTransaction(trx.ID())
	if err != nil {
		return err
	}
	if known {
		return errKnownTx
	}
	return nil
}

// Adopt executes trx against the pending state. A tx whose clauses fail is
// still adopted with a reverted receipt; only a tx that cannot execute at all
// is rejected, leaving the state untouched.
func (f *Flow) Adopt(trx *tx.Transaction) error {
	if err := f.checkAdoptable(trx); err != nil {
		return err
	}

	st := f.rt.State()
	checkpoint := st.NewCheckpoint()
	receipt, err := f.rt.ExecuteTransaction(trx)
	if err != nil {
		st.RevertTo(checkpoint)
		return badTxError{err.Error()}
	}
	f.seen[trx.ID()] = struct{}{}
	f.txs = append(f.txs, trx)
	f.receipts = append(f.receipts, receipt)
	txsPackedCounter.WithLabelValues(strconv.FormatBool(receipt.Reverted)).Inc()
	return nil
}

// Pack seals the adopted txs into a block signed by privateKey, which must
// belong to the packer's master.
func (f *Flow) Pack(privateKey *ecdsa.PrivateKey) (*block.Block, *state.Stage, tx.Receipts, error) {
	if signer := ledger.Address(crypto.PubkeyToAddress(privateKey.PublicKey)); signer != f.packer.nodeMaster {
		return nil, nil, nil, errors.Errorf("private key of %v does not match master %v", signer, f.packer.nodeMaster)
	}
	st := f.rt.State()
	if err := st.Err(); err != nil {
		return nil, nil, nil, errors.Wrap(err, "state")
	}
	stage := st.Stage()

	b := new(block.Builder).
		ParentID(f.parentID).
		Timestamp(f.When()).
		StateHash(stage.Hash()).
		ReceiptsRoot(f.receipts.RootHash())
	for _, trx := range f.txs {
		b.Transaction(trx)
	}
	unsigned := b.Build()

	sig, err := crypto.Sign(unsigned.Header().SigningHash().Bytes(), privateKey)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "sign block")
	}
	blocksPackedCounter.Inc()
	return unsigned.WithSignature(sig), stage, f.receipts, nil
}
