// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/johnqh/auctions-contracts/xenv"
)

// ScriptEnv is what a module handler sees while executing one clause.
type ScriptEnv struct {
	state *state.State
	block *xenv.BlockContext
	txn   *xenv.TransactionContext
	to    ledger.Address
	out   Output
}

func NewScriptEnv(st *state.State, blockCtx *xenv.BlockContext, txCtx *xenv.TransactionContext, to ledger.Address) *ScriptEnv {
	return &ScriptEnv{
		state: st,
		block: blockCtx,
		txn:   txCtx,
		to:    to,
		out: Output{
			Transfers: tx.Transfers{},
			Events:    tx.Events{},
		},
	}
}

func (env *ScriptEnv) State() *state.State    { return env.state }
func (env *ScriptEnv) Caller() ledger.Address { return env.txn.Origin }

// Now is the block timestamp in seconds.
func (env *ScriptEnv) Now() uint64 { return env.block.Time }

func (env *ScriptEnv) SetReturnData(data []byte) {
	env.out.Data = data
}

func (env *ScriptEnv) AddTransfer(asset ledger.Address, kind ledger.ItemKind, subID *big.Int, sender, recipient ledger.Address, amount *big.Int) {
	env.out.Transfers = append(env.out.Transfers, &tx.Transfer{
		Asset:     asset,
		Kind:      kind,
		SubID:     subID,
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	})
}

func (env *ScriptEnv) AddEvent(address ledger.Address, topics []ledger.Bytes32, data []byte) {
	env.out.Events = append(env.out.Events, &tx.Event{
		Address: address,
		Topics:  topics,
		Data:    data,
	})
}

// Discard drops the transfers and events recorded so far. Return data is kept.
func (env *ScriptEnv) Discard() {
	env.out.Transfers = env.out.Transfers[:0]
	env.out.Events = env.out.Events[:0]
}

// Output snapshots the call result. Empty return data reads as nil.
func (env *ScriptEnv) Output() *Output {
	out := env.out
	if len(out.Data) == 0 {
		out.Data = nil
	}
	return &out
}
