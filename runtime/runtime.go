// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"log/slog"

	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/script"
	setypes "github.com/johnqh/auctions-contracts/script/types"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/johnqh/auctions-contracts/xenv"
	"github.com/pkg/errors"
)

var (
	ErrUnsigned      = ledger.NewError(ledger.ValidationError, "transaction is not signed")
	ErrExpired       = ledger.NewError(ledger.ValidationError, "transaction expired")
	ErrNoClause      = ledger.NewError(ledger.ValidationError, "transaction has no clause")
	ErrNotScriptData = ledger.NewError(ledger.ValidationError, "clause data is not script data")
)

type TransactionExecutor struct {
	HasNextClause func() bool
	NextClause    func() (output *tx.Output, err error)
	Finalize      func() (*tx.Receipt, error)
}

// Runtime executes transactions against one block's state.
type Runtime struct {
	se     *script.ScriptEngine
	state  *state.State
	ctx    *xenv.BlockContext
	logger *slog.Logger
}

// New create a Runtime object.
func New(se *script.ScriptEngine, state *state.State, ctx *xenv.BlockContext) *Runtime {
	return &Runtime{
		se:     se,
		state:  state,
		ctx:    ctx,
		logger: ledger.NewLogger("rt"),
	}
}

func (rt *Runtime) State() *state.State         { return rt.state }
func (rt *Runtime) Context() *xenv.BlockContext { return rt.ctx }

// ExecuteClause executes single clause. A failed clause still returns the
// module output, whose data carries the error text.
func (rt *Runtime) ExecuteClause(clause *tx.Clause, txCtx *xenv.TransactionContext) (*tx.Output, error) {
	data := clause.Data()
	if !script.IsScriptData(data) {
		return nil, ErrNotScriptData
	}
	env := setypes.NewScriptEnv(rt.state, rt.ctx, txCtx, clause.To())
	seOutput, err := rt.se.HandleScriptData(env, data[len(script.ScriptPrefix):], clause.To())
	if seOutput == nil {
		return nil, err
	}
	return &tx.Output{
		Data:      seOutput.Data,
		Events:    seOutput.Events,
		Transfers: seOutput.Transfers,
	}, err
}

// ExecuteTransaction executes a transaction. A clause failure reverts the whole
// transaction and is reported in the receipt, not as an error.
func (rt *Runtime) ExecuteTransaction(trx *tx.Transaction) (receipt *tx.Receipt, err error) {
	executor, err := rt.PrepareTransaction(trx)
	if err != nil {
		return nil, err
	}

	for executor.HasNextClause() {
		if _, err := executor.NextClause(); err != nil {
			rt.logger.Debug("clause failed", "tx", trx.ID(), "error", err)
		}
	}
	return executor.Finalize()
}

// PrepareTransaction prepare to execute tx.
func (rt *Runtime) PrepareTransaction(trx *tx.Transaction) (*TransactionExecutor, error) {
	origin, err := trx.Origin()
	if err != nil {
		return nil, errors.Wrap(err, "recover signer")
	}
	if origin.IsZero() {
		return nil, ErrUnsigned
	}
	if trx.IsExpired(rt.ctx.Number) {
		return nil, ErrExpired
	}
	clauses := trx.Clauses()
	if len(clauses) == 0 {
		return nil, ErrNoClause
	}

	txCtx := &xenv.TransactionContext{
		ID:         trx.ID(),
		Origin:     origin,
		Expiration: trx.Expiration(),
		Nonce:      trx.Nonce(),
	}

	// checkpoint to be reverted when clause failure.
	checkpoint := rt.state.NewCheckpoint()

	txOutputs := make([]*tx.Output, 0, len(clauses))
	reverted := false
	finalized := false
	var vmErr error

	hasNext := func() bool {
		return !reverted && len(txOutputs) < len(clauses)
	}

	return &TransactionExecutor{
		HasNextClause: hasNext,
		NextClause: func() (*tx.Output, error) {
			if !hasNext() {
				return nil, errors.New("no more clause")
			}
			output, err := rt.ExecuteClause(clauses[len(txOutputs)], txCtx)
			if err != nil {
				// revert all executed clauses
				rt.state.RevertTo(checkpoint)
				reverted = true
				vmErr = err
				txOutputs = nil
				return output, err
			}
			txOutputs = append(txOutputs, output)
			return output, nil
		},
		Finalize: func() (*tx.Receipt, error) {
			if hasNext() {
				return nil, errors.New("not all clauses processed")
			}
			if finalized {
				return nil, errors.New("already finalized")
			}
			finalized = true

			receipt := &tx.Receipt{
				TxID:     txCtx.ID,
				Origin:   origin,
				Reverted: reverted,
				Outputs:  txOutputs,
			}
			if vmErr != nil {
				receipt.Error = vmErr.Error()
			}
			return receipt, nil
		},
	}, nil
}
