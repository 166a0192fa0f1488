// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"context"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/runtime"
	"github.com/johnqh/auctions-contracts/script"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/johnqh/auctions-contracts/xenv"
	"github.com/pkg/errors"
)

type Accounts struct {
	chain        *chain.Chain
	stateCreator *state.Creator
	se           *script.ScriptEngine
}

func New(chain *chain.Chain, stateCreator *state.Creator, se *script.ScriptEngine) *Accounts {
	return &Accounts{
		chain,
		stateCreator,
		se,
	}
}

func (a *Accounts) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	asset, err := ledger.ParseAddress(mux.Vars(req)["asset"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "asset"))
	}
	owner, err := ledger.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "owner"))
	}
	var subID *big.Int
	if sub := req.URL.Query().Get("sub"); sub != "" {
		if subID, err = utils.ParseBig(sub); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "sub"))
		}
	}
	bal, err := auction.GetBalance(a.stateCreator.NewState(), asset, subID, owner)
	if err != nil {
		return err
	}
	result := &Balance{
		Asset:   asset.String(),
		Owner:   owner.String(),
		Balance: utils.BigString(bal),
	}
	if subID != nil {
		result.SubID = subID.String()
	}
	return utils.WriteJSON(w, result)
}

func (a *Accounts) handleGetOwner(w http.ResponseWriter, req *http.Request) error {
	asset, err := ledger.ParseAddress(mux.Vars(req)["asset"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "asset"))
	}
	subID, err := utils.ParseBig(mux.Vars(req)["sub"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "sub"))
	}
	owner, err := auction.GetOwner(a.stateCreator.NewState(), asset, subID)
	if err != nil {
		return err
	}
	result := &Owner{
		Asset: asset.String(),
		SubID: subID.String(),
	}
	if !owner.IsZero() {
		result.Owner = owner.String()
	}
	return utils.WriteJSON(w, result)
}

func (a *Accounts) batchCall(ctx context.Context, batchCallData *BatchCallData) (results BatchCallResults, err error) {
	best := a.chain.BestBlock().Header()
	now := best.Timestamp() + 1
	if wall := uint64(time.Now().Unix()); wall > now {
		now = wall
	}
	rt := runtime.New(a.se, a.stateCreator.NewState(), &xenv.BlockContext{
		Number: best.Number() + 1,
		Time:   now,
	})
	txCtx := &xenv.TransactionContext{Expiration: 1}
	if batchCallData.Caller != nil {
		txCtx.Origin = *batchCallData.Caller
	}
	results = make(BatchCallResults, 0, len(batchCallData.Clauses))
	for i, c := range batchCallData.Clauses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.To == nil {
			return nil, utils.BadRequest(errors.Errorf("clauses[%d]: missing to", i))
		}
		data, err := hexutil.Decode(c.Data)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessagef(err, "clauses[%d].data", i))
		}
		output, err := rt.ExecuteClause(tx.NewClause(*c.To).WithData(data), txCtx)
		if errors.Is(err, runtime.ErrNotScriptData) {
			return nil, utils.BadRequest(errors.WithMessagef(err, "clauses[%d]", i))
		}
		results = append(results, convertCallResult(output, err))
		if err != nil {
			break
		}
	}
	return results, nil
}

func (a *Accounts) handleCallBatchCode(w http.ResponseWriter, req *http.Request) error {
	batchCallData := &BatchCallData{}
	if err := utils.ParseJSON(req.Body, &batchCallData); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	results, err := a.batchCall(req.Context(), batchCallData)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, results)
}

// Mount registers the token queries under root and the dry-run call under pathPrefix.
func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/*").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(a.handleCallBatchCode))

	tokens := root.PathPrefix("/tokens").Subrouter()
	tokens.Path("/{asset}/balances/{owner}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetBalance))
	tokens.Path("/{asset}/owners/{sub}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetOwner))
}
