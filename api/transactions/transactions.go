// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/txpool"
	"github.com/pkg/errors"
)

const (
	RecentTxLimit = 10
)

type Transactions struct {
	chain *chain.Chain
	pool  *txpool.TxPool
}

func New(chain *chain.Chain, pool *txpool.TxPool) *Transactions {
	return &Transactions{
		chain,
		pool,
	}
}

func (t *Transactions) getTransactionByID(txID ledger.Bytes32, allowPending bool) (*Transaction, error) {
	trx, meta, err := t.chain.GetTrunkTransaction(txID)
	if err != nil {
		if !t.chain.IsNotFound(err) {
			return nil, err
		}
		if allowPending {
			if pending := t.pool.Get(txID); pending != nil {
				return ConvertTransaction(pending, nil)
			}
		}
		return nil, nil
	}
	h, err := t.chain.GetBlockHeader(meta.BlockID)
	if err != nil {
		return nil, err
	}
	return ConvertTransaction(trx, h)
}

func (t *Transactions) getTransactionReceiptByID(txID ledger.Bytes32) (*Receipt, error) {
	meta, err := t.chain.GetTransactionMeta(txID)
	if err != nil {
		if t.chain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	h, err := t.chain.GetBlockHeader(meta.BlockID)
	if err != nil {
		return nil, err
	}
	receipt, err := t.chain.GetTransactionReceipt(txID)
	if err != nil {
		return nil, err
	}
	return convertReceipt(receipt, h), nil
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var rawTx *RawTx
	if err := utils.ParseJSON(req.Body, &rawTx); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if rawTx == nil {
		return utils.BadRequest(errors.New("body: empty body"))
	}
	trx, err := rawTx.decode()
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}
	if err := t.pool.Add(trx); err != nil {
		if txpool.IsBadTx(err) {
			return utils.BadRequest(err)
		}
		if txpool.IsTxRejected(err) {
			return utils.Forbidden(err)
		}
		return err
	}
	return utils.WriteJSON(w, map[string]string{
		"id": trx.ID().String(),
	})
}

func (t *Transactions) handleGetTransactionByID(w http.ResponseWriter, req *http.Request) error {
	id := mux.Vars(req)["id"]
	txID, err := ledger.ParseBytes32(id)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	pending := req.URL.Query().Get("pending")
	if pending != "" && pending != "false" && pending != "true" {
		return utils.BadRequest(errors.WithMessage(errors.New("should be boolean"), "pending"))
	}
	trx, err := t.getTransactionByID(txID, pending == "true")
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, trx)
}

func (t *Transactions) handleGetTransactionReceiptByID(w http.ResponseWriter, req *http.Request) error {
	id := mux.Vars(req)["id"]
	txID, err := ledger.ParseBytes32(id)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := t.getTransactionReceiptByID(txID)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, receipt)
}

// handleGetRecentTransactions walks back from the best block.
func (t *Transactions) handleGetRecentTransactions(w http.ResponseWriter, req *http.Request) error {
	recentTxs := make([]*Transaction, 0)
	best := t.chain.BestBlock()
	var err error
	for best.Header().Number() > 0 && len(recentTxs) < RecentTxLimit {
		header := best.Header()
		txs := best.Transactions()
		for i := len(txs) - 1; i >= 0 && len(recentTxs) < RecentTxLimit; i-- {
			converted, err := ConvertTransaction(txs[i], header)
			if err != nil {
				continue
			}
			recentTxs = append(recentTxs, converted)
		}
		if best, err = t.chain.GetBlock(header.ParentID()); err != nil {
			break
		}
	}
	return utils.WriteJSON(w, recentTxs)
}

func (t *Transactions) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	txs := t.pool.Dump()
	pending := make([]*Transaction, 0, len(txs))
	for _, trx := range txs {
		converted, err := ConvertTransaction(trx, nil)
		if err != nil {
			continue
		}
		pending = append(pending, converted)
	}
	return utils.WriteJSON(w, pending)
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/recent").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(t.handleGetRecentTransactions))
	sub.Path("/pending").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(t.handleGetPending))
	sub.Path("/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(t.handleGetTransactionByID))
	sub.Path("/{id}/receipt").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(t.handleGetTransactionReceiptByID))
}
