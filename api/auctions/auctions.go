// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/pkg/errors"
)

type Auctions struct {
	chain        *chain.Chain
	stateCreator *state.Creator
}

func New(chain *chain.Chain, stateCreator *state.Creator) *Auctions {
	return &Auctions{
		chain,
		stateCreator,
	}
}

func (a *Auctions) parseID(req *http.Request) (uint64, error) {
	id, err := utils.ParseUint64(mux.Vars(req)["id"], 0)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "id"))
	}
	return id, nil
}

// now is the earliest time the next block can carry.
func (a *Auctions) now() uint64 {
	next := a.chain.BestBlock().Header().Timestamp() + 1
	if wall := uint64(time.Now().Unix()); wall > next {
		return wall
	}
	return next
}

func (a *Auctions) handleGetAuction(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseID(req)
	if err != nil {
		return err
	}
	rec, err := auction.GetAuction(a.stateCreator.NewState(), id)
	if err != nil {
		return utils.LedgerError(err, auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, convertAuction(rec))
}

func (a *Auctions) handleGetTraditional(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseID(req)
	if err != nil {
		return err
	}
	params, err := auction.GetTraditionalParams(a.stateCreator.NewState(), id)
	if err != nil {
		return utils.LedgerError(err, auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, convertTraditional(params))
}

func (a *Auctions) handleGetDutch(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseID(req)
	if err != nil {
		return err
	}
	params, err := auction.GetDutchParams(a.stateCreator.NewState(), id)
	if err != nil {
		return utils.LedgerError(err, auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, convertDutch(params))
}

func (a *Auctions) handleGetDutchPrice(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseID(req)
	if err != nil {
		return err
	}
	at, err := utils.ParseUint64(req.URL.Query().Get("at"), a.now())
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "at"))
	}
	price, err := auction.GetDutchCurrentPrice(a.stateCreator.NewState(), id, at)
	if err != nil {
		return utils.LedgerError(err, auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, &Price{Price: price.String(), At: at})
}

func (a *Auctions) handleGetPenny(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseID(req)
	if err != nil {
		return err
	}
	params, err := auction.GetPennyParams(a.stateCreator.NewState(), id)
	if err != nil {
		return utils.LedgerError(err, auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, convertPenny(params))
}

func (a *Auctions) handleGetPennyDeadline(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseID(req)
	if err != nil {
		return err
	}
	deadline, err := auction.GetPennyDeadline(a.stateCreator.NewState(), id)
	if err != nil {
		return utils.LedgerError(err, auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, &Deadline{deadline})
}

func (a *Auctions) handleGetEscrow(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseID(req)
	if err != nil {
		return err
	}
	acc, err := auction.GetEscrowAccount(a.stateCreator.NewState(), id)
	if err != nil {
		return utils.LedgerError(err, auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, convertEscrow(acc))
}

func (a *Auctions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetAuction))
	sub.Path("/{id}/traditional").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetTraditional))
	sub.Path("/{id}/dutch").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetDutch))
	sub.Path("/{id}/dutch/price").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetDutchPrice))
	sub.Path("/{id}/penny").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetPenny))
	sub.Path("/{id}/penny/deadline").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetPennyDeadline))
	sub.Path("/{id}/escrow").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetEscrow))
}
