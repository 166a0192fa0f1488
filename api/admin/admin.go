// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/pkg/errors"
)

type Config struct {
	Initialized  bool   `json:"initialized"`
	Owner        string `json:"owner"`
	PendingOwner string `json:"pendingOwner,omitempty"`
	Paused       bool   `json:"paused"`
	FeeRate      uint64 `json:"feeRate"`
	FeeRecipient string `json:"feeRecipient"`
	AuctionCount uint64 `json:"auctionCount"`
}

type FeeVault struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

type Admin struct {
	stateCreator *state.Creator
}

func New(stateCreator *state.Creator) *Admin {
	return &Admin{stateCreator}
}

func (a *Admin) handleGetConfig(w http.ResponseWriter, req *http.Request) error {
	cfg, err := auction.GetAdminConfig(a.stateCreator.NewState())
	if err != nil {
		return err
	}
	result := &Config{
		Initialized:  cfg.Initialized,
		Owner:        cfg.Owner.String(),
		Paused:       cfg.Paused,
		FeeRate:      cfg.FeeRate,
		FeeRecipient: cfg.FeeRecipientOrOwner().String(),
		AuctionCount: cfg.AuctionCount,
	}
	if !cfg.PendingOwner.IsZero() {
		result.PendingOwner = cfg.PendingOwner.String()
	}
	return utils.WriteJSON(w, result)
}

func (a *Admin) handleGetFeeVault(w http.ResponseWriter, req *http.Request) error {
	asset, err := ledger.ParseAddress(mux.Vars(req)["asset"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "asset"))
	}
	vault, err := auction.GetFeeVault(a.stateCreator.NewState(), asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &FeeVault{
		Asset:  asset.String(),
		Amount: utils.BigString(vault.Amount),
	})
}

// Mount registers the config under pathPrefix and fee vaults under /fees.
func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetConfig))
	root.Path("/fees/{asset}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetFeeVault))
}
