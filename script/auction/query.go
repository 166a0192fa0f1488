// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/state"
)

// read-only queries, none of them writes to the state

func GetAuction(st *state.State, id uint64) (*ledger.AuctionRecord, error) {
	rec := st.GetAuction(id)
	if err := st.Err(); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrAuctionNotFound
	}
	return rec, nil
}

func GetTraditionalParams(st *state.State, id uint64) (*ledger.TraditionalParams, error) {
	rec, err := GetAuction(st, id)
	if err != nil {
		return nil, err
	}
	return rec.Params.Traditional()
}

func GetDutchParams(st *state.State, id uint64) (*ledger.DutchParams, error) {
	rec, err := GetAuction(st, id)
	if err != nil {
		return nil, err
	}
	return rec.Params.Dutch()
}

// GetDutchCurrentPrice returns what a purchase would cost at now.
func GetDutchCurrentPrice(st *state.State, id uint64, now uint64) (*big.Int, error) {
	params, err := GetDutchParams(st, id)
	if err != nil {
		return nil, err
	}
	return DutchPrice(params, now), nil
}

func GetPennyParams(st *state.State, id uint64) (*ledger.PennyParams, error) {
	rec, err := GetAuction(st, id)
	if err != nil {
		return nil, err
	}
	return rec.Params.Penny()
}

// GetPennyDeadline returns the effective deadline of a penny auction.
func GetPennyDeadline(st *state.State, id uint64) (uint64, error) {
	rec, err := GetAuction(st, id)
	if err != nil {
		return 0, err
	}
	params, err := rec.Params.Penny()
	if err != nil {
		return 0, err
	}
	return params.EffectiveDeadline(rec.Deadline), nil
}

func GetEscrowAccount(st *state.State, id uint64) (*ledger.EscrowAccount, error) {
	acc := st.GetEscrow(id)
	if err := st.Err(); err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrAuctionNotFound
	}
	return acc, nil
}

func GetFeeVault(st *state.State, asset ledger.Address) (*ledger.FeeVault, error) {
	vault := st.GetFeeVault(asset)
	return vault, st.Err()
}

func GetAdminConfig(st *state.State) (*ledger.AdminConfig, error) {
	cfg := st.GetAdminConfig()
	return cfg, st.Err()
}

// GetBalance returns the fungible balance of owner when subID is nil, its
// semi-fungible balance of subID otherwise.
func GetBalance(st *state.State, asset ledger.Address, subID *big.Int, owner ledger.Address) (*big.Int, error) {
	var bal *big.Int
	if subID == nil {
		bal = st.GetFungibleBalance(asset, owner)
	} else {
		bal = st.GetSemiBalance(asset, subID, owner)
	}
	return bal, st.Err()
}

func GetOwner(st *state.State, asset ledger.Address, subID *big.Int) (ledger.Address, error) {
	owner := st.GetTokenOwner(asset, subID)
	return owner, st.Err()
}
