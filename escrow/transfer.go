// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package escrow

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/state"
)

var (
	errZeroQuantity  = errors.New("zero quantity")
	errUnknownKind   = errors.New("unknown asset kind")
	errNotTokenOwner = errors.New("sender does not own token")
	errNoSuchToken   = errors.New("token does not exist")
	errZeroRecipient = errors.New("zero recipient")
)

// Transferer moves one asset between two parties. A failed transfer must not
// have moved anything.
type Transferer interface {
	Transfer(asset ledger.Address, kind ledger.ItemKind, from, to ledger.Address, subID, quantity *big.Int) error
}

// StateTransferer moves assets kept in the token slots of a state.
type StateTransferer struct {
	state *state.State
}

func NewStateTransferer(st *state.State) *StateTransferer {
	return &StateTransferer{state: st}
}

func (t *StateTransferer) Transfer(asset ledger.Address, kind ledger.ItemKind, from, to ledger.Address, subID, quantity *big.Int) error {
	if to.IsZero() {
		return errZeroRecipient
	}
	switch kind {
	case ledger.Fungible:
		if quantity == nil || quantity.Sign() <= 0 {
			return errZeroQuantity
		}
		balance := t.state.GetFungibleBalance(asset, from)
		if balance.Cmp(quantity) < 0 {
			return fmt.Errorf("insufficient balance of %v, have %v want %v", asset, balance, quantity)
		}
		t.state.SetFungibleBalance(asset, from, new(big.Int).Sub(balance, quantity))
		t.state.SetFungibleBalance(asset, to, new(big.Int).Add(t.state.GetFungibleBalance(asset, to), quantity))

	case ledger.NonFungible:
		owner := t.state.GetTokenOwner(asset, subID)
		if owner.IsZero() {
			return errNoSuchToken
		}
		if owner != from {
			return errNotTokenOwner
		}
		t.state.SetTokenOwner(asset, subID, to)

	case ledger.SemiFungible:
		if quantity == nil || quantity.Sign() <= 0 {
			return errZeroQuantity
		}
		balance := t.state.GetSemiBalance(asset, subID, from)
		if balance.Cmp(quantity) < 0 {
			return fmt.Errorf("insufficient balance of %v#%v, have %v want %v", asset, subID, balance, quantity)
		}
		t.state.SetSemiBalance(asset, subID, from, new(big.Int).Sub(balance, quantity))
		t.state.SetSemiBalance(asset, subID, to, new(big.Int).Add(t.state.GetSemiBalance(asset, subID, to), quantity))

	default:
		return errUnknownKind
	}
	return t.state.Err()
}
