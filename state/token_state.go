// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
)

func (s *State) getAmount(addr ledger.Address, key ledger.Bytes32) *big.Int {
	amount := new(big.Int)
	s.load(addr, key, amount)
	return amount
}

// setAmount clears the slot for a zero amount.
func (s *State) setAmount(addr ledger.Address, key ledger.Bytes32, amount *big.Int) {
	if amount == nil || amount.Sign() == 0 {
		s.store(addr, key, nil)
		return
	}
	s.store(addr, key, amount)
}

// GetFungibleBalance returns the balance of owner in a fungible asset.
func (s *State) GetFungibleBalance(asset, owner ledger.Address) *big.Int {
	return s.getAmount(asset, ledger.KeyFungibleBalance(owner))
}

func (s *State) SetFungibleBalance(asset, owner ledger.Address, amount *big.Int) {
	s.setAmount(asset, ledger.KeyFungibleBalance(owner), amount)
}

// GetTokenOwner returns the holder of a non-fungible token, zero if it does not exist.
func (s *State) GetTokenOwner(asset ledger.Address, subID *big.Int) ledger.Address {
	var owner ledger.Address
	s.load(asset, ledger.KeyTokenOwner(subID), &owner)
	return owner
}

func (s *State) SetTokenOwner(asset ledger.Address, subID *big.Int, owner ledger.Address) {
	if owner.IsZero() {
		s.store(asset, ledger.KeyTokenOwner(subID), nil)
		return
	}
	s.store(asset, ledger.KeyTokenOwner(subID), owner)
}

// GetSemiBalance returns the balance of owner in one id of a semi-fungible asset.
func (s *State) GetSemiBalance(asset ledger.Address, subID *big.Int, owner ledger.Address) *big.Int {
	return s.getAmount(asset, ledger.KeySemiBalance(subID, owner))
}

func (s *State) SetSemiBalance(asset ledger.Address, subID *big.Int, owner ledger.Address, amount *big.Int) {
	s.setAmount(asset, ledger.KeySemiBalance(subID, owner), amount)
}
