// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/johnqh/auctions-contracts/ledger"
)

// GetAuction returns the record of an auction, nil if it does not exist.
func (s *State) GetAuction(id uint64) *ledger.AuctionRecord {
	var rec ledger.AuctionRecord
	if !s.load(ledger.AuctionModuleAddr, ledger.KeyAuction(id), &rec) {
		return nil
	}
	return &rec
}

func (s *State) SetAuction(rec *ledger.AuctionRecord) {
	s.store(ledger.AuctionModuleAddr, ledger.KeyAuction(rec.ID), rec)
}

// GetNextAuctionID returns the id the next created auction gets. Ids start at 1.
func (s *State) GetNextAuctionID() uint64 {
	var next uint64
	if !s.load(ledger.AuctionModuleAddr, ledger.KeyNextAuctionID, &next) || next == 0 {
		return 1
	}
	return next
}

func (s *State) SetNextAuctionID(id uint64) {
	s.store(ledger.AuctionModuleAddr, ledger.KeyNextAuctionID, id)
}

// GetAdminConfig returns the protocol configuration, a zero config when not initialized.
func (s *State) GetAdminConfig() *ledger.AdminConfig {
	cfg := &ledger.AdminConfig{}
	s.load(ledger.AdminModuleAddr, ledger.KeyAdminConfig, cfg)
	return cfg
}

func (s *State) SetAdminConfig(cfg *ledger.AdminConfig) {
	s.store(ledger.AdminModuleAddr, ledger.KeyAdminConfig, cfg)
}

// GetFeeVault returns the accrued fees of a payment asset.
func (s *State) GetFeeVault(asset ledger.Address) *ledger.FeeVault {
	vault := &ledger.FeeVault{Asset: asset, Amount: new(big.Int)}
	s.load(ledger.AuctionModuleAddr, ledger.KeyFeeVault(asset), vault)
	return vault
}

func (s *State) SetFeeVault(vault *ledger.FeeVault) {
	s.store(ledger.AuctionModuleAddr, ledger.KeyFeeVault(vault.Asset), vault)
}

// GetEscrow returns the escrow account of an auction, nil if it does not exist.
func (s *State) GetEscrow(id uint64) *ledger.EscrowAccount {
	var acc ledger.EscrowAccount
	if !s.load(ledger.AuctionModuleAddr, ledger.KeyEscrow(id), &acc) {
		return nil
	}
	return &acc
}

func (s *State) SetEscrow(acc *ledger.EscrowAccount) {
	s.store(ledger.AuctionModuleAddr, ledger.KeyEscrow(acc.AuctionID), acc)
}
