// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package escrow keeps custody of auction items and in-flight payments. It is
// the only place value enters or leaves the auction module account.
package escrow

import (
	"fmt"
	"math/big"

	"github.com/johnqh/auctions-contracts/fee"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/state"
)

var (
	ErrTransferFailed     = ledger.NewError(ledger.TransferError, "asset transfer failed")
	ErrEscrowNotFound     = ledger.NewError(ledger.StateError, "escrow account not found")
	ErrEscrowExists       = ledger.NewError(ledger.StateError, "escrow account already exists")
	ErrItemsNotHeld       = ledger.NewError(ledger.StateError, "items already released")
	ErrInsufficientEscrow = ledger.NewError(ledger.StateError, "escrow balance too low")
)

// TransferRecorder collects the transfers a clause performed.
type TransferRecorder interface {
	AddTransfer(asset ledger.Address, kind ledger.ItemKind, subID *big.Int, sender, recipient ledger.Address, amount *big.Int)
}

// Escrow moves value between participants and the custody account.
type Escrow struct {
	state      *state.State
	transferer Transferer
	recorder   TransferRecorder
	custody    ledger.Address
}

func New(st *state.State, transferer Transferer, recorder TransferRecorder) *Escrow {
	return &Escrow{
		state:      st,
		transferer: transferer,
		recorder:   recorder,
		custody:    ledger.AuctionModuleAddr,
	}
}

func (e *Escrow) move(asset ledger.Address, kind ledger.ItemKind, subID *big.Int, from, to ledger.Address, amount *big.Int) error {
	if err := e.transferer.Transfer(asset, kind, from, to, subID, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	if e.recorder != nil {
		e.recorder.AddTransfer(asset, kind, subID, from, to, new(big.Int).Set(amount))
	}
	return nil
}

func (e *Escrow) account(id uint64) (*ledger.EscrowAccount, error) {
	acc := e.state.GetEscrow(id)
	if acc == nil {
		return nil, ErrEscrowNotFound
	}
	return acc, nil
}

// Account returns the escrow account of an auction.
func (e *Escrow) Account(id uint64) (*ledger.EscrowAccount, error) {
	return e.account(id)
}

// DepositItems opens the escrow account of rec and pulls every item from the
// dealer. Any failing item fails the whole deposit; the caller reverts the
// state to drop the items already moved.
func (e *Escrow) DepositItems(rec *ledger.AuctionRecord) error {
	if e.state.GetEscrow(rec.ID) != nil {
		return ErrEscrowExists
	}
	for _, it := range rec.Items {
		if err := e.move(it.Asset, it.Kind, it.SubID, rec.Dealer, e.custody, it.Amount()); err != nil {
			return err
		}
	}
	e.state.SetEscrow(&ledger.EscrowAccount{
		AuctionID:    rec.ID,
		PaymentAsset: rec.PaymentAsset,
		Balance:      new(big.Int),
		ItemsHeld:    true,
	})
	return nil
}

// ReleaseItems hands every item of rec to the given party. Items leave custody once.
func (e *Escrow) ReleaseItems(rec *ledger.AuctionRecord, to ledger.Address) error {
	acc, err := e.account(rec.ID)
	if err != nil {
		return err
	}
	if !acc.ItemsHeld {
		return ErrItemsNotHeld
	}
	acc.ItemsHeld = false
	e.state.SetEscrow(acc)

	for _, it := range rec.Items {
		if err := e.move(it.Asset, it.Kind, it.SubID, e.custody, to, it.Amount()); err != nil {
			return err
		}
	}
	return nil
}

// PullPayment moves amount of the payment asset from a participant into the
// auction's escrow balance.
func (e *Escrow) PullPayment(id uint64, from ledger.Address, amount *big.Int) error {
	acc, err := e.account(id)
	if err != nil {
		return err
	}
	if err := e.move(acc.PaymentAsset, ledger.Fungible, nil, from, e.custody, amount); err != nil {
		return err
	}
	acc.Balance = new(big.Int).Add(acc.Balance, amount)
	e.state.SetEscrow(acc)
	return nil
}

// PushPayment returns amount of the escrow balance to a participant.
func (e *Escrow) PushPayment(id uint64, to ledger.Address, amount *big.Int) error {
	acc, err := e.account(id)
	if err != nil {
		return err
	}
	if acc.Balance.Cmp(amount) < 0 {
		return ErrInsufficientEscrow
	}
	acc.Balance = new(big.Int).Sub(acc.Balance, amount)
	e.state.SetEscrow(acc)
	return e.move(acc.PaymentAsset, ledger.Fungible, nil, e.custody, to, amount)
}

// PayOut settles amount of the escrow balance: the net goes to the dealer and
// the fee stays in custody, accrued to the fee vault of the payment asset.
func (e *Escrow) PayOut(id uint64, dealer ledger.Address, amount *big.Int, rateBps uint64) (*big.Int, *big.Int, error) {
	acc, err := e.account(id)
	if err != nil {
		return nil, nil, err
	}
	if acc.Balance.Cmp(amount) < 0 {
		return nil, nil, ErrInsufficientEscrow
	}
	feeAmount, net := fee.Calculate(amount, rateBps)

	acc.Balance = new(big.Int).Sub(acc.Balance, amount)
	e.state.SetEscrow(acc)

	if net.Sign() > 0 {
		if err := e.move(acc.PaymentAsset, ledger.Fungible, nil, e.custody, dealer, net); err != nil {
			return nil, nil, err
		}
	}
	if feeAmount.Sign() > 0 {
		vault := e.state.GetFeeVault(acc.PaymentAsset)
		vault.Amount = new(big.Int).Add(vault.Amount, feeAmount)
		e.state.SetFeeVault(vault)
	}
	return feeAmount, net, nil
}

// StreamPayment pulls amount from a participant and settles it to the dealer
// at once.
func (e *Escrow) StreamPayment(id uint64, from, dealer ledger.Address, amount *big.Int, rateBps uint64) (*big.Int, *big.Int, error) {
	if err := e.PullPayment(id, from, amount); err != nil {
		return nil, nil, err
	}
	return e.PayOut(id, dealer, amount, rateBps)
}

// ClaimFees sends the whole fee vault of asset to the recipient and returns
// the amount claimed.
func (e *Escrow) ClaimFees(asset, to ledger.Address) (*big.Int, error) {
	vault := e.state.GetFeeVault(asset)
	amount := vault.Amount
	if amount.Sign() == 0 {
		return amount, nil
	}
	vault.Amount = new(big.Int)
	e.state.SetFeeVault(vault)
	if err := e.move(asset, ledger.Fungible, nil, e.custody, to, amount); err != nil {
		return nil, err
	}
	return amount, nil
}
