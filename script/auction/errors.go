// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"errors"

	"github.com/johnqh/auctions-contracts/escrow"
	"github.com/johnqh/auctions-contracts/ledger"
)

var (
	ErrPaused        = ledger.NewError(ledger.AuthorizationError, "auctions are paused")
	ErrNotDealer     = ledger.NewError(ledger.AuthorizationError, "caller is not the dealer")
	ErrInvalidItems  = ledger.NewError(ledger.ValidationError, "invalid auction items")
	ErrInvalidParams = ledger.NewError(ledger.ValidationError, "invalid auction parameters")
	ErrBidTooLow     = ledger.NewError(ledger.ValidationError, "bid too low")

	ErrAuctionNotFound        = ledger.NewError(ledger.StateError, "auction not found")
	ErrWrongType              = ledger.ErrWrongType
	ErrNotActive              = ledger.NewError(ledger.StateError, "auction not active")
	ErrDeadlinePassed         = ledger.NewError(ledger.StateError, "auction deadline passed")
	ErrNotEnded               = ledger.NewError(ledger.StateError, "auction not ended")
	ErrAcceptancePeriodActive = ledger.NewError(ledger.StateError, "acceptance period still active")
	ErrAlreadyTerminal        = ledger.NewError(ledger.StateError, "auction already finalized or refunded")
	ErrNotExpired             = ledger.NewError(ledger.StateError, "auction not expired")
	ErrAcceptanceWindowClosed = ledger.NewError(ledger.StateError, "acceptance window closed")
	ErrNoBidder               = ledger.NewError(ledger.StateError, "auction has no bidder")
	ErrTimerExpired           = ledger.NewError(ledger.StateError, "penny timer expired")
	ErrPriceAboveLimit        = ledger.NewError(ledger.ValidationError, "price above limit")

	ErrTransferFailed = escrow.ErrTransferFailed
	ErrMathOverflow   = ledger.ErrMathOverflow

	errUnknownOpcode = errors.New("unknown auction opcode")
	errUnknownEvent  = errors.New("unknown auction event")
)
