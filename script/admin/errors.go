// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"errors"

	"github.com/johnqh/auctions-contracts/fee"
	"github.com/johnqh/auctions-contracts/ledger"
)

var (
	ErrNotOwner           = ledger.NewError(ledger.AuthorizationError, "caller is not the owner")
	ErrNotPendingOwner    = ledger.NewError(ledger.AuthorizationError, "caller is not the pending owner")
	ErrAlreadyInitialized = ledger.NewError(ledger.StateError, "protocol already initialized")
	ErrNothingToClaim     = ledger.NewError(ledger.StateError, "no fees to claim")
	ErrInvalidAddress     = ledger.NewError(ledger.ValidationError, "invalid address")

	ErrRateOutOfBounds = fee.ErrRateOutOfBounds
	ErrNotInitialized  = ledger.ErrNotInitialized

	errUnknownOpcode = errors.New("unknown admin opcode")
	errUnknownEvent  = errors.New("unknown admin event")
)
