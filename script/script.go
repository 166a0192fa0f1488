// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/escrow"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/script/admin"
	"github.com/johnqh/auctions-contracts/script/auction"
	setypes "github.com/johnqh/auctions-contracts/script/types"
	"github.com/johnqh/auctions-contracts/state"
)

var (
	ErrPatternMismatch = ledger.NewError(ledger.ValidationError, "script pattern mismatch")
	ErrUnknownModule   = ledger.NewError(ledger.ValidationError, "unknown script module")
	ErrWrongModuleAddr = ledger.NewError(ledger.ValidationError, "clause is not sent to the module address")
)

// ScriptEngine dispatches clause data to the registered modules.
type ScriptEngine struct {
	logger     *slog.Logger
	modReg     Registry
	transferer func(*state.State) escrow.Transferer
}

// NewScriptEngine starts all modules. A nil transferer selects the state
// backed token ledger.
func NewScriptEngine(transferer func(*state.State) escrow.Transferer) *ScriptEngine {
	se := &ScriptEngine{
		logger:     ledger.NewLogger("se"),
		transferer: transferer,
	}

	// start all sub modules
	se.StartAllModules()
	return se
}

func (se *ScriptEngine) StartAllModules() {
	ModuleAuctionInit(se)
	ModuleAdminInit(se)
}

// IsScriptData tells whether clause data is meant for the engine.
func IsScriptData(data []byte) bool {
	return len(data) >= len(ScriptPrefix) && bytes.Equal(data[:len(ScriptPrefix)], ScriptPrefix[:])
}

// HandleScriptData executes clause data, without its prefix, with the module
// the envelope names.
func (se *ScriptEngine) HandleScriptData(env *setypes.ScriptEnv, data []byte, to ledger.Address) (*setypes.Output, error) {
	e, err := OpenEnvelope(data)
	if err != nil {
		se.logger.Debug("open envelope failed", "error", err)
		return nil, err
	}
	mod, ok := se.modReg.Find(e.ModID)
	if !ok {
		se.logger.Debug("no module for envelope", "modID", e.ModID)
		return nil, ErrUnknownModule
	}
	if to != mod.Addr {
		se.logger.Debug("wrong module address", "to", to, "module", mod.String())
		return nil, ErrWrongModuleAddr
	}
	se.logger.Debug("dispatch", "envelope", e.String(), "module", mod.String())
	return mod.Handler(env, e.Payload, to)
}

// EncodeScriptData builds clause data for an auction or admin body.
func EncodeScriptData(body interface{}) ([]byte, error) {
	var modID uint32
	switch body.(type) {
	case auction.AuctionBody, *auction.AuctionBody:
		modID = AUCTION_MODULE_ID
	case admin.AdminBody, *admin.AdminBody:
		modID = ADMIN_MODULE_ID
	default:
		return []byte{}, errors.New("unrecognized body")
	}
	payload, err := rlp.EncodeToBytes(body)
	if err != nil {
		return []byte{}, fmt.Errorf("rlp encode body failed: %w", err)
	}
	return NewEnvelope(modID, payload).Encode()
}

// ModuleAddress returns the address clauses for the body's module are sent to.
func ModuleAddress(body interface{}) ledger.Address {
	switch body.(type) {
	case admin.AdminBody, *admin.AdminBody:
		return ledger.AdminModuleAddr
	default:
		return ledger.AuctionModuleAddr
	}
}
