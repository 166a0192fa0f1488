// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"

	"github.com/johnqh/auctions-contracts/escrow"
	"github.com/johnqh/auctions-contracts/fee"
	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
	"github.com/johnqh/auctions-contracts/state"
)

var (
	log = ledger.NewLogger("admin")
)

// Admin is the module governing the protocol configuration. Its operations
// stay available while auctions are paused.
type Admin struct {
	logger        *slog.Logger
	newTransferer func(*state.State) escrow.Transferer
}

func NewAdmin() *Admin {
	return &Admin{
		logger: ledger.NewLogger("admin"),
		newTransferer: func(st *state.State) escrow.Transferer {
			return escrow.NewStateTransferer(st)
		},
	}
}

func (a *Admin) Start() error {
	a.logger.Info("admin module started")
	return nil
}

func (a *Admin) Handle(env *setypes.ScriptEnv, payload []byte, to ledger.Address) (*setypes.Output, error) {
	ab, err := DecodeFromBytes(payload)
	if err != nil {
		a.logger.Error("Decode script message failed", "error", err)
		return nil, err
	}
	a.logger.Debug("Entering admin handler "+GetOpName(ab.Opcode), "body", ab.ToString())

	st := env.State()
	cfg := st.GetAdminConfig()
	checkpoint := st.NewCheckpoint()

	if ab.Opcode == OP_INITIALIZE {
		err = a.Initialize(env, cfg)
	} else if !cfg.Initialized {
		err = ErrNotInitialized
	} else {
		switch ab.Opcode {
		case OP_PAUSE:
			err = a.SetPaused(env, cfg, true)
		case OP_UNPAUSE:
			err = a.SetPaused(env, cfg, false)
		case OP_SET_FEE_RATE:
			err = a.SetFeeRate(env, cfg, ab.FeeRate)
		case OP_SET_FEE_RECIPIENT:
			err = a.SetFeeRecipient(env, cfg, ab.Address)
		case OP_CLAIM_FEES:
			err = a.ClaimFees(env, cfg, ab.Address)
		case OP_TRANSFER_OWNERSHIP:
			err = a.TransferOwnership(env, cfg, ab.Address)
		case OP_ACCEPT_OWNERSHIP:
			err = a.AcceptOwnership(env, cfg)
		default:
			a.logger.Error("unknown Opcode", "Opcode", ab.Opcode)
			err = errUnknownOpcode
		}
	}
	if err == nil {
		err = st.Err()
	}
	if err != nil {
		st.RevertTo(checkpoint)
		env.Discard()
		env.SetReturnData([]byte(err.Error()))
		a.logger.Debug("admin handler failed", "op", GetOpName(ab.Opcode), "error", err)
		return env.Output(), err
	}
	a.logger.Debug("Leaving script handler for operation", "op", GetOpName(ab.Opcode))
	return env.Output(), nil
}

// Initialize makes the caller the owner of a protocol that has none.
func (a *Admin) Initialize(env *setypes.ScriptEnv, cfg *ledger.AdminConfig) error {
	if cfg.Initialized {
		return ErrAlreadyInitialized
	}
	cfg.Initialized = true
	cfg.Owner = env.Caller()
	cfg.FeeRate = ledger.DefaultFeeRate
	env.State().SetAdminConfig(cfg)
	emit(env, InitializedEvent, nil)
	a.logger.Info("protocol initialized", "owner", cfg.Owner, "feeRate", cfg.FeeRate)
	return nil
}

func (a *Admin) SetPaused(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, paused bool) error {
	if err := checkOwner(env, cfg); err != nil {
		return err
	}
	cfg.Paused = paused
	env.State().SetAdminConfig(cfg)
	if paused {
		emit(env, PausedEvent, nil)
	} else {
		emit(env, UnpausedEvent, nil)
	}
	a.logger.Info("pause switched", "paused", paused)
	return nil
}

func (a *Admin) SetFeeRate(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, rate uint64) error {
	if err := checkOwner(env, cfg); err != nil {
		return err
	}
	if err := fee.ValidateRate(rate); err != nil {
		return err
	}
	old := cfg.FeeRate
	cfg.FeeRate = rate
	env.State().SetAdminConfig(cfg)
	emit(env, FeeRateChangedEvent, &FeeRateChanged{Old: old, New: rate})
	a.logger.Info("fee rate changed", "old", old, "new", rate)
	return nil
}

// SetFeeRecipient sets where claimed fees go. The zero address falls back to
// the owner.
func (a *Admin) SetFeeRecipient(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, recipient ledger.Address) error {
	if err := checkOwner(env, cfg); err != nil {
		return err
	}
	cfg.FeeRecipient = recipient
	env.State().SetAdminConfig(cfg)
	emit(env, FeeRecipientChangedEvent, &recipient)
	a.logger.Info("fee recipient changed", "recipient", recipient)
	return nil
}

// ClaimFees sends the whole fee vault of asset to the fee recipient.
func (a *Admin) ClaimFees(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, asset ledger.Address) error {
	if err := checkOwner(env, cfg); err != nil {
		return err
	}
	st := env.State()
	to := cfg.FeeRecipientOrOwner()
	claimed, err := escrow.New(st, a.newTransferer(st), env).ClaimFees(asset, to)
	if err != nil {
		return err
	}
	if claimed.Sign() == 0 {
		return ErrNothingToClaim
	}
	emit(env, FeesClaimedEvent, &FeesClaimed{Asset: asset, Recipient: to, Amount: claimed})
	a.logger.Info("fees claimed", "asset", asset, "recipient", to, "amount", claimed)
	return nil
}

// TransferOwnership proposes a new owner, who has to accept it.
func (a *Admin) TransferOwnership(env *setypes.ScriptEnv, cfg *ledger.AdminConfig, newOwner ledger.Address) error {
	if err := checkOwner(env, cfg); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return ErrInvalidAddress
	}
	cfg.PendingOwner = newOwner
	env.State().SetAdminConfig(cfg)
	emit(env, OwnershipProposedEvent, &newOwner)
	a.logger.Info("ownership proposed", "owner", cfg.Owner, "pending", newOwner)
	return nil
}

func (a *Admin) AcceptOwnership(env *setypes.ScriptEnv, cfg *ledger.AdminConfig) error {
	caller := env.Caller()
	if cfg.PendingOwner.IsZero() || caller != cfg.PendingOwner {
		return ErrNotPendingOwner
	}
	prev := cfg.Owner
	cfg.Owner = caller
	cfg.PendingOwner = ledger.Address{}
	env.State().SetAdminConfig(cfg)
	emit(env, OwnershipTransferredEvent, &prev)
	a.logger.Info("ownership transferred", "from", prev, "to", caller)
	return nil
}

func checkOwner(env *setypes.ScriptEnv, cfg *ledger.AdminConfig) error {
	if env.Caller() != cfg.Owner {
		return ErrNotOwner
	}
	return nil
}
