// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/escrow"
	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
	"github.com/johnqh/auctions-contracts/state"
)

var (
	log = ledger.NewLogger("auction")
)

// Auction is the auction registry module.
type Auction struct {
	logger        *slog.Logger
	newTransferer func(*state.State) escrow.Transferer
}

func NewAuction() *Auction {
	return &Auction{
		logger: ledger.NewLogger("auction"),
		newTransferer: func(st *state.State) escrow.Transferer {
			return escrow.NewStateTransferer(st)
		},
	}
}

// WithTransferer replaces the asset transfer provider.
func (a *Auction) WithTransferer(f func(*state.State) escrow.Transferer) *Auction {
	a.newTransferer = f
	return a
}

func (a *Auction) Start() error {
	a.logger.Info("auction module started")
	return nil
}

func (a *Auction) escrow(env *setypes.ScriptEnv) *escrow.Escrow {
	st := env.State()
	return escrow.New(st, a.newTransferer(st), env)
}

// Handle executes one auction clause. Whatever the handler changed is reverted
// when it fails.
func (a *Auction) Handle(env *setypes.ScriptEnv, payload []byte, to ledger.Address) (seOutput *setypes.Output, err error) {
	ab, err := DecodeFromBytes(payload)
	if err != nil {
		a.logger.Error("Decode script message failed", "error", err)
		return nil, err
	}
	a.logger.Debug("received auction", "body", ab.ToString())
	a.logger.Debug("Entering auction handler " + GetOpName(ab.Opcode))

	st := env.State()
	cfg := st.GetAdminConfig()
	checkpoint := st.NewCheckpoint()

	var ret []byte
	switch ab.Opcode {
	case OP_CREATE_TRADITIONAL:
		var id uint64
		if id, err = a.CreateTraditional(env, cfg, ab); err == nil {
			ret, err = rlp.EncodeToBytes(id)
		}
	case OP_CREATE_DUTCH:
		var id uint64
		if id, err = a.CreateDutch(env, cfg, ab); err == nil {
			ret, err = rlp.EncodeToBytes(id)
		}
	case OP_CREATE_PENNY:
		var id uint64
		if id, err = a.CreatePenny(env, cfg, ab); err == nil {
			ret, err = rlp.EncodeToBytes(id)
		}
	case OP_BID_TRADITIONAL:
		err = a.BidTraditional(env, cfg, ab)
	case OP_BUY_DUTCH:
		err = a.BuyDutch(env, cfg, ab)
	case OP_BID_PENNY:
		err = a.BidPenny(env, cfg, ab)
	case OP_FINALIZE:
		err = a.Finalize(env, cfg, ab)
	case OP_ACCEPT_BID:
		err = a.AcceptBid(env, cfg, ab)
	default:
		a.logger.Error("unknown Opcode", "Opcode", ab.Opcode)
		err = errUnknownOpcode
	}
	if err == nil {
		err = st.Err()
	}

	if err != nil {
		st.RevertTo(checkpoint)
		env.Discard()
		env.SetReturnData([]byte(err.Error()))
		handlerErrorCounter.WithLabelValues(GetOpName(ab.Opcode), ledger.ClassOf(err).String()).Inc()
		a.logger.Debug("auction handler failed", "op", GetOpName(ab.Opcode), "error", err)
		return env.Output(), err
	}
	env.SetReturnData(ret)
	a.logger.Debug("Leaving script handler for operation", "op", GetOpName(ab.Opcode))
	return env.Output(), nil
}

func (a *Auction) loadAuction(env *setypes.ScriptEnv, id uint64) (*ledger.AuctionRecord, error) {
	rec := env.State().GetAuction(id)
	if rec == nil {
		return nil, ErrAuctionNotFound
	}
	return rec, nil
}

func checkNotPaused(cfg *ledger.AdminConfig) error {
	if cfg.Paused {
		return ErrPaused
	}
	return nil
}
