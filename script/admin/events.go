// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
)

var (
	InitializedEvent          = ledger.Blake2b([]byte("Initialized"))
	PausedEvent               = ledger.Blake2b([]byte("Paused"))
	UnpausedEvent             = ledger.Blake2b([]byte("Unpaused"))
	FeeRateChangedEvent       = ledger.Blake2b([]byte("FeeRateChanged"))
	FeeRecipientChangedEvent  = ledger.Blake2b([]byte("FeeRecipientChanged"))
	FeesClaimedEvent          = ledger.Blake2b([]byte("FeesClaimed"))
	OwnershipProposedEvent    = ledger.Blake2b([]byte("OwnershipProposed"))
	OwnershipTransferredEvent = ledger.Blake2b([]byte("OwnershipTransferred"))
)

var eventNames = map[ledger.Bytes32]string{
	InitializedEvent:          "Initialized",
	PausedEvent:               "Paused",
	UnpausedEvent:             "Unpaused",
	FeeRateChangedEvent:       "FeeRateChanged",
	FeeRecipientChangedEvent:  "FeeRecipientChanged",
	FeesClaimedEvent:          "FeesClaimed",
	OwnershipProposedEvent:    "OwnershipProposed",
	OwnershipTransferredEvent: "OwnershipTransferred",
}

func EventName(topic ledger.Bytes32) string {
	return eventNames[topic]
}

type FeeRateChanged struct {
	Old uint64
	New uint64
}

type FeesClaimed struct {
	Asset     ledger.Address
	Recipient ledger.Address
	Amount    *big.Int
}

// DecodeEvent decodes the data of an admin event. Events without data decode to nil.
func DecodeEvent(topic ledger.Bytes32, data []byte) (interface{}, error) {
	var v interface{}
	switch topic {
	case InitializedEvent, PausedEvent, UnpausedEvent:
		return nil, nil
	case FeeRateChangedEvent:
		v = new(FeeRateChanged)
	case FeesClaimedEvent:
		v = new(FeesClaimed)
	case FeeRecipientChangedEvent, OwnershipProposedEvent, OwnershipTransferredEvent:
		v = new(ledger.Address)
	default:
		return nil, errUnknownEvent
	}
	if err := rlp.DecodeBytes(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

// admin events carry the caller as second topic
func emit(env *setypes.ScriptEnv, topic ledger.Bytes32, data interface{}) {
	var enc []byte
	if data != nil {
		var err error
		if enc, err = rlp.EncodeToBytes(data); err != nil {
			log.Error("rlp encode event failed", "error", err)
			return
		}
	}
	caller := env.Caller()
	env.AddEvent(ledger.AdminModuleAddr, []ledger.Bytes32{topic, ledger.BytesToBytes32(caller.Bytes())}, enc)
}
