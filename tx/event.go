// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/johnqh/auctions-contracts/ledger"
)

// Event represents an event log emitted by a module and indexed by the node.
type Event struct {
	// address of the module that generated the event
	Address ledger.Address
	// list of topics provided by the module.
	Topics []ledger.Bytes32
	// supplied by the module, rlp encoded
	Data []byte
}

// Events slice of event logs.
type Events []*Event
