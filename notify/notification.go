// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package notify

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/script/admin"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/johnqh/auctions-contracts/tx"
)

const (
	ModuleAuction = "auction"
	ModuleAdmin   = "admin"
)

// Notification is an outcome event of a packed block, in a form fit for
// external consumers.
type Notification struct {
	ID          string        `json:"id"`
	Module      string        `json:"module"`
	Name        string        `json:"name"`
	AuctionID   uint64        `json:"auctionID,omitempty"`
	Caller      string        `json:"caller,omitempty"`
	BlockNumber uint32        `json:"blockNumber"`
	BlockTime   uint64        `json:"blockTime"`
	TxID        string        `json:"txID"`
	TxOrigin    string        `json:"txOrigin"`
	Data        hexutil.Bytes `json:"data"`
	Decoded     interface{}   `json:"decoded,omitempty"`
}

// Subject returns the NATS subject the notification is published on.
func (n *Notification) Subject(prefix string) string {
	return prefix + "." + n.Module + "." + n.Name
}

// FromReceipts builds notifications for the events of every non-reverted receipt.
// Events of unknown modules or topics are skipped.
func FromReceipts(header *block.Header, receipts tx.Receipts) []*Notification {
	var out []*Notification
	for _, r := range receipts {
		if r.Reverted {
			continue
		}
		for _, output := range r.Outputs {
			for _, ev := range output.Events {
				n := fromEvent(ev)
				if n == nil {
					continue
				}
				n.BlockNumber = header.Number()
				n.BlockTime = header.Timestamp()
				n.TxID = r.TxID.String()
				n.TxOrigin = r.Origin.String()
				out = append(out, n)
			}
		}
	}
	return out
}

func fromEvent(ev *tx.Event) *Notification {
	if len(ev.Topics) < 2 {
		return nil
	}
	n := &Notification{
		ID:   uuid.New().String(),
		Data: ev.Data,
	}
	topic := ev.Topics[0]
	switch ev.Address {
	case ledger.AuctionModuleAddr:
		n.Module = ModuleAuction
		n.Name = auction.EventName(topic)
		n.AuctionID = ledger.Bytes32ToUint64(ev.Topics[1])
		if decoded, err := auction.DecodeEvent(topic, ev.Data); err == nil {
			n.Decoded = decoded
		}
	case ledger.AdminModuleAddr:
		n.Module = ModuleAdmin
		n.Name = admin.EventName(topic)
		n.Caller = ledger.BytesToAddress(ev.Topics[1].Bytes()).String()
		if decoded, err := admin.DecodeEvent(topic, ev.Data); err == nil {
			n.Decoded = decoded
		}
	default:
		return nil
	}
	if n.Name == "" {
		return nil
	}
	return n
}
