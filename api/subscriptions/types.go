// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/url"

	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/notify"
	"github.com/pkg/errors"
)

// EventFilter selects notifications, empty fields match anything.
type EventFilter struct {
	Module    string
	Name      string
	AuctionID *uint64
}

func parseEventFilter(q url.Values) (*EventFilter, error) {
	f := &EventFilter{
		Module: q.Get("module"),
		Name:   q.Get("name"),
	}
	switch f.Module {
	case "", notify.ModuleAuction, notify.ModuleAdmin:
	default:
		return nil, errors.Errorf("module: unsupported %q", f.Module)
	}
	if s := q.Get("auction"); s != "" {
		id, err := utils.ParseUint64(s, 0)
		if err != nil {
			return nil, errors.WithMessage(err, "auction")
		}
		f.AuctionID = &id
	}
	return f, nil
}

// Match returns whether n passes the filter.
func (f *EventFilter) Match(n *notify.Notification) bool {
	if f.Module != "" && f.Module != n.Module {
		return false
	}
	if f.Name != "" && f.Name != n.Name {
		return false
	}
	if f.AuctionID != nil && (n.Module != notify.ModuleAuction || *f.AuctionID != n.AuctionID) {
		return false
	}
	return true
}
