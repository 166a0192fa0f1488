// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/johnqh/auctions-contracts/api/transactions"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/johnqh/auctions-contracts/script/admin"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/pkg/errors"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type TopicSet struct {
	Topic0 *ledger.Bytes32 `json:"topic0"`
	Topic1 *ledger.Bytes32 `json:"topic1"`
	Topic2 *ledger.Bytes32 `json:"topic2"`
	Topic3 *ledger.Bytes32 `json:"topic3"`
	Topic4 *ledger.Bytes32 `json:"topic4"`
}

// FilteredEvent only comes from one module
type FilteredEvent struct {
	Address   string               `json:"address"`
	Module    string               `json:"module,omitempty"`
	Name      string               `json:"name,omitempty"`
	AuctionID *uint64              `json:"auctionID,omitempty"`
	Topics    []string             `json:"topics"`
	Data      string               `json:"data"`
	Decoded   interface{}          `json:"decoded,omitempty"`
	Meta      transactions.LogMeta `json:"meta"`
}

//convert a logdb.Event into a json format Event
func convertEvent(event *logdb.Event) *FilteredEvent {
	fe := FilteredEvent{
		Address: event.Address.String(),
		Data:    hexutil.Encode(event.Data),
		Meta: transactions.LogMeta{
			BlockID:        event.BlockID.String(),
			BlockNumber:    event.BlockNumber,
			BlockTimestamp: event.BlockTime,
			TxID:           event.TxID.String(),
			TxOrigin:       event.TxOrigin.String(),
		},
	}
	fe.Topics = make([]string, 0)
	for i := 0; i < 5; i++ {
		if event.Topics[i] != nil {
			fe.Topics = append(fe.Topics, event.Topics[i].String())
		}
	}
	if event.Topics[0] == nil {
		return &fe
	}
	topic := *event.Topics[0]
	switch event.Address {
	case ledger.AuctionModuleAddr:
		fe.Module = "auction"
		fe.Name = auction.EventName(topic)
		if event.Topics[1] != nil {
			id := ledger.Bytes32ToUint64(*event.Topics[1])
			fe.AuctionID = &id
		}
		fe.Decoded, _ = auction.DecodeEvent(topic, event.Data)
	case ledger.AdminModuleAddr:
		fe.Module = "admin"
		fe.Name = admin.EventName(topic)
		fe.Decoded, _ = admin.DecodeEvent(topic, event.Data)
	}
	return &fe
}

type EventCriteria struct {
	Address *ledger.Address `json:"address"`
	TopicSet
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *logdb.Range     `json:"range"`
	Options     *logdb.Options   `json:"options"`
	Order       logdb.Order      `json:"order"`
}

func convertEventFilter(filter *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	if len(filter.CriteriaSet) > 0 {
		criterias := make([]*logdb.EventCriteria, len(filter.CriteriaSet))
		for i, criteria := range filter.CriteriaSet {
			var topics [5]*ledger.Bytes32
			topics[0] = criteria.Topic0
			topics[1] = criteria.Topic1
			topics[2] = criteria.Topic2
			topics[3] = criteria.Topic3
			topics[4] = criteria.Topic4
			criteria := &logdb.EventCriteria{
				Address: criteria.Address,
				Topics:  topics,
			}
			criterias[i] = criteria
		}
		f.CriteriaSet = criterias
	}
	return f
}

// ParseRange reads unit, from and to. A missing upper bound means unbounded.
func ParseRange(q url.Values) (*logdb.Range, error) {
	r := &logdb.Range{Unit: logdb.Block}
	switch unit := q.Get("unit"); unit {
	case "", string(logdb.Block):
	case string(logdb.Time):
		r.Unit = logdb.Time
	default:
		return nil, errors.Errorf("unit: unsupported %q", unit)
	}
	upper := uint64(math.MaxUint32)
	if r.Unit == logdb.Time {
		upper = math.MaxInt64
	}
	var err error
	if r.From, err = utils.ParseUint64(q.Get("from"), 0); err != nil {
		return nil, errors.WithMessage(err, "from")
	}
	if r.To, err = utils.ParseUint64(q.Get("to"), upper); err != nil {
		return nil, errors.WithMessage(err, "to")
	}
	if r.From > upper {
		r.From = upper
	}
	if r.To > upper {
		r.To = upper
	}
	return r, nil
}

// ParsePaging reads offset, limit and order, limit is capped.
func ParsePaging(q url.Values) (*logdb.Options, logdb.Order, error) {
	opts := &logdb.Options{}
	var err error
	if opts.Offset, err = utils.ParseUint64(q.Get("offset"), 0); err != nil {
		return nil, "", errors.WithMessage(err, "offset")
	}
	if opts.Limit, err = utils.ParseUint64(q.Get("limit"), defaultLimit); err != nil {
		return nil, "", errors.WithMessage(err, "limit")
	}
	if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}
	if opts.Offset > math.MaxInt64 {
		return nil, "", errors.New("offset: out of range")
	}
	order := logdb.Order(strings.ToLower(q.Get("order")))
	switch order {
	case "", logdb.ASC:
		order = logdb.ASC
	case logdb.DESC:
	default:
		return nil, "", errors.Errorf("order: unsupported %q", order)
	}
	return opts, order, nil
}

// parseQuery builds a filter from url parameters: module, name, auction plus range and paging.
func parseQuery(q url.Values) (*logdb.EventFilter, error) {
	r, err := ParseRange(q)
	if err != nil {
		return nil, err
	}
	opts, order, err := ParsePaging(q)
	if err != nil {
		return nil, err
	}
	criteria := &logdb.EventCriteria{}
	switch module := q.Get("module"); module {
	case "":
	case "auction":
		addr := ledger.AuctionModuleAddr
		criteria.Address = &addr
	case "admin":
		addr := ledger.AdminModuleAddr
		criteria.Address = &addr
	default:
		return nil, errors.Errorf("module: unsupported %q", module)
	}
	if name := q.Get("name"); name != "" {
		topic := ledger.Blake2b([]byte(name))
		criteria.Topics[0] = &topic
	}
	if s := q.Get("auction"); s != "" {
		id, err := utils.ParseUint64(s, 0)
		if err != nil {
			return nil, errors.WithMessage(err, "auction")
		}
		addr := ledger.AuctionModuleAddr
		if criteria.Address != nil && *criteria.Address != addr {
			return nil, errors.New("auction: only auction module events carry an auction id")
		}
		topic := ledger.Uint64ToBytes32(id)
		criteria.Address = &addr
		criteria.Topics[1] = &topic
	}
	return &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{criteria},
		Range:       r,
		Options:     opts,
		Order:       order,
	}, nil
}
