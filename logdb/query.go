// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/johnqh/auctions-contracts/ledger"
)

type RangeType string

const (
	Block RangeType = "block"
	Time  RangeType = "time"
)

// Range bounds a query by block number or block time. To below From leaves
// the range open ended.
type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

func (o Order) sql() string {
	if o == DESC {
		return "DESC"
	}
	return "ASC"
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Address *ledger.Address
	Topics  [5]*ledger.Bytes32
}

func (c *EventCriteria) conds() []cond {
	var conds []cond
	if c.Address != nil {
		conds = append(conds, cond{"address", c.Address.Bytes()})
	}
	for i, topic := range c.Topics {
		if topic != nil {
			conds = append(conds, cond{topicColumns[i], topic.Bytes()})
		}
	}
	return conds
}

type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order
}

// TransferCriteria matches on the tx origin, the moved asset and the two
// parties of a transfer.
type TransferCriteria struct {
	TxOrigin  *ledger.Address
	Asset     *ledger.Address
	Sender    *ledger.Address
	Recipient *ledger.Address
}

func (c *TransferCriteria) conds() []cond {
	var conds []cond
	add := func(column string, addr *ledger.Address) {
		if addr != nil {
			conds = append(conds, cond{column, addr.Bytes()})
		}
	}
	add("txOrigin", c.TxOrigin)
	add("asset", c.Asset)
	add("sender", c.Sender)
	add("recipient", c.Recipient)
	return conds
}

type TransferFilter struct {
	TxID        *ledger.Bytes32
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order
}

// cond is an equality test on one column.
type cond struct {
	column string
	value  interface{}
}

// query accumulates a SELECT statement and its positional arguments.
type query struct {
	sb   strings.Builder
	args []interface{}
}

func newQuery(selectFrom string) *query {
	q := &query{}
	q.sb.WriteString(selectFrom)
	q.sb.WriteString(" WHERE 1")
	return q
}

func (q *query) String() string {
	return q.sb.String()
}

func (q *query) and(c cond) {
	q.sb.WriteString(" AND " + c.column + " = ?")
	q.args = append(q.args, c.value)
}

func (q *query) inRange(r *Range) {
	if r == nil {
		return
	}
	column := "blockNumber"
	if r.Unit == Time {
		column = "blockTime"
	}
	q.sb.WriteString(" AND " + column + " >= ?")
	q.args = append(q.args, r.From)
	if r.To >= r.From {
		q.sb.WriteString(" AND " + column + " <= ?")
		q.args = append(q.args, r.To)
	}
}

// anyOf matches rows satisfying every cond of at least one group. An empty
// group matches everything.
func (q *query) anyOf(groups [][]cond) {
	if len(groups) == 0 {
		return
	}
	q.sb.WriteString(" AND (")
	for i, group := range groups {
		if i > 0 {
			q.sb.WriteString(" OR ")
		}
		q.sb.WriteString("(1")
		for _, c := range group {
			q.and(c)
		}
		q.sb.WriteString(")")
	}
	q.sb.WriteString(")")
}

func (q *query) orderAndPage(order Order, indexColumn string, opts *Options) {
	dir := order.sql()
	q.sb.WriteString(" ORDER BY blockNumber " + dir + ", " + indexColumn + " " + dir)
	if opts != nil {
		q.sb.WriteString(" LIMIT ?, ?")
		q.args = append(q.args, opts.Offset, opts.Limit)
	}
}
