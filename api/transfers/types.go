// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"net/url"

	"github.com/johnqh/auctions-contracts/api/events"
	"github.com/johnqh/auctions-contracts/api/transactions"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/pkg/errors"
)

type FilteredTransfer struct {
	Asset     string               `json:"asset"`
	Kind      string               `json:"kind"`
	SubID     string               `json:"subID,omitempty"`
	Sender    string               `json:"sender"`
	Recipient string               `json:"recipient"`
	Amount    string               `json:"amount"`
	Meta      transactions.LogMeta `json:"meta"`
}

func convertTransfer(transfer *logdb.Transfer) *FilteredTransfer {
	ft := &FilteredTransfer{
		Asset:     transfer.Asset.String(),
		Kind:      transfer.Kind.String(),
		Sender:    transfer.Sender.String(),
		Recipient: transfer.Recipient.String(),
		Amount:    utils.BigString(transfer.Amount),
		Meta: transactions.LogMeta{
			BlockID:        transfer.BlockID.String(),
			BlockNumber:    transfer.BlockNumber,
			BlockTimestamp: transfer.BlockTime,
			TxID:           transfer.TxID.String(),
			TxOrigin:       transfer.TxOrigin.String(),
		},
	}
	if transfer.Kind != ledger.Fungible && transfer.SubID != nil {
		ft.SubID = transfer.SubID.String()
	}
	return ft
}

type TransferFilter struct {
	TxID        *ledger.Bytes32           `json:"txID"`
	CriteriaSet []*logdb.TransferCriteria `json:"criteriaSet"`
	Range       *logdb.Range              `json:"range"`
	Options     *logdb.Options            `json:"options"`
	Order       logdb.Order               `json:"order"`
}

func parseAddress(q url.Values, name string) (*ledger.Address, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}
	addr, err := ledger.ParseAddress(s)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	return &addr, nil
}

// parseQuery builds a filter from url parameters: asset, sender, recipient,
// txOrigin and txID plus range and paging.
func parseQuery(q url.Values) (*logdb.TransferFilter, error) {
	r, err := events.ParseRange(q)
	if err != nil {
		return nil, err
	}
	opts, order, err := events.ParsePaging(q)
	if err != nil {
		return nil, err
	}
	criteria := &logdb.TransferCriteria{}
	if criteria.Asset, err = parseAddress(q, "asset"); err != nil {
		return nil, err
	}
	if criteria.Sender, err = parseAddress(q, "sender"); err != nil {
		return nil, err
	}
	if criteria.Recipient, err = parseAddress(q, "recipient"); err != nil {
		return nil, err
	}
	if criteria.TxOrigin, err = parseAddress(q, "txOrigin"); err != nil {
		return nil, err
	}
	filter := &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{criteria},
		Range:       r,
		Options:     opts,
		Order:       order,
	}
	if s := q.Get("txID"); s != "" {
		txID, err := ledger.ParseBytes32(s)
		if err != nil {
			return nil, errors.WithMessage(err, "txID")
		}
		filter.TxID = &txID
	}
	return filter, nil
}
