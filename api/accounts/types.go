// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/johnqh/auctions-contracts/api/transactions"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
)

// Balance of an owner in a fungible or semi-fungible asset.
type Balance struct {
	Asset   string `json:"asset"`
	SubID   string `json:"subID,omitempty"`
	Owner   string `json:"owner"`
	Balance string `json:"balance"`
}

// Owner of a non-fungible token, empty when unminted.
type Owner struct {
	Asset string `json:"asset"`
	SubID string `json:"subID"`
	Owner string `json:"owner"`
}

// Clause is a call to a module.
type Clause struct {
	To   *ledger.Address `json:"to"`
	Data string          `json:"data"`
}

// BatchCallData executes clauses in order against the best state without
// committing anything.
type BatchCallData struct {
	Clauses []Clause        `json:"clauses"`
	Caller  *ledger.Address `json:"caller"`
}

type CallResult struct {
	Data      string                   `json:"data"`
	Events    []*transactions.Event    `json:"events"`
	Transfers []*transactions.Transfer `json:"transfers"`
	Reverted  bool                     `json:"reverted"`
	Error     string                   `json:"error,omitempty"`
}

type BatchCallResults []*CallResult

func convertCallResult(output *tx.Output, err error) *CallResult {
	result := &CallResult{
		Events:    make([]*transactions.Event, 0),
		Transfers: make([]*transactions.Transfer, 0),
	}
	if output != nil {
		converted := transactions.ConvertOutput(output)
		result.Data = converted.Data
		result.Events = converted.Events
		result.Transfers = converted.Transfers
	}
	if err != nil {
		result.Reverted = true
		result.Error = err.Error()
	}
	return result
}
