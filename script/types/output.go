// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import "github.com/johnqh/auctions-contracts/tx"

// Output is what one module call produced: its return data, plus the
// transfers and events it recorded.
type Output struct {
	Data      []byte
	Transfers tx.Transfers
	Events    tx.Events
}
