// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

type BestBlock struct {
	Number    uint32 `json:"number"`
	ID        string `json:"id"`
	Timestamp uint64 `json:"timestamp"`
}

type Status struct {
	GenesisID  string     `json:"genesisID"`
	ChainTag   byte       `json:"chainTag"`
	BestBlock  *BestBlock `json:"bestBlock"`
	PendingTxs int        `json:"pendingTxs"`
	Signer     string     `json:"signer"`
}
