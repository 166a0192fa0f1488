// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/tx"
)

type Block struct {
	Number       uint32       `json:"number"`
	ID           string       `json:"id"`
	ParentID     string       `json:"parentID"`
	Timestamp    uint64       `json:"timestamp"`
	Signer       string       `json:"signer"`
	TxsRoot      string       `json:"txsRoot"`
	StateHash    string       `json:"stateHash"`
	ReceiptsRoot string       `json:"receiptsRoot"`
	Transactions []string     `json:"transactions"`
	Outcomes     []*TxOutcome `json:"outcomes,omitempty"`
}

// TxOutcome summarizes how a packed tx went, in block order.
type TxOutcome struct {
	TxID      string `json:"txID"`
	Origin    string `json:"origin"`
	Reverted  bool   `json:"reverted"`
	Error     string `json:"error,omitempty"`
	Events    int    `json:"events"`
	Transfers int    `json:"transfers"`
}

func convertBlock(b *block.Block) (*Block, error) {
	header := b.Header()
	signer, err := header.Signer()
	if err != nil {
		return nil, err
	}
	txs := b.Transactions()
	ids := make([]string, 0, len(txs))
	for _, trx := range txs {
		ids = append(ids, trx.ID().String())
	}
	return &Block{
		Number:       header.Number(),
		ID:           header.ID().String(),
		ParentID:     header.ParentID().String(),
		Timestamp:    header.Timestamp(),
		Signer:       signer.String(),
		TxsRoot:      header.TxsRoot().String(),
		StateHash:    header.StateHash().String(),
		ReceiptsRoot: header.ReceiptsRoot().String(),
		Transactions: ids,
	}, nil
}

func convertOutcomes(receipts tx.Receipts) []*TxOutcome {
	outcomes := make([]*TxOutcome, 0, len(receipts))
	for _, r := range receipts {
		o := &TxOutcome{
			TxID:     r.TxID.String(),
			Origin:   r.Origin.String(),
			Reverted: r.Reverted,
			Error:    r.Error,
		}
		for _, out := range r.Outputs {
			o.Events += len(out.Events)
			o.Transfers += len(out.Transfers)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}
