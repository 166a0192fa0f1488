// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/pkg/errors"
)

// Clause for json marshal
type Clause struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// Transaction transaction
type Transaction struct {
	ID         string    `json:"id"`
	ChainTag   byte      `json:"chainTag"`
	BlockRef   string    `json:"blockRef"`
	Expiration uint32    `json:"expiration"`
	Nonce      uint64    `json:"nonce"`
	Origin     string    `json:"origin"`
	Size       uint32    `json:"size"`
	Clauses    []*Clause `json:"clauses"`
	Meta       *TxMeta   `json:"meta"`
}

// TxMeta locates a packed transaction, nil while pending.
type TxMeta struct {
	BlockID        string `json:"blockID"`
	BlockNumber    uint32 `json:"blockNumber"`
	BlockTimestamp uint64 `json:"blockTimestamp"`
}

// RawTx a raw transaction in hex.
type RawTx struct {
	Raw string `json:"raw"`
}

func (rtx *RawTx) decode() (*tx.Transaction, error) {
	data, err := hexutil.Decode(rtx.Raw)
	if err != nil {
		return nil, err
	}
	var trx *tx.Transaction
	if err := rlp.DecodeBytes(data, &trx); err != nil {
		return nil, err
	}
	return trx, nil
}

// LogMeta is the block and tx a log entry comes from.
type LogMeta struct {
	BlockID        string `json:"blockID"`
	BlockNumber    uint32 `json:"blockNumber"`
	BlockTimestamp uint64 `json:"blockTimestamp"`
	TxID           string `json:"txID"`
	TxOrigin       string `json:"txOrigin"`
}

// Event event.
type Event struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

// Transfer transfer.
type Transfer struct {
	Asset     string `json:"asset"`
	Kind      string `json:"kind"`
	SubID     string `json:"subID,omitempty"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// Output output of a clause.
type Output struct {
	Data      string      `json:"data"`
	Events    []*Event    `json:"events"`
	Transfers []*Transfer `json:"transfers"`
}

// Receipt for json marshal
type Receipt struct {
	TxID     string    `json:"txID"`
	Origin   string    `json:"origin"`
	Reverted bool      `json:"reverted"`
	Error    string    `json:"error,omitempty"`
	Outputs  []*Output `json:"outputs"`
	Meta     *TxMeta   `json:"meta"`
}

func newTxMeta(header *block.Header) *TxMeta {
	return &TxMeta{
		BlockID:        header.ID().String(),
		BlockNumber:    header.Number(),
		BlockTimestamp: header.Timestamp(),
	}
}

// ConvertTransaction converts a tx, header is nil for pending ones.
func ConvertTransaction(trx *tx.Transaction, header *block.Header) (*Transaction, error) {
	origin, err := trx.Origin()
	if err != nil {
		return nil, err
	}
	raw, err := rlp.EncodeToBytes(trx)
	if err != nil {
		return nil, errors.Wrap(err, "encode tx")
	}
	br := trx.BlockRef()
	t := &Transaction{
		ID:         trx.ID().String(),
		ChainTag:   trx.ChainTag(),
		BlockRef:   hexutil.Encode(br[:]),
		Expiration: trx.Expiration(),
		Nonce:      trx.Nonce(),
		Origin:     origin.String(),
		Size:       uint32(len(raw)),
		Clauses:    make([]*Clause, 0, len(trx.Clauses())),
	}
	for _, c := range trx.Clauses() {
		t.Clauses = append(t.Clauses, &Clause{
			To:   c.To().String(),
			Data: hexutil.Encode(c.Data()),
		})
	}
	if header != nil {
		t.Meta = newTxMeta(header)
	}
	return t, nil
}

// ConvertEvent converts a tx event.
func ConvertEvent(ev *tx.Event) *Event {
	e := &Event{
		Address: ev.Address.String(),
		Topics:  make([]string, len(ev.Topics)),
		Data:    hexutil.Encode(ev.Data),
	}
	for i, topic := range ev.Topics {
		e.Topics[i] = topic.String()
	}
	return e
}

// ConvertTransfer converts a tx transfer.
func ConvertTransfer(tr *tx.Transfer) *Transfer {
	t := &Transfer{
		Asset:     tr.Asset.String(),
		Kind:      tr.Kind.String(),
		Sender:    tr.Sender.String(),
		Recipient: tr.Recipient.String(),
		Amount:    utils.BigString(tr.Amount),
	}
	if tr.SubID != nil {
		t.SubID = tr.SubID.String()
	}
	return t
}

// ConvertOutput converts a clause output.
func ConvertOutput(o *tx.Output) *Output {
	out := &Output{
		Data:      hexutil.Encode(o.Data),
		Events:    make([]*Event, len(o.Events)),
		Transfers: make([]*Transfer, len(o.Transfers)),
	}
	for i, ev := range o.Events {
		out.Events[i] = ConvertEvent(ev)
	}
	for i, tr := range o.Transfers {
		out.Transfers[i] = ConvertTransfer(tr)
	}
	return out
}

func convertReceipt(r *tx.Receipt, header *block.Header) *Receipt {
	receipt := &Receipt{
		TxID:     r.TxID.String(),
		Origin:   r.Origin.String(),
		Reverted: r.Reverted,
		Error:    r.Error,
		Outputs:  make([]*Output, len(r.Outputs)),
		Meta:     newTxMeta(header),
	}
	for i, o := range r.Outputs {
		receipt.Outputs[i] = ConvertOutput(o)
	}
	return receipt
}
