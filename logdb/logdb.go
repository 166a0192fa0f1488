// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

var log = ledger.NewLogger("logdb")

const memPath = ":memory:"

// LogDB indexes the events and transfers of committed blocks so they can be
// filtered by auction, account and block range.
type LogDB struct {
	db *sql.DB
}

// New opens or creates the log db at path.
func New(path string) (*LogDB, error) {
	dsn := path
	if path != memPath {
		dsn = "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open logdb")
	}
	if path == memPath {
		// every connection would see its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	ver, _, _ := sqlite3.Version()
	log.Debug("log db opened", "path", path, "sqlite", ver)
	return &LogDB{db}, nil
}

// NewMem creates a log db that lives in memory.
func NewMem() (*LogDB, error) {
	return New(memPath)
}

func (db *LogDB) Close() {
	if err := db.db.Close(); err != nil {
		log.Warn("close logdb", "err", err)
	}
}

// Prepare starts collecting the logs of the block with the given header.
func (db *LogDB) Prepare(header *block.Header) *BlockBatch {
	return &BlockBatch{db: db.db, header: header}
}

// FilterEvents returns the events matching any of the filter's criteria.
// A nil filter returns every event.
func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	q := newQuery("SELECT " + eventColumns + " FROM event")
	if filter != nil {
		q.inRange(filter.Range)
		groups := make([][]cond, 0, len(filter.CriteriaSet))
		for _, c := range filter.CriteriaSet {
			groups = append(groups, c.conds())
		}
		q.anyOf(groups)
		q.orderAndPage(filter.Order, "eventIndex", filter.Options)
	}
	return queryRows(ctx, db.db, q, scanEvent)
}

// FilterTransfers returns the transfers matching any of the filter's criteria.
// A nil filter returns every transfer.
func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	q := newQuery("SELECT " + transferColumns + " FROM transfer")
	if filter != nil {
		q.inRange(filter.Range)
		if filter.TxID != nil {
			q.and(cond{"txID", filter.TxID.Bytes()})
		}
		groups := make([][]cond, 0, len(filter.CriteriaSet))
		for _, c := range filter.CriteriaSet {
			groups = append(groups, c.conds())
		}
		q.anyOf(groups)
		q.orderAndPage(filter.Order, "transferIndex", filter.Options)
	}
	return queryRows(ctx, db.db, q, scanTransfer)
}

func queryRows[T any](ctx context.Context, db *sql.DB, q *query, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanEvent(rows *sql.Rows) (*Event, error) {
	var (
		blockID, txID, txOrigin, address, data []byte
		topics                                 [5][]byte
		ev                                     Event
	)
	if err := rows.Scan(&blockID, &ev.Index, &ev.BlockNumber, &ev.BlockTime, &txID, &txOrigin, &address,
		&topics[0], &topics[1], &topics[2], &topics[3], &topics[4], &data); err != nil {
		return nil, err
	}
	ev.BlockID = ledger.BytesToBytes32(blockID)
	ev.TxID = ledger.BytesToBytes32(txID)
	ev.TxOrigin = ledger.BytesToAddress(txOrigin)
	ev.Address = ledger.BytesToAddress(address)
	ev.Data = data
	for i, topic := range topics {
		if len(topic) > 0 {
			t := ledger.BytesToBytes32(topic)
			ev.Topics[i] = &t
		}
	}
	return &ev, nil
}

func scanTransfer(rows *sql.Rows) (*Transfer, error) {
	var (
		blockID, txID, txOrigin, asset, sender, recipient, subID, amount []byte
		kind                                                             uint8
		tr                                                               Transfer
	)
	if err := rows.Scan(&blockID, &tr.Index, &tr.BlockNumber, &tr.BlockTime, &txID, &txOrigin, &asset,
		&kind, &subID, &sender, &recipient, &amount); err != nil {
		return nil, err
	}
	tr.BlockID = ledger.BytesToBytes32(blockID)
	tr.TxID = ledger.BytesToBytes32(txID)
	tr.TxOrigin = ledger.BytesToAddress(txOrigin)
	tr.Asset = ledger.BytesToAddress(asset)
	tr.Kind = ledger.ItemKind(kind)
	tr.Sender = ledger.BytesToAddress(sender)
	tr.Recipient = ledger.BytesToAddress(recipient)
	tr.Amount = new(big.Int).SetBytes(amount)
	if subID != nil {
		tr.SubID = new(big.Int).SetBytes(subID)
	}
	return &tr, nil
}

// BlockBatch collects the logs of one block and writes them in a single
// sql transaction.
type BlockBatch struct {
	db        *sql.DB
	header    *block.Header
	events    []*Event
	transfers []*Transfer
}

// Add appends the logs produced by one clause of the tx txID.
func (bb *BlockBatch) Add(txID ledger.Bytes32, txOrigin ledger.Address, events tx.Events, transfers tx.Transfers) *BlockBatch {
	loc := Location{
		BlockID:     bb.header.ID(),
		BlockNumber: bb.header.Number(),
		BlockTime:   bb.header.Timestamp(),
		TxID:        txID,
		TxOrigin:    txOrigin,
	}
	for _, ev := range events {
		loc.Index = uint32(len(bb.events))
		e := &Event{Location: loc, Address: ev.Address, Data: ev.Data}
		for i := 0; i < len(ev.Topics) && i < len(e.Topics); i++ {
			topic := ev.Topics[i]
			e.Topics[i] = &topic
		}
		bb.events = append(bb.events, e)
	}
	for _, tr := range transfers {
		loc.Index = uint32(len(bb.transfers))
		bb.transfers = append(bb.transfers, &Transfer{
			Location:  loc,
			Asset:     tr.Asset,
			Kind:      tr.Kind,
			SubID:     tr.SubID,
			Sender:    tr.Sender,
			Recipient: tr.Recipient,
			Amount:    tr.Amount,
		})
	}
	return bb
}

// InsertReceipts adds the outputs of every non-reverted receipt.
func (bb *BlockBatch) InsertReceipts(receipts tx.Receipts) *BlockBatch {
	for _, r := range receipts {
		if r.Reverted {
			continue
		}
		for _, out := range r.Outputs {
			bb.Add(r.TxID, r.Origin, out.Events, out.Transfers)
		}
	}
	return bb
}

func (bb *BlockBatch) Commit() error {
	dbTx, err := bb.db.Begin()
	if err != nil {
		return err
	}
	if err := bb.write(dbTx); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			log.Warn("rollback logdb", "err", rbErr)
		}
		return errors.Wrapf(err, "write logs of block %v", bb.header.Number())
	}
	return dbTx.Commit()
}

func (bb *BlockBatch) write(dbTx *sql.Tx) error {
	if len(bb.events) > 0 {
		stmt, err := dbTx.Prepare(insertEvent)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, ev := range bb.events {
			if _, err := stmt.Exec(ev.BlockID.Bytes(), ev.Index, ev.BlockNumber, ev.BlockTime, ev.TxID.Bytes(), ev.TxOrigin.Bytes(),
				ev.Address.Bytes(), topicValue(ev.Topics[0]), topicValue(ev.Topics[1]), topicValue(ev.Topics[2]),
				topicValue(ev.Topics[3]), topicValue(ev.Topics[4]), ev.Data); err != nil {
				return err
			}
		}
	}
	if len(bb.transfers) > 0 {
		stmt, err := dbTx.Prepare(insertTransfer)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, tr := range bb.transfers {
			if _, err := stmt.Exec(tr.BlockID.Bytes(), tr.Index, tr.BlockNumber, tr.BlockTime, tr.TxID.Bytes(), tr.TxOrigin.Bytes(),
				tr.Asset.Bytes(), uint8(tr.Kind), bigValue(tr.SubID), tr.Sender.Bytes(), tr.Recipient.Bytes(), bigValue(tr.Amount)); err != nil {
				return err
			}
		}
	}
	return nil
}

func topicValue(topic *ledger.Bytes32) []byte {
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}

func bigValue(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	return v.Bytes()
}
