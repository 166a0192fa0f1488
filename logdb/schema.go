// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const (
	eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	blockID CHAR(66) NOT NULL,
	eventIndex INTEGER NOT NULL,
	blockNumber INTEGER NOT NULL,
	blockTime INTEGER NOT NULL,
	txID CHAR(66) NOT NULL,
	txOrigin CHAR(42) NOT NULL,
	address CHAR(42) NOT NULL,
	topic0 CHAR(66),
	topic1 CHAR(66),
	topic2 CHAR(66),
	topic3 CHAR(66),
	topic4 CHAR(66),
	data BLOB,
	PRIMARY KEY (blockID, eventIndex));
CREATE INDEX IF NOT EXISTS event_i0 ON event(blockNumber);
CREATE INDEX IF NOT EXISTS event_i1 ON event(address, topic0, topic1);
`

	transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	blockID CHAR(66) NOT NULL,
	transferIndex INTEGER NOT NULL,
	blockNumber INTEGER NOT NULL,
	blockTime INTEGER NOT NULL,
	txID CHAR(66) NOT NULL,
	txOrigin CHAR(42) NOT NULL,
	asset CHAR(42) NOT NULL,
	kind INTEGER NOT NULL,
	subID BLOB,
	sender CHAR(42) NOT NULL,
	recipient CHAR(42) NOT NULL,
	amount BLOB,
	PRIMARY KEY (blockID, transferIndex));
CREATE INDEX IF NOT EXISTS transfer_i0 ON transfer(blockNumber);
CREATE INDEX IF NOT EXISTS transfer_i1 ON transfer(txOrigin);
CREATE INDEX IF NOT EXISTS transfer_i2 ON transfer(sender);
CREATE INDEX IF NOT EXISTS transfer_i3 ON transfer(recipient);
`

	eventColumns    = "blockID, eventIndex, blockNumber, blockTime, txID, txOrigin, address, topic0, topic1, topic2, topic3, topic4, data"
	transferColumns = "blockID, transferIndex, blockNumber, blockTime, txID, txOrigin, asset, kind, subID, sender, recipient, amount"

	insertEvent    = "INSERT OR REPLACE INTO event(" + eventColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	insertTransfer = "INSERT OR REPLACE INTO transfer(" + transferColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
)

var topicColumns = [5]string{"topic0", "topic1", "topic2", "topic3", "topic4"}
