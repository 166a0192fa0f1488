// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/binary"

	"github.com/johnqh/auctions-contracts/ledger"
)

// BlockRef pins a tx to a block: the block number in the first four bytes,
// then the head of that block's id.
type BlockRef [8]byte

func (br BlockRef) Number() uint32 {
	return binary.BigEndian.Uint32(br[:4])
}

func (br BlockRef) Uint64() uint64 {
	return binary.BigEndian.Uint64(br[:])
}

// NewBlockRef references a block by number only.
func NewBlockRef(blockNum uint32) BlockRef {
	var br BlockRef
	binary.BigEndian.PutUint32(br[:4], blockNum)
	return br
}

// NewBlockRefFromID references the block with the given id.
func NewBlockRefFromID(blockID ledger.Bytes32) BlockRef {
	var br BlockRef
	copy(br[:], blockID[:8])
	return br
}

func newBlockRefFromUint64(v uint64) BlockRef {
	var br BlockRef
	binary.BigEndian.PutUint64(br[:], v)
	return br
}
