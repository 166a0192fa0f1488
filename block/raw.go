// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"github.com/ethereum/go-ethereum/rlp"
)

// Raw is an RLP encoded block as kept in the chain store.
type Raw []byte

// EncodeRaw encodes blk for storage.
func EncodeRaw(blk *Block) (Raw, error) {
	return rlp.EncodeToBytes(blk)
}

// DecodeHeader decodes the header only, leaving the transactions untouched.
func (r Raw) DecodeHeader() (*Header, error) {
	content, _, err := rlp.SplitList(r)
	if err != nil {
		return nil, err
	}
	_, _, rest, err := rlp.Split(content)
	if err != nil {
		return nil, err
	}
	var h Header
	if err := rlp.DecodeBytes(content[:len(content)-len(rest)], &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// DecodeBlock decodes the whole block.
func (r Raw) DecodeBlock() (*Block, error) {
	var blk Block
	if err := rlp.DecodeBytes(r, &blk); err != nil {
		return nil, err
	}
	return &blk, nil
}
