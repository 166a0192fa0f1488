// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
)

// AdminBody is the payload of an admin module clause.
type AdminBody struct {
	Opcode  uint32
	Version uint32
	FeeRate uint64
	Address ledger.Address // fee recipient, new owner or claimed asset
}

func (ab *AdminBody) ToString() string {
	return fmt.Sprintf("AdminBody: Opcode=%v, Version=%v, FeeRate=%v, Address=%v",
		GetOpName(ab.Opcode), ab.Version, ab.FeeRate, ab.Address)
}

func (ab *AdminBody) String() string {
	return ab.ToString()
}

func AdminEncodeBytes(ab *AdminBody) []byte {
	b, err := rlp.EncodeToBytes(ab)
	if err != nil {
		log.Error("rlp encode failed", "error", err)
		return []byte{}
	}
	return b
}

func DecodeFromBytes(bytes []byte) (*AdminBody, error) {
	ab := AdminBody{}
	err := rlp.DecodeBytes(bytes, &ab)
	return &ab, err
}
