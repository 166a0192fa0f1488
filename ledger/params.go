// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/binary"
	"math/big"
)

const (
	MaxItems           = 255
	MaxFeeRate         = uint64(1000) // 10%
	FeeDenominator     = uint64(10000)
	DefaultFeeRate     = uint64(50) // 0.5%
	AcceptancePeriod   = uint64(86400)
	PennyTimerDuration = uint64(300)
)

var (
	// module accounts, derived like any other address but never signing
	AuctionModuleAddr = BytesToAddress([]byte("auction-module"))
	AdminModuleAddr   = BytesToAddress([]byte("admin-module"))

	KeyAdminConfig   = Blake2b([]byte("admin-config"))
	KeyNextAuctionID = Blake2b([]byte("next-auction-id"))

	// MaxAmount is the largest amount a slot can carry.
	MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

func idBytes(id uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return b[:]
}

// KeyAuction is the storage key of the record of an auction.
func KeyAuction(id uint64) Bytes32 {
	return Blake2b([]byte("auction"), idBytes(id))
}

// KeyEscrow is the storage key of the escrow account of an auction.
func KeyEscrow(id uint64) Bytes32 {
	return Blake2b([]byte("escrow"), idBytes(id))
}

// KeyFeeVault is the storage key of the accrued fees of a payment asset.
func KeyFeeVault(asset Address) Bytes32 {
	return Blake2b([]byte("fee-vault"), asset[:])
}

// token slots, stored under the asset's own address

func KeyFungibleBalance(owner Address) Bytes32 {
	return Blake2b([]byte("balance"), owner[:])
}

func KeyTokenOwner(subID *big.Int) Bytes32 {
	return Blake2b([]byte("owner"), BytesToBytes32(subID.Bytes()).Bytes())
}

func KeySemiBalance(subID *big.Int, owner Address) Bytes32 {
	return Blake2b([]byte("semi-balance"), BytesToBytes32(subID.Bytes()).Bytes(), owner[:])
}
