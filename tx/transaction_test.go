// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTx(t *testing.T) {
	to := ledger.AuctionModuleAddr
	trx := new(tx.Builder).ChainTag(1).
		BlockRef(tx.BlockRef{0, 0, 0, 0, 0xaa, 0xbb, 0xcc, 0xdd}).
		Expiration(32).
		Clause(tx.NewClause(to).WithData([]byte{0, 0, 0, 0x60, 0x60, 0x60})).
		Clause(tx.NewClause(to).WithData([]byte{0, 0, 0, 0x60, 0x60, 0x61})).
		Nonce(12345678).Build()

	assert.Equal(t, []byte(nil), trx.Signature())
	signer, err := trx.Origin()
	require.NoError(t, err)
	assert.True(t, signer.IsZero())

	k, _ := hex.DecodeString("7582be841ca040aa940fff6c05773129e135623e41acce3e0b8ba520dc1ae26a")
	priv, _ := crypto.ToECDSA(k)
	sig, _ := crypto.Sign(trx.SigningHash().Bytes(), priv)

	signed := trx.WithSignature(sig)
	assert.Equal(t, "0xd989829d88b0ed1b06edf5c50174ecfa64f14a64", func() string { s, _ := signed.Origin(); return s.String() }())
	assert.Equal(t, trx.SigningHash(), signed.SigningHash())
	assert.NotEqual(t, ledger.Bytes32{}, signed.ID())

	data, err := rlp.EncodeToBytes(signed)
	require.NoError(t, err)
	var decoded tx.Transaction
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, signed.ID(), decoded.ID())
	assert.Equal(t, 2, len(decoded.Clauses()))
	assert.Equal(t, to, decoded.Clauses()[1].To())
	assert.Equal(t, []byte{0, 0, 0, 0x60, 0x60, 0x61}, decoded.Clauses()[1].Data())
}

func TestExpiration(t *testing.T) {
	trx := new(tx.Builder).BlockRef(tx.NewBlockRef(10)).Expiration(5).Build()
	assert.False(t, trx.IsExpired(15))
	assert.True(t, trx.IsExpired(16))
}

func TestReceiptsRootHash(t *testing.T) {
	assert.Equal(t, ledger.Bytes32{}, tx.Receipts{}.RootHash())
	r1 := tx.Receipts{{Reverted: true, Error: "bid too low"}}
	r2 := tx.Receipts{{Reverted: false}}
	assert.NotEqual(t, r1.RootHash(), r2.RootHash())
}
