// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/johnqh/auctions-contracts/ledger"
)

// Master is the key the node signs packed blocks with.
type Master struct {
	PrivateKey *ecdsa.PrivateKey
}

func (m *Master) Address() ledger.Address {
	return ledger.Address(crypto.PubkeyToAddress(m.PrivateKey.PublicKey))
}
