// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"strconv"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/johnqh/auctions-contracts/ledger"
)

// DevAccount account for development.
type DevAccount struct {
	Address    ledger.Address
	PrivateKey *ecdsa.PrivateKey
}

// devnet assets
var (
	DevUSD   = ledger.BytesToAddress([]byte("dev-usd"))
	DevNFT   = ledger.BytesToAddress([]byte("dev-nft"))
	DevMulti = ledger.BytesToAddress([]byte("dev-multi"))
)

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{ledger.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevnetConfig is the config of the solo devnet: the first dev account owns the
// protocol, every account holds DevUSD, and the second account holds NFTs 1-10
// and 100 DevMulti tokens of id 1.
func DevnetConfig() *Config {
	accs := DevAccounts()
	rate := ledger.DefaultFeeRate
	cfg := &Config{
		Name:    "devnet",
		Time:    1700000000,
		Owner:   accs[0].Address.String(),
		FeeRate: &rate,
	}
	for _, a := range accs {
		cfg.Allocations = append(cfg.Allocations, Allocation{
			Asset:  DevUSD.String(),
			Kind:   "fungible",
			Owner:  a.Address.String(),
			Amount: "1000000000000",
		})
	}
	dealer := accs[1].Address.String()
	for i := 1; i <= 10; i++ {
		cfg.Allocations = append(cfg.Allocations, Allocation{
			Asset: DevNFT.String(),
			Kind:  "non-fungible",
			Owner: dealer,
			SubID: strconv.Itoa(i),
		})
	}
	cfg.Allocations = append(cfg.Allocations, Allocation{
		Asset:  DevMulti.String(),
		Kind:   "semi-fungible",
		Owner:  dealer,
		SubID:  "1",
		Amount: "100",
	})
	return cfg
}

// NewDevnet create genesis for solo mode.
func NewDevnet() *Genesis {
	g, err := NewFromConfig(DevnetConfig())
	if err != nil {
		panic(err)
	}
	return g
}
