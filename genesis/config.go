// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"
	"strings"

	"github.com/johnqh/auctions-contracts/fee"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Allocation credits an asset to an owner at genesis.
type Allocation struct {
	Asset  string `yaml:"asset"`
	Kind   string `yaml:"kind"` // fungible, non-fungible or semi-fungible
	Owner  string `yaml:"owner"`
	SubID  string `yaml:"subID,omitempty"`
	Amount string `yaml:"amount,omitempty"`
}

// Config is the YAML form of a genesis.
type Config struct {
	Name         string       `yaml:"name"`
	Time         uint64       `yaml:"time"`
	Owner        string       `yaml:"owner,omitempty"`
	FeeRate      *uint64      `yaml:"feeRate,omitempty"`
	FeeRecipient string       `yaml:"feeRecipient,omitempty"`
	Allocations  []Allocation `yaml:"allocations"`
}

// LoadConfig reads a YAML genesis config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML genesis config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse genesis")
	}
	if cfg.Name == "" {
		cfg.Name = "custom"
	}
	return &cfg, nil
}

// Marshal renders the config back to YAML.
func (cfg *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}

func parseKind(s string) (ledger.ItemKind, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "", "fungible":
		return ledger.Fungible, nil
	case "nonfungible", "nft":
		return ledger.NonFungible, nil
	case "semifungible", "sft":
		return ledger.SemiFungible, nil
	}
	return 0, errors.Errorf("unknown asset kind %q", s)
}

func parseAmount(s string, def int64) (*big.Int, error) {
	if s == "" {
		return big.NewInt(def), nil
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok || v.Sign() < 0 || v.Cmp(ledger.MaxAmount) > 0 {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func (a *Allocation) apply(st *state.State) error {
	asset, err := ledger.ParseAddress(a.Asset)
	if err != nil {
		return errors.Wrapf(err, "asset %q", a.Asset)
	}
	owner, err := ledger.ParseAddress(a.Owner)
	if err != nil {
		return errors.Wrapf(err, "owner %q", a.Owner)
	}
	kind, err := parseKind(a.Kind)
	if err != nil {
		return err
	}
	amount, err := parseAmount(a.Amount, 1)
	if err != nil {
		return err
	}

	switch kind {
	case ledger.Fungible:
		bal := st.GetFungibleBalance(asset, owner)
		st.SetFungibleBalance(asset, owner, new(big.Int).Add(bal, amount))
	case ledger.NonFungible:
		subID, err := parseAmount(a.SubID, 0)
		if err != nil {
			return err
		}
		if cur := st.GetTokenOwner(asset, subID); !cur.IsZero() {
			return errors.Errorf("token %v of %v allocated twice", subID, asset)
		}
		st.SetTokenOwner(asset, subID, owner)
	case ledger.SemiFungible:
		subID, err := parseAmount(a.SubID, 0)
		if err != nil {
			return err
		}
		bal := st.GetSemiBalance(asset, subID, owner)
		st.SetSemiBalance(asset, subID, owner, new(big.Int).Add(bal, amount))
	}
	return nil
}

// NewFromConfig creates a genesis from config.
// Without an owner the protocol stays uninitialized until the first OP_INITIALIZE.
func NewFromConfig(cfg *Config) (*Genesis, error) {
	if cfg.Owner == "" && (cfg.FeeRate != nil || cfg.FeeRecipient != "") {
		return nil, errors.New("fee settings require an owner")
	}
	adminCfg := &ledger.AdminConfig{FeeRate: ledger.DefaultFeeRate}
	if cfg.FeeRate != nil {
		if err := fee.ValidateRate(*cfg.FeeRate); err != nil {
			return nil, err
		}
		adminCfg.FeeRate = *cfg.FeeRate
	}
	if cfg.Owner != "" {
		owner, err := ledger.ParseAddress(cfg.Owner)
		if err != nil {
			return nil, errors.Wrap(err, "owner")
		}
		adminCfg.Initialized = true
		adminCfg.Owner = owner
	}
	if cfg.FeeRecipient != "" {
		recipient, err := ledger.ParseAddress(cfg.FeeRecipient)
		if err != nil {
			return nil, errors.Wrap(err, "fee recipient")
		}
		adminCfg.FeeRecipient = recipient
	}

	builder := new(Builder).
		Timestamp(cfg.Time).
		State(func(st *state.State) error {
			if adminCfg.Initialized {
				st.SetAdminConfig(adminCfg)
			}
			for i := range cfg.Allocations {
				if err := cfg.Allocations[i].apply(st); err != nil {
					return errors.Wrapf(err, "allocation %d", i)
				}
			}
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	log.Debug("genesis computed", "name", cfg.Name, "id", id)
	return &Genesis{builder, id, cfg.Name}, nil
}
