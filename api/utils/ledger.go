// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"
	"strconv"

	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/pkg/errors"
)

// LedgerError maps a classified ledger error onto an http error.
// Errors without a class are returned untouched.
func LedgerError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, notFound) {
		return NotFound(err)
	}
	switch ledger.ClassOf(err) {
	case ledger.ValidationError, ledger.StateError:
		return BadRequest(err)
	case ledger.AuthorizationError:
		return Forbidden(err)
	}
	return err
}

// ParseUint64 parses a decimal or 0x prefixed number, empty string yields def.
func ParseUint64(s string, def uint64) (uint64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseUint(s, 0, 64)
}

// ParseBig parses a decimal or 0x prefixed big integer.
func ParseBig(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok || n.Sign() < 0 {
		return nil, errors.New("invalid number")
	}
	return n, nil
}

// BigString renders nil as "0".
func BigString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}
