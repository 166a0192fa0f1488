// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer

import "github.com/pkg/errors"

var (
	errParentNotBest     = errors.New("parent is not the best block")
	errTxNotAdoptableNow = errors.New("tx not adoptable now")
	errKnownTx           = errors.New("known tx")
)

type badTxError struct {
	msg string
}

func (e badTxError) Error() string {
	return "bad tx: " + e.msg
}

// IsBadTx returns whether the given error indicates that tx is bad and can be dropped.
func IsBadTx(err error) bool {
	_, ok := err.(badTxError)
	return ok
}

// IsKnownTx returns whether the given error means the tx is already packed.
func IsKnownTx(err error) bool {
	return err == errKnownTx
}

// IsTxNotAdoptableNow returns whether the tx may be adopted by a later block.
func IsTxNotAdoptableNow(err error) bool {
	return err == errTxNotAdoptableNow
}
