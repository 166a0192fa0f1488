// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/johnqh/auctions-contracts/ledger"
)

// BlockContext block context.
// Time is the only clock auctions consult.
type BlockContext struct {
	Signer ledger.Address
	Number uint32
	Time   uint64
}

func (ctx *BlockContext) String() string {
	return fmt.Sprintf("blockCtx{Number:%d Time:%d Signer:%s}", ctx.Number, ctx.Time, ctx.Signer)
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID         ledger.Bytes32
	Origin     ledger.Address
	Expiration uint32
	Nonce      uint64
}

func (ctx *TransactionContext) String() string {
	return fmt.Sprintf("txCtx{ID:%s Origin:%s Exp:%d Nonce:%d}", ctx.ID.String(), ctx.Origin.String(), ctx.Expiration, ctx.Nonce)
}
