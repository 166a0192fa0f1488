// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/script/auction"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func loadBlockAction(ctx *cli.Context) error {
	chain, mainDB, logDB := openInstance(ctx)
	defer mainDB.Close()
	defer logDB.Close()

	var blk *block.Block
	if num := ctx.String(numberFlag.Name); num == "" || num == "best" {
		blk = chain.BestBlock()
	} else {
		n, err := strconv.ParseUint(num, 0, 32)
		if err != nil {
			return errors.WithMessage(err, "number")
		}
		if blk, err = chain.GetTrunkBlock(uint32(n)); err != nil {
			return errors.WithMessage(err, "load block")
		}
	}
	fmt.Println(blk.String())
	receipts, err := chain.GetBlockReceipts(blk.Header().ID())
	if err != nil && !chain.IsNotFound(err) {
		return errors.WithMessage(err, "load receipts")
	}
	dumper.Dump(receipts)
	return nil
}

func loadAuctionAction(ctx *cli.Context) error {
	_, mainDB, logDB := openInstance(ctx)
	defer mainDB.Close()
	defer logDB.Close()

	id := ctx.Uint64(auctionFlag.Name)
	st := state.NewCreator(mainDB).NewState()
	rec, err := auction.GetAuction(st, id)
	if err != nil {
		return err
	}
	dumper.Dump(rec)
	if esc, err := auction.GetEscrowAccount(st, id); err == nil {
		dumper.Dump(esc)
	}
	return nil
}

func loadAdminAction(ctx *cli.Context) error {
	_, mainDB, logDB := openInstance(ctx)
	defer mainDB.Close()
	defer logDB.Close()

	cfg, err := auction.GetAdminConfig(state.NewCreator(mainDB).NewState())
	if err != nil {
		return err
	}
	dumper.Dump(cfg)
	return nil
}
