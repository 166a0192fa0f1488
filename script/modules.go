// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/script/admin"
	"github.com/johnqh/auctions-contracts/script/auction"
)

const (
	AUCTION_MODULE_NAME = string("auction")
	AUCTION_MODULE_ID   = uint32(1001)

	ADMIN_MODULE_NAME = string("admin")
	ADMIN_MODULE_ID   = uint32(1002)
)

func ModuleAuctionInit(se *ScriptEngine) *auction.Auction {
	a := auction.NewAuction()
	if se.transferer != nil {
		a.WithTransferer(se.transferer)
	}
	se.mustRegister(&Module{
		Name:    AUCTION_MODULE_NAME,
		ID:      AUCTION_MODULE_ID,
		Addr:    ledger.AuctionModuleAddr,
		Handler: a.Handle,
	})
	a.Start()
	return a
}

func ModuleAdminInit(se *ScriptEngine) *admin.Admin {
	a := admin.NewAdmin()
	se.mustRegister(&Module{
		Name:    ADMIN_MODULE_NAME,
		ID:      ADMIN_MODULE_ID,
		Addr:    ledger.AdminModuleAddr,
		Handler: a.Handle,
	})
	a.Start()
	return a
}

func (se *ScriptEngine) mustRegister(m *Module) {
	if err := se.modReg.Register(m); err != nil {
		panic(err)
	}
	se.logger.Info("module registered", "module", m.String())
}
