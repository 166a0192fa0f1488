// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/johnqh/auctions-contracts/api/accounts"
	"github.com/johnqh/auctions-contracts/api/admin"
	"github.com/johnqh/auctions-contracts/api/auctions"
	"github.com/johnqh/auctions-contracts/api/blocks"
	"github.com/johnqh/auctions-contracts/api/events"
	"github.com/johnqh/auctions-contracts/api/node"
	"github.com/johnqh/auctions-contracts/api/subscriptions"
	"github.com/johnqh/auctions-contracts/api/transactions"
	"github.com/johnqh/auctions-contracts/api/transfers"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/johnqh/auctions-contracts/notify"
	"github.com/johnqh/auctions-contracts/script"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/txpool"
)

// New return api router
func New(chain *chain.Chain, stateCreator *state.Creator, se *script.ScriptEngine, txPool *txpool.TxPool, logDB *logdb.LogDB, hub *notify.Hub, allowedOrigins string, signer string) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	auctions.New(chain, stateCreator).
		Mount(router, "/auctions")
	admin.New(stateCreator).
		Mount(router, "/admin")
	accounts.New(chain, stateCreator, se).
		Mount(router, "/accounts")
	events.New(logDB).
		Mount(router, "/logs/events")
	transfers.New(logDB).
		Mount(router, "/logs/transfers")
	blocks.New(chain).
		Mount(router, "/blocks")
	transactions.New(chain, txPool).
		Mount(router, "/transactions")
	node.New(chain, txPool, signer).
		Mount(router, "/node")
	subs := subscriptions.New(hub, origins)
	subs.Mount(router, "/subscriptions")

	return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedHeaders([]string{"content-type"}))(router).ServeHTTP,
		subs.Close // subscriptions handles hijacked conns, which need to be closed
}
