// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/txpool"
)

type Node struct {
	chain  *chain.Chain
	pool   *txpool.TxPool
	signer string
}

func New(chain *chain.Chain, pool *txpool.TxPool, signer string) *Node {
	return &Node{
		chain,
		pool,
		signer,
	}
}

func (n *Node) handleStatus(w http.ResponseWriter, req *http.Request) error {
	best := n.chain.BestBlock().Header()
	return utils.WriteJSON(w, &Status{
		GenesisID: n.chain.GenesisBlock().Header().ID().String(),
		ChainTag:  n.chain.Tag(),
		BestBlock: &BestBlock{
			Number:    best.Number(),
			ID:        best.ID().String(),
			Timestamp: best.Timestamp(),
		},
		PendingTxs: n.pool.Len(),
		Signer:     n.signer,
	})
}

func (n *Node) handleSigner(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, n.signer)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(n.handleStatus))
	sub.Path("/signer").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(n.handleSigner))
}
