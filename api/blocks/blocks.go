// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/pkg/errors"
)

type Blocks struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Blocks {
	return &Blocks{chain}
}

// revision selects a block by id, by trunk number, or the best block when
// neither is set.
type revision struct {
	id     *ledger.Bytes32
	number *uint32
}

func parseRevision(s string) (revision, error) {
	if s == "" || s == "best" {
		return revision{}, nil
	}
	if len(s) == 66 || len(s) == 64 {
		id, err := ledger.ParseBytes32(s)
		if err != nil {
			return revision{}, err
		}
		return revision{id: &id}, nil
	}
	n, err := strconv.ParseUint(s, 0, 0)
	if err != nil {
		return revision{}, err
	}
	if n > math.MaxUint32 {
		return revision{}, errors.New("block number out of max uint32")
	}
	num := uint32(n)
	return revision{number: &num}, nil
}

func (b *Blocks) load(rev revision) (*block.Block, error) {
	switch {
	case rev.id != nil:
		return b.chain.GetBlock(*rev.id)
	case rev.number != nil:
		return b.chain.GetTrunkBlock(*rev.number)
	default:
		return b.chain.BestBlock(), nil
	}
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	rev, err := parseRevision(mux.Vars(req)["revision"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "revision"))
	}
	expanded := req.URL.Query().Get("expanded")
	if expanded != "" && expanded != "true" && expanded != "false" {
		return utils.BadRequest(errors.New("expanded: should be boolean"))
	}

	blk, err := b.load(rev)
	if err != nil {
		if b.chain.IsNotFound(err) {
			return utils.NotFound(errors.New("block not found"))
		}
		return err
	}
	res, err := convertBlock(blk)
	if err != nil {
		return err
	}
	if expanded == "true" {
		receipts, err := b.chain.GetBlockReceipts(blk.Header().ID())
		if err != nil && !b.chain.IsNotFound(err) {
			return err
		}
		res.Outcomes = convertOutcomes(receipts)
	}
	return utils.WriteJSON(w, res)
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{revision}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}
