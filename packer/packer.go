// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer

import (
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/runtime"
	"github.com/johnqh/auctions-contracts/script"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/xenv"
	"github.com/pkg/errors"
)

// Packer to pack txs and build new blocks.
type Packer struct {
	chain        *chain.Chain
	stateCreator *state.Creator
	se           *script.ScriptEngine
	nodeMaster   ledger.Address
}

// New create a new Packer instance.
func New(
	chain *chain.Chain,
	stateCreator *state.Creator,
	se *script.ScriptEngine,
	nodeMaster ledger.Address) *Packer {

	return &Packer{
		chain,
		stateCreator,
		se,
		nodeMaster,
	}
}

// Schedule creates a packing flow upon parent, timestamped at now but never
// earlier than one second after the parent.
func (p *Packer) Schedule(parent *block.Header, nowTimestamp uint64) (*Flow, error) {
	targetTime := nowTimestamp
	if min := parent.Timestamp() + 1; targetTime < min {
		targetTime = min
	}
	return p.Mock(parent, targetTime)
}

// Mock create a packing flow upon given parent, but with a designated timestamp.
// State is flat, so the parent must be the best block.
func (p *Packer) Mock(parent *block.Header, targetTime uint64) (*Flow, error) {
	if parent.ID() != p.chain.BestBlock().Header().ID() {
		return nil, errParentNotBest
	}
	if targetTime <= parent.Timestamp() {
		return nil, errors.Errorf("target time %d not after parent %d", targetTime, parent.Timestamp())
	}

	rt := runtime.New(
		p.se,
		p.stateCreator.NewState(),
		&xenv.BlockContext{
			Signer: p.nodeMaster,
			Number: parent.Number() + 1,
			Time:   targetTime,
		})

	return newFlow(p, parent, rt), nil
}
