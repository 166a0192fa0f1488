// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"fmt"
	"sort"
	"sync"

	"github.com/johnqh/auctions-contracts/ledger"
	setypes "github.com/johnqh/auctions-contracts/script/types"
	"github.com/pkg/errors"
)

type ModuleHandler func(env *setypes.ScriptEnv, payload []byte, to ledger.Address) (*setypes.Output, error)

// Module binds a handler to its id and the address clauses must target.
type Module struct {
	Name    string
	ID      uint32
	Addr    ledger.Address
	Handler ModuleHandler
}

func (m *Module) String() string {
	return fmt.Sprintf("%s(%d)@%s", m.Name, m.ID, m.Addr)
}

// Registry indexes modules by id. The zero value is empty and ready for use.
type Registry struct {
	mu   sync.RWMutex
	byID map[uint32]*Module
}

// Register adds m. Both its id and its address must be unused.
func (r *Registry) Register(m *Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byID == nil {
		r.byID = make(map[uint32]*Module)
	}
	if _, ok := r.byID[m.ID]; ok {
		return errors.Errorf("module id %d already registered", m.ID)
	}
	for _, other := range r.byID {
		if other.Addr == m.Addr {
			return errors.Errorf("address %s already bound to module %s", m.Addr, other.Name)
		}
	}
	r.byID[m.ID] = m
	return nil
}

func (r *Registry) Find(id uint32) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	return m, ok
}

// All lists the registered modules ordered by id.
func (r *Registry) All() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Module, 0, len(r.byID))
	for _, m := range r.byID {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
