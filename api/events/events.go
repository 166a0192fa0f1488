// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/pkg/errors"
)

var log = ledger.NewLogger("events")

type Events struct {
	db *logdb.LogDB
}

func New(db *logdb.LogDB) *Events {
	return &Events{
		db,
	}
}

// Filter query events with option
func (e *Events) filter(ctx context.Context, filter *logdb.EventFilter) ([]*FilteredEvent, error) {
	events, err := e.db.FilterEvents(ctx, filter)
	if err != nil {
		return nil, err
	}
	fes := make([]*FilteredEvent, len(events))
	for i, e := range events {
		fes[i] = convertEvent(e)
	}
	return fes, nil
}

func (e *Events) respond(w http.ResponseWriter, req *http.Request, filter *logdb.EventFilter) error {
	start := time.Now()
	fes, err := e.filter(req.Context(), filter)
	if err != nil {
		return err
	}
	err = utils.WriteJSON(w, fes)

	if elapsed := time.Since(start); elapsed > time.Second {
		filterStr, _ := json.Marshal(filter)
		log.Info("slow handled event query", "query", string(filterStr), "elapsed", ledger.PrettyDuration(elapsed))
	}
	return err
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return e.respond(w, req, convertEventFilter(&filter))
}

func (e *Events) handleQuery(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseQuery(req.URL.Query())
	if err != nil {
		return utils.BadRequest(err)
	}
	return e.respond(w, req, filter)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
	sub.Path("").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(e.handleQuery))
}
