// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package notify

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/event"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

var log = ledger.NewLogger("notify")

// Publisher delivers the notifications of a packed block.
type Publisher interface {
	Publish(ns []*Notification)
}

// Hub fans notifications out to in-process subscribers.
type Hub struct {
	feed  event.Feed
	scope event.SubscriptionScope
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers ch to receive every published notification.
func (h *Hub) Subscribe(ch chan *Notification) event.Subscription {
	return h.scope.Track(h.feed.Subscribe(ch))
}

// Publish sends ns to every subscriber, blocking until all have received.
func (h *Hub) Publish(ns []*Notification) {
	for _, n := range ns {
		h.feed.Send(n)
	}
}

// Close unsubscribes all subscribers.
func (h *Hub) Close() {
	h.scope.Close()
}

// NATSPublisher publishes every notification as JSON on
// "<prefix>.<module>.<name>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("auctiond"))
	if err != nil {
		return nil, errors.Wrap(err, "connect nats")
	}
	log.Info("connected to nats", "url", conn.ConnectedUrl())
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

// Publish is best effort: failures are logged and dropped.
func (p *NATSPublisher) Publish(ns []*Notification) {
	for _, n := range ns {
		data, err := json.Marshal(n)
		if err != nil {
			log.Error("marshal notification", "id", n.ID, "err", err)
			continue
		}
		subject := n.Subject(p.prefix)
		if err := p.conn.Publish(subject, data); err != nil {
			log.Warn("publish notification", "subject", subject, "err", err)
			continue
		}
		log.Debug("published", "subject", subject, "id", n.ID)
	}
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		log.Warn("drain nats", "err", err)
	}
}

// Multi publishes to each publisher in order.
type Multi []Publisher

func (m Multi) Publish(ns []*Notification) {
	for _, p := range m {
		p.Publish(ns)
	}
}
