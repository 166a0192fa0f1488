// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/johnqh/auctions-contracts/api/utils"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/notify"
	"github.com/pkg/errors"
)

var log = ledger.NewLogger("subscriptions")

const (
	queueLimit   = 256
	writeTimeout = 10 * time.Second
	pongTimeout  = 30 * time.Second
	pingPeriod   = (pongTimeout * 7) / 10
)

var errSlowSubscriber = errors.New("subscriber too slow")

type Subscriptions struct {
	hub      *notify.Hub
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(hub *notify.Hub, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		hub: hub,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				origin = strings.ToLower(origin)
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) handleSubjectEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseEventFilter(req.URL.Query())
	if err != nil {
		return utils.BadRequest(err)
	}
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has responded already
		log.Debug("upgrade failed", "err", err)
		return nil
	}
	s.wg.Add(1)
	defer s.wg.Done()

	if err := s.pipe(conn, filter); err != nil {
		log.Debug("subscription closed", "remote", conn.RemoteAddr(), "err", err)
	}
	return nil
}

// pipe streams matching notifications to conn until the peer goes away,
// the hub is closed or the subscriptions are closed.
func (s *Subscriptions) pipe(conn *websocket.Conn, filter *EventFilter) error {
	closed := make(chan struct{})
	// the read loop only serves pong and close frames
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongTimeout))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	defer func() {
		conn.Close()
		<-closed
	}()

	// the hub must never wait on a slow peer, so a forwarder drains the
	// subscription into a bounded queue and gives up on overflow
	var (
		ch       = make(chan *notify.Notification)
		queue    = make(chan *notify.Notification, queueLimit)
		overflow = make(chan struct{})
		stop     = make(chan struct{})
		fwdDone  = make(chan struct{})
	)
	sub := s.hub.Subscribe(ch)
	go func() {
		defer close(fwdDone)
		defer sub.Unsubscribe()
		for {
			select {
			case n := <-ch:
				if !filter.Match(n) {
					continue
				}
				select {
				case queue <- n:
				default:
					close(overflow)
					return
				}
			case <-sub.Err():
				return
			case <-stop:
				return
			}
		}
	}()
	defer func() {
		close(stop)
		<-fwdDone
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-s.done:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		case <-closed:
			return nil
		case <-overflow:
			return errSlowSubscriber
		case n := <-queue:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(n); err != nil {
				return err
			}
		case <-fwdDone:
			// hub closed
			return nil
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// Close closes all subscriptions and waits for them to end.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").Methods("Get").HandlerFunc(utils.WrapHandlerFunc(s.handleSubjectEvents))
}
