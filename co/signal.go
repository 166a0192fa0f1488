// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Waiter provides channel to wait for.
type Waiter interface {
	C() <-chan struct{}
}

// Signal a rendezvous point for goroutines waiting for or announcing the
// occurrence of an event.
type Signal struct {
	l  sync.Mutex
	ch chan struct{}
}

func (s *Signal) init() {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
}

// Broadcast wakes all goroutines that are waiting on s.
func (s *Signal) Broadcast() {
	s.l.Lock()
	defer s.l.Unlock()
	s.init()
	close(s.ch)
	s.ch = make(chan struct{})
}

// NewWaiter create a Waiter object for acquiring channel to wait for.
func (s *Signal) NewWaiter() Waiter {
	s.l.Lock()
	defer s.l.Unlock()
	s.init()
	return &waiter{s: s, ref: s.ch}
}

type waiter struct {
	s   *Signal
	ref chan struct{}
}

// C returns a channel that is closed by the first broadcast the waiter has
// not consumed yet.
func (w *waiter) C() <-chan struct{} {
	w.s.l.Lock()
	defer w.s.l.Unlock()
	ch := w.ref
	select {
	case <-ch:
		w.ref = w.s.ch
	default:
	}
	return ch
}
