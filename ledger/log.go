// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var rootHandler atomic.Pointer[slog.Handler]

// NewLogger returns a logger tagged with pkg. Its records go to the handler
// installed by SetLogHandler, even when the logger was created before it.
func NewLogger(pkg string) *slog.Logger {
	return slog.New(&lazyHandler{}).With("pkg", pkg)
}

// SetLogHandler installs h as the root handler and as slog's default.
func SetLogHandler(h slog.Handler) {
	rootHandler.Store(&h)
	slog.SetDefault(slog.New(h))
}

func currentHandler() slog.Handler {
	if p := rootHandler.Load(); p != nil {
		return *p
	}
	return slog.Default().Handler()
}

// lazyHandler replays its attrs and groups onto the current root handler.
type lazyHandler struct {
	wrap []func(slog.Handler) slog.Handler
}

func (l *lazyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return currentHandler().Enabled(ctx, level)
}

func (l *lazyHandler) Handle(ctx context.Context, r slog.Record) error {
	h := currentHandler()
	for _, w := range l.wrap {
		h = w(h)
	}
	return h.Handle(ctx, r)
}

func (l *lazyHandler) with(w func(slog.Handler) slog.Handler) *lazyHandler {
	wrap := make([]func(slog.Handler) slog.Handler, len(l.wrap), len(l.wrap)+1)
	copy(wrap, l.wrap)
	return &lazyHandler{wrap: append(wrap, w)}
}

func (l *lazyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return l
	}
	return l.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (l *lazyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return l
	}
	return l.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}
