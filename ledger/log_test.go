// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/stretchr/testify/assert"
)

func TestLoggerFollowsLateHandler(t *testing.T) {
	prev := slog.Default().Handler()
	defer ledger.SetLogHandler(prev)

	logger := ledger.NewLogger("test").With("k", 1)

	var buf bytes.Buffer
	ledger.SetLogHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("hello", "v", "x")
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "pkg=test")
	assert.Contains(t, out, "k=1")
	assert.Contains(t, out, "v=x")

	buf.Reset()
	ledger.SetLogHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger.Info("dropped")
	logger.WithGroup("g").Warn("kept", "a", 2)
	out = buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "g.a=2")
}
