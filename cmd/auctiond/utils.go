// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/johnqh/auctions-contracts/ledger"
	tty "github.com/mattn/go-tty"
	"github.com/pkg/errors"
)

const maxRequestBodySize = 96 * 1000

func fatal(args ...interface{}) {
	fmt.Fprintln(os.Stderr, append([]interface{}{"Fatal:"}, args...)...)
	os.Exit(1)
}

// loadOrGeneratePrivateKey reads the hex key at path, creating and saving a
// fresh one on first start.
func loadOrGeneratePrivateKey(path string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.LoadECDSA(path)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if key, err = crypto.GenerateKey(); err != nil {
		return nil, err
	}
	if err := crypto.SaveECDSA(path, key); err != nil {
		return nil, err
	}
	return key, nil
}

// defaultDataDir is empty when no home directory can be found.
func defaultDataDir() string {
	switch runtime.GOOS {
	case "darwin", "windows":
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, "auctiond")
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".auctiond")
		}
	}
	return ""
}

// exitContext is cancelled on the first SIGINT or SIGTERM.
func exitContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func promptPassphrase(prompt string) (string, error) {
	t, err := tty.Open()
	if err != nil {
		return "", err
	}
	defer t.Close()
	fmt.Fprint(t.Output(), prompt)
	return t.ReadPasswordNoEcho()
}

type middleware func(http.Handler) http.Handler

// wrapAPI applies mws around h. The first middleware sees the request first.
func wrapAPI(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func limitRequestBody(limit int64) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// checkGenesisID rejects requests whose x-genesis-id names another ledger,
// and echoes the local genesis id on every response.
func checkGenesisID(genesisID ledger.Bytes32) middleware {
	const header = "x-genesis-id"
	want := genesisID.String()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(header, want)
			if got := r.Header.Get(header); got != "" && got != want {
				io.Copy(io.Discard, r.Body)
				http.Error(w, "genesis id mismatch", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func versionHeader(version string) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-auctiond-ver", version)
			next.ServeHTTP(w, r)
		})
	}
}

func requestTimeout(timeout time.Duration) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
