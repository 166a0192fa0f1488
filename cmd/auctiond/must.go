// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/johnqh/auctions-contracts/chain"
	"github.com/johnqh/auctions-contracts/cmd/auctiond/node"
	"github.com/johnqh/auctions-contracts/co"
	"github.com/johnqh/auctions-contracts/genesis"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/johnqh/auctions-contracts/lvldb"
	"github.com/johnqh/auctions-contracts/notify"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/txpool"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "gopkg.in/urfave/cli.v1"
)

func initLogger(ctx *cli.Context) {
	var level slog.Level
	switch v := ctx.Int(verbosityFlag.Name); {
	case v <= 1:
		level = slog.LevelError
	case v == 2:
		level = slog.LevelWarn
	case v == 3:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}
	ledger.SetLogHandler(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "01-02|15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet()
	}
	cfg, err := genesis.LoadConfig(path)
	if err != nil {
		fatal("load genesis:", err)
	}
	gene, err := genesis.NewFromConfig(cfg)
	if err != nil {
		fatal("build genesis:", err)
	}
	return gene
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	dataDir := makeDataDir(ctx)

	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func openMainDB(dataDir string) *lvldb.LevelDB {
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 512,
	})
	if err != nil {
		fatal(fmt.Sprintf("open ledger database [%v]: %v", dir, err))
	}
	return db
}

func openLogDB(dataDir string) *logdb.LogDB {
	dir := filepath.Join(dataDir, "logs.db")
	db, err := logdb.New(dir)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", dir, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open ledger database: %v", err))
	}
	return db
}

func openMemLogDB() *logdb.LogDB {
	db, err := logdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open log database: %v", err))
	}
	return db
}

// initChain opens the chain, committing the genesis state only when the store
// holds no chain yet.
func initChain(gene *genesis.Genesis, mainDB *lvldb.LevelDB) *chain.Chain {
	exists, err := chain.Exists(mainDB)
	if err != nil {
		fatal("check chain:", err)
	}
	genesisBlock, stage, err := gene.Build(state.NewCreator(mainDB))
	if err != nil {
		fatal("build genesis block:", err)
	}
	if !exists {
		if _, err := stage.Commit(); err != nil {
			fatal("commit genesis state:", err)
		}
	}

	c, err := chain.New(mainDB, genesisBlock)
	if err != nil {
		fatal("initialize block chain:", err)
	}
	return c
}

// openInstance opens the databases of the selected genesis, read from the
// data dir, for the offline commands.
func openInstance(ctx *cli.Context) (*chain.Chain, *lvldb.LevelDB, *logdb.LogDB) {
	gene := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx, gene)
	mainDB := openMainDB(instanceDir)
	logDB := openLogDB(instanceDir)
	return initChain(gene, mainDB), mainDB, logDB
}

func masterKeyPath(ctx *cli.Context) string {
	return filepath.Join(ctx.String(dataDirFlag.Name), "master.key")
}

func loadNodeMaster(ctx *cli.Context) *node.Master {
	makeDataDir(ctx)
	key, err := loadOrGeneratePrivateKey(masterKeyPath(ctx))
	if err != nil {
		fatal("load or generate master key:", err)
	}
	return &node.Master{PrivateKey: key}
}

// openPublisher returns the hub, plus a NATS publisher when configured.
func openPublisher(ctx *cli.Context, hub *notify.Hub) (notify.Publisher, func()) {
	url := ctx.String(natsURLFlag.Name)
	if url == "" {
		return hub, func() {}
	}
	nats, err := notify.NewNATSPublisher(url, ctx.String(natsPrefixFlag.Name))
	if err != nil {
		fatal("connect notification broker:", err)
	}
	return notify.Multi{hub, nats}, nats.Close
}

func startAPIServer(ctx *cli.Context, handler http.Handler, genesisID ledger.Bytes32) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}

	mws := []middleware{
		limitRequestBody(maxRequestBodySize),
		versionHeader(fullVersion()),
		checkGenesisID(genesisID),
	}
	if timeout := ctx.Int(apiTimeoutFlag.Name); timeout > 0 {
		mws = append(mws, requestTimeout(time.Duration(timeout)*time.Millisecond))
	}
	srv := &http.Server{Handler: wrapAPI(handler, mws...), ReadHeaderTimeout: 10 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("API server stopped", "err", err)
		}
	})
	return "http://" + listener.Addr().String() + "/", func() {
		if err := srv.Close(); err != nil {
			log.Warn("close API server", "err", err)
		}
		goes.Wait()
	}
}

type probe struct {
	Version     string `json:"version"`
	GenesisID   string `json:"genesisID"`
	BestBlock   uint32 `json:"bestBlock"`
	BestBlockID string `json:"bestBlockID"`
	PendingTxs  int    `json:"pendingTxs"`
	Master      string `json:"master"`
}

func startObserveServer(ctx *cli.Context, chain *chain.Chain, txPool *txpool.TxPool, master *node.Master) (string, func()) {
	addr := ctx.String(observeAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen observe addr [%v]: %v", addr, err))
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/probe", func(w http.ResponseWriter, r *http.Request) {
		best := chain.BestBlock().Header()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(&probe{
			Version:     fullVersion(),
			GenesisID:   chain.GenesisBlock().Header().ID().String(),
			BestBlock:   best.Number(),
			BestBlockID: best.ID().String(),
			PendingTxs:  txPool.Len(),
			Master:      master.Address().String(),
		})
	})
	mux.HandleFunc("/probe/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fullVersion()))
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("observe server stopped", "err", err)
		}
	})
	return "http://" + listener.Addr().String() + "/", func() {
		if err := srv.Close(); err != nil {
			log.Warn("close observe server", "err", err)
		}
		goes.Wait()
	}
}

func printStartupMessage(
	gene *genesis.Genesis,
	chain *chain.Chain,
	master *node.Master,
	dataDir string,
	apiURL string,
	observeURL string,
) {
	bestBlock := chain.BestBlock()

	fmt.Printf(`Starting auctiond %v
    Network         [ %v %v ]
    Best block      [ %v #%v @%v ]
    Master          [ %v ]
    Instance dir    [ %v ]
    API portal      [ %v ]
    Observe service [ %v ]
`,
		fullVersion(),
		gene.ID(), gene.Name(),
		bestBlock.Header().ID(), bestBlock.Header().Number(), time.Unix(int64(bestBlock.Header().Timestamp()), 0),
		master.Address(),
		dataDir,
		apiURL, observeURL)
}
