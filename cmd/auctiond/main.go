// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/johnqh/auctions-contracts/api"
	"github.com/johnqh/auctions-contracts/cmd/auctiond/node"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/logdb"
	"github.com/johnqh/auctions-contracts/lvldb"
	"github.com/johnqh/auctions-contracts/notify"
	"github.com/johnqh/auctions-contracts/script"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/johnqh/auctions-contracts/txpool"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
	log       = ledger.NewLogger("auctiond")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	offline := []cli.Flag{dataDirFlag, genesisFlag}
	app := cli.App{
		Version:   fullVersion(),
		Name:      "auctiond",
		Usage:     "Node of the auction ledger",
		Copyright: "2020 The Meter.io developers",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			persistFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			observeAddrFlag,
			verbosityFlag,
			blockIntervalFlag,
			onDemandFlag,
			natsURLFlag,
			natsPrefixFlag,
			ntpServerFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "master-key",
				Usage: "import and export master key",
				Flags: []cli.Flag{
					dataDirFlag,
					importMasterKeyFlag,
					exportMasterKeyFlag,
				},
				Action: masterKeyAction,
			},
			{Name: "address", Usage: "print the master address", Flags: []cli.Flag{dataDirFlag}, Action: addressAction},

			// Read-only info from a persisted instance
			{Name: "block", Usage: "Dump a block and its receipts", Flags: append(offline, numberFlag), Action: loadBlockAction},
			{Name: "auction", Usage: "Dump an auction record and its escrow", Flags: append(offline, auctionFlag), Action: loadAuctionAction},
			{Name: "admin", Usage: "Dump the admin config", Flags: offline, Action: loadAdminAction},
			{Name: "stats", Usage: "Report settlement statistics per payment asset", Flags: append(offline, assetFlag), Action: statsAction},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := exitContext()

	defer func() { log.Info("exited") }()

	initLogger(ctx)
	gene := selectGenesis(ctx)

	var mainDB *lvldb.LevelDB
	var logDB *logdb.LogDB
	var instanceDir string

	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(instanceDir)
		logDB = openLogDB(instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		logDB = openMemLogDB()
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()
	defer func() { log.Info("closing log database..."); logDB.Close() }()

	chain := initChain(gene, mainDB)
	master := loadNodeMaster(ctx)
	stateCreator := state.NewCreator(mainDB)
	se := script.NewScriptEngine(nil)

	txPool := txpool.New(chain, txpool.DefaultOptions)
	defer func() { log.Info("closing tx pool..."); txPool.Close() }()

	hub := notify.NewHub()
	defer func() { log.Info("closing notification hub..."); hub.Close() }()
	publisher, publisherCloser := openPublisher(ctx, hub)
	defer func() { log.Info("closing notification publisher..."); publisherCloser() }()

	apiHandler, apiCloser := api.New(chain, stateCreator, se, txPool, logDB, hub, ctx.String(apiCorsFlag.Name), master.Address().String())
	defer func() { log.Info("closing API..."); apiCloser() }()

	apiURL, srvCloser := startAPIServer(ctx, apiHandler, chain.GenesisBlock().Header().ID())
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	observeURL, observeSrvCloser := startObserveServer(ctx, chain, txPool, master)
	defer func() { log.Info("stopping observe server..."); observeSrvCloser() }()

	printStartupMessage(gene, chain, master, instanceDir, apiURL, observeURL)

	return node.New(
		master,
		chain,
		stateCreator,
		se,
		logDB,
		txPool,
		publisher,
		node.Options{
			BlockInterval: time.Duration(ctx.Int(blockIntervalFlag.Name)) * time.Second,
			OnDemand:      ctx.Bool(onDemandFlag.Name),
			NTPServer:     ctx.String(ntpServerFlag.Name),
		}).
		Run(exitSignal)
}

func addressAction(ctx *cli.Context) error {
	master := loadNodeMaster(ctx)
	fmt.Println(master.Address().String())
	return nil
}
