// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a YAML genesis file (devnet genesis if omitted)",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.IntFlag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	observeAddrFlag = cli.StringFlag{
		Name:  "observe-addr",
		Value: "localhost:8670",
		Usage: "metrics and probe listening address",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-4: error, warn, info, debug)",
	}
	blockIntervalFlag = cli.IntFlag{
		Name:  "block-interval",
		Value: 2,
		Usage: "seconds between packed blocks",
	}
	onDemandFlag = cli.BoolFlag{
		Name:  "on-demand",
		Usage: "create new block only when there is pending transaction",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "save ledger data to data-dir instead of memory",
	}
	natsURLFlag = cli.StringFlag{
		Name:  "nats-url",
		Usage: "NATS server to publish outcome notifications to (disabled if empty)",
	}
	natsPrefixFlag = cli.StringFlag{
		Name:  "nats-prefix",
		Value: "auctions",
		Usage: "subject prefix of published notifications",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP server for clock drift checks (disabled if empty)",
	}
	importMasterKeyFlag = cli.BoolFlag{
		Name:  "import",
		Usage: "import master key from keystore",
	}
	exportMasterKeyFlag = cli.BoolFlag{
		Name:  "export",
		Usage: "export master key to keystore",
	}
	numberFlag = cli.StringFlag{
		Name:  "number",
		Value: "best",
		Usage: "block number, or best",
	}
	auctionFlag = cli.Uint64Flag{
		Name:  "auction",
		Usage: "auction id",
	}
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Usage: "payment asset address (all assets if empty)",
	}
)
