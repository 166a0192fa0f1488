// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer

import "github.com/prometheus/client_golang/prometheus"

var (
	blocksPackedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blocks_packed_total",
		Help: "Counter of packed blocks",
	})
	txsPackedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "txs_packed_total",
		Help: "Counter of packed txs by outcome",
	}, []string{"reverted"})
)

func init() {
	prometheus.MustRegister(blocksPackedCounter, txsPackedCounter)
}
