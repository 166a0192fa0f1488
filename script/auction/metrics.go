// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import "github.com/prometheus/client_golang/prometheus"

var (
	auctionsCreatedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auctions_created_total",
		Help: "Counter of created auctions by type",
	}, []string{"type"})
	bidsAcceptedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_bids_accepted_total",
		Help: "Counter of accepted bids and purchases by auction type",
	}, []string{"type"})
	settlementsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_settlements_total",
		Help: "Counter of auction status transitions out of active",
	}, []string{"type", "outcome"})
	handlerErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_handler_errors_total",
		Help: "Counter of rejected auction operations",
	}, []string{"op", "class"})
)

func init() {
	prometheus.MustRegister(auctionsCreatedCounter)
	prometheus.MustRegister(bidsAcceptedCounter)
	prometheus.MustRegister(settlementsCounter)
	prometheus.MustRegister(handlerErrorCounter)
}
