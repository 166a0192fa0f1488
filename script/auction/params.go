// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

const (
	OP_CREATE_TRADITIONAL = uint32(1)
	OP_CREATE_DUTCH       = uint32(2)
	OP_CREATE_PENNY       = uint32(3)
	OP_BID_TRADITIONAL    = uint32(4)
	OP_BUY_DUTCH          = uint32(5)
	OP_BID_PENNY          = uint32(6)
	OP_FINALIZE           = uint32(7)
	OP_ACCEPT_BID         = uint32(8)
)

func GetOpName(op uint32) string {
	switch op {
	case OP_CREATE_TRADITIONAL:
		return "CreateTraditional"
	case OP_CREATE_DUTCH:
		return "CreateDutch"
	case OP_CREATE_PENNY:
		return "CreatePenny"
	case OP_BID_TRADITIONAL:
		return "BidTraditional"
	case OP_BUY_DUTCH:
		return "BuyDutch"
	case OP_BID_PENNY:
		return "BidPenny"
	case OP_FINALIZE:
		return "Finalize"
	case OP_ACCEPT_BID:
		return "AcceptBid"
	default:
		return "Unknown"
	}
}
