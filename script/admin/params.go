// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

const (
	OP_INITIALIZE         = uint32(1)
	OP_PAUSE              = uint32(2)
	OP_UNPAUSE            = uint32(3)
	OP_SET_FEE_RATE       = uint32(4)
	OP_SET_FEE_RECIPIENT  = uint32(5)
	OP_CLAIM_FEES         = uint32(6)
	OP_TRANSFER_OWNERSHIP = uint32(7)
	OP_ACCEPT_OWNERSHIP   = uint32(8)
)

func GetOpName(op uint32) string {
	switch op {
	case OP_INITIALIZE:
		return "Initialize"
	case OP_PAUSE:
		return "Pause"
	case OP_UNPAUSE:
		return "Unpause"
	case OP_SET_FEE_RATE:
		return "SetFeeRate"
	case OP_SET_FEE_RECIPIENT:
		return "SetFeeRecipient"
	case OP_CLAIM_FEES:
		return "ClaimFees"
	case OP_TRANSFER_OWNERSHIP:
		return "TransferOwnership"
	case OP_ACCEPT_OWNERSHIP:
		return "AcceptOwnership"
	default:
		return "Unknown"
	}
}
