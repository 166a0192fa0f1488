// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
)

// Header is the immutable metadata of a block. Its timestamp is the clock
// every auction operation in the block is evaluated against.
type Header struct {
	content headerContent
	cache   struct {
		signingHash atomic.Pointer[ledger.Bytes32]
		signer      atomic.Pointer[ledger.Address]
		id          atomic.Pointer[ledger.Bytes32]
	}
}

type headerContent struct {
	ParentID     ledger.Bytes32
	Timestamp    uint64
	TxsRoot      ledger.Bytes32
	StateHash    ledger.Bytes32 // digest of the state changes of this block
	ReceiptsRoot ledger.Bytes32
	Signature    []byte
}

// EncodeRLP implements rlp.Encoder.
func (h *Header) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &h.content)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var c headerContent
	if err := s.Decode(&c); err != nil {
		return err
	}
	h.content = c
	return nil
}

func (h *Header) ParentID() ledger.Bytes32 { return h.content.ParentID }

// Number is derived from the parent id, whose first four bytes carry the
// parent number.
func (h *Header) Number() uint32 { return Number(h.content.ParentID) + 1 }

func (h *Header) Timestamp() uint64 { return h.content.Timestamp }

func (h *Header) TxsRoot() ledger.Bytes32 { return h.content.TxsRoot }

func (h *Header) StateHash() ledger.Bytes32 { return h.content.StateHash }

func (h *Header) ReceiptsRoot() ledger.Bytes32 { return h.content.ReceiptsRoot }

func (h *Header) Signature() []byte {
	return append([]byte(nil), h.content.Signature...)
}

// ID is the block number (big endian) followed by the last 28 bytes of
// blake2b(signingHash || signer).
func (h *Header) ID() ledger.Bytes32 {
	if id := h.cache.id.Load(); id != nil {
		return *id
	}
	var id ledger.Bytes32
	if signer, err := h.Signer(); err == nil {
		id = ledger.Blake2b(h.SigningHash().Bytes(), signer.Bytes())
	}
	binary.BigEndian.PutUint32(id[:], h.Number())
	h.cache.id.Store(&id)
	return id
}

// SigningHash hashes every header field except the signature.
func (h *Header) SigningHash() ledger.Bytes32 {
	if hash := h.cache.signingHash.Load(); hash != nil {
		return *hash
	}
	c := &h.content
	data, err := rlp.EncodeToBytes([]interface{}{c.ParentID, c.Timestamp, c.TxsRoot, c.StateHash, c.ReceiptsRoot})
	if err != nil {
		log.Error("encode header for signing", "err", err)
	}
	hash := ledger.Blake2b(data)
	h.cache.signingHash.Store(&hash)
	return hash
}

// Signer recovers the packer address from the signature. The genesis block
// and unsigned headers yield the zero address.
func (h *Header) Signer() (ledger.Address, error) {
	if h.Number() == 0 || len(h.content.Signature) == 0 {
		return ledger.Address{}, nil
	}
	if signer := h.cache.signer.Load(); signer != nil {
		return *signer, nil
	}
	pub, err := crypto.SigToPub(h.SigningHash().Bytes(), h.content.Signature)
	if err != nil {
		return ledger.Address{}, err
	}
	signer := ledger.Address(crypto.PubkeyToAddress(*pub))
	h.cache.signer.Store(&signer)
	return signer, nil
}

func (h *Header) withSignature(sig []byte) *Header {
	signed := &Header{content: h.content}
	signed.content.Signature = append([]byte(nil), sig...)
	return signed
}

func (h *Header) String() string {
	signer := "N/A"
	if addr, err := h.Signer(); err == nil {
		signer = addr.String()
	}
	return fmt.Sprintf("Header(%v){Number:%v Parent:%v Timestamp:%v Signer:%v TxsRoot:%v StateHash:%v ReceiptsRoot:%v}",
		h.ID().AbbrevString(), h.Number(), h.content.ParentID.AbbrevString(), h.content.Timestamp, signer,
		h.content.TxsRoot, h.content.StateHash, h.content.ReceiptsRoot)
}

// Number extracts the block number from a block id.
func Number(blockID ledger.Bytes32) uint32 {
	return binary.BigEndian.Uint32(blockID[:])
}
