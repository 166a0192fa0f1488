// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
)

// Transaction is a signed request to run one or more clauses against the
// auction and admin modules. The signer becomes the origin seen by every
// clause, so a dealer or bidder is whoever signed. It's immutable.
type Transaction struct {
	content txContent
	cache   struct {
		signingHash atomic.Pointer[ledger.Bytes32]
		origin      atomic.Pointer[ledger.Address]
		id          atomic.Pointer[ledger.Bytes32]
	}
}

type txContent struct {
	ChainTag   byte
	BlockRef   uint64
	Expiration uint32
	Clauses    []*Clause
	Nonce      uint64
	Signature  []byte
}

func (t *Transaction) ChainTag() byte { return t.content.ChainTag }

func (t *Transaction) Nonce() uint64 { return t.content.Nonce }

// BlockRef is the first 8 bytes of the block id the tx was built against.
func (t *Transaction) BlockRef() BlockRef {
	return newBlockRefFromUint64(t.content.BlockRef)
}

// Expiration is counted in blocks after the referenced one.
func (t *Transaction) Expiration() uint32 { return t.content.Expiration }

// IsExpired reports whether a block numbered blockNum is past the tx's window
// [BlockRef().Number(), BlockRef().Number()+Expiration].
func (t *Transaction) IsExpired(blockNum uint32) bool {
	return uint64(blockNum) > uint64(t.BlockRef().Number())+uint64(t.content.Expiration)
}

// Clauses returns a copy of the clause list.
func (t *Transaction) Clauses() []*Clause {
	return append([]*Clause(nil), t.content.Clauses...)
}

func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.content.Signature...)
}

// SigningHash hashes every field except the signature.
func (t *Transaction) SigningHash() ledger.Bytes32 {
	if hash := t.cache.signingHash.Load(); hash != nil {
		return *hash
	}
	c := &t.content
	data, err := rlp.EncodeToBytes([]interface{}{c.ChainTag, c.BlockRef, c.Expiration, c.Clauses, c.Nonce})
	if err != nil {
		return ledger.Bytes32{}
	}
	hash := ledger.Blake2b(data)
	t.cache.signingHash.Store(&hash)
	return hash
}

// Origin recovers the signer address. An unsigned tx has the zero origin.
func (t *Transaction) Origin() (ledger.Address, error) {
	if len(t.content.Signature) == 0 {
		return ledger.Address{}, nil
	}
	if origin := t.cache.origin.Load(); origin != nil {
		return *origin, nil
	}
	pub, err := crypto.SigToPub(t.SigningHash().Bytes(), t.content.Signature)
	if err != nil {
		return ledger.Address{}, err
	}
	origin := ledger.Address(crypto.PubkeyToAddress(*pub))
	t.cache.origin.Store(&origin)
	return origin, nil
}

// ID is blake2b(signingHash || origin), or zero when the signature is bad.
func (t *Transaction) ID() ledger.Bytes32 {
	if id := t.cache.id.Load(); id != nil {
		return *id
	}
	var id ledger.Bytes32
	if origin, err := t.Origin(); err == nil {
		id = ledger.Blake2b(t.SigningHash().Bytes(), origin.Bytes())
	}
	t.cache.id.Store(&id)
	return id
}

// WithSignature returns a signed copy of the tx.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	signed := &Transaction{content: t.content}
	signed.content.Signature = append([]byte(nil), sig...)
	return signed
}

// EncodeRLP implements rlp.Encoder.
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.content)
}

// DecodeRLP implements rlp.Decoder.
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var c txContent
	if err := s.Decode(&c); err != nil {
		return err
	}
	t.content = c
	return nil
}

func (t *Transaction) String() string {
	origin := "N/A"
	if addr, err := t.Origin(); err == nil {
		origin = addr.String()
	}
	br := t.BlockRef()
	return fmt.Sprintf("Tx(%v){Origin:%v ChainTag:%v BlockRef:%v-%x Expiration:%v Nonce:%v Clauses:%v}",
		t.ID().AbbrevString(), origin, t.content.ChainTag, br.Number(), br[4:], t.content.Expiration, t.content.Nonce, t.content.Clauses)
}

// Transactions is an ordered list of transactions.
type Transactions []*Transaction

// RootHash commits to the ids of txs in order. An empty list has the zero root.
func (txs Transactions) RootHash() ledger.Bytes32 {
	if len(txs) == 0 {
		return ledger.Bytes32{}
	}
	ids := make([][]byte, 0, len(txs))
	for _, t := range txs {
		id := t.ID()
		ids = append(ids, id[:])
	}
	return ledger.Blake2b(ids...)
}
