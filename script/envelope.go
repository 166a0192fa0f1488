// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/pkg/errors"
)

var (
	// ScriptPrefix marks clause data for the script engine.
	ScriptPrefix = [4]byte{0xff, 0xff, 0xff, 0xff}
	// ScriptPattern sits between the prefix and the encoded envelope.
	ScriptPattern = [4]byte{0xde, 0xad, 0xbe, 0xef}
)

// Envelope addresses an encoded payload to a module.
type Envelope struct {
	Version uint32
	ModID   uint32
	Payload []byte
}

func NewEnvelope(modID uint32, payload []byte) *Envelope {
	return &Envelope{ModID: modID, Payload: payload}
}

// Hash commits to the version, the module and the payload digest.
func (e *Envelope) Hash() ledger.Bytes32 {
	digest := ledger.Blake2b(e.Payload)
	enc, err := rlp.EncodeToBytes([]interface{}{e.Version, e.ModID, digest})
	if err != nil {
		panic(err)
	}
	return ledger.Blake2b(enc)
}

// Encode returns full clause data: prefix, pattern, then the rlp envelope.
func (e *Envelope) Encode() ([]byte, error) {
	body, err := rlp.EncodeToBytes(e)
	if err != nil {
		return nil, errors.Wrap(err, "encode envelope")
	}
	var buf bytes.Buffer
	buf.Grow(len(ScriptPrefix) + len(ScriptPattern) + len(body))
	buf.Write(ScriptPrefix[:])
	buf.Write(ScriptPattern[:])
	buf.Write(body)
	return buf.Bytes(), nil
}

func (e *Envelope) String() string {
	return fmt.Sprintf("envelope(v%d mod=%d payload=%dB)", e.Version, e.ModID, len(e.Payload))
}

// OpenEnvelope decodes clause data that has had its prefix stripped.
func OpenEnvelope(data []byte) (*Envelope, error) {
	if !bytes.HasPrefix(data, ScriptPattern[:]) {
		return nil, ErrPatternMismatch
	}
	var e Envelope
	if err := rlp.DecodeBytes(data[len(ScriptPattern):], &e); err != nil {
		return nil, errors.Wrap(err, "decode envelope")
	}
	return &e, nil
}
