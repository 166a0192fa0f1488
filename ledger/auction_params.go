// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"errors"
	"io"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
)

type TraditionalParams struct {
	StartAmount        *big.Int
	Increment          *big.Int
	ReservePrice       *big.Int
	AcceptanceDeadline uint64
	ReserveMet         bool
}

type DutchParams struct {
	StartPrice       *big.Int
	DecreaseAmount   *big.Int
	DecreaseInterval uint64
	MinimumPrice     *big.Int
	StartTime        uint64
}

type PennyParams struct {
	IncrementAmount *big.Int
	TotalPaid       *big.Int
	LastBidTime     uint64
	TimerDuration   uint64
}

// EffectiveDeadline is the rolling expiry of a penny auction. It saturates at
// MaxUint64 rather than wrapping.
func (p *PennyParams) EffectiveDeadline(deadline uint64) uint64 {
	if p.LastBidTime == 0 {
		return deadline
	}
	if p.LastBidTime > math.MaxUint64-p.TimerDuration {
		return math.MaxUint64
	}
	return p.LastBidTime + p.TimerDuration
}

// AuctionParams holds exactly one of the type specific parameter sets.
type AuctionParams struct {
	tag         AuctionType
	traditional *TraditionalParams
	dutch       *DutchParams
	penny       *PennyParams
}

func NewTraditionalParams(p *TraditionalParams) AuctionParams {
	return AuctionParams{tag: Traditional, traditional: p}
}

func NewDutchParams(p *DutchParams) AuctionParams {
	return AuctionParams{tag: Dutch, dutch: p}
}

func NewPennyParams(p *PennyParams) AuctionParams {
	return AuctionParams{tag: Penny, penny: p}
}

// Type returns the variant held.
func (p AuctionParams) Type() AuctionType { return p.tag }

func (p AuctionParams) Traditional() (*TraditionalParams, error) {
	if p.tag != Traditional || p.traditional == nil {
		return nil, ErrWrongType
	}
	return p.traditional, nil
}

func (p AuctionParams) Dutch() (*DutchParams, error) {
	if p.tag != Dutch || p.dutch == nil {
		return nil, ErrWrongType
	}
	return p.dutch, nil
}

func (p AuctionParams) Penny() (*PennyParams, error) {
	if p.tag != Penny || p.penny == nil {
		return nil, ErrWrongType
	}
	return p.penny, nil
}

// EncodeRLP implements rlp.Encoder, the union is written as [tag, payload].
func (p AuctionParams) EncodeRLP(w io.Writer) error {
	var payload interface{}
	switch p.tag {
	case Traditional:
		payload = p.traditional
	case Dutch:
		payload = p.dutch
	case Penny:
		payload = p.penny
	default:
		return errors.New("unknown auction params tag")
	}
	return rlp.Encode(w, []interface{}{uint8(p.tag), payload})
}

// DecodeRLP implements rlp.Decoder.
func (p *AuctionParams) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	var tag uint8
	if err := s.Decode(&tag); err != nil {
		return err
	}
	p.tag = AuctionType(tag)
	p.traditional, p.dutch, p.penny = nil, nil, nil
	switch p.tag {
	case Traditional:
		p.traditional = &TraditionalParams{}
		if err := s.Decode(p.traditional); err != nil {
			return err
		}
	case Dutch:
		p.dutch = &DutchParams{}
		if err := s.Decode(p.dutch); err != nil {
			return err
		}
	case Penny:
		p.penny = &PennyParams{}
		if err := s.Decode(p.penny); err != nil {
			return err
		}
	default:
		return errors.New("unknown auction params tag")
	}
	return s.ListEnd()
}
