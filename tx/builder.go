// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

// Builder assembles an unsigned transaction.
type Builder struct {
	content txContent
}

// ChainTag binds the tx to one chain: the last byte of its genesis id.
func (b *Builder) ChainTag(tag byte) *Builder {
	b.content.ChainTag = tag
	return b
}

// Clause appends c. Clauses run in order and the tx reverts as a whole if
// any of them fails.
func (b *Builder) Clause(c *Clause) *Builder {
	b.content.Clauses = append(b.content.Clauses, c)
	return b
}

func (b *Builder) BlockRef(br BlockRef) *Builder {
	b.content.BlockRef = br.Uint64()
	return b
}

func (b *Builder) Expiration(exp uint32) *Builder {
	b.content.Expiration = exp
	return b
}

// Nonce distinguishes otherwise identical txs from the same origin.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.content.Nonce = nonce
	return b
}

func (b *Builder) Build() *Transaction {
	return &Transaction{content: b.content}
}
