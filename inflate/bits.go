// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inflate

// bitCursor supplies bits from a caller-provided input slice.
// Bits are packed LSB-first per RFC section 3.1.1: the accumulator holds
// cnt valid bits counted from the low end, and bytes from src are shifted
// in above them. The accumulator survives across Decompress calls inside
// Decoder, so a cursor is rebuilt from the persisted hold and cnt at the
// start of every call.
type bitCursor struct {
	src  []byte
	pos  int    // Number of bytes loaded from src
	hold uint64 // Bit accumulator
	cnt  uint   // Number of valid bits in hold
}

// loadByte shifts one more input byte into the accumulator.
// It reports false if src is exhausted.
func (bc *bitCursor) loadByte() bool {
	if bc.pos == len(bc.src) {
		return false
	}
	bc.hold |= uint64(bc.src[bc.pos]) << bc.cnt
	bc.pos++
	bc.cnt += 8
	return true
}

// need ensures that at least nb valid bits are in the accumulator.
// It reports false if src is exhausted first, in which case the bits
// loaded so far remain buffered for the next attempt.
func (bc *bitCursor) need(nb uint) bool {
	for bc.cnt < nb {
		if !bc.loadByte() {
			return false
		}
	}
	return true
}

// take consumes and returns the low nb bits of the accumulator.
// The caller must have established their presence with need.
func (bc *bitCursor) take(nb uint) uint32 {
	v := uint32(bc.hold & (1<<nb - 1))
	bc.hold >>= nb
	bc.cnt -= nb
	return v
}

// drop discards the low nb bits of the accumulator.
func (bc *bitCursor) drop(nb uint) {
	bc.hold >>= nb
	bc.cnt -= nb
}

// alignToByte discards bits up to the next byte boundary.
func (bc *bitCursor) alignToByte() {
	nb := bc.cnt & 7
	bc.hold >>= nb
	bc.cnt -= nb
}

// bytesLeft reports the number of input bytes not yet loaded.
func (bc *bitCursor) bytesLeft() int {
	return len(bc.src) - bc.pos
}

// readBytes copies byte-aligned input into buf, draining whole bytes
// buffered in the accumulator before touching src directly.
// The accumulator must be byte-aligned.
func (bc *bitCursor) readBytes(buf []byte) int {
	var cnt int
	for bc.cnt >= 8 && cnt < len(buf) {
		buf[cnt] = byte(bc.hold)
		bc.drop(8)
		cnt++
	}
	n := copy(buf[cnt:], bc.src[bc.pos:])
	bc.pos += n
	return cnt + n
}

// rebase returns whole unconsumed bytes from the accumulator to the
// input, so that the reported consumed count reflects only bytes the
// stream actually used. Called once decoding reaches a terminal state.
func (bc *bitCursor) rebase() {
	nb := bc.cnt >> 3
	if int(nb) > bc.pos {
		// Some buffered bytes were loaded during an earlier call and
		// cannot be returned to this input slice.
		nb = uint(bc.pos)
	}
	bc.pos -= int(nb)
	bc.cnt -= nb << 3
	bc.hold &= 1<<bc.cnt - 1
}

// readCode resolves the next prefix symbol from t without consuming it,
// following a second-level table link if present. It returns the decode
// table entry and the total number of bits the symbol occupies, or
// ok == false if src was exhausted before the symbol could be resolved.
// The accumulator is left untouched on failure, so the decode can simply
// be retried once more input arrives.
func (bc *bitCursor) readCode(t *huffTable) (c code, nb uint, ok bool) {
	for {
		c = t.entries[uint32(bc.hold)&t.mask()]
		if uint(c.bits) <= bc.cnt {
			break
		}
		if !bc.loadByte() {
			return code{}, 0, false
		}
	}
	if c.op != 0 && c.op&0xf0 == 0 {
		// Second-level table: c.op is its index width, c.val its offset.
		root, sub := uint(c.bits), c
		for {
			c = t.entries[uint(sub.val)+uint(bc.hold>>root)&(1<<uint(sub.op)-1)]
			if root+uint(c.bits) <= bc.cnt {
				break
			}
			if !bc.loadByte() {
				return code{}, 0, false
			}
		}
		return c, root + uint(c.bits), true
	}
	return c, uint(c.bits), true
}
