// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inflate

// The fast path decodes whole literal/length/distance symbol groups per
// iteration without per-bit suspension checks. It may only run while
// enough input and output remain that no bounds check can fail
// mid-symbol: one symbol group uses at most 15+5+15+13 bits of input
// and emits at most one maximal match.
const (
	fastMinInput  = 6           // Input bytes required to enter or continue
	fastMinOutput = maxMatchLen // Output space required to enter or continue
)

// fastPath decodes symbols from bc into dst starting at offset op until
// the input or output margin is reached, the block ends, or the stream
// turns out to be corrupt. It returns the new output offset, updates bc
// in place, and records block-end or failure in d.step and d.err.
func (d *Decoder) fastPath(dst []byte, op int, bc *bitCursor) int {
	var (
		src  = bc.src
		pos  = bc.pos
		hold = bc.hold
		cnt  = bc.cnt

		lim = len(src) - (fastMinInput - 1)
		end = len(dst) - (fastMinOutput - 1)

		lmask = d.lenTab.mask()
		dmask = d.distTab.mask()
	)

fast:
	for pos < lim && op < end {
		if cnt < 15 {
			hold |= uint64(src[pos]) << cnt
			hold |= uint64(src[pos+1]) << (cnt + 8)
			pos += 2
			cnt += 16
		}
		c := d.lenTab.entries[uint32(hold)&lmask]
	dolen:
		hold >>= c.bits
		cnt -= uint(c.bits)
		switch {
		case c.op == opLiteral:
			dst[op] = byte(c.val)
			op++

		case c.op&opBase != 0:
			length := int(c.val)
			if nb := uint(c.op & 15); nb != 0 {
				if cnt < nb {
					hold |= uint64(src[pos]) << cnt
					pos++
					cnt += 8
				}
				length += int(uint32(hold) & (1<<nb - 1))
				hold >>= nb
				cnt -= nb
			}
			if cnt < 15 {
				hold |= uint64(src[pos]) << cnt
				hold |= uint64(src[pos+1]) << (cnt + 8)
				pos += 2
				cnt += 16
			}
			c = d.distTab.entries[uint32(hold)&dmask]
		dodist:
			hold >>= c.bits
			cnt -= uint(c.bits)
			switch {
			case c.op&opBase != 0:
				dist := int(c.val)
				nb := uint(c.op & 15)
				if cnt < nb {
					hold |= uint64(src[pos]) << cnt
					pos++
					cnt += 8
					if cnt < nb {
						hold |= uint64(src[pos]) << cnt
						pos++
						cnt += 8
					}
				}
				dist += int(uint32(hold) & (1<<nb - 1))
				hold >>= nb
				cnt -= nb

				if dist > op {
					// Part of the match lies in the window history.
					rem := dist - op
					if rem > d.whave {
						if !d.lenient {
							d.err = ErrDistanceTooFar
							break fast
						}
						// Produce zeros for history that never existed.
						zero := rem - d.whave
						if zero > length {
							zero = length
						}
						length -= zero
						for ; zero > 0; zero-- {
							dst[op] = 0
							op++
						}
						rem = d.whave
					}
					wpos := d.wnext - rem
					if wpos < 0 {
						wpos += d.wsize
					}
					for ; length > 0 && rem > 0; length-- {
						dst[op] = d.window[wpos]
						op++
						if wpos++; wpos == d.wsize {
							wpos = 0
						}
						rem--
					}
					// Any remainder continues from the output just
					// produced in this call.
					from := op - dist
					for ; length > 0; length-- {
						dst[op] = dst[from]
						op++
						from++
					}
				} else {
					from := op - dist
					for ; length > 0; length-- {
						dst[op] = dst[from]
						op++
						from++
					}
				}

			case c.op != 0 && c.op&0xf0 == 0:
				// Second-level distance table.
				c = d.distTab.entries[uint32(c.val)+uint32(hold)&(1<<uint(c.op)-1)]
				goto dodist

			default:
				d.err = ErrBadCode
				break fast
			}

		case c.op&0xf0 == 0:
			// Second-level literal/length table.
			c = d.lenTab.entries[uint32(c.val)+uint32(hold)&(1<<uint(c.op)-1)]
			goto dolen

		case c.op&0x20 != 0:
			// End of block.
			d.step = modeType
			break fast

		default:
			d.err = ErrBadCode
			break fast
		}
	}

	bc.pos, bc.hold, bc.cnt = pos, hold, cnt
	return op
}
