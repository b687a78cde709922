// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inflate

// code is one decode table entry. The op field encodes the operation:
//
//	00000000    literal (val is the symbol or byte)
//	0000tttt    second-level table link, tttt > 0 is its index width
//	0001eeee    length or distance base (val), eeee extra bits follow
//	0110.0000   end-of-block
//	0100.0000   invalid code
//
// Entries are read-only after construction.
type code struct {
	op   uint8  // Operation
	bits uint8  // Number of bits consumed by this entry
	val  uint16 // Literal, base offset, or second-level table offset
}

const (
	opLiteral  = 0
	opBase     = 16 // Low 4 bits hold the extra bit count
	opEndBlock = 32 | 64
	opInvalid  = 64
)

// huffTable is a built decode table: a 2^tableBits root table, followed
// in the same slice by any second-level tables.
type huffTable struct {
	entries   []code
	tableBits uint // Index width of the root table
}

func (t *huffTable) mask() uint32 { return 1<<t.tableBits - 1 }

// codeKind selects which alphabet a table decodes, which determines the
// base/extra mapping of its symbols and its capacity limit.
type codeKind int

const (
	kindCLens codeKind = iota // The 19-symbol code-lengths alphabet
	kindLens                  // Literal/length alphabet
	kindDists                 // Distance alphabet
)

var (
	// Transmission order of the code-length code lengths,
	// RFC section 3.2.7.
	clenOrder = [maxNumCLenSyms]int{
		16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
	}

	// Base values and extra-bit operations for the length symbols
	// 257..287 and the distance symbols 0..31. The tails cover the
	// reserved symbols, which decode as invalid.
	lenBase   [maxNumLitSyms - 257 + 2]uint16
	lenExtra  [maxNumLitSyms - 257 + 2]uint8
	distBase  [maxNumDistSyms + 2]uint16
	distExtra [maxNumDistSyms + 2]uint8
)

func init() {
	initRangeLUTs()
}

func initRangeLUTs() {
	// These come from the RFC section 3.2.5.
	for i, base := 0, 3; i < len(lenBase)-3; i++ {
		nb := uint(0)
		if i >= 4 {
			nb = uint(i/4 - 1)
		}
		lenBase[i] = uint16(base)
		lenExtra[i] = uint8(opBase + nb)
		base += 1 << nb
	}
	lenBase[28], lenExtra[28] = maxMatchLen, opBase
	lenExtra[29], lenExtra[30] = opInvalid, opInvalid

	// These come from the RFC section 3.2.5.
	for i, base := 0, 1; i < len(distBase)-2; i++ {
		nb := uint(0)
		if i >= 2 {
			nb = uint(i/2 - 1)
		}
		distBase[i] = uint16(base)
		distExtra[i] = uint8(opBase + nb)
		base += 1 << nb
	}
	distExtra[30], distExtra[31] = opInvalid, opInvalid
}

// buildTable constructs a canonical Huffman decode table from per-symbol
// code lengths, writing a 2^rootBits root table followed by any
// second-level tables into table. It returns the number of entries
// written and the actual root index width, which may be smaller than
// rootBits when the longest code is shorter.
//
// The length set must be exactly complete. An over-subscribed set fails
// with ErrOversubscribed and an incomplete one with ErrIncompleteCode,
// except that a single symbol of length 1 is tolerated for the
// literal/length and distance alphabets, where such degenerate trees
// occur in otherwise valid streams. On failure nothing useful is in
// table. A length set with no symbols at all yields a 1-bit table whose
// entries decode as invalid, deferring the error until a symbol is
// actually requested.
func buildTable(kind codeKind, lens []uint16, table []code, rootBits uint, work []uint16) (used int, tableBits uint, err error) {
	var count [maxPrefixBits + 1]int
	for _, n := range lens {
		count[n]++
	}

	root := rootBits
	max := uint(maxPrefixBits)
	for max >= 1 && count[max] == 0 {
		max--
	}
	if root > max {
		root = max
	}
	if max == 0 {
		table[0] = code{op: opInvalid, bits: 1}
		table[1] = code{op: opInvalid, bits: 1}
		return 2, 1, nil
	}
	min := uint(1)
	for min < max && count[min] == 0 {
		min++
	}
	if root < min {
		root = min
	}

	// Check for an over-subscribed or incomplete set of lengths.
	left := 1
	for n := uint(1); n <= maxPrefixBits; n++ {
		left <<= 1
		left -= count[n]
		if left < 0 {
			return 0, 0, ErrOversubscribed
		}
	}
	if left > 0 && (kind == kindCLens || max != 1) {
		return 0, 0, ErrIncompleteCode
	}

	// Sort symbols by length, then by symbol order within each length.
	var offs [maxPrefixBits + 1]int
	for n := uint(1); n < maxPrefixBits; n++ {
		offs[n+1] = offs[n] + count[n]
	}
	for sym, n := range lens {
		if n != 0 {
			work[offs[n]] = uint16(sym)
			offs[n]++
		}
	}

	var base []uint16
	var extra []uint8
	var match int
	switch kind {
	case kindCLens:
		match = len(lens) + 1 // All symbols decode as literals
	case kindLens:
		base, extra, match = lenBase[:], lenExtra[:], 257
	default:
		base, extra, match = distBase[:], distExtra[:], 0
	}

	var (
		huff    uint         // Bit-reversed code value under construction
		sym     int          // Index of the next sorted symbol
		next    int          // Offset of the current sub-table in table
		nbits   = min        // Bit length of the current code
		curr    = root       // Index width of the current sub-table
		drop    uint         // Root bits to drop when indexing a sub-table
		low     = ^uint(0)   // Low root bits of the active sub-table
		mask    = uint(1)<<root - 1
		minFill uint         // Entry count of the table filled last
	)
	used = 1 << root
	if kind == kindLens && used > numLenEntries ||
		kind == kindDists && used > numDistEntries {
		return 0, 0, ErrTableOverflow
	}

	for {
		// Create the entry for the current symbol.
		here := code{bits: uint8(nbits - drop)}
		switch {
		case int(work[sym])+1 < match:
			here.op = opLiteral
			here.val = work[sym]
		case int(work[sym]) >= match:
			here.op = extra[int(work[sym])-match]
			here.val = base[int(work[sym])-match]
		default:
			here.op = opEndBlock
		}

		// Replicate the entry across all indices sharing its low bits.
		incr := uint(1) << (nbits - drop)
		fill := uint(1) << curr
		minFill = fill
		for {
			fill -= incr
			table[next+int(huff>>drop+fill)] = here
			if fill == 0 {
				break
			}
		}

		// Backwards increment the nbits-bit code huff.
		incr = uint(1) << (nbits - 1)
		for huff&incr != 0 {
			incr >>= 1
		}
		if incr != 0 {
			huff = huff&(incr-1) + incr
		} else {
			huff = 0
		}

		// Advance to the next symbol.
		sym++
		count[nbits]--
		if count[nbits] == 0 {
			if nbits == max {
				break
			}
			nbits = uint(lens[work[sym]])
		}

		// Allocate a new sub-table if the code length now exceeds the
		// root width and the previous sub-table does not cover it.
		if nbits > root && huff&mask != low {
			if drop == 0 {
				drop = root
			}
			next += int(minFill)

			// Size the sub-table to cover all remaining codes that
			// share the same low root bits.
			curr = nbits - drop
			left := 1 << curr
			for curr+drop < max {
				left -= count[curr+drop]
				if left <= 0 {
					break
				}
				curr++
				left <<= 1
			}

			used += 1 << curr
			if kind == kindLens && used > numLenEntries ||
				kind == kindDists && used > numDistEntries {
				return 0, 0, ErrTableOverflow
			}

			// Point the owning root entry at the new sub-table.
			low = huff & mask
			table[low] = code{op: uint8(curr), bits: uint8(root), val: uint16(next)}
		}
	}

	// Fill in the remaining entry if the code is incomplete. The checks
	// above guarantee this happens only for a degenerate one-symbol
	// tree, which leaves exactly one 1-bit pattern unused.
	if huff != 0 {
		table[next+int(huff>>drop)] = code{op: opInvalid, bits: uint8(nbits - drop)}
	}
	return used, root, nil
}
