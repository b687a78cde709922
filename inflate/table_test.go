// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inflate

import (
	"testing"

	"github.com/gabrieldemarmiesse/zflate/internal"
)

// canonicalCodes assigns codewords per RFC section 3.2.2 and returns,
// for each symbol with a nonzero length, the LSB-first bit pattern a
// decoder would see on the wire.
func canonicalCodes(lens []uint16) map[int]uint64 {
	var count [maxPrefixBits + 1]int
	for _, n := range lens {
		count[n]++
	}
	count[0] = 0

	var next [maxPrefixBits + 1]uint32
	code := uint32(0)
	for n := 1; n <= maxPrefixBits; n++ {
		code = (code + uint32(count[n-1])) << 1
		next[n] = code
	}

	codes := make(map[int]uint64)
	for sym, n := range lens {
		if n == 0 {
			continue
		}
		codes[sym] = uint64(internal.ReverseUint32N(next[n], uint(n)))
		next[n]++
	}
	return codes
}

func repeatLens(n int, l uint16) []uint16 {
	lens := make([]uint16, n)
	for i := range lens {
		lens[i] = l
	}
	return lens
}

func TestBuildTableErrors(t *testing.T) {
	// Lengths 1..14 plus two codes of length 15 form a complete tree
	// deep enough to need second-level tables.
	deepLens := make([]uint16, 16)
	for i := 0; i < 15; i++ {
		deepLens[i] = uint16(i + 1)
	}
	deepLens[15] = 15

	vectors := []struct {
		kind     codeKind
		lens     []uint16
		rootBits uint
		err      error
	}{
		{kindLens, []uint16{1, 1, 1}, 9, ErrOversubscribed},
		{kindCLens, []uint16{2, 2, 2, 2, 2}, 7, ErrOversubscribed},
		{kindLens, []uint16{1, 2}, 9, ErrIncompleteCode},
		{kindLens, []uint16{2, 2, 2}, 9, ErrIncompleteCode},
		{kindCLens, []uint16{1}, 7, ErrIncompleteCode},
		{kindLens, []uint16{1}, 9, nil}, // Degenerate one-symbol tree
		{kindDists, []uint16{0, 1}, 6, nil},
		{kindLens, nil, 9, nil}, // No symbols at all
		{kindDists, repeatLens(32, 5), 6, nil},
		{kindLens, deepLens, 9, nil},
		{kindLens, deepLens, 10, ErrTableOverflow},
	}

	for i, v := range vectors {
		var table [numLenEntries + numDistEntries]code
		var work [maxNumLitSyms + 2]uint16
		_, _, err := buildTable(v.kind, v.lens, table[:], v.rootBits, work[:])
		if err != v.err {
			t.Errorf("test %d, buildTable() = %v, want %v", i, err, v.err)
		}
	}
}

func TestBuildTableDegenerate(t *testing.T) {
	var table [numLenEntries]code
	var work [maxNumLitSyms + 2]uint16

	// A one-symbol tree decodes its symbol off a single bit and leaves
	// the complementary pattern invalid.
	used, nb, err := buildTable(kindDists, []uint16{0, 0, 1}, table[:], 6, work[:])
	if err != nil {
		t.Fatalf("unexpected buildTable() error: %v", err)
	}
	if used != 2 || nb != 1 {
		t.Fatalf("buildTable() = (%d, %d), want (2, 1)", used, nb)
	}
	if c := table[0]; c.op&opBase == 0 || c.val != distBase[2] {
		t.Errorf("entry 0 = %+v, want distance base %d", c, distBase[2])
	}
	if c := table[1]; c.op != opInvalid {
		t.Errorf("entry 1 = %+v, want invalid", c)
	}

	// No symbols at all defers the error to first use.
	used, nb, err = buildTable(kindDists, repeatLens(30, 0), table[:], 6, work[:])
	if err != nil {
		t.Fatalf("unexpected buildTable() error: %v", err)
	}
	if used != 2 || nb != 1 {
		t.Fatalf("buildTable() = (%d, %d), want (2, 1)", used, nb)
	}
	for i, c := range table[:2] {
		if c.op != opInvalid || c.bits != 1 {
			t.Errorf("entry %d = %+v, want 1-bit invalid", i, c)
		}
	}
}

// TestBuildTableDecode builds tables from several length profiles and
// verifies that every symbol decodes back from its canonical codeword,
// including symbols that resolve through second-level tables.
func TestBuildTableDecode(t *testing.T) {
	fixedLitLens := make([]uint16, 288)
	for i := range fixedLitLens {
		switch {
		case i < 144:
			fixedLitLens[i] = 8
		case i < 256:
			fixedLitLens[i] = 9
		case i < 280:
			fixedLitLens[i] = 7
		default:
			fixedLitLens[i] = 8
		}
	}
	deepLens := make([]uint16, 16)
	for i := 0; i < 15; i++ {
		deepLens[i] = uint16(i + 1)
	}
	deepLens[15] = 15

	vectors := []struct {
		kind     codeKind
		lens     []uint16
		rootBits uint
	}{
		{kindLens, fixedLitLens, 9},
		{kindDists, repeatLens(32, 5), 6},
		{kindLens, deepLens, 9},
		{kindCLens, repeatLens(16, 4), 7},
	}

	for i, v := range vectors {
		var table [numLenEntries + numDistEntries]code
		var work [maxNumLitSyms + 2]uint16
		used, nb, err := buildTable(v.kind, v.lens, table[:], v.rootBits, work[:])
		if err != nil {
			t.Fatalf("test %d, unexpected buildTable() error: %v", i, err)
		}
		ht := huffTable{entries: table[:used], tableBits: nb}

		for sym, word := range canonicalCodes(v.lens) {
			bc := bitCursor{hold: word, cnt: 64}
			c, cnt, ok := bc.readCode(&ht)
			if !ok {
				t.Errorf("test %d, symbol %d did not decode", i, sym)
				continue
			}
			if cnt != uint(v.lens[sym]) {
				t.Errorf("test %d, symbol %d used %d bits, want %d", i, sym, cnt, v.lens[sym])
			}
			switch {
			case v.kind == kindCLens:
				if c.op != opLiteral || int(c.val) != sym {
					t.Errorf("test %d, symbol %d decoded as %+v", i, sym, c)
				}
			case v.kind == kindLens && sym < 256:
				if c.op != opLiteral || int(c.val) != sym {
					t.Errorf("test %d, symbol %d decoded as %+v", i, sym, c)
				}
			case v.kind == kindLens && sym == 256:
				if c.op != opEndBlock {
					t.Errorf("test %d, end-of-block decoded as %+v", i, c)
				}
			case v.kind == kindLens:
				if c.op != lenExtra[sym-257] || c.val != lenBase[sym-257] {
					t.Errorf("test %d, symbol %d decoded as %+v, want {%d, _, %d}",
						i, sym, c, lenExtra[sym-257], lenBase[sym-257])
				}
			default:
				if c.op != distExtra[sym] || c.val != distBase[sym] {
					t.Errorf("test %d, symbol %d decoded as %+v, want {%d, _, %d}",
						i, sym, c, distExtra[sym], distBase[sym])
				}
			}
		}
	}
}

func TestFixedTables(t *testing.T) {
	lit, dist := fixedTables()
	if lit.tableBits != 9 || dist.tableBits != 5 {
		t.Fatalf("table widths = (%d, %d), want (9, 5)", lit.tableBits, dist.tableBits)
	}

	// The 7-bit all-zeros code is end-of-block.
	if c := lit.entries[0]; c.op != opEndBlock || c.bits != 7 {
		t.Errorf("entry 0 = %+v, want 7-bit end-of-block", c)
	}
	// Literal 0 is the 8-bit code 00110000, seen LSB-first as 00001100.
	if c := lit.entries[0x0c]; c.op != opLiteral || c.bits != 8 || c.val != 0 {
		t.Errorf("entry 0x0c = %+v, want 8-bit literal 0", c)
	}
	// Distance symbol 0 is the 5-bit all-zeros code with base 1.
	if c := dist.entries[0]; c.op&opBase == 0 || c.bits != 5 || c.val != 1 {
		t.Errorf("distance entry 0 = %+v, want 5-bit base 1", c)
	}
}
