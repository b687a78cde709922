// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inflate

import "sync"

// The fixed block type uses a predefined code-length profile,
// RFC section 3.2.6. Its decode tables are built on first use and
// shared, immutable, by every decoder afterwards.

var (
	fixedOnce sync.Once
	fixedLit  huffTable
	fixedDist huffTable
	fixedArr  [512 + 32]code
)

func fixedTables() (lit, dist huffTable) {
	fixedOnce.Do(func() {
		var lens [288]uint16
		var work [288]uint16
		for i := 0; i < 144; i++ {
			lens[i] = 8
		}
		for i := 144; i < 256; i++ {
			lens[i] = 9
		}
		for i := 256; i < 280; i++ {
			lens[i] = 7
		}
		for i := 280; i < 288; i++ {
			lens[i] = 8
		}
		used, nb, err := buildTable(kindLens, lens[:], fixedArr[:], 9, work[:])
		if err != nil {
			panic(err) // Profile is constant; cannot fail
		}
		fixedLit = huffTable{entries: fixedArr[:used], tableBits: nb}

		for i := 0; i < 32; i++ {
			lens[i] = 5
		}
		used2, nb, err := buildTable(kindDists, lens[:32], fixedArr[used:], 5, work[:])
		if err != nil {
			panic(err)
		}
		fixedDist = huffTable{entries: fixedArr[used : used+used2], tableBits: nb}
	})
	return fixedLit, fixedDist
}
