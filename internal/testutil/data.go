// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

// CompressibleData deterministically generates n bytes that heavily
// favor LZ77 based compression. A large bulk of the output is a copy
// from some earlier distance with a wide spread of lengths and
// distances, while the underlying bytes are random enough that prefix
// encoding does not benefit as much.
func CompressibleData(n, seed int) []byte {
	rand := NewRand(seed)

	randLen := func() int {
		base := 4 << uint(rand.Intn(7)) // 4..256
		return base + rand.Intn(base)
	}
	randDist := func(max int) int {
		d := max + 1
		for d > max {
			d = 1 + rand.Intn(1<<uint(1+rand.Intn(15)))
		}
		return d
	}

	b := rand.Bytes(randLen())
	for len(b) < n {
		if rand.Intn(10) == 0 {
			b = append(b, rand.Bytes(randLen())...)
			continue
		}
		d, l := randDist(len(b)), randLen()
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}
	return b[:n]
}
