// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"hash/crc32"
	"io"
	"testing"
)

func testRoundTrip(t *testing.T, enc Encoder, dec Decoder) {
	const (
		level = 6
		size  = 1e6
	)
	for i, d := range Datasets {
		input, err := LoadData(d, size)
		if err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, d, err)
			continue
		}

		buf := new(bytes.Buffer)
		wr := enc(buf, level)
		_, cpErr := io.Copy(wr, bytes.NewReader(input))
		if err := wr.Close(); err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, d, err)
			continue
		}
		if cpErr != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, d, cpErr)
			continue
		}

		hash := crc32.NewIEEE()
		rd := dec(buf)
		cnt, cpErr := io.Copy(hash, rd)
		if err := rd.Close(); err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, d, err)
			continue
		}
		if cpErr != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, d, cpErr)
			continue
		}

		sum := crc32.ChecksumIEEE(input)
		if int(cnt) != len(input) {
			t.Errorf("test %d, %s: mismatching count: got %d, want %d", i, d, cnt, len(input))
		}
		if hash.Sum32() != sum {
			t.Errorf("test %d, %s: mismatching checksum: got 0x%08x, want 0x%08x", i, d, hash.Sum32(), sum)
		}
	}
}

func TestGetName(t *testing.T) {
	vectors := []struct {
		data  string
		level int
		size  int
		name  string
	}{
		{"repeats", 6, 1e6, "repeats:6:1e6"},
		{"random", 9, 1e4, "random:9:1e4"},
	}
	for i, v := range vectors {
		if got := getName(v.data, v.level, v.size); got != v.name {
			t.Errorf("test %d, getName() = %q, want %q", i, got, v.name)
		}
	}
}
