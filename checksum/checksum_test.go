// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package checksum

import (
	"hash/adler32"
	"hash/crc32"
	"testing"

	hashutil "github.com/dsnet/golib/hashmerge"
	"github.com/gabrieldemarmiesse/zflate/internal/testutil"
)

func TestAdler32(t *testing.T) {
	vectors := []struct {
		data string
		sum  uint32
	}{
		{"", 0x00000001},
		{"a", 0x00620062},
		{"abc", 0x024d0127},
		{"hello", 0x062c0215},
		{"Wikipedia", 0x11e60398},
		{"Hello, World!", 0x1f9e046a},
	}

	for i, v := range vectors {
		if got := Adler32([]byte(v.data)); got != v.sum {
			t.Errorf("test %d, Adler32(%q) = 0x%08x, want 0x%08x", i, v.data, got, v.sum)
		}
	}
}

func TestCRC32(t *testing.T) {
	vectors := []struct {
		data string
		sum  uint32
	}{
		{"", 0x00000000},
		{"abc", 0x352441c2},
		{"123456789", 0xcbf43926},
	}

	for i, v := range vectors {
		if got := CRC32([]byte(v.data)); got != v.sum {
			t.Errorf("test %d, CRC32(%q) = 0x%08x, want 0x%08x", i, v.data, got, v.sum)
		}
	}
}

// TestUpdate verifies that incremental updates over arbitrary splits
// agree with the standard library over the whole input. The data is
// long enough to cross the Adler-32 deferred-modulo boundary.
func TestUpdate(t *testing.T) {
	rand := testutil.NewRand(0)
	data := rand.Bytes(1 << 16)

	adler := uint32(adlerInit)
	crc := uint32(0)
	for pos := 0; pos < len(data); {
		n := rand.Intn(1 << 13)
		if n > len(data)-pos {
			n = len(data) - pos
		}
		adler = UpdateAdler32(adler, data[pos:pos+n])
		crc = UpdateCRC32(crc, data[pos:pos+n])
		pos += n
	}

	if want := adler32.Checksum(data); adler != want {
		t.Errorf("incremental Adler-32 mismatch: got 0x%08x, want 0x%08x", adler, want)
	}
	if want := crc32.ChecksumIEEE(data); crc != want {
		t.Errorf("incremental CRC-32 mismatch: got 0x%08x, want 0x%08x", crc, want)
	}
}

// TestCombineCRC32 verifies that this package's CRC-32 composes under
// hashutil.CombineCRC32, which requires polynomial agreement with the
// standard IEEE definition.
func TestCombineCRC32(t *testing.T) {
	rand := testutil.NewRand(1)
	data := rand.Bytes(4096)
	for _, split := range []int{0, 1, 100, 2048, 4095, 4096} {
		crc1 := CRC32(data[:split])
		crc2 := CRC32(data[split:])
		got := hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, int64(len(data)-split))
		if want := CRC32(data); got != want {
			t.Errorf("split %d, combined CRC-32 mismatch: got 0x%08x, want 0x%08x", split, got, want)
		}
	}
}
