// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package checksum implements the rolling Adler-32 and CRC-32 checksums
// used by the RFC 1950 and RFC 1952 wrapper formats.
//
// Both checksums are resumable: the value returned for one chunk may be
// passed back as the seed for the next chunk, and the result is identical
// to checksumming the concatenation in one call.
package checksum

const (
	adlerInit = 1     // Seed for a fresh Adler-32 computation
	adlerBase = 65521 // Largest prime smaller than 1<<16

	// Largest n such that 255*n*(n+1)/2 + (n+1)*(adlerBase-1) fits in
	// an uint32. Both running sums may be deferred modulo adlerBase for
	// up to this many input bytes.
	adlerNMax = 5552

	// CRC-32 polynomial in reflected bit order (RFC 1952 section 8).
	crcPoly = 0xedb88320
)

var crcTable [256]uint32

func init() {
	for i := range crcTable {
		crc := uint32(i)
		for k := 0; k < 8; k++ {
			if crc&1 > 0 {
				crc = (crc >> 1) ^ crcPoly
			} else {
				crc >>= 1
			}
		}
		crcTable[i] = crc
	}
}

// Adler32 returns the Adler-32 checksum of buf.
func Adler32(buf []byte) uint32 {
	return UpdateAdler32(adlerInit, buf)
}

// UpdateAdler32 returns the result of adding the bytes in buf to adler.
// The seed for an empty stream is 1.
func UpdateAdler32(adler uint32, buf []byte) uint32 {
	s1 := adler & 0xffff
	s2 := adler >> 16
	for len(buf) > 0 {
		blk := buf
		if len(blk) > adlerNMax {
			blk = blk[:adlerNMax]
		}
		buf = buf[len(blk):]
		for _, c := range blk {
			s1 += uint32(c)
			s2 += s1
		}
		s1 %= adlerBase
		s2 %= adlerBase
	}
	return s2<<16 | s1
}

// CRC32 returns the CRC-32 checksum of buf using the IEEE polynomial.
func CRC32(buf []byte) uint32 {
	return UpdateCRC32(0, buf)
}

// UpdateCRC32 returns the result of adding the bytes in buf to crc.
// The seed for an empty stream is 0.
func UpdateCRC32(crc uint32, buf []byte) uint32 {
	crc = ^crc
	for _, c := range buf {
		crc = crcTable[byte(crc)^c] ^ (crc >> 8)
	}
	return ^crc
}
