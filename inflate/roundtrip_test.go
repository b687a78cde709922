// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inflate

import (
	"bytes"
	stdflate "compress/flate"
	stdzlib "compress/zlib"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	kpflate "github.com/klauspost/compress/flate"
	kpzlib "github.com/klauspost/compress/zlib"

	"github.com/gabrieldemarmiesse/zflate/internal/testutil"
)

var encoders = []struct {
	name      string
	wrap      Wrap
	newWriter func(w io.Writer, level int) (io.WriteCloser, error)
}{{
	name: "std/flate",
	wrap: WrapRaw,
	newWriter: func(w io.Writer, level int) (io.WriteCloser, error) {
		return stdflate.NewWriter(w, level)
	},
}, {
	name: "std/zlib",
	wrap: WrapZlib,
	newWriter: func(w io.Writer, level int) (io.WriteCloser, error) {
		return stdzlib.NewWriterLevel(w, level)
	},
}, {
	name: "kp/flate",
	wrap: WrapRaw,
	newWriter: func(w io.Writer, level int) (io.WriteCloser, error) {
		return kpflate.NewWriter(w, level)
	},
}, {
	name: "kp/zlib",
	wrap: WrapZlib,
	newWriter: func(w io.Writer, level int) (io.WriteCloser, error) {
		return kpzlib.NewWriterLevel(w, level)
	},
}}

// TestRoundTrip decodes the output of several independent DEFLATE
// encoders at several compression levels and verifies that the
// original data comes back.
func TestRoundTrip(t *testing.T) {
	data := testutil.CompressibleData(1<<18, 0)

	for _, enc := range encoders {
		for _, level := range []int{1, 6, 9} {
			t.Run(fmt.Sprintf("%s:%d", enc.name, level), func(t *testing.T) {
				var buf bytes.Buffer
				wr, err := enc.newWriter(&buf, level)
				if err != nil {
					t.Fatalf("unexpected NewWriter error: %v", err)
				}
				if _, err := wr.Write(data); err != nil {
					t.Fatalf("unexpected Write error: %v", err)
				}
				if err := wr.Close(); err != nil {
					t.Fatalf("unexpected Close error: %v", err)
				}

				rd, err := NewReader(&buf, &Config{Wrap: enc.wrap})
				if err != nil {
					t.Fatalf("unexpected NewReader error: %v", err)
				}
				got, err := io.ReadAll(rd)
				if err != nil {
					t.Fatalf("unexpected Read error: %v", err)
				}
				if diff := cmp.Diff(data, got); diff != "" {
					t.Errorf("output mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

// TestRoundTripWindowSizes sweeps the configurable window sizes. The
// input is kept smaller than the window so that every distance the
// encoders emit stays within range.
func TestRoundTripWindowSizes(t *testing.T) {
	for wbits := 8; wbits <= 15; wbits++ {
		data := testutil.CompressibleData(1<<uint(wbits-1), wbits)

		var buf bytes.Buffer
		wr, err := stdflate.NewWriter(&buf, stdflate.DefaultCompression)
		if err != nil {
			t.Fatalf("wbits %d, unexpected NewWriter error: %v", wbits, err)
		}
		wr.Write(data)
		wr.Close()

		rd, err := NewReader(&buf, &Config{WindowBits: wbits})
		if err != nil {
			t.Fatalf("wbits %d, unexpected NewReader error: %v", wbits, err)
		}
		got, err := io.ReadAll(rd)
		if err != nil {
			t.Fatalf("wbits %d, unexpected Read error: %v", wbits, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("wbits %d, output mismatch", wbits)
		}
	}
}

// TestRoundTripMultiStream decodes several zlib streams written
// back-to-back into the same buffer, resetting between streams.
func TestRoundTripMultiStream(t *testing.T) {
	var buf bytes.Buffer
	var want [][]byte
	for i := 0; i < 3; i++ {
		data := testutil.CompressibleData(1<<12, 100+i)
		want = append(want, data)
		wr := stdzlib.NewWriter(&buf)
		wr.Write(data)
		wr.Close()
	}

	rd, err := NewReader(&buf, &Config{Wrap: WrapZlib})
	if err != nil {
		t.Fatalf("unexpected NewReader error: %v", err)
	}
	for i, data := range want {
		got, err := io.ReadAll(rd)
		if err != nil {
			t.Fatalf("stream %d, unexpected Read error: %v", i, err)
		}
		if diff := cmp.Diff(data, got); diff != "" {
			t.Errorf("stream %d, output mismatch (-want +got):\n%s", i, diff)
		}
		leftover := append([]byte(nil), rd.buf...)
		rd.Reset(io.MultiReader(bytes.NewReader(leftover), &buf))
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := testutil.CompressibleData(1<<20, 0)
	var buf bytes.Buffer
	wr, _ := stdflate.NewWriter(&buf, stdflate.DefaultCompression)
	wr.Write(data)
	wr.Close()
	input := buf.Bytes()

	dec, err := NewDecoder(nil)
	if err != nil {
		b.Fatalf("unexpected NewDecoder error: %v", err)
	}
	dst := make([]byte, 1<<16)

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dec.Reset()
		src := input
		for !dec.Finished() {
			_, nsrc, _, err := dec.Decompress(dst, src)
			if err != nil {
				b.Fatalf("unexpected Decompress error: %v", err)
			}
			src = src[nsrc:]
		}
	}
}
