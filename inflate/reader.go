// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inflate

import "io"

var errClosed error = Error("reader is closed")

// Reader decompresses a stream pulled from an underlying io.Reader.
// It is a convenience layer over Decoder for callers that do not want
// to manage buffers themselves.
type Reader struct {
	// InputOffset is the total number of compressed bytes the stream
	// has consumed from the underlying reader. Bytes read ahead but
	// not consumed are excluded, see Buffered.
	InputOffset int64

	// OutputOffset is the total number of decompressed bytes emitted.
	OutputOffset int64

	rd   io.Reader
	dec  *Decoder
	buf  []byte // Compressed bytes read ahead but not yet consumed
	arr  [4096]byte
	rerr error // Sticky error from rd
	err  error // Sticky stream error
}

// NewReader creates a Reader decompressing from rd.
// A nil conf is equivalent to the zero Config.
func NewReader(rd io.Reader, conf *Config) (*Reader, error) {
	dec, err := NewDecoder(conf)
	if err != nil {
		return nil, err
	}
	return &Reader{rd: rd, dec: dec}, nil
}

// Reset discards the Reader's state and makes it equivalent to a new
// Reader on rd, keeping the configuration and internal buffers.
func (r *Reader) Reset(rd io.Reader) {
	r.InputOffset, r.OutputOffset = 0, 0
	r.rd = rd
	r.dec.Reset()
	r.buf = nil
	r.rerr, r.err = nil, nil
}

// Buffered reports the number of compressed bytes read from the
// underlying reader but not yet consumed by the stream. After the
// stream ends these bytes belong to whatever follows it.
func (r *Reader) Buffered() int { return len(r.buf) }

func (r *Reader) Read(buf []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int
	for {
		ndst, nsrc, status, err := r.dec.Decompress(buf[n:], r.buf)
		n += ndst
		r.buf = r.buf[nsrc:]
		r.InputOffset += int64(nsrc)
		r.OutputOffset += int64(ndst)
		if err != nil {
			r.err = err
			return n, r.err
		}
		switch status {
		case StatusStreamEnd:
			r.err = io.EOF
			return n, io.EOF
		case StatusNeedOutput:
			return n, nil
		default:
			if err := r.fill(); err != nil {
				r.err = err
				return n, r.err
			}
		}
	}
}

// fill reads more compressed input into the staging buffer.
// A clean EOF from the underlying reader means the stream itself was
// truncated, since fill only runs when the stream wants more input.
func (r *Reader) fill() error {
	n := copy(r.arr[:], r.buf)
	r.buf = r.arr[:n]
	for r.rerr == nil {
		var cnt int
		cnt, r.rerr = r.rd.Read(r.arr[n:])
		n += cnt
		r.buf = r.arr[:n]
		if cnt > 0 {
			return nil
		}
	}
	if r.rerr == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return r.rerr
}

// Close stops further reads. It does not close the underlying reader.
func (r *Reader) Close() error {
	if r.err == errClosed {
		return nil
	}
	if r.err != nil && r.err != io.EOF {
		return r.err
	}
	r.err = errClosed
	return nil
}
