// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package inflate implements a streaming decoder for the DEFLATE
// compressed data format, described in RFC 1951, and for the zlib
// wrapper around it, described in RFC 1950.
//
// The Decoder type exposes a push-style API where the caller owns all
// buffers: each call to Decompress consumes some input, produces some
// output, and reports whether the decoder needs more of either or has
// reached the end of the stream. The Reader type adapts a Decoder to
// the io.Reader interface.
package inflate

const (
	maxHistBits = 15     // Largest supported window size exponent
	minHistBits = 8      // Smallest window size exponent accepted by Config
	maxHistSize = 1 << maxHistBits
	maxMatchLen = 258 // Largest length of a single backward copy

	endBlockSym = 256

	// These come from RFC section 3.2.5 and 3.2.7.
	maxNumCLenSyms = 19
	maxNumLitSyms  = 286
	maxNumDistSyms = 30
	maxPrefixBits  = 15

	// Decode table capacity for the worst-case prefix code, computed by
	// exhaustive enumeration over all valid length distributions for a
	// 9-bit literal/length root and a 6-bit distance root.
	numLenEntries  = 852
	numDistEntries = 592
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "inflate: " + string(e) }

var (
	// ErrCorrupt reports a structural violation not covered by a more
	// specific error below.
	ErrCorrupt error = Error("stream is corrupted")

	ErrBadHeader       error = Error("invalid stream header")
	ErrBadBlockType    error = Error("invalid block type")
	ErrBadStoredLength error = Error("mismatching stored block lengths")
	ErrOversubscribed  error = Error("over-subscribed prefix code")
	ErrIncompleteCode  error = Error("incomplete prefix code")
	ErrTableOverflow   error = Error("prefix table capacity exceeded")
	ErrMissingEOB      error = Error("missing end-of-block code")
	ErrBadCode         error = Error("invalid prefix code used")
	ErrDistanceTooFar  error = Error("distance exceeds available history")
	ErrNeedDictionary  error = Error("preset dictionary not supported")
	ErrBadChecksum     error = Error("mismatching checksum")
	ErrBadWindowBits   error = Error("invalid window size")
)

// Wrap selects the framing expected around the DEFLATE block stream.
type Wrap int

const (
	// WrapRaw decodes a bare block stream with no header or trailer.
	WrapRaw Wrap = iota

	// WrapZlib expects a 2-byte zlib header and verifies the 4-byte
	// Adler-32 trailer against the decoded output.
	WrapZlib

	// WrapGzip is recognized for completeness but not implemented;
	// decoding always fails with ErrBadHeader.
	WrapGzip
)

// Status reports why Decompress returned.
type Status int

const (
	// StatusBad indicates a terminal error; the decoder must not be
	// used again.
	StatusBad Status = iota

	// StatusNeedInput indicates that decoding stopped because the
	// input buffer was exhausted.
	StatusNeedInput

	// StatusNeedOutput indicates that decoding stopped because the
	// output buffer was filled.
	StatusNeedOutput

	// StatusStreamEnd indicates that the stream was fully decoded.
	StatusStreamEnd
)

func (s Status) String() string {
	switch s {
	case StatusNeedInput:
		return "NeedInput"
	case StatusNeedOutput:
		return "NeedOutput"
	case StatusStreamEnd:
		return "StreamEnd"
	default:
		return "Bad"
	}
}

// Config configures a Decoder. The zero value is a valid configuration
// for a raw DEFLATE stream with the largest window.
type Config struct {
	// WindowBits selects a 2^WindowBits byte history window and must be
	// in the range [8, 15]; 0 means 15. A value of 8 is widened to 9
	// internally since a 256-byte window interacts badly with matches
	// of up to 258 bytes, matching the behavior of the C zlib library.
	WindowBits int

	// Wrap selects the framing around the block stream.
	Wrap Wrap

	// LenientDistance controls the handling of back-references that
	// reach beyond the available history. When false (the default),
	// such a reference fails with ErrDistanceTooFar. When true, the
	// missing portion of the match is produced as zero bytes.
	LenientDistance bool

	// IgnoreChecksum skips verification of the wrapper trailer against
	// the running checksum of the decoded output. The trailer bytes are
	// still consumed.
	IgnoreChecksum bool
}
