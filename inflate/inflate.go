// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inflate

import "github.com/gabrieldemarmiesse/zflate/checksum"

// mode is the current phase of the block state machine. Transitions
// follow the stream structure; modeBad and modeDone are terminal, while
// any other mode may suspend waiting for input or output.
type mode int

const (
	modeHeader    mode = iota // Wrapper header, if any
	modeType                  // Last-block bit and block type bits
	modeStoredLen             // Stored block length and its complement
	modeStored                // Copying stored block bytes
	modeTable                 // Dynamic block HLIT/HDIST/HCLEN counts
	modeLenLens               // Code lengths for the code-lengths code
	modeCodeLens              // Literal/distance code lengths
	modeLen                   // Literal/length symbol
	modeLenExt                // Extra bits of a length symbol
	modeDist                  // Distance symbol
	modeDistExt               // Extra bits of a distance symbol
	modeMatch                 // Copying a backward match
	modeLit                   // Emitting a single literal
	modeCheck                 // Wrapper trailer, if any
	modeDone                  // Stream fully decoded
	modeBad                   // Terminal error
)

// Decoder is a push-style DEFLATE decompressor. The caller owns the
// input and output buffers and repeatedly calls Decompress; the decoder
// tracks all state needed to suspend and resume at any point in the
// stream, including mid-symbol.
//
// A Decoder must not be used from multiple goroutines concurrently.
type Decoder struct {
	wrap        Wrap
	winBits     uint
	lenient     bool
	ignoreCheck bool

	step mode
	last bool   // Last-block bit seen
	hold uint64 // Bit accumulator carried across calls
	bits uint   // Valid bits in hold

	window []byte // Sliding history window, circular
	wsize  int    // len(window)
	whave  int    // Valid history bytes, at most wsize
	wnext  int    // Next write position in window

	length int  // Stored bytes left, literal value, or match length
	dist   int  // Match distance
	extra  uint // Extra bits still to read

	lenTab  huffTable // Active literal/length decode table
	distTab huffTable // Active distance decode table
	clenTab huffTable // Code-lengths decode table for dynamic headers

	nlen, ndist, ncode int // Dynamic header symbol counts
	have               int // Symbols decoded so far in the dynamic header

	check    uint32 // Running Adler-32 of the output under WrapZlib
	totalIn  int64
	totalOut int64
	err      error

	// The decode tables for one block are built into this arena and
	// replaced wholesale when the next block begins.
	codes [numLenEntries + numDistEntries]code
	lens  [maxNumLitSyms + maxNumDistSyms]uint16
	work  [maxNumLitSyms + 2]uint16
}

// NewDecoder creates a Decoder for a single logical stream.
// A nil conf is equivalent to the zero Config.
func NewDecoder(conf *Config) (*Decoder, error) {
	var c Config
	if conf != nil {
		c = *conf
	}
	wb := c.WindowBits
	if wb == 0 {
		wb = maxHistBits
	}
	if wb < minHistBits || wb > maxHistBits {
		return nil, ErrBadWindowBits
	}
	if wb == minHistBits {
		wb = minHistBits + 1
	}
	if c.Wrap < WrapRaw || c.Wrap > WrapGzip {
		return nil, Error("invalid wrap mode")
	}

	d := &Decoder{
		wrap:        c.Wrap,
		winBits:     uint(wb),
		lenient:     c.LenientDistance,
		ignoreCheck: c.IgnoreChecksum,
	}
	d.wsize = 1 << d.winBits
	d.window = make([]byte, d.wsize)
	d.Reset()
	return d, nil
}

// Reset returns the decoder to its initial state so that a new stream
// can be decoded with the same configuration and buffers.
func (d *Decoder) Reset() {
	d.step = modeHeader
	d.last = false
	d.hold, d.bits = 0, 0
	d.whave, d.wnext = 0, 0
	d.length, d.dist, d.extra = 0, 0, 0
	d.check = 1
	d.totalIn, d.totalOut = 0, 0
	d.err = nil
}

// TotalIn reports the total number of input bytes consumed so far.
func (d *Decoder) TotalIn() int64 { return d.totalIn }

// TotalOut reports the total number of output bytes produced so far.
func (d *Decoder) TotalOut() int64 { return d.totalOut }

// Finished reports whether the end of the stream has been reached.
func (d *Decoder) Finished() bool { return d.step == modeDone }

// Checksum reports the running Adler-32 of all output produced under
// WrapZlib. It is 1 under other framings until output is produced.
func (d *Decoder) Checksum() uint32 { return d.check }

// Decompress decodes as much of src into dst as possible and reports
// how many bytes of each were used along with why it stopped. A status
// of StatusNeedInput or StatusNeedOutput suspends the decode; the
// caller resumes by calling again with more input or free output space.
// Unconsumed input bytes must be resubmitted by the caller.
//
// Hard errors are terminal: after a non-nil error every subsequent call
// reports the same error and the decoder must be discarded.
func (d *Decoder) Decompress(dst, src []byte) (ndst, nsrc int, status Status, err error) {
	if d.err != nil {
		return 0, 0, StatusBad, d.err
	}
	if d.step == modeDone {
		return 0, 0, StatusStreamEnd, nil
	}

	bc := bitCursor{src: src, hold: d.hold, cnt: d.bits}
	var op int    // Bytes written to dst so far in this call
	var ckpos int // Bytes of dst already folded into the checksum

loop:
	for {
		switch d.step {
		case modeHeader:
			switch d.wrap {
			case WrapRaw:
				d.step = modeType
				continue
			case WrapGzip:
				d.err = ErrBadHeader
				break loop
			}
			if !bc.need(16) {
				break loop
			}
			cmf := bc.hold & 0xff
			flg := bc.hold >> 8 & 0xff
			switch {
			case (cmf<<8|flg)%31 != 0:
				d.err = ErrBadHeader
			case cmf&0x0f != 8: // Compression method must be deflate
				d.err = ErrBadHeader
			case uint(cmf>>4)+8 > d.winBits:
				d.err = ErrBadHeader // Window larger than configured
			case flg&0x20 != 0:
				d.err = ErrNeedDictionary
			}
			if d.err != nil {
				break loop
			}
			bc.drop(16)
			d.check = 1
			d.step = modeType

		case modeType:
			if d.last {
				bc.alignToByte()
				d.step = modeCheck
				continue
			}
			if !bc.need(3) {
				break loop
			}
			d.last = bc.take(1) == 1
			switch bc.take(2) {
			case 0: // Stored block (RFC section 3.2.4)
				d.step = modeStoredLen
			case 1: // Fixed prefix block (RFC section 3.2.6)
				d.lenTab, d.distTab = fixedTables()
				d.step = modeLen
			case 2: // Dynamic prefix block (RFC section 3.2.7)
				d.step = modeTable
			default: // Reserved block (RFC section 3.2.3)
				d.err = ErrBadBlockType
				break loop
			}

		case modeStoredLen:
			bc.alignToByte()
			if !bc.need(32) {
				break loop
			}
			v := bc.take(32)
			if v&0xffff != v>>16^0xffff {
				d.err = ErrBadStoredLength
				break loop
			}
			d.length = int(v & 0xffff)
			d.step = modeStored

		case modeStored:
			if d.length == 0 {
				d.step = modeType
				continue
			}
			if op == len(dst) {
				break loop
			}
			avail := d.length
			if avail > len(dst)-op {
				avail = len(dst) - op
			}
			cnt := bc.readBytes(dst[op : op+avail])
			if cnt == 0 {
				break loop
			}
			op += cnt
			d.length -= cnt

		case modeTable:
			if !bc.need(14) {
				break loop
			}
			d.nlen = int(bc.take(5)) + 257
			d.ndist = int(bc.take(5)) + 1
			d.ncode = int(bc.take(4)) + 4
			if d.nlen > maxNumLitSyms || d.ndist > maxNumDistSyms {
				d.err = ErrCorrupt // Too many symbols
				break loop
			}
			d.have = 0
			d.step = modeLenLens

		case modeLenLens:
			for d.have < d.ncode {
				if !bc.need(3) {
					break loop
				}
				d.lens[clenOrder[d.have]] = uint16(bc.take(3))
				d.have++
			}
			for d.have < maxNumCLenSyms {
				d.lens[clenOrder[d.have]] = 0
				d.have++
			}
			used, nb, err := buildTable(kindCLens, d.lens[:maxNumCLenSyms], d.codes[:], 7, d.work[:])
			if err != nil {
				d.err = err
				break loop
			}
			d.clenTab = huffTable{entries: d.codes[:used], tableBits: nb}
			d.have = 0
			d.step = modeCodeLens

		case modeCodeLens:
			for d.have < d.nlen+d.ndist {
				c, nb, ok := bc.readCode(&d.clenTab)
				if !ok {
					break loop
				}
				if c.op&opInvalid != 0 {
					d.err = ErrBadCode
					break loop
				}
				if c.val < 16 {
					// Literal bit-length symbol used.
					bc.drop(nb)
					d.lens[d.have] = c.val
					d.have++
					continue
				}

				// Repeater symbol used.
				var rep int
				var v uint16
				switch c.val {
				case 16:
					if !bc.need(nb + 2) {
						break loop
					}
					if d.have == 0 {
						d.err = ErrCorrupt // Repeat with no previous length
						break loop
					}
					bc.drop(nb)
					v = d.lens[d.have-1]
					rep = 3 + int(bc.take(2))
				case 17:
					if !bc.need(nb + 3) {
						break loop
					}
					bc.drop(nb)
					rep = 3 + int(bc.take(3))
				default: // 18
					if !bc.need(nb + 7) {
						break loop
					}
					bc.drop(nb)
					rep = 11 + int(bc.take(7))
				}
				if d.have+rep > d.nlen+d.ndist {
					d.err = ErrCorrupt // Repeat overflows the alphabets
					break loop
				}
				for ; rep > 0; rep-- {
					d.lens[d.have] = v
					d.have++
				}
			}

			if d.lens[endBlockSym] == 0 {
				d.err = ErrMissingEOB
				break loop
			}
			usedL, nbL, err := buildTable(kindLens, d.lens[:d.nlen], d.codes[:], 9, d.work[:])
			if err != nil {
				d.err = err
				break loop
			}
			d.lenTab = huffTable{entries: d.codes[:usedL], tableBits: nbL}
			usedD, nbD, err := buildTable(kindDists, d.lens[d.nlen:d.nlen+d.ndist], d.codes[usedL:], 6, d.work[:])
			if err != nil {
				d.err = err
				break loop
			}
			d.distTab = huffTable{entries: d.codes[usedL : usedL+usedD], tableBits: nbD}
			d.step = modeLen

		case modeLen:
			if bc.bytesLeft() >= fastMinInput && len(dst)-op >= fastMinOutput {
				op = d.fastPath(dst, op, &bc)
				if d.err != nil {
					break loop
				}
				continue
			}
			c, nb, ok := bc.readCode(&d.lenTab)
			if !ok {
				break loop
			}
			bc.drop(nb)
			switch {
			case c.op == opLiteral:
				d.length = int(c.val)
				d.step = modeLit
			case c.op&opBase != 0:
				d.length = int(c.val)
				d.extra = uint(c.op & 15)
				d.step = modeLenExt
			case c.op&0x20 != 0: // End of block
				d.step = modeType
			default:
				d.err = ErrBadCode
				break loop
			}

		case modeLenExt:
			if d.extra > 0 {
				if !bc.need(d.extra) {
					break loop
				}
				d.length += int(bc.take(d.extra))
			}
			d.step = modeDist

		case modeDist:
			c, nb, ok := bc.readCode(&d.distTab)
			if !ok {
				break loop
			}
			bc.drop(nb)
			if c.op&opInvalid != 0 {
				d.err = ErrBadCode
				break loop
			}
			d.dist = int(c.val)
			d.extra = uint(c.op & 15)
			d.step = modeDistExt

		case modeDistExt:
			if d.extra > 0 {
				if !bc.need(d.extra) {
					break loop
				}
				d.dist += int(bc.take(d.extra))
			}
			d.step = modeMatch

		case modeMatch:
			if op == len(dst) {
				break loop
			}
			if d.dist > op {
				// Part of the match lies in the window history.
				rem := d.dist - op
				if rem > d.whave {
					if !d.lenient {
						d.err = ErrDistanceTooFar
						break loop
					}
					// Produce zeros for history that never existed.
					zero := rem - d.whave
					if zero > d.length {
						zero = d.length
					}
					for zero > 0 && op < len(dst) {
						dst[op] = 0
						op++
						d.length--
						zero--
					}
					if d.length == 0 {
						d.step = modeLen
					}
					continue
				}
				pos := d.wnext - rem
				if pos < 0 {
					pos += d.wsize
				}
				for d.length > 0 && op < len(dst) && d.dist > op {
					dst[op] = d.window[pos]
					op++
					d.length--
					if pos++; pos == d.wsize {
						pos = 0
					}
				}
				if d.length == 0 {
					d.step = modeLen
				}
				continue
			}
			// The whole source lies within this call's output.
			cnt := d.length
			if cnt > len(dst)-op {
				cnt = len(dst) - op
			}
			from := op - d.dist
			for i := 0; i < cnt; i++ {
				dst[op] = dst[from]
				op++
				from++
			}
			d.length -= cnt
			if d.length == 0 {
				d.step = modeLen
			}

		case modeLit:
			if op == len(dst) {
				break loop
			}
			dst[op] = byte(d.length)
			op++
			d.step = modeLen

		case modeCheck:
			if d.wrap == WrapZlib {
				if !bc.need(32) {
					break loop
				}
				if op > ckpos {
					d.check = checksum.UpdateAdler32(d.check, dst[ckpos:op])
					ckpos = op
				}
				v := bc.take(32)
				got := v>>24 | v>>8&0xff00 | v<<8&0xff0000 | v<<24
				if got != d.check && !d.ignoreCheck {
					d.err = ErrBadChecksum
					break loop
				}
			}
			d.step = modeDone

		case modeDone:
			break loop

		default:
			d.err = ErrCorrupt
			break loop
		}
	}

	// Fold this call's results into the persistent state.
	if d.step == modeDone || d.err != nil {
		bc.rebase()
	}
	if d.wrap == WrapZlib && op > ckpos {
		d.check = checksum.UpdateAdler32(d.check, dst[ckpos:op])
	}
	if op > 0 {
		d.updateWindow(dst[:op])
	}
	d.hold, d.bits = bc.hold, bc.cnt
	d.totalIn += int64(bc.pos)
	d.totalOut += int64(op)
	ndst, nsrc = op, bc.pos

	if d.err != nil {
		d.step = modeBad
		return ndst, nsrc, StatusBad, d.err
	}
	switch {
	case d.step == modeDone:
		status = StatusStreamEnd
	case op == len(dst):
		status = StatusNeedOutput
	default:
		status = StatusNeedInput
	}
	return ndst, nsrc, status, nil
}

// updateWindow folds freshly produced output into the sliding window.
func (d *Decoder) updateWindow(out []byte) {
	if len(out) >= d.wsize {
		copy(d.window, out[len(out)-d.wsize:])
		d.wnext = 0
		d.whave = d.wsize
		return
	}
	n := copy(d.window[d.wnext:], out)
	if n < len(out) {
		copy(d.window, out[n:])
		d.wnext = len(out) - n
	} else {
		d.wnext += n
		if d.wnext == d.wsize {
			d.wnext = 0
		}
	}
	if d.whave < d.wsize {
		d.whave += len(out)
		if d.whave > d.wsize {
			d.whave = d.wsize
		}
	}
}
