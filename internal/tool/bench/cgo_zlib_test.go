// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build cgo && !no_cgo_zlib
// +build cgo,!no_cgo_zlib

package bench

import (
	"testing"
)

func TestCGoRoundTripFlate(t *testing.T) {
	testRoundTrip(t, Encoders[FormatFlate]["cgo"], Decoders[FormatFlate]["cgo"])
}

func TestCGoRoundTripZlib(t *testing.T) {
	testRoundTrip(t, Encoders[FormatZlib]["cgo"], Decoders[FormatZlib]["cgo"])
}
