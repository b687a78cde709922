// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_zf_lib && !no_std_lib
// +build !no_zf_lib,!no_std_lib

package bench

import (
	"testing"
)

func TestZfRoundTripFlate(t *testing.T) {
	testRoundTrip(t, Encoders[FormatFlate]["std"], Decoders[FormatFlate]["zf"])
}

func TestZfRoundTripZlib(t *testing.T) {
	testRoundTrip(t, Encoders[FormatZlib]["std"], Decoders[FormatZlib]["zf"])
}
