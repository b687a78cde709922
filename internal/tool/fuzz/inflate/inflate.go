// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package inflate

import (
	"bytes"
	"compress/flate"
	"io"

	"github.com/gabrieldemarmiesse/zflate/inflate"
)

func Fuzz(data []byte) int {
	gotZF, errZF := decodeZF(data, inflate.WrapRaw)
	gotStd, errStd := decodeStd(data)
	if errZF == nil && errStd == nil && !bytes.Equal(gotZF, gotStd) {
		panic("mismatching raw stream output")
	}

	// The zlib framing is decoded for coverage alone since the standard
	// library cannot report how many input bytes it consumed.
	decodeZF(data, inflate.WrapZlib)

	if errZF == nil {
		return 1
	}
	return 0
}

func decodeZF(data []byte, wrap inflate.Wrap) ([]byte, error) {
	r, err := inflate.NewReader(bytes.NewReader(data), &inflate.Config{Wrap: wrap})
	if err != nil {
		panic(err)
	}
	b, err := io.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	return b, err
}

func decodeStd(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	b, err := io.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	return b, err
}
