// Copyright 2026, The zflate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_zf_lib
// +build !no_zf_lib

package bench

import (
	"io"

	"github.com/gabrieldemarmiesse/zflate/inflate"
)

func init() {
	RegisterDecoder(FormatFlate, "zf",
		func(r io.Reader) io.ReadCloser {
			zr, err := inflate.NewReader(r, nil)
			if err != nil {
				panic(err)
			}
			return zr
		})
	RegisterDecoder(FormatZlib, "zf",
		func(r io.Reader) io.ReadCloser {
			zr, err := inflate.NewReader(r, &inflate.Config{Wrap: inflate.WrapZlib})
			if err != nil {
				panic(err)
			}
			return zr
		})
}
