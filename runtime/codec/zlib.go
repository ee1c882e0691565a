/*
   Copyright 2025 The filechannel Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package codec

import (
	"compress/zlib"
	"io"
)

// zlibCodec wraps the standard library's compress/zlib. Unlike bzip2, the
// standard library does ship a zlib *writer*, so this is the one codec
// deliberately left on the standard library rather than pulled from a
// third party.
type zlibCodec struct {
	zw        *zlib.Writer
	finalized bool
}

func newZlib(w io.Writer) *zlibCodec {
	return &zlibCodec{zw: zlib.NewWriter(w)}
}

func (c *zlibCodec) Write(p []byte) (int, error) {
	n, err := c.zw.Write(p)
	if err != nil {
		return n, wrapCompressionErr("zlib write", err)
	}
	return n, nil
}

// Finalize flushes the zlib writer's internal state and writes the zlib
// trailer (Adler-32 checksum). It is idempotent.
func (c *zlibCodec) Finalize() error {
	if c.finalized {
		return nil
	}
	c.finalized = true
	if err := c.zw.Close(); err != nil {
		return wrapCompressionErr("zlib finalize", err)
	}
	return nil
}

func (c *zlibCodec) Close() error {
	return c.Finalize()
}
