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
	"io"

	"github.com/dsnet/compress/bzip2"
)

// bzip2Codec wraps github.com/dsnet/compress/bzip2. The standard library's
// compress/bzip2 is decode-only, so a live bzip2 compression_mode needs a
// third-party writer; dsnet/compress is the maintained implementation the
// wider Go ecosystem reaches for here.
type bzip2Codec struct {
	zw        *bzip2.Writer
	finalized bool
}

func newBzip2(w io.Writer) (*bzip2Codec, error) {
	zw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: 6})
	if err != nil {
		return nil, wrapCompressionErr("bzip2 init", err)
	}
	return &bzip2Codec{zw: zw}, nil
}

func (c *bzip2Codec) Write(p []byte) (int, error) {
	n, err := c.zw.Write(p)
	if err != nil {
		return n, wrapCompressionErr("bzip2 write", err)
	}
	return n, nil
}

// Finalize flushes the final bzip2 block and trailer. It is idempotent.
func (c *bzip2Codec) Finalize() error {
	if c.finalized {
		return nil
	}
	c.finalized = true
	if err := c.zw.Close(); err != nil {
		return wrapCompressionErr("bzip2 finalize", err)
	}
	return nil
}

func (c *bzip2Codec) Close() error {
	return c.Finalize()
}
