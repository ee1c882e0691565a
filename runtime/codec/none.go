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

import "io"

// noneCodec is the identity pass-through: no compression, no terminator.
type noneCodec struct {
	w io.Writer
}

func newNone(w io.Writer) *noneCodec {
	return &noneCodec{w: w}
}

func (c *noneCodec) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

func (c *noneCodec) Finalize() error { return nil }

func (c *noneCodec) Close() error { return nil }
