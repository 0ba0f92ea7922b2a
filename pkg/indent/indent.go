// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indent provides an io.Writer that prefixes every line written to
// it with a fixed string. It is used by the AST dumper to nest children
// under their parent without hand-tracking indentation depth.
package indent

import (
	"bytes"
	"io"
)

// String returns in with prefix inserted at the start of every line.
func String(prefix, in string) string {
	return string(Bytes([]byte(prefix), []byte(in)))
}

// Bytes returns in with prefix inserted at the start of every line.
func Bytes(prefix, in []byte) []byte {
	var b bytes.Buffer
	w := NewWriter(&b, string(prefix))
	w.Write(in)
	return b.Bytes()
}

// A Writer indents every line written to it with a fixed prefix before
// passing the result on to an underlying io.Writer.
type Writer struct {
	w     io.Writer
	prefix []byte
	atBOL bool // true if the next byte written starts a new line
}

// NewWriter returns a Writer that indents each line written to it with
// prefix before passing it on to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), atBOL: true}
}

// Write implements io.Writer. The returned count reflects only the bytes of
// data consumed, never the prefix bytes inserted on data's behalf.
func (iw *Writer) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	var transformed []byte
	cum := make([]int, 0, len(data)+4)
	isPrefix := make([]bool, 0, len(data)+4)

	atBOL := iw.atBOL
	srcCount := 0
	for _, b := range data {
		if atBOL {
			transformed = append(transformed, iw.prefix...)
			for range iw.prefix {
				cum = append(cum, srcCount)
				isPrefix = append(isPrefix, true)
			}
			atBOL = false
		}
		transformed = append(transformed, b)
		srcCount++
		cum = append(cum, srcCount)
		isPrefix = append(isPrefix, false)
		if b == '\n' {
			atBOL = true
		}
	}

	nw, err := iw.w.Write(transformed)
	if nw <= 0 {
		return 0, err
	}
	if nw > len(transformed) {
		nw = len(transformed)
	}

	sourceN := cum[nw-1]
	if nw == len(transformed) {
		iw.atBOL = atBOL
		return sourceN, err
	}

	// Partial write: figure out what state the next call should resume in.
	// last+1 is always in range here since nw < len(transformed).
	last := nw - 1
	switch {
	case transformed[last] == '\n':
		iw.atBOL = true
	case isPrefix[last] && isPrefix[last+1]:
		// Still mid-prefix; redo the whole prefix next time.
		iw.atBOL = true
	case isPrefix[last]:
		// Prefix fully flushed; resume with content next time.
		iw.atBOL = false
	default:
		iw.atBOL = false
	}
	return sourceN, err
}
