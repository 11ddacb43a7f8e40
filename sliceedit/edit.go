// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit extends the functionalities of rsc.io/edit to
// queue many edits over a text and apply them with a single allocation.
// All positions are byte offsets in the original text, and edits must
// not overlap.
package sliceedit

import (
	"bytes"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  *edit.Buffer
	buf []byte

	// end of the last queued edit, to skip overlapping hits
	last int
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{
		ed:  edit.NewBuffer(buf),
		buf: buf,
	}
}

// NewBufferString is NewBuffer for a string.
func NewBufferString(s string) *Buffer {
	return NewBuffer([]byte(s))
}

// FindAll finds all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	realOffset := 0

	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+realOffset)
		buf = buf[i+len(item):]
		realOffset = realOffset + i + len(item)
	}
}

// Insert inserts s at position pos of the original data.
func (b *Buffer) Insert(pos int, s string) {
	b.ed.Insert(pos, s)
	if pos > b.last {
		b.last = pos
	}
}

// Delete deletes the original data between start and end.
func (b *Buffer) Delete(start, end int) {
	b.ed.Delete(start, end)
	b.last = end
}

// DeleteAllString deletes all the instances of s.
func (b *Buffer) DeleteAllString(s string) {
	for _, hit := range FindAll(b.buf, s) {
		if hit < b.last {
			continue
		}
		b.Delete(hit, hit+len(s))
	}
}

// ReplaceAllString replaces all the instances of old with new.
func (b *Buffer) ReplaceAllString(old string, new string) {
	for _, hit := range FindAll(b.buf, old) {
		if hit < b.last {
			continue
		}
		b.ed.Replace(hit, hit+len(old), new)
		b.last = hit + len(old)
	}
}

// DeleteAllWithTrailing deletes all the instances of s, together with the run
// of bytes following each instance for which trailing returns true.
func (b *Buffer) DeleteAllWithTrailing(s string, trailing func(c byte) bool) {
	for _, hit := range FindAll(b.buf, s) {
		if hit < b.last {
			continue
		}
		end := hit + len(s)
		for end < len(b.buf) && trailing(b.buf[end]) {
			end++
		}
		b.Delete(hit, end)
	}
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return b.ed.String()
}
