/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package codec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// ErrNeedMore signals that buf does not yet contain a full frame; the
// caller should read more bytes and retry rather than treat this as a
// parse failure.
var ErrNeedMore = errors.New("codec: need more data")

var beginStringPrefix = []byte("8=" + BeginString + "\x01")

// Decode scans buf for exactly one FIX frame starting at offset 0. It
// returns the parsed Frame, the number of bytes consumed, and an error.
// A short buffer yields (Frame{}, 0, ErrNeedMore); a structurally invalid
// frame yields a *fixerr.CodecError.
//
// HOT PATH: single-pass SOH scanning, no per-field allocation beyond the
// value copies.
func Decode(buf []byte) (Frame, int, error) {
	if len(buf) < len(beginStringPrefix) {
		return Frame{}, 0, ErrNeedMore
	}
	if !bytes.HasPrefix(buf, beginStringPrefix) {
		return Frame{}, 0, &fixerr.CodecError{Kind: fixerr.CodecInvalidHeader}
	}

	bodyLenStart := len(beginStringPrefix)
	bodyLenPrefix := []byte("9=")
	if !bytes.HasPrefix(buf[bodyLenStart:], bodyLenPrefix) {
		return Frame{}, 0, &fixerr.CodecError{Kind: fixerr.CodecInvalidHeader}
	}
	valueStart := bodyLenStart + len(bodyLenPrefix)
	sohIdx := bytes.IndexByte(buf[valueStart:], SOH)
	if sohIdx == -1 {
		return Frame{}, 0, ErrNeedMore
	}
	bodyLen, err := strconv.Atoi(string(buf[valueStart : valueStart+sohIdx]))
	if err != nil || bodyLen < 0 {
		return Frame{}, 0, &fixerr.CodecError{Kind: fixerr.CodecInvalidLength, Err: err}
	}

	bodyStart := valueStart + sohIdx + 1
	bodyEnd := bodyStart + bodyLen
	trailerEnd := bodyEnd + 7 // "10=NNN" + SOH
	if len(buf) < trailerEnd {
		return Frame{}, 0, ErrNeedMore
	}

	trailer := buf[bodyEnd:trailerEnd]
	if !bytes.HasPrefix(trailer, []byte("10=")) || trailer[len(trailer)-1] != SOH {
		return Frame{}, 0, &fixerr.CodecError{Kind: fixerr.CodecUnterminatedFrame}
	}
	wantSum, err := strconv.Atoi(string(trailer[3:6]))
	if err != nil {
		return Frame{}, 0, &fixerr.CodecError{Kind: fixerr.CodecInvalidHeader, Err: err}
	}
	gotSum := int(checksum(buf[:bodyEnd]))
	if gotSum != wantSum {
		return Frame{}, 0, &fixerr.CodecError{Kind: fixerr.CodecChecksumMismatch}
	}

	fields, msgType, err := parseFields(buf[bodyStart:bodyEnd])
	if err != nil {
		return Frame{}, 0, err
	}
	if msgType == "" {
		return Frame{}, 0, &fixerr.CodecError{Kind: fixerr.CodecInvalidHeader, Err: errors.New("missing MsgType")}
	}

	return Frame{MsgType: msgType, Fields: fields}, trailerEnd, nil
}

func isHeaderField(t fixtag.Tag) bool {
	switch t {
	case fixtag.TagSenderCompID, fixtag.TagTargetCompID, fixtag.TagMsgSeqNum, fixtag.TagSendingTime, fixtag.TagMsgType:
		return true
	default:
		return false
	}
}

// parseFields walks body (the bytes strictly between BodyLength's SOH and
// the CheckSum field) and returns every field, plus the MsgType value if
// present. Duplicate header-scope tags are rejected; duplicates elsewhere
// (repeating-group bodies) are preserved in order.
func parseFields(body []byte) ([]Field, string, error) {
	fields := make([]Field, 0, 16)
	seenHeader := make(map[fixtag.Tag]bool, 8)
	msgType := ""

	pos := 0
	n := len(body)
	for pos < n {
		eq := bytes.IndexByte(body[pos:], '=')
		if eq == -1 {
			return nil, "", &fixerr.CodecError{Kind: fixerr.CodecFieldFormat, Err: errors.New("missing '='")}
		}
		eq += pos
		tagNum, err := strconv.ParseUint(string(body[pos:eq]), 10, 32)
		if err != nil {
			return nil, "", &fixerr.CodecError{Kind: fixerr.CodecFieldFormat, Err: err}
		}
		tag := fixtag.Tag(tagNum)

		valueStart := eq + 1
		soh := bytes.IndexByte(body[valueStart:], SOH)
		if soh == -1 {
			return nil, "", &fixerr.CodecError{Kind: fixerr.CodecUnterminatedFrame, Tag: uint32(tag)}
		}
		value := body[valueStart : valueStart+soh]

		if isHeaderField(tag) {
			if seenHeader[tag] {
				return nil, "", &fixerr.CodecError{Kind: fixerr.CodecDuplicateHeaderTag, Tag: uint32(tag)}
			}
			seenHeader[tag] = true
		}
		if tag == fixtag.TagMsgType {
			msgType = string(value)
		} else {
			fields = append(fields, Field{Tag: tag, Value: append([]byte(nil), value...)})
		}

		pos = valueStart + soh + 1
	}
	return fields, msgType, nil
}

// StreamDecoder coalesces partial reads from an io.Reader into complete
// Frames, growing its internal buffer as needed.
type StreamDecoder struct {
	r   io.Reader
	buf []byte
}

// NewStreamDecoder wraps r. The returned decoder owns its buffer; r should
// not be read from concurrently.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	return &StreamDecoder{r: r, buf: make([]byte, 0, 4096)}
}

// Next blocks until one full Frame is available, ctx is cancelled, or r
// returns an error.
func (d *StreamDecoder) Next(ctx context.Context) (Frame, error) {
	chunk := make([]byte, 4096)
	for {
		if frame, consumed, err := Decode(d.buf); err != ErrNeedMore {
			if err == nil {
				d.buf = append(d.buf[:0], d.buf[consumed:]...)
			}
			return frame, err
		}

		if err := ctx.Err(); err != nil {
			return Frame{}, err
		}

		k, err := d.r.Read(chunk)
		if k > 0 {
			d.buf = append(d.buf, chunk[:k]...)
		}
		if err != nil {
			if k > 0 {
				continue
			}
			return Frame{}, err
		}
	}
}
