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
	"strconv"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// headerTag reports whether t is one of the fixed-order header fields that
// Encode places itself rather than copying verbatim from Frame.Fields.
func headerTag(t fixtag.Tag) bool {
	switch t {
	case fixtag.TagSenderCompID, fixtag.TagTargetCompID, fixtag.TagMsgSeqNum, fixtag.TagSendingTime:
		return true
	default:
		return false
	}
}

// Encode renders f to the wire: header in canonical order, body pairs in
// the order the builder produced them, then BodyLength/CheckSum computed
// over the assembled bytes.
//
// HOT PATH: runs on every outbound frame. Pre-sizes its buffer once and
// appends directly; no intermediate string concatenation.
func Encode(f Frame) []byte {
	body := make([]byte, 0, 256)
	body = appendField(body, fixtag.TagMsgType, []byte(f.MsgType))

	for _, tag := range [...]fixtag.Tag{fixtag.TagSenderCompID, fixtag.TagTargetCompID, fixtag.TagMsgSeqNum, fixtag.TagSendingTime} {
		if v, ok := f.Get(tag); ok {
			body = appendField(body, tag, v)
		}
	}

	for _, fld := range f.Fields {
		if headerTag(fld.Tag) {
			continue
		}
		body = appendField(body, fld.Tag, fld.Value)
	}

	out := make([]byte, 0, len(body)+64)
	out = appendField(out, fixtag.TagBeginString, []byte(BeginString))
	out = appendField(out, fixtag.TagBodyLength, []byte(strconv.Itoa(len(body))))
	out = append(out, body...)

	sum := checksum(out)
	out = appendField(out, fixtag.TagCheckSum, []byte(formatChecksum(sum)))
	return out
}

func appendField(buf []byte, tag fixtag.Tag, value []byte) []byte {
	buf = strconv.AppendUint(buf, uint64(tag), 10)
	buf = append(buf, '=')
	buf = append(buf, value...)
	buf = append(buf, SOH)
	return buf
}

// checksum sums every byte of buf modulo 256.
func checksum(buf []byte) byte {
	var sum byte
	for _, b := range buf {
		sum += b
	}
	return sum
}

func formatChecksum(sum byte) string {
	s := strconv.Itoa(int(sum))
	switch len(s) {
	case 1:
		return "00" + s
	case 2:
		return "0" + s
	default:
		return s
	}
}
