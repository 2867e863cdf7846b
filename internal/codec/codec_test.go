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
	"fmt"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

func sampleFrame() Frame {
	return Frame{
		MsgType: "D",
		Fields: []Field{
			{Tag: fixtag.TagSenderCompID, Value: []byte("CLIENT")},
			{Tag: fixtag.TagTargetCompID, Value: []byte("DERIBITSERVER")},
			{Tag: fixtag.TagMsgSeqNum, Value: []byte("1")},
			{Tag: fixtag.TagSendingTime, Value: []byte("20231114-22:13:20.000")},
			{Tag: fixtag.TagClOrdID, Value: []byte("abc-1")},
			{Tag: fixtag.TagSymbol, Value: []byte("BTC-PERPETUAL")},
			{Tag: fixtag.TagSide, Value: []byte("1")},
			{Tag: fixtag.TagOrderQty, Value: []byte("10")},
			{Tag: fixtag.TagOrdType, Value: []byte("2")},
			{Tag: fixtag.TagPrice, Value: []byte("50000.5")},
		},
	}
}

func assertFrameEqual(t *testing.T, got, want Frame) {
	t.Helper()
	if got.MsgType != want.MsgType {
		t.Fatalf("MsgType = %q, want %q", got.MsgType, want.MsgType)
	}
	if len(got.Fields) != len(want.Fields) {
		t.Fatalf("field count = %d, want %d (%+v vs %+v)", len(got.Fields), len(want.Fields), got.Fields, want.Fields)
	}
	for i := range want.Fields {
		if got.Fields[i].Tag != want.Fields[i].Tag {
			t.Fatalf("field[%d].Tag = %d, want %d", i, got.Fields[i].Tag, want.Fields[i].Tag)
		}
		if !bytes.Equal(got.Fields[i].Value, want.Fields[i].Value) {
			t.Fatalf("field[%d].Value = %q, want %q", i, got.Fields[i].Value, want.Fields[i].Value)
		}
	}
}

// TestRoundTrip: encode(decode(encode(f))) reproduces
// the same bytes, and decode never fabricates fields.
func TestRoundTrip(t *testing.T) {
	f := sampleFrame()
	wire := Encode(f)

	decoded, consumed, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if consumed != len(wire) {
		t.Fatalf("consumed = %d, want %d", consumed, len(wire))
	}
	assertFrameEqual(t, decoded, f)

	again := Encode(decoded)
	if !bytes.Equal(wire, again) {
		t.Fatalf("re-encode mismatch:\n got %q\nwant %q", again, wire)
	}
}

// TestBodyLengthAndChecksum checks both trailer disciplines against hand-computed values.
func TestBodyLengthAndChecksum(t *testing.T) {
	wire := Encode(sampleFrame())

	// Locate "9=" field directly; BeginString precedes it.
	nineIdx := bytes.Index(wire, []byte("\x019="))
	if nineIdx == -1 {
		t.Fatalf("BodyLength field not found in %q", wire)
	}
	valStart := nineIdx + len("\x019=")
	soh := bytes.IndexByte(wire[valStart:], SOH)
	if soh == -1 {
		t.Fatalf("BodyLength unterminated")
	}
	bodyLenField := string(wire[valStart : valStart+soh])

	bodyStart := valStart + soh + 1
	trailerIdx := bytes.LastIndex(wire, []byte("\x0110="))
	if trailerIdx == -1 {
		t.Fatalf("CheckSum field not found")
	}
	gotBodyLen := trailerIdx + 1 - bodyStart
	if bodyLenField != strconv.Itoa(gotBodyLen) {
		t.Fatalf("BodyLength = %s, want %d", bodyLenField, gotBodyLen)
	}

	wantSum := int(checksum(wire[:trailerIdx+1]))
	gotSumStr := string(wire[trailerIdx+4 : trailerIdx+7])
	if gotSumStr != formatChecksum(byte(wantSum)) {
		t.Fatalf("CheckSum = %s, want %s", gotSumStr, formatChecksum(byte(wantSum)))
	}
}

func TestDecode_ShortBufferNeedsMore(t *testing.T) {
	wire := Encode(sampleFrame())
	for cut := 0; cut < len(wire); cut += 7 {
		_, _, err := Decode(wire[:cut])
		if !errors.Is(err, ErrNeedMore) {
			t.Fatalf("cut=%d: err = %v, want ErrNeedMore", cut, err)
		}
	}
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	wire := Encode(sampleFrame())
	corrupt := append([]byte(nil), wire...)
	// Flip a byte inside the body, well before the trailer.
	idx := bytes.Index(corrupt, []byte("BTC-PERPETUAL"))
	corrupt[idx] ^= 0xFF

	_, _, err := Decode(corrupt)
	var ce *fixerr.CodecError
	if !errors.As(err, &ce) || ce.Kind != fixerr.CodecChecksumMismatch {
		t.Fatalf("err = %v, want CodecError{Kind: CodecChecksumMismatch}", err)
	}
}

func TestDecode_InvalidHeader(t *testing.T) {
	_, _, err := Decode([]byte("not a fix frame at all"))
	var ce *fixerr.CodecError
	if !errors.As(err, &ce) || ce.Kind != fixerr.CodecInvalidHeader {
		t.Fatalf("err = %v, want CodecError{Kind: CodecInvalidHeader}", err)
	}
}

func TestDecode_DuplicateHeaderTag(t *testing.T) {
	// Encode stamps each header tag once, so the duplicate is written by hand.
	body := []byte("35=D\x0149=CLIENT\x0156=DERIBITSERVER\x0134=1\x0149=DUP\x01")
	wire := append([]byte("8=FIX.4.4\x019="+strconv.Itoa(len(body))+"\x01"), body...)
	wire = append(wire, "10="+formatChecksum(checksum(wire))+"\x01"...)

	_, _, err := Decode(wire)
	var ce *fixerr.CodecError
	if !errors.As(err, &ce) || ce.Kind != fixerr.CodecDuplicateHeaderTag {
		t.Fatalf("err = %v, want CodecError{Kind: CodecDuplicateHeaderTag}", err)
	}
}

// TestStreamDecoder_PartialReads feeds the encoded frame to the decoder a
// few bytes at a time through a net.Pipe-like reader, verifying it
// coalesces partial reads into one Frame.
type chunkedReader struct {
	data  []byte
	sizes []int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, errChunkedEOF
	}
	n := r.sizes[0]
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	if len(r.sizes) > 1 {
		r.sizes = r.sizes[1:]
	}
	return n, nil
}

var errChunkedEOF = errEOF{}

type errEOF struct{}

func (errEOF) Error() string { return "EOF" }

func TestStreamDecoder_PartialReads(t *testing.T) {
	wire := Encode(sampleFrame())
	r := &chunkedReader{data: append([]byte(nil), wire...), sizes: []int{3, 5, 1, 1000}}
	dec := NewStreamDecoder(r)

	frame, err := dec.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	assertFrameEqual(t, frame, sampleFrame())
}

// TestFormatDecimal_NoTrailingZeros exercises a spread of random decimal
// inputs and checks the rendered form never carries a spurious trailing
// zero or a bare trailing dot.
func TestFormatDecimal_NoTrailingZeros(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		whole := rng.Int64N(1_000_000)
		frac := rng.Int64N(100000)
		s := strconv.FormatInt(whole, 10) + "." + fmt.Sprintf("%05d", frac)
		d, err := ParseDecimal(s)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", s, err)
		}
		out := FormatDecimal(d)
		if len(out) > 0 && out[len(out)-1] == '.' {
			t.Fatalf("FormatDecimal(%q) = %q: trailing dot", s, out)
		}
		if bytes.HasSuffix([]byte(out), []byte(".0")) {
			t.Fatalf("FormatDecimal(%q) = %q: trailing zero", s, out)
		}
	}
}
