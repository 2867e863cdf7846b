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

// Package message provides typed construction and parsing for every FIX
// message kind the client speaks: each kind gets a Build<Kind> pure
// constructor and a Parse<Kind> extractor over a decoded codec.Frame.
package message

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// TimeFormat is the wire format for timestamp fields, UTC millisecond
// precision.
const TimeFormat = "20060102-15:04:05.000"

// Message is anything a session can hand to the encoder: a MsgType plus an
// ordered body field list (header fields other than MsgType are stamped by
// the session engine at send time).
type Message interface {
	MsgType() string
	Fields() []codec.Field
}

// built is the concrete Message every Build<Kind> constructor returns.
type built struct {
	msgType string
	fields  []codec.Field
}

func (b built) MsgType() string        { return b.msgType }
func (b built) Fields() []codec.Field  { return b.fields }

// fieldBuilder accumulates body fields in call order.
type fieldBuilder struct {
	fields []codec.Field
}

func newFieldBuilder() *fieldBuilder {
	return &fieldBuilder{fields: make([]codec.Field, 0, 16)}
}

func (b *fieldBuilder) str(tag fixtag.Tag, v string) {
	b.fields = append(b.fields, codec.Field{Tag: tag, Value: []byte(v)})
}

func (b *fieldBuilder) strIfNotEmpty(tag fixtag.Tag, v string) {
	if v != "" {
		b.str(tag, v)
	}
}

func (b *fieldBuilder) dec(tag fixtag.Tag, v decimal.Decimal) {
	b.str(tag, codec.FormatDecimal(v))
}

func (b *fieldBuilder) decPtr(tag fixtag.Tag, v *decimal.Decimal) {
	if v != nil {
		b.dec(tag, *v)
	}
}

func (b *fieldBuilder) uint(tag fixtag.Tag, v uint64) {
	b.str(tag, codec.FormatInt(v))
}

func (b *fieldBuilder) uintIfNotZero(tag fixtag.Tag, v uint64) {
	if v != 0 {
		b.uint(tag, v)
	}
}

func (b *fieldBuilder) time(tag fixtag.Tag, t time.Time) {
	b.str(tag, t.UTC().Format(TimeFormat))
}

func (b *fieldBuilder) timeIfSet(tag fixtag.Tag, t time.Time) {
	if !t.IsZero() {
		b.time(tag, t)
	}
}

func (b *fieldBuilder) raw(fields ...codec.Field) {
	b.fields = append(b.fields, fields...)
}

func (b *fieldBuilder) build(msgType string) built {
	return built{msgType: msgType, fields: b.fields}
}

// fieldReader extracts typed values from a parsed frame, collecting every
// tag it consumes so the caller can compute UnparsedFields afterward.
type fieldReader struct {
	frame   codec.Frame
	touched map[fixtag.Tag]bool
}

func newFieldReader(f codec.Frame) *fieldReader {
	return &fieldReader{frame: f, touched: make(map[fixtag.Tag]bool, len(f.Fields))}
}

func (r *fieldReader) mark(tag fixtag.Tag) { r.touched[tag] = true }

func (r *fieldReader) str(tag fixtag.Tag) (string, bool) {
	v, ok := r.frame.Get(tag)
	if ok {
		r.mark(tag)
		return string(v), true
	}
	return "", false
}

func (r *fieldReader) require(tag fixtag.Tag) (string, error) {
	v, ok := r.str(tag)
	if !ok {
		return "", &fixerr.ProtocolError{Kind: fixerr.ProtoMissingRequiredField, Tag: uint32(tag)}
	}
	return v, nil
}

func (r *fieldReader) dec(tag fixtag.Tag) (decimal.Decimal, error) {
	v, ok := r.str(tag)
	if !ok {
		return decimal.Zero, nil
	}
	return codec.ParseDecimal(v)
}

func (r *fieldReader) requireDec(tag fixtag.Tag) (decimal.Decimal, error) {
	v, err := r.require(tag)
	if err != nil {
		return decimal.Zero, err
	}
	return codec.ParseDecimal(v)
}

func (r *fieldReader) uint(tag fixtag.Tag) (uint64, error) {
	v, ok := r.str(tag)
	if !ok {
		return 0, nil
	}
	return codec.ParseUint(v)
}

func (r *fieldReader) requireUint(tag fixtag.Tag) (uint64, error) {
	v, err := r.require(tag)
	if err != nil {
		return 0, err
	}
	return codec.ParseUint(v)
}

func (r *fieldReader) time(tag fixtag.Tag) (time.Time, error) {
	v, ok := r.str(tag)
	if !ok {
		return time.Time{}, nil
	}
	return time.Parse(TimeFormat, v)
}

// unparsed returns every field whose tag was never read via str/require/
// dec/uint/time, in original frame order. Unknown tags are preserved,
// never dropped.
func (r *fieldReader) unparsed() []codec.Field {
	var out []codec.Field
	for _, fld := range r.frame.Fields {
		if !r.touched[fld.Tag] {
			out = append(out, fld)
		}
	}
	return out
}

// GroupEncoding selects how repeating groups render on the wire: the
// standard count-plus-delimiter form, or the venue's legacy flattened
// per-instance tag offsets.
type GroupEncoding int

const (
	GroupEncodingStandard GroupEncoding = iota
	GroupEncodingLegacyOffset
)

// EncoderConfig picks the repeating-group strategy once, at construction
// time, so call sites never branch on it.
type EncoderConfig struct {
	Groups GroupEncoding
}

// Encoder renders the group-bearing message kinds (MassQuote,
// QuoteCancel, RFQRequest) according to its
// configured GroupEncoding. Kinds with no legacy alternative (market data,
// security list, positions) always use the standard form and do not need
// an Encoder.
type Encoder struct {
	cfg EncoderConfig
}

// NewEncoder returns an Encoder fixed to cfg.Groups for its lifetime.
func NewEncoder(cfg EncoderConfig) *Encoder {
	return &Encoder{cfg: cfg}
}
