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

// Package codec implements the FIX 4.4 wire format: SOH-delimited tag=value
// frames, BodyLength/CheckSum discipline, and stream boundary scanning.
package codec

import "github.com/joaquinbejar/deribit-fix-go/internal/fixtag"

// SOH is the FIX field delimiter, 0x01.
const SOH = 0x01

// BeginString is this client's only supported FIX version.
const BeginString = "FIX.4.4"

// Field is one tag=value pair. Value is the raw wire bytes, not yet
// interpreted as any particular Go type.
type Field struct {
	Tag   fixtag.Tag
	Value []byte
}

// Frame is a fully-formed FIX message: the header fields are implicit
// (MsgType plus whatever the caller supplies explicitly in Fields), the
// body is the ordered field list a builder produced, duplicates allowed.
type Frame struct {
	MsgType string
	Fields  []Field
}

// Get returns the first field with the given tag, in insertion order.
func (f Frame) Get(tag fixtag.Tag) ([]byte, bool) {
	for _, fld := range f.Fields {
		if fld.Tag == tag {
			return fld.Value, true
		}
	}
	return nil, false
}

// GetAll returns every field with the given tag, in insertion order. Used
// by legacy-offset group parsing and by any tag repeated in a standard
// group body.
func (f Frame) GetAll(tag fixtag.Tag) []Field {
	var out []Field
	for _, fld := range f.Fields {
		if fld.Tag == tag {
			out = append(out, fld)
		}
	}
	return out
}
