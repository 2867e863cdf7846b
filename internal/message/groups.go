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

package message

import (
	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// groupEntry is one repeating-group instance's fields, in the order the
// legacy offset table below assigns them: entry[i] maps to field_offset i.
type groupEntry []codec.Field

// groupSpec describes one repeating group: its standard count tag, and,
// when the venue also accepts a legacy flattened form, the base tag and
// per-entry stride used to compute `base + i*stride + field_offset`.
type groupSpec struct {
	countTag    fixtag.Tag
	legacyBase  fixtag.Tag // 0 when this group has no legacy form
	legacyStride fixtag.Tag
}

// encodeGroup renders entries as either the standard form (count tag
// followed by each entry's fields verbatim) or, when enc selects it and
// the group has a legacy base assigned, the flattened offset
// form. Legacy-incapable groups (no legacyBase) always use the standard
// form regardless of enc.
func encodeGroup(enc *Encoder, spec groupSpec, entries []groupEntry) []codec.Field {
	useLegacy := enc != nil && enc.cfg.Groups == GroupEncodingLegacyOffset && spec.legacyBase != 0
	out := make([]codec.Field, 0, 1+len(entries)*4)
	out = append(out, codec.Field{Tag: spec.countTag, Value: []byte(codec.FormatInt(uint64(len(entries))))})

	if !useLegacy {
		for _, e := range entries {
			out = append(out, e...)
		}
		return out
	}

	for i, e := range entries {
		for offset, fld := range e {
			legacyTag := spec.legacyBase + fixtag.Tag(i)*spec.legacyStride + fixtag.Tag(offset)
			out = append(out, codec.Field{Tag: legacyTag, Value: fld.Value})
		}
	}
	return out
}

// decodeGroup recovers entries from a frame, accepting either encoding
// form regardless of which one the local Encoder is configured for —
// the venue may use either. standardTags lists, in order, the
// tags each standard-form entry starts with and contains (used to slice
// the flat standard-form field list into entries of len(standardTags)
// fields each); the same slice length doubles as the legacy stride.
func decodeGroup(f codec.Frame, spec groupSpec, standardTags []fixtag.Tag) []groupEntry {
	// Legacy tags are unique per instance, so a repeated delimiter means the
	// frame uses the standard form even where the two tag ranges overlap.
	if spec.legacyBase != 0 && len(f.GetAll(standardTags[0])) <= 1 {
		if legacy := decodeLegacyGroup(f, spec, len(standardTags)); legacy != nil {
			// Map each flattened wire tag back to its standard tag so callers
			// read both forms alike.
			for _, e := range legacy {
				for offset := range e {
					e[offset].Tag = standardTags[offset]
				}
			}
			return legacy
		}
	}
	return decodeStandardGroup(f, standardTags)
}

func decodeStandardGroup(f codec.Frame, standardTags []fixtag.Tag) []groupEntry {
	if len(standardTags) == 0 {
		return nil
	}
	delimiter := standardTags[0]
	delimFields := f.GetAll(delimiter)
	if len(delimFields) == 0 {
		return nil
	}

	entries := make([]groupEntry, 0, len(delimFields))
	// Standard groups interleave one value per tag per entry, in entry
	// order: the i-th occurrence of each tag in standardTags belongs to
	// entry i.
	perTag := make(map[fixtag.Tag][]codec.Field, len(standardTags))
	for _, tag := range standardTags {
		perTag[tag] = f.GetAll(tag)
	}
	for i := range delimFields {
		entry := make(groupEntry, 0, len(standardTags))
		for _, tag := range standardTags {
			vals := perTag[tag]
			if i < len(vals) {
				entry = append(entry, vals[i])
			} else {
				entry = append(entry, codec.Field{Tag: tag, Value: nil})
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func decodeLegacyGroup(f codec.Frame, spec groupSpec, stride int) []groupEntry {
	var first codec.Field
	found := false
	for _, fld := range f.Fields {
		if fld.Tag >= spec.legacyBase && fld.Tag < spec.legacyBase+fixtag.Tag(stride) {
			first = fld
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	_ = first

	var entries []groupEntry
	for i := 0; ; i++ {
		base := spec.legacyBase + fixtag.Tag(i)*spec.legacyStride
		entry := make(groupEntry, 0, stride)
		any := false
		for offset := 0; offset < stride; offset++ {
			tag := base + fixtag.Tag(offset)
			v, ok := f.Get(tag)
			if ok {
				any = true
			}
			entry = append(entry, codec.Field{Tag: tag, Value: v})
		}
		if !any {
			break
		}
		entries = append(entries, entry)
	}
	return entries
}
