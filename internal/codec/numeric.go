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
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDecimal renders d as its canonical FIX textual form: no spurious
// trailing zeros, no exponent notation.
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatInt renders n as an unsigned decimal FIX integer field.
func FormatInt(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// ParseDecimal parses a FIX float field into a decimal.Decimal.
func ParseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// ParseUint parses a FIX unsigned integer field.
func ParseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
