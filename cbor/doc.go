// Copyright 2026 Blink Labs Software
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

// Package cbor provides the deterministic CBOR encoding used for transaction
// attachments.
//
// It wraps github.com/fxamacker/cbor/v2 with the options every attachment
// needs: core deterministic map ordering on encode and strict unknown-field
// handling on decode.
//
// Embed StructAsArray in a struct to encode its fields as a CBOR array:
//
//	type GoodsDelisting struct {
//	    cbor.StructAsArray
//	    Type    uint
//	    GoodsId uint64
//	}
//
// The first element of each attachment array is its type ID, which
// DecodeIdFromList extracts without decoding the rest of the value.
package cbor
