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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/nodeapi/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testArrayStruct struct {
	cbor.StructAsArray
	Type  uint
	Id    uint64
	Names []string
}

type testCustomMarshal struct {
	cbor.StructAsArray
	Type uint
	Id   uint64
}

func (t *testCustomMarshal) MarshalCBOR() ([]byte, error) {
	t.Type = 7
	return cbor.EncodeGeneric(t)
}

func TestEncodeStructAsArray(t *testing.T) {
	data, err := cbor.Encode(&testArrayStruct{Type: 1, Id: 2, Names: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "8301028161", hex.EncodeToString(data)[:10])
	var out testArrayStruct
	_, err = cbor.Decode(data, &out)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), out.Id)
	assert.Equal(t, []string{"a"}, out.Names)
}

func TestEncodeGenericBypassesMarshaler(t *testing.T) {
	src := &testCustomMarshal{Id: 42}
	data, err := cbor.Encode(src)
	require.NoError(t, err)
	assert.Equal(t, "8207182a", hex.EncodeToString(data))
}

func TestEncodeGenericRejectsNonStruct(t *testing.T) {
	val := 5
	_, err := cbor.EncodeGeneric(&val)
	assert.Error(t, err)
}

func TestDecodeIdFromList(t *testing.T) {
	testDefs := []struct {
		cborHex     string
		expectedId  int
		expectError bool
	}{
		// [3, 1]
		{cborHex: "820301", expectedId: 3},
		// [500, 1]
		{cborHex: "821901f401", expectedId: 500},
		// []
		{cborHex: "80", expectError: true},
		// "a" is not a list
		{cborHex: "6161", expectError: true},
		// ["a"]
		{cborHex: "816161", expectError: true},
	}
	for _, testDef := range testDefs {
		data, err := hex.DecodeString(testDef.cborHex)
		require.NoError(t, err)
		id, err := cbor.DecodeIdFromList(data)
		if testDef.expectError {
			assert.Error(t, err, "input %s", testDef.cborHex)
			continue
		}
		require.NoError(t, err, "input %s", testDef.cborHex)
		assert.Equal(t, testDef.expectedId, id)
	}
}

func TestDecodeById(t *testing.T) {
	data, err := cbor.Encode(&testArrayStruct{Type: 1, Id: 9})
	require.NoError(t, err)
	ret, err := cbor.DecodeById(data, map[int]any{1: &testArrayStruct{}})
	require.NoError(t, err)
	decoded, ok := ret.(*testArrayStruct)
	require.True(t, ok)
	assert.Equal(t, uint64(9), decoded.Id)
	_, err = cbor.DecodeById(data, map[int]any{2: &testArrayStruct{}})
	assert.Error(t, err)
}

func TestDecodeStoreCbor(t *testing.T) {
	var d cbor.DecodeStoreCbor
	src := []byte{0x80}
	d.SetCbor(src)
	src[0] = 0x00
	assert.Equal(t, []byte{0x80}, d.Cbor())
}
