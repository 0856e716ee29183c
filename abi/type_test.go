/*
 * Copyright 2023 ICON Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package abi

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseType(t *testing.T) {
	cases := []struct {
		in        string
		expected  Type
		canonical string
		dynamic   bool
		headSize  int
	}{
		{"uint24", UintType(24), "uint24", false, 32},
		{"uint", UintType(256), "uint256", false, 32},
		{"int", IntType(256), "int256", false, 32},
		{"byte", FixedBytesType(1), "bytes1", false, 32},
		{"bytes32", FixedBytesType(32), "bytes32", false, 32},
		{"bytes", BytesType(), "bytes", true, 32},
		{"string", StringType(), "string", true, 32},
		{"address[]", ArrayType(AddressType()), "address[]", true, 32},
		{"uint8[3]", FixedArrayType(UintType(8), 3), "uint8[3]", false, 96},
		{"string[2]", FixedArrayType(StringType(), 2), "string[2]", true, 32},
		{"address[2][]", ArrayType(FixedArrayType(AddressType(), 2)), "address[2][]", true, 32},
		{
			"(address,address,bytes32)",
			TupleType(AddressType(), AddressType(), FixedBytesType(32)),
			"(address,address,bytes32)", false, 96,
		},
		{
			"tuple(uint8,string)[]",
			ArrayType(TupleType(UintType(8), StringType())),
			"(uint8,string)[]", true, 32,
		},
		{
			"(address,(uint8,bool)[2])",
			TupleType(AddressType(), FixedArrayType(TupleType(UintType(8), BoolType()), 2)),
			"(address,(uint8,bool)[2])", false, 160,
		},
		{"(uint8,string)", TupleType(UintType(8), StringType()), "(uint8,string)", true, 32},
	}
	for _, c := range cases {
		actual, err := ParseType(c.in)
		if !assert.NoError(t, err, c.in) {
			continue
		}
		assert.True(t, c.expected.Equal(actual), "in:%s actual:%s", c.in, actual)
		assert.Equal(t, c.canonical, actual.String())
		assert.Equal(t, c.dynamic, actual.IsDynamic(), c.in)
		assert.Equal(t, c.headSize, actual.HeadSize(), c.in)
	}
}

func Test_ParseTypeInvalid(t *testing.T) {
	for _, in := range []string{
		"", "uint7", "uint264", "int0", "bytes0", "bytes33", "foo",
		"uint8[", "uint8[0]", "(address", "(address,)", "()", "address]",
	} {
		_, err := ParseType(in)
		assert.True(t, ErrorCodeInvalidType.Equals(err), "in:%q err:%+v", in, err)
	}
}

func Test_ParseTypes(t *testing.T) {
	types, err := ParseTypes("(address[],uint24[])")
	assert.NoError(t, err)
	assert.Equal(t, "(address[],uint24[])", TypesString(types))

	types, err = ParseTypes("address, (uint8,bool)")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(types))
	assert.Equal(t, "(address,(uint8,bool))", TypesString(types))

	types, err = ParseTypes("(address,uint8)[]")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(types))

	types, err = ParseTypes("()")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(types))
}

func Test_TypeValidate(t *testing.T) {
	for _, typ := range []Type{
		UintType(7), IntType(264), FixedBytesType(0), FixedBytesType(33),
		{Kind: KindArray}, FixedArrayType(BoolType(), 0), TupleType(), {Kind: KindUnknown},
		ArrayType(UintType(9)),
	} {
		assert.True(t, ErrorCodeInvalidType.Equals(typ.Validate()), "type:%+v", typ)
	}
}

func Test_SelectorAndTopic(t *testing.T) {
	cases := []struct {
		signature string
		expected  string
	}{
		{"transfer(address,uint256)", "a9059cbb"},
		{"balanceOf(address)", "70a08231"},
		{"factory()", "c45a0155"},
	}
	for _, c := range cases {
		s := Selector(c.signature)
		assert.Equal(t, c.expected, hex.EncodeToString(s[:]), c.signature)
	}
	topic := Topic("Transfer(address,address,uint256)")
	assert.Equal(t, "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		hex.EncodeToString(topic[:]))
	assert.Equal(t, "transfer(address,uint256)",
		Signature("transfer", []Type{AddressType(), UintType(256)}))
}

func Test_TypeOf(t *testing.T) {
	tok := Tuple{
		Address{},
		NewUint64(24, 3000),
		Array{String("a")},
		FixedArray{FixedBytes(make([]byte, 4)), FixedBytes(make([]byte, 4))},
	}
	tt, err := TypeOf(tok)
	assert.NoError(t, err)
	assert.Equal(t, "(address,uint24,string[],bytes4[2])", tt.String())
	assert.NoError(t, Conforms(tt, tok))

	_, err = TypeOf(Array{})
	assert.True(t, ErrorCodeInvalidType.Equals(err))
}
