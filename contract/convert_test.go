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

package contract

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/icon-project/abi-sdk/abi"
)

type poolKey struct {
	Token0 common.Address
	Token1 common.Address
	Salt   [32]byte
}

type swapParams struct {
	Amount     *big.Int
	ZeroForOne bool
	Limit      uint64
	Deadline   big.Int
}

type swapArgs struct {
	Recipient common.Address
	Key       poolKey
	Params    swapParams
	ignored   int
}

func Test_TokenOf(t *testing.T) {
	cases := []struct {
		t        string
		value    interface{}
		expected abi.Token
	}{
		{"address", poolAddr, abi.Address(poolAddr)},
		{"address", "0xaabbccddeeff00112233445566778899aabbccdd", abi.Address(poolAddr)},
		{"address", poolAddr.Bytes(), abi.Address(poolAddr)},
		{"bool", true, abi.Bool(true)},
		{"bool", "false", abi.Bool(false)},
		{"uint24", 3000, abi.NewUint64(24, 3000)},
		{"uint24", "0xbb8", abi.NewUint64(24, 3000)},
		{"uint256", json.Number("1000000000000000000000"),
			abi.NewUint(256, new(big.Int).Exp(big.NewInt(10), big.NewInt(21), nil))},
		{"int24", int8(-1), abi.NewInt64(24, -1)},
		{"int128", big.NewInt(-5), abi.NewInt64(128, -5)},
		{"bytes4", [4]byte{0x70, 0xa0, 0x82, 0x31}, abi.FixedBytes{0x70, 0xa0, 0x82, 0x31}},
		{"bytes4", "0x70a08231", abi.FixedBytes{0x70, 0xa0, 0x82, 0x31}},
		{"bytes", "0x0102", abi.Bytes{0x01, 0x02}},
		{"string", "uniswap", abi.String("uniswap")},
		{"uint8[]", []int{1, 2}, abi.Array{abi.NewUint64(8, 1), abi.NewUint64(8, 2)}},
		{"uint8[2]", [2]uint{1, 2}, abi.FixedArray{abi.NewUint64(8, 1), abi.NewUint64(8, 2)}},
		{"(address,bool)", []interface{}{poolAddr, true}, abi.Tuple{abi.Address(poolAddr), abi.Bool(true)}},
		{"uint24", abi.NewUint64(24, 1), abi.NewUint64(24, 1)},
	}
	for _, c := range cases {
		tok, err := TokenOf(abi.MustParseType(c.t), c.value)
		if !assert.NoError(t, err, c.t) {
			continue
		}
		assert.True(t, abi.Equal(c.expected, tok), "type:%s expected:%s actual:%s", c.t, c.expected, tok)
	}
}

func Test_TokenOfInvalid(t *testing.T) {
	cases := []struct {
		t     string
		value interface{}
	}{
		{"address", "0x01"},
		{"address", 1},
		{"bool", "yes"},
		{"uint8", 256},
		{"uint8", -1},
		{"int8", 128},
		{"uint256", "ten"},
		{"bytes4", "0x0102"},
		{"bytes", "0102"},
		{"uint8[2]", []int{1}},
		{"uint8[]", 1},
		{"(address,bool)", []interface{}{poolAddr}},
		{"uint24", abi.NewUint64(256, 1)},
	}
	for _, c := range cases {
		_, err := TokenOf(abi.MustParseType(c.t), c.value)
		assert.Error(t, err, "type:%s value:%v", c.t, c.value)
	}
	_, err := TokenOf(abi.UintType(8), 256)
	assert.True(t, abi.ErrorCodeOutOfRange.Equals(err))
	assert.Panics(t, func() {
		MustTokenOf(abi.BoolType(), 1)
	})
}

func Test_TokensOfStruct(t *testing.T) {
	types := abi.MustParseTypes("(address,(address,address,bytes32),(int128,bool,uint96,uint256))")
	args := swapArgs{
		Recipient: ownerAddr,
		Key: poolKey{
			Token0: poolAddr,
			Token1: ownerAddr,
			Salt:   [32]byte{0x01},
		},
		Params: swapParams{
			Amount:     big.NewInt(-100),
			ZeroForOne: true,
			Limit:      1 << 40,
			Deadline:   *big.NewInt(1700000000),
		},
	}
	tokens, err := TokensOf(types, args)
	assert.NoError(t, err)
	salt := make([]byte, 32)
	salt[0] = 0x01
	expected := []abi.Token{
		abi.Address(ownerAddr),
		abi.Tuple{abi.Address(poolAddr), abi.Address(ownerAddr), abi.FixedBytes(salt)},
		abi.Tuple{abi.NewInt64(128, -100), abi.Bool(true), abi.NewUint64(96, 1<<40), abi.NewUint64(256, 1700000000)},
	}
	assert.True(t, abi.EqualTokens(expected, tokens))

	tokens, err = TokensOf(types, &args)
	assert.NoError(t, err)
	assert.True(t, abi.EqualTokens(expected, tokens))

	var out swapArgs
	assert.NoError(t, Unpack(tokens, &out))
	assert.Equal(t, args.Recipient, out.Recipient)
	assert.Equal(t, args.Key, out.Key)
	assert.Equal(t, 0, args.Params.Amount.Cmp(out.Params.Amount))
	assert.Equal(t, args.Params.ZeroForOne, out.Params.ZeroForOne)
	assert.Equal(t, args.Params.Limit, out.Params.Limit)
	assert.Equal(t, 0, args.Params.Deadline.Cmp(&out.Params.Deadline))
}

func Test_TokensOfSingle(t *testing.T) {
	tokens, err := TokensOf([]abi.Type{abi.AddressType()}, poolAddr)
	assert.NoError(t, err)
	assert.True(t, abi.EqualTokens([]abi.Token{abi.Address(poolAddr)}, tokens))

	tokens, err = TokensOf(nil, nil)
	assert.NoError(t, err)
	assert.Len(t, tokens, 0)

	tokens, err = TokensOf([]abi.Type{abi.UintType(8), abi.BoolType()},
		[]abi.Token{abi.NewUint64(8, 1), abi.Bool(true)})
	assert.NoError(t, err)
	assert.Len(t, tokens, 2)

	_, err = TokensOf([]abi.Type{abi.UintType(8), abi.BoolType()}, 1)
	assert.True(t, ErrorCodeInvalidParam.Equals(err))
	_, err = TokensOf([]abi.Type{abi.UintType(8)}, nil)
	assert.True(t, ErrorCodeInvalidParam.Equals(err))
	var nilArgs *swapArgs
	_, err = TokensOf([]abi.Type{abi.UintType(8)}, nilArgs)
	assert.True(t, ErrorCodeInvalidParam.Equals(err))
}

func Test_Unpack(t *testing.T) {
	tokens := []abi.Token{abi.NewUint64(24, 3000), abi.String("uniswap")}

	var generic []interface{}
	assert.NoError(t, Unpack(tokens, &generic))
	if assert.Len(t, generic, 2) {
		assert.Equal(t, 0, big.NewInt(3000).Cmp(generic[0].(*big.Int)))
		assert.Equal(t, "uniswap", generic[1])
	}

	var raw []abi.Token
	assert.NoError(t, Unpack(tokens, &raw))
	assert.True(t, abi.EqualTokens(tokens, raw))

	var pair struct {
		Fee  uint32
		Name string
	}
	assert.NoError(t, Unpack(tokens, &pair))
	assert.Equal(t, uint32(3000), pair.Fee)
	assert.Equal(t, "uniswap", pair.Name)

	var fee *uint32
	assert.NoError(t, Unpack(tokens[:1], &fee))
	if assert.NotNil(t, fee) {
		assert.Equal(t, uint32(3000), *fee)
	}

	var hash [4]byte
	assert.NoError(t, Unpack([]abi.Token{abi.FixedBytes{1, 2, 3, 4}}, &hash))
	assert.Equal(t, [4]byte{1, 2, 3, 4}, hash)

	var s string
	assert.Error(t, Unpack([]abi.Token{abi.Bool(true)}, &s))
	assert.Error(t, Unpack(tokens, pair))
	assert.Error(t, Unpack(tokens, &s))
	var short [3]byte
	assert.Error(t, Unpack([]abi.Token{abi.FixedBytes{1, 2, 3, 4}}, &short))
}

func Test_NativeOf(t *testing.T) {
	v := NativeOf(abi.Tuple{abi.Address(poolAddr), abi.Array{abi.Bool(true)}, abi.Bytes{0x01}})
	l, ok := v.([]interface{})
	if assert.True(t, ok) && assert.Len(t, l, 3) {
		assert.Equal(t, poolAddr, l[0])
		assert.Equal(t, []interface{}{true}, l[1])
		assert.Equal(t, []byte{0x01}, l[2])
	}
	assert.Nil(t, NativeOf(nil))
}
