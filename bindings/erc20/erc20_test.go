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

package erc20

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/contract"
)

var (
	tokenAddr   = common.HexToAddress("0xaabbccddeeff00112233445566778899aabbccdd")
	ownerAddr   = common.HexToAddress("0x0101010101010101010101010101010101010101")
	spenderAddr = common.HexToAddress("0x0202020202020202020202020202020202020202")
)

type fakeCaller struct {
	input []byte
	raw   []byte
}

func (c *fakeCaller) BatchCall(ctx context.Context, calls []contract.ViewCall) ([]contract.ViewResult, error) {
	rs := make([]contract.ViewResult, len(calls))
	for i, call := range calls {
		c.input = call.Input
		if c.raw == nil {
			rs[i] = contract.ViewResult{Failed: true}
			continue
		}
		rs[i] = contract.ViewResult{Raw: c.raw}
	}
	return rs, nil
}

func Test_Selectors(t *testing.T) {
	assert.Equal(t, contract.SelectorOf("transfer(address,uint256)"), TransferSelector)
	assert.Equal(t, contract.SelectorOf("balanceOf(address)"), BalanceOfSelector)
	assert.Equal(t, contract.SelectorOf("decimals()"), DecimalsSelector)
	assert.Equal(t, contract.TopicOf("Transfer(address,address,uint256)"), TransferTopic0)
	assert.Equal(t, contract.TopicOf("Approval(address,address,uint256)"), ApprovalTopic0)
}

func Test_Transfer(t *testing.T) {
	v := &Transfer{To: ownerAddr, Value: big.NewInt(1000)}
	b, err := TransferFunc.EncodeTransfer(v)
	assert.NoError(t, err)
	assert.Equal(t, hexutil.MustDecode("0xa9059cbb"+
		"0000000000000000000000000101010101010101010101010101010101010101"+
		"00000000000000000000000000000000000000000000000000000000000003e8"), b)

	decoded, err := TransferFunc.DecodeTransfer(&contract.Call{To: tokenAddr, Input: b})
	assert.NoError(t, err)
	assert.Equal(t, ownerAddr, decoded.To)
	assert.Equal(t, int64(1000), decoded.Value.Int64())

	ok, err := TransferFunc.Output(abi.MustEncode([]abi.Token{abi.Bool(true)}))
	assert.NoError(t, err)
	assert.True(t, ok)

	_, err = TransferFunc.DecodeTransfer(&contract.Call{Input: b[:3]})
	assert.True(t, abi.ErrorCodeNoInput.Equals(err))
}

func Test_BalanceOfCall(t *testing.T) {
	c := &fakeCaller{raw: abi.MustEncode([]abi.Token{abi.NewUint64(256, 42)})}
	v, ok := BalanceOf.Call(context.Background(), c, tokenAddr, ownerAddr, nil, nil)
	assert.True(t, ok)
	assert.Equal(t, int64(42), v.Int64())
	expected, err := BalanceOf.EncodeBalanceOf(ownerAddr)
	assert.NoError(t, err)
	assert.Equal(t, expected, c.input)

	c.raw = nil
	v, ok = BalanceOf.Call(context.Background(), c, tokenAddr, ownerAddr, nil, nil)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func Test_DecimalsCall(t *testing.T) {
	c := &fakeCaller{raw: abi.MustEncode([]abi.Token{abi.NewUint64(8, 18)})}
	v, ok := Decimals.Call(context.Background(), c, tokenAddr, nil, nil)
	assert.True(t, ok)
	assert.Equal(t, uint8(18), v)
	assert.Equal(t, DecimalsSelector[:], c.input)

	c.raw = abi.MustEncode([]abi.Token{abi.NewUint64(256, 256)})
	_, ok = Decimals.Call(context.Background(), c, tokenAddr, nil, nil)
	assert.False(t, ok)
}

func Test_Events(t *testing.T) {
	l, err := TransferEvt.Encode(tokenAddr, abi.Address(ownerAddr), abi.Address(spenderAddr), abi.NewUint64(256, 7))
	assert.NoError(t, err)
	assert.Len(t, l.Topics, 3)

	r := NewRegistry()
	e, ok := r.Event(l)
	assert.True(t, ok)
	assert.Equal(t, TransferEvt.Event, e)
	tl, err := TransferEvt.DecodeTransfer(l)
	assert.NoError(t, err)
	assert.Equal(t, ownerAddr, tl.From)
	assert.Equal(t, spenderAddr, tl.To)
	assert.Equal(t, int64(7), tl.Value.Int64())

	l, err = ApprovalEvt.Encode(tokenAddr, abi.Address(ownerAddr), abi.Address(spenderAddr), abi.NewUint64(256, 9))
	assert.NoError(t, err)
	assert.False(t, TransferEvt.Match(l))
	al, err := ApprovalEvt.DecodeApproval(l)
	assert.NoError(t, err)
	assert.Equal(t, spenderAddr, al.Spender)
	assert.Equal(t, int64(9), al.Value.Int64())

	f, ok := r.Function(DecimalsSelector[:])
	assert.True(t, ok)
	assert.Equal(t, Decimals.Function, f)
}
