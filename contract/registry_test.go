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
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"

	"github.com/icon-project/abi-sdk/abi"
)

func Test_RegistryFunction(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction(factory, balanceOf, bulkUpdateFees)

	f, ok := r.Function(hexutil.MustDecode("0xc45a0155"))
	assert.True(t, ok)
	assert.Equal(t, factory, f)

	_, ok = r.Function(hexutil.MustDecode("0xc45a01"))
	assert.False(t, ok)
	_, ok = r.Function(hexutil.MustDecode("0xa9059cbb"))
	assert.False(t, ok)

	fs := r.Functions()
	if assert.Len(t, fs, 3) {
		assert.Equal(t, "balanceOf(address)", fs[0].Signature())
		assert.Equal(t, "bulkUpdateFees(address[],uint24[])", fs[1].Signature())
		assert.Equal(t, "factory()", fs[2].Signature())
	}

	assert.Panics(t, func() {
		r.RegisterFunction(MustParseFunction("factory()(address)"))
	})
}

func Test_RegistryEvent(t *testing.T) {
	r := NewRegistry()
	// ERC-721 Transfer shares topic0 with ERC-20 Transfer
	nft := MustParseEvent("Transfer(address indexed from, address indexed to, uint256 indexed tokenId)")
	r.RegisterEvent(transferEvent, nft, feeUpdated)
	assert.False(t, r.HasAnonymous())
	assert.Len(t, r.Topics(), 2)
	assert.Len(t, r.Events(), 3)

	l, err := transferEvent.Encode(poolAddr, abi.Address(ownerAddr), abi.Address(poolAddr), abi.NewUint64(256, 1))
	assert.NoError(t, err)
	e, ok := r.Event(l)
	assert.True(t, ok)
	assert.Equal(t, transferEvent, e)

	l, err = nft.Encode(poolAddr, abi.Address(ownerAddr), abi.Address(poolAddr), abi.NewUint64(256, 1))
	assert.NoError(t, err)
	e, ok = r.Event(l)
	assert.True(t, ok)
	assert.Equal(t, nft, e)

	e, ok = r.Event(feeUpdatedLog())
	assert.True(t, ok)
	assert.Equal(t, feeUpdated, e)

	_, ok = r.Event(&Log{Topics: []common.Hash{TopicOf("Unknown()")}})
	assert.False(t, ok)
	_, ok = r.Event(&Log{})
	assert.False(t, ok)

	assert.Panics(t, func() {
		r.RegisterEvent(MustParseEvent("Transfer(address indexed a, address indexed b, uint256 c)"))
	})

	anon := MustParseEvent("Deposit(address indexed owner, uint256 amount) anonymous")
	r.RegisterEvent(anon)
	assert.True(t, r.HasAnonymous())
	l, err = anon.Encode(poolAddr, abi.Address(ownerAddr), abi.NewUint64(256, 7))
	assert.NoError(t, err)
	e, ok = r.Event(l)
	assert.True(t, ok)
	assert.Equal(t, anon, e)
}

func Test_RegistryWithOptions(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction(balanceOf)
	r.RegisterEvent(feeUpdated)

	opt := abi.DefaultOptions()
	opt.StrictAddressPadding = false
	c := r.WithOptions(opt)

	l := feeUpdatedLog()
	l.Topics[1] = common.HexToHash("0x010000000000000000000000aabbccddeeff00112233445566778899aabbccdd")
	e, ok := c.Event(l)
	assert.True(t, ok)
	_, err := e.Decode(l)
	assert.NoError(t, err)

	e, ok = r.Event(l)
	assert.True(t, ok)
	_, err = e.Decode(l)
	assert.Error(t, err)

	_, ok = c.Function(balanceOf.Selector[:])
	assert.True(t, ok)
}

func Test_DispatchLog(t *testing.T) {
	r := NewRegistry()
	r.RegisterEvent(feeUpdated)

	var received []abi.Token
	cb := func(l *Log, e *Event, params []abi.Token) error {
		received = params
		return nil
	}
	assert.NoError(t, DispatchLog(r, feeUpdatedLog(), cb))
	assert.True(t, abi.EqualTokens([]abi.Token{abi.Address(poolAddr), abi.NewUint64(24, 3000)}, received))

	received = nil
	assert.NoError(t, DispatchLog(r, &Log{Topics: []common.Hash{TopicOf("Unknown()")}}, cb))
	assert.Nil(t, received)

	stop := errors.New("stop")
	err := DispatchLog(r, feeUpdatedLog(), func(l *Log, e *Event, params []abi.Token) error {
		return stop
	})
	assert.Equal(t, stop, err)
}

func Test_RegistryDecodeCall(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction(factory, bulkUpdateFees)

	f, params, err := r.DecodeCall(hexutil.MustDecode("0xc45a0155"))
	assert.NoError(t, err)
	assert.Equal(t, factory, f)
	assert.Len(t, params, 0)

	_, _, err = r.DecodeCall(hexutil.MustDecode("0xa9059cbb"))
	assert.True(t, ErrorCodeNotFoundFunction.Equals(err))
	_, _, err = r.DecodeCall(hexutil.MustDecode("0xc45a"))
	assert.True(t, ErrorCodeNotFoundFunction.Equals(err))

	_, _, err = r.DecodeCall(hexutil.MustDecode("0x51ac4e0b"))
	assert.True(t, abi.ErrorCodeTruncated.Equals(err))
}

func Test_RegistryDecodeLog(t *testing.T) {
	r := NewRegistry()
	r.RegisterEvent(feeUpdated)

	e, params, err := r.DecodeLog(feeUpdatedLog())
	assert.NoError(t, err)
	assert.Equal(t, feeUpdated, e)
	assert.True(t, abi.EqualTokens([]abi.Token{abi.Address(poolAddr), abi.NewUint64(24, 3000)}, params))

	l := feeUpdatedLog()
	l.Data = make([]byte, 32)
	_, _, err = r.DecodeLog(l)
	assert.True(t, ErrorCodeMismatchBinding.Equals(err))

	_, _, err = r.DecodeLog(&Log{Topics: []common.Hash{TopicOf("Unknown()")}})
	assert.True(t, ErrorCodeNotFoundEvent.Equals(err))
	_, _, err = r.DecodeLog(&Log{})
	assert.True(t, ErrorCodeNotFoundEvent.Equals(err))
}
