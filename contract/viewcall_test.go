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
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/log"
	"github.com/stretchr/testify/assert"

	"github.com/icon-project/abi-sdk/abi"
)

type fakeCaller struct {
	results map[common.Address]ViewResult
	err     error
	calls   [][]ViewCall
}

func (c *fakeCaller) BatchCall(ctx context.Context, calls []ViewCall) ([]ViewResult, error) {
	c.calls = append(c.calls, calls)
	if c.err != nil {
		return nil, c.err
	}
	rs := make([]ViewResult, len(calls))
	for i, call := range calls {
		r, ok := c.results[call.To]
		if !ok {
			r = ViewResult{Failed: true}
		}
		rs[i] = r
	}
	return rs, nil
}

// infoRecorder keeps the messages logged at info level.
type infoRecorder struct {
	log.Logger
	infos []string
}

func (l *infoRecorder) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
	l.Logger.Infof(format, args...)
}

func mustEncodeOutput(f *Function, values ...abi.Token) []byte {
	b, err := f.EncodeOutput(values...)
	if err != nil {
		log.Panicf("fail to EncodeOutput err:%+v", err)
	}
	return b
}

func Test_CallView(t *testing.T) {
	c := &fakeCaller{
		results: map[common.Address]ViewResult{
			poolAddr: {Raw: mustEncodeOutput(factory, abi.Address(ownerAddr))},
		},
	}
	raw, err := CallView(context.Background(), c, ViewCall{To: poolAddr, Input: factory.Selector[:]})
	assert.NoError(t, err)
	tokens, err := factory.Output(raw)
	assert.NoError(t, err)
	assert.True(t, abi.Equal(abi.Address(ownerAddr), tokens[0]))

	_, err = CallView(context.Background(), c, ViewCall{To: ownerAddr})
	assert.True(t, abi.ErrorCodeCallFailed.Equals(err))

	c.err = errors.New("connection refused")
	_, err = CallView(context.Background(), c, ViewCall{To: poolAddr})
	assert.True(t, abi.ErrorCodeCallFailed.Equals(err))
}

func Test_CallViews(t *testing.T) {
	c := &fakeCaller{
		results: map[common.Address]ViewResult{
			poolAddr:  {Raw: mustEncodeOutput(balanceOf, abi.NewUint64(256, 1))},
			ownerAddr: {Raw: mustEncodeOutput(balanceOf, abi.NewUint64(256, 2))},
		},
	}
	raws, err := CallViews(context.Background(), c, []ViewCall{{To: poolAddr}, {To: ownerAddr}})
	assert.NoError(t, err)
	assert.Len(t, raws, 2)
	assert.Len(t, c.calls, 1)

	var v *big.Int
	assert.NoError(t, balanceOf.OutputInto(raws[1], &v))
	assert.Equal(t, int64(2), v.Int64())

	_, err = CallViews(context.Background(), c, []ViewCall{{To: poolAddr}, {To: common.Address{}}})
	assert.True(t, abi.ErrorCodeCallFailed.Equals(err))
}

func Test_FunctionCall(t *testing.T) {
	c := &fakeCaller{
		results: map[common.Address]ViewResult{
			poolAddr: {Raw: mustEncodeOutput(balanceOf, abi.NewUint64(256, 1000))},
		},
	}
	block := big.NewInt(100)
	tokens, err := balanceOf.Call(context.Background(), c, poolAddr, block, abi.Address(ownerAddr))
	assert.NoError(t, err)
	assert.True(t, abi.EqualTokens([]abi.Token{abi.NewUint64(256, 1000)}, tokens))
	if assert.Len(t, c.calls, 1) {
		call := c.calls[0][0]
		assert.Equal(t, poolAddr, call.To)
		assert.Equal(t, block, call.Block)
		assert.True(t, balanceOf.Match(call.Input))
	}

	_, err = balanceOf.Call(context.Background(), c, poolAddr, nil, abi.Bool(true))
	assert.True(t, abi.ErrorCodeInvalidType.Equals(err))
	assert.Len(t, c.calls, 1)
}

func Test_CallOptionalDowngrade(t *testing.T) {
	c := &fakeCaller{
		results: map[common.Address]ViewResult{
			poolAddr:  {Failed: true, Raw: []byte{}},
			ownerAddr: {Raw: mustEncodeOutput(balanceOf, abi.NewUint64(256, 5))},
		},
	}
	l := &infoRecorder{Logger: log.New()}
	v, ok := CallOptional[*big.Int](context.Background(), c, balanceOf, poolAddr, nil, l, abi.Address(ownerAddr))
	assert.False(t, ok)
	assert.Nil(t, v)
	if assert.Len(t, l.infos, 1) {
		assert.True(t, strings.HasPrefix(l.infos[0], "fail to call balanceOf"), l.infos[0])
	}

	v, ok = CallOptional[*big.Int](context.Background(), c, balanceOf, ownerAddr, nil, l, abi.Address(ownerAddr))
	assert.True(t, ok)
	assert.Equal(t, int64(5), v.Int64())
	assert.Len(t, l.infos, 1)

	// undecodable return data is absent as well
	c.results[ownerAddr] = ViewResult{Raw: []byte{0x01}}
	v, ok = CallOptional[*big.Int](context.Background(), c, balanceOf, ownerAddr, nil, l, abi.Address(ownerAddr))
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Len(t, l.infos, 2)

	c.err = errors.New("connection refused")
	n, ok := CallOptional[uint8](context.Background(), c, balanceOf, ownerAddr, nil, l, abi.Address(ownerAddr))
	assert.False(t, ok)
	assert.Equal(t, uint8(0), n)
	if assert.Len(t, l.infos, 3) {
		assert.Contains(t, l.infos[2], "connection refused")
	}

	// nil logger falls back to the global one
	_, ok = CallOptional[uint8](context.Background(), c, balanceOf, ownerAddr, nil, nil, abi.Address(ownerAddr))
	assert.False(t, ok)
}
