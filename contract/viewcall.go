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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
)

// ViewCall is a read-only call, Block is nil for the latest block.
type ViewCall struct {
	To    common.Address
	Input []byte
	Block *big.Int
}

type ViewResult struct {
	Failed bool
	Raw    []byte
}

// BatchCaller executes view calls, results are in the order of calls.
// A call reverted by the contract is reported as Failed, errors are for
// transport failures.
type BatchCaller interface {
	BatchCall(ctx context.Context, calls []ViewCall) ([]ViewResult, error)
}

func CallView(ctx context.Context, c BatchCaller, call ViewCall) ([]byte, error) {
	rs, err := c.BatchCall(ctx, []ViewCall{call})
	if err != nil {
		return nil, abi.ErrorCodeCallFailed.Wrapf(err, "fail to BatchCall err:%s", err.Error())
	}
	if len(rs) != 1 {
		return nil, abi.ErrorCodeCallFailed.Errorf("invalid result count:%d", len(rs))
	}
	if rs[0].Failed {
		return nil, abi.ErrorCodeCallFailed.Errorf("call failed to:%s", call.To)
	}
	return rs[0].Raw, nil
}

// CallViews returns raw results of calls, a failed call is an error.
func CallViews(ctx context.Context, c BatchCaller, calls []ViewCall) ([][]byte, error) {
	rs, err := c.BatchCall(ctx, calls)
	if err != nil {
		return nil, abi.ErrorCodeCallFailed.Wrapf(err, "fail to BatchCall err:%s", err.Error())
	}
	if len(rs) != len(calls) {
		return nil, abi.ErrorCodeCallFailed.Errorf("result count expected:%d actual:%d", len(calls), len(rs))
	}
	ret := make([][]byte, len(rs))
	for i, r := range rs {
		if r.Failed {
			return nil, abi.ErrorCodeCallFailed.Errorf("call[%d] failed to:%s", i, calls[i].To)
		}
		ret[i] = r.Raw
	}
	return ret, nil
}

// Call executes f on contract to and decodes its outputs.
func (f *Function) Call(ctx context.Context, c BatchCaller, to common.Address, block *big.Int, args ...abi.Token) ([]abi.Token, error) {
	input, err := f.Encode(args...)
	if err != nil {
		return nil, err
	}
	raw, err := CallView(ctx, c, ViewCall{To: to, Input: input, Block: block})
	if err != nil {
		return nil, err
	}
	return f.Output(raw)
}

// CallInto executes f and unpacks its outputs into out, see Unpack.
func (f *Function) CallInto(ctx context.Context, c BatchCaller, to common.Address, block *big.Int, out interface{}, args ...abi.Token) error {
	tokens, err := f.Call(ctx, c, to, block, args...)
	if err != nil {
		return err
	}
	return Unpack(tokens, out)
}

// CallOptional executes f and unpacks its outputs into T. Any failure is
// logged and reported as absence.
func CallOptional[T any](ctx context.Context, c BatchCaller, f *Function, to common.Address, block *big.Int, l log.Logger, args ...abi.Token) (T, bool) {
	var ret T
	if l == nil {
		l = log.GlobalLogger()
	}
	if err := f.CallInto(ctx, c, to, block, &ret, args...); err != nil {
		l.Infof("fail to call %s to:%s err:%+v", f.Name, to, err)
		var zero T
		return zero, false
	}
	return ret, true
}
