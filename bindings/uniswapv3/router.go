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

package uniswapv3

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/contract"
)

type PoolKey struct {
	Currency0 common.Address
	Currency1 common.Address
	Salt      common.Hash
}

type SwapParams struct {
	AmountSpecified   *big.Int
	ZeroForOne        bool
	SqrtPriceLimitX64 *big.Int
	Deadline          *big.Int
}

type SwapWithKey struct {
	Recipient common.Address
	Key       PoolKey
	Params    SwapParams
}

type SwapWithKeyFunction struct {
	*contract.Function
}

var SwapWithKeyFunc = &SwapWithKeyFunction{
	Function: contract.MustNewFunction("swap", []abi.Type{
		abi.AddressType(),
		abi.TupleType(abi.AddressType(), abi.AddressType(), abi.FixedBytesType(32)),
		abi.TupleType(abi.IntType(128), abi.BoolType(), abi.UintType(96), abi.UintType(256)),
	}, []abi.Type{abi.IntType(256), abi.IntType(256)}),
}

func (f *SwapWithKeyFunction) DecodeSwapWithKey(call *contract.Call) (*SwapWithKey, error) {
	ret := &SwapWithKey{}
	if err := f.DecodeInto(call.Input, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *SwapWithKeyFunction) EncodeSwapWithKey(v *SwapWithKey) ([]byte, error) {
	return f.EncodeFrom(v)
}

// Output returns the balance deltas of the swap.
func (f *SwapWithKeyFunction) Output(returnData []byte) (amount0, amount1 *big.Int, err error) {
	var ret struct {
		Amount0 *big.Int
		Amount1 *big.Int
	}
	if err = f.OutputInto(returnData, &ret); err != nil {
		return nil, nil, err
	}
	return ret.Amount0, ret.Amount1, nil
}
