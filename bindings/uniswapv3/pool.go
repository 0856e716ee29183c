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
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/contract"
)

var (
	FactorySelector = contract.Selector{0xc4, 0x5a, 0x01, 0x55}
	FeeSelector     = contract.Selector{0xdd, 0xca, 0x3f, 0x43}
	Token0Selector  = contract.Selector{0x0d, 0xfe, 0x16, 0x81}
	Token1Selector  = contract.Selector{0xd2, 0x12, 0x20, 0xa7}
	Slot0Selector   = contract.Selector{0x38, 0x50, 0xc7, 0xbd}
	SwapTopic0      = common.HexToHash("0xc42079f94a6350d7e6235f29174924f928cc2ac818eb64fed8004e115fbcca67")
)

// AddressFunction is a view function without parameters returning an address.
type AddressFunction struct {
	*contract.Function
}

func newAddressFunction(selector contract.Selector, name string) *AddressFunction {
	return &AddressFunction{
		Function: contract.MustNewFunctionWithSelector(selector, name, nil, []abi.Type{abi.AddressType()}),
	}
}

func (f *AddressFunction) DecodeCall(call *contract.Call) (*struct{}, error) {
	params := &struct{}{}
	if err := f.DecodeInto(call.Input, params); err != nil {
		return nil, err
	}
	return params, nil
}

func (f *AddressFunction) EncodeCall() ([]byte, error) {
	return f.Encode()
}

func (f *AddressFunction) Output(returnData []byte) (common.Address, error) {
	var ret common.Address
	err := f.OutputInto(returnData, &ret)
	return ret, err
}

func (f *AddressFunction) Call(ctx context.Context, c contract.BatchCaller, pool common.Address, block *big.Int, l log.Logger) (common.Address, bool) {
	return contract.CallOptional[common.Address](ctx, c, f.Function, pool, block, l)
}

var (
	Factory = newAddressFunction(FactorySelector, "factory")
	Token0  = newAddressFunction(Token0Selector, "token0")
	Token1  = newAddressFunction(Token1Selector, "token1")
)

type FeeFunction struct {
	*contract.Function
}

var Fee = &FeeFunction{
	Function: contract.MustNewFunctionWithSelector(FeeSelector, "fee", nil, []abi.Type{abi.UintType(24)}),
}

func (f *FeeFunction) Output(returnData []byte) (uint32, error) {
	var ret uint32
	err := f.OutputInto(returnData, &ret)
	return ret, err
}

func (f *FeeFunction) Call(ctx context.Context, c contract.BatchCaller, pool common.Address, block *big.Int, l log.Logger) (uint32, bool) {
	return contract.CallOptional[uint32](ctx, c, f.Function, pool, block, l)
}

type Slot0 struct {
	SqrtPriceX96               *big.Int
	Tick                       int32
	ObservationIndex           uint16
	ObservationCardinality     uint16
	ObservationCardinalityNext uint16
	FeeProtocol                uint8
	Unlocked                   bool
}

type Slot0Function struct {
	*contract.Function
}

var Slot0Func = &Slot0Function{
	Function: contract.MustNewFunctionWithSelector(Slot0Selector, "slot0", nil,
		abi.MustParseTypes("(uint160,int24,uint16,uint16,uint16,uint8,bool)")),
}

func (f *Slot0Function) Output(returnData []byte) (*Slot0, error) {
	ret := &Slot0{}
	if err := f.OutputInto(returnData, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *Slot0Function) EncodeOutput(s *Slot0) ([]byte, error) {
	tokens, err := contract.TokensOf(f.Outputs, s)
	if err != nil {
		return nil, err
	}
	return f.Function.EncodeOutput(tokens...)
}

func (f *Slot0Function) Call(ctx context.Context, c contract.BatchCaller, pool common.Address, block *big.Int, l log.Logger) (*Slot0, bool) {
	return contract.CallOptional[*Slot0](ctx, c, f.Function, pool, block, l)
}

type Swap struct {
	Sender       common.Address
	Recipient    common.Address
	Amount0      *big.Int
	Amount1      *big.Int
	SqrtPriceX96 *big.Int
	Liquidity    *big.Int
	Tick         int32
}

type SwapEvent struct {
	*contract.Event
}

var SwapLog = &SwapEvent{
	Event: contract.MustNewEventWithTopic(SwapTopic0, "Swap", []contract.EventInput{
		{Name: "sender", Type: abi.AddressType(), Indexed: true},
		{Name: "recipient", Type: abi.AddressType(), Indexed: true},
		{Name: "amount0", Type: abi.IntType(256)},
		{Name: "amount1", Type: abi.IntType(256)},
		{Name: "sqrtPriceX96", Type: abi.UintType(160)},
		{Name: "liquidity", Type: abi.UintType(128)},
		{Name: "tick", Type: abi.IntType(24)},
	}, false),
}

func (e *SwapEvent) DecodeSwap(l *contract.Log) (*Swap, error) {
	ret := &Swap{}
	if err := e.DecodeInto(l, ret); err != nil {
		return nil, err
	}
	return ret, nil
}
