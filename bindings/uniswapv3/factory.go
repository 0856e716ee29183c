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

var (
	BulkUpdateFeesSelector = contract.Selector{0x51, 0xac, 0x4e, 0x0b}
	PoolCreatedTopic0      = common.HexToHash("0x783cca1c0412dd0d695e784568c96da2e9c22ff989357a2e8b1d9b2b4e6b7118")
	CustomFeeSetTopic0     = common.HexToHash("0xe2150e4054ad34f299189d809c507f52c0c572bfef0504af03f43be0870cd354")
)

type PoolCreated struct {
	Token0      common.Address
	Token1      common.Address
	Fee         uint32
	TickSpacing int32
	Pool        common.Address
}

type PoolCreatedEvent struct {
	*contract.Event
}

var PoolCreatedLog = &PoolCreatedEvent{
	Event: contract.MustNewEventWithTopic(PoolCreatedTopic0, "PoolCreated", []contract.EventInput{
		{Name: "token0", Type: abi.AddressType(), Indexed: true},
		{Name: "token1", Type: abi.AddressType(), Indexed: true},
		{Name: "fee", Type: abi.UintType(24), Indexed: true},
		{Name: "tickSpacing", Type: abi.IntType(24)},
		{Name: "pool", Type: abi.AddressType()},
	}, false),
}

func (e *PoolCreatedEvent) DecodePoolCreated(l *contract.Log) (*PoolCreated, error) {
	ret := &PoolCreated{}
	if err := e.DecodeInto(l, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// CustomFeeSet is emitted when a pool gets a fee other than its tier default.
// Both parameters are indexed, the log carries no data.
type CustomFeeSet struct {
	Pool common.Address
	Fee  *big.Int
}

type CustomFeeSetEvent struct {
	*contract.Event
}

var CustomFeeSetLog = &CustomFeeSetEvent{
	Event: contract.MustNewEventWithTopic(CustomFeeSetTopic0, "CustomFeeSet", []contract.EventInput{
		{Name: "pool", Type: abi.AddressType(), Indexed: true},
		{Name: "fee", Type: abi.UintType(24), Indexed: true},
	}, false),
}

func (e *CustomFeeSetEvent) DecodeCustomFeeSet(l *contract.Log) (*CustomFeeSet, error) {
	ret := &CustomFeeSet{}
	if err := e.DecodeInto(l, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (e *CustomFeeSetEvent) EncodeCustomFeeSet(address common.Address, v *CustomFeeSet) (*contract.Log, error) {
	tokens, err := contract.TokensOf(e.Types(), v)
	if err != nil {
		return nil, err
	}
	return e.Encode(address, tokens...)
}

type BulkUpdateFees struct {
	Pools []common.Address
	Fees  []*big.Int
}

type BulkUpdateFeesFunction struct {
	*contract.Function
}

var BulkUpdateFeesFunc = &BulkUpdateFeesFunction{
	Function: contract.MustNewFunctionWithSelector(BulkUpdateFeesSelector, "bulkUpdateFees",
		[]abi.Type{abi.ArrayType(abi.AddressType()), abi.ArrayType(abi.UintType(24))}, nil),
}

func (f *BulkUpdateFeesFunction) DecodeBulkUpdateFees(call *contract.Call) (*BulkUpdateFees, error) {
	ret := &BulkUpdateFees{}
	if err := f.DecodeInto(call.Input, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *BulkUpdateFeesFunction) EncodeBulkUpdateFees(v *BulkUpdateFees) ([]byte, error) {
	return f.EncodeFrom(v)
}
