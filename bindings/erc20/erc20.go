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

// Package erc20 binds the calls and events of ERC-20 tokens.
package erc20

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/contract"
)

var (
	TransferSelector  = contract.Selector{0xa9, 0x05, 0x9c, 0xbb}
	BalanceOfSelector = contract.Selector{0x70, 0xa0, 0x82, 0x31}
	DecimalsSelector  = contract.Selector{0x31, 0x3c, 0xe5, 0x67}
	TransferTopic0    = common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	ApprovalTopic0    = common.HexToHash("0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925")
)

type Transfer struct {
	To    common.Address
	Value *big.Int
}

type TransferFunction struct {
	*contract.Function
}

var TransferFunc = &TransferFunction{
	Function: contract.MustNewFunctionWithSelector(TransferSelector, "transfer",
		[]abi.Type{abi.AddressType(), abi.UintType(256)}, []abi.Type{abi.BoolType()}),
}

func (f *TransferFunction) DecodeTransfer(call *contract.Call) (*Transfer, error) {
	ret := &Transfer{}
	if err := f.DecodeInto(call.Input, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *TransferFunction) EncodeTransfer(v *Transfer) ([]byte, error) {
	return f.EncodeFrom(v)
}

func (f *TransferFunction) Output(returnData []byte) (bool, error) {
	var ret bool
	err := f.OutputInto(returnData, &ret)
	return ret, err
}

type BalanceOfFunction struct {
	*contract.Function
}

var BalanceOf = &BalanceOfFunction{
	Function: contract.MustNewFunctionWithSelector(BalanceOfSelector, "balanceOf",
		[]abi.Type{abi.AddressType()}, []abi.Type{abi.UintType(256)}),
}

func (f *BalanceOfFunction) EncodeBalanceOf(owner common.Address) ([]byte, error) {
	return f.Encode(abi.Address(owner))
}

func (f *BalanceOfFunction) Output(returnData []byte) (*big.Int, error) {
	var ret *big.Int
	if err := f.OutputInto(returnData, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *BalanceOfFunction) Call(ctx context.Context, c contract.BatchCaller, token, owner common.Address, block *big.Int, l log.Logger) (*big.Int, bool) {
	return contract.CallOptional[*big.Int](ctx, c, f.Function, token, block, l, abi.Address(owner))
}

type DecimalsFunction struct {
	*contract.Function
}

var Decimals = &DecimalsFunction{
	Function: contract.MustNewFunctionWithSelector(DecimalsSelector, "decimals",
		nil, []abi.Type{abi.UintType(8)}),
}

func (f *DecimalsFunction) Output(returnData []byte) (uint8, error) {
	var ret uint8
	err := f.OutputInto(returnData, &ret)
	return ret, err
}

func (f *DecimalsFunction) Call(ctx context.Context, c contract.BatchCaller, token common.Address, block *big.Int, l log.Logger) (uint8, bool) {
	return contract.CallOptional[uint8](ctx, c, f.Function, token, block, l)
}

type TransferLog struct {
	From  common.Address
	To    common.Address
	Value *big.Int
}

type TransferEvent struct {
	*contract.Event
}

var TransferEvt = &TransferEvent{
	Event: contract.MustNewEventWithTopic(TransferTopic0, "Transfer", []contract.EventInput{
		{Name: "from", Type: abi.AddressType(), Indexed: true},
		{Name: "to", Type: abi.AddressType(), Indexed: true},
		{Name: "value", Type: abi.UintType(256)},
	}, false),
}

func (e *TransferEvent) DecodeTransfer(l *contract.Log) (*TransferLog, error) {
	ret := &TransferLog{}
	if err := e.DecodeInto(l, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

type ApprovalLog struct {
	Owner   common.Address
	Spender common.Address
	Value   *big.Int
}

type ApprovalEvent struct {
	*contract.Event
}

var ApprovalEvt = &ApprovalEvent{
	Event: contract.MustNewEventWithTopic(ApprovalTopic0, "Approval", []contract.EventInput{
		{Name: "owner", Type: abi.AddressType(), Indexed: true},
		{Name: "spender", Type: abi.AddressType(), Indexed: true},
		{Name: "value", Type: abi.UintType(256)},
	}, false),
}

func (e *ApprovalEvent) DecodeApproval(l *contract.Log) (*ApprovalLog, error) {
	ret := &ApprovalLog{}
	if err := e.DecodeInto(l, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func Register(r *contract.Registry) {
	r.RegisterFunction(TransferFunc.Function, BalanceOf.Function, Decimals.Function)
	r.RegisterEvent(TransferEvt.Event, ApprovalEvt.Event)
}

func NewRegistry() *contract.Registry {
	r := contract.NewRegistry()
	Register(r)
	return r
}
