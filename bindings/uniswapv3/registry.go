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

// Package uniswapv3 binds Uniswap V3 style pool, factory and router calls and
// events.
package uniswapv3

import (
	"github.com/icon-project/abi-sdk/contract"
)

func Register(r *contract.Registry) {
	r.RegisterFunction(
		Factory.Function,
		Token0.Function,
		Token1.Function,
		Fee.Function,
		Slot0Func.Function,
		BulkUpdateFeesFunc.Function,
		SwapWithKeyFunc.Function,
	)
	r.RegisterEvent(
		SwapLog.Event,
		PoolCreatedLog.Event,
		CustomFeeSetLog.Event,
	)
}

func NewRegistry() *contract.Registry {
	r := contract.NewRegistry()
	Register(r)
	return r
}
