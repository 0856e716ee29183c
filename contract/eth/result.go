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

package eth

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/icon-project/abi-sdk/contract"
)

func NewLog(l types.Log) *contract.Log {
	return &contract.Log{
		Address:     l.Address,
		Topics:      l.Topics,
		Data:        l.Data,
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
		Index:       l.Index,
	}
}

func NewLogs(ls []types.Log) []*contract.Log {
	ret := make([]*contract.Log, 0, len(ls))
	for _, l := range ls {
		if l.Removed {
			continue
		}
		ret = append(ret, NewLog(l))
	}
	return ret
}

// NewCall returns the call record of a transaction, returnData is nil when
// it is not known.
func NewCall(tx *types.Transaction, from common.Address, returnData []byte) *contract.Call {
	c := &contract.Call{
		From:       from,
		Input:      tx.Data(),
		ReturnData: returnData,
	}
	if to := tx.To(); to != nil {
		c.To = *to
	}
	return c
}
