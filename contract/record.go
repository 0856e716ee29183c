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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Call is an observed contract call as delivered by the host.
type Call struct {
	From       common.Address
	To         common.Address
	Input      []byte
	ReturnData []byte
}

// Log is an observed event log as delivered by the host.
type Log struct {
	Address     common.Address
	Topics      []common.Hash
	Data        []byte
	BlockNumber uint64
	TxHash      common.Hash
	Index       uint
}

func (l *Log) String() string {
	return fmt.Sprintf("Log{Address:%s,Topics:%v,Data:%s,BlockNumber:%d,TxHash:%s,Index:%d}",
		l.Address, l.Topics, hexutil.Encode(l.Data), l.BlockNumber, l.TxHash, l.Index)
}
