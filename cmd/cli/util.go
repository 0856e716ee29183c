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

package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/icon-project/btp2/common/errors"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/contract"
)

func ReadAndUnmarshal(file string, v interface{}) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ParseArg returns the decoded json value if s is a json array, otherwise s.
// Numbers are kept as json.Number.
func ParseArg(s string) (interface{}, error) {
	if !strings.HasPrefix(strings.TrimSpace(s), "[") {
		return s, nil
	}
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()
	var v interface{}
	if err := d.Decode(&v); err != nil {
		return nil, errors.Wrapf(err, "fail to decode json arg:%s err:%s", s, err.Error())
	}
	return v, nil
}

func ArgTokens(types []abi.Type, args []string) ([]abi.Token, error) {
	values := make([]interface{}, len(args))
	for i, arg := range args {
		v, err := ParseArg(arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return contract.TokensOf(types, values)
}

func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to decode hex:%s err:%s", s, err.Error())
	}
	return b, nil
}

func ParseAddresses(ss []string) ([]common.Address, error) {
	ret := make([]common.Address, 0, len(ss))
	for _, s := range ss {
		if !common.IsHexAddress(s) {
			return nil, errors.Errorf("invalid address %s", s)
		}
		ret = append(ret, common.HexToAddress(s))
	}
	return ret, nil
}

func ParseHashes(ss []string) ([]common.Hash, error) {
	ret := make([]common.Hash, 0, len(ss))
	for _, s := range ss {
		b, err := DecodeHex(s)
		if err != nil {
			return nil, err
		}
		if len(b) != common.HashLength {
			return nil, errors.Errorf("invalid hash length %d of %s", len(b), s)
		}
		ret = append(ret, common.BytesToHash(b))
	}
	return ret, nil
}

func CodecOptions(lenient bool) abi.Options {
	if lenient {
		return abi.Options{}
	}
	return abi.DefaultOptions()
}

// JsonValueOf returns a json friendly value of tok, integers as decimal
// strings and bytes as hex.
func JsonValueOf(tok abi.Token) interface{} {
	switch v := tok.(type) {
	case abi.Uint:
		return v.Value.String()
	case abi.Int:
		return v.Value.String()
	case abi.FixedBytes:
		return hexutil.Bytes(v)
	case abi.Bytes:
		return hexutil.Bytes(v)
	case abi.Array:
		return JsonValuesOf(v)
	case abi.FixedArray:
		return JsonValuesOf(v)
	case abi.Tuple:
		return JsonValuesOf(v)
	default:
		return contract.NativeOf(tok)
	}
}

func JsonValuesOf(tokens []abi.Token) []interface{} {
	ret := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		ret[i] = JsonValueOf(tok)
	}
	return ret
}

type Param struct {
	Name    string      `json:"name,omitempty"`
	Type    string      `json:"type"`
	Indexed bool        `json:"indexed,omitempty"`
	Value   interface{} `json:"value"`
}

type EventOutput struct {
	Address     common.Address `json:"address"`
	BlockNumber uint64         `json:"blockNumber"`
	TxHash      common.Hash    `json:"txHash"`
	Index       uint           `json:"index"`
	Event       string         `json:"event"`
	Params      []Param        `json:"params"`
}

func NewEventOutput(l *contract.Log, e *contract.Event, params []abi.Token) *EventOutput {
	ret := &EventOutput{
		Address:     l.Address,
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
		Index:       l.Index,
		Event:       e.Signature(),
		Params:      make([]Param, len(params)),
	}
	for i, tok := range params {
		in := e.Inputs[i]
		ret.Params[i] = Param{
			Name:    in.Name,
			Type:    in.Type.String(),
			Indexed: in.Indexed,
			Value:   JsonValueOf(tok),
		}
	}
	return ret
}

type CallOutput struct {
	Function string  `json:"function"`
	Selector string  `json:"selector"`
	Params   []Param `json:"params"`
}

func NewCallOutput(f *contract.Function, params []abi.Token) *CallOutput {
	return &CallOutput{
		Function: f.Signature(),
		Selector: f.Selector.String(),
		Params:   NewParams(f.Inputs, params),
	}
}

func NewParams(types []abi.Type, tokens []abi.Token) []Param {
	ret := make([]Param, len(tokens))
	for i, tok := range tokens {
		ret[i] = Param{
			Type:  types[i].String(),
			Value: JsonValueOf(tok),
		}
	}
	return ret
}
