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
	"encoding/json"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
)

// LogFilter selects logs of [FromBlock, ToBlock], nil ToBlock is the latest.
// Empty Addresses or Topics do not restrict.
type LogFilter struct {
	FromBlock *big.Int
	ToBlock   *big.Int
	Addresses []common.Address
	Topics    []common.Hash
}

// EventCallback receives a log with its binding and the decoded parameters.
type EventCallback func(l *Log, e *Event, params []abi.Token) error

type Adaptor interface {
	BatchCaller
	NetworkType() string
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, f LogFilter) ([]*Log, error)
	MonitorEvent(ctx context.Context, cb EventCallback, r *Registry, addresses []common.Address, height uint64) error
}

type Options map[string]interface{}
type AdaptorFactory func(networkType string, endpoint string, opt Options, l log.Logger) (Adaptor, error)

var (
	afMap = make(map[string]AdaptorFactory)
)

func RegisterAdaptorFactory(cf AdaptorFactory, networkTypes ...string) {
	for _, networkType := range networkTypes {
		if _, ok := afMap[networkType]; ok {
			log.Panicln("already registered networkType:" + networkType)
		}
		afMap[networkType] = cf
	}
}

func NewAdaptor(networkType string, endpoint string, opt Options, l log.Logger) (Adaptor, error) {
	if cf, ok := afMap[networkType]; ok {
		l = l.WithFields(log.Fields{log.FieldKeyChain: networkType, log.FieldKeyModule: "contract"})
		return cf(networkType, endpoint, opt, l)
	}
	return nil, ErrorCodeInvalidOption.Errorf("not supported networkType:%s", networkType)
}

func NetworkTypes() []string {
	l := make([]string, 0, len(afMap))
	for networkType := range afMap {
		l = append(l, networkType)
	}
	sort.Strings(l)
	return l
}

// DispatchLog decodes l with the first matching binding of r and invokes cb.
// Logs without a binding are skipped.
func DispatchLog(r *Registry, l *Log, cb EventCallback) error {
	e, ok := r.Event(l)
	if !ok {
		return nil
	}
	params, err := e.Decode(l)
	if err != nil {
		return errors.Wrapf(err, "fail to decode %s log:%s err:%s", e.Name, l, err.Error())
	}
	return cb(l, e, params)
}

func EncodeOptions(v interface{}) (Options, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to EncodeOptions, err:%s", err.Error())
	}
	options := make(Options)
	if err = json.Unmarshal(b, &options); err != nil {
		return nil, errors.Wrapf(err, "fail to EncodeOptions, err:%s", err.Error())
	}
	return options, nil
}

func DecodeOptions(options Options, v interface{}) error {
	b, err := json.Marshal(options)
	if err != nil {
		return ErrorCodeInvalidOption.Wrapf(err, "fail to DecodeOptions err:%s", err.Error())
	}
	if err = json.Unmarshal(b, v); err != nil {
		return ErrorCodeInvalidOption.Wrapf(err, "fail to DecodeOptions err:%s", err.Error())
	}
	return nil
}

type LogLevel log.Level

func (l LogLevel) Level() log.Level {
	return log.Level(l)
}
func (l LogLevel) MarshalJSON() ([]byte, error) {
	ll := log.Level(l)
	if ll > log.TraceLevel || ll < log.PanicLevel {
		return nil, errors.New("out of range log.Level")
	}
	return json.Marshal(ll.String())
}

func (l *LogLevel) UnmarshalJSON(input []byte) error {
	var str string
	err := json.Unmarshal(input, &str)
	if err != nil {
		return err
	}
	v, err := log.ParseLevel(str)
	if err != nil {
		return err
	}
	*l = LogLevel(v)
	return nil
}
