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
	"context"
	"math/big"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	ethLog "github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/contract"
)

const (
	NetworkTypeEth = "eth"
	NetworkTypeBSC = "bsc"

	MethodCall = "eth_call"

	DefaultRetryAttempts  = 3
	DefaultRetryDelay     = 500 * time.Millisecond
	DefaultPollInterval   = 2 * time.Second
	DefaultBlockRange     = 1000
	blockNumberLatest     = "latest"
	callCacheKeySeparator = "/"
)

var (
	NetworkTypes = []string{
		NetworkTypeEth,
		NetworkTypeBSC,
	}
	validate = validator.New()
)

func init() {
	contract.RegisterAdaptorFactory(NewAdaptor, NetworkTypes...)
}

type AdaptorOption struct {
	TransportLogLevel contract.LogLevel `json:"transport_log_level,omitempty"`
	Codec             *abi.Options      `json:"codec,omitempty"`
	RetryAttempts     uint              `json:"retry_attempts,omitempty" validate:"lte=10"`
	RetryDelayMs      uint              `json:"retry_delay_ms,omitempty" validate:"lte=60000"`
	CallCacheSize     int               `json:"call_cache_size,omitempty" validate:"gte=0,lte=1000000"`
	PollIntervalSec   uint              `json:"poll_interval_sec,omitempty" validate:"lte=3600"`
	BlockRange        uint64            `json:"block_range,omitempty" validate:"lte=100000"`
}

func (o *AdaptorOption) retryDelay() time.Duration {
	if o.RetryDelayMs == 0 {
		return DefaultRetryDelay
	}
	return time.Duration(o.RetryDelayMs) * time.Millisecond
}

func (o *AdaptorOption) pollInterval() time.Duration {
	if o.PollIntervalSec == 0 {
		return DefaultPollInterval
	}
	return time.Duration(o.PollIntervalSec) * time.Second
}

func (o *AdaptorOption) blockRange() uint64 {
	if o.BlockRange == 0 {
		return DefaultBlockRange
	}
	return o.BlockRange
}

type Adaptor struct {
	*ethclient.Client
	rc          *rpc.Client
	cache       *lru.Cache
	networkType string
	opt         AdaptorOption
	l           log.Logger
}

func decodeAdaptorOption(options contract.Options) (*AdaptorOption, error) {
	opt := &AdaptorOption{}
	if err := contract.DecodeOptions(options, opt); err != nil {
		return nil, err
	}
	if err := validate.Struct(opt); err != nil {
		return nil, contract.ErrorCodeInvalidOption.Wrapf(err, "invalid options err:%s", err.Error())
	}
	opt.TransportLogLevel = contract.LogLevel(contract.EnsureTransportLogLevel(opt.TransportLogLevel.Level()))
	if opt.RetryAttempts == 0 {
		opt.RetryAttempts = DefaultRetryAttempts
	}
	return opt, nil
}

func NewAdaptor(networkType string, endpoint string, options contract.Options, l log.Logger) (contract.Adaptor, error) {
	opt, err := decodeAdaptorOption(options)
	if err != nil {
		return nil, err
	}
	ethLog.Root().SetHandler(ethLog.FuncHandler(func(r *ethLog.Record) error {
		l.Log(log.Level(r.Lvl+1), r.Msg)
		return nil
	}))
	rc, err := rpc.DialOptions(
		context.Background(),
		endpoint,
		rpc.WithHTTPClient(contract.NewHttpClient(opt.TransportLogLevel.Level(), l)))
	if err != nil {
		return nil, errors.Wrapf(err, "fail to DialOptions endpoint:%s err:%s", endpoint, err.Error())
	}
	return newAdaptor(networkType, rc, opt, l)
}

// NewAdaptorWithClient returns an adaptor over a connected client.
func NewAdaptorWithClient(networkType string, rc *rpc.Client, options contract.Options, l log.Logger) (*Adaptor, error) {
	opt, err := decodeAdaptorOption(options)
	if err != nil {
		return nil, err
	}
	return newAdaptor(networkType, rc, opt, l)
}

func newAdaptor(networkType string, rc *rpc.Client, opt *AdaptorOption, l log.Logger) (*Adaptor, error) {
	a := &Adaptor{
		Client:      ethclient.NewClient(rc),
		rc:          rc,
		networkType: networkType,
		opt:         *opt,
		l:           l,
	}
	if opt.CallCacheSize > 0 {
		c, err := lru.New(opt.CallCacheSize)
		if err != nil {
			return nil, contract.ErrorCodeInvalidOption.Wrapf(err, "fail to create call cache err:%s", err.Error())
		}
		a.cache = c
	}
	return a, nil
}

func (a *Adaptor) NetworkType() string {
	return a.networkType
}

func (a *Adaptor) Options() AdaptorOption {
	return a.opt
}

func toCallArg(c contract.ViewCall) interface{} {
	return map[string]interface{}{
		"to":   c.To,
		"data": hexutil.Bytes(c.Input),
	}
}

func toBlockNumArg(number *big.Int) string {
	if number == nil {
		return blockNumberLatest
	}
	return hexutil.EncodeBig(number)
}

func callCacheKey(c contract.ViewCall) (string, bool) {
	if c.Block == nil {
		return "", false
	}
	return c.Block.String() + callCacheKeySeparator + c.To.Hex() +
		callCacheKeySeparator + hexutil.Encode(c.Input), true
}

func (a *Adaptor) cached(c contract.ViewCall) ([]byte, bool) {
	if a.cache == nil {
		return nil, false
	}
	k, ok := callCacheKey(c)
	if !ok {
		return nil, false
	}
	v, ok := a.cache.Get(k)
	if !ok {
		return nil, false
	}
	return common.CopyBytes(v.([]byte)), true
}

func (a *Adaptor) store(c contract.ViewCall, raw []byte) {
	if a.cache == nil {
		return
	}
	if k, ok := callCacheKey(c); ok {
		a.cache.Add(k, common.CopyBytes(raw))
	}
}

// BatchCall sends calls as a single JSON-RPC batch of eth_call.
func (a *Adaptor) BatchCall(ctx context.Context, calls []contract.ViewCall) ([]contract.ViewResult, error) {
	results := make([]contract.ViewResult, len(calls))
	pending := make([]int, 0, len(calls))
	for i, c := range calls {
		if raw, ok := a.cached(c); ok {
			results[i] = contract.ViewResult{Raw: raw}
			continue
		}
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		return results, nil
	}
	outs := make([]hexutil.Bytes, len(pending))
	elems := make([]rpc.BatchElem, len(pending))
	for j, i := range pending {
		elems[j] = rpc.BatchElem{
			Method: MethodCall,
			Args:   []interface{}{toCallArg(calls[i]), toBlockNumArg(calls[i].Block)},
			Result: &outs[j],
		}
	}
	err := retry.Do(
		func() error {
			for j := range elems {
				elems[j].Error = nil
			}
			return a.rc.BatchCallContext(ctx, elems)
		},
		retry.Context(ctx),
		retry.Attempts(a.opt.RetryAttempts),
		retry.Delay(a.opt.retryDelay()),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			a.l.Debugf("retry BatchCallContext n:%d err:%v", n, err)
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to BatchCallContext err:%s", err.Error())
	}
	for j, i := range pending {
		if elems[j].Error != nil {
			a.l.Tracef("call failed to:%s err:%v", calls[i].To, elems[j].Error)
			results[i] = contract.ViewResult{Failed: true}
			continue
		}
		raw := []byte(outs[j])
		results[i] = contract.ViewResult{Raw: raw}
		a.store(calls[i], raw)
	}
	return results, nil
}

func (a *Adaptor) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := a.Client.BlockNumber(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "fail to BlockNumber err:%s", err.Error())
	}
	return n, nil
}

func newFilterQuery(f contract.LogFilter) ethereum.FilterQuery {
	fq := ethereum.FilterQuery{
		FromBlock: f.FromBlock,
		ToBlock:   f.ToBlock,
		Addresses: f.Addresses,
	}
	if len(f.Topics) > 0 {
		fq.Topics = [][]common.Hash{f.Topics}
	}
	return fq
}

func (a *Adaptor) FilterLogs(ctx context.Context, f contract.LogFilter) ([]*contract.Log, error) {
	ls, err := a.Client.FilterLogs(ctx, newFilterQuery(f))
	if err != nil {
		return nil, errors.Wrapf(err, "fail to FilterLogs err:%s", err.Error())
	}
	return NewLogs(ls), nil
}
