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

	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/errors"

	"github.com/icon-project/abi-sdk/contract"
)

// MonitorEvent polls logs of addresses from height, zero for the latest block,
// and invokes cb for each log which has a binding in r. Logs failing to decode
// are skipped. It returns when ctx is done or cb returns an error.
func (a *Adaptor) MonitorEvent(
	ctx context.Context,
	cb contract.EventCallback,
	r *contract.Registry,
	addresses []common.Address,
	height uint64) error {
	if r == nil {
		return contract.ErrorCodeInvalidParam.Errorf("registry required")
	}
	if a.opt.Codec != nil {
		r = r.WithOptions(*a.opt.Codec)
	}
	var topics []common.Hash
	if !r.HasAnonymous() {
		if topics = r.Topics(); len(topics) == 0 {
			return contract.ErrorCodeInvalidParam.Errorf("no event registered")
		}
	}
	current := height
	if current == 0 {
		n, err := a.BlockNumber(ctx)
		if err != nil {
			return err
		}
		current = n
	}
	a.l.Debugf("MonitorEvent topics:%d addresses:%d height:%d", len(topics), len(addresses), current)
	for {
		select {
		case <-ctx.Done():
			a.l.Debugf("MonitorEvent context done current:%d", current)
			return ctx.Err()
		default:
		}
		latest, err := a.BlockNumber(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			a.l.Warnf("fail to BlockNumber, will retry err:%v", err)
			a.wait(ctx)
			continue
		}
		if current > latest {
			a.wait(ctx)
			continue
		}
		to := current + a.opt.blockRange() - 1
		if to > latest {
			to = latest
		}
		a.l.Tracef("MonitorEvent from:%d to:%d", current, to)
		ls, err := a.FilterLogs(ctx, contract.LogFilter{
			FromBlock: new(big.Int).SetUint64(current),
			ToBlock:   new(big.Int).SetUint64(to),
			Addresses: addresses,
			Topics:    topics,
		})
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			a.l.Warnf("fail to FilterLogs from:%d to:%d, will retry err:%v", current, to, err)
			a.wait(ctx)
			continue
		}
		for _, l := range ls {
			e, ok := r.Event(l)
			if !ok {
				continue
			}
			params, err := e.Decode(l)
			if err != nil {
				a.l.Warnf("fail to decode %s log:%s err:%v", e.Name, l, err)
				continue
			}
			if err = cb(l, e, params); err != nil {
				return errors.Wrapf(err, "fail to callback %s err:%s", e.Name, err.Error())
			}
		}
		current = to + 1
	}
}

func (a *Adaptor) wait(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(a.opt.pollInterval()):
	}
}
