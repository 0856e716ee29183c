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
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
)

// Registry dispatches observed calls and logs to bindings.
type Registry struct {
	fMap      map[Selector]*Function
	eMap      map[common.Hash][]*Event
	anonymous []*Event
	mtx       sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		fMap: make(map[Selector]*Function),
		eMap: make(map[common.Hash][]*Event),
	}
}

func (r *Registry) RegisterFunction(fs ...*Function) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	for _, f := range fs {
		if old, ok := r.fMap[f.Selector]; ok {
			log.Panicln("already registered selector:" + f.Selector.String() + " " + old.Signature())
		}
		r.fMap[f.Selector] = f
	}
}

// RegisterEvent registers events. Events with the same topic0 are kept in
// registration order, they are distinguished by Event.Match.
func (r *Registry) RegisterEvent(es ...*Event) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	for _, e := range es {
		if e.Anonymous {
			r.anonymous = append(r.anonymous, e)
			continue
		}
		for _, old := range r.eMap[e.Topic0] {
			if old == e || old.Signature() == e.Signature() && old.IndexedCount() == e.IndexedCount() {
				log.Panicln("already registered event:" + e.String())
			}
		}
		r.eMap[e.Topic0] = append(r.eMap[e.Topic0], e)
	}
}

// Function returns the binding for the selector of input.
func (r *Registry) Function(input []byte) (*Function, bool) {
	var s Selector
	if len(input) < len(s) {
		return nil, false
	}
	copy(s[:], input)
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	f, ok := r.fMap[s]
	return f, ok
}

// Event returns the first binding that matches l.
func (r *Registry) Event(l *Log) (*Event, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if len(l.Topics) > 0 {
		for _, e := range r.eMap[l.Topics[0]] {
			if e.Match(l) {
				return e, true
			}
		}
	}
	for _, e := range r.anonymous {
		if e.Match(l) {
			return e, true
		}
	}
	return nil, false
}

// DecodeCall decodes input with the binding for its selector.
func (r *Registry) DecodeCall(input []byte) (*Function, []abi.Token, error) {
	f, ok := r.Function(input)
	if !ok {
		n := len(input)
		if n > len(Selector{}) {
			n = len(Selector{})
		}
		return nil, nil, ErrorCodeNotFoundFunction.Errorf("not found function selector:%s", hexutil.Encode(input[:n]))
	}
	params, err := f.Decode(input)
	if err != nil {
		return nil, nil, err
	}
	return f, params, nil
}

// DecodeLog decodes l with the first binding that matches it.
// It fails with ErrorCodeMismatchBinding when events are registered for
// topic0 of l but none of them matches the layout of l.
func (r *Registry) DecodeLog(l *Log) (*Event, []abi.Token, error) {
	e, ok := r.Event(l)
	if !ok {
		if len(l.Topics) == 0 {
			return nil, nil, ErrorCodeNotFoundEvent.Errorf("not found event without topic")
		}
		r.mtx.RLock()
		candidates := len(r.eMap[l.Topics[0]])
		r.mtx.RUnlock()
		if candidates > 0 {
			return nil, nil, ErrorCodeMismatchBinding.Errorf("mismatch binding topic0:%s topics:%d data:%d",
				l.Topics[0].Hex(), len(l.Topics), len(l.Data))
		}
		return nil, nil, ErrorCodeNotFoundEvent.Errorf("not found event topic0:%s", l.Topics[0].Hex())
	}
	params, err := e.Decode(l)
	if err != nil {
		return nil, nil, err
	}
	return e, params, nil
}

func (r *Registry) Functions() []*Function {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	fs := make([]*Function, 0, len(r.fMap))
	for _, f := range r.fMap {
		fs = append(fs, f)
	}
	sort.Slice(fs, func(i, j int) bool {
		return fs[i].Signature() < fs[j].Signature()
	})
	return fs
}

func (r *Registry) Events() []*Event {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	es := make([]*Event, 0, len(r.eMap)+len(r.anonymous))
	for _, l := range r.eMap {
		es = append(es, l...)
	}
	sort.SliceStable(es, func(i, j int) bool {
		return es[i].Signature() < es[j].Signature()
	})
	return append(es, r.anonymous...)
}

// Topics returns topic0 of the registered events which are not anonymous.
func (r *Registry) Topics() []common.Hash {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	topics := make([]common.Hash, 0, len(r.eMap))
	for t := range r.eMap {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].Hex() < topics[j].Hex()
	})
	return topics
}

// HasAnonymous reports whether a log filter must not restrict topic0.
func (r *Registry) HasAnonymous() bool {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.anonymous) > 0
}

// WithOptions returns a copy of the registry whose bindings decode with opt.
func (r *Registry) WithOptions(opt abi.Options) *Registry {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	c := NewRegistry()
	for s, f := range r.fMap {
		c.fMap[s] = f.WithOptions(opt)
	}
	for t, es := range r.eMap {
		l := make([]*Event, len(es))
		for i, e := range es {
			l[i] = e.WithOptions(opt)
		}
		c.eMap[t] = l
	}
	for _, e := range r.anonymous {
		c.anonymous = append(c.anonymous, e.WithOptions(opt))
	}
	return c
}
