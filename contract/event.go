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
	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
)

type EventInput struct {
	Name    string
	Type    abi.Type
	Indexed bool
}

// Event is the binding of one contract event.
type Event struct {
	Topic0    common.Hash
	Name      string
	Inputs    []EventInput
	Anonymous bool
	decoder   *abi.Decoder
}

func TopicOf(signature string) common.Hash {
	return common.Hash(abi.Topic(signature))
}

func NewEvent(name string, inputs []EventInput, anonymous bool) (*Event, error) {
	e := &Event{
		Name:      name,
		Inputs:    inputs,
		Anonymous: anonymous,
	}
	return NewEventWithTopic(TopicOf(e.Signature()), name, inputs, anonymous)
}

// NewEventWithTopic builds a binding around a topic0 constant.
// The topic is not checked against the signature.
func NewEventWithTopic(topic0 common.Hash, name string, inputs []EventInput, anonymous bool) (*Event, error) {
	for i, in := range inputs {
		if err := in.Type.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid input[%d] of %s err:%s", i, name, err.Error())
		}
	}
	return &Event{
		Topic0:    topic0,
		Name:      name,
		Inputs:    inputs,
		Anonymous: anonymous,
		decoder:   abi.NewDecoder(abi.DefaultOptions()),
	}, nil
}

func MustNewEvent(name string, inputs []EventInput, anonymous bool) *Event {
	e, err := NewEvent(name, inputs, anonymous)
	if err != nil {
		log.Panicf("fail to NewEvent err:%v", err)
	}
	return e
}

func MustNewEventWithTopic(topic0 common.Hash, name string, inputs []EventInput, anonymous bool) *Event {
	e, err := NewEventWithTopic(topic0, name, inputs, anonymous)
	if err != nil {
		log.Panicf("fail to NewEventWithTopic err:%v", err)
	}
	return e
}

func (e *Event) WithOptions(opt abi.Options) *Event {
	c := *e
	c.decoder = abi.NewDecoder(opt)
	return &c
}

func (e *Event) Types() []abi.Type {
	types := make([]abi.Type, len(e.Inputs))
	for i, in := range e.Inputs {
		types[i] = in.Type
	}
	return types
}

func (e *Event) Signature() string {
	return abi.Signature(e.Name, e.Types())
}

func (e *Event) String() string {
	return e.Signature() + e.Topic0.String()
}

func (e *Event) IndexedCount() int {
	n := 0
	for _, in := range e.Inputs {
		if in.Indexed {
			n++
		}
	}
	return n
}

func (e *Event) DataTypes() []abi.Type {
	types := make([]abi.Type, 0, len(e.Inputs))
	for _, in := range e.Inputs {
		if !in.Indexed {
			types = append(types, in.Type)
		}
	}
	return types
}

func (e *Event) topicCount() int {
	if e.Anonymous {
		return e.IndexedCount()
	}
	return e.IndexedCount() + 1
}

// Match reports whether l has the topic and data layout of the event.
func (e *Event) Match(l *Log) bool {
	if len(l.Topics) != e.topicCount() {
		return false
	}
	if !e.Anonymous && l.Topics[0] != e.Topic0 {
		return false
	}
	dt := e.DataTypes()
	hs := abi.SequenceHeadSize(dt)
	for _, t := range dt {
		if t.IsDynamic() {
			return len(l.Data) >= hs
		}
	}
	return len(l.Data) == hs
}

// Decode returns the event parameters in declaration order.
// Indexed parameters which do not fit in one word carry the Keccak-256
// hash of the value, they are returned as 32 byte FixedBytes.
func (e *Event) Decode(l *Log) ([]abi.Token, error) {
	topics := l.Topics
	if !e.Anonymous {
		if len(topics) == 0 {
			return nil, abi.ErrorCodeNoInput.Errorf("no topics for %s", e.Name)
		}
		if topics[0] != e.Topic0 {
			return nil, abi.ErrorCodeSelectorMismatch.Errorf("topic0 expected:%s actual:%s",
				e.Topic0, topics[0])
		}
		topics = topics[1:]
	}
	if n := e.IndexedCount(); len(topics) < n {
		return nil, abi.ErrorCodeTruncated.Errorf("topics expected:%d actual:%d", n, len(topics))
	} else if len(topics) > n {
		return nil, abi.ErrorCodeMalformed.Errorf("topics expected:%d actual:%d", n, len(topics))
	}
	data, err := e.decoder.Decode(e.DataTypes(), l.Data)
	if err != nil {
		return nil, err
	}
	tokens := make([]abi.Token, len(e.Inputs))
	for i, in := range e.Inputs {
		if !in.Indexed {
			tokens[i], data = data[0], data[1:]
			continue
		}
		topic := topics[0]
		topics = topics[1:]
		if !in.Type.IsWord() {
			tokens[i] = abi.FixedBytes(common.CopyBytes(topic[:]))
			continue
		}
		if tokens[i], err = e.decoder.DecodeWord(in.Type, abi.Word(topic)); err != nil {
			return nil, errors.Wrapf(err, "fail to decode topic of %s err:%s", in.Name, err.Error())
		}
	}
	return tokens, nil
}

func (e *Event) DecodeInto(l *Log, out interface{}) error {
	tokens, err := e.Decode(l)
	if err != nil {
		return err
	}
	return Unpack(tokens, out)
}

// Encode builds a log from parameters in declaration order. Indexed
// parameters which do not fit in one word must be given as their 32 byte hash.
func (e *Event) Encode(address common.Address, args ...abi.Token) (*Log, error) {
	if len(args) != len(e.Inputs) {
		return nil, ErrorCodeInvalidParam.Errorf("argument count expected:%d actual:%d",
			len(e.Inputs), len(args))
	}
	topics := make([]common.Hash, 0, e.topicCount())
	if !e.Anonymous {
		topics = append(topics, e.Topic0)
	}
	data := make([]abi.Token, 0, len(args))
	for i, in := range e.Inputs {
		if !in.Indexed {
			data = append(data, args[i])
			continue
		}
		t := in.Type
		if !t.IsWord() {
			t = abi.FixedBytesType(common.HashLength)
		}
		if err := abi.Conforms(t, args[i]); err != nil {
			return nil, err
		}
		w, err := abi.EncodeWord(args[i])
		if err != nil {
			return nil, err
		}
		topics = append(topics, common.Hash(w))
	}
	b, err := abi.Pack(e.DataTypes(), data)
	if err != nil {
		return nil, err
	}
	return &Log{
		Address: address,
		Topics:  topics,
		Data:    b,
	}, nil
}
