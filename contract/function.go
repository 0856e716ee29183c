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
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
)

type Selector [abi.SelectorLength]byte

func (s Selector) String() string {
	return hexutil.Encode(s[:])
}

func SelectorOf(signature string) Selector {
	return abi.Selector(signature)
}

// Function is the binding of one contract function.
type Function struct {
	Selector Selector
	Name     string
	Inputs   []abi.Type
	Outputs  []abi.Type
	decoder  *abi.Decoder
}

func NewFunction(name string, inputs, outputs []abi.Type) (*Function, error) {
	return NewFunctionWithSelector(SelectorOf(abi.Signature(name, inputs)), name, inputs, outputs)
}

// NewFunctionWithSelector builds a binding around a selector constant.
// The selector is not checked against the signature.
func NewFunctionWithSelector(selector Selector, name string, inputs, outputs []abi.Type) (*Function, error) {
	if err := abi.ValidateTypes(inputs); err != nil {
		return nil, errors.Wrapf(err, "invalid inputs of %s err:%s", name, err.Error())
	}
	if err := abi.ValidateTypes(outputs); err != nil {
		return nil, errors.Wrapf(err, "invalid outputs of %s err:%s", name, err.Error())
	}
	return &Function{
		Selector: selector,
		Name:     name,
		Inputs:   inputs,
		Outputs:  outputs,
		decoder:  abi.NewDecoder(abi.DefaultOptions()),
	}, nil
}

func MustNewFunction(name string, inputs, outputs []abi.Type) *Function {
	f, err := NewFunction(name, inputs, outputs)
	if err != nil {
		log.Panicf("fail to NewFunction err:%v", err)
	}
	return f
}

func MustNewFunctionWithSelector(selector Selector, name string, inputs, outputs []abi.Type) *Function {
	f, err := NewFunctionWithSelector(selector, name, inputs, outputs)
	if err != nil {
		log.Panicf("fail to NewFunctionWithSelector err:%v", err)
	}
	return f
}

// WithOptions returns a copy of the binding decoding with opt.
func (f *Function) WithOptions(opt abi.Options) *Function {
	c := *f
	c.decoder = abi.NewDecoder(opt)
	return &c
}

func (f *Function) Signature() string {
	return abi.Signature(f.Name, f.Inputs)
}

func (f *Function) String() string {
	return f.Signature() + f.Selector.String()
}

func (f *Function) Match(input []byte) bool {
	return len(input) >= abi.SelectorLength && bytes.Equal(input[:abi.SelectorLength], f.Selector[:])
}

func (f *Function) MatchCall(call *Call) bool {
	return f.Match(call.Input)
}

// Decode decodes the arguments of call input.
func (f *Function) Decode(input []byte) ([]abi.Token, error) {
	if len(input) < abi.SelectorLength {
		return nil, abi.ErrorCodeNoInput.Errorf("input length %d shorter than selector", len(input))
	}
	if !f.Match(input) {
		return nil, abi.ErrorCodeSelectorMismatch.Errorf("selector expected:%s actual:%s",
			f.Selector, hexutil.Encode(input[:abi.SelectorLength]))
	}
	return f.decoder.Decode(f.Inputs, input[abi.SelectorLength:])
}

// DecodeInto decodes the arguments of call input into out, see Unpack.
func (f *Function) DecodeInto(input []byte, out interface{}) error {
	tokens, err := f.Decode(input)
	if err != nil {
		return err
	}
	return Unpack(tokens, out)
}

func (f *Function) DecodeCall(call *Call, out interface{}) error {
	return f.DecodeInto(call.Input, out)
}

// Encode returns selector followed by the encoded arguments.
func (f *Function) Encode(args ...abi.Token) ([]byte, error) {
	b, err := abi.Pack(f.Inputs, args)
	if err != nil {
		return nil, err
	}
	ret := make([]byte, 0, abi.SelectorLength+len(b))
	ret = append(ret, f.Selector[:]...)
	return append(ret, b...), nil
}

// EncodeFrom encodes the arguments converted from in, see TokensOf.
func (f *Function) EncodeFrom(in interface{}) ([]byte, error) {
	args, err := TokensOf(f.Inputs, in)
	if err != nil {
		return nil, err
	}
	return f.Encode(args...)
}

// Output decodes return data.
func (f *Function) Output(data []byte) ([]abi.Token, error) {
	return f.decoder.Decode(f.Outputs, data)
}

func (f *Function) OutputInto(data []byte, out interface{}) error {
	tokens, err := f.Output(data)
	if err != nil {
		return err
	}
	return Unpack(tokens, out)
}

// EncodeOutput encodes return values, as a contract would.
func (f *Function) EncodeOutput(values ...abi.Token) ([]byte, error) {
	return abi.Pack(f.Outputs, values)
}
