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
	"strings"

	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
)

type param struct {
	Type    abi.Type
	Name    string
	Indexed bool
}

// splitSignature splits "name(params) rest" into its parts, params keeps
// its parentheses.
func splitSignature(sig string) (name, params, rest string, err error) {
	sig = strings.TrimSpace(sig)
	i := strings.IndexByte(sig, '(')
	if i < 0 {
		return "", "", "", ErrorCodeInvalidParam.Errorf("missing ( in signature %q", sig)
	}
	j := closingParen(sig, i)
	if j < 0 {
		return "", "", "", ErrorCodeInvalidParam.Errorf("unbalanced ( in signature %q", sig)
	}
	name = strings.TrimSpace(sig[:i])
	if len(name) == 0 || strings.ContainsAny(name, " \t") {
		return "", "", "", ErrorCodeInvalidParam.Errorf("invalid name in signature %q", sig)
	}
	return name, sig[i : j+1], strings.TrimSpace(sig[j+1:]), nil
}

func closingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseParams parses "(type [indexed] [name], ...)".
func parseParams(s string) ([]param, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, ErrorCodeInvalidParam.Errorf("invalid parameter list %q", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	params := make([]param, 0)
	if len(body) == 0 {
		return params, nil
	}
	depth, start := 0, 0
	for i := 0; i <= len(body); i++ {
		if i < len(body) {
			switch body[i] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		p, err := parseParam(body[start:i])
		if err != nil {
			return nil, err
		}
		params = append(params, p)
		start = i + 1
	}
	return params, nil
}

func parseParam(s string) (param, error) {
	s = strings.TrimSpace(s)
	end := len(s)
	depth := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '(' {
			depth++
		} else if s[i] == ')' {
			depth--
		} else if depth == 0 && (s[i] == ' ' || s[i] == '\t') {
			end = i
			break
		}
	}
	t, err := abi.ParseType(s[:end])
	if err != nil {
		return param{}, errors.Wrapf(err, "fail to parse parameter %q err:%s", s, err.Error())
	}
	p := param{Type: t}
	for _, word := range strings.Fields(s[end:]) {
		switch word {
		case "indexed":
			p.Indexed = true
		case "memory", "calldata", "storage", "payable":
		default:
			if len(p.Name) > 0 {
				return param{}, ErrorCodeInvalidParam.Errorf("unexpected %q in parameter %q", word, s)
			}
			p.Name = word
		}
	}
	return p, nil
}

func paramTypes(params []param) []abi.Type {
	types := make([]abi.Type, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return types
}

// ParseFunction parses a human readable function signature such as
// "balanceOf(address)(uint256)" or
// "function balanceOf(address owner) view returns (uint256)".
func ParseFunction(sig string) (*Function, error) {
	sig = strings.TrimPrefix(strings.TrimSpace(sig), "function ")
	name, ps, rest, err := splitSignature(sig)
	if err != nil {
		return nil, err
	}
	inputs, err := parseParams(ps)
	if err != nil {
		return nil, err
	}
	var outputs []param
	if i := strings.IndexByte(rest, '('); i >= 0 {
		j := closingParen(rest, i)
		if j < 0 {
			return nil, ErrorCodeInvalidParam.Errorf("unbalanced ( in returns of %q", sig)
		}
		if outputs, err = parseParams(rest[i : j+1]); err != nil {
			return nil, err
		}
	}
	for _, p := range inputs {
		if p.Indexed {
			return nil, ErrorCodeInvalidParam.Errorf("indexed parameter in function %q", sig)
		}
	}
	return NewFunction(name, paramTypes(inputs), paramTypes(outputs))
}

func MustParseFunction(sig string) *Function {
	f, err := ParseFunction(sig)
	if err != nil {
		log.Panicf("fail to ParseFunction err:%v", err)
	}
	return f
}

// ParseEvent parses a human readable event signature such as
// "Transfer(address indexed from, address indexed to, uint256 value)".
// A trailing "anonymous" marks an anonymous event.
func ParseEvent(sig string) (*Event, error) {
	sig = strings.TrimPrefix(strings.TrimSpace(sig), "event ")
	name, ps, rest, err := splitSignature(sig)
	if err != nil {
		return nil, err
	}
	params, err := parseParams(ps)
	if err != nil {
		return nil, err
	}
	anonymous := false
	switch rest {
	case "", ";":
	case "anonymous", "anonymous;":
		anonymous = true
	default:
		return nil, ErrorCodeInvalidParam.Errorf("unexpected %q in event %q", rest, sig)
	}
	inputs := make([]EventInput, len(params))
	for i, p := range params {
		inputs[i] = EventInput{Name: p.Name, Type: p.Type, Indexed: p.Indexed}
	}
	return NewEvent(name, inputs, anonymous)
}

func MustParseEvent(sig string) *Event {
	e, err := ParseEvent(sig)
	if err != nil {
		log.Panicf("fail to ParseEvent err:%v", err)
	}
	return e
}
