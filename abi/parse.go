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

package abi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/icon-project/btp2/common/log"
)

type typeParser struct {
	s   string
	pos int
}

func (p *typeParser) peek() byte {
	if p.pos < len(p.s) {
		return p.s[p.pos]
	}
	return 0
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return ErrorCodeInvalidType.Errorf("fail to parse type %q at %d, %s",
		p.s, p.pos, fmt.Sprintf(format, args...))
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func (p *typeParser) parseType() (Type, error) {
	var (
		t   Type
		err error
	)
	if strings.HasPrefix(p.s[p.pos:], "tuple(") {
		p.pos += len("tuple")
	}
	if p.peek() == '(' {
		var elems []Type
		if elems, err = p.parseList(); err != nil {
			return t, err
		}
		t = TupleType(elems...)
	} else {
		start := p.pos
		for p.pos < len(p.s) && isIdentChar(p.s[p.pos]) {
			p.pos++
		}
		if t, err = elementaryType(p.s[start:p.pos]); err != nil {
			return t, p.errorf("%s", err.Error())
		}
	}
	for p.peek() == '[' {
		p.pos++
		start := p.pos
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
		if p.peek() != ']' {
			return t, p.errorf("missing ]")
		}
		digits := p.s[start:p.pos]
		p.pos++
		if len(digits) == 0 {
			t = ArrayType(t)
			continue
		}
		l, err := strconv.Atoi(digits)
		if err != nil {
			return t, p.errorf("invalid array length %s", digits)
		}
		t = FixedArrayType(t, l)
	}
	return t, t.Validate()
}

func (p *typeParser) parseList() ([]Type, error) {
	if p.peek() != '(' {
		return nil, p.errorf("missing (")
	}
	p.pos++
	p.skipSpace()
	types := make([]Type, 0)
	if p.peek() == ')' {
		p.pos++
		return types, nil
	}
	for {
		p.skipSpace()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return types, nil
		default:
			return nil, p.errorf("expected , or )")
		}
	}
}

func elementaryType(name string) (Type, error) {
	switch name {
	case "address":
		return AddressType(), nil
	case "bool":
		return BoolType(), nil
	case "string":
		return StringType(), nil
	case "bytes":
		return BytesType(), nil
	case "byte":
		return FixedBytesType(1), nil
	case "uint":
		return UintType(MaxIntWidth), nil
	case "int":
		return IntType(MaxIntWidth), nil
	case "function":
		return FixedBytesType(24), nil
	}
	for _, prefix := range []string{"uint", "int", "bytes"} {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		n, err := strconv.Atoi(name[len(prefix):])
		if err != nil {
			break
		}
		var t Type
		switch prefix {
		case "uint":
			t = UintType(n)
		case "int":
			t = IntType(n)
		default:
			t = FixedBytesType(n)
		}
		return t, t.Validate()
	}
	return Type{}, ErrorCodeInvalidType.Errorf("unknown type %q", name)
}

// ParseType parses a canonical type string such as "uint24",
// "(address,address,bytes32)" or "address[2][]".
func ParseType(s string) (Type, error) {
	p := &typeParser{s: strings.TrimSpace(s)}
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if p.pos != len(p.s) {
		return Type{}, p.errorf("unexpected trailing %q", p.s[p.pos:])
	}
	return t, nil
}

func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		log.Panicf("fail to ParseType err:%v", err)
	}
	return t
}

// ParseTypes parses a parenthesized type list, "(address,uint24)".
// An unparenthesized comma separated list is accepted as well.
func ParseTypes(s string) ([]Type, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") || !balancedOuter(s) {
		s = "(" + s + ")"
	}
	p := &typeParser{s: s}
	types, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errorf("unexpected trailing %q", p.s[p.pos:])
	}
	return types, nil
}

func MustParseTypes(s string) []Type {
	types, err := ParseTypes(s)
	if err != nil {
		log.Panicf("fail to ParseTypes err:%v", err)
	}
	return types
}

// balancedOuter reports whether the first '(' of s closes at its last byte.
func balancedOuter(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}
