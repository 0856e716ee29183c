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
	"strconv"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAddress
	KindBool
	KindUint
	KindInt
	KindFixedBytes
	KindBytes
	KindString
	KindArray
	KindFixedArray
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFixedBytes:
		return "fixedbytes"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindFixedArray:
		return "fixedarray"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

const (
	// sizeLimit saturates HeadSize of huge static fixed arrays, no real buffer reaches it.
	sizeLimit = 1 << 30
)

// Type describes one ABI type.
// Size is the bit width for KindUint and KindInt, the byte length for
// KindFixedBytes and the element count for KindFixedArray.
type Type struct {
	Kind  Kind
	Size  int
	Elem  *Type
	Elems []Type
}

func AddressType() Type {
	return Type{Kind: KindAddress}
}

func BoolType() Type {
	return Type{Kind: KindBool}
}

func UintType(n int) Type {
	return Type{Kind: KindUint, Size: n}
}

func IntType(n int) Type {
	return Type{Kind: KindInt, Size: n}
}

func FixedBytesType(k int) Type {
	return Type{Kind: KindFixedBytes, Size: k}
}

func BytesType() Type {
	return Type{Kind: KindBytes}
}

func StringType() Type {
	return Type{Kind: KindString}
}

func ArrayType(elem Type) Type {
	return Type{Kind: KindArray, Elem: &elem}
}

func FixedArrayType(elem Type, l int) Type {
	return Type{Kind: KindFixedArray, Size: l, Elem: &elem}
}

func TupleType(elems ...Type) Type {
	return Type{Kind: KindTuple, Elems: elems}
}

func (t Type) IsDynamic() bool {
	switch t.Kind {
	case KindBytes, KindString, KindArray:
		return true
	case KindFixedArray:
		return t.Elem != nil && t.Elem.IsDynamic()
	case KindTuple:
		for _, e := range t.Elems {
			if e.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HeadSize returns the number of bytes the type occupies in the head of
// an enclosing sequence.
func (t Type) HeadSize() int {
	if t.IsDynamic() {
		return WordSize
	}
	switch t.Kind {
	case KindFixedArray:
		if t.Elem == nil {
			return 0
		}
		es := t.Elem.HeadSize()
		if es > 0 && t.Size > sizeLimit/es {
			return sizeLimit
		}
		return t.Size * es
	case KindTuple:
		sz := 0
		for _, e := range t.Elems {
			if sz += e.HeadSize(); sz > sizeLimit {
				return sizeLimit
			}
		}
		return sz
	default:
		return WordSize
	}
}

// String returns the canonical form used in signatures.
func (t Type) String() string {
	switch t.Kind {
	case KindAddress, KindBool, KindBytes, KindString:
		return t.Kind.String()
	case KindUint:
		return "uint" + strconv.Itoa(t.Size)
	case KindInt:
		return "int" + strconv.Itoa(t.Size)
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.Size)
	case KindArray:
		return elemString(t.Elem) + "[]"
	case KindFixedArray:
		return elemString(t.Elem) + "[" + strconv.Itoa(t.Size) + "]"
	case KindTuple:
		return TypesString(t.Elems)
	default:
		return "unknown"
	}
}

func elemString(t *Type) string {
	if t == nil {
		return "unknown"
	}
	return t.String()
}

// TypesString renders a parenthesized type list, "(address,uint24)".
func TypesString(types []Type) string {
	sb := strings.Builder{}
	sb.WriteByte('(')
	for i, t := range types {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (t Type) Validate() error {
	switch t.Kind {
	case KindAddress, KindBool, KindBytes, KindString:
		return nil
	case KindUint, KindInt:
		return validIntWidth(t.Size)
	case KindFixedBytes:
		if t.Size < 1 || t.Size > WordSize {
			return ErrorCodeInvalidType.Errorf("invalid fixed bytes length:%d", t.Size)
		}
		return nil
	case KindArray, KindFixedArray:
		if t.Elem == nil {
			return ErrorCodeInvalidType.Errorf("%s without element type", t.Kind)
		}
		if t.Kind == KindFixedArray && t.Size < 1 {
			return ErrorCodeInvalidType.Errorf("invalid fixed array length:%d", t.Size)
		}
		return t.Elem.Validate()
	case KindTuple:
		if len(t.Elems) == 0 {
			return ErrorCodeInvalidType.Errorf("empty tuple")
		}
		for _, e := range t.Elems {
			if err := e.Validate(); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrorCodeInvalidType.Errorf("unknown kind:%d", t.Kind)
	}
}

func ValidateTypes(types []Type) error {
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Size != o.Size || len(t.Elems) != len(o.Elems) {
		return false
	}
	if (t.Elem == nil) != (o.Elem == nil) {
		return false
	}
	if t.Elem != nil && !t.Elem.Equal(*o.Elem) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

// IsWord reports whether the type is a value type encoded in exactly one word.
func (t Type) IsWord() bool {
	switch t.Kind {
	case KindAddress, KindBool, KindUint, KindInt, KindFixedBytes:
		return true
	default:
		return false
	}
}

// SequenceHeadSize is the head size of a parameter sequence.
func SequenceHeadSize(types []Type) int {
	sz := 0
	for _, t := range types {
		sz += t.HeadSize()
	}
	return sz
}
