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
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/icon-project/btp2/common/intconv"
)

const (
	AddressLength = 20
)

// Token is a decoded value. Integer tokens carry their bit width so that a
// token list can be encoded without the type descriptors.
type Token interface {
	Kind() Kind
	IsDynamic() bool
	String() string
}

type Address [AddressLength]byte

func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

func (a Address) Kind() Kind      { return KindAddress }
func (a Address) IsDynamic() bool { return false }
func (a Address) String() string  { return "0x" + hex.EncodeToString(a[:]) }

type Bool bool

func (b Bool) Kind() Kind      { return KindBool }
func (b Bool) IsDynamic() bool { return false }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

type Uint struct {
	Size  int
	Value *big.Int
}

func NewUint(size int, v *big.Int) Uint {
	return Uint{Size: size, Value: v}
}

func NewUint64(size int, v uint64) Uint {
	return Uint{Size: size, Value: new(big.Int).SetUint64(v)}
}

func (u Uint) Kind() Kind      { return KindUint }
func (u Uint) IsDynamic() bool { return false }
func (u Uint) String() string  { return intString(u.Value) }

type Int struct {
	Size  int
	Value *big.Int
}

func NewInt(size int, v *big.Int) Int {
	return Int{Size: size, Value: v}
}

func NewInt64(size int, v int64) Int {
	return Int{Size: size, Value: big.NewInt(v)}
}

func (i Int) Kind() Kind      { return KindInt }
func (i Int) IsDynamic() bool { return false }
func (i Int) String() string  { return intString(i.Value) }

func intString(v *big.Int) string {
	if v == nil {
		return "<nil>"
	}
	return intconv.FormatBigInt(v)
}

// FixedBytes holds K bytes, 1 <= K <= 32.
type FixedBytes []byte

func (b FixedBytes) Kind() Kind      { return KindFixedBytes }
func (b FixedBytes) IsDynamic() bool { return false }
func (b FixedBytes) String() string  { return "0x" + hex.EncodeToString(b) }

type Bytes []byte

func (b Bytes) Kind() Kind      { return KindBytes }
func (b Bytes) IsDynamic() bool { return true }
func (b Bytes) String() string  { return "0x" + hex.EncodeToString(b) }

// String is byte-transparent; it may hold invalid UTF-8.
type String string

func (s String) Kind() Kind      { return KindString }
func (s String) IsDynamic() bool { return true }
func (s String) String() string  { return fmt.Sprintf("%q", string(s)) }

type Array []Token

func (a Array) Kind() Kind      { return KindArray }
func (a Array) IsDynamic() bool { return true }
func (a Array) String() string  { return listString("[", a, "]") }

type FixedArray []Token

func (a FixedArray) Kind() Kind      { return KindFixedArray }
func (a FixedArray) IsDynamic() bool { return anyDynamic(a) }
func (a FixedArray) String() string  { return listString("[", a, "]") }

type Tuple []Token

func (t Tuple) Kind() Kind      { return KindTuple }
func (t Tuple) IsDynamic() bool { return anyDynamic(t) }
func (t Tuple) String() string  { return listString("(", t, ")") }

func anyDynamic(tokens []Token) bool {
	for _, tok := range tokens {
		if tok != nil && tok.IsDynamic() {
			return true
		}
	}
	return false
}

func listString(open string, tokens []Token, closing string) string {
	sb := strings.Builder{}
	sb.WriteString(open)
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteByte(',')
		}
		if tok == nil {
			sb.WriteString("<nil>")
			continue
		}
		sb.WriteString(tok.String())
	}
	sb.WriteString(closing)
	return sb.String()
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

// Equal reports structural equality of two tokens.
func Equal(a, b Token) bool {
	switch x := a.(type) {
	case Address:
		y, ok := b.(Address)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Uint:
		y, ok := b.(Uint)
		return ok && x.Size == y.Size && bigEqual(x.Value, y.Value)
	case Int:
		y, ok := b.(Int)
		return ok && x.Size == y.Size && bigEqual(x.Value, y.Value)
	case FixedBytes:
		y, ok := b.(FixedBytes)
		return ok && bytes.Equal(x, y)
	case Bytes:
		y, ok := b.(Bytes)
		return ok && bytes.Equal(x, y)
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		return ok && EqualTokens(x, y)
	case FixedArray:
		y, ok := b.(FixedArray)
		return ok && EqualTokens(x, y)
	case Tuple:
		y, ok := b.(Tuple)
		return ok && EqualTokens(x, y)
	default:
		return false
	}
}

func EqualTokens(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Conforms checks that tok has the shape described by t.
func Conforms(t Type, tok Token) error {
	if tok == nil {
		return ErrorCodeInvalidType.Errorf("nil token for %s", t)
	}
	mismatch := func() error {
		return ErrorCodeInvalidType.Errorf("token %s does not conform to %s", tok, t)
	}
	switch t.Kind {
	case KindAddress, KindBool, KindBytes, KindString:
		if tok.Kind() != t.Kind {
			return mismatch()
		}
	case KindUint:
		if v, ok := tok.(Uint); !ok || v.Size != t.Size {
			return mismatch()
		}
	case KindInt:
		if v, ok := tok.(Int); !ok || v.Size != t.Size {
			return mismatch()
		}
	case KindFixedBytes:
		if v, ok := tok.(FixedBytes); !ok || len(v) != t.Size {
			return mismatch()
		}
	case KindArray:
		v, ok := tok.(Array)
		if !ok {
			return mismatch()
		}
		for _, e := range v {
			if err := Conforms(*t.Elem, e); err != nil {
				return err
			}
		}
	case KindFixedArray:
		v, ok := tok.(FixedArray)
		if !ok || len(v) != t.Size {
			return mismatch()
		}
		for _, e := range v {
			if err := Conforms(*t.Elem, e); err != nil {
				return err
			}
		}
	case KindTuple:
		v, ok := tok.(Tuple)
		if !ok || len(v) != len(t.Elems) {
			return mismatch()
		}
		for i, e := range v {
			if err := Conforms(t.Elems[i], e); err != nil {
				return err
			}
		}
	default:
		return ErrorCodeInvalidType.Errorf("unknown kind:%d", t.Kind)
	}
	return nil
}

// TypeOf returns the type shape of tok. The element type of an array is
// taken from its first element, so an empty Array is InvalidType.
func TypeOf(tok Token) (Type, error) {
	switch v := tok.(type) {
	case Address:
		return AddressType(), nil
	case Bool:
		return BoolType(), nil
	case Uint:
		return UintType(v.Size), nil
	case Int:
		return IntType(v.Size), nil
	case FixedBytes:
		return FixedBytesType(len(v)), nil
	case Bytes:
		return BytesType(), nil
	case String:
		return StringType(), nil
	case Array:
		if len(v) == 0 {
			return Type{}, ErrorCodeInvalidType.Errorf("element type of empty array")
		}
		et, err := TypeOf(v[0])
		if err != nil {
			return Type{}, err
		}
		return ArrayType(et), nil
	case FixedArray:
		if len(v) == 0 {
			return Type{}, ErrorCodeInvalidType.Errorf("element type of empty fixed array")
		}
		et, err := TypeOf(v[0])
		if err != nil {
			return Type{}, err
		}
		return FixedArrayType(et, len(v)), nil
	case Tuple:
		elems := make([]Type, len(v))
		for i, e := range v {
			et, err := TypeOf(e)
			if err != nil {
				return Type{}, err
			}
			elems[i] = et
		}
		return TupleType(elems...), nil
	default:
		return Type{}, ErrorCodeInvalidType.Errorf("unknown token %T", tok)
	}
}
