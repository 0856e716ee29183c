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
	"encoding/json"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/intconv"
	"github.com/icon-project/btp2/common/log"

	"github.com/icon-project/abi-sdk/abi"
)

var (
	tokenType     = reflect.TypeOf((*abi.Token)(nil)).Elem()
	bigIntType    = reflect.TypeOf(big.Int{})
	bigIntPtrType = reflect.TypeOf(&big.Int{})
)

func MustAddressOf(value interface{}) common.Address {
	ret, err := AddressOf(value)
	if err != nil {
		log.Panicf("fail to AddressOf err:%v", err)
	}
	return ret
}

func AddressOf(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v == nil {
			return common.Address{}, ErrorCodeInvalidParam.Errorf("nil address")
		}
		return *v, nil
	case abi.Address:
		return common.Address(v), nil
	case [common.AddressLength]byte:
		return v, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, ErrorCodeInvalidParam.Errorf("invalid hex address %q", v)
		}
		return common.HexToAddress(v), nil
	case []byte:
		if len(v) != common.AddressLength {
			return common.Address{}, ErrorCodeInvalidParam.Errorf("invalid address length:%d", len(v))
		}
		return common.BytesToAddress(v), nil
	default:
		return common.Address{}, ErrorCodeInvalidParam.Errorf("invalid type %T for address", value)
	}
}

func MustBigIntOf(value interface{}) *big.Int {
	ret, err := BigIntOf(value)
	if err != nil {
		log.Panicf("fail to BigIntOf err:%v", err)
	}
	return ret
}

func BigIntOf(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, ErrorCodeInvalidParam.Errorf("nil integer")
		}
		return v, nil
	case big.Int:
		return &v, nil
	case abi.Uint:
		return v.Value, nil
	case abi.Int:
		return v.Value, nil
	case json.Number:
		return parseBigInt(string(v))
	case string:
		return parseBigInt(v)
	case []byte:
		return intconv.BigIntSetBytes(new(big.Int), v), nil
	default:
		rv := reflect.ValueOf(value)
		if rv.CanInt() {
			return big.NewInt(rv.Int()), nil
		} else if rv.CanUint() {
			return new(big.Int).SetUint64(rv.Uint()), nil
		}
		return nil, ErrorCodeInvalidParam.Errorf("invalid type %T for integer", value)
	}
}

// parseBigInt accepts decimal and 0x prefixed hex, with an optional sign.
func parseBigInt(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok {
		return nil, ErrorCodeInvalidParam.Errorf("invalid integer %q", s)
	}
	return v, nil
}

func BoolOf(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case abi.Bool:
		return bool(v), nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, ErrorCodeInvalidParam.Wrapf(err, "invalid bool %q", v)
		}
		return b, nil
	default:
		return false, ErrorCodeInvalidParam.Errorf("invalid type %T for bool", value)
	}
}

func StringOf(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
		return "", ErrorCodeInvalidParam.Errorf("invalid type %T for string", value)
	}
}

func MustBytesOf(value interface{}) []byte {
	ret, err := BytesOf(value)
	if err != nil {
		log.Panicf("fail to BytesOf err:%v", err)
	}
	return ret
}

// BytesOf accepts byte slices, byte arrays and 0x prefixed hex strings.
func BytesOf(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		b, err := hexutil.Decode(v)
		if err != nil {
			return nil, ErrorCodeInvalidParam.Wrapf(err, "invalid hex bytes %q", v)
		}
		return b, nil
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice:
			if rv.Type().Elem().Kind() == reflect.Uint8 {
				return rv.Bytes(), nil
			}
		case reflect.Array:
			if rv.Type().Elem().Kind() == reflect.Uint8 {
				b := make([]byte, rv.Len())
				for i := range b {
					b[i] = byte(rv.Index(i).Uint())
				}
				return b, nil
			}
		}
		return nil, ErrorCodeInvalidParam.Errorf("invalid type %T for bytes", value)
	}
}

func MustTokenOf(t abi.Type, value interface{}) abi.Token {
	ret, err := TokenOf(t, value)
	if err != nil {
		log.Panicf("fail to TokenOf err:%v", err)
	}
	return ret
}

// TokenOf converts a Go value into a token of type t.
func TokenOf(t abi.Type, value interface{}) (abi.Token, error) {
	if rv, ok := value.(reflect.Value); ok {
		value = rv.Interface()
	}
	if tok, ok := value.(abi.Token); ok && tok.Kind() == t.Kind {
		if err := abi.Conforms(t, tok); err != nil {
			return nil, err
		}
		return tok, nil
	}
	switch t.Kind {
	case abi.KindAddress:
		v, err := AddressOf(value)
		if err != nil {
			return nil, err
		}
		return abi.Address(v), nil
	case abi.KindBool:
		v, err := BoolOf(value)
		if err != nil {
			return nil, err
		}
		return abi.Bool(v), nil
	case abi.KindUint, abi.KindInt:
		v, err := BigIntOf(value)
		if err != nil {
			return nil, err
		}
		if t.Kind == abi.KindUint {
			if _, err = abi.WordFromUint(v, t.Size); err != nil {
				return nil, err
			}
			return abi.Uint{Size: t.Size, Value: v}, nil
		}
		if _, err = abi.WordFromInt(v, t.Size); err != nil {
			return nil, err
		}
		return abi.Int{Size: t.Size, Value: v}, nil
	case abi.KindFixedBytes:
		v, err := BytesOf(value)
		if err != nil {
			return nil, err
		}
		if len(v) != t.Size {
			return nil, ErrorCodeInvalidParam.Errorf("invalid length %d for %s", len(v), t)
		}
		return abi.FixedBytes(common.CopyBytes(v)), nil
	case abi.KindBytes:
		v, err := BytesOf(value)
		if err != nil {
			return nil, err
		}
		return abi.Bytes(v), nil
	case abi.KindString:
		v, err := StringOf(value)
		if err != nil {
			return nil, err
		}
		return abi.String(v), nil
	case abi.KindArray, abi.KindFixedArray:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, ErrorCodeInvalidParam.Errorf("invalid type %T for %s", value, t)
		}
		if t.Kind == abi.KindFixedArray && rv.Len() != t.Size {
			return nil, ErrorCodeInvalidParam.Errorf("invalid length %d for %s", rv.Len(), t)
		}
		tokens := make([]abi.Token, rv.Len())
		for i := range tokens {
			tok, err := TokenOf(*t.Elem, rv.Index(i).Interface())
			if err != nil {
				return nil, errors.Wrapf(err, "fail to TokenOf [%d] err:%s", i, err.Error())
			}
			tokens[i] = tok
		}
		if t.Kind == abi.KindArray {
			return abi.Array(tokens), nil
		}
		return abi.FixedArray(tokens), nil
	case abi.KindTuple:
		tokens, err := TokensOf(t.Elems, value)
		if err != nil {
			return nil, err
		}
		return abi.Tuple(tokens), nil
	default:
		return nil, abi.ErrorCodeInvalidType.Errorf("unknown kind:%d", t.Kind)
	}
}

func exportedFields(rt reflect.Type) []int {
	fields := make([]int, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() {
			fields = append(fields, i)
		}
	}
	return fields
}

func isValueStruct(rt reflect.Type) bool {
	return rt.Kind() == reflect.Struct && rt != bigIntType
}

// TokensOf converts a Go value into tokens of types. value is a struct whose
// exported fields map to types in order, a []interface{} of the same length,
// or a single value when there is only one type.
func TokensOf(types []abi.Type, value interface{}) ([]abi.Token, error) {
	if value == nil {
		if len(types) == 0 {
			return []abi.Token{}, nil
		}
		return nil, ErrorCodeInvalidParam.Errorf("nil value for %s", abi.TypesString(types))
	}
	if tokens, ok := value.([]abi.Token); ok {
		value = tokensToInterfaces(tokens)
	}
	rv := reflect.Indirect(reflect.ValueOf(value))
	if !rv.IsValid() {
		return nil, ErrorCodeInvalidParam.Errorf("nil %T for %s", value, abi.TypesString(types))
	}
	switch {
	case isValueStruct(rv.Type()):
		fields := exportedFields(rv.Type())
		if len(fields) == len(types) {
			tokens := make([]abi.Token, len(types))
			for i, f := range fields {
				tok, err := TokenOf(types[i], rv.Field(f).Interface())
				if err != nil {
					return nil, errors.Wrapf(err, "fail to TokenOf field %s err:%s",
						rv.Type().Field(f).Name, err.Error())
				}
				tokens[i] = tok
			}
			return tokens, nil
		}
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Interface:
		if rv.Len() == len(types) {
			tokens := make([]abi.Token, len(types))
			for i := range tokens {
				tok, err := TokenOf(types[i], rv.Index(i).Interface())
				if err != nil {
					return nil, errors.Wrapf(err, "fail to TokenOf [%d] err:%s", i, err.Error())
				}
				tokens[i] = tok
			}
			return tokens, nil
		}
	}
	if len(types) == 1 {
		tok, err := TokenOf(types[0], value)
		if err != nil {
			return nil, err
		}
		return []abi.Token{tok}, nil
	}
	return nil, ErrorCodeInvalidParam.Errorf("invalid type %T for %s", value, abi.TypesString(types))
}

func tokensToInterfaces(tokens []abi.Token) []interface{} {
	ret := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		ret[i] = tok
	}
	return ret
}

// Unpack assigns tokens to out, a pointer to a struct whose exported fields
// receive tokens in order, or to a single value when there is one token.
func Unpack(tokens []abi.Token, out interface{}) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrorCodeInvalidParam.Errorf("invalid out %T, requires non-nil pointer", out)
	}
	ev := rv.Elem()
	if ev.Kind() == reflect.Ptr && ev.Type() != bigIntPtrType {
		if ev.IsNil() {
			ev.Set(reflect.New(ev.Type().Elem()))
		}
		return Unpack(tokens, ev.Interface())
	}
	if isValueStruct(ev.Type()) {
		if fields := exportedFields(ev.Type()); len(fields) == len(tokens) {
			for i, f := range fields {
				if err := assign(tokens[i], ev.Field(f)); err != nil {
					return errors.Wrapf(err, "fail to assign field %s err:%s",
						ev.Type().Field(f).Name, err.Error())
				}
			}
			return nil
		}
	}
	if ev.Kind() == reflect.Slice && (ev.Type().Elem() == tokenType || ev.Type().Elem().Kind() == reflect.Interface) {
		return assign(abi.Tuple(tokens), ev)
	}
	if len(tokens) == 1 {
		return assign(tokens[0], ev)
	}
	return ErrorCodeInvalidParam.Errorf("cannot unpack %d tokens into %T", len(tokens), out)
}

// NativeOf returns the natural Go value of tok.
func NativeOf(tok abi.Token) interface{} {
	switch v := tok.(type) {
	case abi.Address:
		return common.Address(v)
	case abi.Bool:
		return bool(v)
	case abi.Uint:
		return v.Value
	case abi.Int:
		return v.Value
	case abi.FixedBytes:
		return []byte(v)
	case abi.Bytes:
		return []byte(v)
	case abi.String:
		return string(v)
	case abi.Array:
		return nativeList(v)
	case abi.FixedArray:
		return nativeList(v)
	case abi.Tuple:
		return nativeList(v)
	default:
		return nil
	}
}

func nativeList(tokens []abi.Token) []interface{} {
	ret := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		ret[i] = NativeOf(tok)
	}
	return ret
}

func listOf(tok abi.Token) ([]abi.Token, bool) {
	switch v := tok.(type) {
	case abi.Array:
		return v, true
	case abi.FixedArray:
		return v, true
	case abi.Tuple:
		return v, true
	default:
		return nil, false
	}
}

func assign(tok abi.Token, dst reflect.Value) error {
	if !dst.CanSet() {
		return ErrorCodeInvalidParam.Errorf("cannot set %s", dst.Type())
	}
	if tok == nil {
		return ErrorCodeInvalidParam.Errorf("nil token for %s", dst.Type())
	}
	dt := dst.Type()
	if dt == tokenType {
		dst.Set(reflect.ValueOf(tok))
		return nil
	}
	if dt.Kind() == reflect.Interface && dt.NumMethod() == 0 {
		dst.Set(reflect.ValueOf(NativeOf(tok)))
		return nil
	}
	if dt.Kind() == reflect.Ptr && dt != bigIntPtrType {
		if dst.IsNil() {
			dst.Set(reflect.New(dt.Elem()))
		}
		return assign(tok, dst.Elem())
	}
	mismatch := func() error {
		return ErrorCodeInvalidParam.Errorf("cannot assign %s to %s", tok, dt)
	}
	switch v := tok.(type) {
	case abi.Address:
		rv := reflect.ValueOf(v)
		if rv.Type().ConvertibleTo(dt) && dt.Kind() == reflect.Array {
			dst.Set(rv.Convert(dt))
			return nil
		}
		if dt.Kind() == reflect.String {
			dst.SetString(common.Address(v).Hex())
			return nil
		}
		return mismatch()
	case abi.Bool:
		if dt.Kind() != reflect.Bool {
			return mismatch()
		}
		dst.SetBool(bool(v))
		return nil
	case abi.Uint:
		return assignInteger(v.Value, dst, mismatch)
	case abi.Int:
		return assignInteger(v.Value, dst, mismatch)
	case abi.FixedBytes:
		return assignBytes(v, dst, mismatch)
	case abi.Bytes:
		return assignBytes(v, dst, mismatch)
	case abi.String:
		switch {
		case dt.Kind() == reflect.String:
			dst.SetString(string(v))
		case dt.Kind() == reflect.Slice && dt.Elem().Kind() == reflect.Uint8:
			dst.SetBytes([]byte(v))
		default:
			return mismatch()
		}
		return nil
	}
	list, ok := listOf(tok)
	if !ok {
		return mismatch()
	}
	switch dt.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(dt, len(list), len(list))
		for i, e := range list {
			if err := assign(e, s.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(s)
		return nil
	case reflect.Array:
		if dt.Len() != len(list) {
			return mismatch()
		}
		for i, e := range list {
			if err := assign(e, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		fields := exportedFields(dt)
		if len(fields) != len(list) {
			return mismatch()
		}
		for i, f := range fields {
			if err := assign(list[i], dst.Field(f)); err != nil {
				return errors.Wrapf(err, "fail to assign field %s err:%s", dt.Field(f).Name, err.Error())
			}
		}
		return nil
	default:
		return mismatch()
	}
}

func assignInteger(v *big.Int, dst reflect.Value, mismatch func() error) error {
	if v == nil {
		return mismatch()
	}
	dt := dst.Type()
	switch {
	case dt == bigIntPtrType:
		dst.Set(reflect.ValueOf(new(big.Int).Set(v)))
	case dt == bigIntType:
		dst.Set(reflect.ValueOf(new(big.Int).Set(v)).Elem())
	case dst.CanInt():
		if !v.IsInt64() || dst.OverflowInt(v.Int64()) {
			return abi.ErrorCodeOutOfRange.Errorf("%s overflows %s", v, dt)
		}
		dst.SetInt(v.Int64())
	case dst.CanUint():
		if !v.IsUint64() || dst.OverflowUint(v.Uint64()) {
			return abi.ErrorCodeOutOfRange.Errorf("%s overflows %s", v, dt)
		}
		dst.SetUint(v.Uint64())
	case dt.Kind() == reflect.String:
		dst.SetString(v.String())
	default:
		return mismatch()
	}
	return nil
}

func assignBytes(b []byte, dst reflect.Value, mismatch func() error) error {
	dt := dst.Type()
	switch {
	case dt.Kind() == reflect.Slice && dt.Elem().Kind() == reflect.Uint8:
		dst.SetBytes(common.CopyBytes(b))
	case dt.Kind() == reflect.Array && dt.Elem().Kind() == reflect.Uint8:
		if dt.Len() != len(b) {
			return mismatch()
		}
		for i := range b {
			dst.Index(i).SetUint(uint64(b[i]))
		}
	case dt.Kind() == reflect.String:
		dst.SetString(hexutil.Encode(b))
	default:
		return mismatch()
	}
	return nil
}
