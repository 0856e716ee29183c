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
	"encoding/binary"
	"unicode/utf8"

	"github.com/icon-project/btp2/common/log"
)

var (
	codecLogger = log.New()
)

func init() {
	codecLogger.SetLevel(log.DebugLevel)
}

// Options relaxes decoder validation. The zero value is fully lenient,
// use DefaultOptions for strict decoding.
type Options struct {
	StrictAddressPadding bool `json:"strict_address_padding"`
	StrictBool           bool `json:"strict_bool"`
	StrictUTF8           bool `json:"strict_utf8"`
}

func DefaultOptions() Options {
	return Options{
		StrictAddressPadding: true,
		StrictBool:           true,
		StrictUTF8:           false,
	}
}

type Decoder struct {
	opt Options
}

func NewDecoder(opt Options) *Decoder {
	return &Decoder{opt: opt}
}

func (d *Decoder) Options() Options {
	return d.opt
}

// Decode decodes data as the sequence types with DefaultOptions.
func Decode(types []Type, data []byte) ([]Token, error) {
	return NewDecoder(DefaultOptions()).Decode(types, data)
}

// DecodeWord decodes a single-word value type with DefaultOptions.
func DecodeWord(t Type, w Word) (Token, error) {
	return NewDecoder(DefaultOptions()).DecodeWord(t, w)
}

func (d *Decoder) Decode(types []Type, data []byte) ([]Token, error) {
	if err := ValidateTypes(types); err != nil {
		return nil, err
	}
	return d.decodeSequence(types, data, 0)
}

func (d *Decoder) DecodeWord(t Type, w Word) (Token, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if !t.IsWord() {
		return nil, ErrorCodeInvalidType.Errorf("%s is not a single word type", t)
	}
	return d.decodeValue(t, w)
}

func readWord(data []byte, pos int) (Word, error) {
	var w Word
	if pos < 0 || pos > len(data)-WordSize {
		return w, ErrorCodeTruncated.Errorf("word at %d exceeds data length %d", pos, len(data))
	}
	copy(w[:], data[pos:pos+WordSize])
	return w, nil
}

// readSize reads a uint256 offset or length which must not exceed len(data).
func readSize(data []byte, pos int) (int, error) {
	w, err := readWord(data, pos)
	if err != nil {
		return 0, err
	}
	for _, b := range w[:WordSize-8] {
		if b != 0 {
			return 0, ErrorCodeTruncated.Errorf("size %s at %d exceeds data length %d", w, pos, len(data))
		}
	}
	v := binary.BigEndian.Uint64(w[WordSize-8:])
	if v > uint64(len(data)) {
		return 0, ErrorCodeTruncated.Errorf("size %d at %d exceeds data length %d", v, pos, len(data))
	}
	return int(v), nil
}

// decodeSequence decodes types laid out as head/tail starting at base.
// Offsets in the head are relative to base.
func (d *Decoder) decodeSequence(types []Type, data []byte, base int) ([]Token, error) {
	tokens := make([]Token, len(types))
	pos := base
	for i, t := range types {
		tok, err := d.decodeAt(t, data, base, pos)
		if err != nil {
			return nil, err
		}
		tokens[i] = tok
		pos += t.HeadSize()
	}
	return tokens, nil
}

// decodeRepeated decodes l elements of t laid out as head/tail starting at base.
func (d *Decoder) decodeRepeated(t Type, l int, data []byte, base int) ([]Token, error) {
	hs := t.HeadSize()
	if base > len(data) || uint64(l)*uint64(hs) > uint64(len(data)-base) {
		return nil, ErrorCodeTruncated.Errorf("%d elements of %s at %d exceed data length %d",
			l, t, base, len(data))
	}
	tokens := make([]Token, l)
	pos := base
	for i := 0; i < l; i++ {
		tok, err := d.decodeAt(t, data, base, pos)
		if err != nil {
			return nil, err
		}
		tokens[i] = tok
		pos += hs
	}
	return tokens, nil
}

func (d *Decoder) decodeAt(t Type, data []byte, base, pos int) (Token, error) {
	if !t.IsDynamic() {
		return d.decodeStatic(t, data, pos)
	}
	off, err := readSize(data, pos)
	if err != nil {
		return nil, err
	}
	start := base + off
	codecLogger.Traceln("decode", t.String(), "head:", pos, "base:", base, "offset:", off)
	if start > len(data) {
		return nil, ErrorCodeTruncated.Errorf("offset %d from %d exceeds data length %d", off, base, len(data))
	}
	return d.decodeTail(t, data, start)
}

func (d *Decoder) decodeStatic(t Type, data []byte, pos int) (Token, error) {
	switch t.Kind {
	case KindFixedArray:
		hs := t.Elem.HeadSize()
		if pos < 0 || pos > len(data)-t.HeadSize() {
			return nil, ErrorCodeTruncated.Errorf("%s at %d exceeds data length %d", t, pos, len(data))
		}
		tokens := make(FixedArray, t.Size)
		for i := range tokens {
			tok, err := d.decodeStatic(*t.Elem, data, pos+i*hs)
			if err != nil {
				return nil, err
			}
			tokens[i] = tok
		}
		return tokens, nil
	case KindTuple:
		tokens := make(Tuple, len(t.Elems))
		for i, e := range t.Elems {
			tok, err := d.decodeStatic(e, data, pos)
			if err != nil {
				return nil, err
			}
			tokens[i] = tok
			pos += e.HeadSize()
		}
		return tokens, nil
	default:
		w, err := readWord(data, pos)
		if err != nil {
			return nil, err
		}
		return d.decodeValue(t, w)
	}
}

func (d *Decoder) decodeTail(t Type, data []byte, start int) (Token, error) {
	switch t.Kind {
	case KindBytes, KindString:
		l, err := readSize(data, start)
		if err != nil {
			return nil, err
		}
		begin := start + WordSize
		if l > len(data)-begin {
			return nil, ErrorCodeTruncated.Errorf("%s of length %d at %d exceeds data length %d",
				t, l, begin, len(data))
		}
		b := make([]byte, l)
		copy(b, data[begin:begin+l])
		if t.Kind == KindBytes {
			return Bytes(b), nil
		}
		if d.opt.StrictUTF8 && !utf8.Valid(b) {
			return nil, ErrorCodeMalformed.Errorf("invalid utf-8 string at %d", begin)
		}
		return String(b), nil
	case KindArray:
		l, err := readSize(data, start)
		if err != nil {
			return nil, err
		}
		tokens, err := d.decodeRepeated(*t.Elem, l, data, start+WordSize)
		if err != nil {
			return nil, err
		}
		return Array(tokens), nil
	case KindFixedArray:
		tokens, err := d.decodeRepeated(*t.Elem, t.Size, data, start)
		if err != nil {
			return nil, err
		}
		return FixedArray(tokens), nil
	case KindTuple:
		tokens, err := d.decodeSequence(t.Elems, data, start)
		if err != nil {
			return nil, err
		}
		return Tuple(tokens), nil
	default:
		return nil, ErrorCodeInvalidType.Errorf("%s is not dynamic", t)
	}
}

func (d *Decoder) decodeValue(t Type, w Word) (Token, error) {
	switch t.Kind {
	case KindAddress:
		if d.opt.StrictAddressPadding {
			for _, b := range w[:WordSize-AddressLength] {
				if b != 0 {
					return nil, ErrorCodeMalformed.Errorf("address with dirty padding %s", w)
				}
			}
		}
		return BytesToAddress(w[WordSize-AddressLength:]), nil
	case KindBool:
		var dirty bool
		for _, b := range w[:WordSize-1] {
			if b != 0 {
				dirty = true
				break
			}
		}
		last := w[WordSize-1]
		if d.opt.StrictBool {
			if dirty || last > 1 {
				return nil, ErrorCodeMalformed.Errorf("invalid bool %s", w)
			}
			return Bool(last == 1), nil
		}
		return Bool(dirty || last != 0), nil
	case KindUint:
		v, err := UintFromWord(w, t.Size)
		if err != nil {
			return nil, err
		}
		return Uint{Size: t.Size, Value: v}, nil
	case KindInt:
		v, err := IntFromWord(w, t.Size)
		if err != nil {
			return nil, err
		}
		return Int{Size: t.Size, Value: v}, nil
	case KindFixedBytes:
		b := make([]byte, t.Size)
		copy(b, w[:t.Size])
		return FixedBytes(b), nil
	default:
		return nil, ErrorCodeInvalidType.Errorf("%s is not a single word type", t)
	}
}
