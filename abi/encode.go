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
	"math/big"

	"github.com/icon-project/btp2/common/log"
)

// Encode encodes tokens as a head/tail sequence.
func Encode(tokens []Token) ([]byte, error) {
	return encodeSequence(tokens)
}

// Pack checks that tokens conform to types, then encodes them.
func Pack(types []Type, tokens []Token) ([]byte, error) {
	if len(types) != len(tokens) {
		return nil, ErrorCodeInvalidType.Errorf("token count mismatch expected:%d actual:%d",
			len(types), len(tokens))
	}
	if err := ValidateTypes(types); err != nil {
		return nil, err
	}
	for i, t := range types {
		if err := Conforms(t, tokens[i]); err != nil {
			return nil, err
		}
	}
	return encodeSequence(tokens)
}

func MustEncode(tokens []Token) []byte {
	b, err := Encode(tokens)
	if err != nil {
		log.Panicf("fail to Encode err:%v", err)
	}
	return b
}

func tokenHeadSize(tok Token) int {
	if tok == nil || tok.IsDynamic() {
		return WordSize
	}
	switch v := tok.(type) {
	case FixedArray:
		return tokensHeadSize(v)
	case Tuple:
		return tokensHeadSize(v)
	default:
		return WordSize
	}
}

func tokensHeadSize(tokens []Token) int {
	sz := 0
	for _, tok := range tokens {
		sz += tokenHeadSize(tok)
	}
	return sz
}

// encodeSequence writes the head of tokens followed by their tails.
// Offsets are measured from the start of the returned buffer.
func encodeSequence(tokens []Token) ([]byte, error) {
	headSize := tokensHeadSize(tokens)
	head := make([]byte, 0, headSize)
	var tail []byte
	for _, tok := range tokens {
		if tok == nil {
			return nil, ErrorCodeInvalidType.Errorf("nil token")
		}
		if !tok.IsDynamic() {
			b, err := encodeStatic(tok)
			if err != nil {
				return nil, err
			}
			head = append(head, b...)
			continue
		}
		off, _ := WordFromUint(big.NewInt(int64(headSize+len(tail))), MaxIntWidth)
		head = append(head, off[:]...)
		b, err := encodeTail(tok)
		if err != nil {
			return nil, err
		}
		tail = append(tail, b...)
	}
	return append(head, tail...), nil
}

func encodeStatic(tok Token) ([]byte, error) {
	switch v := tok.(type) {
	case FixedArray:
		return encodeStaticList(v)
	case Tuple:
		return encodeStaticList(v)
	default:
		w, err := encodeValue(tok)
		if err != nil {
			return nil, err
		}
		return w[:], nil
	}
}

func encodeStaticList(tokens []Token) ([]byte, error) {
	b := make([]byte, 0, tokensHeadSize(tokens))
	for _, tok := range tokens {
		if tok == nil {
			return nil, ErrorCodeInvalidType.Errorf("nil token")
		}
		eb, err := encodeStatic(tok)
		if err != nil {
			return nil, err
		}
		b = append(b, eb...)
	}
	return b, nil
}

func encodeTail(tok Token) ([]byte, error) {
	switch v := tok.(type) {
	case Bytes:
		return encodeLengthPrefixed(v), nil
	case String:
		return encodeLengthPrefixed([]byte(v)), nil
	case Array:
		b, err := encodeSequence(v)
		if err != nil {
			return nil, err
		}
		l := lengthWord(len(v))
		return append(l[:], b...), nil
	case FixedArray:
		return encodeSequence(v)
	case Tuple:
		return encodeSequence(v)
	default:
		return nil, ErrorCodeInvalidType.Errorf("%T is not dynamic", tok)
	}
}

func lengthWord(l int) Word {
	w, _ := WordFromUint(big.NewInt(int64(l)), MaxIntWidth)
	return w
}

func encodeLengthPrefixed(b []byte) []byte {
	padded := (len(b) + WordSize - 1) / WordSize * WordSize
	l := lengthWord(len(b))
	ret := make([]byte, WordSize+padded)
	copy(ret, l[:])
	copy(ret[WordSize:], b)
	return ret
}

func encodeValue(tok Token) (Word, error) {
	var w Word
	switch v := tok.(type) {
	case Address:
		copy(w[WordSize-AddressLength:], v[:])
		return w, nil
	case Bool:
		if v {
			w[WordSize-1] = 1
		}
		return w, nil
	case Uint:
		return WordFromUint(v.Value, v.Size)
	case Int:
		return WordFromInt(v.Value, v.Size)
	case FixedBytes:
		if len(v) < 1 || len(v) > WordSize {
			return w, ErrorCodeInvalidType.Errorf("invalid fixed bytes length:%d", len(v))
		}
		copy(w[:], v)
		return w, nil
	default:
		return w, ErrorCodeInvalidType.Errorf("%T is not a single word token", tok)
	}
}

// EncodeWord encodes a single-word value token, as used for event topics.
func EncodeWord(tok Token) (Word, error) {
	return encodeValue(tok)
}
