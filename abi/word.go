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
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

const (
	WordSize    = 32
	MaxIntWidth = 256
)

var (
	tt256 = math.BigPow(2, MaxIntWidth)
)

// Word is the 32-byte unit of the wire format.
type Word [WordSize]byte

func (w Word) Bytes() []byte {
	return w[:]
}

func (w Word) String() string {
	return "0x" + hex.EncodeToString(w[:])
}

func BytesToWord(b []byte) Word {
	var w Word
	if len(b) > WordSize {
		b = b[len(b)-WordSize:]
	}
	copy(w[WordSize-len(b):], b)
	return w
}

func validIntWidth(n int) error {
	if n < 8 || n > MaxIntWidth || n%8 != 0 {
		return ErrorCodeInvalidType.Errorf("invalid integer width:%d", n)
	}
	return nil
}

// inIntRange reports whether v fits into n-bit two's complement.
func inIntRange(v *big.Int, n int) bool {
	if v.Sign() >= 0 {
		return v.BitLen() <= n-1
	}
	// v >= -2^(n-1)  <=>  -v-1 < 2^(n-1)
	t := new(big.Int).Neg(v)
	t.Sub(t, big.NewInt(1))
	return t.BitLen() <= n-1
}

func WordFromUint(v *big.Int, n int) (Word, error) {
	var w Word
	if err := validIntWidth(n); err != nil {
		return w, err
	}
	if v == nil {
		return w, ErrorCodeOutOfRange.Errorf("nil value for uint%d", n)
	}
	if v.Sign() < 0 || v.BitLen() > n {
		return w, ErrorCodeOutOfRange.Errorf("value %s out of range for uint%d", v.String(), n)
	}
	copy(w[:], math.PaddedBigBytes(v, WordSize))
	return w, nil
}

func WordFromInt(v *big.Int, n int) (Word, error) {
	var w Word
	if err := validIntWidth(n); err != nil {
		return w, err
	}
	if v == nil {
		return w, ErrorCodeOutOfRange.Errorf("nil value for int%d", n)
	}
	if !inIntRange(v, n) {
		return w, ErrorCodeOutOfRange.Errorf("value %s out of range for int%d", v.String(), n)
	}
	if v.Sign() < 0 {
		copy(w[:], math.PaddedBigBytes(new(big.Int).Add(v, tt256), WordSize))
	} else {
		copy(w[:], math.PaddedBigBytes(v, WordSize))
	}
	return w, nil
}

func UintFromWord(w Word, n int) (*big.Int, error) {
	if err := validIntWidth(n); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(w[:])
	if v.BitLen() > n {
		return nil, ErrorCodeOutOfRange.Errorf("word %s out of range for uint%d", w, n)
	}
	return v, nil
}

// IntFromWord reads w as 256-bit two's complement. Bits above n-1 must be
// the sign extension of bit n-1.
func IntFromWord(w Word, n int) (*big.Int, error) {
	if err := validIntWidth(n); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(w[:])
	if w[0]&0x80 != 0 {
		v.Sub(v, tt256)
	}
	if !inIntRange(v, n) {
		return nil, ErrorCodeOutOfRange.Errorf("word %s out of range for int%d", w, n)
	}
	return v, nil
}
