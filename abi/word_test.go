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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pow2(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

func Test_WordFromIntSignExtension(t *testing.T) {
	for n := 8; n <= MaxIntWidth; n += 8 {
		min := new(big.Int).Neg(pow2(n - 1))
		max := new(big.Int).Sub(pow2(n-1), big.NewInt(1))
		for _, v := range []*big.Int{big.NewInt(-1), big.NewInt(0), big.NewInt(1), min, max} {
			w, err := WordFromInt(v, n)
			if !assert.NoError(t, err, "n:%d v:%s", n, v) {
				continue
			}
			pad := byte(0x00)
			if v.Sign() < 0 {
				pad = 0xff
			}
			top := WordSize - n/8
			assert.Equal(t, bytes.Repeat([]byte{pad}, top), w[:top], "n:%d v:%s", n, v)

			r, err := IntFromWord(w, n)
			assert.NoError(t, err)
			assert.Equal(t, 0, v.Cmp(r), "n:%d expected:%s actual:%s", n, v, r)
		}
	}
}

func Test_WordFromIntRange(t *testing.T) {
	w, err := WordFromInt(big.NewInt(-1), 24)
	assert.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xff}, WordSize), w[:])

	_, err = WordFromInt(pow2(23), 24)
	assert.True(t, ErrorCodeOutOfRange.Equals(err), "%+v", err)

	_, err = WordFromInt(new(big.Int).Neg(new(big.Int).Add(pow2(23), big.NewInt(1))), 24)
	assert.True(t, ErrorCodeOutOfRange.Equals(err), "%+v", err)

	_, err = WordFromInt(nil, 24)
	assert.True(t, ErrorCodeOutOfRange.Equals(err), "%+v", err)
}

func Test_WordFromUintRange(t *testing.T) {
	for n := 8; n <= MaxIntWidth; n += 8 {
		max := new(big.Int).Sub(pow2(n), big.NewInt(1))
		w, err := WordFromUint(max, n)
		assert.NoError(t, err)
		r, err := UintFromWord(w, n)
		assert.NoError(t, err)
		assert.Equal(t, 0, max.Cmp(r))

		_, err = WordFromUint(pow2(n), n)
		assert.True(t, ErrorCodeOutOfRange.Equals(err), "n:%d %+v", n, err)
	}
	_, err := WordFromUint(big.NewInt(-1), 8)
	assert.True(t, ErrorCodeOutOfRange.Equals(err), "%+v", err)
}

func Test_UintFromWordOutOfRange(t *testing.T) {
	w := BytesToWord([]byte{0x01, 0x00})
	_, err := UintFromWord(w, 8)
	assert.True(t, ErrorCodeOutOfRange.Equals(err), "%+v", err)

	v, err := UintFromWord(w, 16)
	assert.NoError(t, err)
	assert.Equal(t, int64(256), v.Int64())
}

func Test_IntFromWordRequiresSignExtension(t *testing.T) {
	// bit 23 set without sign extension
	w := BytesToWord([]byte{0x80, 0x00, 0x00})
	_, err := IntFromWord(w, 24)
	assert.True(t, ErrorCodeOutOfRange.Equals(err), "%+v", err)

	v, err := IntFromWord(w, 32)
	assert.NoError(t, err)
	assert.Equal(t, int64(0x800000), v.Int64())

	// 0xff..ff7fffff is -8388609, outside int24
	var n Word
	for i := range n {
		n[i] = 0xff
	}
	n[WordSize-3] = 0x7f
	_, err = IntFromWord(n, 24)
	assert.True(t, ErrorCodeOutOfRange.Equals(err), "%+v", err)
}

func Test_InvalidIntWidth(t *testing.T) {
	for _, n := range []int{0, 7, 12, 264} {
		_, err := WordFromUint(big.NewInt(1), n)
		assert.True(t, ErrorCodeInvalidType.Equals(err), "n:%d %+v", n, err)
		_, err = IntFromWord(Word{}, n)
		assert.True(t, ErrorCodeInvalidType.Equals(err), "n:%d %+v", n, err)
	}
}
