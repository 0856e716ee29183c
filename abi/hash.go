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
	"golang.org/x/crypto/sha3"
)

const (
	SelectorLength = 4
)

func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Signature renders the canonical signature name(type,type,...).
func Signature(name string, types []Type) string {
	return name + TypesString(types)
}

// Selector returns the first 4 bytes of the Keccak-256 hash of signature.
func Selector(signature string) [SelectorLength]byte {
	var s [SelectorLength]byte
	copy(s[:], Keccak256([]byte(signature)))
	return s
}

// Topic returns the Keccak-256 hash of signature, the topic0 of an event.
func Topic(signature string) Word {
	var w Word
	copy(w[:], Keccak256([]byte(signature)))
	return w
}
