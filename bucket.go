// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chainmap

import (
	"fmt"
	"strings"
)

// bucket holds every entry whose key reduces to the bucket's index.
type bucket[K comparable, V any] struct {
	chain Chain[K, V]
}

func (b *bucket[K, V]) get(key K) (V, bool) {
	return b.chain.Find(key)
}

func (b *bucket[K, V]) getPtr(key K) *V {
	return b.chain.FindPtr(key)
}

// append adds a new entry to the bucket. The caller must have already
// verified that key is not present; violating this leaves a duplicate key
// in the chain.
func (b *bucket[K, V]) append(key K, value V) {
	b.chain = b.chain.Prepend(key, value)
}

func (b *bucket[K, V]) checkInvariants(m *Map[K, V], index int) {
	if invariants {
		b.verify(m, index)
	}
}

// verify panics if the bucket holds a key more than once, holds a key that
// hashes to a different bucket, or has a chain longer than the map.
func (b *bucket[K, V]) verify(m *Map[K, V], index int) {
	seen := make(map[K]struct{})
	var used int
	for n := b.chain.head; n != nil; n = n.next {
		if _, ok := seen[n.key]; ok {
			panic(fmt.Sprintf("invariant failed: bucket(%d): duplicate key %v\n%s",
				index, n.key, b.debugString()))
		}
		seen[n.key] = struct{}{}
		if i := m.bucketIndex(n.key); i != index {
			panic(fmt.Sprintf("invariant failed: bucket(%d): key %v hashes to bucket %d\n%s",
				index, n.key, i, b.debugString()))
		}
		used++
		// Chains are acyclic by construction; a chain longer than the
		// map is only possible if a node was linked twice.
		if used > m.used {
			panic(fmt.Sprintf("invariant failed: bucket(%d): chain longer than map length %d",
				index, m.used))
		}
	}
}

func (b *bucket[K, V]) debugString() string {
	var buf strings.Builder
	var i int
	b.chain.All(func(k K, v V) bool {
		fmt.Fprintf(&buf, "  %4d: %v=%v\n", i, k, v)
		i++
		return true
	})
	return buf.String()
}
