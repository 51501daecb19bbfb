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

// Package chainmap is a fixed-capacity hash table that resolves collisions by
// chaining. It is intended as a minimal associative container for
// environments where the table must never grow or rehash.
//
// # Layout
//
// A Map has exactly NumBuckets (256) buckets, allocated inline when the map
// is created. Each bucket holds a singly-linked Chain of key/value pairs. The
// bucket for a key is chosen by feeding the key's canonical byte
// representation into a fresh hash accumulator and reducing the 64-bit result
// modulo NumBuckets. The default accumulator is DJB2:
//
//	state = 5381
//	for each byte b: state = state*33 + b
//
// Because the modulus and the bucket array are sized by the same constant,
// the bucket index is always in range.
//
//	 buckets
//	+-----+
//	|   0 | --> (k3,v3) --> (k1,v1) --> nil
//	+-----+
//	|   1 | --> nil
//	+-----+
//	| ... |
//	+-----+
//	| 255 | --> (k2,v2) --> nil
//	+-----+
//
// # Insertion
//
// Insert is a two-phase protocol. The target chain is first scanned for the
// key; if found the stored value is overwritten in place and the previous
// value returned. Only when the key is absent is a new pair prepended to the
// chain. This is what keeps each key at most once per bucket no matter how
// many times it is inserted. New pairs go at the head, so iteration within a
// bucket visits the most recently inserted key first.
//
// # Limitations
//
// There is no deletion, no resizing and no synchronization. With a well
// distributed hash the average chain length is n/256 for n keys, so lookups
// degrade linearly once a map holds many thousands of entries.
package chainmap

import (
	"fmt"
	"hash"
	"strings"
)

const (
	debug = false

	// NumBuckets is the fixed number of buckets in every Map.
	NumBuckets = 256
)

// Map is a fixed-size chained hash table from keys to values with Insert,
// Get and GetPtr operations. Keys are hashed from their canonical byte
// representation; see Hashable and WithKeyBytes.
//
// A Map is NOT goroutine-safe, not even for concurrent lookups: hashing a
// key reuses a scratch buffer owned by the Map.
type Map[K comparable, V any] struct {
	// newHasher returns a freshly seeded accumulator for each hash. If nil,
	// DJB2 is computed inline.
	newHasher func() hash.Hash64
	// keyBytes appends the byte representation of a key. If nil,
	// appendKeyBytes is used.
	keyBytes func(b []byte, key K) []byte
	// scratch is reused across hash computations to hold key bytes.
	scratch    []byte
	tracer     Tracer
	cloneValue func(V) V
	// The number of pairs across all buckets.
	used    int
	buckets [NumBuckets]bucket[K, V]
}

// New constructs a new Map with all NumBuckets buckets empty.
func New[K comparable, V any](options ...option[K, V]) *Map[K, V] {
	m := &Map[K, V]{}
	for _, op := range options {
		op.apply(m)
	}
	return m
}

// BucketIndex returns the index in [0, NumBuckets) of the bucket that key
// resides in. It is a pure function of key and the map's hasher.
func (m *Map[K, V]) BucketIndex(key K) int {
	return m.bucketIndex(key)
}

func (m *Map[K, V]) bucketIndex(key K) int {
	if m.keyBytes != nil {
		m.scratch = m.keyBytes(m.scratch[:0], key)
	} else {
		m.scratch = appendKeyBytes(m.scratch[:0], key)
	}
	if m.newHasher == nil {
		d := djb2(djb2Seed)
		_, _ = d.Write(m.scratch)
		return int(d.Sum64() % NumBuckets)
	}
	h := m.newHasher()
	_, _ = h.Write(m.scratch)
	return int(h.Sum64() % NumBuckets)
}

// bucket returns the bucket for key along with its index, tracing the
// computed index.
func (m *Map[K, V]) bucket(key K) (*bucket[K, V], int) {
	i := m.bucketIndex(key)
	if m.tracer != nil {
		m.tracer("bucket(%v): %d", key, i)
	}
	return &m.buckets[i], i
}

// Get retrieves the value from the map for the specified key, returning
// ok=false if the key is not present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	b, _ := m.bucket(key)
	return b.get(key)
}

// GetPtr returns a pointer to the value stored for key, or nil if the key is
// not present. The value may be modified through the pointer; the pointer
// remains valid for the life of the map.
func (m *Map[K, V]) GetPtr(key K) *V {
	b, _ := m.bucket(key)
	return b.getPtr(key)
}

// Insert stores value for key. If the key was already present its value is
// overwritten and the previous value returned with replaced=true.
func (m *Map[K, V]) Insert(key K, value V) (old V, replaced bool) {
	b, i := m.bucket(key)
	if p := b.getPtr(key); p != nil {
		if m.tracer != nil {
			m.tracer("insert(%v): old=%v new=%v", key, *p, value)
		}
		old, *p = *p, value
		b.checkInvariants(m, i)
		return old, true
	}

	if debug {
		fmt.Printf("insert(appending): bucket=%d key=%v\n", i, key)
	}
	b.append(key, value)
	m.used++
	b.checkInvariants(m, i)
	return old, false
}

// All calls yield sequentially for each key and value present in the map,
// visiting buckets in index order and each bucket's chain from newest to
// oldest entry. If yield returns false, iteration stops. The map must not be
// mutated during iteration.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	for i := range m.buckets {
		cont := true
		m.buckets[i].chain.All(func(k K, v V) bool {
			cont = yield(k, v)
			return cont
		})
		if !cont {
			return
		}
	}
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.used
}

// Clone returns a deep copy of the map sharing no chain nodes with m. Values
// are duplicated using the WithValueCloner function if one was configured.
func (m *Map[K, V]) Clone() *Map[K, V] {
	r := &Map[K, V]{
		newHasher:  m.newHasher,
		keyBytes:   m.keyBytes,
		tracer:     m.tracer,
		cloneValue: m.cloneValue,
		used:       m.used,
	}
	for i := range m.buckets {
		r.buckets[i].chain = m.buckets[i].chain.Clone(m.cloneValue)
	}
	return r
}

// String renders the non-empty buckets of the map. Useful for debugging.
func (m *Map[K, V]) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "buckets=%d  used=%d\n", NumBuckets, m.used)
	for i := range m.buckets {
		b := &m.buckets[i]
		if b.chain.head == nil {
			continue
		}
		fmt.Fprintf(&buf, "bucket %d:\n%s", i, b.debugString())
	}
	return buf.String()
}
