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

import "fmt"

// node is a single link in a Chain. A node exclusively owns the remainder of
// the chain through next.
type node[K comparable, V any] struct {
	key   K
	value V
	next  *node[K, V]
}

// Chain is a singly-linked list of key/value pairs. The zero value is the
// empty chain. Chains grow only at the head via Prepend; there is no removal.
type Chain[K comparable, V any] struct {
	head *node[K, V]
}

// Prepend returns a chain whose head is the pair (key, value) and whose tail
// is c. The receiver should not be used afterwards: the returned chain owns
// its nodes.
func (c Chain[K, V]) Prepend(key K, value V) Chain[K, V] {
	return Chain[K, V]{head: &node[K, V]{key: key, value: value, next: c.head}}
}

// Find returns the value of the first pair whose key equals key, scanning
// from the head.
func (c *Chain[K, V]) Find(key K) (value V, ok bool) {
	if n := c.find(key); n != nil {
		return n.value, true
	}
	return value, false
}

// FindPtr is like Find but returns a pointer to the stored value, allowing it
// to be modified in place. It returns nil if key is not present.
func (c *Chain[K, V]) FindPtr(key K) *V {
	if n := c.find(key); n != nil {
		return &n.value
	}
	return nil
}

func (c *Chain[K, V]) find(key K) *node[K, V] {
	for n := c.head; n != nil; n = n.next {
		if debug {
			fmt.Printf("find(checking): key=%v\n", n.key)
		}
		if n.key == key {
			return n
		}
	}
	return nil
}

// All calls yield for each pair in head-to-tail order. If yield returns
// false, iteration stops. All does not modify the chain and may be called
// any number of times.
func (c *Chain[K, V]) All(yield func(key K, value V) bool) {
	for n := c.head; n != nil; n = n.next {
		if !yield(n.key, n.value) {
			return
		}
	}
}

// Len returns the number of pairs in the chain.
func (c *Chain[K, V]) Len() int {
	var count int
	for n := c.head; n != nil; n = n.next {
		count++
	}
	return count
}

// Clone returns a deep copy of the chain with the same pair order. If
// cloneValue is non-nil it is used to duplicate each value; otherwise values
// are copied by assignment.
func (c *Chain[K, V]) Clone(cloneValue func(V) V) Chain[K, V] {
	var r Chain[K, V]
	tail := &r.head
	for n := c.head; n != nil; n = n.next {
		v := n.value
		if cloneValue != nil {
			v = cloneValue(v)
		}
		*tail = &node[K, V]{key: n.key, value: v}
		tail = &(*tail).next
	}
	return r
}
