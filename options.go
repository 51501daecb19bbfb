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

import "hash"

// option provide an interface to do work on Map while it is being created.
type option[K comparable, V any] interface {
	apply(m *Map[K, V])
}

type hasherOption[K comparable, V any] struct {
	newHasher func() hash.Hash64
}

func (op hasherOption[K, V]) apply(m *Map[K, V]) {
	m.newHasher = op.newHasher
}

// WithHasher is an option to specify the accumulator used to hash keys for a
// Map[K,V]. newHasher is called once per hash computation and must return a
// freshly initialized accumulator. The default is NewDJB2.
func WithHasher[K comparable, V any](newHasher func() hash.Hash64) option[K, V] {
	return hasherOption[K, V]{newHasher}
}

type keyBytesOption[K comparable, V any] struct {
	keyBytes func(b []byte, key K) []byte
}

func (op keyBytesOption[K, V]) apply(m *Map[K, V]) {
	m.keyBytes = op.keyBytes
}

// WithKeyBytes is an option to specify how a key is turned into the byte
// stream fed to the hasher. keyBytes appends the representation of key to b
// and returns the extended slice. Keys that compare equal must produce
// identical bytes.
func WithKeyBytes[K comparable, V any](keyBytes func(b []byte, key K) []byte) option[K, V] {
	return keyBytesOption[K, V]{keyBytes}
}

type tracerOption[K comparable, V any] struct {
	tracer Tracer
}

func (op tracerOption[K, V]) apply(m *Map[K, V]) {
	m.tracer = op.tracer
}

// WithTracer is an option to specify a diagnostic sink which is invoked as
// keys are addressed and overwritten. The tracer has no effect on results.
func WithTracer[K comparable, V any](tracer Tracer) option[K, V] {
	return tracerOption[K, V]{tracer}
}

type valueClonerOption[K comparable, V any] struct {
	cloneValue func(V) V
}

func (op valueClonerOption[K, V]) apply(m *Map[K, V]) {
	m.cloneValue = op.cloneValue
}

// WithValueCloner is an option to specify how values are duplicated by
// Map.Clone. By default values are copied by assignment, which is shallow for
// slices, maps and pointers.
func WithValueCloner[K comparable, V any](cloneValue func(V) V) option[K, V] {
	return valueClonerOption[K, V]{cloneValue}
}
