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
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

const djb2Seed = 5381

// djb2 is Bernstein's hash over a byte stream: each byte b updates the state
// as state = state*33 + b, wrapping on overflow.
type djb2 uint64

// NewDJB2 returns a DJB2 accumulator seeded with 5381. It is the default
// hasher for a Map.
func NewDJB2() hash.Hash64 {
	d := djb2(djb2Seed)
	return &d
}

func (d *djb2) Write(p []byte) (int, error) {
	s := uint64(*d)
	for _, b := range p {
		s = (s << 5) + s + uint64(b)
	}
	*d = djb2(s)
	return len(p), nil
}

func (d *djb2) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, uint64(*d))
}

func (d *djb2) Sum64() uint64  { return uint64(*d) }
func (d *djb2) Reset()         { *d = djb2Seed }
func (d *djb2) Size() int      { return 8 }
func (d *djb2) BlockSize() int { return 1 }

// NewXXHash returns an xxHash64 accumulator. It distributes adversarial or
// highly regular keys better than DJB2 at the cost of a larger state.
func NewXXHash() hash.Hash64 {
	return xxhash.New()
}

// Hashable is implemented by key types that supply their own canonical byte
// representation for hashing. Keys that compare equal must append identical
// bytes.
type Hashable interface {
	AppendHash(b []byte) []byte
}

// appendKeyBytes appends the canonical byte representation of key to b.
// Integers are encoded little-endian at their natural width (8 bytes for int,
// uint and uintptr). Strings are terminated with 0xff so that no encoding is
// a prefix of another. Keys that compare equal always produce the same bytes;
// other comparable types are encoded structurally by appendValueBytes.
func appendKeyBytes[K comparable](b []byte, key K) []byte {
	switch k := any(key).(type) {
	case Hashable:
		return k.AppendHash(b)
	case int:
		return binary.LittleEndian.AppendUint64(b, uint64(k))
	case int8:
		return append(b, uint8(k))
	case int16:
		return binary.LittleEndian.AppendUint16(b, uint16(k))
	case int32:
		return binary.LittleEndian.AppendUint32(b, uint32(k))
	case int64:
		return binary.LittleEndian.AppendUint64(b, uint64(k))
	case uint:
		return binary.LittleEndian.AppendUint64(b, uint64(k))
	case uint8:
		return append(b, k)
	case uint16:
		return binary.LittleEndian.AppendUint16(b, k)
	case uint32:
		return binary.LittleEndian.AppendUint32(b, k)
	case uint64:
		return binary.LittleEndian.AppendUint64(b, k)
	case uintptr:
		return binary.LittleEndian.AppendUint64(b, uint64(k))
	case bool:
		return appendBool(b, k)
	case float32:
		return appendFloat32(b, k)
	case float64:
		return appendFloat64(b, k)
	case complex64:
		b = appendFloat32(b, real(k))
		return appendFloat32(b, imag(k))
	case complex128:
		b = appendFloat64(b, real(k))
		return appendFloat64(b, imag(k))
	case string:
		return appendString(b, k)
	default:
		return appendValueBytes(b, reflect.ValueOf(key))
	}
}

// appendValueBytes walks v and appends an encoding that agrees with ==.
// Pointers, channels and unsafe pointers are encoded by address, interfaces
// by dynamic type followed by dynamic value, and structs and arrays element
// by element.
func appendValueBytes(b []byte, v reflect.Value) []byte {
	switch v.Kind() {
	case reflect.Invalid:
		// nil interface
		return append(b, 0)
	case reflect.Bool:
		return appendBool(b, v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return appendUint(b, uint64(v.Int()), v.Type().Size())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return appendUint(b, v.Uint(), v.Type().Size())
	case reflect.Float32:
		return appendFloat32(b, float32(v.Float()))
	case reflect.Float64:
		return appendFloat64(b, v.Float())
	case reflect.Complex64:
		c := v.Complex()
		b = appendFloat32(b, float32(real(c)))
		return appendFloat32(b, float32(imag(c)))
	case reflect.Complex128:
		c := v.Complex()
		b = appendFloat64(b, real(c))
		return appendFloat64(b, imag(c))
	case reflect.String:
		return appendString(b, v.String())
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return binary.LittleEndian.AppendUint64(b, uint64(v.Pointer()))
	case reflect.Interface:
		if v.IsNil() {
			return append(b, 0)
		}
		b = append(b, 1)
		e := v.Elem()
		b = appendString(b, e.Type().String())
		return appendValueBytes(b, e)
	case reflect.Struct:
		for i, n := 0, v.NumField(); i < n; i++ {
			b = appendValueBytes(b, v.Field(i))
		}
		return b
	case reflect.Array:
		for i, n := 0, v.Len(); i < n; i++ {
			b = appendValueBytes(b, v.Index(i))
		}
		return b
	default:
		panic(fmt.Sprintf("chainmap: cannot hash key of kind %s", v.Kind()))
	}
}

func appendUint(b []byte, u uint64, size uintptr) []byte {
	switch size {
	case 1:
		return append(b, uint8(u))
	case 2:
		return binary.LittleEndian.AppendUint16(b, uint16(u))
	case 4:
		return binary.LittleEndian.AppendUint32(b, uint32(u))
	default:
		return binary.LittleEndian.AppendUint64(b, u)
	}
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

func appendFloat32(b []byte, f float32) []byte {
	if f == 0 {
		f = 0 // -0 == +0
	}
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
}

func appendFloat64(b []byte, f float64) []byte {
	if f == 0 {
		f = 0
	}
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
}

func appendString(b []byte, s string) []byte {
	b = append(b, s...)
	return append(b, 0xff)
}
