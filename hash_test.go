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
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestDJB2(t *testing.T) {
	testCases := []struct {
		input    string
		expected uint64
	}{
		{"", 5381},
		{"a", 177670},
		{"hello", 210714636441},
		{"ab\xff", 193486119},
		{"\x01\x00\x00\x00", 6381476838},
	}
	for _, c := range testCases {
		t.Run("", func(t *testing.T) {
			h := NewDJB2()
			n, err := h.Write([]byte(c.input))
			require.NoError(t, err)
			require.Equal(t, len(c.input), n)
			require.Equal(t, c.expected, h.Sum64())
		})
	}

	// Writes may be split arbitrarily.
	h := NewDJB2()
	_, _ = h.Write([]byte("hel"))
	_, _ = h.Write([]byte("lo"))
	require.EqualValues(t, 210714636441, h.Sum64())

	h.Reset()
	require.EqualValues(t, 5381, h.Sum64())
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0x15, 0x05}, h.Sum(nil))
}

func TestDJB2Wraps(t *testing.T) {
	h := NewDJB2()
	_, _ = h.Write([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.EqualValues(t, 7579092093431421, h.Sum64())
}

func TestXXHash(t *testing.T) {
	h := NewXXHash()
	_, _ = h.Write([]byte("hello"))
	require.Equal(t, xxhash.Sum64String("hello"), h.Sum64())
}

func TestAppendKeyBytes(t *testing.T) {
	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, appendKeyBytes(nil, 1))
	require.Equal(t, []byte{1, 0, 0, 0}, appendKeyBytes(nil, int32(1)))
	require.Equal(t, []byte{0x20, 0x01}, appendKeyBytes(nil, uint16(288)))
	require.Equal(t, []byte{0xff}, appendKeyBytes(nil, int8(-1)))
	require.Equal(t, []byte{1}, appendKeyBytes(nil, true))
	require.Equal(t, []byte("ab\xff"), appendKeyBytes(nil, "ab"))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, appendKeyBytes(nil, 1.0))

	// Strings are terminated so that concatenations do not collide.
	require.NotEqual(t,
		append(appendKeyBytes(nil, "a"), appendKeyBytes(nil, "bc")...),
		append(appendKeyBytes(nil, "ab"), appendKeyBytes(nil, "c")...))

	require.Equal(t, []byte("1,2"), appendKeyBytes(nil, point{1, 2}))

	type node struct{ n int }
	p := &node{1}
	before := appendKeyBytes(nil, p)
	p.n = 2
	require.Equal(t, before, appendKeyBytes(nil, p))
	require.NotEqual(t, before, appendKeyBytes(nil, &node{1}))

	negZero := float32(0)
	negZero = -negZero
	type fk struct{ f float32 }
	require.Equal(t, appendKeyBytes(nil, fk{0}), appendKeyBytes(nil, fk{negZero}))
	require.Equal(t, appendKeyBytes(nil, any(fk{0})), appendKeyBytes(nil, any(fk{negZero})))
}
