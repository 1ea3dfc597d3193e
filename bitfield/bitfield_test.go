/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bitfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint32Range(t *testing.T) {
	word := uint32(0xABCD1234)
	assert.Equal(t, uint32(0xA), Uint32Range(word, 31, 28))
	assert.Equal(t, uint32(0x1234), Uint32Range(word, 15, 0))
	assert.Equal(t, word, Uint32Range(word, 31, 0))
}

func TestPutUint32Range(t *testing.T) {
	t.Run("writes in place without disturbing neighbors", func(t *testing.T) {
		word, err := PutUint32Range(0xFFFFFFFF, 15, 0, 0x0000)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xFFFF0000), word)
	})
	t.Run("rejects overflow instead of truncating", func(t *testing.T) {
		_, err := PutUint32Range(0, 3, 0, 0x10)
		require.Error(t, err)
	})
}

func TestUint64Range(t *testing.T) {
	word := uint64(0x0123456789ABCDEF)
	assert.Equal(t, uint64(0x01), Uint64Range(word, 63, 56))
	assert.Equal(t, uint64(0xCDEF), Uint64Range(word, 15, 0))
}

func TestPutUint64Range(t *testing.T) {
	word, err := PutUint64Range(0, 63, 32, 0xDEADBEEF)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF00000000), word)

	_, err = PutUint64Range(0, 7, 0, 0x100)
	require.Error(t, err)
}

func TestFixedPointRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		fp   FixedPoint
		val  float64
	}{
		{"16-bit radix-7 gain", FixedPoint{Width: 16, Radix: 7, Signed: true}, 12.5},
		{"32-bit radix-20 frequency-ish", FixedPoint{Width: 32, Radix: 20, Signed: true}, -1024.25},
		{"64-bit radix-20 frequency", FixedPoint{Width: 64, Radix: 20, Signed: true}, 1.0e8},
		{"32-bit radix-5 altitude", FixedPoint{Width: 32, Radix: 5, Signed: true}, -40.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := c.fp.FromFloat(c.val)
			got := c.fp.ToFloat(raw)
			ulp := 1.0 / float64(int64(1)<<uint(c.fp.Radix))
			assert.InDelta(t, c.val, got, ulp)
		})
	}
}

func TestFixedPointSaturates(t *testing.T) {
	fp := FixedPoint{Width: 16, Radix: 7, Signed: true}
	assert.Equal(t, fp.maxInt(), fp.FromFloat(1e9))
	assert.Equal(t, fp.minInt(), fp.FromFloat(-1e9))
}

func TestFixedPointFits(t *testing.T) {
	signed := FixedPoint{Width: 16, Radix: 7, Signed: true}
	assert.True(t, signed.Fits(12.5))
	assert.True(t, signed.Fits(255.99))
	assert.False(t, signed.Fits(1e9))
	assert.False(t, signed.Fits(-1e9))

	unsigned := FixedPoint{Width: 16, Radix: 7, Signed: false}
	assert.True(t, unsigned.Fits(12.5))
	assert.False(t, unsigned.Fits(-1.0))
	assert.False(t, unsigned.Fits(1e9))
}

func TestFixedPointRoundsToEven(t *testing.T) {
	fp := FixedPoint{Width: 16, Radix: 0, Signed: true}
	assert.Equal(t, int64(2), fp.FromFloat(2.5))
	assert.Equal(t, int64(4), fp.FromFloat(3.5))
	assert.Equal(t, int64(-2), fp.FromFloat(-2.5))
}
