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

package vrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailerUnsetBitReturnsNotPresent(t *testing.T) {
	var tr Trailer
	v, present := tr.ValidData()
	assert.False(t, v)
	assert.False(t, present)
}

func TestTrailerSetBitIsPresentAndRoundtrips(t *testing.T) {
	var tr Trailer
	tr.SetValidData(true)
	tr.SetOverRange(false)

	v, present := tr.ValidData()
	assert.True(t, present)
	assert.True(t, v)

	v, present = tr.OverRange()
	assert.True(t, present)
	assert.False(t, v)

	_, present = tr.SampleLoss()
	assert.False(t, present)
}

func TestTrailerAssociatedContextPacketCount(t *testing.T) {
	var tr Trailer
	_, present := tr.AssociatedContextPacketCount()
	assert.False(t, present)

	tr.SetAssociatedContextPacketCount(100)
	v, present := tr.AssociatedContextPacketCount()
	require.True(t, present)
	assert.Equal(t, uint8(100), v)

	tr.ClearAssociatedContextPacketCount()
	_, present = tr.AssociatedContextPacketCount()
	assert.False(t, present)
}

func TestTrailerEncodeDecodeRoundTrip(t *testing.T) {
	var tr Trailer
	tr.SetCalibratedTime(true)
	tr.SetReferenceLock(false)
	tr.SetAssociatedContextPacketCount(42)

	b := make([]byte, TrailerSize)
	encodeTrailer(tr, b)
	got, err := decodeTrailer(b)
	require.NoError(t, err)
	assert.Equal(t, tr, got)
}
