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

//go:build serde

package serde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsidian-sdr/vrt49/vrt"
)

func TestFromPacketContextBandwidth(t *testing.T) {
	p, err := vrt.Parse(vrt.ScenarioContextBandwidth)
	require.NoError(t, err)

	v := FromPacket(&p)
	assert.Equal(t, "Context", v.PacketType)
	require.NotNil(t, v.BandwidthHz)
	assert.InDelta(t, 1.0e8, *v.BandwidthHz, 1.0/(1<<20))
}

func TestJSONRoundTrip(t *testing.T) {
	p, err := vrt.Parse(vrt.ScenarioCommandControl)
	require.NoError(t, err)
	v := FromPacket(&p)

	b, err := ToJSON(v)
	require.NoError(t, err)

	got, err := FromJSON(b)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestYAMLRoundTrip(t *testing.T) {
	p, err := vrt.Parse(vrt.ScenarioValidationAckError)
	require.NoError(t, err)
	v := FromPacket(&p)

	b, err := ToYAML(v)
	require.NoError(t, err)

	got, err := FromYAML(b)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
