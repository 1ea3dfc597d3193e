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

// Package serde is a human-readable interchange representation for
// decoded packets, compiled in under the serde build tag: a JSON/YAML
// key/value tree used by tests and tooling, never the wire format. A
// vrt.Packet goes in; a flattened, easy-to-diff View comes out, and the
// View round-trips through JSON and YAML. There is no View-to-Packet
// conversion.
package serde

import (
	"encoding/json"

	"gopkg.in/yaml.v2"

	"github.com/obsidian-sdr/vrt49/vrt"
)

// View is the serde tree for a Packet: each optional wire field it
// carries (a subset, see FromPacket) becomes an optional (possibly nil)
// View field, named the way the wire format names it rather than the
// way Go's zero values would read.
type View struct {
	PacketType  string       `json:"packet_type" yaml:"packet_type"`
	PacketSize  uint16       `json:"packet_size_words" yaml:"packet_size_words"`
	PacketCount uint8        `json:"packet_count" yaml:"packet_count"`
	StreamID    *uint32      `json:"stream_id,omitempty" yaml:"stream_id,omitempty"`
	ClassID     *ClassIDView `json:"class_id,omitempty" yaml:"class_id,omitempty"`

	IntegerTimestamp    *uint32 `json:"integer_timestamp,omitempty" yaml:"integer_timestamp,omitempty"`
	FractionalTimestamp *uint64 `json:"fractional_timestamp,omitempty" yaml:"fractional_timestamp,omitempty"`

	PayloadKind string `json:"payload_kind" yaml:"payload_kind"`
	SignalData  []byte `json:"signal_data,omitempty" yaml:"signal_data,omitempty"`

	BandwidthHz       *float64 `json:"bandwidth_hz,omitempty" yaml:"bandwidth_hz,omitempty"`
	ReferenceLevelDBm *float64 `json:"reference_level_dbm,omitempty" yaml:"reference_level_dbm,omitempty"`
	SampleRateHz      *float64 `json:"sample_rate_hz,omitempty" yaml:"sample_rate_hz,omitempty"`
	BufferSize        *uint32  `json:"buffer_size,omitempty" yaml:"buffer_size,omitempty"`

	CommandAckClass    string   `json:"command_ack_class,omitempty" yaml:"command_ack_class,omitempty"`
	CommandMessageID   *uint32  `json:"command_message_id,omitempty" yaml:"command_message_id,omitempty"`
	CommandFrequencyHz *float64 `json:"command_frequency_hz,omitempty" yaml:"command_frequency_hz,omitempty"`

	TrailerValidData *bool `json:"trailer_valid_data,omitempty" yaml:"trailer_valid_data,omitempty"`
}

// ClassIDView is the serde form of vrt.ClassID.
type ClassIDView struct {
	OUI uint32 `json:"oui" yaml:"oui"`
	ICC uint16 `json:"icc" yaml:"icc"`
	PCC uint16 `json:"pcc" yaml:"pcc"`
}

// FromPacket flattens a decoded Packet into its serde View. It only
// surfaces the commonly-inspected fields; it is a tooling convenience,
// not a lossless mirror of every CIF field (those remain reachable via
// the vrt package's typed accessors for anything not listed here).
func FromPacket(p *vrt.Packet) View {
	v := View{
		PacketType:  p.Header.PacketType.String(),
		PacketSize:  p.Header.PacketSize,
		PacketCount: p.Header.PacketCount,
		StreamID:    p.StreamID,
		PayloadKind: p.Payload.Kind.String(),
	}
	if p.ClassID != nil {
		v.ClassID = &ClassIDView{OUI: p.ClassID.OUI, ICC: p.ClassID.ICC, PCC: p.ClassID.PCC}
	}
	if p.Header.TSI != vrt.TSINone {
		it := p.IntegerTimestamp
		v.IntegerTimestamp = &it
	}
	if p.Header.TSF != vrt.TSFNone {
		ft := p.FractionalTimestamp
		v.FractionalTimestamp = &ft
	}

	switch p.Payload.Kind {
	case vrt.PayloadKindSignalData:
		v.SignalData = p.Payload.SignalData.Samples
	case vrt.PayloadKindContext:
		ctx := p.Payload.Context
		if hz, ok := ctx.BandwidthHz(); ok {
			v.BandwidthHz = &hz
		}
		if dbm, ok := ctx.ReferenceLevelDBm(); ok {
			v.ReferenceLevelDBm = &dbm
		}
		if hz, ok := ctx.SampleRateHz(); ok {
			v.SampleRateHz = &hz
		}
		if bs, ok := ctx.BufferSize(); ok {
			v.BufferSize = &bs
		}
	case vrt.PayloadKindCommand:
		cmd := p.Payload.Command
		v.CommandAckClass = cmd.Control.AckClass.String()
		id := cmd.MessageID
		v.CommandMessageID = &id
		if hz, ok := cmd.FrequencyHz(); ok {
			v.CommandFrequencyHz = &hz
		}
	}

	if p.Trailer != nil {
		if valid, present := p.Trailer.ValidData(); present {
			v.TrailerValidData = &valid
		}
	}
	return v
}

// ToJSON renders v as indented JSON.
func ToJSON(v View) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// FromJSON parses JSON produced by ToJSON back into a View.
func FromJSON(b []byte) (View, error) {
	var v View
	err := json.Unmarshal(b, &v)
	return v, err
}

// ToYAML renders v as YAML.
func ToYAML(v View) ([]byte, error) {
	return yaml.Marshal(v)
}

// FromYAML parses YAML produced by ToYAML back into a View.
func FromYAML(b []byte) (View, error) {
	var v View
	err := yaml.Unmarshal(b, &v)
	return v, err
}
