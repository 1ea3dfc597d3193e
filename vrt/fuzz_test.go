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

	"github.com/davecgh/go-spew/spew"
)

// dumpDiff renders two packets with go-spew for a readable failure
// message when a roundtrip property test disagrees with its input;
// reflect.DeepEqual alone gives no indication of which field differed.
func dumpDiff(t *testing.T, label string, got, want Packet) {
	t.Helper()
	t.Logf("%s: got=%s\nwant=%s", label, spew.Sdump(got), spew.Sdump(want))
}

// FuzzParseNeverPanics: no input up to the VRT maximum packet size
// causes a panic or hang; every input yields a Packet or a specific
// Error, and every accepted input round-trips byte-for-byte.
func FuzzParseNeverPanics(f *testing.F) {
	for _, seed := range [][]byte{
		ScenarioMinimalSignalData,
		ScenarioContextBandwidth,
		ScenarioContextWithCIF1,
		ScenarioCommandControl,
		ScenarioValidationAckError,
		ScenarioLengthMismatch,
		{},
		{0x00},
		{0xff, 0xff, 0xff, 0xff},
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, b []byte) {
		if len(b) > 262140 {
			return // beyond the VRT maximum packet size (65535 words)
		}
		p, err := Parse(b)
		if err != nil {
			return
		}

		before := p.Header.PacketSize
		p.RecomputeSize()
		if p.Header.PacketSize != before {
			dumpDiff(t, "RecomputeSize was not a no-op after Parse", p, p)
			t.Fatalf("RecomputeSize changed PacketSize from %d to %d for accepted input", before, p.Header.PacketSize)
		}

		out, err := p.Serialize()
		if err != nil {
			t.Fatalf("Serialize failed on a packet that just parsed successfully: %v", err)
		}
		if string(out) != string(b) {
			reparsed, rerr := Parse(out)
			if rerr == nil {
				dumpDiff(t, "roundtrip mismatch", reparsed, p)
			}
			t.Fatalf("roundtrip identity violated: serialize(parse(b)) != b")
		}
	})
}
