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

// SignalData is a raw sample payload: opaque bytes whose length is
// computed from the enclosing packet's declared size rather than
// stored locally. It does not interpret sample format, endianness, or
// I/Q layout; those are application-level concerns the radio's
// convention decides, not this wire layer.
type SignalData struct {
	Samples []byte
}

// decodeSignalData consumes exactly len(b) bytes as the sample buffer;
// the caller has already carved out the span between the prologue and
// the trailer from the declared packet size.
func decodeSignalData(b []byte) SignalData {
	buf := make([]byte, len(b))
	copy(buf, b)
	return SignalData{Samples: buf}
}

func (s SignalData) encodedLen() int {
	return len(s.Samples)
}

func (s SignalData) encodeTo(b []byte) int {
	return copy(b, s.Samples)
}
