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

package cmd

import (
	"fmt"

	"github.com/obsidian-sdr/vrt49/vrt"
	"github.com/obsidian-sdr/vrt49/vrt/serde"
)

// printSerde renders p as JSON or YAML via the vrt/serde package. Only
// linked in when the serde build tag is set.
func printSerde(p *vrt.Packet, format string) error {
	v := serde.FromPacket(p)
	switch format {
	case "json":
		out, err := serde.ToJSON(v)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := serde.ToYAML(v)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
