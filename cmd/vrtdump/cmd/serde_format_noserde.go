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

//go:build !serde

package cmd

import (
	"fmt"

	"github.com/obsidian-sdr/vrt49/vrt"
)

// printSerde is a stub for builds without the serde tag: json/yaml
// output needs vrt/serde, which is compiled in only under that tag.
func printSerde(_ *vrt.Packet, format string) error {
	return fmt.Errorf("--format=%s requires building vrtdump with -tags serde", format)
}
