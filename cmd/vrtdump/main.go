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

// Command vrtdump reads one complete VRT packet's bytes from a file or
// stdin, decodes it with the vrt package, and prints a human summary
// or its JSON/YAML serde form. It owns no wire-format logic of its own.
package main

import "github.com/obsidian-sdr/vrt49/cmd/vrtdump/cmd"

func main() {
	cmd.Execute()
}
