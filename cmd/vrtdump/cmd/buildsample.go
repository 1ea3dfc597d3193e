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

package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/obsidian-sdr/vrt49/vrt"
)

var buildSampleNameFlag string
var buildSampleOutFlag string

var namedSamples = map[string][]byte{
	"s1-signal-data":     vrt.ScenarioMinimalSignalData,
	"s2-context-bw":      vrt.ScenarioContextBandwidth,
	"s3-context-cif1":    vrt.ScenarioContextWithCIF1,
	"s4-command":         vrt.ScenarioCommandControl,
	"s5-validation-ack":  vrt.ScenarioValidationAckError,
	"s6-length-mismatch": vrt.ScenarioLengthMismatch,
}

func init() {
	RootCmd.AddCommand(buildSampleCmd)
	buildSampleCmd.Flags().StringVarP(&buildSampleNameFlag, "sample", "s", "s1-signal-data", "one of: s1-signal-data, s2-context-bw, s3-context-cif1, s4-command, s5-validation-ack, s6-length-mismatch")
	buildSampleCmd.Flags().StringVarP(&buildSampleOutFlag, "out", "o", "-", "path to write the packet bytes to, or - for stdout")
}

var buildSampleCmd = &cobra.Command{
	Use:   "build-sample",
	Short: "Emit one of the built-in sample packets as raw bytes",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		b, ok := namedSamples[buildSampleNameFlag]
		if !ok {
			log.Fatalf("unknown sample %q", buildSampleNameFlag)
		}
		if buildSampleOutFlag == "-" {
			if _, err := os.Stdout.Write(b); err != nil {
				log.Fatal(err)
			}
			return
		}
		if err := os.WriteFile(buildSampleOutFlag, b, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(b), buildSampleOutFlag)
	},
}
