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
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/obsidian-sdr/vrt49/vrt"
)

var decodeFormatFlag string
var decodeFileFlag string

func init() {
	RootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeFileFlag, "file", "f", "-", "path to a file holding one complete VRT packet, or - for stdin")
	decodeCmd.Flags().StringVar(&decodeFormatFlag, "format", "table", "output format: table, json, or yaml (json/yaml require a serde build)")
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode one VRT packet and print it",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := runDecode(); err != nil {
			log.Fatal(err)
		}
	},
}

func runDecode() error {
	b, err := readPacketInput(decodeFileFlag)
	if err != nil {
		return fmt.Errorf("reading packet input: %w", err)
	}

	p, err := vrt.Parse(b)
	if err != nil {
		return fmt.Errorf("parsing packet: %w", err)
	}

	if decodeFormatFlag == "table" {
		printTable(&p)
		return nil
	}
	return printSerde(&p, decodeFormatFlag)
}

func readPacketInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printTable(p *vrt.Packet) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"field", "value"})
	table.Append([]string{"packet_type", p.Header.PacketType.String()})
	table.Append([]string{"packet_size_words", fmt.Sprintf("%d", p.Header.PacketSize)})
	table.Append([]string{"packet_count", fmt.Sprintf("%d", p.Header.PacketCount)})
	if p.StreamID != nil {
		table.Append([]string{"stream_id", fmt.Sprintf("0x%08x", *p.StreamID)})
	}
	table.Append([]string{"payload_kind", p.Payload.Kind.String()})

	switch p.Payload.Kind {
	case vrt.PayloadKindContext:
		if hz, ok := p.Payload.Context.BandwidthHz(); ok {
			table.Append([]string{"bandwidth_hz", fmt.Sprintf("%g", hz)})
		}
		if dbm, ok := p.Payload.Context.ReferenceLevelDBm(); ok {
			table.Append([]string{"reference_level_dbm", fmt.Sprintf("%g", dbm)})
		}
	case vrt.PayloadKindCommand:
		table.Append([]string{"command_ack_class", p.Payload.Command.Control.AckClass.String()})
		table.Append([]string{"command_message_id", fmt.Sprintf("%d", p.Payload.Command.MessageID)})
		if hz, ok := p.Payload.Command.FrequencyHz(); ok {
			table.Append([]string{"command_frequency_hz", fmt.Sprintf("%g", hz)})
		}
	case vrt.PayloadKindSignalData:
		table.Append([]string{"signal_data_bytes", fmt.Sprintf("%d", len(p.Payload.SignalData.Samples))})
	}
	table.Render()
}
