package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tormoder/fit"
	"github.com/urfave/cli/v3"

	fitfaker "fit-faker"
	"fit-faker/fitcodec"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show header, CRC and identity details of a FIT file",
		ArgsUsage: "<activity.fit>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one input file")
			}
			input := cmd.Args().First()

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			f, err := fitcodec.Decode(data)
			if err != nil {
				return err
			}

			fmt.Printf("File:        %s (%d bytes)\n", input, len(data))
			fmt.Printf("Header:      size=%d protocol=0x%02X profile=%d data=%d bytes\n",
				f.Header.Size, f.Header.ProtocolVersion, f.Header.ProfileVersion, f.Header.DataSize)
			fmt.Printf("CRC:         stored=0x%04X computed=0x%04X valid=%t\n",
				f.StoredCRC, f.ComputedCRC, f.CRCValid())

			defs, datas := 0, 0
			for _, r := range f.Records {
				if r.Kind == fitcodec.KindDefinition {
					defs++
				} else {
					datas++
				}
			}
			fmt.Printf("Records:     %d (%d definitions, %d data messages)\n", len(f.Records), defs, datas)

			if fileID := f.FirstData(fitfaker.MsgFileID); fileID != nil {
				manufacturer, _ := fileID.FieldUint(fitfaker.FileIDManufacturer)
				product, _ := fileID.FieldUint(fitfaker.FileIDProduct)
				serial, _ := fileID.FieldUint(fitfaker.FileIDSerialNumber)
				fmt.Printf("file_id:     manufacturer=%d product=%d serial=%d\n", manufacturer, product, serial)
			}
			for i, di := range f.DataRecords(fitfaker.MsgDeviceInfo) {
				manufacturer, _ := di.FieldUint(fitfaker.DeviceInfoManufacturer)
				product, _ := di.FieldUint(fitfaker.DeviceInfoProduct)
				index, _ := di.FieldUint(fitfaker.DeviceInfoDeviceIndex)
				fmt.Printf("device_info: #%d index=%d manufacturer=%d product=%d\n", i, index, manufacturer, product)
			}

			// Cross-check the identity projection through an independent
			// decoder with full profile knowledge.
			if _, id, err := fit.DecodeHeaderAndFileID(bytes.NewReader(data)); err == nil {
				fmt.Printf("profile:     type=%v manufacturer=%v product=%v\n", id.Type, id.Manufacturer, id.GetProduct())
				if !id.TimeCreated.IsZero() {
					fmt.Printf("created:     %s\n", id.TimeCreated.UTC().Format(time.RFC3339))
				}
			}
			return nil
		},
	}
}
