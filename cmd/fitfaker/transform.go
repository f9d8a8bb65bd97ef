package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	fitfaker "fit-faker"
)

func transformCmd() *cli.Command {
	var (
		configFile string
		device     string
		serial     int64
		platform   string
		output     string
		dryRun     bool
	)

	return &cli.Command{
		Name:      "transform",
		Usage:     "Transform a single FIT file",
		ArgsUsage: "<activity.fit>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Config file path", Destination: &configFile},
			&cli.StringFlag{Name: "device", Usage: "Target device name (e.g. \"Edge 830\")", Destination: &device},
			&cli.IntFlag{Name: "serial", Usage: "Target serial number", Destination: &serial},
			&cli.StringFlag{Name: "platform", Usage: "Source platform preset (zwift, tpv, mywhoosh, coros, karoo, onelap)", Destination: &platform},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output path (default: <input>_modified.fit)", Destination: &output},
			&cli.BoolFlag{Name: "dry-run", Usage: "Run the full pipeline without writing the output", Destination: &dryRun},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one input file")
			}
			input := cmd.Args().First()

			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			setupLogging(cfg.Logs)

			profile, err := resolveProfile(cfg, device, uint32(serial))
			if err != nil {
				return err
			}
			quirks, err := resolveQuirks(cfg, platform)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}

			log.Printf("processing %q", input)
			result, err := fitfaker.Transform(data, profile, quirks)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			if !result.InputCRCValid {
				log.Printf("input CRC mismatch in %q (rewriting anyway)", input)
			}
			for _, w := range result.Warnings {
				log.Printf("warning: %s", w)
			}

			if output == "" {
				ext := filepath.Ext(input)
				output = strings.TrimSuffix(input, ext) + "_modified" + ext
			}
			if dryRun {
				log.Printf("dry run: would write %d bytes to %q", len(result.Bytes), output)
				return nil
			}
			if err := os.WriteFile(output, result.Bytes, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			log.Printf("wrote %q (%d records)", output, result.RecordCount)
			return nil
		},
	}
}
