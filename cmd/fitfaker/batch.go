package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"fit-faker/batch"
)

func batchCmd() *cli.Command {
	var (
		configFile string
		device     string
		serial     int64
		platform   string
		outDir     string
		workers    int64
		report     string
	)

	return &cli.Command{
		Name:      "batch",
		Usage:     "Transform many FIT files concurrently",
		ArgsUsage: "<file-or-glob>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Config file path", Destination: &configFile},
			&cli.StringFlag{Name: "device", Usage: "Target device name", Destination: &device},
			&cli.IntFlag{Name: "serial", Usage: "Target serial number", Destination: &serial},
			&cli.StringFlag{Name: "platform", Usage: "Source platform preset", Destination: &platform},
			&cli.StringFlag{Name: "out-dir", Usage: "Output directory (default: next to each input)", Destination: &outDir},
			&cli.IntFlag{Name: "workers", Usage: "Worker pool size (default: one per CPU)", Destination: &workers},
			&cli.StringFlag{Name: "report", Usage: "Write a JSON run report to this path", Destination: &report},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return fmt.Errorf("no input files")
			}

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

			var inputs []string
			for _, arg := range cmd.Args().Slice() {
				matches, err := filepath.Glob(arg)
				if err != nil {
					return fmt.Errorf("bad pattern %q: %w", arg, err)
				}
				if len(matches) == 0 {
					inputs = append(inputs, arg)
					continue
				}
				inputs = append(inputs, matches...)
			}

			poolSize := int(workers)
			if poolSize == 0 {
				poolSize = cfg.Batch.Workers
			}
			res, err := batch.Run(batch.Options{
				Inputs:     inputs,
				OutDir:     outDir,
				Suffix:     cfg.Batch.Suffix,
				Profile:    profile,
				Quirks:     quirks,
				Workers:    poolSize,
				ReportPath: report,
			})
			if err != nil {
				return err
			}

			for _, f := range res.Files {
				if f.OK {
					log.Printf("ok: %s -> %s", f.Input, f.Output)
				} else {
					log.Printf("failed: %s: %s", f.Input, f.Error)
				}
				for _, w := range f.Warnings {
					log.Printf("  warning: %s", w)
				}
			}
			log.Printf("run %s: %d transformed, %d failed", res.RunID, res.Transformed, res.Failed)
			if res.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", res.Failed, len(res.Files))
			}
			return nil
		},
	}
}
