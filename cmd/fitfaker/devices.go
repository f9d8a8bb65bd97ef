package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	fitfaker "fit-faker"
)

func devicesCmd() *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List supported target devices and platform presets",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DEVICE\tPRODUCT ID\tSOFTWARE\tCATEGORY")
			for _, d := range fitfaker.TargetDevices {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", d.Name, d.ProductID, d.SoftwareVersion, d.Category)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "PLATFORM\tMANUFACTURER")
			for _, p := range fitfaker.Platforms {
				fmt.Fprintf(w, "%s\t%d\n", p.Name, p.Manufacturer)
			}
			return w.Flush()
		},
	}
}
