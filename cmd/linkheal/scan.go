package main

import (
	"flag"
	"os"

	"github.com/ryotapoi/linkheal/internal/core"
)

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	root := fs.String("root", ".", "documentation root directory")
	format := fs.String("format", "text", "output format (json or text)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(*format); err != nil {
		return err
	}

	cfg, err := core.LoadConfig(*root)
	if err != nil {
		return err
	}
	refs, docErrs, err := core.Scan(*root, cfg)
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		return printScanJSON(os.Stdout, refs, docErrs)
	default:
		printScanText(os.Stdout, refs, docErrs)
		return nil
	}
}
