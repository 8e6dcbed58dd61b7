package main

import (
	"flag"
	"os"

	"github.com/ryotapoi/linkheal/internal/core"
)

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	root := fs.String("root", ".", "documentation root directory")
	format := fs.String("format", "text", "output format (json or text)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(*format); err != nil {
		return err
	}

	report, links, err := core.Validate(*root)
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		return printValidateJSON(os.Stdout, report, links)
	default:
		printValidateText(os.Stdout, report, links)
		return nil
	}
}
