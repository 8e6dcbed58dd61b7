package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ryotapoi/linkheal/internal/core"
)

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	root := fs.String("root", ".", "documentation root directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, links, err := core.Validate(*root)
	if err != nil {
		return err
	}
	if err := core.WriteIndex(*root, links); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s (%d links)\n", core.IndexPath(*root), len(links))
	return nil
}
