package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ryotapoi/linkheal/internal/core"
)

func runHeal(args []string) error {
	fs := flag.NewFlagSet("heal", flag.ContinueOnError)
	root := fs.String("root", ".", "documentation root directory")
	format := fs.String("format", "text", "output format (json or text)")
	mappingFile := fs.String("mapping", "", "YAML rename mapping file (list of {from, to})")
	var renames multiString
	fs.Var(&renames, "rename", "rename pair old=new (repeatable)")
	dryRun := fs.Bool("dry-run", false, "show what would be healed without making changes")
	move := fs.Bool("move", false, "also perform the disk renames themselves")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(*format); err != nil {
		return err
	}
	if *mappingFile == "" && len(renames) == 0 {
		return fmt.Errorf("--mapping or --rename is required")
	}

	var mapping core.RenameMapping
	if *mappingFile != "" {
		m, err := core.LoadMapping(*mappingFile)
		if err != nil {
			return err
		}
		mapping = m
	}
	if len(renames) > 0 {
		m, err := core.ParseRenameArgs(renames)
		if err != nil {
			return err
		}
		mapping.Pairs = append(mapping.Pairs, m.Pairs...)
	}

	result, err := core.Heal(*root, core.HealOptions{
		Mapping: mapping,
		DryRun:  *dryRun,
		Move:    *move,
	})
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		if err := printHealJSON(os.Stdout, result); err != nil {
			return err
		}
	default:
		printHealText(os.Stdout, result)
	}

	if !result.Report.Pass {
		return fmt.Errorf("healing incomplete: %d broken link(s) remain in the rename's scope", result.Report.StillBroken)
	}
	return nil
}
