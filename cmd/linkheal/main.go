package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = runScan(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "heal":
		err = runHeal(os.Args[2:])
	case "index":
		err = runIndex(os.Args[2:])
	case "--version":
		printVersion(os.Stdout)
		return
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion(w io.Writer) {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	fmt.Fprintf(w, "linkheal version %s\n", v)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: linkheal <command> [options]

Commands:
  scan       List every link reference in the document tree
  validate   Resolve all references and report valid/broken counts
  heal       Rewrite references for a set of renames, then re-validate
  index      Export the scan result to .linkheal/index.sqlite

Run 'linkheal <command> --help' for command-specific help.
Use 'linkheal --version' for version information.
`)
}
