package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
)

var version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "collect":
		err = runCollect(os.Args[2:])
	case "relocate":
		err = runRelocate(os.Args[2:])
	case "mirror":
		err = runMirror(os.Args[2:])
	case "scan":
		err = runScan(os.Args[2:])
	case "diagnose":
		err = runDiagnose(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
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
	fmt.Fprintf(w, "vaultlink version %s\n", v)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: vaultlink <command> [options]

Rewrite Commands:
  convert    Rewrite internal links to the external link format
  collect    Copy referenced attachments to an export dir and rewrite links
  relocate   Move referenced images into each note's image directory
  mirror     Copy the vault to a target dir, preserving timestamps

Index Commands:
  scan       Parse the vault and build the link index
  diagnose   Report unresolved links, vault escapes, and bad anchors

Other Commands:
  watch      Reconvert markdown files as they change

Run 'vaultlink <command> --help' for command-specific help.
Use 'vaultlink --version' for version information.
`)
}
