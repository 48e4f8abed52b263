package main

import (
	"flag"
	"fmt"

	"github.com/littlekj/vaultlink/internal/core"
)

func runMirror(args []string) error {
	fs := flag.NewFlagSet("mirror", flag.ContinueOnError)
	vault := fs.String("vault", ".", "vault root directory")
	out := fs.String("out", "", "destination directory (required)")
	var ignore multiString
	fs.Var(&ignore, "ignore", "skip files with this suffix (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("mirror: output directory is required")
	}
	return core.CopyTree(*vault, *out, ignore)
}
