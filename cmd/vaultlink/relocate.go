package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/littlekj/vaultlink/internal/core"
)

func runRelocate(args []string) error {
	fs := flag.NewFlagSet("relocate", flag.ContinueOnError)
	vault := fs.String("vault", ".", "vault root directory")
	search := fs.String("search", "", "directory to search for stray images (default: vault parent)")
	dryRun := fs.Bool("dry-run", false, "report moves without performing them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := core.Relocate(*vault, core.RelocateOptions{
		SearchDir: *search,
		DryRun:    *dryRun,
	}, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "moved %d images, %d missing\n",
		len(result.Moved), len(result.Missing))
	return nil
}
