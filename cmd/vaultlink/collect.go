package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/littlekj/vaultlink/internal/core"
)

func runCollect(args []string) error {
	fs := flag.NewFlagSet("collect", flag.ContinueOnError)
	vault := fs.String("vault", ".", "vault root directory")
	out := fs.String("out", "", "destination root for collected attachments (required)")
	subdir := fs.String("subdir", "obsidian", "subdirectory inside the destination root")
	prefix := fs.String("prefix", "", "link prefix for rewritten attachment links")
	imagesOnly := fs.Bool("images-only", false, "collect only image resources")
	dryRun := fs.Bool("dry-run", false, "report changes without copying or writing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := core.Collect(*vault, core.CollectOptions{
		OutDir:     *out,
		Subdir:     *subdir,
		Prefix:     *prefix,
		ImagesOnly: *imagesOnly,
		DryRun:     *dryRun,
	}, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "rewrote %d notes, copied %d attachments, %d missing\n",
		result.Notes, len(result.Copied), len(result.Missing))
	return nil
}
