package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/littlekj/vaultlink/internal/core"
)

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	vault := fs.String("vault", ".", "vault root directory")
	dryRun := fs.Bool("dry-run", false, "report changes without writing files")
	jobs := fs.Int("jobs", 1, "number of parallel workers")
	var files multiString
	fs.Var(&files, "file", "limit to a vault-relative file (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := core.Convert(*vault, core.ConvertOptions{
		DryRun: *dryRun,
		Files:  files,
		Jobs:   *jobs,
	}, nil)
	if err != nil {
		return err
	}

	for _, f := range result.Changed {
		fmt.Fprintln(os.Stdout, f)
	}
	fmt.Fprintf(os.Stdout, "processed %d files, changed %d, failed %d\n",
		result.Processed, len(result.Changed), len(result.Failed))
	return nil
}
