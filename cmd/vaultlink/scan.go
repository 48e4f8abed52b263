package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/littlekj/vaultlink/internal/core"
)

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	vault := fs.String("vault", ".", "vault root directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := core.Scan(*vault, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "indexed %d notes, %d links (%d missing, %d escaped)\n",
		result.Notes, result.Links, result.Missing, result.Escaped)
	return nil
}
