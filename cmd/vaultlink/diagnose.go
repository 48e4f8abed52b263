package main

import (
	"flag"
	"os"

	"github.com/littlekj/vaultlink/internal/core"
)

func runDiagnose(args []string) error {
	fs := flag.NewFlagSet("diagnose", flag.ContinueOnError)
	vault := fs.String("vault", ".", "vault root directory")
	format := fs.String("format", "text", "output format (json or text)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validateFormat(*format); err != nil {
		return err
	}

	result, err := core.Diagnose(*vault)
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		return printDiagnoseJSON(os.Stdout, result)
	default:
		return printDiagnoseText(os.Stdout, result)
	}
}
