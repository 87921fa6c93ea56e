package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/noah-isme/coaching-conflict-api/internal/cli"
)

func main() {
	app := cli.NewApp()
	if err := app.Execute(); err != nil {
		if errors.Is(err, cli.ErrConflictsFound) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
