package main

import (
	"fmt"
	"os"

	"github.com/Epistemic-Technology/pdfsplit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pdfsplit: %v\n", err)
		os.Exit(1)
	}
}
