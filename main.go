package main

import (
	"os"

	"github.com/svsports/dugoutpulse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
