package main

import (
	"os"

	"optrack/cmd/optrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
