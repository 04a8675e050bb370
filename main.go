package main

import (
	"os"

	"github.com/janakan-45/banana-brain-blitz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
