package main

import (
	"os"

	"github.com/metaview/metaview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
