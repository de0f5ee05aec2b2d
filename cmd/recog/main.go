package main

import (
	"os"

	"github.com/gnolang/recog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
