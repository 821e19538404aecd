package main

import (
	"os"

	"github.com/arjunv/praktis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
