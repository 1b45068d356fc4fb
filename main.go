package main

import (
	"os"

	"github.com/abhisek/lingocalm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
