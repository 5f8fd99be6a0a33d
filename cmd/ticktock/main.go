package main

import (
	"os"

	"ticktock/cmd/ticktock/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
