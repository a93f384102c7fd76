package main

import (
	"fmt"
	"os"

	"github.com/mkarlsen/docker-meta-exporter/injector"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: inject-key <key_file> <config_file>")
		os.Exit(1)
	}

	keyPath := os.Args[1]
	configPath := os.Args[2]

	fmt.Printf("Injecting key from %s into %s\n", keyPath, configPath)

	if err := injector.Inject(keyPath, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Successfully injected key.")
}
