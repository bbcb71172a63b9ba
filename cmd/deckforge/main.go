package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nmishin/deckforge/internal/cli"
)

func main() {
	// Load .env if present; absence is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
