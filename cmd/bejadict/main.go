package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/fredkneeland/beja-dict-parser/cmd/bejadict/commands"
)

func main() {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
