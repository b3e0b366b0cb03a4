package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/abonetti/vetprep/cmd"
)

func main() {
	// Optional .env in the working directory, for local development.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
