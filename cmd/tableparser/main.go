package main

import (
	"os"

	"github.com/RedSunAtNight/TableParser/internal/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
