package main

import (
	"github.com/joho/godotenv"

	"newsdash/cli"
)

// Overridden at build time with -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cli.SetVersionInfo(version, commit, date)
	cli.Execute()
}
