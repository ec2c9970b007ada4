package main

import (
	"github.com/spendforprogress/pledge/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Optional per-directory overrides (PLEDGE_DATA_DIR etc.).
	_ = godotenv.Load()

	cmd.Execute()
}
