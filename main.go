package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/harrisonrobin/goalplan/pkg/cli"
)

var version = "0.1.0"

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
