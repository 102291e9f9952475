package main

import (
	"os"

	"github.com/gzhole/veritas/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
