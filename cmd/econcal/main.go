package main

import (
	"os"

	"github.com/mstrand/econcal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
