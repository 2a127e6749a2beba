package main

import (
	"fmt"
	"os"

	"github.com/idilsaglam/recipes/internal/cli"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	code := cli.Run(os.Args[1:], cli.Options{Version: version})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
