// Command polykit is the command-line front end for the polynomial engine.
package main

import (
	"os"

	"github.com/roach88/polykit/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	os.Exit(cli.GetExitCode(err))
}
