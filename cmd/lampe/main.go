// Command lampe is the process entrypoint; it delegates entirely to
// pkg/cli (teacher convention: cmd/<bin>/main.go stays a thin wrapper).
package main

import (
	"os"

	"github.com/montagne-dev/lampe/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
