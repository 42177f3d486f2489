// Command decafc is the Decaf compiler's command-line front end.
package main

import (
	"os"

	"github.com/decaflang/decaf/cmd/decafc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
