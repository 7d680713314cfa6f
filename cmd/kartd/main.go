// kartd is the CampusKart reference API server.
package main

import (
	"fmt"
	"os"

	"github.com/campuskart/campuskart/cmd/kartd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
