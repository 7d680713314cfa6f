// kartctl is the command-line client for the CampusKart marketplace.
package main

import "github.com/campuskart/campuskart/cmd/kartctl/cmd"

func main() {
	cmd.Execute()
}
