// Command raazctl manages the Raaz song catalog from the terminal: it can
// scan library folders, list and search the catalog, and toggle favorites
// without starting the GUI player.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
