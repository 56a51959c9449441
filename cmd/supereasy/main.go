// Command supereasy queries the super_easy_in_app_purchase channel from the
// command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
