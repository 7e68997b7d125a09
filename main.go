// The main package for the siteatlas executable.
package main

import (
	"github.com/atlasdocs/siteatlas/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
