// ./main.go
package main

import (
	"github.com/xkilldash9x/exposcan/cmd"
)

// main is the entry point for the exposcan application.
func main() {
	// Execute the root command defined in the cmd package.
	// This handles all command-line parsing, configuration, and execution.
	cmd.Execute()
}
