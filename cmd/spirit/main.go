// Command spirit runs the contact tracing protocol end to end on simulated users.
package main

import (
	"os"
)

func main() {
	// cobra already printed the error and usage
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
