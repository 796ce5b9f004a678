// Command rrr loads an AIGER network, runs it through the scheduler,
// and writes back the best network found in the final pool.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
