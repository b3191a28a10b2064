// Command threatgraph compiles a YAML threat model into a graph and answers
// queries over it: property and attack trees, mitigation coverage,
// outstanding attacks, and Graphviz export.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
