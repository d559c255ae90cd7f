// Command fluentsql runs fluent queries against JSON or YAML collection files.
//
// Usage: fluentsql query people.json --where category=Developer --select name --order-by name
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := NewCLI(os.Stdin, os.Stdout, os.Stderr)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
