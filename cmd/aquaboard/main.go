// aquaboard is the water-extraction permit dashboard service: an API server,
// a one-shot KPI report, and database seeding, all under one command tree.
package main

import (
	"fmt"
	"os"

	"github.com/aquaboard/aquaboard/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
