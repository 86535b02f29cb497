// Command ribltd is a small demo CLI for the riblt set-reconciliation
// module: serve a local symbol set over the wire, or diff a local set
// against a remote one and print the symmetric difference.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ribltd: building logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := newRootCmd(log).Execute(); err != nil {
		log.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
