package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "ribltd",
		Short: "Serve or reconcile a set of symbols using rateless IBLT coding",
	}
	root.AddCommand(newServeCmd(log))
	root.AddCommand(newDiffCmd(log))
	return root
}
