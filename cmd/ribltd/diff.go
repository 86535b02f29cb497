package main

import (
	"encoding/hex"
	"fmt"

	"github.com/samWighton/rateless-iblt/reconcile"
	"github.com/samWighton/rateless-iblt/riblt"
	"github.com/samWighton/rateless-iblt/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDiffCmd(log *zap.Logger) *cobra.Command {
	var addr, setPath string
	var maxWatermark uint64

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Reconcile a local symbol set against a remote peer and print the difference",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadSet(setPath)
			if err != nil {
				return err
			}
			log.Info("loaded symbol set", zap.Int("symbols", set.Len()))

			client, err := transport.Dial(cmd.Context(), addr)
			if err != nil {
				return err
			}
			defer client.Close()

			sess := reconcile.NewSession(set, client,
				reconcile.WithMaxWatermark(maxWatermark),
				reconcile.WithLogger(log))

			added, removed, err := sess.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}

			// Sign convention: '+' is local-only (present here, absent on the
			// remote peer), '-' is remote-only.
			for _, sym := range added {
				fmt.Fprintf(cmd.OutOrStdout(), "+%s\n", hexOf(sym))
			}
			for _, sym := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "-%s\n", hexOf(sym))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address of the remote peer, host:port")
	cmd.Flags().StringVar(&setPath, "set", "", "path to a newline-delimited hex symbol file")
	cmd.Flags().Uint64Var(&maxWatermark, "max-watermark", 1<<20, "give up after extending the coded-symbol prefix this far")
	cmd.MarkFlagRequired("addr")
	cmd.MarkFlagRequired("set")

	return cmd
}

func hexOf(sym riblt.Symbol) string {
	b, ok := sym.(riblt.ByteSymbol)
	if !ok {
		return fmt.Sprintf("%v", sym)
	}
	return hex.EncodeToString(b)
}
