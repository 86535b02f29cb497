package main

import (
	"fmt"
	"net"

	"github.com/samWighton/rateless-iblt/riblt"
	"github.com/samWighton/rateless-iblt/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(log *zap.Logger) *cobra.Command {
	var addr, setPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local symbol set for reconciliation by a peer",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadSet(setPath)
			if err != nil {
				return err
			}
			log.Info("loaded symbol set", zap.Int("symbols", set.Len()))

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}
			defer ln.Close()
			log.Info("listening", zap.String("addr", ln.Addr().String()))

			codec := riblt.NewManagedCodec(set)
			srv := transport.NewServer(codec, log)
			return srv.Serve(cmd.Context(), ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9000", "address to listen on")
	cmd.Flags().StringVar(&setPath, "set", "", "path to a newline-delimited hex symbol file")
	cmd.MarkFlagRequired("set")

	return cmd
}
