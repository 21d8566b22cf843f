package main

import (
	"github.com/spf13/cobra"

	"sheetq/pkg/config"
	"sheetq/pkg/preview"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered previews over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Open(cfgPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = store.Settings.ListenAddress
			}
			return preview.StartServer(addr, store.Settings.PreviewDir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
