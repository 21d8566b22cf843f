package main

import (
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"
)

func deleteCmd() *cobra.Command {
	var ignoreMissing bool

	cmd := &cobra.Command{
		Use:   "delete SHEET",
		Short: "Delete a worksheet by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, _, err := openSession(cmd.Context())
			if err != nil {
				return err
			}

			if err := sp.DeleteWorksheet(cmd.Context(), args[0], ignoreMissing); err != nil {
				return err
			}
			log.Infof("Deleted worksheet %q", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "Do not fail if the worksheet does not exist")

	return cmd
}
