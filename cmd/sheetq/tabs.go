package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func tabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List worksheet names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, _, err := openSession(cmd.Context())
			if err != nil {
				return err
			}

			names, err := sp.WorksheetNames(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}
