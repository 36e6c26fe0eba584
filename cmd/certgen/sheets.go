package main

import (
	"fmt"

	"certgen/internal/export"

	"github.com/spf13/cobra"
)

func newSheetsCmd() *cobra.Command {
	var workbook string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List the sheets of a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := export.ListSheets(workbook)
			if err != nil {
				return err
			}
			for i, name := range names {
				fmt.Printf("%3d. %s\n", i+1, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workbook, "workbook", "w", "", "Workbook to inspect")
	cmd.MarkFlagRequired("workbook")
	return cmd
}
