package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"defapp/internal/platform"
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <extension>",
		Short: "Track an additional file extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := platform.New(cfg)
			associations, err := engine.AddExtension(args[0])
			if err != nil {
				return err
			}
			fmt.Println(renderAssociations(associations))
			return nil
		},
	}
}
