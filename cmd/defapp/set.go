package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"defapp/internal/platform"
)

// NewSetCmd creates the set command
func NewSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <extension> <application-path>",
		Short: "Assign the default application for an extension",
		Long: `Assign the application at the given path as the default handler for an
extension. The path may be a plain path, a ~-relative path or a file:// URL,
and may point anywhere inside the application bundle.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := platform.New(cfg)
			if err := engine.SetDefaultApplication(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✅ Default application for .%s updated\n", args[0])
			return nil
		},
	}
}
