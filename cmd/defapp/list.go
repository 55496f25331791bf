package main

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"defapp/internal/platform"
	"defapp/pkg/types"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked extensions and their default applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := platform.New(cfg)
			associations, err := engine.ListFileAssociations()
			if err != nil {
				return err
			}

			if filter != "" {
				associations, err = filterAssociations(associations, filter)
				if err != nil {
					return err
				}
			}

			fmt.Println(renderAssociations(associations))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "glob pattern over extensions (e.g. 'j*')")
	return cmd
}

func filterAssociations(list []types.FileAssociation, pattern string) ([]types.FileAssociation, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
	}

	filtered := make([]types.FileAssociation, 0, len(list))
	for _, a := range list {
		if g.Match(a.Extension) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}
