package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"defapp/internal/platform"
)

// NewAccessCmd creates the access command
func NewAccessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access",
		Short: "Check whether full disk access is granted",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := platform.New(cfg)
			granted, err := engine.CheckFullDiskAccess()
			if err != nil {
				return err
			}
			if granted {
				fmt.Println("✅ Full disk access is granted")
			} else {
				fmt.Println("⚠️ Full disk access is not granted; run 'defapp settings' to open the settings pane")
			}
			return nil
		},
	}
}

// NewSettingsCmd creates the settings command
func NewSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Open the full disk access settings pane",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := platform.New(cfg)
			return engine.OpenFullDiskAccessSettings()
		},
	}
}
