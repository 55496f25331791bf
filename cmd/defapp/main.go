package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"defapp/internal/config"
	"defapp/internal/log"
)

var (
	version = "dev"

	cfgFile   string
	debugFlag bool
	cfg       *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "defapp",
		Short:   "Inspect and change default applications by file extension",
		Long: `Defapp tracks a set of file extensions and shows which installed
application the system treats as their default handler. It can durably
reassign a default across the LaunchServices handler registry, the native
preference cache and the duti association tool.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				fmt.Printf("⚠️ Warning: %v\n", configErr)
				fmt.Println("💡 Using default settings.")
				cfg = config.New()
			}
			log.SetDebug(debugFlag || cfg.Settings.Debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/defapp/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewAddCmd())
	rootCmd.AddCommand(NewSetCmd())
	rootCmd.AddCommand(NewAccessCmd())
	rootCmd.AddCommand(NewSettingsCmd())
	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}

// Entry point for the application
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
