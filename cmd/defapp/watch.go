package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"defapp/internal/handlers"
	"defapp/internal/log"
	"defapp/internal/platform"
	"defapp/internal/registry"
	"defapp/internal/watch"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-list associations whenever the handler registry changes",
		Long: `Watch the LaunchServices preference file and the extension registry for
external rewrites and print the refreshed association table on every change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := platform.New(cfg)

			watcher, err := watch.New()
			if err != nil {
				return err
			}
			defer watcher.Stop()

			for _, path := range watchTargets() {
				if err := watcher.AddFile(path); err != nil {
					log.Warnf("not watching %s: %v", path, err)
				}
			}
			watcher.Start()

			associations, err := engine.ListFileAssociations()
			if err != nil {
				return err
			}
			fmt.Println(renderAssociations(associations))

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

			for {
				select {
				case change := <-watcher.Changes():
					log.Info("handler registry changed: %s", change.Path)
					associations, err := engine.ListFileAssociations()
					if err != nil {
						log.Errorf("refresh failed: %v", err)
						continue
					}
					fmt.Println(renderAssociations(associations))
				case <-interrupt:
					return nil
				}
			}
		},
	}
}

// watchTargets returns the backing files to monitor, honoring config
// overrides.
func watchTargets() []string {
	var targets []string

	prefPath := cfg.Paths.PreferenceFile
	if prefPath == "" {
		if p, err := handlers.DefaultPath(); err == nil {
			prefPath = p
		}
	}
	if prefPath != "" {
		targets = append(targets, prefPath)
	}

	regPath := cfg.Paths.RegistryFile
	if regPath == "" {
		if p, err := registry.DefaultPath(); err == nil {
			regPath = p
		}
	}
	if regPath != "" {
		targets = append(targets, regPath)
	}

	return targets
}
