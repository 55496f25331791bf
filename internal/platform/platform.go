// Package platform exposes the default-application engine operations behind
// an OS-specific implementation. On macOS the operations work against the
// LaunchServices handler registry; everywhere else they are stubs reporting
// an unsupported platform.
package platform

import (
	"defapp/internal/config"
	"defapp/pkg/types"
)

// Engine exposes the engine operations to the command layer.
type Engine interface {
	// CheckFullDiskAccess probes a few known protected files and reports
	// whether any could be opened.
	CheckFullDiskAccess() (bool, error)

	// OpenFullDiskAccessSettings opens the OS settings pane for full disk
	// access.
	OpenFullDiskAccessSettings() error

	// ListFileAssociations resolves every tracked extension to its default
	// application. Individual lookups degrade to placeholder values; the
	// listing as a whole only fails on registry or preference file errors.
	ListFileAssociations() ([]types.FileAssociation, error)

	// AddExtension starts tracking an extension and returns the refreshed
	// association list. Adding an already-tracked extension is a no-op.
	AddExtension(extension string) ([]types.FileAssociation, error)

	// SetDefaultApplication durably assigns the application at appPath as the
	// default handler for the extension.
	SetDefaultApplication(extension, appPath string) error
}

// New returns the Engine implementation for the current OS.
func New(cfg *config.Config) Engine {
	if cfg == nil {
		cfg = config.New()
	}
	return newEngine(cfg)
}
