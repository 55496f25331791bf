//go:build !darwin

package platform

import (
	"defapp/internal/config"
	"defapp/internal/errors"
	"defapp/internal/registry"
	"defapp/pkg/types"
)

// stubEngine is the fixed-result implementation for platforms without a
// LaunchServices registry.
type stubEngine struct{}

const unsupportedName = "Unsupported platform"

func newEngine(_ *config.Config) Engine {
	return &stubEngine{}
}

func (*stubEngine) CheckFullDiskAccess() (bool, error) {
	return true, nil
}

func (*stubEngine) OpenFullDiskAccessSettings() error {
	return errors.New(errors.CommandFailed, "opening system settings is only supported on macOS")
}

func (*stubEngine) ListFileAssociations() ([]types.FileAssociation, error) {
	results := make([]types.FileAssociation, 0, len(registry.DefaultExtensions))
	for _, ext := range registry.DefaultExtensions {
		results = append(results, types.FileAssociation{
			Extension:       ext,
			ApplicationName: unsupportedName,
			ApplicationPath: "",
		})
	}
	return results, nil
}

func (s *stubEngine) AddExtension(_ string) ([]types.FileAssociation, error) {
	return s.ListFileAssociations()
}

func (*stubEngine) SetDefaultApplication(_, _ string) error {
	return errors.New(errors.CommandFailed, "changing default applications is only supported on macOS")
}
