package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defapp/internal/config"
	"defapp/pkg/types"
)

func sampleAssociations() []types.FileAssociation {
	return []types.FileAssociation{
		{Extension: "jpg", ApplicationName: "Preview", ApplicationPath: "/Applications/Preview.app"},
		{Extension: "json", ApplicationName: "Editor", ApplicationPath: "/Applications/Editor.app"},
		{Extension: "pdf", ApplicationName: "Reader", ApplicationPath: "/Applications/Reader.app"},
	}
}

func TestFilterAssociations(t *testing.T) {
	t.Run("keeps matching extensions", func(t *testing.T) {
		filtered, err := filterAssociations(sampleAssociations(), "j*")
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, "jpg", filtered[0].Extension)
		assert.Equal(t, "json", filtered[1].Extension)
	})

	t.Run("non-matching pattern yields an empty list, not an error", func(t *testing.T) {
		filtered, err := filterAssociations(sampleAssociations(), "zzz*")
		require.NoError(t, err)
		assert.Empty(t, filtered)

		// The empty result still renders as a header-only table.
		out := renderAssociations(filtered)
		assert.Contains(t, out, "EXTENSION")
		assert.NotContains(t, out, "jpg")
	})

	t.Run("invalid pattern errors", func(t *testing.T) {
		_, err := filterAssociations(sampleAssociations(), "[")
		assert.Error(t, err)
	})
}

func TestWatchTargets(t *testing.T) {
	t.Run("honors config overrides", func(t *testing.T) {
		cfg = config.New()
		cfg.Paths.PreferenceFile = "/tmp/defapp/launchservices.plist"
		cfg.Paths.RegistryFile = "/tmp/defapp/extensions.json"

		assert.Equal(t, []string{
			"/tmp/defapp/launchservices.plist",
			"/tmp/defapp/extensions.json",
		}, watchTargets())
	})

	t.Run("falls back to the per-user defaults", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		cfg = config.New()

		targets := watchTargets()
		require.Len(t, targets, 2)
		assert.Equal(t, filepath.Join(home,
			"Library", "Preferences", "com.apple.LaunchServices",
			"com.apple.launchservices.secure.plist"), targets[0])
		assert.Equal(t, filepath.Join(home,
			"Library", "Application Support", "Default Application Manager",
			"extensions.json"), targets[1])
	})
}
