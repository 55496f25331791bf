package bundle_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"defapp/internal/bundle"
	"defapp/internal/errors"
)

// writeBundle lays out a minimal application bundle with the given info keys.
func writeBundle(t *testing.T, dir, name string, info map[string]interface{}) string {
	t.Helper()
	appPath := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Join(appPath, "Contents"), 0o755))
	data, err := plist.MarshalIndent(info, plist.XMLFormat, "\t")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(appPath, "Contents", "Info.plist"), data, 0o644))
	return appPath
}

func TestIdentifier(t *testing.T) {
	t.Run("reads the declared identifier", func(t *testing.T) {
		appPath := writeBundle(t, t.TempDir(), "Editor.app", map[string]interface{}{
			"CFBundleIdentifier": "com.example.editor",
		})

		id, err := bundle.Identifier(appPath)
		require.NoError(t, err)
		assert.Equal(t, "com.example.editor", id)
	})

	t.Run("missing info file fails", func(t *testing.T) {
		appPath := filepath.Join(t.TempDir(), "Ghost.app")
		require.NoError(t, os.MkdirAll(appPath, 0o755))

		_, err := bundle.Identifier(appPath)
		require.Error(t, err)
		assert.Equal(t, errors.MissingBundleInfo, errors.KindOf(err))
	})

	t.Run("missing identifier field fails", func(t *testing.T) {
		appPath := writeBundle(t, t.TempDir(), "Anon.app", map[string]interface{}{
			"CFBundleName": "Anonymous",
		})

		_, err := bundle.Identifier(appPath)
		require.Error(t, err)
		assert.Equal(t, errors.MissingBundleInfo, errors.KindOf(err))
	})
}

func TestDisplayName(t *testing.T) {
	t.Run("prefers the declared display name", func(t *testing.T) {
		appPath := writeBundle(t, t.TempDir(), "Editor.app", map[string]interface{}{
			"CFBundleIdentifier":  "com.example.editor",
			"CFBundleDisplayName": "Super Editor",
			"CFBundleName":        "Editor",
		})
		assert.Equal(t, "Super Editor", bundle.DisplayName(appPath))
	})

	t.Run("falls back to the short name", func(t *testing.T) {
		appPath := writeBundle(t, t.TempDir(), "Editor.app", map[string]interface{}{
			"CFBundleIdentifier": "com.example.editor",
			"CFBundleName":       "Editor",
		})
		assert.Equal(t, "Editor", bundle.DisplayName(appPath))
	})

	t.Run("falls back to the folder stem", func(t *testing.T) {
		appPath := filepath.Join(t.TempDir(), "Mystery.app")
		require.NoError(t, os.MkdirAll(appPath, 0o755))
		assert.Equal(t, "Mystery", bundle.DisplayName(appPath))
	})
}

func TestShortName(t *testing.T) {
	appPath := writeBundle(t, t.TempDir(), "Editor.app", map[string]interface{}{
		"CFBundleName": "Editor",
	})
	assert.Equal(t, "Editor", bundle.ShortName(appPath))

	empty := filepath.Join(t.TempDir(), "Empty.app")
	require.NoError(t, os.MkdirAll(empty, 0o755))
	assert.Equal(t, "", bundle.ShortName(empty))
}

func TestHumanizeIdentifier(t *testing.T) {
	cases := map[string]string{
		"com.example.editor": "editor",
		"com.example.myApp2": "my App 2",
		"com.apple.TextEdit": "Text Edit",
		"org.foo.my_app":     "my app",
		"singleword":         "singleword",
	}
	for input, want := range cases {
		assert.Equal(t, want, bundle.HumanizeIdentifier(input), "HumanizeIdentifier(%q)", input)
	}
}
