package registry_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defapp/internal/errors"
	"defapp/internal/registry"
)

func registryPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "extensions.json")
}

func TestNormalize(t *testing.T) {
	t.Run("strips a leading dot and lower-cases", func(t *testing.T) {
		assert.Equal(t, "txt", registry.Normalize(".TXT"))
		assert.Equal(t, "md", registry.Normalize("MD"))
		assert.Equal(t, "c++", registry.Normalize(".C++"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		for _, raw := range []string{".TXT", "pdf", ".tar", "c++", " .Log "} {
			once := registry.Normalize(raw)
			assert.Equal(t, once, registry.Normalize(once), "normalize(%q)", raw)
		}
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, registry.Validate("txt"))
	assert.NoError(t, registry.Validate("c++"))
	assert.NoError(t, registry.Validate("7z"))

	for _, bad := range []string{"", "a b", "tar.gz", "漢字"} {
		err := registry.Validate(bad)
		require.Error(t, err, "Validate(%q)", bad)
		assert.Equal(t, errors.InvalidExtension, errors.KindOf(err))
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields the sorted default list", func(t *testing.T) {
		reg := registry.New(registryPath(t))
		list, err := reg.Load()
		require.NoError(t, err)
		assert.Contains(t, list, "pdf")
		assert.Contains(t, list, "docx")
		assert.IsIncreasing(t, list)
	})

	t.Run("unions stored extensions with defaults", func(t *testing.T) {
		path := registryPath(t)
		require.NoError(t, os.WriteFile(path, []byte(`["rtf", ".XCF"]`), 0o644))

		reg := registry.New(path)
		list, err := reg.Load()
		require.NoError(t, err)
		assert.Contains(t, list, "rtf")
		assert.Contains(t, list, "xcf")
		assert.Contains(t, list, "pdf")
		assert.IsIncreasing(t, list)
	})

	t.Run("extra defaults join the set", func(t *testing.T) {
		reg := registry.New(registryPath(t), "EPUB")
		list, err := reg.Load()
		require.NoError(t, err)
		assert.Contains(t, list, "epub")
	})

	t.Run("corrupt file surfaces a parse error", func(t *testing.T) {
		path := registryPath(t)
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

		reg := registry.New(path)
		_, err := reg.Load()
		require.Error(t, err)
		assert.Equal(t, errors.ConfigParse, errors.KindOf(err))
	})
}

func TestAdd(t *testing.T) {
	t.Run("normalizes, persists and returns the full set", func(t *testing.T) {
		path := registryPath(t)
		reg := registry.New(path)

		list, err := reg.Add("RTF")
		require.NoError(t, err)
		assert.Contains(t, list, "rtf")
		assert.IsIncreasing(t, list)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var stored []string
		require.NoError(t, json.Unmarshal(data, &stored))
		assert.Contains(t, stored, "rtf")
	})

	t.Run("is idempotent", func(t *testing.T) {
		reg := registry.New(registryPath(t))

		first, err := reg.Add("rtf")
		require.NoError(t, err)
		second, err := reg.Add(".RTF")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		count := 0
		for _, ext := range second {
			if ext == "rtf" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("adding an already-tracked default performs no write", func(t *testing.T) {
		path := registryPath(t)
		reg := registry.New(path)

		_, err := reg.Add("pdf")
		require.NoError(t, err)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "no backing file should be created")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		reg := registry.New(registryPath(t))
		for _, bad := range []string{"", ".", "a b"} {
			_, err := reg.Add(bad)
			require.Error(t, err, "Add(%q)", bad)
			assert.Equal(t, errors.InvalidExtension, errors.KindOf(err))
		}
	})
}
