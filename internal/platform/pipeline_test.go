package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"defapp/internal/handlers"
	"defapp/internal/locate"
	"defapp/internal/registry"
	"defapp/pkg/types"
)

func writeBundle(t *testing.T, dir, name string, info map[string]interface{}) string {
	t.Helper()
	appPath := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Join(appPath, "Contents"), 0o755))
	data, err := plist.MarshalIndent(info, plist.XMLFormat, "\t")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(appPath, "Contents", "Info.plist"), data, 0o644))
	return appPath
}

func noSystemDefault(string) (string, bool) { return "", false }

func newTestPipeline(t *testing.T, systemDefault func(string) (string, bool)) (*pipeline, *handlers.Store, string) {
	t.Helper()
	dir := t.TempDir()
	appsRoot := filepath.Join(dir, "Applications")
	require.NoError(t, os.MkdirAll(appsRoot, 0o755))

	store := handlers.New(filepath.Join(dir, "launchservices.plist"))
	p := &pipeline{
		registry:      registry.New(filepath.Join(dir, "extensions.json")),
		store:         store,
		locator:       locate.NewWithRoots(appsRoot),
		systemDefault: systemDefault,
	}
	return p, store, appsRoot
}

func findEntry(t *testing.T, list []types.FileAssociation, ext string) types.FileAssociation {
	t.Helper()
	for _, a := range list {
		if a.Extension == ext {
			return a
		}
	}
	t.Fatalf("no entry for %q in %v", ext, list)
	return types.FileAssociation{}
}

func TestListWithoutAnyHandlers(t *testing.T) {
	p, _, _ := newTestPipeline(t, noSystemDefault)

	list, err := p.list()
	require.NoError(t, err)

	entry := findEntry(t, list, "pdf")
	assert.Equal(t, nameNotSet, entry.ApplicationName)
	assert.Equal(t, "", entry.ApplicationPath)
}

func TestListResolvesHandlerEntries(t *testing.T) {
	p, store, appsRoot := newTestPipeline(t, noSystemDefault)
	appPath := writeBundle(t, appsRoot, "Editor.app", map[string]interface{}{
		"CFBundleIdentifier":  "com.example.editor",
		"CFBundleDisplayName": "Editor",
	})

	doc, err := store.Load()
	require.NoError(t, err)
	doc.UpsertExtension("md", "com.example.editor")
	require.NoError(t, store.Save(doc))

	list, err := p.list()
	require.NoError(t, err)

	entry := findEntry(t, list, "md")
	assert.Equal(t, "Editor", entry.ApplicationName)
	assert.Equal(t, appPath, entry.ApplicationPath)
}

func TestListDegradesWhenPathUnresolvable(t *testing.T) {
	p, store, _ := newTestPipeline(t, noSystemDefault)

	doc, err := store.Load()
	require.NoError(t, err)
	doc.UpsertExtension("zip", "com.example.ghostApp")
	require.NoError(t, store.Save(doc))

	list, err := p.list()
	require.NoError(t, err)

	entry := findEntry(t, list, "zip")
	assert.Equal(t, "ghost App"+pathNotFoundSuffix, entry.ApplicationName)
	assert.NotEmpty(t, entry.ApplicationPath, "path field carries the error text")
}

func TestListFallsBackToSystemDefault(t *testing.T) {
	var queried []string
	systemDefault := func(contentType string) (string, bool) {
		queried = append(queried, contentType)
		if contentType == "public.png" {
			return "com.example.viewer", true
		}
		return "", false
	}

	p, _, appsRoot := newTestPipeline(t, systemDefault)
	appPath := writeBundle(t, appsRoot, "Viewer.app", map[string]interface{}{
		"CFBundleIdentifier":  "com.example.viewer",
		"CFBundleDisplayName": "Viewer",
	})

	list, err := p.list()
	require.NoError(t, err)

	entry := findEntry(t, list, "png")
	assert.Equal(t, "Viewer", entry.ApplicationName)
	assert.Equal(t, appPath, entry.ApplicationPath)

	// Extensions outside the content-type table query the synthesized
	// generic identifier.
	assert.Contains(t, queried, "public.gitignore")
}

func TestListSystemDefaultWithoutInstallPath(t *testing.T) {
	systemDefault := func(contentType string) (string, bool) {
		if contentType == "com.adobe.pdf" {
			return "com.example.cloudReader", true
		}
		return "", false
	}

	p, _, _ := newTestPipeline(t, systemDefault)
	list, err := p.list()
	require.NoError(t, err)

	entry := findEntry(t, list, "pdf")
	assert.Equal(t, "cloud Reader", entry.ApplicationName)
	assert.Equal(t, "", entry.ApplicationPath)
}

func TestAddedExtensionAppearsOnce(t *testing.T) {
	p, _, _ := newTestPipeline(t, noSystemDefault)

	_, err := p.registry.Add("RTF")
	require.NoError(t, err)
	_, err = p.registry.Add("rtf")
	require.NoError(t, err)

	list, err := p.list()
	require.NoError(t, err)

	count := 0
	for _, a := range list {
		if a.Extension == "rtf" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
