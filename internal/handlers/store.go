// Package handlers reads and mutates the LaunchServices handler registry: the
// LSHandlers array inside the per-user launchservices secure plist. The store
// only ever touches the role field of an entry; every other field and the
// entry order survive a load/save round trip.
package handlers

import (
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"

	"defapp/internal/errors"
)

const (
	keyHandlers        = "LSHandlers"
	keyContentTag      = "LSHandlerContentTag"
	keyContentTagClass = "LSHandlerContentTagClass"
	keyContentType     = "LSHandlerContentType"
	keyRoleAll         = "LSHandlerRoleAll"
	keyRoleViewer      = "LSHandlerRoleViewer"

	// tagClassExtension marks an entry as keyed by file-name extension.
	tagClassExtension = "public.filename-extension"
)

// Store loads and saves the preference file. Every operation is a fresh
// load-mutate-save cycle; no locking is performed, concurrent writers race
// under last-write-wins.
type Store struct {
	path string
}

// New creates a Store backed by the given plist path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user LaunchServices preference file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.HomeDirUnavailable, "cannot locate LaunchServices preferences", err)
	}
	return filepath.Join(home,
		"Library", "Preferences", "com.apple.LaunchServices",
		"com.apple.launchservices.secure.plist"), nil
}

// Document is an in-memory view of the preference plist. The LSHandlers
// collection is guaranteed to exist after a successful Load; the synthesized
// empty collection is not persisted until the next Save.
type Document struct {
	root map[string]interface{}
}

// Load reads and parses the preference file. A missing file yields an empty
// document.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{root: map[string]interface{}{
				keyHandlers: []interface{}{},
			}}, nil
		}
		return nil, errors.Wrap(errors.ConfigIO, "reading preference file", err)
	}

	var value interface{}
	if _, err := plist.Unmarshal(data, &value); err != nil {
		return nil, errors.Wrap(errors.ConfigParse, "parsing preference file", err)
	}
	root, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.ErrMissingHandlers
	}
	if _, ok := root[keyHandlers]; !ok {
		root[keyHandlers] = []interface{}{}
	}
	return &Document{root: root}, nil
}

// Save serializes the whole document back to the preference file as an XML
// plist, creating parent directories as needed. This rewrites the file
// wholesale; fields a concurrent writer set since Load are clobbered.
func (s *Store) Save(doc *Document) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ConfigIO, "creating preference directory", err)
		}
	}
	data, err := plist.MarshalIndent(doc.root, plist.XMLFormat, "\t")
	if err != nil {
		return errors.Wrap(errors.ConfigParse, "encoding preference file", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrap(errors.ConfigIO, "writing preference file", err)
	}
	return nil
}

// Handlers returns the LSHandlers array, or MissingHandlers when the loaded
// document cannot be coerced to one.
func (d *Document) Handlers() ([]interface{}, error) {
	arr, ok := d.root[keyHandlers].([]interface{})
	if !ok {
		return nil, errors.ErrMissingHandlers
	}
	return arr, nil
}

// FindHandler returns the bundle identifier responsible for an extension. An
// entry matches if its tag equals the extension and its tag class marks a
// file-name extension, or if its content type equals contentType (pass ""
// when the extension has no known content type). The first structurally
// matching entry wins; conflicting later entries are not reconciled. The
// all-roles field is preferred, the viewer role is the fallback.
func (d *Document) FindHandler(extension, contentType string) (string, bool) {
	arr, err := d.Handlers()
	if err != nil {
		return "", false
	}
	normalized := strings.ToLower(extension)

	for _, item := range arr {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		tag, _ := entry[keyContentTag].(string)
		tagClass, _ := entry[keyContentTagClass].(string)
		matchesExtension := strings.ToLower(tag) == normalized && tagClass == tagClassExtension

		matchesContentType := false
		if contentType != "" {
			ct, _ := entry[keyContentType].(string)
			matchesContentType = ct == contentType
		}

		if !matchesExtension && !matchesContentType {
			continue
		}
		if id, ok := entry[keyRoleAll].(string); ok && id != "" {
			return id, true
		}
		if id, ok := entry[keyRoleViewer].(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

// UpsertExtension binds an extension-tag entry to bundleID. An existing entry
// keyed by the same extension keeps all of its fields; only the all-roles
// field is overwritten. Otherwise a minimal new entry is appended.
func (d *Document) UpsertExtension(extension, bundleID string) {
	arr, err := d.Handlers()
	if err != nil {
		return
	}
	normalized := strings.ToLower(extension)

	for _, item := range arr {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		tag, _ := entry[keyContentTag].(string)
		tagClass, _ := entry[keyContentTagClass].(string)
		if strings.ToLower(tag) == normalized && tagClass == tagClassExtension {
			entry[keyRoleAll] = bundleID
			return
		}
	}

	d.root[keyHandlers] = append(arr, map[string]interface{}{
		keyContentTag:      normalized,
		keyContentTagClass: tagClassExtension,
		keyRoleAll:         bundleID,
	})
}

// UpsertContentType binds a content-type entry to bundleID, same in-place
// rules as UpsertExtension.
func (d *Document) UpsertContentType(contentType, bundleID string) {
	arr, err := d.Handlers()
	if err != nil {
		return
	}

	for _, item := range arr {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if ct, _ := entry[keyContentType].(string); ct == contentType {
			entry[keyRoleAll] = bundleID
			return
		}
	}

	d.root[keyHandlers] = append(arr, map[string]interface{}{
		keyContentType: contentType,
		keyRoleAll:     bundleID,
	})
}
