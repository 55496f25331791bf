// Package registry maintains the set of file-name extensions the app manages.
// The set is the union of a built-in default list and a per-user JSON file;
// it only ever grows.
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"defapp/internal/errors"
)

const (
	configDirName  = "Default Application Manager"
	extensionsFile = "extensions.json"
)

// DefaultExtensions is the built-in list of extensions tracked before the
// user adds any of their own. Keep in sync with the frontend list.
var DefaultExtensions = []string{
	// Documents
	"doc", "docx", "xls", "xlsx", "ppt", "pptx", "pdf", "txt", "md", "markdown",
	// Images
	"png", "jpg", "jpeg", "gif",
	// Media
	"mp3", "mp4", "mov", "avi",
	// Archives
	"zip", "rar", "7z", "tar", "gz",
	// Web
	"html", "htm", "css", "js", "ts", "jsx", "tsx",
	// Data / config
	"csv", "json", "xml", "yaml", "yml", "toml",
	// Code
	"py", "java", "cpp", "c", "h", "hpp",
	// Scripts
	"sh", "bash", "zsh", "fish",
	// DB / logs / misc
	"sql", "db", "sqlite", "log", "ini", "cfg", "conf",
	// Dev files
	"dockerfile", "gitignore", "env", "key", "pem", "crt",
}

// Registry tracks managed extensions, persisted as a sorted JSON array.
type Registry struct {
	path   string
	extras []string
}

// New creates a Registry backed by the given file path. Extra default
// extensions (e.g. from user configuration) join the built-in list.
func New(path string, extras ...string) *Registry {
	return &Registry{path: path, extras: extras}
}

// DefaultPath returns the per-user registry file location
// (~/Library/Application Support/Default Application Manager/extensions.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.HomeDirUnavailable, "cannot locate extension registry", err)
	}
	return filepath.Join(home, "Library", "Application Support", configDirName, extensionsFile), nil
}

// Normalize strips a single leading dot and lower-cases the extension.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "."))
}

// Validate reports whether a normalized extension is usable: non-empty and
// limited to [a-z0-9+-].
func Validate(normalized string) error {
	if normalized == "" {
		return errors.New(errors.InvalidExtension, "extension must not be empty")
	}
	for _, r := range normalized {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '+' || r == '-':
		default:
			return errors.NewSelectionError(
				"extension may only contain letters, digits, plus or minus",
				normalized, errors.InvalidExtension, nil)
		}
	}
	return nil
}

// Load returns the tracked set: built-in defaults unioned with whatever is
// persisted on disk, sorted. A missing backing file is treated as empty.
func (r *Registry) Load() ([]string, error) {
	set := make(map[string]struct{})
	for _, ext := range DefaultExtensions {
		set[Normalize(ext)] = struct{}{}
	}
	for _, ext := range r.extras {
		if n := Normalize(ext); n != "" {
			set[n] = struct{}{}
		}
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ConfigIO, "reading extension registry", err)
		}
	} else {
		var stored []string
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, errors.Wrap(errors.ConfigParse, "parsing extension registry", err)
		}
		for _, ext := range stored {
			if n := Normalize(ext); n != "" {
				set[n] = struct{}{}
			}
		}
	}

	list := make([]string, 0, len(set))
	for ext := range set {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list, nil
}

// Add normalizes and validates raw, records it when genuinely new, and
// returns the full tracked set. Adding an already-tracked extension is a
// no-op that performs no write.
func (r *Registry) Add(raw string) ([]string, error) {
	normalized := Normalize(raw)
	if err := Validate(normalized); err != nil {
		return nil, err
	}

	list, err := r.Load()
	if err != nil {
		return nil, err
	}
	for _, ext := range list {
		if ext == normalized {
			return list, nil
		}
	}

	list = append(list, normalized)
	sort.Strings(list)
	if err := r.save(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Registry) save(list []string) error {
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ConfigIO, "creating registry directory", err)
		}
	}
	payload, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ConfigParse, "encoding extension registry", err)
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return errors.Wrap(errors.ConfigIO, "writing extension registry", err)
	}
	return nil
}
