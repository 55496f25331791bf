// Package locate resolves bundle identifiers to installed application paths,
// and raw user selections to canonical bundle paths. Identifier resolution is
// an ordered chain of probes tried until one yields a usable path: the
// Spotlight index is fast but can be stale or ambiguous, the bounded
// directory scan is slow but deterministic.
package locate

import (
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"defapp/internal/bundle"
	"defapp/internal/errors"
	"defapp/internal/log"
)

// Locator resolves application locations against a fixed, priority-ordered
// list of canonical application directories.
type Locator struct {
	scanRoots []string
}

// New creates a Locator over the standard application directories plus any
// extra roots (e.g. from user configuration).
func New(extraRoots ...string) *Locator {
	roots := []string{
		"/Applications",
		"/System/Applications",
		"/System/Applications/Utilities",
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, "Applications"))
	}
	roots = append(roots, extraRoots...)
	return &Locator{scanRoots: roots}
}

// NewWithRoots creates a Locator that scans exactly the given roots, in the
// given priority order.
func NewWithRoots(roots ...string) *Locator {
	return &Locator{scanRoots: roots}
}

// probe is one resolution strategy: a path and whether it produced one.
type probe struct {
	name string
	run  func() (string, bool)
}

// Resolve maps a bundle identifier to an installed application path, trying
// each strategy in order and stopping at the first success.
func (l *Locator) Resolve(bundleID string) (string, error) {
	candidates := spotlightCandidates(bundleID)

	probes := []probe{
		{"spotlight-confirmed", func() (string, bool) {
			return confirmedByIdentifier(candidates, bundleID)
		}},
		{"spotlight-preferred-root", func() (string, bool) {
			return underRoot(candidates, l.scanRoots)
		}},
		{"spotlight-first", func() (string, bool) {
			if len(candidates) == 0 {
				return "", false
			}
			return candidates[0], true
		}},
		{"directory-scan", func() (string, bool) {
			return l.scanForIdentifier(bundleID)
		}},
	}

	for _, p := range probes {
		if path, ok := p.run(); ok {
			log.Debugf("resolved %s via %s: %s", bundleID, p.name, path)
			return path, nil
		}
	}
	return "", errors.Newf(errors.AppNotFound, "no installed application found for %s", bundleID)
}

// spotlightCandidates queries the metadata index for bundles declaring the
// identifier. An unavailable or failing index yields no candidates.
func spotlightCandidates(bundleID string) []string {
	query := "kMDItemCFBundleIdentifier == '" + bundleID + "'"
	out, err := exec.Command("mdfind", query).Output()
	if err != nil {
		log.Debugf("mdfind unavailable for %s: %v", bundleID, err)
		return nil
	}

	var candidates []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ".app") {
			candidates = append(candidates, line)
		}
	}
	return candidates
}

// confirmedByIdentifier picks the first candidate whose own info file
// declares the identifier (case-insensitive).
func confirmedByIdentifier(candidates []string, bundleID string) (string, bool) {
	for _, candidate := range candidates {
		id, err := bundle.Identifier(candidate)
		if err != nil {
			continue
		}
		if strings.EqualFold(id, bundleID) {
			return candidate, true
		}
	}
	return "", false
}

// underRoot picks the first candidate located under one of the canonical
// roots, in the roots' priority order.
func underRoot(candidates []string, roots []string) (string, bool) {
	for _, root := range roots {
		prefix := root + string(os.PathSeparator)
		for _, candidate := range candidates {
			if strings.HasPrefix(candidate, prefix) {
				return candidate, true
			}
		}
	}
	return "", false
}

// scanForIdentifier walks each root two levels deep looking for a bundle
// matching the identifier: first by declared identifier (exact, or one
// identifier being a dot-suffix of the other, to tolerate sub-bundle ids),
// then by folder-name or declared short-name substring against the
// identifier's last dot component.
func (l *Locator) scanForIdentifier(bundleID string) (string, bool) {
	want := strings.ToLower(bundleID)
	hint := want
	if idx := strings.LastIndex(want, "."); idx >= 0 {
		hint = want[idx+1:]
	}

	for _, root := range l.scanRoots {
		var apps []string
		collectApps(root, 2, &apps)

		for _, path := range apps {
			id, err := bundle.Identifier(path)
			if err != nil {
				continue
			}
			got := strings.ToLower(id)
			if got == want || strings.HasSuffix(got, "."+want) || strings.HasSuffix(want, "."+got) {
				return path, true
			}
		}

		for _, path := range apps {
			if strings.Contains(strings.ToLower(bundle.Stem(path)), hint) {
				return path, true
			}
			if name := bundle.ShortName(path); name != "" && strings.Contains(strings.ToLower(name), hint) {
				return path, true
			}
		}
	}
	return "", false
}

// collectApps gathers *.app directories under root, recursing at most depth
// levels.
func collectApps(root string, depth int, acc *[]string) {
	if depth == 0 {
		return
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if strings.EqualFold(filepath.Ext(entry.Name()), ".app") {
			*acc = append(*acc, path)
		} else if entry.IsDir() {
			collectApps(path, depth-1, acc)
		}
	}
}

// ResolveUserPath canonicalizes a raw user selection — a file:// URL, a
// ~-relative path, or a plain path — into the enclosing application bundle
// directory. A selection inside a bundle (e.g. .../App.app/Contents/MacOS/App)
// resolves to the bundle root.
func ResolveUserPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	var initial string
	switch {
	case strings.HasPrefix(trimmed, "file://"):
		if strings.HasPrefix(trimmed, "file:///") {
			parsed, err := url.Parse(trimmed)
			if err != nil {
				return "", errors.NewSelectionError("invalid application URL", trimmed, errors.InvalidSelection, err)
			}
			initial = parsed.Path
		} else {
			initial = strings.TrimPrefix(trimmed, "file://")
		}
	case trimmed == "~":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(errors.HomeDirUnavailable, "expanding ~", err)
		}
		initial = home
	case strings.HasPrefix(trimmed, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(errors.HomeDirUnavailable, "expanding ~", err)
		}
		initial = filepath.Join(home, trimmed[2:])
	default:
		initial = trimmed
	}

	expanded := initial
	if resolved, err := filepath.EvalSymlinks(initial); err == nil {
		expanded = resolved
	}
	if abs, err := filepath.Abs(expanded); err == nil {
		expanded = abs
	}

	if _, err := os.Stat(expanded); err != nil {
		return "", errors.NewSelectionError("application path does not exist", trimmed, errors.InvalidSelection, nil)
	}

	// Walk up to the enclosing *.app directory in case the selection points
	// inside the bundle.
	for p := expanded; ; {
		if strings.EqualFold(filepath.Ext(p), ".app") {
			return p, nil
		}
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	return "", errors.NewSelectionError("selection is not inside an application bundle", raw, errors.InvalidSelection, nil)
}
