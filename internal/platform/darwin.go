//go:build darwin

package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"defapp/internal/bundle"
	"defapp/internal/config"
	"defapp/internal/contenttype"
	"defapp/internal/errors"
	"defapp/internal/handlers"
	"defapp/internal/locate"
	"defapp/internal/log"
	"defapp/internal/registry"
	"defapp/pkg/types"
)

type darwinEngine struct {
	cfg *config.Config
}

func newEngine(cfg *config.Config) Engine {
	return &darwinEngine{cfg: cfg}
}

// components builds the per-operation collaborators. Each public operation is
// a self-contained load-mutate-save cycle; nothing is cached between calls.
func (e *darwinEngine) components() (*registry.Registry, *handlers.Store, *locate.Locator, error) {
	regPath := e.cfg.Paths.RegistryFile
	if regPath == "" {
		var err error
		regPath, err = registry.DefaultPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	prefPath := e.cfg.Paths.PreferenceFile
	if prefPath == "" {
		var err error
		prefPath, err = handlers.DefaultPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	reg := registry.New(regPath, e.cfg.Extensions.ExtraDefaults...)
	store := handlers.New(prefPath)
	loc := locate.New(e.cfg.Locator.ExtraScanRoots...)
	return reg, store, loc, nil
}

func (e *darwinEngine) ListFileAssociations() ([]types.FileAssociation, error) {
	reg, store, loc, err := e.components()
	if err != nil {
		return nil, err
	}
	p := &pipeline{
		registry:      reg,
		store:         store,
		locator:       loc,
		systemDefault: copyDefaultRoleHandler,
	}
	return p.list()
}

func (e *darwinEngine) AddExtension(extension string) ([]types.FileAssociation, error) {
	reg, _, _, err := e.components()
	if err != nil {
		return nil, err
	}
	if _, err := reg.Add(extension); err != nil {
		return nil, err
	}
	return e.ListFileAssociations()
}

// SetDefaultApplication commits a new default-application assignment across
// the handler registry, the native LaunchServices default, and the duti
// association tool. The handler registry entry is the durable source of
// truth; the tool/generic-type path and the cache invalidation are
// best-effort.
func (e *darwinEngine) SetDefaultApplication(extension, appPath string) error {
	normalized := registry.Normalize(extension)

	bundlePath, err := locate.ResolveUserPath(appPath)
	if err != nil {
		return err
	}
	bundleID, err := bundle.Identifier(bundlePath)
	if err != nil {
		return err
	}

	reg, store, _, err := e.components()
	if err != nil {
		return err
	}
	if _, err := reg.Add(normalized); err != nil {
		return err
	}

	doc, err := store.Load()
	if err != nil {
		return err
	}
	if _, err := doc.Handlers(); err != nil {
		return err
	}

	doc.UpsertExtension(normalized, bundleID)
	if contentType, ok := contenttype.Lookup(normalized); ok {
		doc.UpsertContentType(contentType, bundleID)
		if err := setDefaultRoleHandler(contentType, bundleID); err != nil {
			return err
		}
	} else {
		e.assignWithoutContentType(normalized, bundleID)
	}

	if err := store.Save(doc); err != nil {
		return err
	}

	invalidatePreferenceCache()
	return nil
}

// assignWithoutContentType handles extensions outside the content-type table:
// try the duti association tool, then a native call with the synthesized
// generic type. Failures are logged, not surfaced; the handler registry entry
// already written carries the assignment.
func (e *darwinEngine) assignWithoutContentType(extension, bundleID string) {
	err := runAssociationTool(bundleID, extension)
	if err == nil {
		log.Debugf("assigned .%s to %s via duti", extension, bundleID)
		return
	}
	log.Warnf("duti assignment for .%s failed: %v", extension, err)

	generic := contenttype.Generic(extension)
	if err := setDefaultRoleHandler(generic, bundleID); err != nil {
		log.Warnf("LaunchServices assignment of %s failed: %v; relying on the handler registry entry", generic, err)
	}
}

func runAssociationTool(bundleID, extension string) error {
	out, err := exec.Command("duti", "-s", bundleID, extension, "all").CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = "duti invocation failed"
		}
		return errors.Wrap(errors.CommandFailed, msg, err)
	}
	return nil
}

// invalidatePreferenceCache restarts the preference daemon so the rewritten
// plist is observed without a reboot. Failure is silently ignored.
func invalidatePreferenceCache() {
	_ = exec.Command("killall", "cfprefsd").Run()
}

// CheckFullDiskAccess probes known protected files. If any can be opened,
// full disk access is granted.
func (e *darwinEngine) CheckFullDiskAccess() (bool, error) {
	probes := []string{
		"/Library/Application Support/com.apple.TCC/TCC.db",
	}
	if home, err := os.UserHomeDir(); err == nil {
		probes = append(probes,
			filepath.Join(home, "Library/Preferences/com.apple.LaunchServices/com.apple.launchservices.secure.plist"),
			filepath.Join(home, "Library/Safari/History.db"),
			filepath.Join(home, "Library/Messages/chat.db"),
		)
	}

	for _, path := range probes {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			return true, nil
		}
		if os.IsPermission(err) || os.IsNotExist(err) {
			continue
		}
		return false, errors.Wrap(errors.ConfigIO, "probing full disk access", err)
	}

	// Nothing opened, or access was denied: be conservative.
	return false, nil
}

func (e *darwinEngine) OpenFullDiskAccessSettings() error {
	err := exec.Command("open",
		"x-apple.systempreferences:com.apple.preference.security?Privacy_AllFiles").Run()
	if err != nil {
		return errors.Wrap(errors.CommandFailed, "opening system settings", err)
	}
	return nil
}
