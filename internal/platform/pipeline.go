package platform

import (
	"defapp/internal/bundle"
	"defapp/internal/contenttype"
	"defapp/internal/handlers"
	"defapp/internal/locate"
	"defapp/internal/registry"
	"defapp/pkg/types"
)

// Placeholder strings shown when resolution degrades. Kept in sync with the
// frontend list view.
const (
	nameNotSet         = "未设置默认应用"
	pathNotFoundSuffix = " (未找到路径)"
)

// pipeline produces the association table for every tracked extension.
// systemDefault consults the OS default-handler registry for a content type;
// it may be nil when no such registry is available.
type pipeline struct {
	registry      *registry.Registry
	store         *handlers.Store
	locator       *locate.Locator
	systemDefault func(contentType string) (string, bool)
}

// list walks the tracked extensions in their defined order. Every entry
// always carries a string in every field; sub-step failures degrade to
// placeholders rather than failing the listing.
func (p *pipeline) list() ([]types.FileAssociation, error) {
	doc, err := p.store.Load()
	if err != nil {
		return nil, err
	}
	if _, err := doc.Handlers(); err != nil {
		return nil, err
	}

	extensions, err := p.registry.Load()
	if err != nil {
		return nil, err
	}

	results := make([]types.FileAssociation, 0, len(extensions))
	for _, ext := range extensions {
		contentType, _ := contenttype.Lookup(ext)

		if bundleID, ok := doc.FindHandler(ext, contentType); ok {
			results = append(results, p.resolveEntry(ext, bundleID))
			continue
		}

		// No registry entry; ask the OS for its own default as a secondary
		// source.
		if p.systemDefault != nil {
			if bundleID, ok := p.systemDefault(contenttype.ForExtension(ext)); ok && bundleID != "" {
				results = append(results, p.resolveSystemEntry(ext, bundleID))
				continue
			}
		}

		results = append(results, types.FileAssociation{
			Extension:       ext,
			ApplicationName: nameNotSet,
			ApplicationPath: "",
		})
	}
	return results, nil
}

// resolveEntry resolves a handler-registry identifier to a path and name. An
// unresolvable identifier keeps the entry, with the path field carrying the
// error text.
func (p *pipeline) resolveEntry(ext, bundleID string) types.FileAssociation {
	path, err := p.locator.Resolve(bundleID)
	if err != nil {
		return types.FileAssociation{
			Extension:       ext,
			ApplicationName: bundle.HumanizeIdentifier(bundleID) + pathNotFoundSuffix,
			ApplicationPath: err.Error(),
		}
	}
	return types.FileAssociation{
		Extension:       ext,
		ApplicationName: bundle.DisplayName(path),
		ApplicationPath: path,
	}
}

// resolveSystemEntry resolves an identifier reported by the OS itself; here
// an unresolvable path degrades to a humanized name with an empty path.
func (p *pipeline) resolveSystemEntry(ext, bundleID string) types.FileAssociation {
	path, err := p.locator.Resolve(bundleID)
	if err != nil {
		return types.FileAssociation{
			Extension:       ext,
			ApplicationName: bundle.HumanizeIdentifier(bundleID),
			ApplicationPath: "",
		}
	}
	return types.FileAssociation{
		Extension:       ext,
		ApplicationName: bundle.DisplayName(path),
		ApplicationPath: path,
	}
}
