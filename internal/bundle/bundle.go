// Package bundle reads identifying metadata out of installed application
// bundles (Contents/Info.plist) and produces human-readable labels for them.
package bundle

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"howett.net/plist"

	"defapp/internal/errors"
)

const (
	keyIdentifier  = "CFBundleIdentifier"
	keyDisplayName = "CFBundleDisplayName"
	keyName        = "CFBundleName"

	// unknownAppName labels a bundle whose name could not be determined.
	unknownAppName = "未知应用"
)

// InfoPath returns the path of a bundle's info file.
func InfoPath(appPath string) string {
	return filepath.Join(appPath, "Contents", "Info.plist")
}

func readInfoDictionary(appPath string) (map[string]interface{}, error) {
	data, err := os.ReadFile(InfoPath(appPath))
	if err != nil {
		return nil, errors.Wrap(errors.ConfigIO, "reading bundle info", err)
	}
	var value interface{}
	if _, err := plist.Unmarshal(data, &value); err != nil {
		return nil, errors.Wrap(errors.ConfigParse, "parsing bundle info", err)
	}
	dict, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.New(errors.MissingBundleInfo, "bundle info is not a dictionary")
	}
	return dict, nil
}

// Identifier returns the bundle identifier declared in the bundle's info
// file. This is the only metadata read that can fail: an assignment cannot
// proceed without a real identifier.
func Identifier(appPath string) (string, error) {
	dict, err := readInfoDictionary(appPath)
	if err != nil {
		return "", errors.Wrap(errors.MissingBundleInfo, "bundle has no readable info file", err)
	}
	id, _ := dict[keyIdentifier].(string)
	if id == "" {
		return "", errors.Newf(errors.MissingBundleInfo, "bundle info lacks %s", keyIdentifier)
	}
	return id, nil
}

// DisplayName produces a usable label for a bundle and never fails. Priority:
// declared display name, declared short name, Spotlight display name, the
// bundle directory's file stem.
func DisplayName(appPath string) string {
	if dict, err := readInfoDictionary(appPath); err == nil {
		if name, _ := dict[keyDisplayName].(string); name != "" {
			return name
		}
		if name, _ := dict[keyName].(string); name != "" {
			return name
		}
	}

	if name := spotlightDisplayName(appPath); name != "" {
		return name
	}

	if stem := Stem(appPath); stem != "" {
		return stem
	}
	return unknownAppName
}

// ShortName returns the declared CFBundleName, or "" when the info file is
// unreadable or lacks one.
func ShortName(appPath string) string {
	dict, err := readInfoDictionary(appPath)
	if err != nil {
		return ""
	}
	name, _ := dict[keyName].(string)
	return name
}

// Stem returns the bundle directory name without its extension.
func Stem(appPath string) string {
	base := filepath.Base(appPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// spotlightDisplayName asks the metadata index for the bundle's display name.
func spotlightDisplayName(appPath string) string {
	out, err := exec.Command("mdls", "-name", "kMDItemDisplayName", "-raw", appPath).Output()
	if err != nil {
		return ""
	}
	name := strings.TrimSpace(string(out))
	if name == "" || name == "(null)" {
		return ""
	}
	return name
}

// HumanizeIdentifier turns a bundle identifier into a display-friendly label
// using its last dot component, with spaces inserted at case and digit
// boundaries ("com.example.myApp2" becomes "my App 2").
func HumanizeIdentifier(bundleID string) string {
	core := bundleID
	if idx := strings.LastIndex(bundleID, "."); idx >= 0 {
		core = bundleID[idx+1:]
	}
	if core == "" {
		core = bundleID
	}
	core = strings.NewReplacer("_", " ", "-", " ").Replace(core)

	var b strings.Builder
	var prev rune
	for i, ch := range core {
		if i > 0 {
			boundary := (isLower(prev) && isUpper(ch)) ||
				(isAlpha(prev) && isDigit(ch)) ||
				(isDigit(prev) && isAlpha(ch))
			if boundary && prev != ' ' {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(ch)
		prev = ch
	}
	return b.String()
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isAlpha(r rune) bool { return isLower(r) || isUpper(r) }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
