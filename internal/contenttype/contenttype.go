// Package contenttype maps file-name extensions to the platform content-type
// identifiers (UTIs) LaunchServices keys its handler entries on. The table is
// a closed set; extensions outside it get a synthesized public.* identifier.
package contenttype

import "strings"

// extensionToContentType is the static extension → UTI table. Immutable for
// the process lifetime.
var extensionToContentType = map[string]string{
	// Office
	"doc":  "com.microsoft.word.doc",
	"docx": "org.openxmlformats.wordprocessingml.document",
	"xls":  "com.microsoft.excel.xls",
	"xlsx": "org.openxmlformats.spreadsheetml.sheet",
	"ppt":  "com.microsoft.powerpoint.ppt",
	"pptx": "org.openxmlformats.presentationml.presentation",
	"txt":  "public.plain-text",
	"pdf":  "com.adobe.pdf",

	// Images
	"png":  "public.png",
	"jpg":  "public.jpeg",
	"jpeg": "public.jpeg",
	"gif":  "public.gif",

	// Media
	"mp3": "public.mp3",
	"mp4": "public.mpeg-4",
	"mov": "com.apple.quicktime-movie",
	"avi": "public.avi",

	// Archives
	"zip": "public.zip-archive",
	"rar": "public.rar-archive",
	"7z":  "public.7z-archive",
	"tar": "public.tar-archive",
	"gz":  "public.gzip-archive",

	// Web
	"html": "public.html",
	"htm":  "public.html",
	"css":  "public.css",
	"js":   "public.javascript",
	"ts":   "public.typescript",
	"jsx":  "public.jsx",
	"tsx":  "public.tsx",

	// Data / config
	"csv":  "public.comma-separated-values-text",
	"json": "public.json",
	"xml":  "public.xml",
	"yaml": "public.yaml",
	"yml":  "public.yaml",
	"toml": "public.toml",

	// Text / code
	"md":       "net.daringfireball.markdown",
	"markdown": "net.daringfireball.markdown",
	"py":       "public.python-script",
	"java":     "com.sun.java-source",
	"cpp":      "public.c-plus-plus-source",
	"c":        "public.c-source",
	"h":        "public.c-header",
	"hpp":      "public.c-plus-plus-header",

	// Scripts
	"sh":   "public.shell-script",
	"bash": "public.shell-script",
	"zsh":  "public.shell-script",
	"fish": "public.shell-script",

	// DB / logs / misc
	"sql":    "public.sql-source",
	"db":     "public.database",
	"sqlite": "public.sqlite3-database",
	"log":    "public.log",
	"ini":    "public.ini",
	"cfg":    "public.configuration",
	"conf":   "public.configuration",
	"env":    "public.environment",
	"key":    "public.private-key",
	"pem":    "public.pem",
	"crt":    "public.certificate",
}

// Lookup returns the content-type identifier for an extension. The match is
// case-insensitive on the extension; ok is false for extensions outside the
// table.
func Lookup(extension string) (string, bool) {
	uti, ok := extensionToContentType[strings.ToLower(extension)]
	return uti, ok
}

// Generic synthesizes a public.* placeholder identifier for an extension that
// has no table entry.
func Generic(extension string) string {
	return "public." + strings.ToLower(extension)
}

// ForExtension returns the table identifier when one exists, otherwise the
// synthesized generic identifier.
func ForExtension(extension string) string {
	if uti, ok := Lookup(extension); ok {
		return uti
	}
	return Generic(extension)
}
