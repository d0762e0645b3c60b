// Package langdetect recognises TOML files that do not carry a .toml
// extension, such as Pipfile or Cargo.toml.orig. It uses go-enry's
// filename tables, the same data GitHub Linguist uses.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// languageTOML is the go-enry name of the TOML language.
const languageTOML = "TOML"

// Detect returns the go-enry language name for path, judged by its file
// name and extension alone. It returns "" when the name is ambiguous.
func Detect(path string) string {
	base := filepath.Base(path)
	if lang, safe := enry.GetLanguageByFilename(base); safe && lang != "" {
		return lang
	}
	if lang, safe := enry.GetLanguageByExtension(base); safe && lang != "" {
		return lang
	}
	return ""
}

// IsTOML reports whether path names a hand-edited TOML file. Lock files
// are TOML too, but their package managers own the layout, so they are
// never reported.
func IsTOML(path string) bool {
	if strings.EqualFold(filepath.Ext(path), ".lock") {
		return false
	}
	return Detect(path) == languageTOML
}
