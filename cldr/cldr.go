// Package cldr reads an extracted cldr-json archive: the likely-subtags
// index, the available-locales universe, and the per-locale display-name
// tables for languages, scripts, and territories.
//
// A locale with no data file is "not found", not an error — callers get
// a nil map and decide what to do. Only structurally broken files
// (unreadable JSON, missing main entry) produce errors.
package cldr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Tree provides access to an extracted cldr-json directory.
type Tree struct {
	root string
}

// New returns a Tree rooted at the extraction directory (the directory
// containing cldr-core/ and cldr-localenames-full/).
func New(root string) *Tree {
	return &Tree{root: root}
}

// Validate checks that the archive layout looks like cldr-json full data.
func (t *Tree) Validate() error {
	info, err := os.Stat(t.localeNamesRoot())
	if err != nil || !info.IsDir() {
		return fmt.Errorf("CLDR localenames data missing from %s", t.root)
	}
	return nil
}

func (t *Tree) localeNamesRoot() string {
	return filepath.Join(t.root, "cldr-localenames-full", "main")
}

// ---------------------------------------------------------------------------
// JSON shapes
// ---------------------------------------------------------------------------

type likelySubtagsFile struct {
	Supplemental struct {
		LikelySubtags map[string]string `json:"likelySubtags"`
	} `json:"supplemental"`
}

type availableLocalesFile struct {
	AvailableLocales struct {
		Full []string `json:"full"`
	} `json:"availableLocales"`
}

type displayNames struct {
	Languages   map[string]string `json:"languages"`
	Scripts     map[string]string `json:"scripts"`
	Territories map[string]string `json:"territories"`
}

type localeNamesFile struct {
	Main map[string]struct {
		LocaleDisplayNames displayNames `json:"localeDisplayNames"`
	} `json:"main"`
}

// ---------------------------------------------------------------------------
// Supplemental data
// ---------------------------------------------------------------------------

// LikelySubtags loads the minimal-tag → maximal-tag index from
// cldr-core/supplemental/likelySubtags.json.
func (t *Tree) LikelySubtags() (map[string]string, error) {
	path := filepath.Join(t.root, "cldr-core", "supplemental", "likelySubtags.json")
	var file likelySubtagsFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if file.Supplemental.LikelySubtags == nil {
		return nil, fmt.Errorf("%s: no likelySubtags block", path)
	}
	return file.Supplemental.LikelySubtags, nil
}

// AvailableLocales loads the "full" coverage locale list from
// cldr-core/availableLocales.json.
func (t *Tree) AvailableLocales() ([]string, error) {
	path := filepath.Join(t.root, "cldr-core", "availableLocales.json")
	var file availableLocalesFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if len(file.AvailableLocales.Full) == 0 {
		return nil, fmt.Errorf("%s: no available locales listed", path)
	}
	return file.AvailableLocales.Full, nil
}

// ---------------------------------------------------------------------------
// Per-locale display-name tables
// ---------------------------------------------------------------------------

// LanguageNames loads main/<locale>/languages.json. Returns (nil, nil)
// when the locale carries no such file.
func (t *Tree) LanguageNames(loc string) (map[string]string, error) {
	names, err := t.displayNames(loc, "languages.json")
	if names == nil {
		return nil, err
	}
	return names.Languages, err
}

// ScriptNames loads main/<locale>/scripts.json. Returns (nil, nil)
// when the locale carries no such file.
func (t *Tree) ScriptNames(loc string) (map[string]string, error) {
	names, err := t.displayNames(loc, "scripts.json")
	if names == nil {
		return nil, err
	}
	return names.Scripts, err
}

// TerritoryNames loads main/<locale>/territories.json. Returns (nil, nil)
// when the locale carries no such file.
func (t *Tree) TerritoryNames(loc string) (map[string]string, error) {
	names, err := t.displayNames(loc, "territories.json")
	if names == nil {
		return nil, err
	}
	return names.Territories, err
}

func (t *Tree) displayNames(loc, fileName string) (*displayNames, error) {
	path := filepath.Join(t.localeNamesRoot(), loc, fileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	var file localeNamesFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	entry, ok := file.Main[loc]
	if !ok {
		return nil, fmt.Errorf("%s: no main entry for locale %q", path, loc)
	}
	return &entry.LocaleDisplayNames, nil
}

// DisplayLocales lists every locale directory under main/ that carries a
// languages.json, sorted. These are the locales usable as display locales.
func (t *Tree) DisplayLocales() ([]string, error) {
	root := t.localeNamesRoot()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var locales []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, entry.Name(), "languages.json")); err == nil {
			locales = append(locales, entry.Name())
		}
	}
	sort.Strings(locales)
	return locales, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// ArchiveName returns the release asset file name for a CLDR release,
// e.g. cldr-48.0.0-json-full.zip.
func ArchiveName(release string) string {
	return fmt.Sprintf("cldr-%s-json-full.zip", release)
}

// ArchiveURL returns the GitHub download URL for a CLDR release archive.
func ArchiveURL(release string) string {
	return strings.Join([]string{
		"https://github.com/unicode-org/cldr-json/releases/download",
		release,
		ArchiveName(release),
	}, "/")
}
