// Package config implements the .langgen.yaml project configuration file.
//
// The file pins the CLDR release and the output layout so a repository
// regenerates identical files on every machine. A missing file is not an
// error — defaults apply — but a present file is the source of truth and
// the `update` command rewrites its release field in place.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".langgen.yaml"

// Collapse policies. Exactly one applies per run.
const (
	// PolicyMerge folds regional duplicates into one language-level entry.
	PolicyMerge = "merge"
	// PolicyQualify keeps regional entries, qualifying or dropping the
	// ones that collide with the base-language name.
	PolicyQualify = "qualify"
)

// Defaults for a repository with no config file.
const (
	DefaultRelease         = "48.0.0"
	DefaultOutput          = "es-fluent-lang.ftl"
	DefaultSupportedOutput = "supported_locales.txt"
	DefaultI18nDir         = "i18n"
	DefaultPrefix          = "es-fluent-lang"
	DefaultCacheDir        = "cldr"
)

// File is the .langgen.yaml schema.
type File struct {
	// Release is the pinned CLDR release, e.g. "48.0.0".
	Release string `yaml:"release"`
	// Output is the destination FTL resource path.
	Output string `yaml:"output,omitempty"`
	// SupportedOutput is the destination supported-locales index path.
	SupportedOutput string `yaml:"supported_output,omitempty"`
	// I18nDir is the destination directory for per-locale resources.
	I18nDir string `yaml:"i18n_dir,omitempty"`
	// Prefix is the message-id prefix in generated resources.
	Prefix string `yaml:"prefix,omitempty"`
	// Policy selects the collapsing policy: "merge" or "qualify".
	Policy string `yaml:"policy,omitempty"`
	// DisplayLocale names all locales in one locale instead of autonyms.
	DisplayLocale string `yaml:"display_locale,omitempty"`
	// AllLocales writes a per-locale i18n tree for every CLDR locale.
	AllLocales bool `yaml:"all_locales"`
	// CacheDir holds downloaded CLDR archives.
	CacheDir string `yaml:"cache_dir,omitempty"`
	// CLDRZip points at an existing archive, skipping the download.
	CLDRZip string `yaml:"cldr_zip,omitempty"`

	path string
}

// Load reads .langgen.yaml from dir, applying defaults for absent fields.
// A missing file yields the full default configuration.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	f := &File{
		Release:         DefaultRelease,
		Output:          DefaultOutput,
		SupportedOutput: DefaultSupportedOutput,
		I18nDir:         DefaultI18nDir,
		Prefix:          DefaultPrefix,
		Policy:          PolicyMerge,
		AllLocales:      true,
		CacheDir:        DefaultCacheDir,
		path:            path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks field values that have a closed domain.
func (f *File) Validate() error {
	switch f.Policy {
	case PolicyMerge, PolicyQualify:
	default:
		return fmt.Errorf("unknown policy %q (want %q or %q)", f.Policy, PolicyMerge, PolicyQualify)
	}
	if f.Release == "" {
		return fmt.Errorf("release must not be empty")
	}
	return nil
}

// Save writes the configuration back to the path it was loaded from.
func (f *File) Save() error {
	if f.path == "" {
		return fmt.Errorf("config file path not set")
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

// Path returns the file location this configuration is bound to.
func (f *File) Path() string {
	return f.path
}
