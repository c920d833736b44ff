// Package resolve derives one display name per supported locale from
// CLDR-style display-name tables.
//
// Resolution walks a locale's fallback chain and, within each fallback's
// table, a fixed list of candidate keys. Two run modes exist: autonym
// (each locale named from its own data) and display-locale (every locale
// named from one target locale's merged tables). Whatever happens, every
// locale resolves to a non-empty name — the English reference table and a
// synthesis step ("Base (Script, Territory)") close the gaps.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stayhydated/langgen/locale"
)

// ReferenceLocale is the base locale every resolution run requires. Its
// language table must exist and be non-empty; synthesis depends on it.
const ReferenceLocale = "en"

// rootSentinel terminates every fallback chain.
const rootSentinel = "root"

// defaultScript is dropped from output tags when the original tag carried
// no explicit script.
const defaultScript = "Latn"

// Source loads per-locale display-name tables. A locale with no data
// returns (nil, nil); only I/O or structural failures return errors.
type Source interface {
	LanguageNames(loc string) (map[string]string, error)
	ScriptNames(loc string) (map[string]string, error)
	TerritoryNames(loc string) (map[string]string, error)
}

// Options configures a resolution run.
type Options struct {
	// LikelySubtags maps canonical minimal tags to maximal tags.
	LikelySubtags map[string]string
	// Available is the universe of locale tags to resolve.
	Available []string
	// DisplayLocale selects display-locale mode; empty means autonym mode.
	DisplayLocale string
}

// Expand canonicalizes tag and replaces it with its likely-subtags maximal
// form when the index has a verbatim entry. A miss returns the
// canonicalized tag unchanged; no partial lookups are attempted.
func Expand(tag string, likelySubtags map[string]string) locale.Locale {
	canonical := locale.Canonicalize(tag)
	if expanded, ok := likelySubtags[canonical]; ok && expanded != "" {
		return locale.Parse(expanded)
	}
	return locale.Parse(canonical)
}

// FallbackChain returns every non-empty leading prefix of the canonical
// tag, most specific first, terminated by the "root" sentinel.
func FallbackChain(tag string) []string {
	parts := strings.Split(locale.Canonicalize(tag), "-")
	chain := make([]string, 0, len(parts)+1)
	for i := len(parts); i > 0; i-- {
		if prefix := strings.Join(parts[:i], "-"); prefix != "" {
			chain = append(chain, prefix)
		}
	}
	return append(chain, rootSentinel)
}

// CandidateKeys returns the lookup keys tried against each table, in
// priority order and deduplicated: original tag, expanded tag,
// language-Script, language-REGION, bare language.
func CandidateKeys(original, expanded locale.Locale) []string {
	candidates := []string{
		original.String(),
		expanded.String(),
		locale.Locale{Language: expanded.Language, Script: expanded.Script}.String(),
		locale.Locale{Language: expanded.Language, Region: expanded.Region}.String(),
		expanded.Language,
	}

	keys := candidates[:0]
	seen := make(map[string]bool, len(candidates))
	for _, key := range candidates {
		if key != "" && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// FormatTag derives the output tag for an entry from its expanded form,
// with two cleanups that keep tags close to what callers type: the script
// is dropped when the original tag had none and either the likely-subtags
// index maps the original tag to exactly this expansion (with a region
// present) or the script is the default Latin script; a world region
// ("001") is dropped when the original tag carried no region.
func FormatTag(expanded, original locale.Locale, likelySubtags map[string]string) string {
	out := locale.Locale{
		Language: expanded.Language,
		Script:   expanded.Script,
		Region:   expanded.Region,
		Variants: expanded.Variants,
	}

	if original.Script == "" {
		switch {
		case out.Region != "" && likelySubtags[original.String()] == expanded.String():
			out.Script = ""
		case out.Script == defaultScript:
			out.Script = ""
		}
	}

	if out.Region == "001" && original.Region == "" {
		out.Region = ""
	}

	return out.String()
}

// ---------------------------------------------------------------------------
// Collection
// ---------------------------------------------------------------------------

// collector owns the per-run state: the table source and a load-once cache
// of language tables keyed by canonical locale. A nil cached map records a
// locale known to have no data.
type collector struct {
	src       Source
	likely    map[string]string
	langCache map[string]map[string]string
}

func (c *collector) languageNames(loc string) (map[string]string, error) {
	canonical := locale.Canonicalize(loc)
	if names, ok := c.langCache[canonical]; ok {
		return names, nil
	}
	names, err := c.src.LanguageNames(canonical)
	if err != nil {
		return nil, err
	}
	c.langCache[canonical] = names
	return names, nil
}

// mergeChain accumulates one table from every fallback of tag, earliest
// fallback winning per key.
func mergeChain(tag string, load func(loc string) (map[string]string, error)) (map[string]string, error) {
	merged := make(map[string]string)
	for _, fallback := range FallbackChain(tag) {
		table, err := load(fallback)
		if err != nil {
			return nil, err
		}
		for key, value := range table {
			if _, ok := merged[key]; !ok {
				merged[key] = value
			}
		}
	}
	return merged, nil
}

func firstHit(table map[string]string, keys []string) string {
	for _, key := range keys {
		if value := table[key]; value != "" {
			return value
		}
	}
	return ""
}

// Collect resolves every available locale to a display name and returns
// the normalized tag → name map. Locales are processed sorted by canonical
// tag; the first writer of a normalized tag wins.
func Collect(src Source, opts Options) (map[string]string, error) {
	c := &collector{
		src:       src,
		likely:    opts.LikelySubtags,
		langCache: make(map[string]map[string]string),
	}

	refNames, err := c.languageNames(ReferenceLocale)
	if err != nil {
		return nil, err
	}
	if len(refNames) == 0 {
		return nil, fmt.Errorf("reference locale %q has no language display names", ReferenceLocale)
	}
	scripts, err := src.ScriptNames(ReferenceLocale)
	if err != nil {
		return nil, err
	}
	territories, err := src.TerritoryNames(ReferenceLocale)
	if err != nil {
		return nil, err
	}

	// Display-locale mode replaces per-locale chains with one merged set
	// of tables built from the display locale's own chain.
	var displayNames map[string]string
	if opts.DisplayLocale != "" {
		displayNames, err = mergeChain(opts.DisplayLocale, c.languageNames)
		if err != nil {
			return nil, err
		}
		if len(displayNames) == 0 {
			return nil, fmt.Errorf("display locale %q has no language display names in its fallback chain", opts.DisplayLocale)
		}
		scripts, err = mergeChain(opts.DisplayLocale, c.src.ScriptNames)
		if err != nil {
			return nil, err
		}
		territories, err = mergeChain(opts.DisplayLocale, c.src.TerritoryNames)
		if err != nil {
			return nil, err
		}
	}

	available := make([]string, len(opts.Available))
	copy(available, opts.Available)
	sort.Slice(available, func(i, j int) bool {
		return locale.Canonicalize(available[i]) < locale.Canonicalize(available[j])
	})

	entries := make(map[string]string, len(available))
	for _, loc := range available {
		original := locale.Parse(loc)
		expanded := Expand(loc, opts.LikelySubtags)
		keys := CandidateKeys(original, expanded)

		var name string
		if displayNames != nil {
			name = firstHit(displayNames, keys)
		} else {
			for _, fallback := range FallbackChain(loc) {
				table, err := c.languageNames(fallback)
				if err != nil {
					return nil, err
				}
				if table == nil {
					continue
				}
				if name = firstHit(table, keys); name != "" {
					break
				}
			}
		}

		if name == "" {
			name = firstHit(refNames, keys)
		}
		if name == "" {
			name = synthesize(expanded, displayNames, refNames, scripts, territories)
		}

		tag := FormatTag(expanded, original, opts.LikelySubtags)
		if _, ok := entries[tag]; !ok {
			entries[tag] = name
		}
	}
	return entries, nil
}

// synthesize builds "Base (Script, Territory)" for locales no table names
// directly. The base is the bare-language entry of the display table (when
// in display-locale mode), else of the reference table, else the language
// code itself. Qualifier names that are unavailable are omitted.
func synthesize(expanded locale.Locale, displayNames, refNames, scripts, territories map[string]string) string {
	base := ""
	if displayNames != nil {
		base = displayNames[expanded.Language]
	}
	if base == "" {
		base = refNames[expanded.Language]
	}
	if base == "" {
		base = expanded.Language
	}

	var qualifiers []string
	if expanded.Script != "" {
		if name := scripts[expanded.Script]; name != "" {
			qualifiers = append(qualifiers, name)
		}
	}
	if expanded.Region != "" {
		if name := territories[expanded.Region]; name != "" {
			qualifiers = append(qualifiers, name)
		}
	}

	if len(qualifiers) == 0 {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, strings.Join(qualifiers, ", "))
}
