// Package collapse post-processes a resolved tag → name map with one of
// two mutually exclusive policies: Merge folds regional duplicates into a
// single language/script-level entry, Qualify keeps regional entries but
// disambiguates or drops the ones that collide with the base-language name.
package collapse

import (
	"sort"

	"github.com/stayhydated/langgen/locale"
)

// Merge deduplicates entries where several regional variants of the same
// language/script/variants group share one name.
//
// Within each group, a name carried by a single tag stays under that tag.
// A name shared by two or more tags collapses to the group's canonical
// language[-Script][-variant...] tag. When a later name claims a group key
// an earlier name already took, the earlier collapse is rolled back — its
// member tags reappear as individual entries with the old name — and the
// key goes to the later name.
//
// The outcome of the rollback rule depends on iteration order, so the
// order is fixed: group keys, names within a group, and member tags are
// all visited sorted lexicographically.
func Merge(entries map[string]string) map[string]string {
	// group key -> name -> member tags
	grouped := make(map[string]map[string][]string)
	for tag, name := range entries {
		parts := locale.Parse(tag)
		key := locale.Locale{
			Language: parts.Language,
			Script:   parts.Script,
			Variants: parts.Variants,
		}.String()

		names := grouped[key]
		if names == nil {
			names = make(map[string][]string)
			grouped[key] = names
		}
		names[name] = append(names[name], tag)
	}

	collapsed := make(map[string]string, len(entries))
	// canonical tag -> member tags of the collapse currently holding it
	sources := make(map[string][]string)

	for _, key := range sortedKeys(grouped) {
		names := grouped[key]
		for _, name := range sortedKeys(names) {
			tags := names[name]
			sort.Strings(tags)

			if len(tags) == 1 {
				collapsed[tags[0]] = name
				continue
			}

			existing, claimed := collapsed[key]
			if !claimed {
				collapsed[key] = name
				sources[key] = tags
				continue
			}
			if existing == name {
				continue
			}

			// Roll the previous collapse back and hand the key over.
			for _, previous := range sources[key] {
				collapsed[previous] = existing
			}
			collapsed[key] = name
			sources[key] = tags
		}
	}

	return collapsed
}

// Qualify keeps every regional entry but resolves collisions with the
// bare-language base name: a numeric macro-region entry whose name equals
// the base name carries no information and is dropped, a two-letter
// territory entry whose name equals the base name gets a parenthesized
// territory qualifier. Everything else passes through unchanged.
//
// refNames is the reference language table (its bare two-letter codes
// supplement the base names) and territories maps territory codes to
// display names. A territory with no display name means no qualifier, not
// an error.
func Qualify(entries, refNames, territories map[string]string) map[string]string {
	base := baseNames(entries, refNames)

	out := make(map[string]string, len(entries))
	for tag, name := range entries {
		parts := locale.Parse(tag)
		baseName, known := base[parts.Language]
		if !known || name != baseName || parts.Region == "" {
			out[tag] = name
			continue
		}

		if parts.NumericRegion() {
			// Duplicate of the base name at macro-region level, drop.
			continue
		}

		if territory := territories[parts.Region]; territory != "" {
			out[tag] = name + " (" + territory + ")"
		} else {
			out[tag] = name
		}
	}
	return out
}

// baseNames captures one reference name per language: first from entries
// carrying no script and no region (or the world region), then from every
// bare two-letter language key of the reference table not already seen.
// Entries are scanned in sorted tag order so capture is deterministic.
func baseNames(entries, refNames map[string]string) map[string]string {
	base := make(map[string]string)

	for _, tag := range sortedKeys(entries) {
		parts := locale.Parse(tag)
		if parts.Script != "" || (parts.Region != "" && parts.Region != "001") {
			continue
		}
		if _, ok := base[parts.Language]; !ok {
			base[parts.Language] = entries[tag]
		}
	}

	for key, name := range refNames {
		if len(key) != 2 || locale.Canonicalize(key) != key {
			continue
		}
		if _, ok := base[key]; !ok {
			base[key] = name
		}
	}

	return base
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
