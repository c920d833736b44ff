// Package locale implements parsing and canonical formatting of
// BCP-47-style locale tags of the form language[-Script][-REGION][-variant...].
//
// Parsing is lenient: subtags that match no known shape are dropped
// silently rather than rejected, so real-world tags with stray or
// malformed pieces still canonicalize to something usable.
package locale

import "strings"

// Locale is a structured locale tag. Language is always present and
// lowercase; Script is title-cased (e.g. "Hans"), Region is upper-cased
// two-letter or three-digit (e.g. "US", "001"). Variants keep their
// original order.
type Locale struct {
	Language string
	Script   string
	Region   string
	Variants []string
}

// Parse splits a tag on "-" or "_" and classifies each subtag by shape:
// four alphabetic characters become the script, two alphabetic characters
// or three digits become the region, anything else non-empty is appended
// to the variants. Repeated script/region subtags overwrite earlier ones.
func Parse(tag string) Locale {
	subtags := strings.Split(strings.ReplaceAll(tag, "_", "-"), "-")

	loc := Locale{Language: strings.ToLower(subtags[0])}
	for _, subtag := range subtags[1:] {
		switch {
		case len(subtag) == 4 && isAlpha(subtag):
			loc.Script = titleCase(subtag)
		case (len(subtag) == 2 && isAlpha(subtag)) || (len(subtag) == 3 && isDigits(subtag)):
			loc.Region = strings.ToUpper(subtag)
		case subtag != "":
			loc.Variants = append(loc.Variants, strings.ToLower(subtag))
		}
	}
	return loc
}

// String reconstructs the canonical tag: language[-Script][-REGION][-variant...].
// Parse(l.String()) yields a Locale equal to l.
func (l Locale) String() string {
	parts := make([]string, 0, 3+len(l.Variants))
	parts = append(parts, l.Language)
	if l.Script != "" {
		parts = append(parts, l.Script)
	}
	if l.Region != "" {
		parts = append(parts, l.Region)
	}
	parts = append(parts, l.Variants...)
	return strings.Join(parts, "-")
}

// Equal reports structural equality, including variant order.
func (l Locale) Equal(other Locale) bool {
	if l.Language != other.Language || l.Script != other.Script || l.Region != other.Region {
		return false
	}
	if len(l.Variants) != len(other.Variants) {
		return false
	}
	for i, v := range l.Variants {
		if other.Variants[i] != v {
			return false
		}
	}
	return true
}

// NumericRegion reports whether the region is a three-digit macro-region
// code (world, continents, subcontinents) rather than a territory.
func (l Locale) NumericRegion() bool {
	return len(l.Region) == 3 && isDigits(l.Region)
}

// Canonicalize is shorthand for Parse(tag).String().
func Canonicalize(tag string) string {
	return Parse(tag).String()
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return s != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func titleCase(s string) string {
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
