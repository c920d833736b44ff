// Package i18n localizes langgen's own user-facing messages.
//
// It wraps gotext around translations embedded via //go:embed. Call
// Init() once at startup; T() and N() then translate message ids,
// falling back to the id itself when no translation exists.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the PO translation files, laid out as
// locales/{lang}/LC_MESSAGES/langgen.po.
//
//go:embed all:locales
var locales embed.FS

const domain = "langgen"

var po *gotext.Locale

// Init initializes translations. An empty lang auto-detects from
// LANGUAGE, LC_ALL, LC_MESSAGES, LANG in GNU gettext priority order.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a message id, returning it unchanged when no translation
// is available.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates with plural forms; n selects the form.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE can be a colon-separated preference list.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip the encoding suffix ("ru_RU.UTF-8" -> "ru_RU").
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
