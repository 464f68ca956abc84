package lookup

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the caller's language preference.
	LangCookieName = "fillari_lang"
)

// ResolveLocale determines the bundle locale for the request.
// The bool indicates whether the lang query param should be persisted as a cookie.
func ResolveLocale(bundle *catalog.Bundle, r *http.Request) (string, bool) {
	selection := selectLocale(bundle, r)
	return selection.locale, selection.persist
}

// localeSelection is the negotiated locale plus the preferences it came from.
type localeSelection struct {
	locale    string
	persist   bool
	requested []string
}

// served reports whether the negotiated locale satisfies one of the caller's
// preferences. A request without preferences is always served.
func (s localeSelection) served(locale string) bool {
	if len(s.requested) == 0 {
		return true
	}
	for _, requested := range s.requested {
		if catalog.Serves(requested, locale) {
			return true
		}
	}
	return false
}

func selectLocale(bundle *catalog.Bundle, r *http.Request) localeSelection {
	if r == nil {
		return localeSelection{locale: catalog.BaseLocale}
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if locale, ok := parseLocale(bundle, langValue); ok {
			return localeSelection{locale: locale, persist: true, requested: []string{langValue}}
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if locale, ok := parseLocale(bundle, cookie.Value); ok {
			return localeSelection{locale: locale, requested: []string{cookie.Value}}
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			requested := make([]string, 0, len(tags))
			for _, tag := range tags {
				requested = append(requested, tag.String())
			}
			return localeSelection{locale: bundle.Match(tags...), requested: requested}
		}
	}

	return localeSelection{locale: catalog.BaseLocale}
}

// SetLanguageCookie persists the selected locale on the response.
func SetLanguageCookie(w http.ResponseWriter, locale string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func parseLocale(bundle *catalog.Bundle, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if bundle.HasLocale(value) {
		return value, true
	}
	if _, err := language.Parse(strings.ReplaceAll(value, "_", "-")); err != nil {
		return "", false
	}
	return bundle.ResolveLocale(value), true
}
