package lookup

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
)

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewHandler(catalog.Default()).ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLocales(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/v1/locales", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[localesResponse](t, rec)
	if got.BaseLocale != "en" || len(got.Locales) != 2 || got.Locales[1] != "fi" || !got.IncludesUnfinished {
		t.Fatalf("locales = %+v", got)
	}
}

func TestMessageWithArgs(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/v1/messages/fillari-duration-h_min?lang=fi&arg=2&arg=15", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	got := decode[messageResponse](t, rec)
	if got.Text != "2 h 15 min" || got.Locale != "fi" || got.Fallback {
		t.Fatalf("message = %+v", got)
	}
	if rec.Header().Get("Content-Language") != "fi" {
		t.Fatalf("content language = %q", rec.Header().Get("Content-Language"))
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "fi" {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestMessageReportsUnfinished(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/v1/messages/fillari-menu-refresh?lang=fi", nil))
	got := decode[messageResponse](t, rec)
	if got.Text != "Päivitä" || !got.Unfinished {
		t.Fatalf("message = %+v", got)
	}
}

func TestMessageLocaleNegotiation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{name: "default", want: "en"},
		{name: "cookie", cookie: "fi", want: "fi"},
		{name: "accept language", accept: "fi-FI,fi;q=0.9,en;q=0.5", want: "fi"},
		{name: "unsupported accept language", accept: "de-DE", want: "en"},
		{name: "cookie wins over header", cookie: "en", accept: "fi", want: "en"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/messages/fillari-menu-refresh", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := serve(t, req)
			got := decode[messageResponse](t, rec)
			if got.Locale != tc.want {
				t.Fatalf("locale = %q, want %q", got.Locale, tc.want)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatal("only the lang query param should set the cookie")
			}
		})
	}
}

func TestMessageFlagsUnservedLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		accept   string
		locale   string
		fallback bool
	}{
		{name: "no preference", locale: "en"},
		{name: "unsupported query", query: "?lang=de", locale: "en", fallback: true},
		{name: "regional query", query: "?lang=fi_FI", locale: "fi"},
		{name: "unsupported accept language", accept: "de-DE", locale: "en", fallback: true},
		{name: "second accept language served", accept: "de-DE,fi;q=0.8", locale: "fi"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/messages/fillari-distance-km"+tc.query, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got := decode[messageResponse](t, serve(t, req))
			if got.Locale != tc.locale || got.Fallback != tc.fallback {
				t.Fatalf("message = %+v, want locale %q fallback %t", got, tc.locale, tc.fallback)
			}
		})
	}
}

func TestMessageUnknownID(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/v1/messages/fillari-nope?lang=fi", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[errorEnvelope](t, rec)
	if got.Error.Code != "MESSAGE_NOT_FOUND" || got.Error.Message != "Viestiä fillari-nope ei ole olemassa" {
		t.Fatalf("error = %+v", got.Error)
	}

	rec = serve(t, httptest.NewRequest(http.MethodGet, "/v1/messages/fillari-nope", nil))
	got = decode[errorEnvelope](t, rec)
	if got.Error.Message != "Message fillari-nope does not exist" {
		t.Fatalf("error = %+v", got.Error)
	}
}

func TestMessageBlankID(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/v1/messages/%20", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[errorEnvelope](t, rec)
	if got.Error.Code != "MESSAGE_ID_BLANK" {
		t.Fatalf("error = %+v", got.Error)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/v1/catalog?lang=fi_FI", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[catalogResponse](t, rec)
	if got.Locale != "fi" {
		t.Fatalf("locale = %q", got.Locale)
	}
	if got.Messages["fillari-menu-log_out"] != "Kirjaudu ulos" || got.Messages["fillari-distance-km"] != "%1 km" {
		t.Fatalf("messages = %v", got.Messages)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodPost, "/v1/locales", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/v1/format/distance?value=1500&lang=fi", "1.5 km"},
		{"/v1/format/distance?value=800", "800 m"},
		{"/v1/format/duration?value=5400&lang=fi", "1 h 30 min"},
		{"/v1/format/rides?value=12", "12"},
	}
	for _, tc := range tests {
		rec := serve(t, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d body = %s", tc.path, rec.Code, rec.Body.String())
		}
		got := decode[formatResponse](t, rec)
		if got.Text != tc.want {
			t.Fatalf("%s text = %q, want %q", tc.path, got.Text, tc.want)
		}
	}
}

func TestFormatAxisStep(t *testing.T) {
	t.Parallel()

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/v1/format/duration?value=5400&steps=6", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	got := decode[formatResponse](t, rec)
	if got.Step != 1200 || got.Text != "1 h 30 min" {
		t.Fatalf("format = %+v", got)
	}
}

func TestFormatRejectsBadInput(t *testing.T) {
	t.Parallel()

	for _, path := range []string{
		"/v1/format/speed?value=3",
		"/v1/format/distance?value=far",
		"/v1/format/distance?value=-5",
		"/v1/format/distance",
		"/v1/format/rides?value=10&steps=0",
		"/v1/format/rides?value=10&steps=many",
	} {
		rec := serve(t, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
		if got := decode[errorEnvelope](t, rec); got.Error.Code != "FORMAT_VALUE_INVALID" {
			t.Fatalf("%s error = %+v", path, got.Error)
		}
	}
}
