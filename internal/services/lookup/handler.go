// Package lookup serves resolved Fillari translations over HTTP.
package lookup

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/fillari-i18n/internal/platform/errors"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/format"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/placeholder"
	"github.com/louisbranch/fillari-i18n/internal/platform/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// ArgParam is the repeatable query parameter that fills %1, %2, ...
	ArgParam = "arg"
	// StepsParam asks /v1/format for a graph axis step with at most that many
	// gridlines up to value.
	StepsParam = "steps"
)

type localesResponse struct {
	BaseLocale         string   `json:"base_locale"`
	Locales            []string `json:"locales"`
	IncludesUnfinished bool     `json:"includes_unfinished"`
}

type messageResponse struct {
	ID         string `json:"id"`
	Locale     string `json:"locale"`
	Text       string `json:"text"`
	Unfinished bool   `json:"unfinished"`
	Fallback   bool   `json:"fallback"`
}

type formatResponse struct {
	Mode   string `json:"mode"`
	Locale string `json:"locale"`
	Value  int    `json:"value"`
	Text   string `json:"text"`
	Step   int    `json:"step,omitempty"`
}

type catalogResponse struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type handler struct {
	bundle *catalog.Bundle
}

// NewHandler returns the HTTP routes for one loaded bundle.
func NewHandler(bundle *catalog.Bundle) http.Handler {
	h := &handler{bundle: bundle}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /v1/locales", h.handleLocales)
	mux.HandleFunc("GET /v1/messages/{id}", h.handleMessage)
	mux.HandleFunc("GET /v1/catalog", h.handleCatalog)
	mux.HandleFunc("GET /v1/format/{mode}", h.handleFormat)
	return mux
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleLocales(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer().Start(r.Context(), "lookup.locales")
	defer span.End()

	writeJSON(w, http.StatusOK, localesResponse{
		BaseLocale:         catalog.BaseLocale,
		Locales:            h.bundle.Locales(),
		IncludesUnfinished: h.bundle.IncludesUnfinished(),
	})
}

func (h *handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer().Start(r.Context(), "lookup.message")
	defer span.End()

	selection := h.negotiateSelection(w, r)
	locale := selection.locale
	id := strings.TrimSpace(r.PathValue("id"))
	span.SetAttributes(attribute.String("fillari.locale", locale), attribute.String("fillari.message_id", id))
	if id == "" {
		writeError(w, locale, apperrors.New(apperrors.CodeMessageIDBlank, "message id is required"))
		return
	}

	result, ok := h.bundle.Lookup(locale, id)
	if !ok {
		writeError(w, locale, apperrors.WithMetadata(
			apperrors.CodeMessageNotFound,
			"message "+id+" does not exist",
			map[string]string{"ID": id},
		))
		return
	}
	text := result.Text
	if args := r.URL.Query()[ArgParam]; len(args) > 0 {
		text = placeholder.Substitute(text, args...)
	}
	fallback := result.Fallback || !selection.served(result.Locale)
	span.SetAttributes(attribute.Bool("fillari.fallback", fallback))
	writeJSON(w, http.StatusOK, messageResponse{
		ID:         result.ID,
		Locale:     result.Locale,
		Text:       text,
		Unfinished: result.Unfinished,
		Fallback:   fallback,
	})
}

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer().Start(r.Context(), "lookup.catalog")
	defer span.End()

	locale := h.negotiate(w, r)
	span.SetAttributes(attribute.String("fillari.locale", locale))
	writeJSON(w, http.StatusOK, catalogResponse{
		Locale:   locale,
		Messages: h.bundle.Messages(locale),
	})
}

func (h *handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer().Start(r.Context(), "lookup.format")
	defer span.End()

	locale := h.negotiate(w, r)
	modeName := strings.TrimSpace(r.PathValue("mode"))
	rawValue := strings.TrimSpace(r.URL.Query().Get("value"))
	span.SetAttributes(attribute.String("fillari.locale", locale), attribute.String("fillari.format_mode", modeName))

	mode, modeOK := format.ParseMode(modeName)
	value, err := strconv.Atoi(rawValue)
	maxSteps := 0
	if rawSteps := strings.TrimSpace(r.URL.Query().Get(StepsParam)); rawSteps != "" && err == nil {
		maxSteps, err = strconv.Atoi(rawSteps)
		if err == nil && maxSteps <= 0 {
			err = errors.New("steps must be positive")
		}
	}
	if !modeOK || err != nil || value < 0 {
		writeError(w, locale, apperrors.WithMetadata(
			apperrors.CodeFormatValueInvalid,
			"cannot format "+rawValue+" as "+modeName,
			map[string]string{"Value": rawValue, "Mode": modeName},
		))
		return
	}
	writeJSON(w, http.StatusOK, formatResponse{
		Mode:   strings.ToLower(modeName),
		Locale: locale,
		Value:  value,
		Text:   format.Value(h.bundle, locale, value, mode),
		Step:   format.Step(value, maxSteps, mode),
	})
}

// negotiate resolves the request locale and advertises it on the response.
func (h *handler) negotiate(w http.ResponseWriter, r *http.Request) string {
	return h.negotiateSelection(w, r).locale
}

func (h *handler) negotiateSelection(w http.ResponseWriter, r *http.Request) localeSelection {
	selection := selectLocale(h.bundle, r)
	if selection.persist {
		SetLanguageCookie(w, selection.locale)
	}
	w.Header().Set("Content-Language", selection.locale)
	return selection
}

func writeError(w http.ResponseWriter, locale string, err *apperrors.Error) {
	writeJSON(w, err.Code.HTTPStatus(), errorEnvelope{Error: errorBody{
		Code:    string(err.Code),
		Message: err.LocalizedMessage(locale),
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}
