package i18n

// Codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeTSParseFailed          = "TS_PARSE_FAILED"
	CodeTSMessageIDMissing     = "TS_MESSAGE_ID_MISSING"
	CodeLocaleUnknown          = "LOCALE_UNKNOWN"
	CodeMessageNotFound        = "MESSAGE_NOT_FOUND"
	CodeMessageIDBlank         = "MESSAGE_ID_BLANK"
	CodeExportFormatUnknown    = "EXPORT_FORMAT_UNKNOWN"
	CodeFormatValueInvalid     = "FORMAT_VALUE_INVALID"
	CodeDuplicateMessageID     = "DUPLICATE_MESSAGE_ID"
	CodeMissingTranslation     = "MISSING_TRANSLATION"
	CodeOrphanedTranslation    = "ORPHANED_TRANSLATION"
	CodePlaceholderMismatch    = "PLACEHOLDER_MISMATCH"
	CodeSourceDrift            = "SOURCE_DRIFT"
	CodeUnfinishedUntranslated = "UNFINISHED_UNTRANSLATED"
	CodeUnfinishedDraft        = "UNFINISHED_DRAFT"
	CodeEmptyTranslation       = "EMPTY_TRANSLATION"
	CodeNotCanonical           = "NOT_CANONICAL"
)

var englishMessages = map[Code]string{
	CodeTSParseFailed:          "Translation file {{.File}} could not be parsed",
	CodeTSMessageIDMissing:     "A message in {{.File}} has no id",
	CodeLocaleUnknown:          "Locale {{.Locale}} is not available",
	CodeMessageNotFound:        "Message {{.ID}} does not exist",
	CodeMessageIDBlank:         "A message id is required",
	CodeExportFormatUnknown:    "Export format {{.Format}} is not supported (known: {{.Known}})",
	CodeFormatValueInvalid:     "Cannot format {{.Value}} as {{.Mode}}",
	CodeDuplicateMessageID:     "Message {{.ID}} is defined {{.Count}} times in {{.File}}",
	CodeMissingTranslation:     "Message {{.ID}} from the source file is missing in locale {{.Locale}}",
	CodeOrphanedTranslation:    "Message {{.ID}} in locale {{.Locale}} does not exist in the source file",
	CodePlaceholderMismatch:    "Message {{.ID}} in locale {{.Locale}} uses placeholders {{.Translation}} but the source uses {{.Source}}",
	CodeSourceDrift:            "Message {{.ID}} in locale {{.Locale}} was translated from an outdated source text",
	CodeUnfinishedUntranslated: "Message {{.ID}} in locale {{.Locale}} is unfinished and has no translated text",
	CodeUnfinishedDraft:        "Message {{.ID}} in locale {{.Locale}} has a draft translation awaiting review",
	CodeEmptyTranslation:       "Message {{.ID}} in locale {{.Locale}} is marked finished but its translation is empty",
	CodeNotCanonical:           "File {{.File}} is not in canonical TS layout",
}
