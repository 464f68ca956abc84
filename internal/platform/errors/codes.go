// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// TS file errors
	CodeTSParseFailed       Code = "TS_PARSE_FAILED"
	CodeTSNotTranslationSet Code = "TS_NOT_TRANSLATION_SET"
	CodeTSMessageIDMissing  Code = "TS_MESSAGE_ID_MISSING"
	CodeTSEncodeFailed      Code = "TS_ENCODE_FAILED"

	// Bundle errors
	CodeLocaleUnknown       Code = "LOCALE_UNKNOWN"
	CodeLocaleDuplicate     Code = "LOCALE_DUPLICATE"
	CodeLocaleMismatch      Code = "LOCALE_MISMATCH"
	CodeBaseLocaleMissing   Code = "BASE_LOCALE_MISSING"
	CodeMessageNotFound     Code = "MESSAGE_NOT_FOUND"
	CodeMessageIDBlank      Code = "MESSAGE_ID_BLANK"
	CodeExportFormatUnknown Code = "EXPORT_FORMAT_UNKNOWN"
	CodeFormatValueInvalid  Code = "FORMAT_VALUE_INVALID"

	// Integrity findings
	CodeDuplicateMessageID     Code = "DUPLICATE_MESSAGE_ID"
	CodeMissingTranslation     Code = "MISSING_TRANSLATION"
	CodeOrphanedTranslation    Code = "ORPHANED_TRANSLATION"
	CodePlaceholderMismatch    Code = "PLACEHOLDER_MISMATCH"
	CodeSourceDrift            Code = "SOURCE_DRIFT"
	CodeUnfinishedUntranslated Code = "UNFINISHED_UNTRANSLATED"
	CodeUnfinishedDraft        Code = "UNFINISHED_DRAFT"
	CodeEmptyTranslation       Code = "EMPTY_TRANSLATION"
	CodeNotCanonical           Code = "NOT_CANONICAL"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - malformed input
	case CodeTSParseFailed,
		CodeTSNotTranslationSet,
		CodeTSMessageIDMissing,
		CodeMessageIDBlank,
		CodeExportFormatUnknown,
		CodeFormatValueInvalid:
		return http.StatusBadRequest

	// Not found - resource doesn't exist
	case CodeNotFound,
		CodeMessageNotFound,
		CodeLocaleUnknown:
		return http.StatusNotFound

	// Conflict - catalog set is inconsistent
	case CodeLocaleDuplicate,
		CodeLocaleMismatch,
		CodeBaseLocaleMissing:
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
