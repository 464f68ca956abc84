package validate

import (
	"fmt"

	apperrors "github.com/louisbranch/fillari-i18n/internal/platform/errors"
)

// Report is the ordered result of one validation run.
type Report struct {
	Findings []Finding `json:"findings"`
	Locales  int       `json:"locales"`
}

// Count returns how many findings have the given severity.
func (r Report) Count(severity Severity) int {
	count := 0
	for _, finding := range r.Findings {
		if finding.Severity == severity {
			count++
		}
	}
	return count
}

// HasErrors reports whether any finding is an error.
func (r Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Failed reports whether the run should fail. Strict runs fail on warnings too.
func (r Report) Failed(strict bool) bool {
	if r.HasErrors() {
		return true
	}
	return strict && r.Count(SeverityWarning) > 0
}

// ByCode returns the findings carrying code.
func (r Report) ByCode(code apperrors.Code) []Finding {
	var out []Finding
	for _, finding := range r.Findings {
		if finding.Code == code {
			out = append(out, finding)
		}
	}
	return out
}

// AtLeast returns the findings at or above severity.
func (r Report) AtLeast(severity Severity) []Finding {
	var out []Finding
	for _, finding := range r.Findings {
		if finding.Severity >= severity {
			out = append(out, finding)
		}
	}
	return out
}

// Summary renders the severity counts on one line.
func (r Report) Summary() string {
	return fmt.Sprintf("%d locale(s): %d error(s), %d warning(s), %d info",
		r.Locales, r.Count(SeverityError), r.Count(SeverityWarning), r.Count(SeverityInfo))
}
