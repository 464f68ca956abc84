// Package format renders ride statistics with the shared translation
// messages, the way the mobile client shows them in history graphs.
package format

import (
	"strconv"
	"strings"
)

// Message ids used by the formatters.
const (
	MessageDistanceMeters     = "fillari-distance-m"
	MessageDistanceKilometers = "fillari-distance-km"
	MessageDurationSeconds    = "fillari-duration-sec"
	MessageDurationMinutes    = "fillari-duration-min"
	MessageDurationHours      = "fillari-duration-h"
	MessageDurationHoursMin   = "fillari-duration-h_min"
)

// Mode selects which statistic a value represents.
type Mode int

const (
	ModeRides Mode = iota
	ModeDistance
	ModeDuration
)

// ParseMode maps a mode name (rides, distance, duration) to its Mode.
func ParseMode(name string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rides":
		return ModeRides, true
	case "distance":
		return ModeDistance, true
	case "duration":
		return ModeDuration, true
	}
	return 0, false
}

// Translator resolves a message and fills its placeholders.
type Translator interface {
	Sprintf(locale string, id string, args ...any) string
}

// Value formats value according to mode.
func Value(t Translator, locale string, value int, mode Mode) string {
	switch mode {
	case ModeRides:
		return Rides(value)
	case ModeDistance:
		return Distance(t, locale, value)
	case ModeDuration:
		return Duration(t, locale, value)
	}
	return ""
}

// Rides formats a ride count.
func Rides(count int) string {
	return strconv.Itoa(count)
}

// Distance formats meters. Whole kilometres drop the decimal.
func Distance(t Translator, locale string, meters int) string {
	switch {
	case meters < 1000:
		return t.Sprintf(locale, MessageDistanceMeters, meters)
	case meters%1000 != 0:
		return t.Sprintf(locale, MessageDistanceKilometers, strconv.FormatFloat(float64(meters)/1000, 'f', 1, 64))
	default:
		return t.Sprintf(locale, MessageDistanceKilometers, meters/1000)
	}
}

// Duration formats seconds into the largest fitting unit.
func Duration(t Translator, locale string, seconds int) string {
	switch {
	case seconds < 60:
		return t.Sprintf(locale, MessageDurationSeconds, seconds)
	case seconds < 3600:
		return t.Sprintf(locale, MessageDurationMinutes, seconds/60)
	case seconds%3600 != 0:
		return t.Sprintf(locale, MessageDurationHoursMin, seconds/3600, (seconds%3600)/60)
	default:
		return t.Sprintf(locale, MessageDurationHours, seconds/3600)
	}
}

var stepCandidates = map[Mode][]int{
	ModeRides:    {1, 5, 10, 50, 100},
	ModeDistance: {1, 10, 100, 500, 1000, 5000, 10000, 50000, 100000},
	ModeDuration: {1, 5, 60, 5 * 60, 10 * 60, 60 * 60},
}

// Step picks the graph axis step for values up to maxValue so that at most
// maxSteps gridlines are drawn. The step is a multiple of the largest round
// unit of mode that fits. It returns 0 when no step applies.
func Step(maxValue int, maxSteps int, mode Mode) int {
	candidates := stepCandidates[mode]
	if maxSteps <= 0 || len(candidates) == 0 {
		return 0
	}
	i := len(candidates) - 1
	for i > 0 && candidates[i]*maxSteps > maxValue {
		i--
	}
	unit := candidates[i]
	if unit > maxValue {
		return 0
	}
	step := unit
	for maxValue/step > maxSteps {
		step += unit
	}
	return step
}
