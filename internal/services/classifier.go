package services

import (
	"regexp"
	"strings"

	"github.com/jsongrid/backend/internal/models"
)

const iisServiceMarker = "W3SVC"

// Date followed by a time of day: 2024-01-31 23:59:59.
var logTimestamp = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

// IsLogFormat reports whether normalized text looks like a web server log.
// It is a heuristic: a JSON document containing a timestamp string is
// reported as a log too.
func IsLogFormat(normalized string) bool {
	return strings.Contains(normalized, iisServiceMarker) || logTimestamp.MatchString(normalized)
}

// Classify returns the detected format of normalized text.
func Classify(normalized string) models.Format {
	if IsLogFormat(normalized) {
		return models.FormatLog
	}
	return models.FormatJSON
}

// CheckMode returns a ModeMismatch error when the detected format disagrees
// with the mode the user declared.
func CheckMode(declared models.Mode, detected models.Format) *models.ParseError {
	if detected.Mode() == declared {
		return nil
	}
	if declared == models.ModeJSON {
		return &models.ParseError{
			Kind:    models.ErrorModeMismatch,
			Message: "You must input JSON files. Switch to Log mode to parse log files.",
		}
	}
	return &models.ParseError{
		Kind:    models.ErrorModeMismatch,
		Message: "You must input log files. Switch to JSON mode to parse JSON data.",
	}
}
