package services

import (
	"fmt"
	"strings"

	"github.com/jsongrid/backend/internal/logger"
	"github.com/jsongrid/backend/internal/models"
)

const emptyInputMessage = "Empty input. Paste JSON to visualize."

// ParserService runs the normalization engine: normalize, classify, then
// either tokenize a log or parse, flatten and tabulate JSON. It holds no
// state between calls and is safe for concurrent use.
type ParserService struct{}

func NewParserService() *ParserService {
	return &ParserService{}
}

// Parse runs one complete parse of text under the declared mode. Every
// failure, including a panic inside the engine, is returned as a failed
// ParseResult.
func (ps *ParserService) Parse(text string, mode models.Mode) (result models.ParseResult) {
	if mode == "" {
		mode = models.ModeJSON
	}
	logEntry := logger.WithParse(string(mode), len(text))

	defer func() {
		if r := recover(); r != nil {
			logEntry.WithField("panic", fmt.Sprint(r)).Error("Parser panicked")
			result = malformed(fmt.Sprint(r))
		}
	}()

	if strings.TrimSpace(text) == "" {
		return models.Failure(models.ErrorEmptyInput, emptyInputMessage)
	}

	cleaned := Normalize(text)
	detected := Classify(cleaned)
	if perr := CheckMode(mode, detected); perr != nil {
		logEntry.WithField("detected", detected.String()).Debug("Input does not match declared mode")
		return models.Failure(perr.Kind, perr.Message)
	}

	if mode == models.ModeLog {
		rows := ParseLog(cleaned)
		logEntry.WithField("rows", len(rows)).Debug("Parsed log entries")
		return models.Success(LogColumns(), rows)
	}

	doc, err := ParseDocument(cleaned)
	if err != nil {
		logEntry.WithField("error", err.Error()).Debug("Rejected malformed JSON")
		return malformed(err.Error())
	}

	result = BuildTable(doc)
	if !result.Failed() {
		logEntry.WithFields(map[string]interface{}{
			"rows":    len(result.Rows),
			"columns": len(result.Columns),
		}).Debug("Built table")
	}
	return result
}

func malformed(reason string) models.ParseResult {
	return models.Failure(
		models.ErrorMalformedSyntax,
		fmt.Sprintf("Invalid JSON format: %s. Please check your input.", reason),
	)
}
