package services

import (
	"regexp"
	"strings"

	"github.com/jsongrid/backend/internal/models"
)

const (
	minLogLineLength = 50
	minLogFields     = 15
	rawLineField     = "rawLine"
	idField          = "id"
)

// LogFields are the W3C extended log fields in the order IIS writes them.
var LogFields = []string{
	"date",
	"time",
	"service",
	"server",
	"clientIP",
	"method",
	"uri",
	"query",
	"port",
	"username",
	"clientAgent",
	"referer",
	"cookie",
	"host",
	"status",
	"substatus",
	"win32Status",
	"bytesReceived",
	"bytesSent",
	"timeTaken",
}

// Fields where IIS writes "-" for "no value".
var dashMeansEmpty = map[string]bool{
	"username": true,
	"referer":  true,
	"cookie":   true,
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// ParseLog splits log text into entries and maps each entry's space separated
// fields onto LogFields. Comment lines, short lines and lines with fewer than
// fifteen fields are skipped. Row IDs start at 1 in source order.
func ParseLog(text string) []models.Row {
	rows := make([]models.Row, 0)
	rowID := 1
	for _, line := range splitLogLines(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || len(line) < minLogLineLength {
			continue
		}
		parts := strings.Split(line, " ")
		if len(parts) < minLogFields {
			continue
		}
		rows = append(rows, models.Row{
			ID:     rowID,
			Fields: logEntryFields(rowID, parts, line),
		})
		rowID++
	}
	return rows
}

func logEntryFields(rowID int, parts []string, line string) *models.Fields {
	fields := models.NewFields()
	fields.Set(idField, models.IntValue(rowID))
	for i, name := range LogFields {
		value := ""
		if i < len(parts) {
			value = parts[i]
		}
		if dashMeansEmpty[name] && value == "-" {
			value = ""
		}
		fields.Set(name, models.StringValue(value))
	}
	fields.Set(rawLineField, models.StringValue(line))
	return fields
}

// splitLogLines splits on line breaks and additionally before every embedded
// timestamp, which recovers entries whose line breaks were lost when the text
// was normalized.
func splitLogLines(text string) []string {
	var lines []string
	for _, physical := range lineBreak.Split(strings.TrimSpace(text), -1) {
		start := 0
		for _, loc := range logTimestamp.FindAllStringIndex(physical, -1) {
			if loc[0] > start {
				lines = append(lines, physical[start:loc[0]])
				start = loc[0]
			}
		}
		lines = append(lines, physical[start:])
	}
	return lines
}

// LogColumns returns the displayed columns of log mode: the row id followed by
// LogFields. rawLine is kept on the rows but never shown.
func LogColumns() []models.Column {
	columns := make([]models.Column, 0, len(LogFields)+1)
	for _, name := range append([]string{idField}, LogFields...) {
		columns = append(columns, models.Column{
			Field:      name,
			HeaderName: HeaderName(name),
			Width:      logColumnWidth(name),
		})
	}
	return columns
}

var logColumnWidths = map[string]int{
	"date":          100,
	"time":          100,
	"method":        80,
	"uri":           200,
	"query":         800,
	"clientIP":      120,
	"status":        80,
	"host":          180,
	"timeTaken":     100,
	"bytesSent":     100,
	"bytesReceived": 120,
}

const defaultLogColumnWidth = 120

func logColumnWidth(field string) int {
	if w, ok := logColumnWidths[field]; ok {
		return w
	}
	return defaultLogColumnWidth
}

// HeaderName turns a camelCase key into a display label: the first letter is
// upper-cased and a space is put before every other upper-case letter, so
// "bytesSent" becomes "Bytes Sent" and "clientIP" becomes "Client I P".
func HeaderName(field string) string {
	if field == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
