package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMode = errors.New("invalid parsing mode")

// Mode is the input format the user declares.
type Mode string

const (
	ModeJSON Mode = "json"
	ModeLog  Mode = "log"
)

// ParseMode accepts "json" or "log" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeJSON:
		return ModeJSON, nil
	case ModeLog:
		return ModeLog, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json or log)", ErrInvalidMode, s)
	}
}

// Format is the format detected from the input text itself.
type Format int

const (
	FormatJSON Format = iota
	FormatLog
)

func (f Format) String() string {
	if f == FormatLog {
		return "log"
	}
	return "json"
}

// Mode returns the declared mode that agrees with this format.
func (f Format) Mode() Mode {
	if f == FormatLog {
		return ModeLog
	}
	return ModeJSON
}
