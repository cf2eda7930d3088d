package models

type ErrorKind string

const (
	ErrorEmptyInput      ErrorKind = "EmptyInput"
	ErrorEmptyArray      ErrorKind = "EmptyArray"
	ErrorModeMismatch    ErrorKind = "ModeMismatch"
	ErrorMalformedSyntax ErrorKind = "MalformedSyntax"
)

// ParseError is a terminal failure of a single parse call. Message is meant to
// be shown to the user verbatim.
type ParseError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *ParseError) Error() string {
	return e.Message
}
