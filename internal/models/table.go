package models

import (
	"bytes"
	"encoding/json"
)

// Fields is an insertion-ordered mapping from column key to scalar value.
// Setting an existing key replaces its value but keeps its position.
type Fields struct {
	keys   []string
	values map[string]Value
}

func NewFields() *Fields {
	return &Fields{values: make(map[string]Value)}
}

func (f *Fields) Set(key string, v Value) {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
}

func (f *Fields) Get(key string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.values[key]
	return v, ok
}

func (f *Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	return f.keys
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Merge copies every entry of other into f, later entries winning.
func (f *Fields) Merge(other *Fields) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		f.Set(k, other.values[k])
	}
}

func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = Fields{values: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v Value
		if err := dec.Decode(&v); err != nil {
			return err
		}
		f.Set(key, v)
	}
	return nil
}

type ItemType string

const (
	ItemTypeParent ItemType = "Parent"
	ItemTypeChild  ItemType = "Child"
)

// ParentLevel is the level label carried by every parent row of a grouped table.
const ParentLevel = "Country"

// GroupInfo is the parent/child metadata of a row built from nested arrays.
type GroupInfo struct {
	Level      string   `json:"level"`
	ParentID   int      `json:"parentId"`
	ItemType   ItemType `json:"itemType"`
	ChildIndex int      `json:"childIndex,omitempty"`
}

func (g *GroupInfo) IsParent() bool {
	return g != nil && g.Level == ParentLevel
}

// Row is one grid row. ID is assigned by the builder and never collides with
// a data key named "id", which lives in Fields like any other key.
type Row struct {
	ID     int        `json:"id"`
	Fields *Fields    `json:"fields"`
	Group  *GroupInfo `json:"group,omitempty"`
}

// Value returns the cell for key, or a null value when the row lacks it.
func (r Row) Value(key string) Value {
	v, ok := r.Fields.Get(key)
	if !ok {
		return NullValue()
	}
	return v
}

type Column struct {
	Field      string `json:"field"`
	HeaderName string `json:"headerName"`
	Width      int    `json:"width"`
}

// ParseResult is the outcome of one parse call: either columns and rows, or
// an error. A failed result never carries columns or rows.
type ParseResult struct {
	Columns []Column    `json:"columns"`
	Rows    []Row       `json:"rows"`
	Error   *ParseError `json:"error,omitempty"`
}

func Success(columns []Column, rows []Row) ParseResult {
	if columns == nil {
		columns = []Column{}
	}
	if rows == nil {
		rows = []Row{}
	}
	return ParseResult{Columns: columns, Rows: rows}
}

func Failure(kind ErrorKind, message string) ParseResult {
	return ParseResult{
		Columns: []Column{},
		Rows:    []Row{},
		Error:   &ParseError{Kind: kind, Message: message},
	}
}

func (r ParseResult) Failed() bool {
	return r.Error != nil
}

func (r ParseResult) MarshalJSON() ([]byte, error) {
	type alias ParseResult
	return json.Marshal(struct {
		Success bool `json:"success"`
		alias
	}{
		Success: !r.Failed(),
		alias:   alias(r),
	})
}
