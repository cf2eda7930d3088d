package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/valyala/fastjson"

	"github.com/jsongrid/backend/internal/models"
)

const (
	jsonColumnWidth  = 220
	valueColumnWidth = 300
	countSuffix      = "Count"
)

// rowCounter hands out row IDs for one build. It is never shared between
// builds, so re-parsing the same text yields the same IDs.
type rowCounter struct {
	next int
}

func (c *rowCounter) take() int {
	id := c.next
	c.next++
	return id
}

// BuildTable turns a parsed JSON document into grid columns and rows.
//
// Arrays produce one row per element, or a parent row per element followed by
// child rows when any element holds a non-empty array property. Objects
// produce a single row and scalars a single "value" cell.
func BuildTable(v *fastjson.Value) models.ParseResult {
	switch v.Type() {
	case fastjson.TypeArray:
		items := v.GetArray()
		if len(items) == 0 {
			return models.Failure(models.ErrorEmptyArray, "JSON array is empty.")
		}
		rows := buildArrayRows(items)
		return models.Success(unionColumns(rows), rows)
	case fastjson.TypeObject:
		row := models.Row{ID: 0, Fields: Flatten(v, "")}
		rows := []models.Row{row}
		return models.Success(unionColumns(rows), rows)
	default:
		fields := models.NewFields()
		fields.Set(defaultValueKey, models.StringValue(scalarText(v)))
		columns := []models.Column{{Field: defaultValueKey, HeaderName: defaultValueKey, Width: valueColumnWidth}}
		return models.Success(columns, []models.Row{{ID: 0, Fields: fields}})
	}
}

func buildArrayRows(items []*fastjson.Value) []models.Row {
	ids := &rowCounter{}
	nested := nestedArrayNames(items)
	rows := make([]models.Row, 0, len(items))

	if len(nested) == 0 {
		for _, item := range items {
			rows = append(rows, models.Row{ID: ids.take(), Fields: Flatten(item, "")})
		}
		return rows
	}

	skip := make(map[string]bool, len(nested))
	for _, name := range nested {
		skip[name] = true
	}
	for i, item := range items {
		rows = append(rows, parentRow(ids, item, i+1, nested, skip))
		for _, name := range nested {
			children := objectField(item, name)
			if children == nil || children.Type() != fastjson.TypeArray {
				continue
			}
			level := capitalize(name)
			for ci, child := range children.GetArray() {
				rows = append(rows, childRow(ids, child, i+1, level, ci+1))
			}
		}
	}
	return rows
}

func parentRow(ids *rowCounter, item *fastjson.Value, parentID int, nested []string, skip map[string]bool) models.Row {
	group := &models.GroupInfo{
		Level:    models.ParentLevel,
		ParentID: parentID,
		ItemType: models.ItemTypeParent,
	}
	fields := groupFields(group)
	for _, name := range nested {
		count := 0
		if arr := objectField(item, name); arr != nil && arr.Type() == fastjson.TypeArray {
			count = len(arr.GetArray())
		}
		fields.Set(name+countSuffix, models.IntValue(count))
	}
	if item.Type() == fastjson.TypeObject {
		flattenObject(fields, item.GetObject(), "", skip)
	} else {
		flattenInto(fields, item, "")
	}
	return models.Row{ID: ids.take(), Fields: fields, Group: group}
}

func childRow(ids *rowCounter, child *fastjson.Value, parentID int, level string, childIndex int) models.Row {
	group := &models.GroupInfo{
		Level:      level,
		ParentID:   parentID,
		ItemType:   models.ItemTypeChild,
		ChildIndex: childIndex,
	}
	fields := groupFields(group)
	fields.Merge(Flatten(child, ""))
	return models.Row{ID: ids.take(), Fields: fields, Group: group}
}

// groupFields seeds a row's cells with its grouping metadata so the grid can
// show it as ordinary columns. Data keys with the same names overwrite the
// cells but never the row's GroupInfo.
func groupFields(g *models.GroupInfo) *models.Fields {
	fields := models.NewFields()
	fields.Set("level", models.StringValue(g.Level))
	fields.Set("parentId", models.IntValue(g.ParentID))
	fields.Set("itemType", models.StringValue(string(g.ItemType)))
	if g.ItemType == models.ItemTypeChild {
		fields.Set("childIndex", models.IntValue(g.ChildIndex))
	}
	return fields
}

// nestedArrayNames lists, in first-seen order, every property name that holds
// a non-empty array on at least one element.
func nestedArrayNames(items []*fastjson.Value) []string {
	var names []string
	for _, item := range items {
		obj := item.GetObject()
		if obj == nil {
			continue
		}
		obj.Visit(func(k []byte, v *fastjson.Value) {
			if v.Type() == fastjson.TypeArray && len(v.GetArray()) > 0 {
				names = append(names, string(k))
			}
		})
	}
	return lo.Uniq(names)
}

// objectField returns the last value stored under name, matching how
// duplicate keys resolve everywhere else.
func objectField(item *fastjson.Value, name string) *fastjson.Value {
	obj := item.GetObject()
	if obj == nil {
		return nil
	}
	var found *fastjson.Value
	obj.Visit(func(k []byte, v *fastjson.Value) {
		if string(k) == name {
			found = v
		}
	})
	return found
}

// unionColumns returns one column per distinct key, in the order keys are
// first seen scanning rows in emission order.
func unionColumns(rows []models.Row) []models.Column {
	keys := lo.Uniq(lo.FlatMap(rows, func(r models.Row, _ int) []string {
		return r.Fields.Keys()
	}))
	return lo.Map(keys, func(key string, _ int) models.Column {
		return models.Column{Field: key, HeaderName: key, Width: jsonColumnWidth}
	})
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ParseDocument parses normalized JSON text. The text is validated first:
// fastjson.Parse alone accepts NaN, leading zeros and bad escapes. A document
// that is itself a JSON string holding valid JSON is decoded one more level;
// otherwise the string is kept as is.
func ParseDocument(text string) (*fastjson.Value, error) {
	if err := fastjson.Validate(text); err != nil {
		return nil, err
	}
	v, err := fastjson.Parse(text)
	if err != nil {
		return nil, err
	}
	if v.Type() == fastjson.TypeString {
		inner := strings.TrimSpace(string(v.GetStringBytes()))
		if fastjson.Validate(inner) == nil {
			if decoded, err := fastjson.Parse(inner); err == nil {
				return decoded, nil
			}
		}
	}
	return v, nil
}
