package services

import (
	"fmt"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/jsongrid/backend/internal/models"
)

const (
	defaultValueKey = "value"
	countKey        = "count"
)

// Flatten collapses a JSON value into one level of scalar cells keyed by
// dotted object paths and bracketed array indexes:
//
//	{"a":{"b":1},"c":[{"d":2}],"e":["x","y"]}
//
// becomes a.b=1, c[0].d=2, c.count=1, e="x, y", e.count=2. Keys that map to
// the same path overwrite each other, the last one winning.
func Flatten(v *fastjson.Value, prefix string) *models.Fields {
	out := models.NewFields()
	flattenInto(out, v, prefix)
	return out
}

func flattenInto(out *models.Fields, v *fastjson.Value, prefix string) {
	switch v.Type() {
	case fastjson.TypeArray:
		flattenArray(out, v.GetArray(), prefix)
	case fastjson.TypeObject:
		flattenObject(out, v.GetObject(), prefix, nil)
	default:
		out.Set(keyOrValue(prefix), models.StringValue(scalarText(v)))
	}
}

func flattenArray(out *models.Fields, items []*fastjson.Value, prefix string) {
	if allScalars(items) {
		out.Set(keyOrValue(prefix), models.StringValue(joinScalars(items)))
		out.Set(childKey(prefix, countKey), models.IntValue(len(items)))
		return
	}
	for idx, item := range items {
		key := fmt.Sprintf("%s[%d]", prefix, idx)
		if isContainer(item) {
			flattenInto(out, item, key)
		} else {
			out.Set(key, models.StringValue(scalarText(item)))
		}
	}
	out.Set(childKey(prefix, countKey), models.IntValue(len(items)))
}

// flattenObject flattens every property of obj except those named in skip.
func flattenObject(out *models.Fields, obj *fastjson.Object, prefix string, skip map[string]bool) {
	if obj == nil {
		return
	}
	obj.Visit(func(k []byte, child *fastjson.Value) {
		name := string(k)
		if skip[name] {
			return
		}
		key := childKey(prefix, name)
		if isContainer(child) {
			flattenInto(out, child, key)
			return
		}
		out.Set(key, scalarValue(child))
	})
}

func childKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func keyOrValue(prefix string) string {
	if prefix == "" {
		return defaultValueKey
	}
	return prefix
}

func isContainer(v *fastjson.Value) bool {
	t := v.Type()
	return t == fastjson.TypeObject || t == fastjson.TypeArray
}

func allScalars(items []*fastjson.Value) bool {
	for _, item := range items {
		if isContainer(item) {
			return false
		}
	}
	return true
}

// joinScalars joins scalar array items with ", ". Nulls contribute an empty
// string, so [1,null,2] becomes "1, , 2".
func joinScalars(items []*fastjson.Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		if item.Type() == fastjson.TypeNull {
			continue
		}
		parts[i] = scalarText(item)
	}
	return strings.Join(parts, ", ")
}

// scalarValue keeps the JSON type of a property value.
func scalarValue(v *fastjson.Value) models.Value {
	switch v.Type() {
	case fastjson.TypeString:
		return models.StringValue(string(v.GetStringBytes()))
	case fastjson.TypeNumber:
		return models.NumberValue(v.GetFloat64())
	case fastjson.TypeTrue:
		return models.BoolValue(true)
	case fastjson.TypeFalse:
		return models.BoolValue(false)
	case fastjson.TypeNull:
		return models.NullValue()
	default:
		return models.StringValue(v.String())
	}
}

// scalarText is the display text of a scalar: strings unquoted, null as "null".
func scalarText(v *fastjson.Value) string {
	return scalarValue(v).String()
}
