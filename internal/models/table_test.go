package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsKeepInsertionOrder(t *testing.T) {
	f := NewFields()
	f.Set("zeta", StringValue("z"))
	f.Set("alpha", IntValue(1))
	f.Set("mid", BoolValue(true))
	f.Set("zeta", StringValue("again"))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, f.Keys())
	assert.Equal(t, 3, f.Len())

	v, ok := f.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, "again", v.String())

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"again","alpha":1,"mid":true}`, string(data))
}

func TestFieldsUnmarshalKeepsOrder(t *testing.T) {
	var f Fields
	require.NoError(t, json.Unmarshal([]byte(`{"b":null,"a":"x","c":2.5}`), &f))

	assert.Equal(t, []string{"b", "a", "c"}, f.Keys())
	b, _ := f.Get("b")
	assert.True(t, b.IsNull())
	c, _ := f.Get("c")
	assert.Equal(t, KindNumber, c.Kind)
	assert.Equal(t, 2.5, c.Num)
}

func TestFieldsMerge(t *testing.T) {
	base := NewFields()
	base.Set("level", StringValue("City"))
	base.Set("parentId", IntValue(1))

	other := NewFields()
	other.Set("name", StringValue("Toronto"))
	other.Set("level", StringValue("overridden"))

	base.Merge(other)
	base.Merge(nil)

	assert.Equal(t, []string{"level", "parentId", "name"}, base.Keys())
	assert.Equal(t, "overridden", base.values["level"].Str)
}

func TestRowValueMissingKeyIsNull(t *testing.T) {
	row := Row{ID: 3, Fields: NewFields()}
	assert.True(t, row.Value("absent").IsNull())
}

func TestParseResultJSON(t *testing.T) {
	fields := NewFields()
	fields.Set("id", IntValue(1))
	ok := Success(
		[]Column{{Field: "id", HeaderName: "id", Width: 220}},
		[]Row{{ID: 0, Fields: fields}},
	)
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"columns": [{"field":"id","headerName":"id","width":220}],
		"rows": [{"id":0,"fields":{"id":1}}]
	}`, string(data))

	failed := Failure(ErrorEmptyArray, "JSON array is empty.")
	assert.True(t, failed.Failed())
	data, err = json.Marshal(failed)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"columns": [],
		"rows": [],
		"error": {"kind":"EmptyArray","message":"JSON array is empty."}
	}`, string(data))
}

func TestGroupInfoIsParent(t *testing.T) {
	var none *GroupInfo
	assert.False(t, none.IsParent())
	assert.True(t, (&GroupInfo{Level: ParentLevel, ParentID: 1, ItemType: ItemTypeParent}).IsParent())
	assert.False(t, (&GroupInfo{Level: "Cities", ParentID: 1, ItemType: ItemTypeChild}).IsParent())
}
