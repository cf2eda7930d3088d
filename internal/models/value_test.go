package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{3.14, "3.14"},
		{12345, "12345"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
	}

	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			assert.Equal(t, test.want, FormatNumber(test.in))
		})
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "null", NullValue().String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "hi", StringValue("hi").String())
	assert.Equal(t, "25", IntValue(25).String())
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal([]Value{StringValue("a"), NumberValue(1.5), BoolValue(false), NullValue()})
	require.NoError(t, err)
	assert.Equal(t, `["a",1.5,false,null]`, string(data))

	var back []Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Value{StringValue("a"), NumberValue(1.5), BoolValue(false), NullValue()}, back)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("LOG")
	require.NoError(t, err)
	assert.Equal(t, ModeLog, m)

	m, err = ParseMode(" json ")
	require.NoError(t, err)
	assert.Equal(t, ModeJSON, m)

	_, err = ParseMode("xml")
	assert.True(t, errors.Is(err, ErrInvalidMode))
}

func TestFormatMode(t *testing.T) {
	assert.Equal(t, ModeLog, FormatLog.Mode())
	assert.Equal(t, ModeJSON, FormatJSON.Mode())
	assert.Equal(t, "log", FormatLog.String())
}
