package services

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsongrid/backend/internal/models"
)

func TestExamplesOrder(t *testing.T) {
	labels := lo.Map(Examples(), func(ex Example, _ int) string { return ex.Label })
	assert.Equal(t, []string{
		"Array of objects",
		"Nested arrays in objects",
		"Array of invoice objects",
		"Primitive (string)",
		"Primitive (number)",
		"Malformed example",
		"IIS log (W3SVC)",
	}, labels)
}

func TestExamplesParse(t *testing.T) {
	ps := NewParserService()

	for _, ex := range Examples() {
		t.Run(ex.Label, func(t *testing.T) {
			result := ps.Parse(ex.Value, ex.Mode)
			if ex.Label == "Malformed example" {
				require.True(t, result.Failed())
				assert.Equal(t, models.ErrorMalformedSyntax, result.Error.Kind)
				return
			}
			require.False(t, result.Failed(), "%+v", result.Error)
			assert.NotEmpty(t, result.Rows)
		})
	}
}

func TestExampleShapes(t *testing.T) {
	ps := NewParserService()

	people, _ := FindExample("array of objects")
	result := ps.Parse(people.Value, people.Mode)
	assert.Equal(t, []string{"id", "name", "age"}, columnFields(result.Columns))

	nested, _ := FindExample("Nested arrays in objects")
	result = ps.Parse(nested.Value, nested.Mode)
	assert.True(t, HasGrouping(result.Rows))
	assert.Equal(t, models.IntValue(2), result.Rows[0].Value("citiesCount"))
	assert.Equal(t, models.IntValue(2), result.Rows[0].Value("codesCount"))

	invoices, _ := FindExample("Array of invoice objects")
	result = ps.Parse(invoices.Value, invoices.Mode)
	assert.Len(t, result.Rows, 4)
	assert.Equal(t, "TransID", result.Columns[0].Field)

	number, _ := FindExample("Primitive (number)")
	result = ps.Parse(number.Value, number.Mode)
	assert.Equal(t, models.StringValue("12345"), result.Rows[0].Value("value"))
}

func TestFindExampleUnknown(t *testing.T) {
	_, ok := FindExample("does not exist")
	assert.False(t, ok)
}
