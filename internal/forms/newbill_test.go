package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() map[string]string {
	return map[string]string{
		"expense-type": "Restaurants et bars",
		"expense-name": "Lunch Meeting",
		"datepicker":   "2023-04-04",
		"amount":       "200",
		"vat":          "40",
		"pct":          "20",
		"commentary":   "Business discussion",
		"file":         "file.jpg",
	}
}

func TestNewBillFormRejectsUnknownField(t *testing.T) {
	values := validValues()
	values["expense-color"] = "blue"

	_, err := NewBillFormFromValues(values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expense-color")
}

func TestNewBillFormValidityRequiresFields(t *testing.T) {
	form, err := NewBillFormFromValues(validValues())
	require.NoError(t, err)
	assert.True(t, form.CheckValidity())

	missingDate := validValues()
	missingDate["datepicker"] = ""
	form, err = NewBillFormFromValues(missingDate)
	require.NoError(t, err)
	assert.False(t, form.CheckValidity())

	missingAmount := validValues()
	delete(missingAmount, "amount")
	form, err = NewBillFormFromValues(missingAmount)
	require.NoError(t, err)
	assert.False(t, form.CheckValidity())
}

func TestNewBillFormOptionalFieldsMayBeEmpty(t *testing.T) {
	values := validValues()
	values["vat"] = ""
	values["commentary"] = ""
	delete(values, "file")

	form, err := NewBillFormFromValues(values)
	require.NoError(t, err)
	assert.True(t, form.CheckValidity())
	assert.Equal(t, "", form.Value(FieldVAT))
	assert.Equal(t, "200", form.Value(FieldAmount))
}
