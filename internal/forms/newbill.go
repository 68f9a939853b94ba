// Package forms gives typed access to submitted form fields. The field set
// is fixed and checked at construction, so a handler can never read a key
// the template does not render.
package forms

import "fmt"

// Field names of the new bill form, matching the template's data-testid set.
type Field string

const (
	FieldExpenseType Field = "expense-type"
	FieldExpenseName Field = "expense-name"
	FieldDatepicker  Field = "datepicker"
	FieldAmount      Field = "amount"
	FieldVAT         Field = "vat"
	FieldPct         Field = "pct"
	FieldCommentary  Field = "commentary"
	FieldFile        Field = "file"
)

// required mirrors the template's required attributes. An empty required
// field blocks submission before any store call, like native constraint
// checking does in the browser.
var newBillFields = map[Field]bool{
	FieldExpenseType: true,
	FieldExpenseName: true,
	FieldDatepicker:  true,
	FieldAmount:      true,
	FieldVAT:         false,
	FieldPct:         true,
	FieldCommentary:  false,
	FieldFile:        false,
}

// NewBillForm holds submitted values for the new bill form.
type NewBillForm struct {
	values map[Field]string
}

// NewBillFormFromValues builds the accessor, rejecting unknown field names.
func NewBillFormFromValues(values map[string]string) (*NewBillForm, error) {
	form := &NewBillForm{values: make(map[Field]string, len(values))}
	for key, value := range values {
		field := Field(key)
		if _, ok := newBillFields[field]; !ok {
			return nil, fmt.Errorf("forms: unknown field %q", key)
		}
		form.values[field] = value
	}
	return form, nil
}

// Value returns the submitted value for a field, empty when absent.
func (f *NewBillForm) Value(field Field) string {
	return f.values[field]
}

// CheckValidity reports whether every required field is non-empty.
func (f *NewBillForm) CheckValidity() bool {
	for field, required := range newBillFields {
		if required && f.values[field] == "" {
			return false
		}
	}
	return true
}
