package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/model"
)

func customerRow(first, last, email, phone, city, reg string) model.RawRow {
	row := model.RawRow{}
	set := func(col, s string) {
		if s == "" {
			row[col] = model.Null()
			return
		}
		row[col] = model.String(s)
	}
	set("first_name", first)
	set("last_name", last)
	set("email", email)
	set("phone", phone)
	set("city", city)
	set("registration_date", reg)
	return row
}

func TestCustomerTransformExactDuplicate(t *testing.T) {
	rows := []model.RawRow{
		customerRow("A", "B", "a@b.com", "9876543210", "Pune", "01/02/2023"),
		customerRow("A", "B", "a@b.com", "9876543210", "Pune", "01/02/2023"),
	}

	tr := NewCustomerTransformer("", "", zap.NewNop())
	cleaned, counters := tr.Transform(rows)

	require.Len(t, cleaned, 1)
	assert.Equal(t, 2, counters.RawCount)
	assert.Equal(t, 1, counters.DupRemoved)
	assert.Equal(t, 0, counters.MissingHandled)

	c := cleaned[0]
	require.NotNil(t, c.Phone)
	assert.Equal(t, "+91-9876543210", *c.Phone)
	require.NotNil(t, c.RegistrationDate)
	assert.Equal(t, "2023-02-01", *c.RegistrationDate)
	assert.Equal(t, "a@b.com", c.Email)
}

func TestCustomerTransformDefaultsEmail(t *testing.T) {
	rows := []model.RawRow{
		customerRow("Priya", "Shah", "", "12345", "", "31/12/2022"),
	}

	tr := NewCustomerTransformer("+91", "", zap.NewNop())
	cleaned, counters := tr.Transform(rows)

	require.Len(t, cleaned, 1)
	c := cleaned[0]
	assert.Equal(t, "unknown@fleximart.com", c.Email)

	// Unrecognized phone shape passes through untouched.
	require.NotNil(t, c.Phone)
	assert.Equal(t, "12345", *c.Phone)

	// City is the only null cell left.
	assert.Nil(t, c.City)
	assert.Equal(t, 1, counters.MissingHandled)
}

func TestCustomerTransformCountsRemainingNulls(t *testing.T) {
	rows := []model.RawRow{
		customerRow("Ravi", "Iyer", "r@fleximart.com", "", "", "not-a-date"),
	}

	tr := NewCustomerTransformer("", "", zap.NewNop())
	cleaned, counters := tr.Transform(rows)

	require.Len(t, cleaned, 1)
	c := cleaned[0]
	assert.Nil(t, c.Phone)
	assert.Nil(t, c.City)
	assert.Nil(t, c.RegistrationDate)
	assert.Equal(t, 3, counters.MissingHandled)
}

func TestCustomerTransformCountsMissingNames(t *testing.T) {
	rows := []model.RawRow{
		customerRow("", "Iyer", "r@fleximart.com", "9876543210", "Pune", "2023-01-01"),
		customerRow("", "", "s@fleximart.com", "9876543210", "Pune", "2023-01-01"),
	}

	tr := NewCustomerTransformer("", "", zap.NewNop())
	cleaned, counters := tr.Transform(rows)

	// Empty name cells are missing data even though nothing else is null.
	require.Len(t, cleaned, 2)
	assert.Equal(t, "", cleaned[0].FirstName)
	assert.Equal(t, 3, counters.MissingHandled)
}

func TestCustomerDedupKeyIgnoresOtherFields(t *testing.T) {
	rows := []model.RawRow{
		customerRow("A", "B", "a@b.com", "9876543210", "Pune", "2023-01-01"),
		customerRow("A", "B", "a@b.com", "1112223334", "Mumbai", "2023-06-01"),
		customerRow("A", "C", "a@b.com", "9876543210", "Pune", "2023-01-01"),
	}

	tr := NewCustomerTransformer("", "", zap.NewNop())
	cleaned, counters := tr.Transform(rows)

	// Same (first,last,email) collapses regardless of phone/city; first wins.
	require.Len(t, cleaned, 2)
	assert.Equal(t, 1, counters.DupRemoved)
	require.NotNil(t, cleaned[0].City)
	assert.Equal(t, "Pune", *cleaned[0].City)
}

func TestCustomerDedupIdempotent(t *testing.T) {
	rows := []model.RawRow{
		customerRow("A", "B", "a@b.com", "", "", ""),
		customerRow("C", "D", "c@d.com", "", "", ""),
	}

	tr := NewCustomerTransformer("", "", zap.NewNop())
	cleaned, counters := tr.Transform(rows)
	require.Len(t, cleaned, 2)
	assert.Equal(t, 0, counters.DupRemoved)
	assert.Equal(t, counters.RawCount-counters.DupRemoved, len(cleaned))
}
