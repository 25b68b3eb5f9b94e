// pkg/transform/customers.go

// Package transform contains the per-entity cleaning pipelines. Each
// transformer runs the same fixed sequence over a raw row set: record the
// raw count, remove duplicates under the entity's key, apply the field
// rules, and report counters consistent with what was actually done.
package transform

import (
	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/model"
	"github.com/fleximart/retail-ingress/pkg/normalize"
)

// DefaultEmail is substituted for customers that arrive without one.
const DefaultEmail = "unknown@fleximart.com"

// CustomerTransformer cleans raw customer rows.
type CustomerTransformer struct {
	logger       *zap.Logger
	countryCode  string
	defaultEmail string
}

// NewCustomerTransformer creates a customer transformer. Empty countryCode
// or defaultEmail fall back to the package defaults.
func NewCustomerTransformer(countryCode, defaultEmail string, logger *zap.Logger) *CustomerTransformer {
	if countryCode == "" {
		countryCode = normalize.DefaultCountryPrefix
	}
	if defaultEmail == "" {
		defaultEmail = DefaultEmail
	}
	return &CustomerTransformer{
		logger:       logger.Named("transform-customers"),
		countryCode:  countryCode,
		defaultEmail: defaultEmail,
	}
}

// Transform deduplicates by (first_name, last_name, email), defaults
// missing emails, standardizes phones and registration dates, and counts
// the cells still null in the cleaned set.
func (t *CustomerTransformer) Transform(rows []model.RawRow) ([]model.CleanCustomer, model.EntityCounters) {
	counters := model.EntityCounters{RawCount: len(rows)}

	deduped := dedupBy(rows, func(r model.RawRow) string {
		return fieldKey(r, "first_name", "last_name", "email")
	})
	counters.DupRemoved = counters.RawCount - len(deduped)

	cleaned := make([]model.CleanCustomer, 0, len(deduped))
	for _, r := range deduped {
		c := model.CleanCustomer{
			FirstName: r.GetTrimmed("first_name").Text(),
			LastName:  r.GetTrimmed("last_name").Text(),
			Email:     t.defaultEmail,
		}
		if email := r.GetTrimmed("email"); !email.IsNull() {
			c.Email = email.Text()
		}
		if phone := normalize.Phone(r.GetTrimmed("phone"), t.countryCode); !phone.IsNull() {
			s := phone.Text()
			c.Phone = &s
		}
		if city := r.GetTrimmed("city"); !city.IsNull() {
			s := city.Text()
			c.City = &s
		}
		if reg := normalize.Date(r.GetTrimmed("registration_date")); !reg.IsNull() {
			s := reg.Text()
			c.RegistrationDate = &s
		}

		counters.MissingHandled += c.NullFieldCount()
		cleaned = append(cleaned, c)
	}

	t.logger.Info("Transformed customers",
		zap.Int("raw", counters.RawCount),
		zap.Int("dupRemoved", counters.DupRemoved),
		zap.Int("missingHandled", counters.MissingHandled))
	return cleaned, counters
}
