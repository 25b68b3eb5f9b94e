// pkg/report/report.go

// Package report assembles the per-entity quality counters and the load
// outcome into the data-quality report and renders it in the fixed text
// format downstream tooling greps.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/fleximart/retail-ingress/pkg/model"
)

// Load status values. A failed load renders as "Failed: <cause>".
const (
	StatusSuccess      = "Success"
	failedStatusPrefix = "Failed: "
)

// QualityReport is the final per-run quality summary. Built incrementally
// during transform, finalized after load, written once.
type QualityReport struct {
	Customers  model.EntityCounters
	Products   model.EntityCounters
	Sales      model.EntityCounters
	LoadStatus string
}

// Aggregate combines the three entity counters and the load outcome.
// Pure and deterministic: same inputs, same report.
func Aggregate(customers, products, sales model.EntityCounters, loadStatus string) QualityReport {
	return QualityReport{
		Customers:  customers,
		Products:   products,
		Sales:      sales,
		LoadStatus: loadStatus,
	}
}

// FailedStatus renders a load failure cause as the report's status value.
func FailedStatus(cause error) string {
	return failedStatusPrefix + cause.Error()
}

// Succeeded reports whether the load stage completed.
func (r QualityReport) Succeeded() bool {
	return r.LoadStatus == StatusSuccess
}

// Render produces the report text. The line shapes are load-bearing:
// header, separator, one line per entity, then the load status.
func (r QualityReport) Render() string {
	var b strings.Builder
	b.WriteString("ETL DATA QUALITY REPORT\n")
	b.WriteString("========================\n")
	fmt.Fprintf(&b, "Customers: Processed %d, Duplicates Removed %d, Missing Handled %d\n",
		r.Customers.RawCount, r.Customers.DupRemoved, r.Customers.MissingHandled)
	fmt.Fprintf(&b, "Products: Processed %d, Duplicates Removed %d, Missing Handled %d\n",
		r.Products.RawCount, r.Products.DupRemoved, r.Products.MissingHandled)
	fmt.Fprintf(&b, "Sales: Processed %d, Duplicates Removed %d, Dropped (Missing IDs) %d\n",
		r.Sales.RawCount, r.Sales.DupRemoved, r.Sales.MissingHandled)
	fmt.Fprintf(&b, "Database Load Status: %s\n", r.LoadStatus)
	return b.String()
}

// WriteFile writes the rendered report to path, replacing any previous run's
// report.
func (r QualityReport) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write quality report: %w", err)
	}
	return nil
}
